package orders

import (
	"time"

	"github.com/angelmondragon/storefront/internal/cart"
	"github.com/angelmondragon/storefront/internal/shipping"
	"github.com/shopspring/decimal"
)

// Order is the confirmation record frozen at placement. It never references the live cart.
type Order struct {
	ID        string
	Lines     []cart.Line
	ItemCount int
	Subtotal  decimal.Decimal
	Tax       decimal.Decimal
	Total     decimal.Decimal
	Shipping  shipping.Info
	PlacedAt  time.Time
}

// NewOrder freezes snap and info under id.
func NewOrder(id string, snap cart.Snapshot, info shipping.Info, placedAt time.Time) Order {
	lines := make([]cart.Line, len(snap.Lines))
	copy(lines, snap.Lines)
	return Order{
		ID:        id,
		Lines:     lines,
		ItemCount: snap.ItemCount,
		Subtotal:  snap.Subtotal,
		Tax:       snap.Tax,
		Total:     snap.Total,
		Shipping:  info,
		PlacedAt:  placedAt.UTC(),
	}
}
