package storefront

import (
	"github.com/angelmondragon/storefront/internal/cart"
	"github.com/angelmondragon/storefront/internal/catalog"
	"github.com/angelmondragon/storefront/internal/checkout"
	"github.com/angelmondragon/storefront/internal/orders"
	"github.com/angelmondragon/storefront/pkg/enums"
	"github.com/shopspring/decimal"
)

// State is everything one shopper owns: the loaded catalog, the filter, the cart and
// the checkout session. It is only touched through a Dispatcher.
type State struct {
	products      []catalog.Product
	catalogStatus enums.CatalogStatus
	criteria      catalog.Criteria
	cart          *cart.Cart
	checkout      *checkout.Machine
}

// NewState builds an empty state. A nil generator uses random order ids.
func NewState(taxRate decimal.Decimal, generator orders.Generator, opts ...checkout.Option) *State {
	c := cart.New(taxRate)
	return &State{
		products:      []catalog.Product{},
		catalogStatus: enums.CatalogStatusIdle,
		criteria:      catalog.DefaultCriteria(),
		cart:          c,
		checkout:      checkout.NewMachine(c, generator, opts...),
	}
}

func (s *State) page() enums.Page {
	if s.checkout.Active() {
		return enums.PageCheckout
	}
	return enums.PageCatalog
}
