package storefront

import (
	"time"

	"github.com/angelmondragon/storefront/internal/cart"
	"github.com/angelmondragon/storefront/internal/catalog"
	"github.com/angelmondragon/storefront/internal/checkout"
	"github.com/angelmondragon/storefront/internal/orders"
	"github.com/angelmondragon/storefront/internal/shipping"
	"github.com/angelmondragon/storefront/pkg/enums"
	"github.com/shopspring/decimal"
)

// View is the read model handed to the renderer after every event. Money is
// formatted to two places here and nowhere else.
type View struct {
	Page     enums.Page    `json:"page"`
	Catalog  CatalogView   `json:"catalog"`
	Cart     CartView      `json:"cart"`
	Checkout *CheckoutView `json:"checkout,omitempty"`
}

type CatalogView struct {
	Status     enums.CatalogStatus `json:"status"`
	Loading    bool                `json:"loading"`
	Failed     bool                `json:"failed"`
	Error      string              `json:"error,omitempty"`
	Criteria   catalog.Criteria    `json:"criteria"`
	Categories []string            `json:"categories"`
	Products   []ProductView       `json:"products"`
	Size       int                 `json:"size"`
	NoMatches  bool                `json:"no_matches"`
}

type ProductView struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Price       string  `json:"price"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Image       string  `json:"image"`
	Rating      float64 `json:"rating"`
	RatingCount int     `json:"rating_count"`
	Stars       int     `json:"stars"`
}

type LineView struct {
	ProductID int    `json:"product_id"`
	Title     string `json:"title"`
	Price     string `json:"price"`
	Image     string `json:"image"`
	Quantity  int    `json:"quantity"`
	LineTotal string `json:"line_total"`
}

type CartView struct {
	Lines     []LineView `json:"lines"`
	ItemCount int        `json:"item_count"`
	Empty     bool       `json:"empty"`
	TaxRate   string     `json:"tax_rate"`
	Subtotal  string     `json:"subtotal"`
	Tax       string     `json:"tax"`
	Total     string     `json:"total"`
}

type CheckoutView struct {
	SessionID   string             `json:"session_id"`
	Step        enums.CheckoutStep `json:"step"`
	StepNumber  int                `json:"step_number"`
	FieldErrors map[string]string  `json:"field_errors"`
	Shipping    *shipping.Info     `json:"shipping,omitempty"`
	Order       *OrderView         `json:"order,omitempty"`
}

type OrderView struct {
	ID        string        `json:"id"`
	Lines     []LineView    `json:"lines"`
	ItemCount int           `json:"item_count"`
	Subtotal  string        `json:"subtotal"`
	Tax       string        `json:"tax"`
	Total     string        `json:"total"`
	Shipping  shipping.Info `json:"shipping"`
	PlacedAt  time.Time     `json:"placed_at"`
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func buildView(s *State) View {
	return View{
		Page:     s.page(),
		Catalog:  buildCatalogView(s),
		Cart:     buildCartView(s.cart),
		Checkout: buildCheckoutView(s.checkout),
	}
}

func buildCatalogView(s *State) CatalogView {
	filtered := catalog.Apply(s.products, s.criteria)
	products := make([]ProductView, 0, len(filtered))
	for _, p := range filtered {
		products = append(products, ProductView{
			ID:          p.ID,
			Title:       p.Title,
			Price:       money(p.Price),
			Description: p.Description,
			Category:    p.Category,
			Image:       p.Image,
			Rating:      p.Rating.Rate,
			RatingCount: p.Rating.Count,
			Stars:       p.Rating.Stars(),
		})
	}

	view := CatalogView{
		Status:     s.catalogStatus,
		Loading:    s.catalogStatus == enums.CatalogStatusLoading,
		Failed:     s.catalogStatus == enums.CatalogStatusFailed,
		Criteria:   s.criteria,
		Categories: catalog.Categories(s.products),
		Products:   products,
		Size:       len(s.products),
		NoMatches:  s.catalogStatus == enums.CatalogStatusReady && len(products) == 0,
	}
	if view.Failed {
		view.Error = "Failed to load products. Please try again later."
	}
	return view
}

func lineViews(lines []cart.Line) []LineView {
	out := make([]LineView, 0, len(lines))
	for _, l := range lines {
		out = append(out, LineView{
			ProductID: l.ProductID,
			Title:     l.Title,
			Price:     money(l.Price),
			Image:     l.Image,
			Quantity:  l.Quantity,
			LineTotal: money(l.LineTotal()),
		})
	}
	return out
}

func buildCartView(c *cart.Cart) CartView {
	snap := c.Snapshot()
	return CartView{
		Lines:     lineViews(snap.Lines),
		ItemCount: snap.ItemCount,
		Empty:     len(snap.Lines) == 0,
		TaxRate:   c.TaxRate().String(),
		Subtotal:  money(snap.Subtotal),
		Tax:       money(snap.Tax),
		Total:     money(snap.Total),
	}
}

func buildCheckoutView(m *checkout.Machine) *CheckoutView {
	sess, ok := m.Session()
	if !ok {
		return nil
	}
	errs := make(map[string]string, len(sess.FieldErrors))
	for f, msg := range sess.FieldErrors {
		errs[f.String()] = msg
	}
	view := &CheckoutView{
		SessionID:   sess.ID.String(),
		Step:        sess.Step,
		StepNumber:  sess.Step.Number(),
		FieldErrors: errs,
		Shipping:    sess.Shipping,
	}
	if sess.Order != nil {
		view.Order = buildOrderView(*sess.Order)
	}
	return view
}

func buildOrderView(o orders.Order) *OrderView {
	return &OrderView{
		ID:        o.ID,
		Lines:     lineViews(o.Lines),
		ItemCount: o.ItemCount,
		Subtotal:  money(o.Subtotal),
		Tax:       money(o.Tax),
		Total:     money(o.Total),
		Shipping:  o.Shipping,
		PlacedAt:  o.PlacedAt,
	}
}
