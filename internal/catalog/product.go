package catalog

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Product is a read-only catalog entry as delivered by the catalog source.
type Product struct {
	ID          int             `json:"id"`
	Title       string          `json:"title"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Image       string          `json:"image"`
	Rating      Rating          `json:"rating"`
}

// Rating is the average review score and the number of reviews behind it.
type Rating struct {
	Rate  float64 `json:"rate"`
	Count int     `json:"count"`
}

// Stars returns the rounded star count shown next to a product.
func (r Rating) Stars() int {
	if r.Rate <= 0 {
		return 0
	}
	return int(r.Rate + 0.5)
}

// FindByID looks a product up by identifier.
func FindByID(products []Product, id int) (Product, bool) {
	for _, p := range products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}

func normalizeProducts(products []Product) []Product {
	out := make([]Product, 0, len(products))
	for _, p := range products {
		p.Title = strings.TrimSpace(p.Title)
		p.Category = strings.TrimSpace(p.Category)
		out = append(out, p)
	}
	return out
}
