package catalog

import "strings"

// AllCategories is the category sentinel meaning "no restriction".
const AllCategories = "all"

// Criteria combines the category selector and the search box. Either half can be
// cleared without touching the other.
type Criteria struct {
	Category string `json:"category"`
	Search   string `json:"search"`
}

// DefaultCriteria matches every product.
func DefaultCriteria() Criteria {
	return Criteria{Category: AllCategories}
}

// WithCategory returns a copy with the category replaced. Blank means all.
func (c Criteria) WithCategory(category string) Criteria {
	if strings.TrimSpace(category) == "" {
		category = AllCategories
	}
	c.Category = category
	return c
}

// WithSearch returns a copy with the search query replaced.
func (c Criteria) WithSearch(query string) Criteria {
	c.Search = query
	return c
}

func (c Criteria) matches(p Product, needle string) bool {
	if c.Category != AllCategories && c.Category != "" && p.Category != c.Category {
		return false
	}
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Title), needle)
}

// Apply returns the products matching criteria in catalog order. The input slice is
// never modified and the result is never nil, so an empty match renders as [].
func Apply(products []Product, criteria Criteria) []Product {
	needle := strings.ToLower(criteria.Search)
	out := make([]Product, 0, len(products))
	for _, p := range products {
		if criteria.matches(p, needle) {
			out = append(out, p)
		}
	}
	return out
}

// Categories lists the distinct categories in first-seen order.
func Categories(products []Product) []string {
	seen := make(map[string]struct{}, len(products))
	out := make([]string, 0)
	for _, p := range products {
		if p.Category == "" {
			continue
		}
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	}
	return out
}
