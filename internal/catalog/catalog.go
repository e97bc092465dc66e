// Package catalog holds the read-only product list shown on the marketplace
// and the predicate used to narrow it by search text and category.
package catalog

import (
	"strings"

	"golang.org/x/text/cases"

	"bludify/internal/domain"
)

// Catalog is an immutable snapshot of the product list. It is built once when
// the server starts and never changes for the life of the process.
type Catalog struct {
	products []domain.Product
	byID     map[string]int
}

// New copies products so later mutation of the caller's slice cannot leak in.
func New(products []domain.Product) *Catalog {
	c := &Catalog{
		products: make([]domain.Product, len(products)),
		byID:     make(map[string]int, len(products)),
	}
	copy(c.products, products)
	for i, p := range c.products {
		if _, dup := c.byID[p.ID]; !dup {
			c.byID[p.ID] = i
		}
	}
	return c
}

func (c *Catalog) Len() int { return len(c.products) }

// All returns a copy of every product in catalog order.
func (c *Catalog) All() []domain.Product {
	out := make([]domain.Product, len(c.products))
	copy(out, c.products)
	return out
}

func (c *Catalog) Get(id string) (domain.Product, bool) {
	i, ok := c.byID[id]
	if !ok {
		return domain.Product{}, false
	}
	return c.products[i], true
}

// Filter applies Match to the snapshot.
func (c *Catalog) Filter(query, category string) []domain.Product {
	return Filter(c.products, query, category)
}

// Filter returns the products whose title or specs contain query and whose
// category equals category, in their original order. Matching ignores case
// and surrounding spaces in query. An empty query and the "All" category each
// match everything. The result is a fresh slice, possibly empty, never nil.
func Filter(products []domain.Product, query, category string) []domain.Product {
	m := NewMatcher(query, category)
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if m.Match(p) {
			out = append(out, p)
		}
	}
	return out
}

// Matcher is a compiled (query, category) predicate.
type Matcher struct {
	needle   string
	category string
}

func NewMatcher(query, category string) Matcher {
	cat := strings.TrimSpace(category)
	if strings.EqualFold(cat, domain.AllCategories) {
		cat = ""
	}
	return Matcher{needle: fold(strings.TrimSpace(query)), category: cat}
}

func (m Matcher) Match(p domain.Product) bool {
	if m.category != "" && !strings.EqualFold(p.Category, m.category) {
		return false
	}
	if m.needle == "" {
		return true
	}
	return strings.Contains(fold(p.Title), m.needle) || strings.Contains(fold(p.Specs), m.needle)
}

// fold uses full Unicode case folding. A Caser keeps state, so one is made
// per call rather than shared.
func fold(s string) string {
	if s == "" {
		return ""
	}
	return cases.Fold().String(s)
}
