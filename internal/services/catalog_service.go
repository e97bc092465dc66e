package services

import (
	"strings"

	"bludify/internal/catalog"
	"bludify/internal/domain"
	"bludify/internal/repos"
)

type CatalogService struct {
	cat *catalog.Catalog
}

// NewCatalogService reads the product table once. Imports made afterwards
// show up on the next start.
func NewCatalogService(prods *repos.ProductRepo) (*CatalogService, error) {
	ps, err := prods.All()
	if err != nil {
		return nil, err
	}
	return &CatalogService{cat: catalog.New(ps)}, nil
}

// NewCatalogServiceFrom wraps an existing snapshot.
func NewCatalogServiceFrom(c *catalog.Catalog) *CatalogService {
	return &CatalogService{cat: c}
}

type CategoryTab struct {
	Name     string
	Count    int
	Selected bool
}

type BrowseResult struct {
	Query    string
	Category string
	Products []domain.Product
	Tabs     []CategoryTab
	Total    int
}

func (r BrowseResult) Count() int { return len(r.Products) }

// Browse filters the catalog. Tab counts reflect the current query so the
// user can see where matches live before switching category.
func (s *CatalogService) Browse(q, category string) BrowseResult {
	category = canonicalCategory(category)
	res := BrowseResult{
		Query:    q,
		Category: category,
		Products: s.cat.Filter(q, category),
		Total:    s.cat.Len(),
	}
	matched := s.cat.Filter(q, domain.AllCategories)
	for _, name := range domain.Categories {
		n := len(matched)
		if name != domain.AllCategories {
			n = len(catalog.Filter(matched, "", name))
		}
		res.Tabs = append(res.Tabs, CategoryTab{Name: name, Count: n, Selected: name == category})
	}
	return res
}

// canonicalCategory maps a label to its spelling in domain.Categories so the
// matching tab is selected. Unknown labels are returned unchanged.
func canonicalCategory(category string) string {
	category = strings.TrimSpace(category)
	if category == "" {
		return domain.AllCategories
	}
	for _, name := range domain.Categories {
		if strings.EqualFold(name, category) {
			return name
		}
	}
	return category
}

// Featured returns up to n verified products in catalog order.
func (s *CatalogService) Featured(n int) []domain.Product {
	out := make([]domain.Product, 0, n)
	for _, p := range s.cat.All() {
		if len(out) == n {
			break
		}
		if p.Verified {
			out = append(out, p)
		}
	}
	return out
}

func (s *CatalogService) GetProduct(id string) (domain.Product, bool) {
	return s.cat.Get(id)
}

func (s *CatalogService) All() []domain.Product {
	return s.cat.All()
}
