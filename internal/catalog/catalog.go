// Package catalog serves the static product and collection list.
package catalog

import (
	"cmp"
	"slices"
	"strings"

	"github.com/Sule971/luxe-vogue-boutique/internal/domain"
)

// Sort orders accepted by Filter.
const (
	SortFeatured  = "featured"
	SortPriceAsc  = "price-asc"
	SortPriceDesc = "price-desc"
	SortName      = "name"
)

const (
	// DefaultRelatedLimit is how many related products a product page shows.
	DefaultRelatedLimit = 4
	suggestionCount     = 5
	featuredFallback    = 4
)

// Filter narrows the product list. Zero values match everything; "all" is
// accepted for Category and Gender. Prices are in cents and MaxPrice 0 means
// unbounded.
type Filter struct {
	Category     string
	Gender       domain.Gender
	Collection   string
	Search       string
	FeaturedOnly bool
	MinPrice     int64
	MaxPrice     int64
	Sort         string
}

// Catalog is an immutable, read-only product list safe for concurrent use.
type Catalog struct {
	products    []domain.Product
	byID        map[string]int
	collections []domain.Collection
}

// New returns the built-in Luxe Vogue catalog.
func New() *Catalog {
	return NewWith(seedProducts, seedCollections)
}

// NewWith builds a catalog from the given data, which is copied.
func NewWith(products []domain.Product, collections []domain.Collection) *Catalog {
	c := &Catalog{
		products:    slices.Clone(products),
		byID:        make(map[string]int, len(products)),
		collections: slices.Clone(collections),
	}
	for i, p := range c.products {
		c.byID[p.ID] = i
	}
	return c
}

// Products returns every product in catalog order.
func (c *Catalog) Products() []domain.Product {
	return slices.Clone(c.products)
}

// Product looks up a product by id.
func (c *Catalog) Product(id string) (domain.Product, bool) {
	i, ok := c.byID[id]
	if !ok {
		return domain.Product{}, false
	}
	return c.products[i], true
}

// Filter returns the products matching f, ordered by f.Sort.
func (c *Catalog) Filter(f Filter) []domain.Product {
	gender := f.Gender
	if gender == "all" {
		gender = ""
	}
	category := f.Category
	if category == "all" {
		category = ""
	}

	out := make([]domain.Product, 0, len(c.products))
	for _, p := range c.products {
		switch {
		case category != "" && !strings.EqualFold(p.Category, category):
			continue
		case !p.ForGender(gender):
			continue
		case f.Collection != "" && !strings.EqualFold(p.Collection, f.Collection):
			continue
		case f.FeaturedOnly && !p.Featured:
			continue
		case p.Price < f.MinPrice:
			continue
		case f.MaxPrice > 0 && p.Price > f.MaxPrice:
			continue
		case !p.Matches(f.Search):
			continue
		}
		out = append(out, p)
	}

	sortProducts(out, f.Sort)
	return out
}

func sortProducts(products []domain.Product, sortBy string) {
	switch sortBy {
	case SortPriceAsc:
		slices.SortStableFunc(products, func(a, b domain.Product) int { return cmp.Compare(a.Price, b.Price) })
	case SortPriceDesc:
		slices.SortStableFunc(products, func(a, b domain.Product) int { return cmp.Compare(b.Price, a.Price) })
	case SortName:
		slices.SortStableFunc(products, func(a, b domain.Product) int { return strings.Compare(a.Name, b.Name) })
	}
}

// Featured returns the featured products, or the first few when none are
// flagged.
func (c *Catalog) Featured() []domain.Product {
	featured := c.Filter(Filter{FeaturedOnly: true})
	if len(featured) > 0 {
		return featured
	}
	return slices.Clone(c.products[:min(featuredFallback, len(c.products))])
}

// Related returns up to limit products sharing the collection or category of
// the product with id, excluding that product. Unknown ids yield nil.
func (c *Catalog) Related(id string, limit int) []domain.Product {
	p, ok := c.Product(id)
	if !ok {
		return nil
	}
	if limit <= 0 {
		limit = DefaultRelatedLimit
	}

	var out []domain.Product
	for _, other := range c.products {
		if other.ID == p.ID {
			continue
		}
		sameCollection := p.Collection != "" && other.Collection == p.Collection
		if sameCollection || other.Category == p.Category {
			out = append(out, other)
			if len(out) == limit {
				break
			}
		}
	}
	return out
}

// Categories returns the distinct categories in first-seen order, limited to
// products shown for gender when it is set.
func (c *Catalog) Categories(gender domain.Gender) []string {
	if gender == "all" {
		gender = ""
	}
	seen := make(map[string]bool)
	var out []string
	for _, p := range c.products {
		if !p.ForGender(gender) || seen[p.Category] {
			continue
		}
		seen[p.Category] = true
		out = append(out, p.Category)
	}
	return out
}

// Collections returns every collection.
func (c *Catalog) Collections() []domain.Collection {
	return slices.Clone(c.collections)
}

// CollectionForGender returns the first collection aimed at gender.
func (c *Catalog) CollectionForGender(gender domain.Gender) (domain.Collection, bool) {
	for _, col := range c.collections {
		if col.Gender == gender {
			return col, true
		}
	}
	return domain.Collection{}, false
}

// Suggestions returns search-as-you-type results: the first few products for
// an empty query, otherwise every product matching it.
func (c *Catalog) Suggestions(query string) []domain.Product {
	if strings.TrimSpace(query) == "" {
		return slices.Clone(c.products[:min(suggestionCount, len(c.products))])
	}
	return c.Filter(Filter{Search: query})
}
