package domain

import "strings"

// Gender values a product or collection is targeted at.
type Gender string

const (
	GenderMen    Gender = "men"
	GenderWomen  Gender = "women"
	GenderUnisex Gender = "unisex"
)

// Valid reports whether g is one of the known genders.
func (g Gender) Valid() bool {
	switch g {
	case GenderMen, GenderWomen, GenderUnisex:
		return true
	}
	return false
}

// Product is an immutable catalog entry. Price is in cents.
type Product struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
	Image       string `json:"image"`
	Category    string `json:"category"`
	Gender      Gender `json:"gender"`
	Collection  string `json:"collection,omitempty"`
	Featured    bool   `json:"featured,omitempty"`
}

// ForGender reports whether p is shown under gender g. Unisex products are
// shown for every gender and an empty g matches everything.
func (p Product) ForGender(g Gender) bool {
	return g == "" || p.Gender == g || p.Gender == GenderUnisex
}

// Matches reports whether the lowercased query occurs in the product name,
// description or category.
func (p Product) Matches(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Name), q) ||
		strings.Contains(strings.ToLower(p.Description), q) ||
		strings.Contains(strings.ToLower(p.Category), q)
}

// Collection groups products for a landing page.
type Collection struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Gender      Gender `json:"gender"`
}
