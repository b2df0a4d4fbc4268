package models

import "strings"

// Dietary restriction codes used by the menu resources.
const (
	RestrictionDairy      = "D"
	RestrictionGluten     = "G"
	RestrictionNuts       = "N"
	RestrictionShellfish  = "S"
	RestrictionVegetarian = "V"
)

// MenuSection is a named, ordered group of dishes (e.g. "Breakfast").
type MenuSection struct {
	// ID is the unique identifier for the section (UUID format).
	ID string `json:"id"`

	// Name is the localized display name, also used as the category filter key.
	Name string `json:"name"`

	// Items are the dishes in display order.
	Items []MenuItem `json:"items"`
}

// MenuItem is a single dish in the catalog. Items are built once when the
// catalog is decoded and are never mutated afterwards.
//
// Identity is the ID: cart removal, favorite membership and equality checks
// all compare IDs, never the full struct.
type MenuItem struct {
	// ID is the stable identifier for the dish, shared across languages.
	ID string `json:"id"`

	// Name is the localized display name.
	Name string `json:"name"`

	// EnglishName is set on non-English resources so image keys stay stable.
	EnglishName string `json:"englishName,omitempty"`

	// PhotoCredit names the photographer of the dish image.
	PhotoCredit string `json:"photoCredit"`

	// Price is in whole currency units.
	Price int `json:"price"`

	// Restrictions are dietary codes (see the Restriction* constants).
	Restrictions []string `json:"restrictions"`

	Description    string       `json:"description"`
	Calories       int          `json:"calories"`
	AttributeTitle string       `json:"attributeTitle,omitempty"`
	Ingredients    []Ingredient `json:"ingredients,omitempty"`
}

// Ingredient is a named ingredient with an emoji icon.
type Ingredient struct {
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// SameItem reports whether a and b refer to the same dish.
func (m MenuItem) SameItem(other MenuItem) bool {
	return m.ID == other.ID
}

// MainImage returns the asset key for the full-size image: the English name
// (or the display name when absent), lowercased with spaces replaced by hyphens.
func (m MenuItem) MainImage() string {
	name := m.Name
	if m.EnglishName != "" {
		name = m.EnglishName
	}
	return strings.ToLower(strings.ReplaceAll(name, " ", "-"))
}

// ThumbnailImage returns the asset key for the thumbnail image.
func (m MenuItem) ThumbnailImage() string {
	return m.MainImage() + "-thumb"
}

// HasRestriction reports whether the dish carries the given dietary code.
func (m MenuItem) HasRestriction(code string) bool {
	for _, r := range m.Restrictions {
		if r == code {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so snapshots never share slices with the catalog.
func (m MenuItem) Clone() MenuItem {
	out := m
	if m.Restrictions != nil {
		out.Restrictions = append([]string(nil), m.Restrictions...)
	}
	if m.Ingredients != nil {
		out.Ingredients = append([]Ingredient(nil), m.Ingredients...)
	}
	return out
}
