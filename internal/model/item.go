package model

import "time"

// WardrobeItem is one cataloged clothing piece with AI-extracted attributes.
// Items are immutable once created; the only mutation is removal.
type WardrobeItem struct {
	ID        string    `json:"id"`
	ImageRef  string    `json:"image_ref,omitempty"`
	Type      string    `json:"type"`
	Color     string    `json:"color"`
	Fabric    string    `json:"fabric"`
	Category  string    `json:"category"`
	Style     string    `json:"style"`
	CreatedAt time.Time `json:"created_at"`
}

// Categories.
const (
	CategoryTops        = "Tops"
	CategoryBottoms     = "Bottoms"
	CategoryDresses     = "Dresses"
	CategoryOuterwear   = "Outerwear"
	CategoryShoes       = "Shoes"
	CategoryAccessories = "Accessories"
)

// Styles.
const (
	StyleCasual   = "Casual"
	StyleFormal   = "Formal"
	StyleParty    = "Party"
	StyleBusiness = "Business"
	StyleSporty   = "Sporty"
)

// Categories returns all valid category values, in display order.
func Categories() []string {
	return []string{
		CategoryTops, CategoryBottoms, CategoryDresses,
		CategoryOuterwear, CategoryShoes, CategoryAccessories,
	}
}

// Styles returns all valid style values, in display order.
func Styles() []string {
	return []string{StyleCasual, StyleFormal, StyleParty, StyleBusiness, StyleSporty}
}

// ValidCategory reports whether c is a declared category value.
func ValidCategory(c string) bool {
	for _, v := range Categories() {
		if c == v {
			return true
		}
	}
	return false
}

// ValidStyle reports whether s is a declared style value.
func ValidStyle(s string) bool {
	for _, v := range Styles() {
		if s == v {
			return true
		}
	}
	return false
}
