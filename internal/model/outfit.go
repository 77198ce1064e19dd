package model

// ShoppingSuggestion names a piece the wardrobe lacks and why it is needed.
type ShoppingSuggestion struct {
	Item   string `json:"item"`
	Reason string `json:"reason"`
}

// OutfitRecommendation is one proposed combination of wardrobe items for a
// stated occasion. Recommendations are transient: produced per request and
// never persisted. ItemsUsed may reference ids that have since been removed
// from the wardrobe; such references are skipped at display time rather than
// treated as errors.
//
// The JSON field names are the wire contract with the AI model's structured
// output; they must stay in sync with the response schema in the stylist
// package.
type OutfitRecommendation struct {
	ID                   string               `json:"id"`
	Title                string               `json:"title"`
	Occasion             string               `json:"occasion"`
	ItemsUsed            []string             `json:"itemsUsed"`
	SuggestedAccessories []string             `json:"suggestedAccessories"`
	SuggestedFootwear    string               `json:"suggestedFootwear,omitempty"`
	SuggestedLayering    string               `json:"suggestedLayering,omitempty"`
	Rationale            string               `json:"rationale"`
	ShoppingSuggestions  []ShoppingSuggestion `json:"shoppingSuggestions"`
}
