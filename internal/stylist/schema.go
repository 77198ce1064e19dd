package stylist

import (
	"google.golang.org/genai"

	"github.com/stylesense/stylesense/internal/model"
)

// analysisSchema constrains an item-analysis response to the five required
// attributes with enumerated category and style values.
func analysisSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"type":   {Type: genai.TypeString},
			"color":  {Type: genai.TypeString},
			"fabric": {Type: genai.TypeString},
			"category": {
				Type: genai.TypeString,
				Enum: model.Categories(),
			},
			"style": {
				Type: genai.TypeString,
				Enum: model.Styles(),
			},
		},
		Required: []string{"type", "color", "fabric", "category", "style"},
	}
}

// outfitsSchema constrains a recommendation response to an object with an
// "outfits" array. Field names are the wire contract shared with
// model.OutfitRecommendation's JSON tags.
func outfitsSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"outfits": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"id":       {Type: genai.TypeString},
						"title":    {Type: genai.TypeString},
						"occasion": {Type: genai.TypeString},
						"itemsUsed": {
							Type:  genai.TypeArray,
							Items: &genai.Schema{Type: genai.TypeString},
						},
						"suggestedAccessories": {
							Type:  genai.TypeArray,
							Items: &genai.Schema{Type: genai.TypeString},
						},
						"suggestedFootwear": {Type: genai.TypeString},
						"suggestedLayering": {Type: genai.TypeString},
						"rationale":         {Type: genai.TypeString},
						"shoppingSuggestions": {
							Type: genai.TypeArray,
							Items: &genai.Schema{
								Type: genai.TypeObject,
								Properties: map[string]*genai.Schema{
									"item":   {Type: genai.TypeString},
									"reason": {Type: genai.TypeString},
								},
								Required: []string{"item", "reason"},
							},
						},
					},
					Required: []string{"id", "title", "occasion", "itemsUsed", "rationale", "shoppingSuggestions"},
				},
			},
		},
		Required: []string{"outfits"},
	}
}
