package stylist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/stylesense/stylesense/internal/model"
)

// maxPairingItems bounds the wardrobe summary embedded in pairing prompts.
const maxPairingItems = 15

// pairingFallback replaces an empty pairing-advice response.
const pairingFallback = "Could not generate advice."

// ItemAttributes is the structured result of analyzing one clothing photo.
// Category and Style are guaranteed valid enum values; the free-text fields
// may be sparse, and callers apply display defaults when building a
// persisted item.
type ItemAttributes struct {
	Type     string `json:"type"`
	Color    string `json:"color"`
	Fabric   string `json:"fabric"`
	Category string `json:"category"`
	Style    string `json:"style"`
}

// Orchestrator translates wardrobe requests into AI prompts with an
// output-schema contract and validated responses back into domain objects.
// Every call is a single best-effort attempt: no automatic retries, and no
// partial results.
type Orchestrator struct {
	gen Generator

	// Model ids by convention: a lightweight model for single-item analysis
	// and pairing text, a higher-capability model for multi-outfit
	// reasoning. Which concrete model serves an id is the AI service's
	// concern.
	analysisModel string
	stylistModel  string
}

// NewOrchestrator wires a generator with the two model ids.
func NewOrchestrator(gen Generator, analysisModel, stylistModel string) *Orchestrator {
	return &Orchestrator{gen: gen, analysisModel: analysisModel, stylistModel: stylistModel}
}

var analysisRequirement = requirement{
	required: []string{"type", "color", "fabric", "category", "style"},
	enums: map[string][]string{
		"category": model.Categories(),
		"style":    model.Styles(),
	},
}

var outfitRequirement = requirement{
	required: []string{"id", "title", "occasion", "itemsUsed", "rationale", "shoppingSuggestions"},
	arrays: map[string]bool{
		"itemsUsed":           true,
		"shoppingSuggestions": true,
	},
}

const analyzePrompt = `Analyze this clothing item image strictly.
Return a valid JSON object with the following fields:
- type: Specific clothing item name (e.g., "Denim Jacket", "Silk Saree", "Cotton T-Shirt").
- color: Primary color.
- fabric: Visible fabric texture.
- category: One of ['Tops', 'Bottoms', 'Dresses', 'Outerwear', 'Shoes', 'Accessories'].
- style: One of ['Casual', 'Formal', 'Party', 'Business', 'Sporty'].`

// AnalyzeItem extracts structured attributes from a clothing photo. All
// five fields must be present with valid enum values or the call fails with
// ErrAnalysisIncomplete wrapping the SchemaError; a response that is not
// JSON at all, like any transport failure, surfaces as ErrAIService.
func (o *Orchestrator) AnalyzeItem(ctx context.Context, image []byte, mime string) (*ItemAttributes, error) {
	raw, err := o.gen.Generate(ctx, o.analysisModel, GenerateRequest{
		Prompt:    analyzePrompt,
		Image:     image,
		ImageMIME: mime,
		Schema:    analysisSchema(),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAIService, err)
	}

	obj, err := parseObject([]byte(raw), analysisRequirement)
	if err != nil {
		var serr *SchemaError
		if errors.As(err, &serr) {
			return nil, fmt.Errorf("%w: %w", ErrAnalysisIncomplete, serr)
		}
		return nil, fmt.Errorf("%w: %w", ErrAIService, err)
	}

	attrs := &ItemAttributes{
		Type:     obj["type"].(string),
		Color:    obj["color"].(string),
		Fabric:   obj["fabric"].(string),
		Category: obj["category"].(string),
		Style:    obj["style"].(string),
	}
	return attrs, nil
}

// RecommendOutfits asks for exactly three outfit options composed from the
// given wardrobe. Preconditions are checked before any AI call: a non-empty
// styling request and at least two wardrobe items, otherwise
// ErrInsufficientInput. When requiredItemID names a wardrobe item, every
// outfit must include it. Zero usable outfits fail with
// ErrEmptyRecommendation, surfaced to the caller and never retried here.
func (o *Orchestrator) RecommendOutfits(ctx context.Context, wardrobe []model.WardrobeItem, occasion, requiredItemID string) ([]model.OutfitRecommendation, error) {
	if strings.TrimSpace(occasion) == "" {
		return nil, fmt.Errorf("%w: styling request is empty", ErrInsufficientInput)
	}
	if len(wardrobe) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 wardrobe items, have %d", ErrInsufficientInput, len(wardrobe))
	}

	prompt := buildOutfitPrompt(wardrobe, occasion, requiredItemID)

	raw, err := o.gen.Generate(ctx, o.stylistModel, GenerateRequest{
		Prompt: prompt,
		Schema: outfitsSchema(),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAIService, err)
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &envelope); err != nil {
		return nil, fmt.Errorf("%w: parsing response: %w", ErrAIService, err)
	}

	var rawOutfits []json.RawMessage
	if entries, ok := envelope["outfits"]; ok {
		// A non-array here is treated the same as no outfits at all.
		_ = json.Unmarshal(entries, &rawOutfits)
	}
	if len(rawOutfits) == 0 {
		return nil, ErrEmptyRecommendation
	}

	outfits := make([]model.OutfitRecommendation, 0, len(rawOutfits))
	for i, entry := range rawOutfits {
		if _, err := parseObject(entry, outfitRequirement); err != nil {
			var serr *SchemaError
			if errors.As(err, &serr) {
				return nil, &SchemaError{
					Field:  fmt.Sprintf("outfits[%d].%s", i, serr.Field),
					Reason: serr.Reason,
				}
			}
			return nil, fmt.Errorf("%w: parsing outfit %d: %w", ErrAIService, i, err)
		}

		var rec model.OutfitRecommendation
		if err := json.Unmarshal(entry, &rec); err != nil {
			return nil, fmt.Errorf("%w: decoding outfit %d: %w", ErrAIService, i, err)
		}

		// Optional sequences are empty, never null.
		if rec.ItemsUsed == nil {
			rec.ItemsUsed = []string{}
		}
		if rec.SuggestedAccessories == nil {
			rec.SuggestedAccessories = []string{}
		}
		if rec.ShoppingSuggestions == nil {
			rec.ShoppingSuggestions = []model.ShoppingSuggestion{}
		}
		outfits = append(outfits, rec)
	}

	return outfits, nil
}

// buildOutfitPrompt embeds the full wardrobe, the occasion, and the styling
// constraints into a single stylist prompt.
func buildOutfitPrompt(wardrobe []model.WardrobeItem, occasion, requiredItemID string) string {
	var sb strings.Builder
	for _, item := range wardrobe {
		fmt.Fprintf(&sb, "- [ID: %s] %s (%s, %s, %s, Style: %s)\n",
			item.ID, item.Type, item.Category, item.Color, item.Fabric, item.Style)
	}

	requiredClause := ""
	if requiredItemID != "" {
		for _, item := range wardrobe {
			if item.ID == requiredItemID {
				requiredClause = fmt.Sprintf("REQUIREMENT: The outfit MUST include the item %q (ID: %s).\n", item.Type, item.ID)
				break
			}
		}
	}

	return fmt.Sprintf(`You are an elite fashion stylist using the user's digital wardrobe.

USER WARDROBE:
%s
OCCASION/REQUEST: %s
%s
STRICT STYLING RULES:
1. DO NOT mix traditional ethnic wear (e.g., Lehenga, Saree, Sherwani, Kurta) with casual western bottoms (e.g., Jeans, Shorts, Joggers) unless it is a specific "Indo-Western Fusion" request.
2. If the user has a Lehenga/Saree, do not pair it with a t-shirt.
3. Ensure formal tops go with formal bottoms.
4. If the wardrobe lacks a matching bottom/top, DO NOT force a bad match. Instead, use the 'shoppingSuggestions' field to suggest the missing piece.
5. Return exactly 3 outfit options.`, sb.String(), occasion, requiredClause)
}

// PairingAdvice asks for a short compatibility judgment between a candidate
// purchase and the existing wardrobe. At most the first maxPairingItems
// items are summarized (color and type only) to bound prompt size. An empty
// response is replaced with a fixed fallback, never an error; transport
// failures still surface as ErrAIService.
func (o *Orchestrator) PairingAdvice(ctx context.Context, candidate string, wardrobe []model.WardrobeItem) (string, error) {
	summary := make([]string, 0, maxPairingItems)
	for _, item := range wardrobe {
		if len(summary) == maxPairingItems {
			break
		}
		summary = append(summary, fmt.Sprintf("%s %s", item.Color, item.Type))
	}

	prompt := fmt.Sprintf(`I am considering buying: %q.
My current wardrobe includes: %s.

Briefly explain (in 2 sentences) how this new item pairs with my existing clothes.
Focus on color versatility and style matching. If it doesn't match well, say so politely.`,
		candidate, strings.Join(summary, ", "))

	raw, err := o.gen.Generate(ctx, o.analysisModel, GenerateRequest{Prompt: prompt})
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrAIService, err)
	}

	advice := strings.TrimSpace(raw)
	if advice == "" {
		return pairingFallback, nil
	}
	return advice, nil
}
