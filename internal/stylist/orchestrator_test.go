package stylist

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stylesense/stylesense/internal/model"
)

// fakeGenerator scripts AI responses and records the last request so tests
// can assert on the prompt and model routing.
type fakeGenerator struct {
	response string
	err      error

	lastModel string
	lastReq   GenerateRequest
}

func (f *fakeGenerator) Generate(_ context.Context, model string, req GenerateRequest) (string, error) {
	f.lastModel = model
	f.lastReq = req
	return f.response, f.err
}

func testWardrobe() []model.WardrobeItem {
	now := time.Now().UTC()
	return []model.WardrobeItem{
		{ID: "a", Type: "Denim Jacket", Color: "Blue", Fabric: "Denim", Category: model.CategoryOuterwear, Style: model.StyleCasual, CreatedAt: now},
		{ID: "b", Type: "White T-Shirt", Color: "White", Fabric: "Cotton", Category: model.CategoryTops, Style: model.StyleCasual, CreatedAt: now},
		{ID: "c", Type: "Black Jeans", Color: "Black", Fabric: "Denim", Category: model.CategoryBottoms, Style: model.StyleCasual, CreatedAt: now},
	}
}

const validOutfitsResponse = `{"outfits":[
	{"id":"o1","title":"Weekend Layers","occasion":"Brunch","itemsUsed":["a","b"],"rationale":"Relaxed and balanced.","shoppingSuggestions":[]},
	{"id":"o2","title":"Simple Monochrome","occasion":"Brunch","itemsUsed":["b","c"],"rationale":"Clean contrast.","shoppingSuggestions":[{"item":"White Sneakers","reason":"Grounds the look."}]},
	{"id":"o3","title":"Full Denim","occasion":"Brunch","itemsUsed":["a","c"],"rationale":"Texture on texture.","shoppingSuggestions":[]}
]}`

func TestAnalyzeItem(t *testing.T) {
	gen := &fakeGenerator{response: `{"type":"Denim Jacket","color":"Blue","fabric":"Denim","category":"Outerwear","style":"Casual"}`}
	o := NewOrchestrator(gen, "flash", "pro")

	attrs, err := o.AnalyzeItem(context.Background(), []byte{0xff, 0xd8}, "image/jpeg")
	if err != nil {
		t.Fatalf("AnalyzeItem: %v", err)
	}
	if attrs.Type != "Denim Jacket" || attrs.Category != model.CategoryOuterwear {
		t.Errorf("unexpected attributes: %+v", attrs)
	}

	if gen.lastModel != "flash" {
		t.Errorf("analysis should use the analysis model, got %q", gen.lastModel)
	}
	if gen.lastReq.Schema == nil {
		t.Error("analysis request must carry a response schema")
	}
	if len(gen.lastReq.Image) == 0 || gen.lastReq.ImageMIME != "image/jpeg" {
		t.Error("analysis request must carry the image")
	}
}

func TestAnalyzeItemMissingField(t *testing.T) {
	gen := &fakeGenerator{response: `{"type":"Denim Jacket","color":"Blue","fabric":"Denim","style":"Casual"}`}
	o := NewOrchestrator(gen, "flash", "pro")

	_, err := o.AnalyzeItem(context.Background(), nil, "image/jpeg")
	if !errors.Is(err, ErrAnalysisIncomplete) {
		t.Fatalf("expected ErrAnalysisIncomplete, got %v", err)
	}
	var serr *SchemaError
	if !errors.As(err, &serr) || serr.Field != "category" {
		t.Errorf("expected SchemaError on category, got %v", err)
	}
}

func TestAnalyzeItemInvalidEnum(t *testing.T) {
	gen := &fakeGenerator{response: `{"type":"Denim Jacket","color":"Blue","fabric":"Denim","category":"Outerwear","style":"Streetwear"}`}
	o := NewOrchestrator(gen, "flash", "pro")

	_, err := o.AnalyzeItem(context.Background(), nil, "image/jpeg")
	if !errors.Is(err, ErrAnalysisIncomplete) {
		t.Fatalf("expected ErrAnalysisIncomplete, got %v", err)
	}
	var serr *SchemaError
	if !errors.As(err, &serr) || serr.Field != "style" {
		t.Errorf("expected SchemaError on style, got %v", err)
	}
}

func TestAnalyzeItemNonJSONResponse(t *testing.T) {
	gen := &fakeGenerator{response: "I cannot analyze this image."}
	o := NewOrchestrator(gen, "flash", "pro")

	_, err := o.AnalyzeItem(context.Background(), nil, "image/jpeg")
	if !errors.Is(err, ErrAIService) {
		t.Fatalf("expected ErrAIService, got %v", err)
	}
	if errors.Is(err, ErrAnalysisIncomplete) {
		t.Error("non-JSON payload must not classify as incomplete analysis")
	}
}

func TestAnalyzeItemGeneratorError(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("deadline exceeded")}
	o := NewOrchestrator(gen, "flash", "pro")

	if _, err := o.AnalyzeItem(context.Background(), nil, "image/jpeg"); !errors.Is(err, ErrAIService) {
		t.Errorf("expected ErrAIService, got %v", err)
	}
}

func TestRecommendOutfits(t *testing.T) {
	gen := &fakeGenerator{response: validOutfitsResponse}
	o := NewOrchestrator(gen, "flash", "pro")

	outfits, err := o.RecommendOutfits(context.Background(), testWardrobe(), "Sunday brunch", "")
	if err != nil {
		t.Fatalf("RecommendOutfits: %v", err)
	}
	if len(outfits) != 3 {
		t.Fatalf("expected 3 outfits, got %d", len(outfits))
	}
	// Response order is preserved.
	if outfits[0].ID != "o1" || outfits[1].ID != "o2" || outfits[2].ID != "o3" {
		t.Errorf("outfit order not preserved: %+v", outfits)
	}
	if outfits[0].SuggestedAccessories == nil || outfits[0].ShoppingSuggestions == nil {
		t.Error("optional sequences must be empty, not nil")
	}

	if gen.lastModel != "pro" {
		t.Errorf("outfit generation should use the stylist model, got %q", gen.lastModel)
	}
	if !strings.Contains(gen.lastReq.Prompt, "[ID: a] Denim Jacket") {
		t.Error("prompt must list wardrobe items with their ids")
	}
	if !strings.Contains(gen.lastReq.Prompt, "OCCASION/REQUEST: Sunday brunch") {
		t.Error("prompt must carry the styling request")
	}
}

func TestRecommendOutfitsRequiredItem(t *testing.T) {
	gen := &fakeGenerator{response: validOutfitsResponse}
	o := NewOrchestrator(gen, "flash", "pro")

	if _, err := o.RecommendOutfits(context.Background(), testWardrobe(), "Brunch", "a"); err != nil {
		t.Fatalf("RecommendOutfits: %v", err)
	}
	if !strings.Contains(gen.lastReq.Prompt, `MUST include the item "Denim Jacket" (ID: a)`) {
		t.Errorf("prompt missing required-item clause:\n%s", gen.lastReq.Prompt)
	}
}

func TestRecommendOutfitsUnknownRequiredItemIgnored(t *testing.T) {
	gen := &fakeGenerator{response: validOutfitsResponse}
	o := NewOrchestrator(gen, "flash", "pro")

	if _, err := o.RecommendOutfits(context.Background(), testWardrobe(), "Brunch", "nope"); err != nil {
		t.Fatalf("RecommendOutfits: %v", err)
	}
	if strings.Contains(gen.lastReq.Prompt, "REQUIREMENT:") {
		t.Error("unknown required item must not produce a requirement clause")
	}
}

func TestRecommendOutfitsInsufficientInput(t *testing.T) {
	gen := &fakeGenerator{response: validOutfitsResponse}
	o := NewOrchestrator(gen, "flash", "pro")

	if _, err := o.RecommendOutfits(context.Background(), testWardrobe(), "   ", ""); !errors.Is(err, ErrInsufficientInput) {
		t.Errorf("expected ErrInsufficientInput for blank request, got %v", err)
	}
	if _, err := o.RecommendOutfits(context.Background(), testWardrobe()[:1], "Brunch", ""); !errors.Is(err, ErrInsufficientInput) {
		t.Errorf("expected ErrInsufficientInput for a single item, got %v", err)
	}
	if gen.lastModel != "" {
		t.Error("preconditions must be checked before any AI call")
	}
}

func TestRecommendOutfitsEmptyResult(t *testing.T) {
	for _, response := range []string{`{"outfits":[]}`, `{}`, `{"outfits":"none"}`} {
		gen := &fakeGenerator{response: response}
		o := NewOrchestrator(gen, "flash", "pro")

		_, err := o.RecommendOutfits(context.Background(), testWardrobe(), "Brunch", "")
		if !errors.Is(err, ErrEmptyRecommendation) {
			t.Errorf("response %q: expected ErrEmptyRecommendation, got %v", response, err)
		}
	}
}

func TestRecommendOutfitsMalformedOutfit(t *testing.T) {
	gen := &fakeGenerator{response: `{"outfits":[
		{"id":"o1","title":"Look","occasion":"Brunch","itemsUsed":["a"],"rationale":"r","shoppingSuggestions":[]},
		{"id":"o2","title":"Look","occasion":"Brunch","itemsUsed":["b"],"shoppingSuggestions":[]}
	]}`}
	o := NewOrchestrator(gen, "flash", "pro")

	_, err := o.RecommendOutfits(context.Background(), testWardrobe(), "Brunch", "")
	var serr *SchemaError
	if !errors.As(err, &serr) {
		t.Fatalf("expected SchemaError, got %v", err)
	}
	if serr.Field != "outfits[1].rationale" {
		t.Errorf("expected outfits[1].rationale, got %q", serr.Field)
	}
}

func TestRecommendOutfitsNonJSONResponse(t *testing.T) {
	gen := &fakeGenerator{response: "no outfits for you"}
	o := NewOrchestrator(gen, "flash", "pro")

	if _, err := o.RecommendOutfits(context.Background(), testWardrobe(), "Brunch", ""); !errors.Is(err, ErrAIService) {
		t.Errorf("expected ErrAIService, got %v", err)
	}
}

func TestPairingAdvice(t *testing.T) {
	gen := &fakeGenerator{response: "Pairs nicely with your blue denim jacket."}
	o := NewOrchestrator(gen, "flash", "pro")

	advice, err := o.PairingAdvice(context.Background(), "Beige Trench Coat", testWardrobe())
	if err != nil {
		t.Fatalf("PairingAdvice: %v", err)
	}
	if advice != "Pairs nicely with your blue denim jacket." {
		t.Errorf("unexpected advice: %q", advice)
	}

	if gen.lastModel != "flash" {
		t.Errorf("pairing should use the analysis model, got %q", gen.lastModel)
	}
	if gen.lastReq.Schema != nil {
		t.Error("pairing advice is free text, no schema expected")
	}
	if !strings.Contains(gen.lastReq.Prompt, "Blue Denim Jacket") {
		t.Error("prompt must summarize wardrobe items as color plus type")
	}
}

func TestPairingAdviceFallbackOnEmpty(t *testing.T) {
	gen := &fakeGenerator{response: "  \n"}
	o := NewOrchestrator(gen, "flash", "pro")

	advice, err := o.PairingAdvice(context.Background(), "Beige Trench Coat", testWardrobe())
	if err != nil {
		t.Fatalf("PairingAdvice: %v", err)
	}
	if advice != pairingFallback {
		t.Errorf("expected fallback advice, got %q", advice)
	}
}

func TestPairingAdviceTruncatesWardrobe(t *testing.T) {
	wardrobe := make([]model.WardrobeItem, 0, 20)
	for i := 0; i < 20; i++ {
		item := testWardrobe()[0]
		item.ID = string(rune('a' + i))
		item.Type = "Shirt" + item.ID
		wardrobe = append(wardrobe, item)
	}

	gen := &fakeGenerator{response: "ok"}
	o := NewOrchestrator(gen, "flash", "pro")
	if _, err := o.PairingAdvice(context.Background(), "Coat", wardrobe); err != nil {
		t.Fatalf("PairingAdvice: %v", err)
	}

	if got := strings.Count(gen.lastReq.Prompt, "Blue Shirt"); got != maxPairingItems {
		t.Errorf("expected %d summarized items, got %d", maxPairingItems, got)
	}
}

func TestPairingAdviceGeneratorError(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("quota exceeded")}
	o := NewOrchestrator(gen, "flash", "pro")

	if _, err := o.PairingAdvice(context.Background(), "Coat", testWardrobe()); !errors.Is(err, ErrAIService) {
		t.Errorf("expected ErrAIService, got %v", err)
	}
}
