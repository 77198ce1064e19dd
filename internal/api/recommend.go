package api

import (
	"errors"
	"net/http"

	"github.com/stylesense/stylesense/internal/model"
	"github.com/stylesense/stylesense/internal/store"
	"github.com/stylesense/stylesense/internal/stylist"
)

// RecommendHandler handles outfit recommendation endpoints.
type RecommendHandler struct {
	Wardrobe *store.Wardrobe
	Stylist  *stylist.Orchestrator
	Session  *stylist.Session
}

type recommendRequest struct {
	Context        string `json:"context"`
	RequiredItemID string `json:"required_item_id,omitempty"`
}

// outfitView is an OutfitRecommendation expanded for display: itemsUsed ids
// that still resolve to wardrobe items carry the full item, dangling ids
// are listed separately and simply not displayed.
type outfitView struct {
	model.OutfitRecommendation
	ResolvedItems []model.WardrobeItem `json:"resolved_items"`
	DanglingItems []string             `json:"dangling_items,omitempty"`
}

// Create handles POST /api/recommendations. The request runs through the
// recommendation session: a request issued while another is loading
// supersedes it, and the superseded result is dropped.
func (h *RecommendHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req recommendRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token := h.Session.Begin()
	outfits, err := h.Stylist.RecommendOutfits(r.Context(), h.Wardrobe.Items(), req.Context, req.RequiredItemID)
	if err != nil {
		h.Session.Fail(token, err)
		switch {
		case errors.Is(err, stylist.ErrInsufficientInput):
			jsonError(w, http.StatusUnprocessableEntity, err.Error())
		case errors.Is(err, stylist.ErrEmptyRecommendation):
			jsonError(w, http.StatusBadGateway, "no outfits could be generated, try a simpler request")
		default:
			var serr *stylist.SchemaError
			if errors.As(err, &serr) {
				jsonError(w, http.StatusBadGateway, "malformed stylist response: "+serr.Error())
				return
			}
			jsonError(w, http.StatusBadGateway, "stylist service unavailable")
		}
		return
	}
	h.Session.Succeed(token, outfits)

	views := make([]outfitView, 0, len(outfits))
	for _, outfit := range outfits {
		views = append(views, h.expand(outfit))
	}
	jsonResponse(w, http.StatusOK, views)
}

// Status handles GET /api/recommendations: the current session snapshot.
func (h *RecommendHandler) Status(w http.ResponseWriter, r *http.Request) {
	state, outfits, err := h.Session.Snapshot()

	resp := map[string]any{"state": state}
	if len(outfits) > 0 {
		views := make([]outfitView, 0, len(outfits))
		for _, outfit := range outfits {
			views = append(views, h.expand(outfit))
		}
		resp["outfits"] = views
	}
	if err != nil {
		resp["error"] = err.Error()
	}
	jsonResponse(w, http.StatusOK, resp)
}

// expand resolves itemsUsed references against the current wardrobe.
func (h *RecommendHandler) expand(outfit model.OutfitRecommendation) outfitView {
	view := outfitView{OutfitRecommendation: outfit, ResolvedItems: []model.WardrobeItem{}}
	for _, id := range outfit.ItemsUsed {
		if item := h.Wardrobe.Get(id); item != nil {
			view.ResolvedItems = append(view.ResolvedItems, *item)
		} else {
			view.DanglingItems = append(view.DanglingItems, id)
		}
	}
	return view
}
