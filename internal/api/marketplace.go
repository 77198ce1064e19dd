package api

import (
	"net/http"
	"strings"

	"github.com/stylesense/stylesense/internal/model"
	"github.com/stylesense/stylesense/internal/store"
	"github.com/stylesense/stylesense/internal/stylist"
)

// MarketplaceHandler handles the static catalog and pairing advice.
type MarketplaceHandler struct {
	Wardrobe *store.Wardrobe
	Stylist  *stylist.Orchestrator
}

type pairingRequest struct {
	ItemName string `json:"item_name"`
}

// List handles GET /api/marketplace.
func (h *MarketplaceHandler) List(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, model.MarketplaceCatalog())
}

// Pairing handles POST /api/marketplace/pairing: how well would a candidate
// purchase pair with the current wardrobe. An empty model response comes
// back as a fixed fallback string, so this endpoint only fails on service
// errors.
func (h *MarketplaceHandler) Pairing(w http.ResponseWriter, r *http.Request) {
	var req pairingRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.ItemName) == "" {
		jsonError(w, http.StatusBadRequest, "item_name required")
		return
	}

	advice, err := h.Stylist.PairingAdvice(r.Context(), req.ItemName, h.Wardrobe.Items())
	if err != nil {
		jsonError(w, http.StatusBadGateway, "stylist service unavailable")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]string{"advice": advice})
}
