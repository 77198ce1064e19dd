package api

import (
	"context"
	"database/sql"
	"encoding/base64"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/stylesense/stylesense/internal/imaging"
	"github.com/stylesense/stylesense/internal/model"
	"github.com/stylesense/stylesense/internal/store"
	"github.com/stylesense/stylesense/internal/stylist"
)

// WardrobeHandler handles wardrobe endpoints.
type WardrobeHandler struct {
	DB       *sql.DB
	Wardrobe *store.Wardrobe
	Stylist  *stylist.Orchestrator
}

// ensureActive makes sure the wardrobe store is loaded for the token's
// identity. A corrupt persisted collection degrades to empty with a
// warning, matching the login path.
func (h *WardrobeHandler) ensureActive(ctx context.Context, email string) error {
	if h.Wardrobe.ActiveUser() == email {
		return nil
	}
	if err := h.Wardrobe.SwitchUser(ctx, email); err != nil {
		if !errors.Is(err, store.ErrStorageCorrupt) {
			return err
		}
		slog.Warn("persisted wardrobe is corrupt, starting empty", "user", email, "error", err)
	}
	return nil
}

// List handles GET /api/wardrobe. Items are returned newest first.
func (h *WardrobeHandler) List(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	if err := h.ensureActive(r.Context(), claims.Email); err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to load wardrobe")
		return
	}
	jsonResponse(w, http.StatusOK, h.Wardrobe.Items())
}

// Upload handles POST /api/wardrobe: a multipart photo upload. The photo is
// downscaled, analyzed by the AI model, and the resulting item is added to
// the collection. Sparse free-text attributes get display defaults; an
// analysis response missing a required field is surfaced as an upstream
// failure, never silently defaulted into a full item.
func (h *WardrobeHandler) Upload(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	if err := h.ensureActive(r.Context(), claims.Email); err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to load wardrobe")
		return
	}

	// Limit to 5 MB.
	r.Body = http.MaxBytesReader(w, r.Body, 5<<20)
	if err := r.ParseMultipartForm(5 << 20); err != nil {
		jsonError(w, http.StatusBadRequest, "file too large or invalid multipart form")
		return
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		jsonError(w, http.StatusBadRequest, "image file required")
		return
	}
	defer file.Close()

	photo, err := imaging.Process(file)
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	attrs, err := h.Stylist.AnalyzeItem(r.Context(), photo.Data, photo.MIME)
	if err != nil {
		if errors.Is(err, stylist.ErrAnalysisIncomplete) {
			jsonError(w, http.StatusBadGateway, "analysis response incomplete, try a clearer photo")
			return
		}
		jsonError(w, http.StatusBadGateway, "analysis failed")
		return
	}

	item := model.WardrobeItem{
		ID:        uuid.NewString(),
		Type:      attrs.Type,
		Color:     attrs.Color,
		Fabric:    attrs.Fabric,
		Category:  attrs.Category,
		Style:     attrs.Style,
		CreatedAt: time.Now().UTC(),
	}
	// Display defaults for sparse free-text attributes. Category and style
	// are already validated enum values.
	if item.Type == "" {
		item.Type = "Unknown Item"
	}
	if item.Color == "" {
		item.Color = "Unknown Color"
	}
	if item.Fabric == "" {
		item.Fabric = "Unknown Fabric"
	}
	item.ImageRef = "/api/wardrobe/" + item.ID + "/image"

	imageKey := store.ImageKey(item.ID)
	encoded := base64.StdEncoding.EncodeToString(photo.Data)
	if err := store.KVSet(r.Context(), h.DB, imageKey, encoded); err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to save photo")
		return
	}

	if err := h.Wardrobe.Add(r.Context(), item); err != nil {
		_ = store.KVDelete(r.Context(), h.DB, imageKey)
		if errors.Is(err, store.ErrDuplicateItem) {
			jsonError(w, http.StatusConflict, "item already exists")
			return
		}
		jsonError(w, http.StatusInternalServerError, "failed to save item")
		return
	}

	jsonResponse(w, http.StatusCreated, item)
}

// Delete handles DELETE /api/wardrobe/{id}. Removing an unknown id is a
// no-op and still succeeds.
func (h *WardrobeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	if err := h.ensureActive(r.Context(), claims.Email); err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to load wardrobe")
		return
	}

	id := r.PathValue("id")
	if err := h.Wardrobe.Remove(r.Context(), id); err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to remove item")
		return
	}
	_ = store.KVDelete(r.Context(), h.DB, store.ImageKey(id))

	jsonResponse(w, http.StatusOK, map[string]string{"message": "item removed"})
}

// GetImage handles GET /api/wardrobe/{id}/image.
func (h *WardrobeHandler) GetImage(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	encoded, ok, err := store.KVGet(r.Context(), h.DB, store.ImageKey(id))
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to load photo")
		return
	}
	if !ok {
		jsonError(w, http.StatusNotFound, "no image")
		return
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "stored photo is corrupt")
		return
	}

	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Write(data)
}
