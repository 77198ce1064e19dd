package api

import (
	"errors"
	"net/http"

	"github.com/stylesense/stylesense/internal/model"
	"github.com/stylesense/stylesense/internal/session"
)

// AuthHandler handles authentication endpoints. Authentication is demo
// mode: any name/email pair is accepted as-is, and the password field, if
// sent, is ignored. Real credential validation is an external collaborator.
type AuthHandler struct {
	Sessions *session.Manager
}

type loginRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type loginResponse struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, user, err := h.Sessions.Login(r.Context(), req.Name, req.Email)
	if err != nil {
		if errors.Is(err, session.ErrInvalidIdentity) {
			jsonError(w, http.StatusBadRequest, "name and email required")
			return
		}
		jsonError(w, http.StatusInternalServerError, "failed to establish session")
		return
	}

	jsonResponse(w, http.StatusOK, loginResponse{Token: token, User: user})
}

// Logout handles POST /api/auth/logout.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.Sessions.Logout(r.Context()); err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to clear session")
		return
	}
	jsonResponse(w, http.StatusOK, map[string]string{"message": "logged out"})
}
