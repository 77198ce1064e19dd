package api

import (
	"database/sql"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/stylesense/stylesense/internal/session"
	"github.com/stylesense/stylesense/internal/store"
	"github.com/stylesense/stylesense/internal/stylist"
)

// NewRouter creates the API router with all endpoints registered.
func NewRouter(db *sql.DB, wardrobe *store.Wardrobe, sessions *session.Manager, orch *stylist.Orchestrator, jwtSecret string) http.Handler {
	mux := http.NewServeMux()

	authHandler := &AuthHandler{Sessions: sessions}
	wardrobeHandler := &WardrobeHandler{DB: db, Wardrobe: wardrobe, Stylist: orch}
	recommendHandler := &RecommendHandler{Wardrobe: wardrobe, Stylist: orch, Session: stylist.NewSession()}
	marketplaceHandler := &MarketplaceHandler{Wardrobe: wardrobe, Stylist: orch}

	authMW := AuthMiddleware(jwtSecret)

	// Public: login and metrics.
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)
	mux.Handle("GET /metrics", promhttp.Handler())

	// Authenticated routes.
	mux.Handle("POST /api/auth/logout", authMW(http.HandlerFunc(authHandler.Logout)))

	mux.Handle("GET /api/wardrobe", authMW(http.HandlerFunc(wardrobeHandler.List)))
	mux.Handle("POST /api/wardrobe", authMW(http.HandlerFunc(wardrobeHandler.Upload)))
	mux.Handle("DELETE /api/wardrobe/{id}", authMW(http.HandlerFunc(wardrobeHandler.Delete)))
	mux.Handle("GET /api/wardrobe/{id}/image", authMW(http.HandlerFunc(wardrobeHandler.GetImage)))

	mux.Handle("GET /api/recommendations", authMW(http.HandlerFunc(recommendHandler.Status)))
	mux.Handle("POST /api/recommendations", authMW(http.HandlerFunc(recommendHandler.Create)))

	mux.Handle("GET /api/marketplace", authMW(http.HandlerFunc(marketplaceHandler.List)))
	mux.Handle("POST /api/marketplace/pairing", authMW(http.HandlerFunc(marketplaceHandler.Pairing)))

	return mux
}
