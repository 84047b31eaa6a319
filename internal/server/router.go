package server

import (
	"net/http"

	"genai-gateway/internal/builder"
	"genai-gateway/internal/config"
	"genai-gateway/internal/metrics"
	"genai-gateway/internal/server/handlers"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	gorillahandlers "github.com/gorilla/handlers"
)

// NewRouter は、ミドルウェアとルーティングを統合した http.Handler を構築します。
func NewRouter(cfg config.Config, h *builder.AppHandlers) http.Handler {
	r := chi.NewRouter()

	setupCommonMiddleware(r)
	setupRoutes(r, h.Gateway)

	return withCORS(cfg.AllowedOrigins, r)
}

func setupCommonMiddleware(r *chi.Mux) {
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(handlers.Recoverer)
	r.Use(middleware.CleanPath)
}

func setupRoutes(r chi.Router, gateway *handlers.Handler) {
	r.NotFound(handlers.NotFound)
	r.MethodNotAllowed(handlers.MethodNotAllowed)

	r.Get("/health", gateway.Health)
	r.Post("/generate", gateway.Generate)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())
}

// withCORS は許可オリジンが設定されている場合のみ CORS ハンドラーで包みます。
func withCORS(origins []string, next http.Handler) http.Handler {
	if len(origins) == 0 {
		return next
	}
	return gorillahandlers.CORS(
		gorillahandlers.AllowedOrigins(origins),
		gorillahandlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions}),
		gorillahandlers.AllowedHeaders([]string{"Content-Type"}),
	)(next)
}
