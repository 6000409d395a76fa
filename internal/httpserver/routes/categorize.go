package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/curator-sh/curator/internal/httpserver/deps"
	"github.com/curator-sh/curator/internal/httpserver/handlers"
	"github.com/curator-sh/curator/internal/httpserver/mw"
)

func init() { Register(registerCategorize) }

func registerCategorize(r chi.Router, d deps.Deps) {
	r.With(mw.RateLimit(mw.RateLimitConfig{
		Burst:             d.AdminBurst,
		RefillPerIPPerMin: d.AdminRefillPerMin,
		TrustProxy:        d.TrustProxy,
	})).Post("/categorize", handlers.Categorize(d))
}
