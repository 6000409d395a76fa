package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/curator-sh/curator/internal/httpserver/deps"
	"github.com/curator-sh/curator/internal/httpserver/handlers"
	"github.com/curator-sh/curator/internal/httpserver/mw"
)

func init() { Register(registerDuplicates) }

func registerDuplicates(r chi.Router, d deps.Deps) {
	r.Get("/duplicates", handlers.ListDuplicates(d))

	admin := r.With(mw.RateLimit(mw.RateLimitConfig{
		Burst:             d.AdminBurst,
		RefillPerIPPerMin: d.AdminRefillPerMin,
		TrustProxy:        d.TrustProxy,
	}))
	admin.Post("/duplicates/scan", handlers.ScanDuplicates(d))
	admin.Post("/duplicates/{groupID}/resolve", handlers.ResolveDuplicate(d))
}
