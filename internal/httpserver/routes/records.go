package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/curator-sh/curator/internal/httpserver/deps"
	"github.com/curator-sh/curator/internal/httpserver/handlers"
)

func init() { Register(registerRecords) }

func registerRecords(r chi.Router, d deps.Deps) {
	r.Get("/records", handlers.ListRecords(d))
	r.Put("/records", handlers.UpsertRecords(d))
	r.Get("/records/{id}", handlers.GetRecord(d))
	r.Get("/records/{id}/suggestions", handlers.Suggestions(d))
}
