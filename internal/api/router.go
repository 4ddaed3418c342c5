package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func NewRouter(app *App) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health", HealthHandler)
	r.Get("/api/stats", app.StatsHandler)
	r.Get("/api/files/{fileID}/entries", app.FileEntriesHandler)
	r.Post("/api/files/{fileID}/resolve", app.ResolveFileHandler)
	r.Post("/api/resolve", app.ResolveAllHandler)

	return r
}
