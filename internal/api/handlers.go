package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/capitolclips/legislink/internal/database"
	"github.com/capitolclips/legislink/internal/models"
	"github.com/capitolclips/legislink/internal/resolver"
)

type App struct {
	Entries  *database.VideoIndexRepo
	Resolver *resolver.RawTextResolver
}

func HealthHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func (app *App) StatsHandler(w http.ResponseWriter, r *http.Request) {
	stats, err := app.Entries.Stats(r.Context())
	if err != nil {
		http.Error(w, "Failed to load stats", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

func (app *App) FileEntriesHandler(w http.ResponseWriter, r *http.Request) {
	fileID := chi.URLParam(r, "fileID")

	entries, err := app.Entries.ListForResolution(r.Context(), fileID, entryTypeParam(r), true)
	if err != nil {
		http.Error(w, "Failed to load entries", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"file_id": fileID,
		"count":   len(entries),
		"entries": entries,
	})
}

func (app *App) ResolveFileHandler(w http.ResponseWriter, r *http.Request) {
	fileID := chi.URLParam(r, "fileID")

	report, err := app.Resolver.ResolveFile(r.Context(), fileID, optionsFromRequest(r))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, report)
}

func (app *App) ResolveAllHandler(w http.ResponseWriter, r *http.Request) {
	report, err := app.Resolver.ResolveAll(r.Context(), optionsFromRequest(r))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, report)
}

func optionsFromRequest(r *http.Request) resolver.Options {
	opts := resolver.Options{
		Type:   entryTypeParam(r),
		DryRun: r.URL.Query().Get("dry_run") == "true",
		Force:  r.URL.Query().Get("force") == "true",
	}
	if limit, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && limit > 0 {
		opts.Limit = limit
	}
	return opts
}

func entryTypeParam(r *http.Request) models.EntryType {
	switch r.URL.Query().Get("type") {
	case "bill":
		return models.EntryTypeBill
	case "legislator":
		return models.EntryTypeLegislator
	}
	return ""
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
