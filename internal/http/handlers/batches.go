package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// GetBatch returns a previously generated batch.
func (a *App) GetBatch(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "batch id required")
		return
	}
	batch, err := a.Store.Get(r.Context(), id)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, batch)
}
