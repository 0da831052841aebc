package handlers

import (
	"encoding/json"
	"net/http"

	"onmodel/internal/domain"
)

// PresetCatalog returns the preset catalog the UI renders its pickers from.
func (a *App) PresetCatalog(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, a.Presets.Catalog())
}

type combosRequest struct {
	Shots  []string `json:"shots"`
	Models []string `json:"models"`
}

type combosResponse struct {
	Combos []domain.Combo `json:"combos"`
}

// ExpandCombos expands a shot and model selection into generation combos.
func (a *App) ExpandCombos(w http.ResponseWriter, r *http.Request) {
	var req combosRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.fail(w, r, domain.ErrInvalidPayload)
		return
	}
	combos := a.Presets.ExpandCombos(req.Shots, req.Models)
	if len(combos) == 0 {
		a.error(w, http.StatusBadRequest, "empty_selection", "Select at least one shot and one model.")
		return
	}
	a.json(w, http.StatusOK, combosResponse{Combos: combos})
}
