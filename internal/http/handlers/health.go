package handlers

import (
	"net/http"
	"strings"
	"time"
)

type healthResponse struct {
	Status     string `json:"status"`
	Generation bool   `json:"generation"`
	Store      string `json:"store"`
	Time       string `json:"time"`
}

// Health reports liveness plus whether generation is configured. It stays
// 200 without a provider token so the presets and batch routes remain usable.
func (a *App) Health(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, healthResponse{
		Status:     "ok",
		Generation: strings.TrimSpace(a.Credentials.APIToken) != "",
		Store:      a.Config.BatchStore,
		Time:       a.now().UTC().Format(time.RFC3339),
	})
}
