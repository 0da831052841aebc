package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"onmodel/internal/batchstore"
	"onmodel/internal/domain"
	"onmodel/internal/generation"
	"onmodel/internal/infra"
	"onmodel/internal/middleware"
	"onmodel/internal/presets"
)

// BatchRunner executes a batch of combos against the provider.
type BatchRunner interface {
	RunBatch(ctx context.Context, req domain.BatchRequest, creds generation.Credentials) (domain.BatchResult, error)
}

// ReferenceArchive stores uploaded reference images.
type ReferenceArchive interface {
	Write(ctx context.Context, key string, data []byte) (string, error)
}

type App struct {
	Config      *infra.Config
	Logger      infra.Logger
	Presets     *presets.Library
	Runner      BatchRunner
	Store       batchstore.Store
	Archive     ReferenceArchive
	Credentials generation.Credentials
	Now         func() time.Time
}

// NewApp wires the handler container. Provider credentials come from cfg and
// are checked per batch. Set Archive separately when archiving is enabled.
func NewApp(cfg *infra.Config, logger infra.Logger, lib *presets.Library, runner BatchRunner, store batchstore.Store) *App {
	if lib == nil {
		lib = presets.Default()
	}
	return &App{
		Config:  cfg,
		Logger:  logger,
		Presets: lib,
		Runner:  runner,
		Store:   store,
		Credentials: generation.Credentials{
			APIToken: cfg.ReplicateAPIToken,
			Model:    cfg.ReplicateModel,
			Version:  cfg.ReplicateModelVersion,
		},
		Now: time.Now,
	}
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

type apiError struct {
	status  int
	code    string
	message string
}

// knownErrors maps domain sentinels to their HTTP rendering.
var knownErrors = map[error]apiError{
	domain.ErrMissingCredentials: {http.StatusInternalServerError, "configuration_error", "Missing REPLICATE_API_TOKEN. Add it to your environment to enable AI generation."},
	domain.ErrNoCombos:           {http.StatusBadRequest, "no_combos", "No generation combos provided."},
	domain.ErrMissingImage:       {http.StatusBadRequest, "missing_image", "Product image is required."},
	domain.ErrMissingPayload:     {http.StatusBadRequest, "missing_payload", "Missing generation payload."},
	domain.ErrInvalidPayload:     {http.StatusBadRequest, "invalid_payload", "Invalid payload."},
	domain.ErrNotFound:           {http.StatusNotFound, "not_found", "Batch not found."},
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, status int, code, message string) {
	a.json(w, status, errorResponse{Error: message, Code: code})
}

// fail renders err, falling back to a generic 500 for unknown errors.
func (a *App) fail(w http.ResponseWriter, r *http.Request, err error) {
	for sentinel, resp := range knownErrors {
		if errors.Is(err, sentinel) {
			a.error(w, resp.status, resp.code, resp.message)
			return
		}
	}
	a.Logger.Error().
		Err(err).
		Str("request_id", middleware.RequestIDFromContext(r.Context())).
		Msg("request failed")
	a.error(w, http.StatusInternalServerError, "internal", "Something went wrong while generating.")
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}
