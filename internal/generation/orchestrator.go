package generation

import (
	"context"
	"fmt"
	"strings"

	"onmodel/internal/domain"
	"onmodel/internal/infra"
)

// Credentials identify the provider account and model for one batch.
type Credentials struct {
	APIToken string
	Model    string
	Version  string
}

// ClientFactory builds the provider client for a batch's credentials.
type ClientFactory func(Credentials) PredictionClient

// Orchestrator runs a batch of combos one at a time and isolates failures per
// combo. It is safe for concurrent use; each batch gets its own dispatcher.
type Orchestrator struct {
	newClient ClientFactory
	base      DispatcherOptions
	logger    *infra.Logger
}

// NewOrchestrator keeps opts as the template for every batch dispatcher.
// Client, Model and Version in opts are ignored in favour of the batch
// credentials.
func NewOrchestrator(newClient ClientFactory, opts DispatcherOptions) *Orchestrator {
	logger := opts.Logger
	if logger == nil {
		logger = infra.DiscardLogger()
	}
	return &Orchestrator{newClient: newClient, base: opts, logger: logger}
}

// RunBatch returns one result per combo, in input order. Only missing
// credentials and an empty combo list abort the batch.
func (o *Orchestrator) RunBatch(ctx context.Context, req domain.BatchRequest, creds Credentials) (domain.BatchResult, error) {
	if strings.TrimSpace(creds.APIToken) == "" {
		return nil, domain.ErrMissingCredentials
	}
	if len(req.Combos) == 0 {
		return nil, domain.ErrNoCombos
	}

	opts := o.base
	opts.Client = o.newClient(creds)
	opts.Model = creds.Model
	opts.Version = creds.Version
	dispatcher := NewDispatcher(opts)

	results := make(domain.BatchResult, 0, len(req.Combos))
	for _, combo := range req.Combos {
		results = append(results, o.runCombo(ctx, dispatcher, combo, req))
	}

	succeeded, failed := results.Counts()
	o.logger.Info().
		Int("combos", len(req.Combos)).
		Int("succeeded", succeeded).
		Int("failed", failed).
		Msg("batch finished")
	return results, nil
}

func (o *Orchestrator) runCombo(ctx context.Context, d *Dispatcher, combo domain.Combo, req domain.BatchRequest) (result domain.JobResult) {
	defer func() {
		if r := recover(); r != nil {
			msg := panicMessage(r)
			o.logger.Error().
				Str("combo_id", combo.ID).
				Str("panic", msg).
				Msg("generation job panicked")
			result = domain.FailedResult(combo.ID, msg)
		}
	}()
	return d.Run(ctx, combo, req.Params, req.Image)
}

func panicMessage(r any) string {
	if err, ok := r.(error); ok {
		return err.Error()
	}
	return fmt.Sprint(r)
}
