package generation

import (
	"context"
	"strings"
	"time"

	"onmodel/internal/domain"
	"onmodel/internal/infra"
	"onmodel/internal/presets"
	"onmodel/internal/prompt"
	"onmodel/internal/providers/replicate"
)

const (
	DefaultPollInterval = 2500 * time.Millisecond
	DefaultJobTimeout   = 120 * time.Second

	FallbackModel   = "black-forest-labs/flux-dev"
	FallbackVersion = "b31258cccc611453ca3b52990d4ec23bafa714a7e3f777510c232fbd65dc9b6f"
)

const (
	MsgUnexpectedStart = "Unexpected response from provider when starting generation."
	MsgUnexpectedPoll  = "Provider returned an unexpected payload while polling."
	MsgTimedOut        = "Generation timed out."
	MsgNoImageURL      = "Model completed without returning an image URL."
	MsgUnknownFailure  = "Unknown failure."
)

// Fixed model input shared by every job.
const (
	guidanceScale     = 4
	outputFormat      = "png"
	numInferenceSteps = 30
	numOutputs        = 1
)

// PredictionClient is the provider surface the dispatcher depends on.
type PredictionClient interface {
	CreatePrediction(ctx context.Context, req replicate.CreateRequest) (replicate.Prediction, error)
	GetPrediction(ctx context.Context, id string) (replicate.Prediction, error)
}

// jobState names the dispatcher state machine positions. They only appear in logs.
type jobState string

const (
	stateSubmitted jobState = "submitted"
	statePolling   jobState = "polling"
	stateSucceeded jobState = "succeeded"
	stateFailed    jobState = "failed"
	stateTimedOut  jobState = "timed_out"
)

// DispatcherOptions configures a Dispatcher. Zero values pick the defaults.
type DispatcherOptions struct {
	Client       PredictionClient
	Compiler     *prompt.Compiler
	Presets      *presets.Library
	Model        string
	Version      string
	Clock        Clock
	Seed         SeedSource
	PollInterval time.Duration
	Timeout      time.Duration
	Logger       *infra.Logger
}

// Dispatcher runs one combo end to end: compile, submit, poll, normalize.
type Dispatcher struct {
	client       PredictionClient
	compiler     *prompt.Compiler
	lib          *presets.Library
	model        string
	version      string
	clock        Clock
	seed         SeedSource
	pollInterval time.Duration
	timeout      time.Duration
	logger       *infra.Logger
}

// NewDispatcher applies defaults to opts. When neither model nor version is
// configured the fallback model is pinned to its known version.
func NewDispatcher(opts DispatcherOptions) *Dispatcher {
	d := &Dispatcher{
		client:       opts.Client,
		compiler:     opts.Compiler,
		lib:          opts.Presets,
		model:        strings.TrimSpace(opts.Model),
		version:      strings.TrimSpace(opts.Version),
		clock:        opts.Clock,
		seed:         opts.Seed,
		pollInterval: opts.PollInterval,
		timeout:      opts.Timeout,
		logger:       opts.Logger,
	}
	if d.lib == nil {
		d.lib = presets.Default()
	}
	if d.compiler == nil {
		d.compiler = prompt.NewCompiler(d.lib)
	}
	if d.model == "" && d.version == "" {
		d.model, d.version = FallbackModel, FallbackVersion
	}
	if d.clock == nil {
		d.clock = SystemClock{}
	}
	if d.seed == nil {
		d.seed = RandomSeed
	}
	if d.pollInterval <= 0 {
		d.pollInterval = DefaultPollInterval
	}
	if d.timeout <= 0 {
		d.timeout = DefaultJobTimeout
	}
	if d.logger == nil {
		d.logger = infra.DiscardLogger()
	}
	return d
}

// Run never returns an error: every failure mode becomes a failed JobResult.
func (d *Dispatcher) Run(ctx context.Context, combo domain.Combo, params domain.BatchParams, image domain.ReferenceImage) domain.JobResult {
	log := d.logger.With().Str("combo_id", combo.ID).Logger()
	if err := ctx.Err(); err != nil {
		return d.fail(&log, combo, stateFailed, err.Error())
	}

	bundle := d.compiler.Compile(combo, params)
	dims := d.lib.Dimensions(combo.AspectRatio)
	seed := d.seed()

	req := replicate.CreateRequest{
		Model:   d.model,
		Version: d.version,
		Input: replicate.Input{
			Prompt:               bundle.Prompt,
			NegativePrompt:       bundle.NegativePrompt,
			Image:                image.DataURI(),
			GuidanceScale:        guidanceScale,
			OutputFormat:         outputFormat,
			NumInferenceSteps:    numInferenceSteps,
			Width:                dims.Width,
			Height:               dims.Height,
			Seed:                 seed,
			NumOutputs:           numOutputs,
			ApplyWatermark:       false,
			DisableSafetyChecker: true,
		},
	}

	submittedAt := d.clock.Now()
	pred, err := d.client.CreatePrediction(ctx, req)
	if err != nil {
		return d.fail(&log, combo, stateFailed, err.Error())
	}
	var job replicate.ValidPrediction
	switch p := pred.(type) {
	case replicate.ValidPrediction:
		job = p
	case replicate.InvalidPrediction:
		return d.fail(&log, combo, stateFailed, p.Message(MsgUnexpectedStart))
	default:
		return d.fail(&log, combo, stateFailed, MsgUnexpectedStart)
	}
	log.Debug().
		Str("state", string(stateSubmitted)).
		Str("prediction_id", job.ID).
		Str("status", string(job.Status)).
		Int64("seed", seed).
		Msg("prediction submitted")

	for job.Status.Running() {
		if d.clock.Now().Sub(submittedAt) > d.timeout {
			return d.fail(&log, combo, stateTimedOut, MsgTimedOut)
		}
		if err := d.clock.Sleep(ctx, d.pollInterval); err != nil {
			return d.fail(&log, combo, stateFailed, err.Error())
		}
		next, err := d.client.GetPrediction(ctx, job.ID)
		if err != nil {
			return d.fail(&log, combo, stateFailed, err.Error())
		}
		switch p := next.(type) {
		case replicate.ValidPrediction:
			job = p
		case replicate.InvalidPrediction:
			return d.fail(&log, combo, stateFailed, p.Message(MsgUnexpectedPoll))
		default:
			return d.fail(&log, combo, stateFailed, MsgUnexpectedPoll)
		}
		log.Debug().
			Str("state", string(statePolling)).
			Str("prediction_id", job.ID).
			Str("status", string(job.Status)).
			Msg("prediction polled")
	}

	if job.Status != replicate.StatusSucceeded {
		msg := job.Error
		if msg == "" {
			msg = MsgUnknownFailure
		}
		return d.fail(&log, combo, stateFailed, msg)
	}
	imageURL, ok := job.FirstOutputURL()
	if !ok {
		return d.fail(&log, combo, stateFailed, MsgNoImageURL)
	}

	log.Info().
		Str("state", string(stateSucceeded)).
		Str("prediction_id", job.ID).
		Dur("elapsed", d.clock.Now().Sub(submittedAt)).
		Msg("prediction succeeded")
	return domain.JobResult{
		ID:             combo.ID,
		Status:         domain.JobStatusSucceeded,
		ImageURL:       imageURL,
		Prompt:         bundle.Prompt,
		NegativePrompt: bundle.NegativePrompt,
		Seed:           seed,
	}
}

func (d *Dispatcher) fail(log *infra.Logger, combo domain.Combo, state jobState, message string) domain.JobResult {
	log.Warn().
		Str("state", string(state)).
		Str("error", message).
		Msg("generation job failed")
	return domain.FailedResult(combo.ID, message)
}
