package replicate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"onmodel/internal/infra"
)

// ErrMissingAPIToken indicates that the client was configured without credentials.
var ErrMissingAPIToken = errors.New("replicate: api token is required")

const (
	DefaultBaseURL = "https://api.replicate.com/v1"

	maxResponseBytes = 1 << 20
	maxDetailLength  = 512
)

// Options configures the Replicate client.
type Options struct {
	APIToken       string
	BaseURL        string
	HTTPClient     *http.Client
	Logger         *infra.Logger
	RequestTimeout time.Duration
	// Limiter paces outgoing calls and may be shared between clients.
	// When nil, RequestsPerMinute builds a limiter private to this client.
	Limiter *rate.Limiter
	// RequestsPerMinute paces outgoing calls. Zero disables pacing.
	RequestsPerMinute int
}

// NewLimiter returns a limiter allowing rpm calls per minute, or nil when
// rpm is not positive.
func NewLimiter(rpm int) *rate.Limiter {
	if rpm <= 0 {
		return nil
	}
	return rate.NewLimiter(rate.Every(time.Minute/time.Duration(rpm)), 1)
}

// Client performs HTTP calls against the predictions API.
type Client struct {
	apiToken   string
	baseURL    string
	httpClient *http.Client
	logger     *infra.Logger
	limiter    *rate.Limiter
}

// Input is the model input sent with every prediction.
type Input struct {
	Prompt               string  `json:"prompt"`
	NegativePrompt       string  `json:"negative_prompt"`
	Image                string  `json:"image"`
	GuidanceScale        float64 `json:"guidance_scale"`
	OutputFormat         string  `json:"output_format"`
	NumInferenceSteps    int     `json:"num_inference_steps"`
	Width                int     `json:"width"`
	Height               int     `json:"height"`
	Seed                 int64   `json:"seed"`
	NumOutputs           int     `json:"num_outputs"`
	ApplyWatermark       bool    `json:"apply_watermark"`
	DisableSafetyChecker bool    `json:"disable_safety_checker"`
}

// CreateRequest starts a prediction. When Version is set the generic
// predictions endpoint is used; otherwise the model-scoped endpoint.
type CreateRequest struct {
	Model   string `json:"-"`
	Version string `json:"version,omitempty"`
	Input   Input  `json:"input"`
}

// APIError is returned for any non-2xx provider response.
type APIError struct {
	Op         string
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s failed (%d): %s", e.Op, e.StatusCode, e.Detail)
}

// NewClient constructs a client with sane defaults and injected dependencies.
func NewClient(opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.RequestTimeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	logger := opts.Logger
	if logger == nil {
		logger = infra.DiscardLogger()
	}
	limiter := opts.Limiter
	if limiter == nil {
		limiter = NewLimiter(opts.RequestsPerMinute)
	}
	return &Client{
		apiToken:   strings.TrimSpace(opts.APIToken),
		baseURL:    baseURL,
		httpClient: httpClient,
		logger:     logger,
		limiter:    limiter,
	}
}

// HasCredentials reports whether the client can perform remote calls.
func (c *Client) HasCredentials() bool {
	return c.apiToken != ""
}

// CreatePrediction submits a new prediction. Well-formed 2xx bodies that fail
// validation come back as InvalidPrediction with a nil error.
func (c *Client) CreatePrediction(ctx context.Context, req CreateRequest) (Prediction, error) {
	endpoint := c.baseURL + "/predictions"
	if req.Version == "" && strings.TrimSpace(req.Model) != "" {
		endpoint = c.baseURL + "/models/" + escapeModel(req.Model) + "/predictions"
	}
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("replicate: marshal request: %w", err)
	}
	return c.do(ctx, http.MethodPost, endpoint, body, "Replicate request")
}

// GetPrediction fetches the current state of a prediction.
func (c *Client) GetPrediction(ctx context.Context, id string) (Prediction, error) {
	endpoint := c.baseURL + "/predictions/" + url.PathEscape(id)
	return c.do(ctx, http.MethodGet, endpoint, nil, "Polling")
}

func (c *Client) do(ctx context.Context, method, endpoint string, body []byte, op string) (Prediction, error) {
	if !c.HasCredentials() {
		return nil, ErrMissingAPIToken
	}
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("replicate: rate limit wait: %w", err)
		}
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("replicate: build request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiToken)
	httpReq.Header.Set("Accept", "application/json")
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("replicate: %s %s: %w", method, endpoint, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("replicate: read response: %w", err)
	}

	c.logger.Debug().
		Str("method", method).
		Str("endpoint", endpoint).
		Int("status", resp.StatusCode).
		Dur("latency", time.Since(start)).
		Msg("replicate call")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{Op: op, StatusCode: resp.StatusCode, Detail: errorDetail(raw, resp.Status)}
	}
	return DecodePrediction(raw), nil
}

// escapeModel keeps the owner/name separator while escaping each segment.
func escapeModel(model string) string {
	parts := strings.Split(strings.TrimSpace(model), "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return strings.Join(parts, "/")
}

// errorDetail extracts a human-readable message from an error body.
func errorDetail(raw []byte, status string) string {
	var payload struct {
		Detail json.RawMessage `json:"detail"`
		Error  json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil {
		if d := jsonText(payload.Detail); d != "" {
			return d
		}
		if e := jsonText(payload.Error); e != "" {
			return e
		}
	}
	text := strings.TrimSpace(string(raw))
	if text == "" {
		return status
	}
	if len(text) > maxDetailLength {
		text = text[:maxDetailLength]
	}
	return text
}
