package replicate

import (
	"bytes"
	"encoding/json"
)

// Status is the provider-side lifecycle state of a prediction.
type Status string

const (
	StatusStarting   Status = "starting"
	StatusProcessing Status = "processing"
	StatusSucceeded  Status = "succeeded"
	StatusFailed     Status = "failed"
	StatusCanceled   Status = "canceled"
)

// Running reports whether the prediction is still in progress.
func (s Status) Running() bool {
	return s == StatusStarting || s == StatusProcessing
}

// Prediction is either a ValidPrediction or an InvalidPrediction. Responses
// are classified once by DecodePrediction; callers switch on the concrete
// type instead of probing fields.
type Prediction interface {
	prediction()
}

// ValidPrediction carries a well-formed job: both id and status were strings.
type ValidPrediction struct {
	ID     string
	Status Status
	Output json.RawMessage
	Error  string
}

// InvalidPrediction is any payload that failed validation. Detail and Error
// hold whatever explanation the provider included.
type InvalidPrediction struct {
	Detail string
	Error  string
}

func (ValidPrediction) prediction()   {}
func (InvalidPrediction) prediction() {}

// Message returns the provider explanation, preferring error over detail,
// or fallback when neither is present.
func (p InvalidPrediction) Message(fallback string) string {
	if p.Error != "" {
		return p.Error
	}
	if p.Detail != "" {
		return p.Detail
	}
	return fallback
}

// Outputs normalizes the output field to a list: arrays are returned as is,
// a single non-empty value becomes a one-element list, and null, missing or
// falsy values yield nil.
func (p ValidPrediction) Outputs() []any {
	raw := bytes.TrimSpace(p.Output)
	if len(raw) == 0 {
		return nil
	}
	if raw[0] == '[' {
		var list []any
		if err := json.Unmarshal(raw, &list); err != nil {
			return nil
		}
		return list
	}
	var single any
	if err := json.Unmarshal(raw, &single); err != nil || !truthy(single) {
		return nil
	}
	return []any{single}
}

// FirstOutputURL returns the first string entry of the normalized output.
func (p ValidPrediction) FirstOutputURL() (string, bool) {
	for _, item := range p.Outputs() {
		if s, ok := item.(string); ok {
			return s, s != ""
		}
	}
	return "", false
}

func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case float64:
		return t != 0
	default:
		return true
	}
}

// DecodePrediction classifies a response body. A payload is valid only when
// both "id" and "status" are JSON strings.
func DecodePrediction(body []byte) Prediction {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return InvalidPrediction{}
	}
	id, idOK := jsonString(fields["id"])
	status, statusOK := jsonString(fields["status"])
	errText := jsonText(fields["error"])
	if !idOK || !statusOK {
		return InvalidPrediction{
			Detail: jsonText(fields["detail"]),
			Error:  errText,
		}
	}
	return ValidPrediction{
		ID:     id,
		Status: Status(status),
		Output: fields["output"],
		Error:  errText,
	}
}

func jsonString(raw json.RawMessage) (string, bool) {
	if len(raw) == 0 {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

// jsonText renders a field as text: strings verbatim, other non-null values
// as compact JSON.
func jsonText(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	if s, ok := jsonString(raw); ok {
		return s
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	if buf.String() == `""` || buf.String() == "false" {
		return ""
	}
	return buf.String()
}
