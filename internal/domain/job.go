package domain

import "time"

// JobStatus is the terminal outcome of one combo's generation job.
type JobStatus string

const (
	JobStatusSucceeded JobStatus = "succeeded"
	JobStatusFailed    JobStatus = "failed"
)

// JobResult is the normalized view of one combo's outcome.
type JobResult struct {
	ID             string    `json:"id"`
	Status         JobStatus `json:"status"`
	ImageURL       string    `json:"imageUrl,omitempty"`
	Prompt         string    `json:"prompt"`
	NegativePrompt string    `json:"negativePrompt"`
	Seed           int64     `json:"seed"`
	Error          string    `json:"error,omitempty"`
}

// Succeeded reports whether the job produced an image.
func (r JobResult) Succeeded() bool {
	return r.Status == JobStatusSucceeded
}

// FailedResult builds the failure record for a combo. Prompt fields are left
// empty and the seed zeroed so callers never display a half-finished bundle.
func FailedResult(comboID, message string) JobResult {
	return JobResult{
		ID:     comboID,
		Status: JobStatusFailed,
		Error:  message,
	}
}

// BatchResult holds one JobResult per input combo, in input order.
type BatchResult []JobResult

// Counts returns the number of succeeded and failed jobs.
func (b BatchResult) Counts() (succeeded, failed int) {
	for _, r := range b {
		if r.Succeeded() {
			succeeded++
		} else {
			failed++
		}
	}
	return succeeded, failed
}

// Batch is the stored envelope of a finished batch.
type Batch struct {
	ID           string      `json:"batchId"`
	RequestID    string      `json:"requestId,omitempty"`
	Params       BatchParams `json:"params"`
	Results      BatchResult `json:"results"`
	ReferenceKey string      `json:"referenceKey,omitempty"`
	CreatedAt    time.Time   `json:"createdAt"`
}
