package domain

import (
	"encoding/base64"
	"strings"
)

// Combo is one shot x model pairing; it maps to exactly one generation job.
type Combo struct {
	ID          string `json:"id"`
	ShotID      string `json:"shotId"`
	ShotLabel   string `json:"shotLabel"`
	ShotPrompt  string `json:"shotPrompt"`
	AspectRatio string `json:"aspectRatio"`
	ModelID     string `json:"modelId"`
	ModelLabel  string `json:"modelLabel"`
	ModelPrompt string `json:"modelPrompt"`
	ModelNotes  string `json:"modelNotes"`
}

// BatchParams are the creative parameters shared by every combo in a batch.
type BatchParams struct {
	ProductName    string `json:"productName,omitempty"`
	Highlights     string `json:"highlights,omitempty"`
	Vibe           string `json:"vibe"`
	TargetCustomer string `json:"targetCustomer"`
	PricePoint     string `json:"pricePoint"`
}

// DefaultImageMIME is assumed when the upload does not declare a type.
const DefaultImageMIME = "image/png"

// ReferenceImage is the uploaded product photo.
type ReferenceImage struct {
	Data     []byte
	MIMEType string
}

// DataURI renders the image as a base64 data URI.
func (img ReferenceImage) DataURI() string {
	mime := strings.TrimSpace(img.MIMEType)
	if mime == "" {
		mime = DefaultImageMIME
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(img.Data)
}

// BatchRequest is everything needed to run one batch.
type BatchRequest struct {
	Params BatchParams
	Combos []Combo
	Image  ReferenceImage
}
