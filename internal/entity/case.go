package entity

import (
	"time"

	"github.com/google/uuid"
)

// ExtractedFile is one file's output from the upstream extraction service.
// Payload is the raw field map; the aggregator decodes it leniently.
type ExtractedFile struct {
	FileName   string         `json:"file_name"`
	Label      string         `json:"label,omitempty"`
	Confidence float64        `json:"confidence,omitempty"`
	Text       string         `json:"text,omitempty"`
	Payload    map[string]any `json:"payload,omitempty"`
}

// CaseInput is everything the review pipeline needs for one case.
type CaseInput struct {
	CaseID      uuid.UUID       `json:"case_id"`
	Address     string          `json:"address,omitempty"`
	Summary     string          `json:"summary,omitempty"`
	DisplayName string          `json:"display_name,omitempty"`
	Files       []ExtractedFile `json:"files"`
	SubmittedAt time.Time       `json:"submitted_at"`
}
