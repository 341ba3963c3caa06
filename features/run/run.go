package run

import (
	"time"

	"shopsready/backend/internal/catalog"
)

const (
	StatusProcessing = "processing"
	StatusReview     = "review"
	StatusExported   = "exported"
	StatusFailed     = "failed"
)

// Run is one document-to-catalog pipeline execution. The catalog is owned by
// its run: append-only while extracting, field-editable during review,
// discarded with the run on "start over".
type Run struct {
	ID           string          `json:"id"`
	Filename     string          `json:"filename"`
	Media        string          `json:"media"`
	Status       string          `json:"status"`
	Config       catalog.Config  `json:"config"`
	Catalog      catalog.Catalog `json:"catalog"`
	ChunksTotal  int             `json:"chunks_total"`
	ChunksFailed int             `json:"chunks_failed"`
	Error        string          `json:"error,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}
