package domain

import (
	"time"

	"github.com/google/uuid"
)

// ClassifyDecision is the branch a classification request resolved to
type ClassifyDecision string

const (
	DecisionDirect      ClassifyDecision = "direct"
	DecisionMedia       ClassifyDecision = "media"
	DecisionPlaylist    ClassifyDecision = "playlist"
	DecisionUnsupported ClassifyDecision = "unsupported"
)

// ClassifyRecord is one audit entry of a classify-and-extract call.
// Records are never read back to answer classification; they exist for
// diagnostics and the history API only.
type ClassifyRecord struct {
	ID           string           `json:"id" gorm:"primaryKey"`
	URL          string           `json:"url" gorm:"not null"`
	Mode         string           `json:"mode"` // extract or playlist
	Decision     ClassifyDecision `json:"decision" gorm:"index"`
	Classifier   string           `json:"classifier"`
	OK           bool             `json:"ok"`
	ErrorMessage string           `json:"error_message,omitempty"`
	ParseError   bool             `json:"parse_error"`
	DurationMS   int64            `json:"duration_ms"`
	CreatedAt    time.Time        `json:"created_at" gorm:"autoCreateTime;index"`
}

// NewClassifyRecord creates a history record for one request
func NewClassifyRecord(url, mode string) *ClassifyRecord {
	return &ClassifyRecord{
		ID:        uuid.New().String(),
		URL:       url,
		Mode:      mode,
		CreatedAt: time.Now(),
	}
}

// Finish fills the outcome fields of a record
func (r *ClassifyRecord) Finish(decision ClassifyDecision, classifier string, started time.Time, err error) {
	r.Decision = decision
	r.Classifier = classifier
	r.DurationMS = time.Since(started).Milliseconds()
	if err != nil {
		r.OK = false
		r.ErrorMessage = err.Error()
		r.ParseError = IsParseError(err)
		return
	}
	r.OK = true
}

// HistoryRepository defines the interface for classification-history persistence
type HistoryRepository interface {
	// Create stores a new record
	Create(record *ClassifyRecord) error

	// FindRecent returns the most recent records, newest first
	FindRecent(limit int) ([]*ClassifyRecord, error)

	// FindByURL returns all records for a URL, newest first
	FindByURL(url string) ([]*ClassifyRecord, error)

	// Count returns the total number of records
	Count() (int64, error)

	// GetStats returns per-decision counts
	GetStats() (*ClassifyStats, error)

	// Close releases the underlying store
	Close() error
}

// ClassifyStats represents classification statistics
type ClassifyStats struct {
	Total       int64 `json:"total"`
	Direct      int64 `json:"direct"`
	Media       int64 `json:"media"`
	Playlist    int64 `json:"playlist"`
	Unsupported int64 `json:"unsupported"`
	Failed      int64 `json:"failed"`
}
