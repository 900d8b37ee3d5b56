package app

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/croxz/croxz-go/internal/domain"
	"github.com/croxz/croxz-go/pkg/logger"
)

// CheckResult is the outcome of running the classification predicates only
type CheckResult struct {
	URL        string                  `json:"url"`
	Supported  bool                    `json:"supported"`
	Possibly   bool                    `json:"possibly"`
	Classifier string                  `json:"classifier,omitempty"`
	Decision   domain.ClassifyDecision `json:"decision"`
	Extension  string                  `json:"extension,omitempty"`
	Category   string                  `json:"category,omitempty"`
}

// ClassifyManager plays the host's candidate-selection role: it asks the
// registered classifiers in priority order, respects each classifier's
// minimum query interval, and records every parse in the history store.
type ClassifyManager struct {
	classifiers []domain.Classifier
	history     domain.HistoryRepository
	multiLogger *logger.MultiLogger
	log         *zap.Logger
	mu          sync.Mutex
	lastQuery   map[string]time.Time
}

// NewClassifyManager creates a new manager. history may be nil when the
// audit trail is disabled.
func NewClassifyManager(history domain.HistoryRepository, multiLogger *logger.MultiLogger, log *zap.Logger) *ClassifyManager {
	return &ClassifyManager{
		history:     history,
		multiLogger: multiLogger,
		log:         log,
		lastQuery:   make(map[string]time.Time),
	}
}

// Register adds a classifier; higher check priority is asked first.
func (m *ClassifyManager) Register(c domain.Classifier) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.classifiers = append(m.classifiers, c)
	sort.SliceStable(m.classifiers, func(i, j int) bool {
		return m.classifiers[i].SupportedSourceCheckPriority() > m.classifiers[j].SupportedSourceCheckPriority()
	})
}

// Classifiers returns the registered classifiers in selection order
func (m *ClassifyManager) Classifiers() []domain.Classifier {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Classifier, len(m.classifiers))
	copy(out, m.classifiers)
	return out
}

// Check runs the synchronous predicates only; no I/O, safe to call often.
func (m *ClassifyManager) Check(url, contentType string) CheckResult {
	result := CheckResult{
		URL:      url,
		Decision: domain.DecisionUnsupported,
	}

	if ext, ok := domain.ExtensionOf(url); ok {
		result.Extension = ext
		result.Category = string(domain.CategoryOf(ext))
	}
	if domain.IsDirectDownloadURL(url) {
		result.Decision = domain.DecisionDirect
	}

	req := domain.ParseRequest{URL: url, ContentType: contentType}
	for _, c := range m.Classifiers() {
		if !result.Supported && c.IsSupportedSource(url) {
			result.Supported = true
			result.Classifier = c.Name()
			result.Decision = m.decisionFor(url, c.Name())
		}
		if c.IsPossiblySupportedSource(req) {
			result.Possibly = true
		}
	}

	if m.multiLogger != nil {
		m.multiLogger.LogClassifyEvent("check",
			zap.String("url", url),
			zap.Bool("supported", result.Supported),
			zap.Bool("possibly", result.Possibly),
			zap.String("decision", string(result.Decision)))
	}
	return result
}

// Parse resolves a URL with the named classifier, or with the first
// classifier claiming it when name is empty. The call blocks until the
// classifier's minimum query interval has elapsed since its last query.
func (m *ClassifyManager) Parse(ctx context.Context, url, name string, interactive bool) (domain.ParseResult, error) {
	classifier, err := m.selectClassifier(url, name)
	if err != nil {
		return nil, err
	}

	mode := "extract"
	if classifier.Name() == "playlist" {
		mode = "playlist"
	}
	record := domain.NewClassifyRecord(url, mode)
	started := time.Now()

	if err := m.waitInterval(ctx, classifier); err != nil {
		return nil, err
	}

	req := domain.ParseRequest{
		ID:          record.ID,
		URL:         url,
		Interactive: interactive,
	}
	result, err := classifier.Parse(ctx, req)

	record.Finish(m.decisionFor(url, classifier.Name()), classifier.Name(), started, err)
	m.record(record)

	return result, err
}

// selectClassifier picks by name, or by the first IsSupportedSource match
// in priority order.
func (m *ClassifyManager) selectClassifier(url, name string) (domain.Classifier, error) {
	for _, c := range m.Classifiers() {
		if name != "" {
			if c.Name() == name {
				return c, nil
			}
			continue
		}
		if c.IsSupportedSource(url) {
			return c, nil
		}
	}
	if name != "" {
		return nil, fmt.Errorf("unknown classifier: %s", name)
	}

	// The single-item classifier still owns the direct-download branch even
	// though it declines the URL to the host.
	for _, c := range m.Classifiers() {
		if mc, ok := c.(*MediaClassifier); ok && domain.IsDirectDownloadURL(url) {
			return mc, nil
		}
	}
	return nil, fmt.Errorf("no classifier claims URL: %s", url)
}

// waitInterval enforces MinIntervalBetweenQueryInfoDownloads per classifier
func (m *ClassifyManager) waitInterval(ctx context.Context, c domain.Classifier) error {
	m.mu.Lock()
	last, seen := m.lastQuery[c.Name()]
	m.lastQuery[c.Name()] = time.Now()
	m.mu.Unlock()

	if !seen {
		return nil
	}
	remaining := c.MinIntervalBetweenQueryInfoDownloads() - time.Since(last)
	if remaining <= 0 {
		return nil
	}

	m.log.Debug("Spacing metadata queries",
		zap.String("classifier", c.Name()),
		zap.Duration("wait", remaining))
	select {
	case <-time.After(remaining):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// decisionFor derives the audit decision from the static tables
func (m *ClassifyManager) decisionFor(url, classifierName string) domain.ClassifyDecision {
	if classifierName == "playlist" {
		if domain.IsPlaylistURL(url) {
			return domain.DecisionPlaylist
		}
		return domain.DecisionUnsupported
	}
	switch {
	case domain.IsDirectDownloadURL(url):
		return domain.DecisionDirect
	case domain.IsMediaSite(url):
		return domain.DecisionMedia
	default:
		return domain.DecisionUnsupported
	}
}

// record persists and logs one finished classification
func (m *ClassifyManager) record(record *domain.ClassifyRecord) {
	if m.multiLogger != nil {
		m.multiLogger.LogClassifyEvent("parse",
			zap.String("request_id", record.ID),
			zap.String("url", record.URL),
			zap.String("mode", record.Mode),
			zap.String("decision", string(record.Decision)),
			zap.Bool("ok", record.OK),
			zap.String("error", record.ErrorMessage),
			zap.Int64("duration_ms", record.DurationMS))
	}
	if m.history == nil {
		return
	}
	if err := m.history.Create(record); err != nil {
		m.log.Warn("Failed to record classification", zap.Error(err))
		if m.multiLogger != nil {
			m.multiLogger.LogAppError("history write failed", zap.Error(err))
		}
	}
}

// NewRequestID generates a host-side request identifier
func NewRequestID() string {
	return uuid.New().String()
}
