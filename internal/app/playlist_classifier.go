package app

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/croxz/croxz-go/internal/domain"
)

// PlaylistClassifier decides whether a URL is a collection of media items
// and normalizes playlist-mode extractor output. Unlike the single-item
// classifier it never produces a local result: collections always go
// through the bridge.
type PlaylistClassifier struct {
	runner domain.ProcessRunner
	bridge domain.BridgeConfig
	cfg    domain.ClassifyConfig
	logger *zap.Logger
}

// NewPlaylistClassifier creates a new collection classifier
func NewPlaylistClassifier(runner domain.ProcessRunner, bridge domain.BridgeConfig, cfg domain.ClassifyConfig, logger *zap.Logger) *PlaylistClassifier {
	return &PlaylistClassifier{
		runner: runner,
		bridge: bridge,
		cfg:    cfg,
		logger: logger,
	}
}

// Name returns the classifier identifier
func (c *PlaylistClassifier) Name() string {
	return "playlist"
}

// IsSupportedSource claims URLs matching the playlist pattern table.
// Playlist patterns are structurally distinct from file URLs, so no
// direct-download exclusion is needed here.
func (c *PlaylistClassifier) IsSupportedSource(url string) bool {
	return domain.IsPlaylistURL(url)
}

// IsPossiblySupportedSource defers URLs that look like plain files to the
// host and claims URLs with collection-indicator fragments or a bare
// trailing user handle.
func (c *PlaylistClassifier) IsPossiblySupportedSource(req domain.ParseRequest) bool {
	if domain.HasDirectFileHint(req.URL) {
		return false
	}
	return domain.HasCollectionHint(req.URL)
}

// SupportedSourceCheckPriority matches the single-item classifier's
// catch-all priority; site-specific host classifiers still win.
func (c *PlaylistClassifier) SupportedSourceCheckPriority() int {
	return c.cfg.CheckPriority
}

// MinIntervalBetweenQueryInfoDownloads is larger than the single-item
// spacing, reflecting the higher cost of playlist enumeration.
func (c *PlaylistClassifier) MinIntervalBetweenQueryInfoDownloads() time.Duration {
	return c.cfg.PlaylistMinInterval
}

// Parse always delegates to the bridge in playlist mode and normalizes the
// response into a PlaylistResult.
func (c *PlaylistClassifier) Parse(ctx context.Context, req domain.ParseRequest) (domain.ParseResult, error) {
	c.logger.Debug("Launching playlist extractor", zap.String("request_id", req.ID), zap.String("url", req.URL))
	outcome, err := c.runner.Run(ctx, domain.ProcessRequest{
		RequestID:   req.ID,
		Interactive: req.Interactive,
		Script:      c.bridge.Script,
		Args:        []string{"playlist", req.URL},
	})
	if err != nil {
		return nil, domain.NewParseError(fmt.Sprintf("extractor failed to start: %v", err))
	}

	result, err := c.processResult(req.URL, outcome)
	if err != nil {
		c.logger.Info("Playlist extraction failed", zap.String("request_id", req.ID), zap.String("url", req.URL), zap.Error(err))
		return nil, err
	}
	c.logger.Info("Playlist extraction succeeded",
		zap.String("request_id", req.ID),
		zap.String("url", req.URL),
		zap.Int("entries", len(result.Entries)))
	return result, nil
}

// processResult normalizes playlist-mode output. A response that is not
// playlist-shaped is wrapped into a one-entry playlist so the output shape
// stays uniform whether the bridge resolved one item or many.
func (c *PlaylistClassifier) processResult(inputURL string, outcome *domain.ProcessOutcome) (*domain.PlaylistResult, error) {
	if outcome.ExitCode != 0 {
		msg := strings.TrimSpace(outcome.ErrorOutput)
		if msg == "" {
			msg = strings.TrimSpace(outcome.Output)
		}
		if msg == "" {
			msg = fmt.Sprintf("extractor exited with code %d", outcome.ExitCode)
		}
		return nil, domain.NewParseError(msg)
	}

	output := strings.TrimSpace(outcome.Output)
	if output == "" {
		return nil, domain.NewParseError("No output from extractor")
	}

	var doc domain.ExtractorDocument
	if err := json.Unmarshal([]byte(output), &doc); err != nil {
		return nil, domain.NewParseError("Failed to parse output: " + err.Error())
	}

	if doc.Error != "" {
		return nil, domain.NewParseError(doc.Error)
	}

	if doc.Type != "playlist" {
		return c.wrapSingle(inputURL, &doc), nil
	}

	entries := make([]domain.PlaylistEntry, 0, len(doc.Entries))
	for _, raw := range doc.Entries {
		url := raw.EntryURL()
		if url == "" {
			// An entry with no URL is dropped, never propagated
			continue
		}
		title := raw.Title
		if title == "" {
			title = "Unknown"
		}
		entries = append(entries, domain.PlaylistEntry{
			Type:     "url",
			URL:      url,
			Title:    title,
			Duration: raw.Duration,
		})
	}
	if len(entries) == 0 {
		return nil, domain.NewParseError("No entries found")
	}

	title := doc.Title
	if title == "" {
		title = "Playlist"
	}
	webpageURL := doc.WebpageURL
	if webpageURL == "" {
		webpageURL = inputURL
	}

	return &domain.PlaylistResult{
		Type:       "playlist",
		Title:      title,
		WebpageURL: webpageURL,
		Entries:    entries,
	}, nil
}

// wrapSingle synthesizes a one-entry playlist around a single-item document
func (c *PlaylistClassifier) wrapSingle(inputURL string, doc *domain.ExtractorDocument) *domain.PlaylistResult {
	c.logger.Debug("Wrapping single item as playlist", zap.String("url", inputURL))

	title := doc.Title
	if title == "" {
		title = "Download"
	}
	entryURL := doc.WebpageURL
	if entryURL == "" {
		entryURL = inputURL
	}
	entryTitle := doc.Title
	if entryTitle == "" {
		entryTitle = "Unknown"
	}
	webpageURL := doc.WebpageURL
	if webpageURL == "" {
		webpageURL = inputURL
	}

	return &domain.PlaylistResult{
		Type:       "playlist",
		Title:      title,
		WebpageURL: webpageURL,
		Entries: []domain.PlaylistEntry{{
			Type:     "url",
			URL:      entryURL,
			Title:    entryTitle,
			Duration: doc.Duration,
		}},
	}
}
