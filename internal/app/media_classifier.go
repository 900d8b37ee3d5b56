package app

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/croxz/croxz-go/internal/domain"
	"github.com/croxz/croxz-go/pkg/filename"
)

// binaryContentTypes are content-type signatures of plain binary/archive
// payloads the host downloads natively; the pre-filter never claims them.
var binaryContentTypes = []string{
	"application/octet-stream",
	"application/zip",
	"application/x-rar",
	"application/x-7z-compressed",
	"application/x-tar",
	"application/gzip",
	"application/x-msdownload",
	"application/x-iso9660-image",
	"application/pdf",
}

// MediaClassifier decides direct-file vs. single-media vs. unsupported and
// normalizes single-item extractor output. It is stateless; all per-request
// state lives in the Parse call.
type MediaClassifier struct {
	runner domain.ProcessRunner
	bridge domain.BridgeConfig
	cfg    domain.ClassifyConfig
	logger *zap.Logger
}

// NewMediaClassifier creates a new single-item classifier
func NewMediaClassifier(runner domain.ProcessRunner, bridge domain.BridgeConfig, cfg domain.ClassifyConfig, logger *zap.Logger) *MediaClassifier {
	return &MediaClassifier{
		runner: runner,
		bridge: bridge,
		cfg:    cfg,
		logger: logger,
	}
}

// Name returns the classifier identifier
func (c *MediaClassifier) Name() string {
	return "media"
}

// IsSupportedSource claims known media sites, but never direct file URLs:
// those stay with the host's native handling.
func (c *MediaClassifier) IsSupportedSource(url string) bool {
	if domain.IsDirectDownloadURL(url) {
		return false
	}
	return domain.IsMediaSite(url)
}

// IsPossiblySupportedSource is the cheap pre-filter run before full
// classification. A video/audio content-type hint is enough to claim the
// URL; an HTML page (or no hint at all) defers to the media-site table.
func (c *MediaClassifier) IsPossiblySupportedSource(req domain.ParseRequest) bool {
	lower := strings.ToLower(req.URL)
	if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
		return false
	}
	if domain.IsDirectDownloadURL(req.URL) {
		return false
	}

	contentType := strings.ToLower(strings.TrimSpace(req.ContentType))
	if idx := strings.Index(contentType, ";"); idx >= 0 {
		contentType = strings.TrimSpace(contentType[:idx])
	}

	for _, binary := range binaryContentTypes {
		if contentType == binary {
			return false
		}
	}
	if strings.HasPrefix(contentType, "video/") || strings.HasPrefix(contentType, "audio/") {
		return true
	}
	if contentType == "text/html" || contentType == "" {
		return domain.IsMediaSite(req.URL)
	}
	return false
}

// SupportedSourceCheckPriority returns a fixed low priority: host- or
// site-specific classifiers with stronger knowledge are asked first.
func (c *MediaClassifier) SupportedSourceCheckPriority() int {
	return c.cfg.CheckPriority
}

// MinIntervalBetweenQueryInfoDownloads returns the minimum spacing between
// successive metadata queries, protecting the bridge and remote sites.
func (c *MediaClassifier) MinIntervalBetweenQueryInfoDownloads() time.Duration {
	return c.cfg.MediaMinInterval
}

// OverrideURLPolicy reports whether this classifier claims the right to
// rewrite URL handling; it does so for HTTP(S) URLs only.
func (c *MediaClassifier) OverrideURLPolicy(url string) bool {
	lower := strings.ToLower(url)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// Parse resolves the URL through one of three branches: a locally built
// direct-download result, a bridge extraction, or a decline.
func (c *MediaClassifier) Parse(ctx context.Context, req domain.ParseRequest) (domain.ParseResult, error) {
	if domain.IsDirectDownloadURL(req.URL) {
		c.logger.Debug("Direct download detected", zap.String("request_id", req.ID), zap.String("url", req.URL))
		return c.directResult(req.URL), nil
	}

	if !domain.IsMediaSite(req.URL) {
		return nil, fmt.Errorf("unsupported source: %s", req.URL)
	}

	c.logger.Debug("Launching extractor", zap.String("request_id", req.ID), zap.String("url", req.URL))
	outcome, err := c.runner.Run(ctx, domain.ProcessRequest{
		RequestID:   req.ID,
		Interactive: req.Interactive,
		Script:      c.bridge.Script,
		Args:        []string{"extract", req.URL},
	})
	if err != nil {
		return nil, domain.NewParseError(fmt.Sprintf("extractor failed to start: %v", err))
	}

	result, err := c.processResult(req.URL, outcome)
	if err != nil {
		c.logger.Info("Extraction failed", zap.String("request_id", req.ID), zap.String("url", req.URL), zap.Error(err))
		return nil, err
	}
	c.logger.Info("Extraction succeeded",
		zap.String("request_id", req.ID),
		zap.String("url", req.URL),
		zap.Int("formats", len(result.Formats)))
	return result, nil
}

// directResult builds a MediaResult from the URL itself, no subprocess.
func (c *MediaClassifier) directResult(url string) *domain.MediaResult {
	original := domain.FilenameFromURL(url)
	ext, _ := domain.ExtensionOf(url)
	category := domain.CategoryOf(ext)

	name := strings.TrimSuffix(original, "."+ext)
	title := filename.Sanitize(name, c.cfg.MaxFilenameLength)

	protocol := "http"
	if strings.HasPrefix(url, "https") {
		protocol = "https"
	}

	format := domain.Format{
		URL:      url,
		Protocol: protocol,
		Ext:      ext,
		Format:   string(category) + "/" + ext,
	}
	switch category {
	case domain.CategoryVideo:
		format.VideoExt = ext
	case domain.CategoryAudio:
		format.AudioExt = ext
	}

	return &domain.MediaResult{
		ID:            title,
		Title:         title,
		OriginalTitle: original,
		WebpageURL:    url,
		Formats:       []domain.Format{format},
	}
}

// processResult normalizes extractor output into a MediaResult, tolerating
// partial and malformed documents. Every failure is a ParseError so the
// host can present it without an internal-error stack trace.
func (c *MediaClassifier) processResult(inputURL string, outcome *domain.ProcessOutcome) (*domain.MediaResult, error) {
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

	formats := make([]domain.Format, 0, len(doc.Formats))
	for _, f := range doc.Formats {
		if f.URL == "" {
			continue
		}
		if f.Ext == "" {
			f.Ext = "mp4"
		}
		formats = append(formats, f)
	}
	if len(formats) == 0 {
		return nil, domain.NewParseError("No downloadable formats found")
	}

	title := doc.Title
	if title == "" {
		title = filename.Sanitize(domain.FilenameFromURL(inputURL), c.cfg.MaxFilenameLength)
	}
	id := doc.ID
	if id == "" {
		id = title
	}
	webpageURL := doc.WebpageURL
	if webpageURL == "" {
		webpageURL = inputURL
	}

	return &domain.MediaResult{
		ID:         id,
		Title:      title,
		WebpageURL: webpageURL,
		Duration:   doc.Duration,
		Formats:    formats,
	}, nil
}
