package domain

import (
	"context"
	"time"
)

// ParseRequest carries a URL presented by the host for classification,
// together with the host-supplied request identifier, whether a user is
// present to resolve prompts, and an optional content-type hint.
type ParseRequest struct {
	ID          string
	URL         string
	Interactive bool
	ContentType string
}

// Classifier is the contract both classifiers expose to the host.
// The predicates are synchronous and side-effect-free; Parse is the only
// operation that may launch the external tool.
type Classifier interface {
	// Name returns a stable identifier for this classifier
	Name() string

	// IsSupportedSource reports whether this classifier claims the URL
	IsSupportedSource(url string) bool

	// IsPossiblySupportedSource is the cheap pre-filter run before full
	// classification, using the content-type hint when present
	IsPossiblySupportedSource(req ParseRequest) bool

	// SupportedSourceCheckPriority returns the classifier's priority in the
	// host's candidate-selection order
	SupportedSourceCheckPriority() int

	// MinIntervalBetweenQueryInfoDownloads returns the minimum spacing the
	// host must respect between successive metadata queries
	MinIntervalBetweenQueryInfoDownloads() time.Duration

	// Parse resolves the URL into a normalized result
	Parse(ctx context.Context, req ParseRequest) (ParseResult, error)
}

// ProcessRequest describes one invocation of the external extraction tool
type ProcessRequest struct {
	RequestID   string
	Interactive bool
	Script      string
	Args        []string
}

// ProcessOutcome is the settled output of an external tool invocation
type ProcessOutcome struct {
	ExitCode    int
	Output      string
	ErrorOutput string
}

// ProcessRunner launches the external extraction tool. Implementations own
// timeouts and cancellation; classifiers assume nothing about how long a
// call takes. A fake implementation stands in during tests.
type ProcessRunner interface {
	Run(ctx context.Context, req ProcessRequest) (*ProcessOutcome, error)
}
