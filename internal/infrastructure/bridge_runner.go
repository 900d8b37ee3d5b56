package infrastructure

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"go.uber.org/zap"

	"github.com/croxz/croxz-go/internal/domain"
)

// BridgeRunner implements domain.ProcessRunner by launching the bridge
// script as a subprocess. Timeouts and cancellation live here, one level
// below the classifiers: the classifiers assume nothing about how long an
// invocation takes.
type BridgeRunner struct {
	python  string
	timeout time.Duration
	logger  *zap.Logger
}

// NewBridgeRunner creates a runner for the configured bridge
func NewBridgeRunner(cfg domain.BridgeConfig, logger *zap.Logger) *BridgeRunner {
	return &BridgeRunner{
		python:  cfg.PythonBinary,
		timeout: cfg.Timeout,
		logger:  logger,
	}
}

// Run launches `<python> <script> <args...>` and waits for it to settle.
// A non-zero exit code is a settled outcome, not an error; an error is
// returned only when the process could not be started at all.
func (r *BridgeRunner) Run(ctx context.Context, req domain.ProcessRequest) (*domain.ProcessOutcome, error) {
	if req.Script == "" {
		return nil, fmt.Errorf("bridge script not configured")
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	args := append([]string{req.Script}, req.Args...)

	// Note: exec.Command passes args directly to the process, no shell
	// quoting needed. The escaped line is for logging only.
	r.logger.Debug("Running bridge",
		zap.String("request_id", req.RequestID),
		zap.Bool("interactive", req.Interactive),
		zap.String("cmd", ShellEscapeCommand(r.python, args...)))

	cmd := exec.CommandContext(ctx, r.python, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	outcome := &domain.ProcessOutcome{
		Output:      stdout.String(),
		ErrorOutput: stderr.String(),
	}

	if err != nil {
		// A timed-out process also dies with an ExitError (signal kill), so
		// the context has to be consulted first.
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("bridge cancelled: %w", ctxErr)
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			outcome.ExitCode = exitErr.ExitCode()
		} else {
			return nil, fmt.Errorf("failed to run bridge: %w", err)
		}
	}

	r.logger.Debug("Bridge settled",
		zap.String("request_id", req.RequestID),
		zap.Int("exit_code", outcome.ExitCode),
		zap.Int("stdout_bytes", len(outcome.Output)))

	return outcome, nil
}
