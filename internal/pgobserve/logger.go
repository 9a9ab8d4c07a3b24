// Package pgobserve provides the pipeline's package-level diagnostic
// logger. It defaults to a slog.TextHandler on stderr but may be
// replaced wholesale by SetLogger so embedding services (or tests) can
// redirect or silence it.
package pgobserve

import (
	"log/slog"
	"os"
)

// Logger is the package-level diagnostic logger. Stages log at Debug for
// routine per-stage counts and Warn for non-fatal recoveries (dropped
// pose, no floors, orphan passage). It is never used to log
// fatal errors — those are returned, not logged.
var Logger *slog.Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
	Level: slog.LevelInfo,
}))

// SetLogger replaces the package logger. Passing nil installs a
// discard-everything logger.
func SetLogger(l *slog.Logger) {
	if l == nil {
		Logger = slog.New(slog.NewTextHandler(discardWriter{}, nil))
		return
	}
	Logger = l
}

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }
