package logging

import (
	"context"
	"log/slog"
)

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldFrame is the structured logging key for frame indexes.
	FieldFrame = "frame"
	// FieldWorker is the structured logging key for worker identifiers.
	FieldWorker = "worker"
	// FieldClientID is the structured logging key for websocket client identifiers.
	FieldClientID = "client_id"
	// FieldSource is the structured logging key for the annotation source.
	FieldSource = "source"
	// FieldErrorKind classifies load failures (fetch, parse, validation).
	FieldErrorKind = "error_kind"
)

type Attr = slog.Attr

func Int(key string, value int) Attr { return slog.Int(key, value) }

func Uint64(key string, value uint64) Attr { return slog.Uint64(key, value) }

func String(key string, value string) Attr { return slog.String(key, value) }

// Frame tags a line with a frame index.
func Frame(index int) Attr { return slog.Int(FieldFrame, index) }

// Worker tags a line with a worker id.
func Worker(id string) Attr { return slog.String(FieldWorker, id) }

// Error attaches err under the error key.
func Error(err error) Attr {
	if err == nil {
		return slog.String("error", "<nil>")
	}
	return slog.Any("error", err)
}

// NewNop returns a logger that discards everything.
func NewNop() *slog.Logger {
	return slog.New(NoopHandler{})
}

// NewComponentLogger creates a logger with a standardized component attribute.
// If logger is nil, a no-op logger is used as the base.
func NewComponentLogger(logger *slog.Logger, component string) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	return logger.With(String(FieldComponent, component))
}

// NoopHandler discards all log output.
type NoopHandler struct{}

func (NoopHandler) Enabled(context.Context, slog.Level) bool { return false }

func (NoopHandler) Handle(context.Context, slog.Record) error { return nil }

func (NoopHandler) WithAttrs([]slog.Attr) slog.Handler { return NoopHandler{} }

func (NoopHandler) WithGroup(string) slog.Handler { return NoopHandler{} }
