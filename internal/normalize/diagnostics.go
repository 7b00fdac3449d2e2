package normalize

import (
	"context"
	"log/slog"
)

// DecodeFailure describes a record dropped by the Assembler.
type DecodeFailure struct {
	RecordID string
	Kind     Kind
	Err      error
}

// Reporter receives decode failures. Delivery is best-effort: the Assembler
// never depends on a Reporter for correctness.
type Reporter interface {
	Report(f DecodeFailure)
}

// NopReporter discards every failure.
type NopReporter struct{}

func (NopReporter) Report(DecodeFailure) {}

// SlogReporter logs each failure as a structured warning.
type SlogReporter struct {
	Logger *slog.Logger
}

// NewSlogReporter returns a SlogReporter writing to log, or to slog.Default
// when log is nil.
func NewSlogReporter(log *slog.Logger) SlogReporter {
	if log == nil {
		log = slog.Default()
	}
	return SlogReporter{Logger: log}
}

func (r SlogReporter) Report(f DecodeFailure) {
	r.Logger.LogAttrs(context.Background(), slog.LevelWarn, "dropping undecodable trip record",
		slog.String("record_id", f.RecordID),
		slog.String("kind", string(f.Kind)),
		slog.Any("error", f.Err),
	)
}

// Reporters fans a failure out to every reporter in order.
type Reporters []Reporter

func (rs Reporters) Report(f DecodeFailure) {
	for _, r := range rs {
		if r != nil {
			r.Report(f)
		}
	}
}
