package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/termspider"
)

// Ensure LoggingResultWriter implements termspider.ResultWriter.
var _ termspider.ResultWriter = (*LoggingResultWriter)(nil)

// LoggingResultWriter wraps a ResultWriter with logging.
type LoggingResultWriter struct {
	next   termspider.ResultWriter
	logger *slog.Logger
}

// NewLoggingResultWriter creates a new LoggingResultWriter.
func NewLoggingResultWriter(next termspider.ResultWriter, logger *slog.Logger) *LoggingResultWriter {
	return &LoggingResultWriter{next: next, logger: logger}
}

// WriteResults delegates to the wrapped writer and logs the operation.
func (w *LoggingResultWriter) WriteResults(ctx context.Context, store *termspider.ResultStore) (err error) {
	defer func(begin time.Time) {
		w.logger.Info("write results",
			"terms", len(store.Terms()),
			"records", store.Total(),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return w.next.WriteResults(ctx, store)
}
