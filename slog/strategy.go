package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/pressclip"
)

// Ensure LoggingStrategy implements pressclip.Strategy.
var _ pressclip.Strategy = (*LoggingStrategy)(nil)

// LoggingStrategy wraps a Strategy with logging of each attempt.
type LoggingStrategy struct {
	next   pressclip.Strategy
	logger *slog.Logger
}

// NewLoggingStrategy creates a new LoggingStrategy.
func NewLoggingStrategy(next pressclip.Strategy, logger *slog.Logger) *LoggingStrategy {
	return &LoggingStrategy{next: next, logger: logger}
}

// Name returns the wrapped strategy's name.
func (s *LoggingStrategy) Name() string {
	return s.next.Name()
}

// Extract delegates to the wrapped strategy and logs the outcome.
func (s *LoggingStrategy) Extract(ctx context.Context, url string) (res *pressclip.ExtractionResult, err error) {
	defer func(begin time.Time) {
		s.logger.Info("strategy",
			"strategy", s.next.Name(),
			"url", url,
			"headline", res.HasHeadline(),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Extract(ctx, url)
}
