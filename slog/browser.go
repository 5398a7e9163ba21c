package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/pressclip"
)

// Ensure LoggingBrowser implements pressclip.Browser.
var _ pressclip.Browser = (*LoggingBrowser)(nil)

// LoggingBrowser wraps a Browser and logs how long callers queued for the
// shared session and how long they held it.
type LoggingBrowser struct {
	next   pressclip.Browser
	logger *slog.Logger
}

// NewLoggingBrowser creates a new LoggingBrowser.
func NewLoggingBrowser(next pressclip.Browser, logger *slog.Logger) *LoggingBrowser {
	return &LoggingBrowser{next: next, logger: logger}
}

// Do delegates to the wrapped browser and logs the operation.
func (b *LoggingBrowser) Do(ctx context.Context, fn func(pressclip.Page) error) (err error) {
	begin := time.Now()
	var acquired time.Time
	defer func() {
		attrs := []any{"duration", time.Since(begin), "err", err}
		if !acquired.IsZero() {
			attrs = append(attrs, "wait", acquired.Sub(begin))
		}
		b.logger.Info("browser", attrs...)
	}()
	return b.next.Do(ctx, func(page pressclip.Page) error {
		acquired = time.Now()
		return fn(page)
	})
}
