// Package pipeline runs the ordered extraction strategies for a URL's
// category under one overall deadline.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/pressclip"
)

// Ensure Pipeline implements pressclip.ExtractionService at compile time.
var _ pressclip.ExtractionService = (*Pipeline)(nil)

// DefaultTimeout bounds one extraction across all strategies.
const DefaultTimeout = 90 * time.Second

// Pipeline classifies a URL and tries the strategies registered for its
// category in order until one yields a headline.
//
// Register must not be called concurrently with Extract.
type Pipeline struct {
	chains  map[pressclip.Category][]pressclip.Strategy
	timeout time.Duration
	logger  *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithTimeout sets the overall deadline for one extraction.
// Defaults to DefaultTimeout (90s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(p *Pipeline) {
		p.timeout = d
	}
}

// WithLogger sets the logger used for strategy failures.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// New creates a Pipeline with no strategies registered.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		chains:  make(map[pressclip.Category][]pressclip.Strategy),
		timeout: DefaultTimeout,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Register appends strategies to the chain for category.
func (p *Pipeline) Register(category pressclip.Category, strategies ...pressclip.Strategy) {
	p.chains[category] = append(p.chains[category], strategies...)
}

// Strategies returns the names of the strategies registered for category.
func (p *Pipeline) Strategies(category pressclip.Category) []string {
	names := make([]string, 0, len(p.chains[category]))
	for _, s := range p.chains[category] {
		names = append(names, s.Name())
	}
	return names
}

// Extract returns the best available result for rawURL. The only error is
// EINVALID for an empty or malformed URL; strategy failures are logged and
// never returned.
func (p *Pipeline) Extract(ctx context.Context, rawURL string) (*pressclip.ExtractionResult, error) {
	target, err := pressclip.NormalizeURL(rawURL)
	if err != nil {
		return nil, err
	}
	category := pressclip.Classify(target)

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	var last *pressclip.ExtractionResult
	for _, s := range p.chains[category] {
		if err := ctx.Err(); err != nil {
			p.logger.Warn("abandoning remaining strategies", "url", target, "category", category, "err", err)
			break
		}

		res, err := p.run(ctx, s, target)
		if err != nil {
			p.logger.Warn("strategy failed", "strategy", s.Name(), "url", target, "err", err)
		}
		last = res
		if res.HasHeadline() {
			break
		}
	}

	return finalize(last, target), nil
}

// run calls the strategy and converts a panic into an error.
func (p *Pipeline) run(ctx context.Context, s pressclip.Strategy, url string) (res *pressclip.ExtractionResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			res, err = nil, fmt.Errorf("strategy %s panicked: %v", s.Name(), r)
		}
	}()
	res, err = s.Extract(ctx, url)
	if err != nil {
		return nil, err
	}
	return res, nil
}

// finalize enforces the result invariants regardless of which strategy
// produced it.
func finalize(res *pressclip.ExtractionResult, url string) *pressclip.ExtractionResult {
	out := pressclip.ExtractionResult{}
	if res != nil {
		out = *res
	}
	out.URL = url
	out.Headline = pressclip.ToTitleCaps(out.Headline)
	if out.Source == "" {
		out.Source = pressclip.CleanSourceName(url)
	}
	paras := pressclip.SplitParagraphs(out.Content)
	if len(paras) > pressclip.MaxParagraphs {
		paras = paras[:pressclip.MaxParagraphs]
	}
	out.Content = pressclip.JoinParagraphs(paras)
	return &out
}
