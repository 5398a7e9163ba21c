package main

import (
	"io"
	"log/slog"

	"github.com/fwojciec/pressclip"
	pchttp "github.com/fwojciec/pressclip/http"
	"github.com/fwojciec/pressclip/pipeline"
	"github.com/fwojciec/pressclip/readability"
	"github.com/fwojciec/pressclip/rod"
	pcslog "github.com/fwojciec/pressclip/slog"
	"github.com/fwojciec/pressclip/strategy"
	"github.com/fwojciec/pressclip/trafilatura"
)

func newLogger(w io.Writer, level string) (*slog.Logger, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return nil, pressclip.Errorf(pressclip.EINVALID, "invalid log level %q", level)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: l})), nil
}

func newBrowser(cfg Config, logger *slog.Logger) *rod.SessionManager {
	opts := rod.DefaultLaunchOptions()
	opts.Bin = cfg.Browser.Bin
	opts.Headless = cfg.Browser.Headless

	return rod.NewSessionManager(
		rod.WithLaunchOptions(opts),
		rod.WithLogger(logger),
	)
}

// NewPipeline registers every category's strategy chain. Strategies, the
// fetcher and the browser are each wrapped in their logging decorator.
func NewPipeline(cfg Config, manager pressclip.Browser, logger *slog.Logger) *pipeline.Pipeline {
	browser := pcslog.NewLoggingBrowser(manager, logger)

	fetchOpts := []pchttp.Option{
		pchttp.WithLimiter(pchttp.NewDomainLimiter(cfg.Fetch.RateLimit, cfg.Fetch.Burst)),
		pchttp.WithRetryDelays(cfg.Fetch.RetryDelays),
	}
	if cfg.Fetch.Timeout > 0 {
		fetchOpts = append(fetchOpts, pchttp.WithTimeout(cfg.Fetch.Timeout))
	}
	if cfg.Fetch.UserAgent != "" {
		fetchOpts = append(fetchOpts, pchttp.WithUserAgent(cfg.Fetch.UserAgent))
	}
	// Logging sits under the memo so that only real requests are logged.
	fetcher := pchttp.NewMemoFetcher(pcslog.NewLoggingFetcher(pchttp.NewFetcher(fetchOpts...), logger), 0)

	// trafilatura first; readability catches pages it cannot segment.
	extractors := []pressclip.Extractor{
		trafilatura.NewExtractor(),
		readability.NewExtractor(),
	}

	news24 := strategy.NewNews24(browser, logger)
	pressReader := strategy.NewPressReader(browser, logger)
	rendered := &strategy.RenderedArticle{
		Browser:         browser,
		Extractors:      extractors,
		PageLoadTimeout: strategy.DefaultRenderTimeout,
		Logger:          logger,
	}
	if d := cfg.Browser.PageLoadTimeout; d > 0 {
		news24.Config.PageLoadTimeout = d
		rendered.PageLoadTimeout = d
	}
	pressReader.Config.PageLoadTimeout = cfg.PressReaderTimeout()

	logged := func(s pressclip.Strategy) pressclip.Strategy {
		return pcslog.NewLoggingStrategy(s, logger)
	}

	pipeOpts := []pipeline.Option{pipeline.WithLogger(logger)}
	if cfg.Pipeline.Timeout > 0 {
		pipeOpts = append(pipeOpts, pipeline.WithTimeout(cfg.Pipeline.Timeout))
	}
	p := pipeline.New(pipeOpts...)
	p.Register(pressclip.CategoryNews24, logged(news24))
	p.Register(pressclip.CategoryPressReader, logged(pressReader))
	p.Register(pressclip.CategoryGeneric,
		logged(&strategy.StaticFetch{Fetcher: fetcher}),
		logged(&strategy.GenericArticleParse{Fetcher: fetcher, Extractors: extractors, Logger: logger}),
		logged(rendered),
	)
	return p
}
