package strategy

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fwojciec/pressclip"
	"github.com/fwojciec/pressclip/goquery"
)

// Compile-time interface verification.
var (
	_ pressclip.Strategy = (*StaticFetch)(nil)
	_ pressclip.Strategy = (*GenericArticleParse)(nil)
	_ pressclip.Strategy = (*RenderedArticle)(nil)
)

// DefaultRenderTimeout bounds page loads for RenderedArticle.
const DefaultRenderTimeout = 20 * time.Second

// StaticFetch fetches the page without a browser and reads its title.
// The source is the declared og:site_name, else the cleaned host.
// Content is always empty.
type StaticFetch struct {
	Fetcher pressclip.Fetcher
}

func (s *StaticFetch) Name() string { return NameStaticFetch }

// Extract fetches url and returns its readable title.
func (s *StaticFetch) Extract(ctx context.Context, url string) (*pressclip.ExtractionResult, error) {
	html, err := s.Fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	var a article
	if doc, err := goquery.Parse(html); err == nil {
		a.title = doc.Title()
		a.siteName = doc.SiteName()
	}
	return a.result(url), nil
}

// GenericArticleParse fetches the page without a browser and runs the
// article extractors over it for a title and lead paragraphs.
type GenericArticleParse struct {
	Fetcher    pressclip.Fetcher
	Extractors []pressclip.Extractor

	// Filter applies to extracted paragraphs. Nil means DefaultFilter.
	Filter *pressclip.ParagraphFilter
	Logger *slog.Logger
}

func (s *GenericArticleParse) Name() string { return NameGenericArticleParse }

// Extract fetches url and parses it as an article.
func (s *GenericArticleParse) Extract(ctx context.Context, url string) (*pressclip.ExtractionResult, error) {
	html, err := s.Fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	a := parseArticle(loggerOrDiscard(s.Logger), html, s.Extractors, filterOrDefault(s.Filter))
	return a.result(url), nil
}

// RenderedArticle renders the page in the shared browser and runs the
// article extractors over the rendered markup. It is the last resort for
// pages that need JavaScript.
type RenderedArticle struct {
	Browser    pressclip.Browser
	Extractors []pressclip.Extractor

	// PageLoadTimeout defaults to DefaultRenderTimeout.
	PageLoadTimeout time.Duration
	Filter          *pressclip.ParagraphFilter
	Logger          *slog.Logger
}

func (s *RenderedArticle) Name() string { return NameRenderedArticle }

// Extract renders url and parses the result as an article. The page title is
// used when no extractor finds one.
func (s *RenderedArticle) Extract(ctx context.Context, url string) (*pressclip.ExtractionResult, error) {
	timeout := s.PageLoadTimeout
	if timeout <= 0 {
		timeout = DefaultRenderTimeout
	}

	var html, pageTitle string
	err := s.Browser.Do(ctx, func(page pressclip.Page) error {
		if err := page.Navigate(url, timeout); err != nil {
			return err
		}
		pageTitle = page.Title()
		var err error
		html, err = page.HTML()
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("rendering %s: %w", url, err)
	}

	a := parseArticle(loggerOrDiscard(s.Logger), html, s.Extractors, filterOrDefault(s.Filter))
	if a.title == "" {
		a.title = pressclip.StripTitleSuffix(pageTitle)
	}
	return a.result(url), nil
}

func filterOrDefault(f *pressclip.ParagraphFilter) pressclip.ParagraphFilter {
	if f == nil {
		return DefaultFilter()
	}
	return *f
}
