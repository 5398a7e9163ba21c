// Package strategy implements the extraction techniques run by the pipeline:
// per-site browser heuristics for News24 and PressReader, and generic static
// and rendered article parsing for everything else.
package strategy

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/pressclip"
	"github.com/fwojciec/pressclip/goquery"
)

// Strategy names.
const (
	NameNews24              = "news24"
	NamePressReader         = "pressreader"
	NameStaticFetch         = "static_fetch"
	NameGenericArticleParse = "generic_article_parse"
	NameRenderedArticle     = "rendered_article"
)

// DefaultFilter is the paragraph filter used by the generic strategies.
func DefaultFilter() pressclip.ParagraphFilter {
	return pressclip.ParagraphFilter{MinLength: 50, Denylist: pressclip.DefaultDenylist}
}

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func loggerOrDiscard(l *slog.Logger) *slog.Logger {
	if l == nil {
		return discard
	}
	return l
}

// sleep waits for d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// article is what the generic extractors agree on for one document.
type article struct {
	title      string
	siteName   string
	paragraphs []string
}

// parseArticle runs extractors in order over html. The title comes from the
// first extractor that yields one and the paragraphs from the first whose
// content has survivors; the markup's own title is the last resort.
func parseArticle(logger *slog.Logger, html string, extractors []pressclip.Extractor, filter pressclip.ParagraphFilter) article {
	var a article
	for i, ext := range extractors {
		r, err := ext.Extract(html)
		if err != nil {
			logger.Debug("extractor failed", "extractor", i, "err", err)
			continue
		}
		if a.title == "" {
			a.title = pressclip.StripTitleSuffix(r.Title)
		}
		if a.siteName == "" {
			a.siteName = r.SiteName
		}
		if len(a.paragraphs) == 0 && r.ContentHTML != "" {
			a.paragraphs = filter.Apply(goquery.Paragraphs(r.ContentHTML), pressclip.MaxParagraphs)
		}
		if a.title != "" && len(a.paragraphs) > 0 {
			break
		}
	}
	if a.title == "" {
		a.title = goquery.Title(html)
	}
	return a
}

// result builds the strategy output for a parsed article.
func (a article) result(url string) *pressclip.ExtractionResult {
	source := a.siteName
	if source == "" {
		source = pressclip.CleanSourceName(url)
	}
	return &pressclip.ExtractionResult{
		Headline: a.title,
		Source:   source,
		Content:  pressclip.JoinParagraphs(a.paragraphs),
		URL:      url,
	}
}
