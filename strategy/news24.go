package strategy

import (
	"context"
	"log/slog"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/fwojciec/pressclip"
)

var _ pressclip.Strategy = (*News24)(nil)

// News24Source is the display source for every News24 result.
const News24Source = "News24"

// News24Config holds the selectors and thresholds for News24 pages.
type News24Config struct {
	PageLoadTimeout time.Duration

	// HeadlineSelectors are tried on the whole page, most specific first.
	HeadlineSelectors []string

	// Containers are XPath expressions for the article container, with
	// //body last as catch-all.
	Containers []string

	// ContainerHeadlineSelectors and ParagraphSelectors are tried inside
	// the container that was found.
	ContainerHeadlineSelectors []string
	ParagraphSelectors         []string

	Filter pressclip.ParagraphFilter
}

// DefaultNews24Config returns the selectors known to work on news24.com.
func DefaultNews24Config() News24Config {
	return News24Config{
		PageLoadTimeout: 20 * time.Second,
		HeadlineSelectors: []string{
			"h1.article__title",
			".article__title",
			`[itemprop="headline"]`,
			"article h1",
			"h1",
		},
		Containers: []string{
			`//article[contains(@class, "article")]`,
			`//div[contains(@class, "article__body")]`,
			`//*[@itemprop="articleBody"]`,
			`//main`,
			`//article`,
			`//body`,
		},
		ContainerHeadlineSelectors: []string{
			".article__title",
			`[itemprop="headline"]`,
			"h1",
		},
		ParagraphSelectors: []string{
			".article__body p",
			".article__text p",
			`[itemprop="articleBody"] p`,
			"#article-body p",
			"p",
		},
		Filter: pressclip.ParagraphFilter{MinLength: 50, Denylist: pressclip.DefaultDenylist},
	}
}

// News24 derives the headline from the URL slug without network access.
// Slug results carry no content. The browser is used only when the URL
// carries no usable slug.
type News24 struct {
	Browser pressclip.Browser
	Config  News24Config
	Logger  *slog.Logger
}

// NewNews24 returns a News24 strategy with the default configuration.
func NewNews24(browser pressclip.Browser, logger *slog.Logger) *News24 {
	return &News24{Browser: browser, Config: DefaultNews24Config(), Logger: logger}
}

func (s *News24) Name() string { return NameNews24 }

// Extract never returns an error. Failures are logged and an empty-headline
// result is returned.
func (s *News24) Extract(ctx context.Context, rawURL string) (*pressclip.ExtractionResult, error) {
	slug := SlugTitle(rawURL)
	if slug != "" {
		return &pressclip.ExtractionResult{Headline: slug, Source: News24Source, URL: rawURL}, nil
	}

	res := &pressclip.ExtractionResult{Source: News24Source, URL: rawURL}
	if s.Browser == nil {
		return res, nil
	}

	err := s.Browser.Do(ctx, func(page pressclip.Page) error {
		if err := page.Navigate(rawURL, s.Config.PageLoadTimeout); err != nil {
			return err
		}
		res.Headline, res.Content = s.fromPage(page)
		return nil
	})
	if err != nil {
		loggerOrDiscard(s.Logger).Warn("news24 browser extraction failed", "url", rawURL, "err", err)
	}
	return res, nil
}

// fromPage reads the headline from the page title, then the headline
// selectors, then the article container. Content comes from the container's
// paragraphs.
func (s *News24) fromPage(page pressclip.Page) (headline, content string) {
	headline = pressclip.StripTitleSuffix(page.Title())
	if headline == "" {
		headline, _ = pressclip.FirstMatch(s.Config.HeadlineSelectors, page.Text)
	}

	container, _, ok := pressclip.FirstNode(s.Config.Containers, page.FindX)
	if !ok {
		return headline, ""
	}
	if headline == "" {
		headline, _ = pressclip.FirstMatch(s.Config.ContainerHeadlineSelectors, container.Text)
	}
	paras := pressclip.FirstParagraphs(s.Config.ParagraphSelectors, container.Texts, s.Config.Filter, pressclip.MaxParagraphs)
	return headline, pressclip.JoinParagraphs(paras)
}

var dateStamp = regexp.MustCompile(`(-\d{6,})+$`)

// SlugTitle derives a headline from the last meaningful URL path segment:
// purely numeric and .html segments are skipped, a trailing numeric date
// stamp is stripped and the remaining words are capitalized.
//
//	https://www.news24.com/news24/politics/some-article-title-20250319 -> "Some Article Title"
func SlugTitle(rawURL string) string {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return ""
	}
	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	for i := len(segments) - 1; i >= 0; i-- {
		seg := segments[i]
		if seg == "" || isDigits(seg) || strings.HasSuffix(strings.ToLower(seg), ".html") {
			continue
		}
		seg = dateStamp.ReplaceAllString(seg, "")
		return pressclip.Capitalize(strings.ReplaceAll(seg, "-", " "))
	}
	return ""
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
