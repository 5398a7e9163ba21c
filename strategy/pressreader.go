package strategy

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"net/url"
	"strings"
	"time"

	"github.com/fwojciec/pressclip"
)

var _ pressclip.Strategy = (*PressReader)(nil)

// UnknownPublication is the source used when no publication can be derived
// from a PressReader URL.
const UnknownPublication = "Unknown Publication"

// PressReaderConfig holds the selectors and thresholds for PressReader pages.
type PressReaderConfig struct {
	PageLoadTimeout time.Duration

	// JitterMin and JitterMax bound the random pause after the page loads.
	JitterMin time.Duration
	JitterMax time.Duration

	// HeadlineSelectors are tried in order; the first non-empty match wins.
	HeadlineSelectors []string

	// ParagraphGroups are tried in order; the first group with at least one
	// surviving paragraph wins.
	ParagraphGroups []string

	Filter pressclip.ParagraphFilter
}

// DefaultPressReaderConfig returns the selectors known to work on the
// PressReader text view.
func DefaultPressReaderConfig() PressReaderConfig {
	return PressReaderConfig{
		PageLoadTimeout: 30 * time.Second,
		JitterMin:       time.Second,
		JitterMax:       3 * time.Second,
		HeadlineSelectors: []string{
			"article h1",
			".article-title",
			"[data-testid='article-title']",
			".headline",
			"header h1",
			"h1",
		},
		ParagraphGroups: []string{
			"article .article-body p",
			"article p",
			".article-text p",
			".textview p",
			"[data-testid='article-body'] p",
			".content p",
			"p",
		},
		Filter: pressclip.ParagraphFilter{MinLength: 30, Denylist: pressclip.DefaultDenylist},
	}
}

// PressReader loads the text view of a PressReader article in the shared
// browser and reads its headline and lead paragraphs.
type PressReader struct {
	Browser pressclip.Browser
	Config  PressReaderConfig
	Logger  *slog.Logger
}

// NewPressReader returns a PressReader strategy with the default configuration.
func NewPressReader(browser pressclip.Browser, logger *slog.Logger) *PressReader {
	return &PressReader{Browser: browser, Config: DefaultPressReaderConfig(), Logger: logger}
}

func (s *PressReader) Name() string { return NamePressReader }

// Extract never returns an error. The worst case is an empty headline with
// the publication derived from the URL as source.
func (s *PressReader) Extract(ctx context.Context, rawURL string) (*pressclip.ExtractionResult, error) {
	target := TextViewURL(rawURL)
	res := &pressclip.ExtractionResult{Source: PublicationName(target), URL: rawURL}
	if s.Browser == nil {
		return res, nil
	}

	logger := loggerOrDiscard(s.Logger)
	err := s.Browser.Do(ctx, func(page pressclip.Page) error {
		if err := page.Navigate(target, s.Config.PageLoadTimeout); err != nil {
			return err
		}
		if err := sleep(ctx, s.jitter()); err != nil {
			return err
		}

		headline, paras := s.scriptPass(logger, page)
		if headline == "" && len(paras) == 0 {
			headline, paras = s.domPass(page)
		}
		if headline == "" && len(paras) > 0 {
			headline, paras = paras[0], paras[1:]
		}
		if len(paras) > pressclip.MaxParagraphs {
			paras = paras[:pressclip.MaxParagraphs]
		}
		if headline == "" {
			headline = pressclip.StripTitleSuffix(page.Title())
		}

		res.Headline = headline
		res.Content = pressclip.JoinParagraphs(paras)
		return nil
	})
	if err != nil {
		logger.Warn("pressreader extraction failed", "url", target, "err", err)
	}
	return res, nil
}

// extractScript collects the headline and every paragraph group in one
// round trip. Invalid selectors yield nothing rather than throwing.
const extractScript = `(headlineSelectors, paragraphGroups) => {
	const text = (el) => ((el.innerText || el.textContent || '').replace(/\s+/g, ' ').trim());
	const all = (sel) => {
		try { return Array.from(document.querySelectorAll(sel)); } catch (e) { return []; }
	};
	let headline = '';
	for (const sel of headlineSelectors) {
		const found = all(sel).map(text).find((t) => t !== '');
		if (found) { headline = found; break; }
	}
	const groups = paragraphGroups.map((sel) => all(sel).map(text).filter((t) => t !== ''));
	return { headline, groups };
}`

type scriptResult struct {
	Headline string     `json:"headline"`
	Groups   [][]string `json:"groups"`
}

// scriptPass evaluates the selector lists inside the page.
func (s *PressReader) scriptPass(logger *slog.Logger, page pressclip.Page) (string, []string) {
	var out scriptResult
	if err := page.EvalJSON(extractScript, &out, s.Config.HeadlineSelectors, s.Config.ParagraphGroups); err != nil {
		logger.Debug("pressreader script pass failed", "err", err)
		return "", nil
	}

	byGroup := make(map[string][]string, len(out.Groups))
	for i, texts := range out.Groups {
		if i < len(s.Config.ParagraphGroups) {
			byGroup[s.Config.ParagraphGroups[i]] = texts
		}
	}
	lookup := func(sel string) []string { return byGroup[sel] }

	return strings.TrimSpace(out.Headline), pressclip.FirstParagraphs(s.Config.ParagraphGroups, lookup, s.Config.Filter, 0)
}

// domPass queries the same selector lists through the page directly.
func (s *PressReader) domPass(page pressclip.Page) (string, []string) {
	headline, _ := pressclip.FirstMatch(s.Config.HeadlineSelectors, page.Text)
	return headline, pressclip.FirstParagraphs(s.Config.ParagraphGroups, page.Texts, s.Config.Filter, 0)
}

func (s *PressReader) jitter() time.Duration {
	lo, hi := s.Config.JitterMin, s.Config.JitterMax
	if hi <= lo {
		return lo
	}
	return lo + rand.N(hi-lo)
}

// TextViewURL rewrites an /article/ path segment to the richer /textview/
// rendering.
func TextViewURL(rawURL string) string {
	return strings.Replace(rawURL, "/article/", "/textview/", 1)
}

var publicationStopwords = map[string]bool{
	"south":   true,
	"africa":  true,
	"early":   true,
	"late":    true,
	"edition": true,
}

// PublicationName derives the display publication from a PressReader URL.
//
//	https://www.pressreader.com/south-africa/the-star-early-edition/20250319/textview -> "The Star Early Edition"
func PublicationName(rawURL string) string {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return UnknownPublication
	}

	var segments []string
	for _, seg := range strings.Split(strings.ToLower(u.Path), "/") {
		if seg != "" {
			segments = append(segments, seg)
		}
	}

	for i, seg := range segments {
		if seg == "south-africa" && i+1 < len(segments) {
			return publicationFromSlug(segments[i+1])
		}
	}

	for i, seg := range segments {
		if seg != "textview" {
			continue
		}
		for _, prev := range segments[:i] {
			if strings.Contains(prev, "edition") || strings.Contains(prev, "star") {
				return publicationFromSlug(prev)
			}
		}
		break
	}

	return UnknownPublication
}

func publicationFromSlug(slug string) string {
	slug = strings.ToLower(slug)
	early := strings.Contains(slug, "early")
	late := strings.Contains(slug, "late")

	if strings.Contains(slug, "star") {
		switch {
		case early:
			return "The Star Early Edition"
		case late:
			return "The Star Late Edition"
		default:
			return "The Star"
		}
	}

	var words []string
	for _, w := range strings.Fields(strings.ReplaceAll(slug, "-", " ")) {
		if !publicationStopwords[w] {
			words = append(words, w)
		}
	}
	if len(words) == 0 {
		return UnknownPublication
	}

	name := pressclip.Capitalize(strings.Join(words, " "))
	switch {
	case early:
		name += " Early Edition"
	case late:
		name += " Late Edition"
	}
	return name
}
