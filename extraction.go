package pressclip

import (
	"context"
	"net/url"
	"regexp"
	"strings"
)

// schemePrefix matches a leading scheme. A "://" later in the URL, such as
// inside a tracking parameter, does not count.
var schemePrefix = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9+.-]*://`)

// ExtractionRequest is the input to an extraction.
type ExtractionRequest struct {
	URL string `json:"url"`
}

// ExtractionResult is the normalized record produced for a URL.
// Headline and Content may be empty but are never absent.
type ExtractionResult struct {
	Headline string `json:"headline"`
	Source   string `json:"source"`
	Content  string `json:"content"`
	URL      string `json:"url"`
}

// HasHeadline reports whether the result carries a usable headline.
func (r *ExtractionResult) HasHeadline() bool {
	return r != nil && strings.TrimSpace(r.Headline) != ""
}

// ExtractionService turns a URL into an ExtractionResult.
type ExtractionService interface {
	// Extract returns the best available result for the URL.
	// Returns EINVALID if the URL is empty or malformed; no other error
	// is ever returned.
	Extract(ctx context.Context, rawURL string) (*ExtractionResult, error)
}

// Strategy is one self-contained technique for extracting a headline and
// content from a URL. A returned error means "no result" and is never
// surfaced past the pipeline.
type Strategy interface {
	Name() string
	Extract(ctx context.Context, url string) (*ExtractionResult, error)
}

// Category identifies which strategy chain handles a URL.
type Category string

// Category constants.
const (
	CategoryNews24      Category = "news24"
	CategoryPressReader Category = "pressreader"
	CategoryGeneric     Category = "generic"
)

// Classify maps a URL to its site category by case-insensitive substring
// match on the host. It never fails; anything unrecognized is generic.
func Classify(rawURL string) Category {
	host := strings.ToLower(hostOf(rawURL))
	switch {
	case strings.Contains(host, "news24.com"):
		return CategoryNews24
	case strings.Contains(host, "pressreader.com"):
		return CategoryPressReader
	default:
		return CategoryGeneric
	}
}

// NormalizeURL trims the URL and prepends https:// when the scheme is missing.
// Returns EINVALID for empty or unparseable input.
func NormalizeURL(rawURL string) (string, error) {
	s := strings.TrimSpace(rawURL)
	if s == "" {
		return "", Errorf(EINVALID, "url required")
	}
	u, err := url.Parse(withScheme(s))
	if err != nil {
		return "", Errorf(EINVALID, "invalid url %q", rawURL)
	}
	if u.Host == "" {
		return "", Errorf(EINVALID, "url %q has no host", rawURL)
	}
	return u.String(), nil
}

// hostOf returns the host of rawURL, tolerating a missing scheme.
func hostOf(rawURL string) string {
	u, err := url.Parse(withScheme(strings.TrimSpace(rawURL)))
	if err != nil {
		return ""
	}
	return u.Hostname()
}

// withScheme prepends https:// unless s already starts with a scheme.
func withScheme(s string) string {
	if schemePrefix.MatchString(s) {
		return s
	}
	return "https://" + strings.TrimPrefix(s, "//")
}
