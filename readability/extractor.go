// Package readability extracts article content with go-readability.
package readability

import (
	"strings"

	"github.com/fwojciec/pressclip"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements pressclip.Extractor at compile time.
var _ pressclip.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content.
func (e *Extractor) Extract(rawHTML string) (*pressclip.ExtractResult, error) {
	if rawHTML == "" {
		return nil, pressclip.Errorf(pressclip.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, err
	}

	return &pressclip.ExtractResult{
		Title:       strings.TrimSpace(article.Title),
		SiteName:    strings.TrimSpace(article.SiteName),
		ContentHTML: article.Content,
	}, nil
}
