// Package goquery reads static markup with goquery. It provides title, site
// name and paragraph helpers used by the fetch-based strategies.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/pressclip"
)

// TitleSelectors is the order in which a readable title is looked up.
var TitleSelectors = []string{
	`meta[property="og:title"]`,
	`meta[name="twitter:title"]`,
	"title",
	"h1",
}

// Document is parsed static markup.
type Document struct {
	doc *goquery.Document
}

// Parse parses html into a Document.
func Parse(html string) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, pressclip.Errorf(pressclip.EINVALID, "failed to parse HTML: %v", err)
	}
	return &Document{doc: doc}, nil
}

// Text returns the first non-empty text among elements matching selector.
// For meta elements the content attribute is used.
func (d *Document) Text(selector string) (string, bool) {
	var out string
	d.doc.Find(selector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		out = textOf(s)
		return out == ""
	})
	return out, out != ""
}

// Texts returns the non-empty texts of all elements matching selector.
func (d *Document) Texts(selector string) []string {
	var out []string
	d.doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
		if text := textOf(s); text != "" {
			out = append(out, text)
		}
	})
	return out
}

// Title returns the most readable title the document declares, with a
// trailing "| Site" suffix removed.
func (d *Document) Title() string {
	title, _ := pressclip.FirstMatch(TitleSelectors, d.Text)
	return pressclip.StripTitleSuffix(title)
}

// SiteName returns the og:site_name declared by the document, if any.
func (d *Document) SiteName() string {
	name, _ := d.Text(`meta[property="og:site_name"]`)
	return name
}

// Title parses html and returns its readable title, or empty if the markup
// cannot be parsed or declares none.
func Title(html string) string {
	doc, err := Parse(html)
	if err != nil {
		return ""
	}
	return doc.Title()
}

// Paragraphs parses html and returns the texts of elements matching the
// first selector that matches anything. With no selectors, "p" is used.
func Paragraphs(html string, selectors ...string) []string {
	if len(selectors) == 0 {
		selectors = []string{"p"}
	}
	doc, err := Parse(html)
	if err != nil {
		return nil
	}
	for _, sel := range selectors {
		if texts := doc.Texts(sel); len(texts) > 0 {
			return texts
		}
	}
	return nil
}

// textOf returns whitespace-collapsed text, or the content attribute of a
// meta element.
func textOf(s *goquery.Selection) string {
	if goquery.NodeName(s) == "meta" {
		v, _ := s.Attr("content")
		return collapse(v)
	}
	return collapse(s.Text())
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
