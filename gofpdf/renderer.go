// Package gofpdf renders press digests as PDF documents with gofpdf.
package gofpdf

import (
	"fmt"
	"io"

	"github.com/fwojciec/pressclip"
	"github.com/jung-kurt/gofpdf"
)

// Ensure Renderer implements pressclip.DigestRenderer at compile time.
var _ pressclip.DigestRenderer = (*Renderer)(nil)

// DefaultTitle prefixes the date line at the top of the digest.
const DefaultTitle = "Press Clippings"

const (
	fontFamily = "Helvetica"
	lineHeight = 5.5
)

// Renderer writes an A4 digest: an underlined title, underlined category
// headers, and for each clipping a bold headline, its content and a blue
// linked source line.
type Renderer struct {
	title string
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithTitle replaces DefaultTitle.
func WithTitle(title string) Option {
	return func(r *Renderer) {
		r.title = title
	}
}

// NewRenderer creates a Renderer.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{title: DefaultTitle}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ContentType returns the PDF MIME type.
func (r *Renderer) ContentType() string {
	return "application/pdf"
}

// Render writes the digest to w.
func (r *Renderer) Render(w io.Writer, d *pressclip.Digest) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 25, 20)
	pdf.SetAutoPageBreak(true, 25)
	pdf.AddPage()

	// Core fonts are cp1252; translate UTF-8 input.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	title := fmt.Sprintf("%s - %s, %s", r.title, d.Date.Format("Monday"), d.Date.Format("02 January 2006"))
	pdf.SetFont(fontFamily, "BU", 16)
	pdf.CellFormat(0, 10, tr(title), "", 1, "C", false, 0, "")
	pdf.Ln(6)

	for _, section := range d.Sections {
		pdf.SetFont(fontFamily, "BU", 14)
		pdf.CellFormat(0, 8, tr(section.Category), "", 1, "L", false, 0, "")
		pdf.Ln(3)

		for _, c := range section.Clippings {
			r.writeClipping(pdf, tr, c)
		}
		pdf.Ln(4)
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("rendering pdf: %w", err)
	}
	return pdf.Output(w)
}

func (r *Renderer) writeClipping(pdf *gofpdf.Fpdf, tr func(string) string, c *pressclip.Clipping) {
	pdf.SetFont(fontFamily, "B", 10.5)
	pdf.MultiCell(0, lineHeight, tr(c.Headline), "", "L", false)

	if c.Content != "" {
		pdf.SetFont(fontFamily, "", 10.5)
		for _, p := range pressclip.SplitParagraphs(c.Content) {
			pdf.MultiCell(0, lineHeight, tr(p), "", "L", false)
			pdf.Ln(1)
		}
	}

	date := c.CreatedAt.Format("02/01/2006")
	pdf.SetFont(fontFamily, "", 10.5)
	pdf.SetTextColor(0, 0, 255)
	if c.URL != "" {
		pdf.WriteLinkString(lineHeight, tr(c.Source), c.URL)
	} else {
		pdf.Write(lineHeight, tr(c.Source))
	}
	pdf.SetTextColor(0, 0, 0)
	pdf.Write(lineHeight, " | "+date)
	pdf.Ln(lineHeight + 4)
}
