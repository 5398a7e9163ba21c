package rod

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/pressclip"
	"github.com/go-rod/rod"
)

// Compile-time interface verification.
var (
	_ pressclip.Page = (*Page)(nil)
	_ pressclip.Node = (*Node)(nil)
)

// Page adapts a rod page to pressclip.Page. Element lookups never wait for
// elements to appear; absence is reported immediately.
type Page struct {
	page *rod.Page
}

// NewPage wraps a rod page.
func NewPage(page *rod.Page) *Page {
	return &Page{page: page}
}

// Navigate loads url and waits for the load event.
func (p *Page) Navigate(url string, timeout time.Duration) error {
	page := p.page
	if timeout > 0 {
		page = page.Timeout(timeout)
		defer page.CancelTimeout()
	}

	if err := page.Navigate(url); err != nil {
		return fmt.Errorf("navigating to %s: %w", url, err)
	}
	if err := page.WaitLoad(); err != nil {
		return fmt.Errorf("waiting for %s to load: %w", url, err)
	}
	return nil
}

// Title returns the document title.
func (p *Page) Title() string {
	info, err := p.page.Info()
	if err != nil || info == nil {
		return ""
	}
	return strings.TrimSpace(info.Title)
}

// HTML returns the rendered document markup.
func (p *Page) HTML() (string, error) {
	return p.page.HTML()
}

// Text returns the first non-empty text among elements matching selector.
func (p *Page) Text(selector string) (string, bool) {
	els, err := p.page.Elements(selector)
	if err != nil {
		return "", false
	}
	return firstText(els)
}

// Texts returns the non-empty texts of all elements matching selector.
func (p *Page) Texts(selector string) []string {
	els, err := p.page.Elements(selector)
	if err != nil {
		return nil
	}
	return allTexts(els)
}

// FindX returns the first element matching the XPath expression.
func (p *Page) FindX(xpath string) (pressclip.Node, bool) {
	els, err := p.page.ElementsX(xpath)
	if err != nil || els.Empty() {
		return nil, false
	}
	return &Node{el: els.First()}, true
}

// EvalJSON runs js with args in the page and decodes its result into v.
func (p *Page) EvalJSON(js string, v any, args ...any) error {
	res, err := p.page.Eval(js, args...)
	if err != nil {
		return fmt.Errorf("evaluating script: %w", err)
	}
	raw, err := json.Marshal(res.Value)
	if err != nil {
		return fmt.Errorf("encoding script result: %w", err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decoding script result: %w", err)
	}
	return nil
}

// Node adapts a rod element to pressclip.Node.
type Node struct {
	el *rod.Element
}

// Text returns the first non-empty text among descendants matching selector.
func (n *Node) Text(selector string) (string, bool) {
	els, err := n.el.Elements(selector)
	if err != nil {
		return "", false
	}
	return firstText(els)
}

// Texts returns the non-empty texts of all descendants matching selector.
func (n *Node) Texts(selector string) []string {
	els, err := n.el.Elements(selector)
	if err != nil {
		return nil
	}
	return allTexts(els)
}

func firstText(els rod.Elements) (string, bool) {
	for _, el := range els {
		text, err := el.Text()
		if err != nil {
			continue
		}
		if text = strings.TrimSpace(text); text != "" {
			return text, true
		}
	}
	return "", false
}

func allTexts(els rod.Elements) []string {
	var out []string
	for _, el := range els {
		text, err := el.Text()
		if err != nil {
			continue
		}
		if text = strings.TrimSpace(text); text != "" {
			out = append(out, text)
		}
	}
	return out
}
