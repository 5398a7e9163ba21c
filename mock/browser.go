package mock

import (
	"context"
	"time"

	"github.com/fwojciec/pressclip"
)

// Compile-time interface verification.
var (
	_ pressclip.Browser = (*Browser)(nil)
	_ pressclip.Page    = (*Page)(nil)
	_ pressclip.Node    = (*Node)(nil)
)

// Browser is a mock implementation of pressclip.Browser.
type Browser struct {
	DoFn func(ctx context.Context, fn func(pressclip.Page) error) error
}

func (b *Browser) Do(ctx context.Context, fn func(pressclip.Page) error) error {
	return b.DoFn(ctx, fn)
}

// BrowserWithPage returns a Browser whose Do always hands fn the given page.
func BrowserWithPage(page pressclip.Page) *Browser {
	return &Browser{
		DoFn: func(_ context.Context, fn func(pressclip.Page) error) error {
			return fn(page)
		},
	}
}

// Node is a mock implementation of pressclip.Node.
type Node struct {
	TextFn  func(selector string) (string, bool)
	TextsFn func(selector string) []string
}

func (n *Node) Text(selector string) (string, bool) {
	return n.TextFn(selector)
}

func (n *Node) Texts(selector string) []string {
	return n.TextsFn(selector)
}

// Page is a mock implementation of pressclip.Page.
type Page struct {
	TextFn     func(selector string) (string, bool)
	TextsFn    func(selector string) []string
	NavigateFn func(url string, timeout time.Duration) error
	TitleFn    func() string
	HTMLFn     func() (string, error)
	FindXFn    func(xpath string) (pressclip.Node, bool)
	EvalJSONFn func(js string, v any, args ...any) error
}

func (p *Page) Text(selector string) (string, bool) {
	return p.TextFn(selector)
}

func (p *Page) Texts(selector string) []string {
	return p.TextsFn(selector)
}

func (p *Page) Navigate(url string, timeout time.Duration) error {
	return p.NavigateFn(url, timeout)
}

func (p *Page) Title() string {
	return p.TitleFn()
}

func (p *Page) HTML() (string, error) {
	return p.HTMLFn()
}

func (p *Page) FindX(xpath string) (pressclip.Node, bool) {
	return p.FindXFn(xpath)
}

func (p *Page) EvalJSON(js string, v any, args ...any) error {
	return p.EvalJSONFn(js, v, args...)
}
