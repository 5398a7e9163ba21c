package pressclip

import (
	"context"
	"time"
)

// Browser gives exclusive access to the shared automated browser.
// Implementations serialize callers: fn runs while no other navigation is in
// flight, and the page passed to fn is closed when fn returns.
type Browser interface {
	// Do acquires the session, opens a page bound to ctx and calls fn.
	// Returns an error if the session cannot be started or fn fails.
	Do(ctx context.Context, fn func(Page) error) error
}

// Node is a scope within rendered markup that can be queried with CSS selectors.
type Node interface {
	// Text returns the trimmed text of the first element matching selector
	// that has non-empty text. The bool is false when nothing matched.
	Text(selector string) (string, bool)

	// Texts returns the trimmed, non-empty texts of all elements matching selector.
	Texts(selector string) []string
}

// Page is a browser tab with a loaded document.
type Page interface {
	Node

	// Navigate loads url and waits for the load event, bounded by timeout.
	Navigate(url string, timeout time.Duration) error

	// Title returns the document title, or empty if unavailable.
	Title() string

	// HTML returns the rendered document markup.
	HTML() (string, error)

	// FindX returns the first element matching the XPath expression as a Node.
	FindX(xpath string) (Node, bool)

	// EvalJSON runs a JavaScript function in the page with args and decodes
	// its JSON-serializable return value into v.
	EvalJSON(js string, v any, args ...any) error
}
