package strategy_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/fwojciec/pressclip"
	"github.com/fwojciec/pressclip/mock"
)

// newPage returns a loaded page whose selectors resolve from texts.
func newPage(title string, texts map[string][]string) *mock.Page {
	return &mock.Page{
		NavigateFn: func(string, time.Duration) error { return nil },
		TitleFn:    func() string { return title },
		TextFn:     textFn(texts),
		TextsFn:    func(sel string) []string { return texts[sel] },
		FindXFn:    func(string) (pressclip.Node, bool) { return nil, false },
		HTMLFn:     func() (string, error) { return "", nil },
		EvalJSONFn: func(string, any, ...any) error { return errors.New("script unavailable") },
	}
}

func newNode(texts map[string][]string) *mock.Node {
	return &mock.Node{
		TextFn:  textFn(texts),
		TextsFn: func(sel string) []string { return texts[sel] },
	}
}

func textFn(texts map[string][]string) func(string) (string, bool) {
	return func(sel string) (string, bool) {
		for _, t := range texts[sel] {
			if t != "" {
				return t, true
			}
		}
		return "", false
	}
}

// evalReturns makes EvalJSON decode value into its target.
func evalReturns(value any) func(string, any, ...any) error {
	return func(_ string, v any, _ ...any) error {
		raw, err := json.Marshal(value)
		if err != nil {
			return err
		}
		return json.Unmarshal(raw, v)
	}
}

// unusedBrowser fails the test if the browser is touched.
func unusedBrowser(t *testing.T) *mock.Browser {
	t.Helper()
	return &mock.Browser{
		DoFn: func(context.Context, func(pressclip.Page) error) error {
			t.Error("browser should not be used")
			return nil
		},
	}
}

func failingBrowser(err error) *mock.Browser {
	return &mock.Browser{
		DoFn: func(context.Context, func(pressclip.Page) error) error {
			return err
		},
	}
}
