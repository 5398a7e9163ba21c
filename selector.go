package pressclip

import "strings"

// LookupFunc resolves one selector to a value. The bool is false when the
// selector matched nothing usable.
type LookupFunc func(selector string) (string, bool)

// FirstMatch tries selectors in order and returns the first non-empty value.
func FirstMatch(selectors []string, lookup LookupFunc) (string, bool) {
	for _, sel := range selectors {
		if v, ok := lookup(sel); ok {
			if v = strings.TrimSpace(v); v != "" {
				return v, true
			}
		}
	}
	return "", false
}

// FirstNode tries XPath expressions in order against find and returns the
// first node found along with the expression that matched.
func FirstNode(expressions []string, find func(string) (Node, bool)) (Node, string, bool) {
	for _, expr := range expressions {
		if n, ok := find(expr); ok && n != nil {
			return n, expr, true
		}
	}
	return nil, "", false
}

// FirstParagraphs tries paragraph selector groups in order and returns up to
// max paragraphs surviving filter from the first group that yields any.
func FirstParagraphs(groups []string, texts func(string) []string, filter ParagraphFilter, max int) []string {
	for _, sel := range groups {
		if kept := filter.Apply(texts(sel), max); len(kept) > 0 {
			return kept
		}
	}
	return nil
}
