package pressclip

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// ToTitleCaps rewrites every fully-uppercase token longer than one character
// to capitalized form. Other tokens pass through unchanged and tokens are
// rejoined with single spaces.
func ToTitleCaps(text string) string {
	words := strings.Fields(text)
	for i, w := range words {
		if utf8.RuneCountInString(w) > 1 && isUpper(w) {
			words[i] = capitalize(w)
		}
	}
	return strings.Join(words, " ")
}

// CleanSourceName derives a display publisher name from a host, URL or name.
// PressReader hosts map to "PressReader"; otherwise a leading "www." is
// stripped and the first dot-separated label is title-cased.
func CleanSourceName(hostOrName string) string {
	s := strings.TrimSpace(hostOrName)
	if strings.Contains(s, "://") {
		s = hostOf(s)
	}
	s = strings.ToLower(s)
	if strings.Contains(s, "pressreader.com") {
		return "PressReader"
	}
	s = strings.TrimPrefix(s, "www.")
	if i := strings.IndexByte(s, ':'); i >= 0 {
		s = s[:i]
	}
	if i := strings.IndexByte(s, '.'); i >= 0 {
		s = s[:i]
	}
	return titleWord(s)
}

// Capitalize upper-cases the first letter of each word and lower-cases the rest.
func Capitalize(text string) string {
	words := strings.Fields(text)
	for i, w := range words {
		words[i] = capitalize(w)
	}
	return strings.Join(words, " ")
}

// StripTitleSuffix removes a trailing "| Publication" style suffix from a
// page title. Titles without a separator are returned trimmed.
func StripTitleSuffix(title string) string {
	title = strings.TrimSpace(title)
	if i := strings.LastIndex(title, "|"); i > 0 {
		if head := strings.TrimSpace(title[:i]); head != "" {
			return head
		}
	}
	return title
}

// ParagraphFilter discards boilerplate paragraphs.
type ParagraphFilter struct {
	// MinLength is the number of characters a paragraph must exceed.
	MinLength int

	// Denylist holds lower-case phrases that disqualify a paragraph.
	Denylist []string
}

// DefaultDenylist holds paywall, cookie and subscription phrases.
var DefaultDenylist = []string{
	"subscribe",
	"subscription",
	"subscriber",
	"paywall",
	"cookie",
	"advertisement",
	"sign in",
	"sign up",
	"log in",
	"create an account",
	"already a member",
	"newsletter",
	"privacy policy",
}

// Keep reports whether a paragraph survives the filter.
func (f ParagraphFilter) Keep(p string) bool {
	p = strings.TrimSpace(p)
	if utf8.RuneCountInString(p) <= f.MinLength {
		return false
	}
	lower := strings.ToLower(p)
	for _, kw := range f.Denylist {
		if strings.Contains(lower, kw) {
			return false
		}
	}
	return true
}

// Apply returns up to max surviving paragraphs in order.
// A max of zero or less means no limit.
func (f ParagraphFilter) Apply(paragraphs []string, max int) []string {
	var kept []string
	for _, p := range paragraphs {
		if !f.Keep(p) {
			continue
		}
		kept = append(kept, strings.TrimSpace(p))
		if max > 0 && len(kept) == max {
			break
		}
	}
	return kept
}

// MaxParagraphs is the number of paragraphs a result's content may hold.
const MaxParagraphs = 2

// JoinParagraphs joins paragraphs with blank lines.
func JoinParagraphs(paragraphs []string) string {
	return strings.Join(paragraphs, "\n\n")
}

// SplitParagraphs splits content on blank lines, dropping empty entries.
func SplitParagraphs(content string) []string {
	var out []string
	for _, p := range strings.Split(content, "\n\n") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func isUpper(w string) bool {
	hasLetter := false
	for _, r := range w {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsLetter(r) {
			hasLetter = true
		}
	}
	return hasLetter
}

func capitalize(w string) string {
	r, size := utf8.DecodeRuneInString(w)
	if r == utf8.RuneError {
		return w
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(w[size:])
}

// titleWord upper-cases the first letter and every letter following a
// non-letter, lower-casing the rest.
func titleWord(w string) string {
	var b strings.Builder
	prevLetter := false
	for _, r := range w {
		if unicode.IsLetter(r) {
			if prevLetter {
				b.WriteRune(unicode.ToLower(r))
			} else {
				b.WriteRune(unicode.ToUpper(r))
			}
			prevLetter = true
			continue
		}
		b.WriteRune(r)
		prevLetter = false
	}
	return b.String()
}
