package pressclip

import (
	"io"
	"sort"
	"strings"
	"time"
)

// Digest categories in presentation order.
const (
	DigestForeignPolitics  = "Foreign Politics"
	DigestDomesticPolitics = "Domestic Politics"
	DigestEconomy          = "Economy, Energy, Climate & Agriculture"
	DigestMiscellaneous    = "Verschiedenes"
	DigestCartoon          = "Cartoon"
)

// DigestCategories lists the fixed digest sections in order.
var DigestCategories = []string{
	DigestForeignPolitics,
	DigestDomesticPolitics,
	DigestEconomy,
	DigestMiscellaneous,
	DigestCartoon,
}

// DigestSection is one category heading with its clippings.
type DigestSection struct {
	Category  string
	Clippings []*Clipping
}

// Digest is the ordered, grouped view of clippings handed to renderers.
type Digest struct {
	Date     time.Time
	Sections []DigestSection
}

// NewDigest groups clippings into the fixed categories. A clipping's category
// matches a section when it equals it or is a substring of it, ignoring case;
// anything else lands in Verschiedenes. Sections without clippings are
// omitted except Cartoon, which is always present.
func NewDigest(clippings []*Clipping, date time.Time) *Digest {
	groups := make(map[string][]*Clipping, len(DigestCategories))
	for _, c := range clippings {
		cat := DigestCategoryFor(c.Category)
		groups[cat] = append(groups[cat], c)
	}

	d := &Digest{Date: date}
	for _, cat := range DigestCategories {
		items := groups[cat]
		if len(items) == 0 && cat != DigestCartoon {
			continue
		}
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].Position < items[j].Position
		})
		d.Sections = append(d.Sections, DigestSection{Category: cat, Clippings: items})
	}
	return d
}

// DigestCategoryFor maps a user-assigned category to a fixed digest category.
func DigestCategoryFor(category string) string {
	user := strings.ToLower(strings.TrimSpace(category))
	if user == "" {
		return DigestMiscellaneous
	}
	for _, cat := range DigestCategories {
		fixed := strings.ToLower(cat)
		if user == fixed || strings.Contains(fixed, user) {
			return cat
		}
	}
	return DigestMiscellaneous
}

// DigestRenderer renders a digest into a document format.
type DigestRenderer interface {
	// ContentType returns the MIME type of the rendered output.
	ContentType() string

	// Render writes the digest to w.
	Render(w io.Writer, d *Digest) error
}
