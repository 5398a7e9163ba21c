package goquery_test

import (
	"testing"

	"github.com/fwojciec/pressclip/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTitle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		html string
		want string
	}{
		{
			name: "prefers og:title",
			html: `<html><head>
<title>Fallback | Mail &amp; Guardian</title>
<meta name="twitter:title" content="Twitter headline">
<meta property="og:title" content="Cabinet reshuffle looms">
</head><body><h1>Heading</h1></body></html>`,
			want: "Cabinet reshuffle looms",
		},
		{
			name: "falls back to twitter:title",
			html: `<html><head>
<title>Fallback</title>
<meta name="twitter:title" content="Twitter headline">
</head><body></body></html>`,
			want: "Twitter headline",
		},
		{
			name: "falls back to title and strips site suffix",
			html: `<html><head><title>Rand slides on rate fears | Business Day</title></head><body></body></html>`,
			want: "Rand slides on rate fears",
		},
		{
			name: "falls back to first h1",
			html: `<html><body><h1>  Floods hit
 KwaZulu-Natal </h1><h1>Second</h1></body></html>`,
			want: "Floods hit KwaZulu-Natal",
		},
		{
			name: "skips empty og:title",
			html: `<html><head><meta property="og:title" content="  "><title>Real title</title></head></html>`,
			want: "Real title",
		},
		{
			name: "returns empty when nothing declared",
			html: `<html><body><p>No title here</p></body></html>`,
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, goquery.Title(tt.html))
		})
	}
}

func TestParagraphs(t *testing.T) {
	t.Parallel()

	html := `<html><body>
<div class="lead"></div>
<article>
<p>First   paragraph
 text.</p>
<p></p>
<p>Second paragraph text.</p>
</article>
<aside><p>Aside text.</p></aside>
</body></html>`

	t.Run("defaults to all paragraphs", func(t *testing.T) {
		t.Parallel()

		got := goquery.Paragraphs(html)
		assert.Equal(t, []string{"First paragraph text.", "Second paragraph text.", "Aside text."}, got)
	})

	t.Run("uses first selector that matches", func(t *testing.T) {
		t.Parallel()

		got := goquery.Paragraphs(html, ".lead p", "article p", "p")
		assert.Equal(t, []string{"First paragraph text.", "Second paragraph text."}, got)
	})

	t.Run("returns nil when nothing matches", func(t *testing.T) {
		t.Parallel()

		assert.Nil(t, goquery.Paragraphs(html, ".missing"))
	})
}

func TestDocument(t *testing.T) {
	t.Parallel()

	doc, err := goquery.Parse(`<html><head>
<meta property="og:site_name" content="Daily Maverick">
</head><body>
<h1 class="headline"> </h1>
<h1 class="headline">Water crisis deepens</h1>
<p>One.</p><p>Two.</p>
</body></html>`)
	require.NoError(t, err)

	t.Run("Text skips empty matches", func(t *testing.T) {
		t.Parallel()

		got, ok := doc.Text(".headline")
		assert.True(t, ok)
		assert.Equal(t, "Water crisis deepens", got)
	})

	t.Run("Text reports absence", func(t *testing.T) {
		t.Parallel()

		_, ok := doc.Text(".missing")
		assert.False(t, ok)
	})

	t.Run("Texts returns all non-empty", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, []string{"One.", "Two."}, doc.Texts("p"))
	})

	t.Run("SiteName reads og:site_name", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "Daily Maverick", doc.SiteName())
	})
}
