package strategy_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fwojciec/pressclip/mock"
	"github.com/fwojciec/pressclip/strategy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublicationName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		url  string
		want string
	}{
		{"star early edition", "https://www.pressreader.com/south-africa/the-star-early-edition/20250319/textview", "The Star Early Edition"},
		{"star late edition", "https://www.pressreader.com/south-africa/the-star-late-edition/20250319/281500756789012", "The Star Late Edition"},
		{"plain star", "https://www.pressreader.com/south-africa/the-star/20250319/textview", "The Star"},
		{"other publication", "https://www.pressreader.com/south-africa/cape-times/20250319/281500756789012", "Cape Times"},
		{"edition suffix", "https://www.pressreader.com/south-africa/pretoria-news-weekend-early-edition/20250319/textview", "Pretoria News Weekend Early Edition"},
		{"stopwords removed", "https://www.pressreader.com/south-africa/sunday-times-south-africa/20250319/textview", "Sunday Times"},
		{"textview scan", "https://www.pressreader.com/daily-news-edition/20250319/textview", "Daily News"},
		{"textview scan star", "https://www.pressreader.com/saturday-star/20250319/textview", "The Star"},
		{"unknown", "https://www.pressreader.com/catalog", "Unknown Publication"},
		{"textview without candidate", "https://www.pressreader.com/catalog/textview", "Unknown Publication"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, strategy.PublicationName(tt.url))
		})
	}
}

func TestTextViewURL(t *testing.T) {
	t.Parallel()

	assert.Equal(t,
		"https://www.pressreader.com/south-africa/the-star/20250319/textview/281500756789012",
		strategy.TextViewURL("https://www.pressreader.com/south-africa/the-star/20250319/article/281500756789012"))
	assert.Equal(t,
		"https://www.pressreader.com/south-africa/the-star/20250319/textview",
		strategy.TextViewURL("https://www.pressreader.com/south-africa/the-star/20250319/textview"))
}

const pressReaderURL = "https://www.pressreader.com/south-africa/the-star-early-edition/20250319/article/281500756789012"

func newPressReader(page *mock.Page) *strategy.PressReader {
	s := strategy.NewPressReader(mock.BrowserWithPage(page), nil)
	s.Config.JitterMin = 0
	s.Config.JitterMax = 0
	return s
}

func TestPressReader_Extract(t *testing.T) {
	t.Parallel()

	t.Run("reads headline and paragraphs from script pass", func(t *testing.T) {
		t.Parallel()

		page := newPage("ignored", nil)
		var navigated string
		var timeout time.Duration
		page.NavigateFn = func(url string, d time.Duration) error {
			navigated, timeout = url, d
			return nil
		}
		page.EvalJSONFn = evalReturns(map[string]any{
			"headline": "Metro budget under strain",
			"groups": [][]string{
				{"Too short."},
				{
					"Cookie settings let you control what we store.",
					"The metro council tabled a revised budget on Tuesday.",
					"Ratepayers will see a modest increase in tariffs.",
					"A third paragraph beyond the content cap for clippings.",
				},
			},
		})

		got, err := newPressReader(page).Extract(context.Background(), pressReaderURL)

		require.NoError(t, err)
		assert.Equal(t, "https://www.pressreader.com/south-africa/the-star-early-edition/20250319/textview/281500756789012", navigated)
		assert.Equal(t, 30*time.Second, timeout)
		assert.Equal(t, "Metro budget under strain", got.Headline)
		assert.Equal(t, "The Star Early Edition", got.Source)
		assert.Equal(t, pressReaderURL, got.URL)
		assert.Equal(t,
			"The metro council tabled a revised budget on Tuesday.\n\nRatepayers will see a modest increase in tariffs.",
			got.Content)
	})

	t.Run("promotes first paragraph when no headline found", func(t *testing.T) {
		t.Parallel()

		page := newPage("", nil)
		page.EvalJSONFn = evalReturns(map[string]any{
			"headline": "",
			"groups": [][]string{{
				"Metro council tables revised budget plan",
				"The metro council tabled a revised budget on Tuesday.",
				"Ratepayers will see a modest increase in tariffs.",
				"A third paragraph beyond the content cap for clippings.",
			}},
		})

		got, err := newPressReader(page).Extract(context.Background(), pressReaderURL)

		require.NoError(t, err)
		assert.Equal(t, "Metro council tables revised budget plan", got.Headline)
		assert.Equal(t,
			"The metro council tabled a revised budget on Tuesday.\n\nRatepayers will see a modest increase in tariffs.",
			got.Content)
	})

	t.Run("falls back to DOM queries when script fails", func(t *testing.T) {
		t.Parallel()

		page := newPage("", map[string][]string{
			".headline": {"Taxi strike called off"},
			"article p": {"Operators agreed to return to work after talks with the MEC."},
		})

		got, err := newPressReader(page).Extract(context.Background(), pressReaderURL)

		require.NoError(t, err)
		assert.Equal(t, "Taxi strike called off", got.Headline)
		assert.Equal(t, "Operators agreed to return to work after talks with the MEC.", got.Content)
	})

	t.Run("falls back to page title", func(t *testing.T) {
		t.Parallel()

		page := newPage("Power cuts return | The Star", nil)
		page.EvalJSONFn = evalReturns(map[string]any{"headline": "", "groups": [][]string{}})

		got, err := newPressReader(page).Extract(context.Background(), pressReaderURL)

		require.NoError(t, err)
		assert.Equal(t, "Power cuts return", got.Headline)
		assert.Empty(t, got.Content)
	})

	t.Run("returns publication when browser fails", func(t *testing.T) {
		t.Parallel()

		s := strategy.NewPressReader(failingBrowser(errors.New("session init failed")), nil)

		got, err := s.Extract(context.Background(), pressReaderURL)

		require.NoError(t, err)
		assert.Empty(t, got.Headline)
		assert.Empty(t, got.Content)
		assert.Equal(t, "The Star Early Edition", got.Source)
		assert.Equal(t, pressReaderURL, got.URL)
	})

	t.Run("gives up when context ends during the pause", func(t *testing.T) {
		t.Parallel()

		page := newPage("Should not be read", nil)
		s := strategy.NewPressReader(mock.BrowserWithPage(page), nil)
		s.Config.JitterMin = time.Hour
		s.Config.JitterMax = time.Hour

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		got, err := s.Extract(ctx, pressReaderURL)

		require.NoError(t, err)
		assert.Empty(t, got.Headline)
		assert.Equal(t, "The Star Early Edition", got.Source)
	})
}
