package http

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/fwojciec/pressclip"
	"golang.org/x/sync/singleflight"
)

// DefaultMemoTTL is how long a fetch outcome is reused.
const DefaultMemoTTL = time.Minute

var _ pressclip.Fetcher = (*MemoFetcher)(nil)

// MemoFetcher remembers each URL's fetch outcome, body or error, for a short
// time. Concurrent fetches of one URL share a single request. A strategy
// chain that falls through to another fetch-based strategy therefore reuses
// the first response instead of paying for the request twice.
//
// Cancellations and deadline errors are never remembered.
type MemoFetcher struct {
	next pressclip.Fetcher
	ttl  time.Duration

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time

	group   singleflight.Group
	mu      sync.Mutex
	entries map[string]memoEntry
}

type memoEntry struct {
	html    string
	err     error
	expires time.Time
}

// NewMemoFetcher wraps next. A ttl of zero or less uses DefaultMemoTTL.
func NewMemoFetcher(next pressclip.Fetcher, ttl time.Duration) *MemoFetcher {
	if ttl <= 0 {
		ttl = DefaultMemoTTL
	}
	return &MemoFetcher{
		next:    next,
		ttl:     ttl,
		Now:     time.Now,
		entries: make(map[string]memoEntry),
	}
}

// Fetch returns the remembered outcome for url, or fetches it.
func (m *MemoFetcher) Fetch(ctx context.Context, url string) (string, error) {
	if e, ok := m.lookup(url); ok {
		return e.html, e.err
	}

	ch := m.group.DoChan(url, func() (any, error) {
		html, err := m.next.Fetch(ctx, url)
		if !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
			m.store(url, html, err)
		}
		return html, err
	})

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-ch:
		html, _ := r.Val.(string)
		return html, r.Err
	}
}

// Close drops remembered outcomes and closes the wrapped fetcher.
func (m *MemoFetcher) Close() error {
	m.mu.Lock()
	clear(m.entries)
	m.mu.Unlock()
	return m.next.Close()
}

func (m *MemoFetcher) lookup(url string) (memoEntry, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[url]
	if !ok {
		return memoEntry{}, false
	}
	if !m.Now().Before(e.expires) {
		delete(m.entries, url)
		return memoEntry{}, false
	}
	return e, true
}

func (m *MemoFetcher) store(url, html string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.Now()
	for k, e := range m.entries {
		if !now.Before(e.expires) {
			delete(m.entries, k)
		}
	}
	m.entries[url] = memoEntry{html: html, err: err, expires: now.Add(m.ttl)}
}
