package rod_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fwojciec/pressclip"
	"github.com/fwojciec/pressclip/mock"
	"github.com/fwojciec/pressclip/rod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSession is an in-memory rod.Session.
type fakeSession struct {
	id         int
	alive      atomic.Bool
	closed     atomic.Int32
	pagesOpen  atomic.Int32
	pageClosed atomic.Int32

	// aliveDelay makes Alive take this long, giving up if ctx ends first.
	aliveDelay atomic.Int64
}

func (s *fakeSession) Alive(ctx context.Context) bool {
	if d := time.Duration(s.aliveDelay.Load()); d > 0 {
		t := time.NewTimer(d)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return false
		case <-t.C:
		}
	}
	return s.alive.Load()
}

func (s *fakeSession) NewPage(_ context.Context) (pressclip.Page, func() error, error) {
	s.pagesOpen.Add(1)
	return &mock.Page{}, func() error {
		s.pageClosed.Add(1)
		return nil
	}, nil
}

func (s *fakeSession) Close() error {
	s.closed.Add(1)
	return nil
}

// fakeLauncher records launched sessions.
type fakeLauncher struct {
	mu       sync.Mutex
	sessions []*fakeSession
	err      error
}

func (l *fakeLauncher) launch(_ context.Context) (rod.Session, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.err != nil {
		return nil, l.err
	}
	s := &fakeSession{id: len(l.sessions) + 1}
	s.alive.Store(true)
	l.sessions = append(l.sessions, s)
	return s, nil
}

func (l *fakeLauncher) count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.sessions)
}

func noop(pressclip.Page) error { return nil }

func TestSessionManager_Do(t *testing.T) {
	t.Parallel()

	t.Run("launches lazily on first use", func(t *testing.T) {
		t.Parallel()

		l := &fakeLauncher{}
		m := rod.NewSessionManager(rod.WithLauncher(l.launch))
		defer m.Close()

		assert.Equal(t, 0, l.count())

		require.NoError(t, m.Do(context.Background(), noop))
		assert.Equal(t, 1, l.count())
	})

	t.Run("reuses the live session across calls", func(t *testing.T) {
		t.Parallel()

		l := &fakeLauncher{}
		m := rod.NewSessionManager(rod.WithLauncher(l.launch))
		defer m.Close()

		require.NoError(t, m.Do(context.Background(), noop))
		first, err := m.Session(context.Background())
		require.NoError(t, err)
		require.NoError(t, m.Do(context.Background(), noop))
		second, err := m.Session(context.Background())
		require.NoError(t, err)

		assert.Same(t, first, second)
		assert.Equal(t, 1, l.count())
	})

	t.Run("replaces a dead session and reuses the replacement", func(t *testing.T) {
		t.Parallel()

		l := &fakeLauncher{}
		m := rod.NewSessionManager(rod.WithLauncher(l.launch))
		defer m.Close()

		require.NoError(t, m.Do(context.Background(), noop))
		l.sessions[0].alive.Store(false)

		require.NoError(t, m.Do(context.Background(), noop))
		require.NoError(t, m.Do(context.Background(), noop))

		assert.Equal(t, 2, l.count())
		assert.Equal(t, int32(1), l.sessions[0].closed.Load())
		assert.Equal(t, int32(2), l.sessions[1].pagesOpen.Load())

		current, err := m.Session(context.Background())
		require.NoError(t, err)
		assert.Same(t, l.sessions[1], current)
	})

	t.Run("keeps a healthy session for a caller with little time left", func(t *testing.T) {
		t.Parallel()

		l := &fakeLauncher{}
		m := rod.NewSessionManager(rod.WithLauncher(l.launch))
		defer m.Close()

		require.NoError(t, m.Do(context.Background(), noop))
		l.sessions[0].aliveDelay.Store(int64(20 * time.Millisecond))

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()
		_ = m.Do(ctx, noop)

		assert.Equal(t, 1, l.count())
		assert.Equal(t, int32(0), l.sessions[0].closed.Load())
	})

	t.Run("dead session is not relaunched for an expired caller", func(t *testing.T) {
		t.Parallel()

		l := &fakeLauncher{}
		m := rod.NewSessionManager(rod.WithLauncher(l.launch))
		defer m.Close()

		require.NoError(t, m.Do(context.Background(), noop))
		l.sessions[0].alive.Store(false)
		l.sessions[0].aliveDelay.Store(int64(20 * time.Millisecond))

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()
		err := m.Do(ctx, noop)

		assert.ErrorIs(t, err, context.DeadlineExceeded)
		assert.Equal(t, 1, l.count())
		assert.Equal(t, int32(1), l.sessions[0].closed.Load())
	})

	t.Run("closes the page after fn returns", func(t *testing.T) {
		t.Parallel()

		l := &fakeLauncher{}
		m := rod.NewSessionManager(rod.WithLauncher(l.launch))
		defer m.Close()

		fnErr := errors.New("selector exploded")
		err := m.Do(context.Background(), func(pressclip.Page) error { return fnErr })

		assert.ErrorIs(t, err, fnErr)
		assert.Equal(t, int32(1), l.sessions[0].pageClosed.Load())
	})

	t.Run("returns launch failure and retries on next call", func(t *testing.T) {
		t.Parallel()

		l := &fakeLauncher{err: errors.New("chrome not found")}
		m := rod.NewSessionManager(rod.WithLauncher(l.launch))
		defer m.Close()

		err := m.Do(context.Background(), noop)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "chrome not found")

		l.mu.Lock()
		l.err = nil
		l.mu.Unlock()

		require.NoError(t, m.Do(context.Background(), noop))
		assert.Equal(t, 1, l.count())
	})

	t.Run("serializes concurrent callers", func(t *testing.T) {
		t.Parallel()

		l := &fakeLauncher{}
		m := rod.NewSessionManager(rod.WithLauncher(l.launch))
		defer m.Close()

		var inFlight, maxInFlight atomic.Int32
		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_ = m.Do(context.Background(), func(pressclip.Page) error {
					n := inFlight.Add(1)
					for {
						cur := maxInFlight.Load()
						if n <= cur || maxInFlight.CompareAndSwap(cur, n) {
							break
						}
					}
					time.Sleep(5 * time.Millisecond)
					inFlight.Add(-1)
					return nil
				})
			}()
		}
		wg.Wait()

		assert.Equal(t, int32(1), maxInFlight.Load())
		assert.Equal(t, 1, l.count())
	})

	t.Run("queued caller gives up when its context ends", func(t *testing.T) {
		t.Parallel()

		l := &fakeLauncher{}
		m := rod.NewSessionManager(rod.WithLauncher(l.launch))
		defer m.Close()

		started := make(chan struct{})
		release := make(chan struct{})
		go func() {
			_ = m.Do(context.Background(), func(pressclip.Page) error {
				close(started)
				<-release
				return nil
			})
		}()
		<-started

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()
		err := m.Do(ctx, noop)
		close(release)

		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}

func TestSessionManager_Close(t *testing.T) {
	t.Parallel()

	t.Run("is idempotent and closes the session once", func(t *testing.T) {
		t.Parallel()

		l := &fakeLauncher{}
		m := rod.NewSessionManager(rod.WithLauncher(l.launch))
		require.NoError(t, m.Do(context.Background(), noop))

		require.NoError(t, m.Close())
		require.NoError(t, m.Close())

		assert.Equal(t, int32(1), l.sessions[0].closed.Load())
	})

	t.Run("without a session does nothing", func(t *testing.T) {
		t.Parallel()

		l := &fakeLauncher{}
		m := rod.NewSessionManager(rod.WithLauncher(l.launch))

		require.NoError(t, m.Close())
		assert.Equal(t, 0, l.count())
	})

	t.Run("rejects use after close", func(t *testing.T) {
		t.Parallel()

		l := &fakeLauncher{}
		m := rod.NewSessionManager(rod.WithLauncher(l.launch))
		require.NoError(t, m.Close())

		err := m.Do(context.Background(), noop)

		require.Error(t, err)
		assert.Equal(t, pressclip.EINVALID, pressclip.ErrorCode(err))
		assert.Contains(t, pressclip.ErrorMessage(err), "closed")
		assert.Equal(t, 0, l.count())
	})
}
