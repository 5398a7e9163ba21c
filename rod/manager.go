package rod

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/fwojciec/pressclip"
	"golang.org/x/sync/semaphore"
)

// Ensure SessionManager implements pressclip.Browser at compile time.
var _ pressclip.Browser = (*SessionManager)(nil)

// DefaultLivenessTimeout bounds the liveness check run before a session is reused.
const DefaultLivenessTimeout = 3 * time.Second

// Session is one live browser instance owned by a SessionManager.
type Session interface {
	// Alive reports whether the browser still responds.
	Alive(ctx context.Context) bool

	// NewPage opens a tab bound to ctx. The returned func closes the tab.
	NewPage(ctx context.Context) (pressclip.Page, func() error, error)

	// Close shuts the browser down and releases its process.
	Close() error
}

// LaunchFunc starts a new Session.
type LaunchFunc func(ctx context.Context) (Session, error)

// SessionManager owns the single shared browser session. The session is
// created lazily on first use, checked for liveness before every reuse, and
// replaced in place when the check fails.
//
// Access is serialized: session acquisition and the whole navigation plus
// extraction sequence run under one weighted semaphore of size one, so
// concurrent callers queue behind each other. Queued callers give up when
// their context is done.
//
// SessionManager is safe for concurrent use.
type SessionManager struct {
	launch          LaunchFunc
	livenessTimeout time.Duration
	logger          *slog.Logger

	sem     *semaphore.Weighted
	session Session
	closed  atomic.Bool
}

// ManagerOption configures a SessionManager.
type ManagerOption func(*SessionManager)

// WithLauncher replaces the function used to start sessions.
// Defaults to launching headless Chrome with DefaultLaunchOptions.
func WithLauncher(fn LaunchFunc) ManagerOption {
	return func(m *SessionManager) {
		m.launch = fn
	}
}

// WithLaunchOptions sets the options used by the default Chrome launcher.
func WithLaunchOptions(opts LaunchOptions) ManagerOption {
	return func(m *SessionManager) {
		m.launch = func(_ context.Context) (Session, error) {
			return Launch(opts)
		}
	}
}

// WithLivenessTimeout sets how long the liveness check may take.
// Defaults to DefaultLivenessTimeout (3s) if not specified.
func WithLivenessTimeout(d time.Duration) ManagerOption {
	return func(m *SessionManager) {
		m.livenessTimeout = d
	}
}

// WithLogger sets the logger used for session lifecycle events.
func WithLogger(logger *slog.Logger) ManagerOption {
	return func(m *SessionManager) {
		m.logger = logger
	}
}

// NewSessionManager creates a SessionManager. No browser is started until
// the first call to Do. Close must be called when the manager is no longer
// needed.
func NewSessionManager(opts ...ManagerOption) *SessionManager {
	m := &SessionManager{
		livenessTimeout: DefaultLivenessTimeout,
		logger:          slog.New(slog.NewTextHandler(io.Discard, nil)),
		sem:             semaphore.NewWeighted(1),
	}
	WithLaunchOptions(DefaultLaunchOptions())(m)
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Do acquires the shared session, opens a page bound to ctx and calls fn.
// The page is closed when fn returns.
func (m *SessionManager) Do(ctx context.Context, fn func(pressclip.Page) error) error {
	if m.closed.Load() {
		return pressclip.Errorf(pressclip.EINVALID, "browser session manager closed")
	}
	if err := m.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	defer m.sem.Release(1)

	session, err := m.acquire(ctx)
	if err != nil {
		return err
	}

	page, closePage, err := session.NewPage(ctx)
	if err != nil {
		return fmt.Errorf("opening page: %w", err)
	}
	defer func() {
		_ = closePage()
	}()

	return fn(page)
}

// Session returns the current live session, starting or replacing it as
// needed. It exists so callers can observe session identity; extraction
// code should use Do.
func (m *SessionManager) Session(ctx context.Context) (Session, error) {
	if err := m.sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer m.sem.Release(1)
	return m.acquire(ctx)
}

// Close shuts down the session if one exists. Close is safe to call
// multiple times; only the first call has any effect. It waits for an
// in-flight Do to finish.
func (m *SessionManager) Close() error {
	if !m.closed.CompareAndSwap(false, true) {
		return nil
	}

	_ = m.sem.Acquire(context.Background(), 1)
	defer m.sem.Release(1)

	if m.session == nil {
		return nil
	}
	err := m.session.Close()
	m.session = nil
	m.logger.Info("browser session closed", "err", err)
	return err
}

// acquire returns a live session. Must be called with sem held.
func (m *SessionManager) acquire(ctx context.Context) (Session, error) {
	if m.closed.Load() {
		return nil, pressclip.Errorf(pressclip.EINVALID, "browser session manager closed")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if m.session != nil {
		// The liveness check runs on its own deadline so that a caller with
		// little time left cannot make a healthy browser look dead.
		aliveCtx, cancel := context.WithTimeout(context.Background(), m.livenessTimeout)
		alive := m.session.Alive(aliveCtx)
		cancel()
		if alive {
			return m.session, nil
		}
		m.logger.Warn("browser session unresponsive, replacing")
		_ = m.session.Close()
		m.session = nil

		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}

	begin := time.Now()
	session, err := m.launch(ctx)
	if err != nil {
		m.logger.Error("browser session launch failed", "err", err)
		return nil, fmt.Errorf("starting browser session: %w", err)
	}
	m.session = session
	m.logger.Info("browser session started", "duration", time.Since(begin))
	return session, nil
}
