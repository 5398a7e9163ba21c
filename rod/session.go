package rod

import (
	"context"
	"fmt"
	"time"

	"github.com/fwojciec/pressclip"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// Ensure ChromeSession implements Session at compile time.
var _ Session = (*ChromeSession)(nil)

// DefaultUserAgent is presented instead of the HeadlessChrome user agent.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"

// hideWebdriver masks the most common automation indicator before any page
// script runs.
const hideWebdriver = `(() => {
	Object.defineProperty(navigator, 'webdriver', { get: () => undefined });
	window.chrome = window.chrome || { runtime: {} };
	Object.defineProperty(navigator, 'languages', { get: () => ['en-US', 'en'] });
})();`

// LaunchOptions configures how Chrome is started.
type LaunchOptions struct {
	// Bin is the browser binary. Empty means find or download one.
	Bin string

	// Headless runs the browser without a window.
	Headless bool

	// UserAgent overrides the browser user agent when non-empty.
	UserAgent string
}

// DefaultLaunchOptions returns headless options with a desktop user agent.
func DefaultLaunchOptions() LaunchOptions {
	return LaunchOptions{
		Headless:  true,
		UserAgent: DefaultUserAgent,
	}
}

// ChromeSession is a live Chrome process controlled through rod.
type ChromeSession struct {
	browser   *rod.Browser
	launcher  *launcher.Launcher
	userAgent string

	// CreatedAt is when the browser was launched.
	CreatedAt time.Time
}

// Launch starts Chrome with flags that reduce automation fingerprints and
// connects to it.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func Launch(opts LaunchOptions) (*ChromeSession, error) {
	lnchr := launcher.New().
		Set("disable-blink-features", "AutomationControlled").
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Set("disable-hang-monitor").
		Set("window-size", "1366,900").
		Delete("enable-automation").
		NoSandbox(true).
		Leakless(true).
		Headless(opts.Headless)
	if opts.Bin != "" {
		lnchr = lnchr.Bin(opts.Bin)
	}

	u, err := lnchr.Launch()
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		lnchr.Kill()
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}

	return &ChromeSession{
		browser:   browser,
		launcher:  lnchr,
		userAgent: opts.UserAgent,
		CreatedAt: time.Now(),
	}, nil
}

// Alive asks the browser for its version.
func (s *ChromeSession) Alive(ctx context.Context) bool {
	if s.browser == nil {
		return false
	}
	_, err := s.browser.Context(ctx).Version()
	return err == nil
}

// NewPage opens a blank tab bound to ctx with the stealth script installed.
func (s *ChromeSession) NewPage(ctx context.Context) (pressclip.Page, func() error, error) {
	raw, err := s.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, nil, err
	}

	if s.userAgent != "" {
		if err := raw.SetUserAgent(&proto.NetworkSetUserAgentOverride{
			UserAgent:      s.userAgent,
			AcceptLanguage: "en-US,en;q=0.9",
		}); err != nil {
			_ = raw.Close()
			return nil, nil, fmt.Errorf("setting user agent: %w", err)
		}
	}
	if _, err := raw.EvalOnNewDocument(hideWebdriver); err != nil {
		_ = raw.Close()
		return nil, nil, fmt.Errorf("installing stealth script: %w", err)
	}

	return NewPage(raw.Context(ctx)), raw.Close, nil
}

// Close releases browser resources including the launcher process.
func (s *ChromeSession) Close() error {
	var err error
	if s.browser != nil {
		err = s.browser.Close()
		s.browser = nil
	}
	if s.launcher != nil {
		s.launcher.Kill()
		s.launcher = nil
	}
	return err
}

// LauncherPID returns the process ID of the browser launcher.
// This method exists for testing purposes to verify proper cleanup.
func (s *ChromeSession) LauncherPID() int {
	if s.launcher == nil {
		return 0
	}
	return s.launcher.PID()
}
