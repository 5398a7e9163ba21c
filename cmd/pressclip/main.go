package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/pressclip"
	"github.com/fwojciec/pressclip/gofpdf"
	pchttp "github.com/fwojciec/pressclip/http"
	"github.com/fwojciec/pressclip/rod"
	"github.com/fwojciec/pressclip/sqlite"
)

func main() {
	// Interrupts cancel the context so deferred cleanup, including the
	// browser shutdown, runs before exit.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	m := NewMain()

	err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Config is resolved from defaults, the config file and flags during Run.
	Config Config

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Browser is the shared session manager, started lazily on first use.
	Browser *rod.SessionManager

	// Services for end-to-end testing.
	ClippingService   pressclip.ClippingService
	ExtractionService pressclip.ExtractionService
}

// NewMain returns a new instance of Main.
func NewMain() *Main {
	return &Main{}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	var errs []error
	if m.Browser != nil {
		errs = append(errs, m.Browser.Close())
	}
	if m.DB != nil {
		errs = append(errs, m.DB.Close())
	}
	return errors.Join(errs...)
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Now:    time.Now,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("pressclip"),
		kong.Description("Turn news-article URLs into clippings for a daily press digest."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'pressclip --help' to see available commands")
	}

	if cmd := args[0]; cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	m.Config, err = LoadConfig(cli.Config)
	if err != nil {
		fmt.Fprintf(stderr, "Hint: Set PRESSCLIP_CONFIG or --config to a readable YAML file\n")
		return err
	}
	if cli.DB != "" {
		m.Config.DB = cli.DB
	}
	if cli.LogLevel != "" {
		m.Config.LogLevel = cli.LogLevel
	}

	logger, err := newLogger(stderr, m.Config.LogLevel)
	if err != nil {
		return err
	}
	deps.Logger = logger
	deps.Config = m.Config

	m.DB = sqlite.NewDB(m.Config.DB)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set PRESSCLIP_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.Config.DB, err)
	}
	defer m.Close()

	m.ClippingService = sqlite.NewClippingService(m.DB)
	deps.Clippings = m.ClippingService
	deps.Renderer = gofpdf.NewRenderer()

	// Wire command-specific dependencies based on command
	cmd := strings.Fields(kongCtx.Command())[0]
	if cmd == "serve" || cmd == "extract" {
		m.Browser = newBrowser(m.Config, logger)
		m.ExtractionService = NewPipeline(m.Config, m.Browser, logger)
		deps.Extractor = m.ExtractionService
	}

	if cmd == "serve" {
		server := pchttp.NewServer()
		server.ExtractionService = m.ExtractionService
		server.ClippingService = m.ClippingService
		server.DigestRenderer = deps.Renderer
		server.Logger = logger
		deps.Server = server
	}

	return kongCtx.Run(deps)
}
