package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/pressclip"
	pchttp "github.com/fwojciec/pressclip/http"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Logger    *slog.Logger
	Config    Config
	Clippings pressclip.ClippingService
	Extractor pressclip.ExtractionService
	Renderer  pressclip.DigestRenderer
	Server    *pchttp.Server
	Now       func() time.Time
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	DB       string `name:"db" env:"PRESSCLIP_DB" help:"SQLite database path"`
	Config   string `name:"config" env:"PRESSCLIP_CONFIG" help:"YAML configuration file"`
	LogLevel string `name:"log-level" help:"Log level (debug, info, warn, error)"`

	Serve   ServeCmd   `cmd:"" help:"Run the HTTP API with hourly retention purge"`
	Extract ExtractCmd `cmd:"" help:"Extract headline and content from article URLs"`
	List    ListCmd    `cmd:"" help:"List stored clippings in order"`
	Export  ExportCmd  `cmd:"" help:"Render the daily digest as PDF"`
	Purge   PurgeCmd   `cmd:"" help:"Delete clippings older than the retention"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr          string        `help:"Listen address (overrides config)"`
	Retention     time.Duration `help:"Delete clippings older than this (overrides config)"`
	PurgeInterval time.Duration `name:"purge-interval" help:"How often to purge (overrides config)"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	URLs        []string `arg:"" name:"url" help:"Article URLs"`
	Concurrency int      `short:"c" default:"4" help:"Concurrent extraction limit"`
	Save        bool     `short:"s" help:"Store each result as a clipping"`
	Category    string   `default:"Verschiedenes" help:"Category for saved clippings"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	Category string `help:"Only list clippings in this category"`
}

// ExportCmd is the "export" subcommand.
type ExportCmd struct {
	Output string `short:"o" default:"press_clippings.pdf" help:"Output file"`
}

// PurgeCmd is the "purge" subcommand.
type PurgeCmd struct {
	Retention time.Duration `help:"Delete clippings older than this (overrides config)"`
	All       bool          `help:"Delete every clipping"`
}
