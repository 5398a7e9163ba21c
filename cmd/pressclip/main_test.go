package main_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/pressclip"
	main "github.com/fwojciec/pressclip/cmd/pressclip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain_Run(t *testing.T) {
	t.Parallel()

	t.Run("list on an empty database", func(t *testing.T) {
		t.Parallel()

		db := filepath.Join(t.TempDir(), "test.db")
		stdout := &bytes.Buffer{}

		m := main.NewMain()
		err := m.Run(context.Background(), []string{"--db", db, "list"}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "No clippings found")
		assert.Equal(t, db, m.Config.DB)
	})

	t.Run("export renders a real pdf", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		out := filepath.Join(dir, "press_clippings.pdf")

		m := main.NewMain()
		err := m.Run(context.Background(), []string{"--db", filepath.Join(dir, "test.db"), "export", "--output", out}, &bytes.Buffer{}, &bytes.Buffer{})
		require.NoError(t, err)

		data, err := os.ReadFile(out)
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
	})

	t.Run("config file supplies log level", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		cfg := filepath.Join(dir, "pressclip.yaml")
		require.NoError(t, os.WriteFile(cfg, []byte("log_level: debug\nretention: 2h\n"), 0o644))

		m := main.NewMain()
		err := m.Run(context.Background(), []string{"--db", filepath.Join(dir, "test.db"), "--config", cfg, "purge"}, &bytes.Buffer{}, &bytes.Buffer{})

		require.NoError(t, err)
		assert.Equal(t, "debug", m.Config.LogLevel)
	})

	t.Run("rejects unknown log level", func(t *testing.T) {
		t.Parallel()

		m := main.NewMain()
		err := m.Run(context.Background(), []string{"--db", filepath.Join(t.TempDir(), "test.db"), "--log-level", "loud", "list"}, &bytes.Buffer{}, &bytes.Buffer{})

		require.Error(t, err)
		assert.Equal(t, pressclip.EINVALID, pressclip.ErrorCode(err))
	})

	t.Run("missing config file", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		m := main.NewMain()
		err := m.Run(context.Background(), []string{"--config", filepath.Join(t.TempDir(), "absent.yaml"), "list"}, &bytes.Buffer{}, stderr)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "Hint:")
	})
}
