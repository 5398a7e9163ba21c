// Package fs writes rendered digests to the local filesystem.
package fs

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fwojciec/pressclip"
)

// DigestWriter renders digests into files with atomic replace semantics.
// Output goes to a temporary file beside the target and is renamed into place
// only after rendering succeeds, so an existing file is never left truncated.
type DigestWriter struct {
	renderer pressclip.DigestRenderer
}

// NewDigestWriter creates a DigestWriter using renderer.
func NewDigestWriter(renderer pressclip.DigestRenderer) *DigestWriter {
	return &DigestWriter{renderer: renderer}
}

// WriteFile renders d to path, creating parent directories as needed.
func (w *DigestWriter) WriteFile(path string, d *pressclip.Digest) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if err := w.renderer.Render(tmp, d); err != nil {
		return fmt.Errorf("rendering digest: %w", err)
	}
	if err := tmp.Chmod(0644); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
