package main

import (
	"fmt"

	"github.com/fwojciec/pressclip"
	"github.com/fwojciec/pressclip/fs"
)

// Run executes the export command.
func (c *ExportCmd) Run(deps *Dependencies) error {
	clippings, err := deps.Clippings.FindClippings(deps.Ctx, pressclip.ClippingFilter{})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pressclip.ErrorMessage(err))
		return err
	}

	digest := pressclip.NewDigest(clippings, deps.Now())
	if err := fs.NewDigestWriter(deps.Renderer).WriteFile(c.Output, digest); err != nil {
		fmt.Fprintf(deps.Stderr, "error: cannot write %s\n", c.Output)
		return err
	}

	fmt.Fprintf(deps.Stdout, "Wrote %d clippings to %s\n", len(clippings), c.Output)
	return nil
}
