package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/pressclip"
)

// Run executes the purge command.
func (c *PurgeCmd) Run(deps *Dependencies) error {
	if c.All {
		if err := deps.Clippings.DeleteAllClippings(deps.Ctx); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", pressclip.ErrorMessage(err))
			return err
		}
		fmt.Fprintln(deps.Stdout, "Deleted all clippings")
		return nil
	}

	retention := c.Retention
	if retention <= 0 {
		retention = deps.Config.Retention
	}

	n, err := purgeExpired(deps, retention)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pressclip.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Purged %d clippings older than %s\n", n, retention)
	return nil
}

func purgeExpired(deps *Dependencies, retention time.Duration) (int, error) {
	cutoff := deps.Now().Add(-retention)
	return deps.Clippings.DeleteClippingsBefore(deps.Ctx, cutoff)
}
