package main

import (
	"fmt"
	"time"
)

// Run executes the serve command. It blocks until the context ends.
func (c *ServeCmd) Run(deps *Dependencies) error {
	addr := c.Addr
	if addr == "" {
		addr = deps.Config.Addr
	}
	retention := c.Retention
	if retention <= 0 {
		retention = deps.Config.Retention
	}
	interval := c.PurgeInterval
	if interval <= 0 {
		interval = deps.Config.PurgeInterval
	}
	if interval <= 0 {
		interval = time.Hour
	}

	deps.Server.Addr = addr
	if err := deps.Server.Open(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: cannot listen on %s\n", addr)
		return fmt.Errorf("listening on %s: %w", addr, err)
	}
	fmt.Fprintf(deps.Stdout, "Listening on %s\n", deps.Server.URL())

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-deps.Ctx.Done():
			return deps.Server.Close()
		case <-ticker.C:
			n, err := purgeExpired(deps, retention)
			if err != nil {
				deps.Logger.Error("purge failed", "err", err)
				continue
			}
			deps.Logger.Info("purged expired clippings", "count", n, "retention", retention)
		}
	}
}
