package main

import (
	"encoding/json"
	"fmt"

	"github.com/fwojciec/pressclip"
	"golang.org/x/sync/errgroup"
)

// Run executes the extract command. Results are printed as a JSON array in
// argument order.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	concurrency := c.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}

	results := make([]*pressclip.ExtractionResult, len(c.URLs))

	g, ctx := errgroup.WithContext(deps.Ctx)
	g.SetLimit(concurrency)
	for i, url := range c.URLs {
		g.Go(func() error {
			res, err := deps.Extractor.Extract(ctx, url)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pressclip.ErrorMessage(err))
		return err
	}

	if c.Save {
		for _, res := range results {
			if !res.HasHeadline() {
				fmt.Fprintf(deps.Stderr, "skipped without headline: %s\n", res.URL)
				continue
			}
			if err := deps.Clippings.CreateClipping(deps.Ctx, pressclip.NewClipping(res, c.Category)); err != nil {
				if pressclip.ErrorCode(err) == pressclip.ECONFLICT {
					fmt.Fprintf(deps.Stderr, "skipped duplicate: %s\n", res.URL)
					continue
				}
				fmt.Fprintf(deps.Stderr, "error: %s\n", pressclip.ErrorMessage(err))
				return err
			}
		}
	}

	enc := json.NewEncoder(deps.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}
