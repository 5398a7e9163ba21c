package main

import (
	"fmt"

	"github.com/fwojciec/pressclip"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	var filter pressclip.ClippingFilter
	if c.Category != "" {
		filter.Category = &c.Category
	}

	clippings, err := deps.Clippings.FindClippings(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pressclip.ErrorMessage(err))
		return err
	}

	if len(clippings) == 0 {
		fmt.Fprintln(deps.Stdout, "No clippings found. Use 'pressclip extract --save' to add one.")
		return nil
	}

	for _, c := range clippings {
		fmt.Fprintf(deps.Stdout, "%d  %s  [%s]  %s (%s)\n", c.Position, c.ID, c.Category, c.Headline, c.Source)
	}

	return nil
}
