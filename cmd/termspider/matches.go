package main

import (
	"fmt"

	"github.com/fwojciec/termspider"
)

// Run executes the matches command.
func (c *MatchesCmd) Run(deps *Dependencies) error {
	if _, err := deps.Runs.FindRunByID(deps.Ctx, c.RunID); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", termspider.ErrorMessage(err))
		return err
	}

	filter := termspider.MatchFilter{RunID: &c.RunID}
	if c.Term != "" {
		filter.Term = &c.Term
	}
	if c.NewSince != "" {
		if _, err := deps.Runs.FindRunByID(deps.Ctx, c.NewSince); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", termspider.ErrorMessage(err))
			return err
		}
		filter.NotInRunID = &c.NewSince
	}

	matches, err := deps.Runs.FindMatches(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", termspider.ErrorMessage(err))
		return err
	}

	if len(matches) == 0 {
		fmt.Fprintln(deps.Stdout, "No matches found.")
		return nil
	}

	for _, m := range matches {
		snippet := m.Snippet
		if !m.Direct {
			snippet = "(no direct text match)"
		}
		fmt.Fprintf(deps.Stdout, "%s\t%s\t%s\n", m.Term, m.URL, snippet)
	}

	return nil
}
