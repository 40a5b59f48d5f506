package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/termspider"
)

// Run executes the runs command.
func (c *RunsCmd) Run(deps *Dependencies) error {
	runs, err := deps.Runs.FindRuns(deps.Ctx, termspider.RunFilter{Limit: c.Limit})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", termspider.ErrorMessage(err))
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(deps.Stdout, "No runs found. Use 'termspider crawl --save' to save one.")
		return nil
	}

	for _, r := range runs {
		fmt.Fprintf(deps.Stdout, "%s  %s  pages=%d matches=%d  %s\n",
			r.ID, r.StartedAt.Format(time.RFC3339), r.Pages, r.Matches, strings.Join(r.Sites, " "))
	}

	return nil
}
