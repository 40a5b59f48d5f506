package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/termspider"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	// Runs is set only for commands that use saved runs.
	Runs termspider.RunService
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Log every fetch"`

	Crawl   CrawlCmd   `cmd:"" help:"Crawl sites and record pages that mention the terms"`
	Runs    RunsCmd    `cmd:"" help:"List saved runs"`
	Matches MatchesCmd `cmd:"" help:"List the matches of a saved run"`
}

// CrawlCmd is the "crawl" subcommand. Flags left at their zero value keep
// the config file's setting.
type CrawlCmd struct {
	Sites        []string      `arg:"" optional:"" help:"Seed site URLs"`
	Config       string        `short:"c" help:"YAML config file"`
	Terms        []string      `short:"t" name:"term" sep:"none" help:"Search term (repeatable)"`
	MaxPages     int           `name:"max-pages" help:"Maximum pages visited per site (default 1000)"`
	Timeout      time.Duration `help:"Per-request timeout (default 5s)"`
	UserAgent    string        `name:"user-agent" help:"User-Agent header"`
	WrapperID    string        `name:"wrapper-id" help:"Id of the navigation wrapper div removed before matching"`
	WrapperTag   string        `name:"wrapper-tag" help:"Custom navigation tag removed before matching"`
	OutputDir    string        `short:"o" name:"output-dir" help:"Directory for <term>.txt files (default .)"`
	IncludeDebug bool          `name:"include-debug" help:"Write match snippets to the output files"`
	Debug        bool          `short:"d" help:"Print match snippets to the console"`
	Concurrency  int           `help:"Sites crawled at once (default 1)"`
	Order        string        `help:"Traversal order: breadth or depth (default breadth)"`
	Sitemap      bool          `help:"Seed the crawl from /sitemap.xml"`
	Save         bool          `short:"s" help:"Save the run to the database"`
}

// RunsCmd is the "runs" subcommand.
type RunsCmd struct {
	Limit int `short:"n" default:"20" help:"Maximum runs to list"`
}

// MatchesCmd is the "matches" subcommand.
type MatchesCmd struct {
	RunID    string `arg:"" help:"Run ID"`
	Term     string `short:"t" help:"Only list matches for this term"`
	NewSince string `name:"new-since" help:"Only list matches not found in this earlier run"`
}
