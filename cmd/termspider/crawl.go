package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/fwojciec/termspider"
	"github.com/fwojciec/termspider/crawl"
	"github.com/fwojciec/termspider/fs"
	"github.com/fwojciec/termspider/goquery"
	tshttp "github.com/fwojciec/termspider/http"
	tsslog "github.com/fwojciec/termspider/slog"
)

// Run executes the crawl command.
func (c *CrawlCmd) Run(deps *Dependencies) error {
	cfg, err := c.config()
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", termspider.ErrorMessage(err))
		return err
	}

	sites := make([]*termspider.Site, 0, len(cfg.Sites))
	for _, raw := range cfg.Sites {
		site, err := termspider.NewSite(raw)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", termspider.ErrorMessage(err))
			return err
		}
		sites = append(sites, site)
	}

	order, _ := crawl.ParseOrder(cfg.Order)

	var extractorOpts []goquery.Option
	if cfg.WrapperID != "" {
		extractorOpts = append(extractorOpts, goquery.WithWrapperID(cfg.WrapperID))
	}
	if cfg.WrapperTag != "" {
		extractorOpts = append(extractorOpts, goquery.WithWrapperTag(cfg.WrapperTag))
	}
	extractor, err := goquery.NewExtractor(extractorOpts...)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", termspider.ErrorMessage(err))
		return err
	}

	logger := deps.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	crawler := &crawl.Crawler{
		Fetcher: tsslog.NewLoggingFetcher(
			tshttp.NewFetcher(tshttp.WithTimeout(cfg.Timeout), tshttp.WithUserAgent(cfg.UserAgent)),
			logger,
		),
		Extractor: extractor,
		Matcher:   goquery.NewMatcher(),
		Sitemaps: tsslog.NewLoggingSitemapService(
			tshttp.NewSitemapService(&http.Client{Timeout: cfg.Timeout}, cfg.UserAgent),
			logger,
		),
		UseSitemap:  cfg.Sitemap,
		MaxPages:    cfg.MaxPages,
		Order:       order,
		Concurrency: cfg.Concurrency,
		Progress:    progressLogger(logger),
	}

	startedAt := time.Now().UTC()
	result, err := crawler.Crawl(deps.Ctx, sites, cfg.Terms)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error crawling: %v\n", err)
		return err
	}
	finishedAt := time.Now().UTC()

	if c.Debug {
		printDebug(deps, result.Store)
	}

	writer := tsslog.NewLoggingResultWriter(
		fs.NewTermWriter(cfg.OutputDir, fs.WithDebug(cfg.IncludeDebug)),
		logger,
	)
	if err := writer.WriteResults(deps.Ctx, result.Store); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", termspider.ErrorMessage(err))
		return err
	}

	printSummary(deps, result.Store)

	if c.Save {
		run := &termspider.Run{
			Sites:      cfg.Sites,
			Terms:      cfg.Terms,
			Pages:      result.Pages,
			StartedAt:  startedAt,
			FinishedAt: finishedAt,
		}
		if err := deps.Runs.CreateRun(deps.Ctx, run, result.Store); err != nil {
			fmt.Fprintf(deps.Stderr, "error saving run: %s\n", termspider.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stdout, "Saved run %s\n", run.ID)
	}

	return nil
}

// config loads the config file, if any, and applies the flags over it.
func (c *CrawlCmd) config() (*Config, error) {
	cfg := NewConfig()
	if c.Config != "" {
		loaded, err := LoadConfig(c.Config)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", c.Config, err)
		}
		cfg = loaded
	}

	if len(c.Sites) > 0 {
		cfg.Sites = c.Sites
	}
	if len(c.Terms) > 0 {
		cfg.Terms = c.Terms
	}
	if c.MaxPages > 0 {
		cfg.MaxPages = c.MaxPages
	}
	if c.Timeout > 0 {
		cfg.Timeout = c.Timeout
	}
	if c.UserAgent != "" {
		cfg.UserAgent = c.UserAgent
	}
	if c.WrapperID != "" {
		cfg.WrapperID = c.WrapperID
	}
	if c.WrapperTag != "" {
		cfg.WrapperTag = c.WrapperTag
	}
	if c.OutputDir != "" {
		cfg.OutputDir = c.OutputDir
	}
	if c.IncludeDebug {
		cfg.IncludeDebug = true
	}
	if c.Concurrency > 0 {
		cfg.Concurrency = c.Concurrency
	}
	if c.Order != "" {
		cfg.Order = c.Order
	}
	if c.Sitemap {
		cfg.Sitemap = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// progressLogger reports crawl progress through logger.
func progressLogger(logger *slog.Logger) crawl.ProgressFunc {
	return func(event crawl.ProgressEvent) {
		switch event.Type {
		case crawl.ProgressSiteStarted:
			logger.Info("crawling", "domain", event.Domain, "url", event.URL)
		case crawl.ProgressMilestone:
			logger.Info("pages visited", "pages", event.Pages, "domain", event.Domain)
		case crawl.ProgressMatch:
			logger.Debug("match", "url", event.URL, "records", event.Records)
		case crawl.ProgressPageSkipped:
			logger.Warn("skip", "url", event.URL, "status", event.Status, "err", event.Error)
		case crawl.ProgressSiteFinished:
			logger.Info("site finished", "domain", event.Domain, "pages", event.Pages)
		}
	}
}

// printDebug prints every page's debug block, term by term.
func printDebug(deps *Dependencies, store *termspider.ResultStore) {
	for _, term := range store.Terms() {
		for _, entry := range termspider.FormatEntries(store.Records(term), true) {
			fmt.Fprintln(deps.Stdout, entry)
		}
	}
}

// printSummary prints how many entries each term's file received and the
// total. An entry is one matching page.
func printSummary(deps *Dependencies, store *termspider.ResultStore) {
	var total int
	for _, term := range store.Terms() {
		n := len(termspider.GroupByPage(store.Records(term)))
		total += n
		fmt.Fprintf(deps.Stdout, "Term '%s' matched %d times.\n", term, n)
	}
	fmt.Fprintf(deps.Stdout, "Total matches across all terms: %d\n", total)
}
