// Package crawl drives term-matching crawls: it walks each site's frontier,
// fetches, extracts and matches pages, and collects the match records.
package crawl

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/fwojciec/termspider"
	"golang.org/x/sync/errgroup"
)

// MilestoneInterval is how many visited pages separate two ProgressMilestone events.
const MilestoneInterval = 50

// Crawler crawls sites for configured terms.
type Crawler struct {
	Fetcher   termspider.Fetcher
	Extractor termspider.Extractor
	Matcher   termspider.Matcher

	// Sitemaps is consulted only when UseSitemap is set.
	Sitemaps   termspider.SitemapService
	UseSitemap bool

	// MaxPages caps visited pages per site. Defaults to DefaultMaxPages.
	MaxPages int
	Order    Order

	// Concurrency is the number of sites crawled at once. Values below 2
	// crawl sites one after another.
	Concurrency int

	// Progress, if set, receives events as crawling proceeds. Calls are
	// serialized even when sites are crawled concurrently.
	Progress ProgressFunc

	progressMu sync.Mutex
}

// Result holds the outcome of a crawl over all sites.
type Result struct {
	Store   *termspider.ResultStore
	Sites   []*SiteResult
	Pages   int
	Skipped int
}

// SiteResult holds the outcome of crawling one site.
type SiteResult struct {
	Site  *termspider.Site
	Store *termspider.ResultStore

	// Visited lists every visited URL in visit order, including skipped pages.
	Visited []string
	Skipped int
}

// Pages returns the number of visited pages.
func (r *SiteResult) Pages() int {
	return len(r.Visited)
}

// ProgressEvent reports progress during a crawl.
type ProgressEvent struct {
	Type   ProgressType
	Domain string
	URL    string
	Pages  int
	Status int
	// Records is the number of records found on a page.
	Records int
	Error   error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressSiteStarted ProgressType = iota
	ProgressMilestone
	ProgressMatch
	ProgressPageSkipped
	ProgressSiteFinished
)

// ProgressFunc is a callback for reporting crawl progress.
type ProgressFunc func(event ProgressEvent)

// Crawl crawls every site and returns the merged results. Results are
// merged in site order whatever the concurrency, so the output matches a
// sequential crawl. Failures on individual pages never abort the crawl;
// only context cancellation does.
func (c *Crawler) Crawl(ctx context.Context, sites []*termspider.Site, terms []string) (*Result, error) {
	if err := validateTerms(terms); err != nil {
		return nil, err
	}

	siteResults := make([]*SiteResult, len(sites))

	concurrency := c.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, site := range sites {
		g.Go(func() error {
			res, err := c.CrawlSite(gctx, site, terms)
			if err != nil {
				return err
			}
			siteResults[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &Result{
		Store: termspider.NewResultStore(terms),
		Sites: siteResults,
	}
	for _, res := range siteResults {
		result.Store.Merge(res.Store)
		result.Pages += res.Pages()
		result.Skipped += res.Skipped
	}
	return result, nil
}

// CrawlSite crawls one site until its page cap is reached or its frontier
// is exhausted. Every popped URL is marked visited before it is fetched, so
// the crawl terminates even when fetches keep failing.
func (c *Crawler) CrawlSite(ctx context.Context, site *termspider.Site, terms []string) (*SiteResult, error) {
	if err := validateTerms(terms); err != nil {
		return nil, err
	}

	frontier := NewFrontier(site, c.MaxPages, WithOrder(c.Order))
	frontier.Seed(site.BaseURL)
	if c.UseSitemap && c.Sitemaps != nil {
		c.seedFromSitemap(ctx, site, frontier)
	}

	result := &SiteResult{
		Site:  site,
		Store: termspider.NewResultStore(terms),
	}

	c.emit(ProgressEvent{Type: ProgressSiteStarted, Domain: site.Domain, URL: site.BaseURL})

	for !frontier.Done() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		url, ok := frontier.Next()
		if !ok {
			break
		}
		if !frontier.Observe(url) {
			continue
		}
		result.Visited = append(result.Visited, url)

		if n := frontier.PageCount(); n%MilestoneInterval == 0 {
			c.emit(ProgressEvent{Type: ProgressMilestone, Domain: site.Domain, Pages: n})
		}

		out := c.processPage(ctx, site, url, terms)
		switch out.kind {
		case OutcomeProcessed:
			result.Store.Add(out.records...)
			for _, link := range out.links {
				frontier.Offer(link)
			}
			if len(out.records) > 0 {
				c.emit(ProgressEvent{Type: ProgressMatch, Domain: site.Domain, URL: url, Records: len(out.records)})
			}
		case OutcomeStatus, OutcomeNetwork, OutcomeExtract, OutcomeInternal:
			result.Skipped++
			c.emit(ProgressEvent{
				Type:   ProgressPageSkipped,
				Domain: site.Domain,
				URL:    url,
				Status: out.status,
				Error:  out.err,
			})
		}
	}

	c.emit(ProgressEvent{Type: ProgressSiteFinished, Domain: site.Domain, Pages: frontier.PageCount()})

	return result, nil
}

// OutcomeKind classifies the result of processing one page.
type OutcomeKind int

const (
	// OutcomeProcessed means the page was fetched, extracted and matched.
	OutcomeProcessed OutcomeKind = iota
	// OutcomeStatus means the server answered with a status other than 200.
	OutcomeStatus
	// OutcomeNetwork means the request failed at the transport level.
	OutcomeNetwork
	// OutcomeExtract means the page could not be turned into text.
	OutcomeExtract
	// OutcomeInternal means processing failed unexpectedly.
	OutcomeInternal
)

// String returns a short name for the outcome.
func (k OutcomeKind) String() string {
	switch k {
	case OutcomeProcessed:
		return "processed"
	case OutcomeStatus:
		return "status"
	case OutcomeNetwork:
		return "network"
	case OutcomeExtract:
		return "extract"
	default:
		return "internal"
	}
}

// pageOutcome holds the outcome of processing a single URL.
type pageOutcome struct {
	kind    OutcomeKind
	status  int
	records []termspider.MatchRecord
	links   []string
	err     error
}

// processPage runs fetch, extract and match for one URL. It never panics:
// a panic in any stage becomes an OutcomeInternal.
func (c *Crawler) processPage(ctx context.Context, site *termspider.Site, url string, terms []string) (out pageOutcome) {
	defer func() {
		if r := recover(); r != nil {
			out = pageOutcome{
				kind: OutcomeInternal,
				err:  termspider.Errorf(termspider.EINTERNAL, "processing %s: %v", url, r),
			}
		}
	}()

	resp, err := c.Fetcher.Fetch(ctx, url)
	if err != nil {
		kind := OutcomeInternal
		if termspider.ErrorCode(err) == termspider.ENETWORK {
			kind = OutcomeNetwork
		}
		return pageOutcome{kind: kind, err: err}
	}
	if !resp.OK() {
		return pageOutcome{
			kind:   OutcomeStatus,
			status: resp.StatusCode,
			err:    fmt.Errorf("HTTP %d for %s", resp.StatusCode, url),
		}
	}

	page, err := c.Extractor.Extract(site, url, resp.Body)
	if err != nil {
		return pageOutcome{kind: OutcomeExtract, status: resp.StatusCode, err: err}
	}

	return pageOutcome{
		kind:    OutcomeProcessed,
		status:  resp.StatusCode,
		records: c.Matcher.Match(page, terms),
		links:   page.Links,
	}
}

// seedFromSitemap offers the site's sitemap URLs after the base URL.
// Sitemap failures are reported and otherwise ignored.
func (c *Crawler) seedFromSitemap(ctx context.Context, site *termspider.Site, frontier *Frontier) {
	urls, err := c.Sitemaps.DiscoverURLs(ctx, site.BaseURL)
	if err != nil {
		c.emit(ProgressEvent{
			Type:   ProgressPageSkipped,
			Domain: site.Domain,
			URL:    site.BaseURL,
			Error:  fmt.Errorf("sitemap discovery: %w", err),
		})
		return
	}
	for _, u := range urls {
		normalized, err := termspider.NormalizeURL(site.BaseURL, u)
		if err != nil {
			continue
		}
		frontier.Offer(normalized)
	}
}

func (c *Crawler) emit(event ProgressEvent) {
	if c.Progress == nil {
		return
	}
	c.progressMu.Lock()
	defer c.progressMu.Unlock()
	c.Progress(event)
}

func validateTerms(terms []string) error {
	if len(terms) == 0 {
		return termspider.Errorf(termspider.EINVALID, "at least one term required")
	}
	for _, t := range terms {
		if strings.TrimSpace(t) == "" {
			return termspider.Errorf(termspider.EINVALID, "terms must not be empty")
		}
	}
	return nil
}
