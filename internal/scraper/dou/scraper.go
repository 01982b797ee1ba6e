package dou

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"go-dou-scraper/internal/browser"
	"go-dou-scraper/internal/scraper"

	"github.com/playwright-community/playwright-go"
)

const (
	DefaultListingURL = "https://jobs.dou.ua/vacancies/?category=Python"

	loadMoreSelector = ".more-btn a"
)

// Options configures one DOU run.
type Options struct {
	ListingURL  string
	PageTimeout time.Duration
	Paginator   PaginatorOptions
	Enrich      EnrichOptions
	// Screenshots captures the listing when pagination stalls. May be nil.
	Screenshots *browser.ScreenshotDebugger
}

// Report summarises what happened during a run.
type Report struct {
	Expansions  int
	Stall       error
	Cards       int
	FetchErrors []*FetchError
}

type Result struct {
	Vacancies []scraper.Vacancy
	Report    Report
}

var _ scraper.Scraper = (*DOUScraper)(nil)

type DOUScraper struct {
	opts      Options
	paginator *Paginator
	details   DetailSource
}

func NewDOUScraper(opts Options, details DetailSource) *DOUScraper {
	if opts.ListingURL == "" {
		opts.ListingURL = DefaultListingURL
	}
	if opts.PageTimeout <= 0 {
		opts.PageTimeout = 30 * time.Second
	}
	return &DOUScraper{
		opts:      opts,
		paginator: NewPaginator(opts.Paginator),
		details:   details,
	}
}

func (s *DOUScraper) Name() string {
	return "DOU"
}

// Scrape implements scraper.Scraper.
func (s *DOUScraper) Scrape(ctx context.Context, page playwright.Page) ([]scraper.Vacancy, error) {
	res, err := s.Run(ctx, page)
	if err != nil {
		return nil, err
	}
	return res.Vacancies, nil
}

// Run loads the listing in page, expands it and enriches every card.
func (s *DOUScraper) Run(ctx context.Context, page playwright.Page) (Result, error) {
	log.Printf("📋 Searching %s...", s.Name())

	session := browser.NewSession(page, loadMoreSelector)
	if err := session.Open(s.opts.ListingURL, s.opts.PageTimeout); err != nil {
		return Result{}, err
	}

	res, err := s.Collect(ctx, session)
	if err != nil {
		return res, err
	}
	if res.Report.Stall != nil {
		s.opts.Screenshots.CaptureAndLog(page, "dou-pagination-stall", "🚨 DOU: load more control stalled")
	}
	return res, nil
}

// Collect expands an already loaded listing, extracts the cards and
// fetches their detail pages.
func (s *DOUScraper) Collect(ctx context.Context, r scraper.Renderer) (Result, error) {
	var res Result

	outcome, err := s.paginator.Expand(ctx, r)
	res.Report.Expansions = outcome.Expansions
	res.Report.Stall = outcome.Stall
	if err != nil {
		return res, err
	}

	html, err := r.Content()
	if err != nil {
		return res, fmt.Errorf("%w: failed to read rendered listing: %w", scraper.ErrRenderingUnavailable, err)
	}

	summaries, err := ExtractVacancies(strings.NewReader(html))
	if err != nil {
		return res, fmt.Errorf("%w: %w", scraper.ErrRenderingUnavailable, err)
	}
	res.Report.Cards = len(summaries)
	log.Printf("    📦 Found %d vacancy cards after %d expansions", len(summaries), outcome.Expansions)

	started := time.Now()
	vacancies, fetchErrs := Enrich(ctx, summaries, s.details, s.opts.Enrich)
	for _, fe := range fetchErrs {
		log.Printf("      ⚠️ %v", fe)
	}
	log.Printf("    ✅ Fetched %d/%d detail pages in %v", len(vacancies)-len(fetchErrs), len(vacancies), time.Since(started).Round(time.Millisecond))

	res.Vacancies = vacancies
	res.Report.FetchErrors = fetchErrs
	if err := ctx.Err(); err != nil {
		return res, fmt.Errorf("detail pages interrupted: %w", err)
	}
	return res, nil
}
