package dou

import (
	"context"
	"fmt"
	"time"

	"go-dou-scraper/internal/scraper"

	"golang.org/x/sync/errgroup"
)

// DetailSource fetches the detail fields of one vacancy.
type DetailSource interface {
	Fetch(ctx context.Context, url string) (Detail, error)
}

// EnrichOptions bounds the detail fan-out.
type EnrichOptions struct {
	// Concurrency caps simultaneous detail requests. Defaults to 8.
	Concurrency int
	// RequestTimeout bounds each detail request. Defaults to 30s.
	RequestTimeout time.Duration
}

func (o EnrichOptions) withDefaults() EnrichOptions {
	if o.Concurrency <= 0 {
		o.Concurrency = 8
	}
	if o.RequestTimeout <= 0 {
		o.RequestTimeout = 30 * time.Second
	}
	return o
}

// FetchError is the failure of a single detail page.
type FetchError struct {
	Index int
	URL   string
	Err   error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("vacancy #%d (%s): %v", e.Index, e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Enrich fetches every vacancy's detail page and returns a new slice in the
// input order. A failed fetch never stops its siblings: the record gets
// both sentinel values and a FetchError is reported for it.
func Enrich(ctx context.Context, vacancies []scraper.Vacancy, source DetailSource, opts EnrichOptions) ([]scraper.Vacancy, []*FetchError) {
	opts = opts.withDefaults()

	out := make([]scraper.Vacancy, len(vacancies))
	copy(out, vacancies)
	failures := make([]*FetchError, len(vacancies))

	var g errgroup.Group
	g.SetLimit(opts.Concurrency)

	for i := range out {
		g.Go(func() error {
			detail, err := fetchOne(ctx, source, out[i].URL, opts.RequestTimeout)
			if err != nil {
				failures[i] = &FetchError{Index: i, URL: out[i].URL, Err: err}
				detail = Detail{Description: scraper.NoDescription, City: scraper.UnknownCity}
			}
			// each goroutine writes only its own index
			out[i].Description = detail.Description
			out[i].City = detail.City
			return nil
		})
	}
	g.Wait()

	var errs []*FetchError
	for _, f := range failures {
		if f != nil {
			errs = append(errs, f)
		}
	}
	return out, errs
}

func fetchOne(ctx context.Context, source DetailSource, url string, timeout time.Duration) (detail Detail, err error) {
	if err := ctx.Err(); err != nil {
		return Detail{}, fmt.Errorf("%w: %w", scraper.ErrDetailFetch, err)
	}

	reqCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: panic: %v", scraper.ErrDetailFetch, r)
		}
	}()

	return source.Fetch(reqCtx, url)
}
