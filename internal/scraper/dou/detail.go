package dou

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"go-dou-scraper/internal/scraper"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	descriptionSelector = "div.b-typo.vacancy-section"
	citySelector        = "span.place.bi.bi-geo-alt-fill"

	defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"
)

// Detail holds the fields read from a vacancy page.
type Detail struct {
	Description string
	City        string
}

// DetailOptions configures the shared HTTP session.
type DetailOptions struct {
	// BaseURL resolves relative vacancy links. Usually the listing URL.
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
}

// DetailFetcher downloads vacancy pages over one shared resty client.
// The client is configured once in NewDetailFetcher and never changed,
// so Fetch is safe for concurrent use.
type DetailFetcher struct {
	client *resty.Client
	base   *url.URL
}

func NewDetailFetcher(opts DetailOptions) (*DetailFetcher, error) {
	var base *url.URL
	if opts.BaseURL != "" {
		parsed, err := url.Parse(opts.BaseURL)
		if err != nil {
			return nil, fmt.Errorf("invalid base url %q: %w", opts.BaseURL, err)
		}
		base = parsed
	}

	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	client := resty.New()
	client.SetHeader("User-Agent", userAgent)
	client.SetHeader("Accept-Language", "uk,en;q=0.8")
	if opts.Timeout > 0 {
		client.SetTimeout(opts.Timeout)
	}

	return &DetailFetcher{client: client, base: base}, nil
}

// Fetch retrieves one vacancy page and extracts its description and city.
// Every failure wraps scraper.ErrDetailFetch.
func (f *DetailFetcher) Fetch(ctx context.Context, rawURL string) (Detail, error) {
	target, err := f.resolve(rawURL)
	if err != nil {
		return Detail{}, fmt.Errorf("%w: %w", scraper.ErrDetailFetch, err)
	}

	res, err := f.client.R().
		SetContext(ctx).
		Get(target)
	if err != nil {
		return Detail{}, fmt.Errorf("%w: GET %s: %w", scraper.ErrDetailFetch, target, err)
	}
	if res.StatusCode() < 200 || res.StatusCode() > 299 {
		return Detail{}, fmt.Errorf("%w: GET %s: status %d", scraper.ErrDetailFetch, target, res.StatusCode())
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(res.Body()))
	if err != nil {
		return Detail{}, fmt.Errorf("%w: parse %s: %w", scraper.ErrDetailFetch, target, err)
	}
	return ParseDetail(doc), nil
}

func (f *DetailFetcher) resolve(rawURL string) (string, error) {
	ref, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return "", fmt.Errorf("invalid vacancy url %q: %w", rawURL, err)
	}
	if ref.IsAbs() {
		return ref.String(), nil
	}
	if f.base == nil {
		return "", fmt.Errorf("relative vacancy url %q without base url", rawURL)
	}
	return f.base.ResolveReference(ref).String(), nil
}

// ParseDetail reads the description and city of a vacancy page, falling
// back to the sentinel values when a marker is missing or blank.
func ParseDetail(doc *goquery.Document) Detail {
	detail := Detail{
		Description: scraper.NoDescription,
		City:        scraper.UnknownCity,
	}

	if desc := doc.Find(descriptionSelector).First(); desc.Length() > 0 {
		if text := normalizeText(desc.Text()); text != "" {
			detail.Description = text
		}
	}

	if city := doc.Find(citySelector).First(); city.Length() > 0 {
		if text := normalizeText(city.Text()); text != "" {
			detail.City = text
		}
	}

	return detail
}

var nbspToSpace = runes.Map(func(r rune) rune {
	switch r {
	case '\u00a0', '\u2007', '\u202f':
		return ' '
	}
	return r
})

// normalizeText turns non-breaking spaces into plain ones and trims the result.
func normalizeText(str string) string {
	t := transform.Chain(nbspToSpace, norm.NFC)
	result, _, err := transform.String(t, str)
	if err != nil {
		result = strings.ReplaceAll(str, "\u00a0", " ")
	}
	return strings.TrimSpace(result)
}
