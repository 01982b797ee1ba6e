// Shared record type and the interface every listing scraper implements

package scraper

import (
	"context"

	"github.com/playwright-community/playwright-go"
)

const (
	// NoDescription marks a detail page that had no description container.
	NoDescription = "No description available"
	// UnknownCity marks a detail page that had no location marker.
	UnknownCity = "Unknown"
)

// Vacancy is one listing card. Description and City stay empty until the
// detail page has been fetched, after which they are never empty.
type Vacancy struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description"`
	City        string `json:"city"`
}

// Enriched reports whether the detail fields have been filled in.
func (v Vacancy) Enriched() bool {
	return v.Description != "" && v.City != ""
}

// Columns is the header of the exported table, in order.
var Columns = []string{"title", "url", "description", "city"}

// Row returns the vacancy fields in Columns order.
func (v Vacancy) Row() []string {
	return []string{v.Title, v.URL, v.Description, v.City}
}

//Scraper defines the interface that all listing scrapers must implement
type Scraper interface {
	//Scrape vacancies starting from an already created browser page
	Scrape(ctx context.Context, page playwright.Page) ([]Vacancy, error)

	//Name is the job board name
	Name() string
}
