package dou

import (
	"fmt"
	"io"
	"strings"

	"go-dou-scraper/internal/scraper"

	"github.com/PuerkitoBio/goquery"
)

const (
	cardSelector  = "li.l-vacancy"
	titleSelector = "a.vt"
)

// ExtractVacancies parses a rendered listing page into summary records.
func ExtractVacancies(r io.Reader) ([]scraper.Vacancy, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse listing html: %w", err)
	}
	return ExtractFromDocument(doc), nil
}

// ExtractFromDocument returns one record per well-formed card in document
// order. Cards without a usable title anchor are skipped.
func ExtractFromDocument(doc *goquery.Document) []scraper.Vacancy {
	vacancies := make([]scraper.Vacancy, 0)
	doc.Find(cardSelector).Each(func(_ int, card *goquery.Selection) {
		anchor, ok := titleAnchor(card)
		if !ok {
			return
		}
		href, _ := anchor.Attr("href")
		vacancies = append(vacancies, scraper.Vacancy{
			Title: strings.TrimSpace(anchor.Text()),
			URL:   strings.TrimSpace(href),
		})
	})
	return vacancies
}

// titleAnchor reports whether the card exposes a title anchor with an href.
func titleAnchor(card *goquery.Selection) (*goquery.Selection, bool) {
	anchor := card.Find(titleSelector).First()
	if anchor.Length() == 0 {
		return nil, false
	}
	if href, ok := anchor.Attr("href"); !ok || strings.TrimSpace(href) == "" {
		return nil, false
	}
	return anchor, true
}
