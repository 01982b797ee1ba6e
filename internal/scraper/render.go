package scraper

import "time"

// Renderer is a JavaScript capable page with the listing already loaded.
type Renderer interface {
	// FindLoadMore waits up to timeout for the load more control to be present.
	FindLoadMore(timeout time.Duration) (LoadMoreControl, error)
	// Content returns the currently rendered document.
	Content() (string, error)
}

// LoadMoreControl is the in-page button that renders more cards.
type LoadMoreControl interface {
	Style() (string, error)
	Click() error
}
