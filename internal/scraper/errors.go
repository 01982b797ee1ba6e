package scraper

import "errors"

var (
	// ErrRenderingUnavailable is fatal: the browser session could not be
	// created or the listing page could not be loaded.
	ErrRenderingUnavailable = errors.New("rendering unavailable")

	// ErrPaginationStall means the load more control could not be found or
	// used in time. It is treated as the end of the listing.
	ErrPaginationStall = errors.New("pagination stalled")

	// ErrDetailFetch covers network, status and parse failures of one detail page.
	ErrDetailFetch = errors.New("detail fetch failed")

	// ErrWrite is fatal: the output could not be written.
	ErrWrite = errors.New("write failed")
)
