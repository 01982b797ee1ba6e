package browser

import (
	"fmt"
	"log"
	"time"

	"go-dou-scraper/internal/scraper"

	"github.com/playwright-community/playwright-go"
)

// Session exposes a playwright page as a scraper.Renderer.
type Session struct {
	page     playwright.Page
	selector string
	// ClickDelay is the [min, max] pause in milliseconds after each click.
	ClickDelay [2]int
}

func NewSession(page playwright.Page, loadMoreSelector string) *Session {
	return &Session{
		page:       page,
		selector:   loadMoreSelector,
		ClickDelay: [2]int{300, 800},
	}
}

// Open loads the listing page. Failures wrap scraper.ErrRenderingUnavailable.
func (s *Session) Open(url string, timeout time.Duration) error {
	log.Printf("🌐 Opening %s", url)
	resp, err := s.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   playwright.Float(float64(timeout.Milliseconds())),
	})
	if err != nil {
		return fmt.Errorf("%w: failed to load %s: %w", scraper.ErrRenderingUnavailable, url, err)
	}
	if resp != nil && resp.Status() >= 400 {
		return fmt.Errorf("%w: %s returned status %d", scraper.ErrRenderingUnavailable, url, resp.Status())
	}
	return nil
}

func (s *Session) FindLoadMore(timeout time.Duration) (scraper.LoadMoreControl, error) {
	button := s.page.Locator(s.selector).First()
	if err := button.WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateAttached,
		Timeout: playwright.Float(float64(timeout.Milliseconds())),
	}); err != nil {
		return nil, err
	}
	return &loadMoreButton{locator: button, delay: s.ClickDelay}, nil
}

func (s *Session) Content() (string, error) {
	return s.page.Content()
}

type loadMoreButton struct {
	locator playwright.Locator
	delay   [2]int
}

func (b *loadMoreButton) Style() (string, error) {
	return b.locator.GetAttribute("style")
}

func (b *loadMoreButton) Click() error {
	if err := b.locator.Click(); err != nil {
		return err
	}
	RandomDelay(b.delay[0], b.delay[1])
	return nil
}
