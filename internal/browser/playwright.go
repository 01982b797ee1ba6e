package browser

import (
	"fmt"
	"log"

	"go-dou-scraper/internal/scraper"

	"github.com/playwright-community/playwright-go"
)

// LaunchOptions configures the headless browser.
type LaunchOptions struct {
	Headless  bool
	UserAgent string
	Locale    string
}

type PlaywrightManager struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	opts    LaunchOptions
}

// NewPlaywright starts the driver and launches Chromium.
// Failures wrap scraper.ErrRenderingUnavailable.
func NewPlaywright(opts LaunchOptions) (*PlaywrightManager, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("%w: could not start playwright: %w", scraper.ErrRenderingUnavailable, err)
	}

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(opts.Headless),
		Args:     []string{"--disable-blink-features=AutomationControlled"},
	})
	if err != nil {
		pw.Stop()
		return nil, fmt.Errorf("%w: could not launch chromium: %w", scraper.ErrRenderingUnavailable, err)
	}

	return &PlaywrightManager{pw: pw, browser: browser, opts: opts}, nil
}

// NewContext creates an isolated browser context with the given cookies.
func (pm *PlaywrightManager) NewContext(cookies []playwright.OptionalCookie) (playwright.BrowserContext, error) {
	ctxOpts := playwright.BrowserNewContextOptions{}
	if pm.opts.UserAgent != "" {
		ctxOpts.UserAgent = playwright.String(pm.opts.UserAgent)
	}
	if pm.opts.Locale != "" {
		ctxOpts.Locale = playwright.String(pm.opts.Locale)
	}

	browserCtx, err := pm.browser.NewContext(ctxOpts)
	if err != nil {
		return nil, fmt.Errorf("%w: could not create browser context: %w", scraper.ErrRenderingUnavailable, err)
	}

	if len(cookies) > 0 {
		if err := browserCtx.AddCookies(cookies); err != nil {
			log.Printf("⚠️ Failed to add cookies: %v", err)
		}
	}
	return browserCtx, nil
}

func (pm *PlaywrightManager) Close() error {
	if err := pm.browser.Close(); err != nil {
		pm.pw.Stop()
		return fmt.Errorf("could not close browser: %w", err)
	}
	if err := pm.pw.Stop(); err != nil {
		return fmt.Errorf("could not stop playwright: %w", err)
	}
	return nil
}
