package main

import (
	"context"
	"errors"
	"fmt"
	"log"

	"go-dou-scraper/internal/browser"
	"go-dou-scraper/internal/config"
	"go-dou-scraper/internal/export"
	"go-dou-scraper/internal/scraper"
	"go-dou-scraper/internal/scraper/dou"
	"go-dou-scraper/internal/storage"
	"go-dou-scraper/internal/telegram"

	"github.com/google/uuid"
)

// stageError names the fatal stage a run stopped in.
type stageError struct {
	stage string
	err   error
}

func (e *stageError) Error() string {
	return fmt.Sprintf("%s stage: %v", e.stage, e.err)
}

func (e *stageError) Unwrap() error {
	return e.err
}

func stageOf(err error) string {
	switch {
	case errors.Is(err, scraper.ErrRenderingUnavailable):
		return "rendering"
	case errors.Is(err, scraper.ErrWrite):
		return "write"
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return "timeout"
	}
	return "scrape"
}

func run(ctx context.Context, cfg *config.Config) (err error) {
	log.Printf("🔧 Config loaded. Listing: %s, concurrency: %d", cfg.ListingURL, cfg.Concurrency)

	var bot *telegram.Bot
	if cfg.TelegramEnabled() {
		bot, err = telegram.NewBot(cfg.TelegramToken, cfg.TelegramChatID)
		if err != nil {
			log.Printf("⚠️ Telegram disabled: %v", err)
			bot = nil
		} else {
			log.Println("🤖 Telegram Bot initialized.")
		}
	}
	defer func() {
		if err != nil && bot != nil {
			var se *stageError
			stage := "run"
			if errors.As(err, &se) {
				stage = se.stage
			}
			if sendErr := bot.SendError(stage, err); sendErr != nil {
				log.Printf("⚠️ Failed to send error to Telegram: %v", sendErr)
			}
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, cfg.RunTimeout.Duration)
	defer cancel()

	log.Println("🚀 Starting DOU scraper...")
	if bot != nil {
		if err := bot.SendStatus(fmt.Sprintf("DOU scrape started: %s", cfg.ListingURL)); err != nil {
			log.Printf("⚠️ Failed to send status to Telegram: %v", err)
		}
	}

	pwManager, err := browser.NewPlaywright(browser.LaunchOptions{
		Headless:  cfg.Headless,
		UserAgent: cfg.UserAgent,
		Locale:    cfg.Locale,
	})
	if err != nil {
		return &stageError{stage: stageOf(err), err: err}
	}
	defer pwManager.Close()

	cookies, err := browser.LoadCookies(cfg.CookiesPath)
	if err != nil {
		log.Printf("⚠️ Could not load cookies: %v. Continuing.", err)
	} else if len(cookies) > 0 {
		log.Printf("🍪 Loaded %d cookies", len(cookies))
	}

	browserCtx, err := pwManager.NewContext(cookies)
	if err != nil {
		return &stageError{stage: stageOf(err), err: err}
	}
	page, err := browserCtx.NewPage()
	if err != nil {
		err = fmt.Errorf("%w: failed to create new page: %w", scraper.ErrRenderingUnavailable, err)
		return &stageError{stage: "rendering", err: err}
	}
	log.Println("✅ Browser initialized successfully!")

	fetcher, err := dou.NewDetailFetcher(dou.DetailOptions{
		BaseURL:   cfg.ListingURL,
		Timeout:   cfg.RequestTimeout.Duration,
		UserAgent: cfg.UserAgent,
	})
	if err != nil {
		return &stageError{stage: "scrape", err: err}
	}

	douScraper := dou.NewDOUScraper(dou.Options{
		ListingURL:  cfg.ListingURL,
		PageTimeout: cfg.PageTimeout.Duration,
		Paginator: dou.PaginatorOptions{
			WaitTimeout:   cfg.LoadMoreTimeout.Duration,
			MaxExpansions: cfg.MaxExpansions,
		},
		Enrich: dou.EnrichOptions{
			Concurrency:    cfg.Concurrency,
			RequestTimeout: cfg.RequestTimeout.Duration,
		},
		Screenshots: browser.NewScreenshotDebugger(cfg.ScreenshotDir),
	}, fetcher)

	res, err := douScraper.Run(ctx, page)
	if err != nil {
		return &stageError{stage: stageOf(err), err: err}
	}

	if err := export.Write(cfg.OutputPath, res.Vacancies); err != nil {
		return &stageError{stage: "write", err: err}
	}
	log.Printf("📁 %d vacancies saved to %s", len(res.Vacancies), cfg.OutputPath)

	if cfg.DatabaseURL != "" {
		saveToDatabase(ctx, cfg.DatabaseURL, res.Vacancies)
	}

	if bot != nil {
		summary := telegram.RunSummary{
			Source:      douScraper.Name(),
			Vacancies:   len(res.Vacancies),
			Expansions:  res.Report.Expansions,
			FailedPages: len(res.Report.FetchErrors),
			Stalled:     res.Report.Stall != nil,
			OutputPath:  cfg.OutputPath,
		}
		if err := bot.SendSummary(summary); err != nil {
			log.Printf("⚠️ Failed to send summary to Telegram: %v", err)
		}
	}

	log.Println("🏁 Execution finished.")
	return nil
}

func saveToDatabase(ctx context.Context, dsn string, vacancies []scraper.Vacancy) {
	store, err := storage.Connect(ctx, dsn)
	if err != nil {
		log.Printf("⚠️ Database unavailable, skipping: %v", err)
		return
	}
	defer store.Close()

	runID := uuid.NewString()
	if err := store.SaveRun(ctx, runID, vacancies); err != nil {
		log.Printf("⚠️ Failed to save run %s: %v", runID, err)
		return
	}
	log.Printf("💾 Saved run %s (%d vacancies) to database", runID, len(vacancies))
}
