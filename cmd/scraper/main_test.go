package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"go-dou-scraper/internal/config"
	"go-dou-scraper/internal/scraper"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlags_Apply(t *testing.T) {
	cmd := newRootCmd()
	require.NoError(t, cmd.ParseFlags([]string{
		"--url", "https://jobs.dou.ua/vacancies/?category=Golang",
		"-o", "out/go.json",
		"--concurrency", "3",
		"--headless=false",
	}))
	cfg := config.Default()

	f := &flags{}
	f.listingURL, _ = cmd.Flags().GetString("url")
	f.outputPath, _ = cmd.Flags().GetString("out")
	f.concurrency, _ = cmd.Flags().GetInt("concurrency")
	f.headless, _ = cmd.Flags().GetBool("headless")

	require.NoError(t, f.apply(cmd, cfg))
	assert.Equal(t, "https://jobs.dou.ua/vacancies/?category=Golang", cfg.ListingURL)
	assert.Equal(t, filepath.Join("out", "go.json"), cfg.OutputPath)
	assert.Equal(t, 3, cfg.Concurrency)
	assert.False(t, cfg.Headless)
	assert.Equal(t, 0, cfg.MaxExpansions)
}

func TestFlags_Apply_InvalidURL(t *testing.T) {
	cmd := newRootCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--url", "not a url"}))

	f := &flags{listingURL: "not a url"}
	assert.Error(t, f.apply(cmd, config.Default()))
}

func TestStageOf(t *testing.T) {
	tests := []struct {
		err      error
		expected string
	}{
		{err: fmt.Errorf("%w: chromium missing", scraper.ErrRenderingUnavailable), expected: "rendering"},
		{err: fmt.Errorf("%w: permission denied", scraper.ErrWrite), expected: "write"},
		{err: context.DeadlineExceeded, expected: "timeout"},
		{err: errors.New("something else"), expected: "scrape"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, stageOf(tt.err))
		})
	}
}

func TestStageError(t *testing.T) {
	err := &stageError{stage: "write", err: fmt.Errorf("%w: disk full", scraper.ErrWrite)}

	assert.Equal(t, "write stage: write failed: disk full", err.Error())
	assert.ErrorIs(t, err, scraper.ErrWrite)
}
