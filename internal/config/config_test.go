package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, key := range []string{"DOU_LISTING_URL", "DOU_OUTPUT", "DOU_CONCURRENCY", "TELEGRAM_BOT_TOKEN", "TELEGRAM_CHAT_ID", "DATABASE_URL"} {
		t.Setenv(key, "")
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))

	require.NoError(t, err)
	assert.Equal(t, "https://jobs.dou.ua/vacancies/?category=Python", cfg.ListingURL)
	assert.Equal(t, "data/vacancies.csv", cfg.OutputPath)
	assert.True(t, cfg.Headless)
	assert.Equal(t, 10*time.Second, cfg.LoadMoreTimeout.Duration)
	assert.Equal(t, 8, cfg.Concurrency)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout.Duration)
	assert.False(t, cfg.TelegramEnabled())
	assert.Equal(t, Default(), cfg)
}

func TestLoad_YAMLAndEnvOverrides(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
listing_url: https://jobs.dou.ua/vacancies/?category=Golang
output_path: out/go.csv
headless: false
load_more_timeout: 5s
request_timeout: 2s
max_expansions: 40
concurrency: 4
`)
	t.Setenv("DOU_CONCURRENCY", "16")
	t.Setenv("DOU_OUTPUT", "out/override.json")

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "https://jobs.dou.ua/vacancies/?category=Golang", cfg.ListingURL)
	assert.Equal(t, "out/override.json", cfg.OutputPath)
	assert.False(t, cfg.Headless)
	assert.Equal(t, 5*time.Second, cfg.LoadMoreTimeout.Duration)
	assert.Equal(t, 2*time.Second, cfg.RequestTimeout.Duration)
	assert.Equal(t, 40, cfg.MaxExpansions)
	assert.Equal(t, 16, cfg.Concurrency)
}

func TestLoad_Telegram(t *testing.T) {
	clearEnv(t)
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
	t.Setenv("TELEGRAM_CHAT_ID", "-100200")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))

	require.NoError(t, err)
	assert.True(t, cfg.TelegramEnabled())
	assert.Equal(t, int64(-100200), cfg.TelegramChatID)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		env  map[string]string
	}{
		{name: "bad duration", yaml: "load_more_timeout: soon\n"},
		{name: "relative listing url", yaml: "listing_url: /vacancies/\n"},
		{name: "negative expansions", yaml: "max_expansions: -1\n"},
		{name: "bad concurrency env", env: map[string]string{"DOU_CONCURRENCY": "many"}},
		{name: "bad chat id", env: map[string]string{"TELEGRAM_BOT_TOKEN": "t", "TELEGRAM_CHAT_ID": "abc"}},
		{name: "token without chat", env: map[string]string{"TELEGRAM_BOT_TOKEN": "t"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			path := writeConfig(t, tt.yaml)

			_, err := Load(path)

			assert.Error(t, err)
		})
	}
}
