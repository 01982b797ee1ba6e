// Load envs from .env
// Load YAML config
// Apply env overrides and default values
// Validate config

package config

import (
	"errors"
	"fmt"
	"log"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const DefaultPath = "configs/config.yaml"

type Config struct {
	ListingURL string `yaml:"listing_url"`
	OutputPath string `yaml:"output_path"`
	//Browser
	Headless         bool     `yaml:"headless"`
	UserAgent        string   `yaml:"user_agent"`
	Locale           string   `yaml:"locale"`
	PageTimeout      Duration `yaml:"page_timeout"`
	LoadMoreTimeout  Duration `yaml:"load_more_timeout"`
	MaxExpansions    int      `yaml:"max_expansions"`
	CookiesPath      string   `yaml:"cookies_path"`
	ScreenshotDir    string   `yaml:"screenshot_dir"`
	//Detail pages
	Concurrency    int      `yaml:"concurrency"`
	RequestTimeout Duration `yaml:"request_timeout"`
	//Optional sinks
	TelegramToken  string `yaml:"telegram_token"`
	TelegramChatID int64  `yaml:"telegram_chat_id"`
	DatabaseURL    string `yaml:"database_url"`
	//Whole run
	RunTimeout Duration `yaml:"run_timeout"`
}

// Duration reads YAML strings such as "10s".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", value.Value, err)
	}
	d.Duration = parsed
	return nil
}

// Default returns a Config with every default applied.
func Default() *Config {
	cfg := &Config{Headless: true}
	cfg.applyDefaults()
	return cfg
}

// Load reads .env, then the YAML file at path (missing file is fine),
// then environment overrides, then fills defaults and validates.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{Headless: true}

	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("could not read %s: %w", path, err)
		}
		log.Printf("ℹ️ No config file at %s, using defaults", path)
	} else {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("error parsing %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("DOU_LISTING_URL"); v != "" {
		c.ListingURL = v
	}
	if v := os.Getenv("DOU_OUTPUT"); v != "" {
		c.OutputPath = v
	}
	if v := os.Getenv("DOU_CONCURRENCY"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid DOU_CONCURRENCY: %w", err)
		}
		c.Concurrency = n
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		c.TelegramToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid TELEGRAM_CHAT_ID: %w", err)
		}
		c.TelegramChatID = id
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.DatabaseURL = v
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.ListingURL == "" {
		c.ListingURL = "https://jobs.dou.ua/vacancies/?category=Python"
	}
	if c.OutputPath == "" {
		c.OutputPath = "data/vacancies.csv"
	}
	if c.Locale == "" {
		c.Locale = "uk-UA"
	}
	if c.PageTimeout.Duration <= 0 {
		c.PageTimeout.Duration = 30 * time.Second
	}
	if c.LoadMoreTimeout.Duration <= 0 {
		c.LoadMoreTimeout.Duration = 10 * time.Second
	}
	if c.Concurrency <= 0 {
		c.Concurrency = 8
	}
	if c.RequestTimeout.Duration <= 0 {
		c.RequestTimeout.Duration = 30 * time.Second
	}
	if c.RunTimeout.Duration <= 0 {
		c.RunTimeout.Duration = 15 * time.Minute
	}
	if c.CookiesPath == "" {
		c.CookiesPath = ".cookies/cookies-dou.json"
	}
}

// Validate checks the fields that cannot be defaulted.
func (c *Config) Validate() error {
	u, err := url.Parse(c.ListingURL)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return fmt.Errorf("listing_url must be an absolute URL, got %q", c.ListingURL)
	}
	if c.MaxExpansions < 0 {
		return fmt.Errorf("max_expansions must not be negative")
	}
	if (c.TelegramToken == "") != (c.TelegramChatID == 0) {
		return fmt.Errorf("TELEGRAM_BOT_TOKEN and TELEGRAM_CHAT_ID must be set together")
	}
	return nil
}

// TelegramEnabled reports whether run summaries should be sent.
func (c *Config) TelegramEnabled() bool {
	return c.TelegramToken != "" && c.TelegramChatID != 0
}
