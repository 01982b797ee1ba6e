package main

import (
	"context"
	"fmt"
	"os"

	"go-dou-scraper/internal/config"

	"github.com/spf13/cobra"
)

type flags struct {
	configPath    string
	listingURL    string
	outputPath    string
	concurrency   int
	maxExpansions int
	headless      bool
}

func newRootCmd() *cobra.Command {
	f := &flags{}
	cmd := &cobra.Command{
		Use:   "dou-scraper",
		Short: "Collects DOU vacancies with their descriptions and cities into a table.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(f.configPath)
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}
			if err := f.apply(cmd, cfg); err != nil {
				return fmt.Errorf("config: %w", err)
			}
			return run(cmd.Context(), cfg)
		},
		SilenceUsage: true,
	}

	cmd.Flags().StringVar(&f.configPath, "config", config.DefaultPath, "Path to the YAML config file.")
	cmd.Flags().StringVar(&f.listingURL, "url", "", "Listing URL to scrape (overrides config).")
	cmd.Flags().StringVarP(&f.outputPath, "out", "o", "", "Output file, .csv or .json (overrides config).")
	cmd.Flags().IntVar(&f.concurrency, "concurrency", 0, "Maximum simultaneous detail requests (overrides config).")
	cmd.Flags().IntVar(&f.maxExpansions, "max-expansions", 0, "Stop after this many load more clicks, 0 means no cap.")
	cmd.Flags().BoolVar(&f.headless, "headless", true, "Run the browser without a window.")
	return cmd
}

// apply copies explicitly set flags over the loaded config.
func (f *flags) apply(cmd *cobra.Command, cfg *config.Config) error {
	if cmd.Flags().Changed("url") {
		cfg.ListingURL = f.listingURL
	}
	if cmd.Flags().Changed("out") {
		cfg.OutputPath = f.outputPath
	}
	if cmd.Flags().Changed("concurrency") && f.concurrency > 0 {
		cfg.Concurrency = f.concurrency
	}
	if cmd.Flags().Changed("max-expansions") {
		cfg.MaxExpansions = f.maxExpansions
	}
	if cmd.Flags().Changed("headless") {
		cfg.Headless = f.headless
	}
	return cfg.Validate()
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "❌", err)
		os.Exit(1)
	}
}
