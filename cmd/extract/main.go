package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/maltedev/product-scraper/internal/fetcher"
	"github.com/maltedev/product-scraper/internal/models"
	"github.com/maltedev/product-scraper/internal/monitoring"
	"github.com/maltedev/product-scraper/internal/parser"
	"github.com/maltedev/product-scraper/internal/scraper"
)

// extract runs the extraction chains once and prints the record as JSON.
// With -file (or "-" for stdin) it reads saved markup instead of fetching.
func main() {
	var (
		url     = flag.String("url", "", "product page URL (selects the strategy set)")
		file    = flag.String("file", "", "read markup from this file instead of fetching; - for stdin")
		verbose = flag.Bool("v", false, "log which candidate supplied each field")
	)
	flag.Parse()

	if *url == "" {
		fmt.Fprintln(os.Stderr, "Please provide a URL with -url")
		os.Exit(1)
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	service := scraper.NewService(fetcher.New(), parser.NewProductParser(), nil, monitoring.NewMetrics(), logger)

	ctx := context.Background()
	var (
		result *models.ExtractionResult
		err    error
	)
	if *file != "" {
		markup, readErr := readMarkup(*file)
		if readErr != nil {
			fmt.Fprintf(os.Stderr, "Failed to read markup: %v\n", readErr)
			os.Exit(1)
		}
		result, err = service.Extract(ctx, models.ExtractionRequest{URL: *url, Markup: markup})
	} else {
		result, err = service.Scrape(ctx, *url)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if errors.Is(err, scraper.ErrExtractionFailed) {
			os.Exit(2)
		}
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to encode result: %v\n", err)
		os.Exit(1)
	}
}

func readMarkup(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		return string(data), err
	}
	data, err := os.ReadFile(path)
	return string(data), err
}
