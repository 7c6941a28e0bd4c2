// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli/v2"

	"github.com/poiesic/catalogrank"
	"github.com/poiesic/catalogrank/config"
	"github.com/poiesic/catalogrank/core"
	"github.com/poiesic/catalogrank/ingestion"
	"github.com/poiesic/catalogrank/ranking"
	"github.com/poiesic/catalogrank/sentiment"
)

// configKey holds the loaded *config.Config in the app metadata.
const configKey = "config"

// ingestionRetryDelay is the backoff before the first retry of a batch write.
const ingestionRetryDelay = 100 * time.Millisecond

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func dbFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "db",
		Aliases: []string{"d"},
		Usage:   "Path to the catalog database directory (default from config)",
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "catalogrank",
		Usage: "Rank a product catalog against free-text queries",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a YAML configuration file",
			},
		},
		Metadata: map[string]any{},
		Before:   setup,
		Commands: []*cli.Command{
			{
				Name:      "import",
				Usage:     "Import review exports (CSV) into the catalog",
				ArgsUsage: "FILE...",
				Action:    importCommand,
				Flags: []cli.Flag{
					dbFlag(),
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of items stored per write (default from config)",
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N items (default from config)",
					},
					&cli.IntFlag{
						Name:  "pool-size",
						Usage: "Number of files parsed concurrently (default from config)",
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum attempts for a failed batch write",
						Value: 3,
					},
				},
			},
			{
				Name:      "query",
				Usage:     "Rank catalog items against a query",
				ArgsUsage: "TEXT...",
				Action:    queryCommand,
				Flags: []cli.Flag{
					dbFlag(),
					&cli.Float64Flag{
						Name:  "min-price",
						Usage: "Lowest accepted price",
					},
					&cli.Float64Flag{
						Name:  "max-price",
						Usage: "Highest accepted price (unbounded when unset)",
					},
					&cli.StringFlag{
						Name:  "category",
						Usage: "Restrict results to one category (default from config)",
					},
					&cli.IntFlag{
						Name:  "max-results",
						Usage: "Maximum number of results (default from config)",
					},
					&cli.StringFlag{
						Name:  "metrics-file",
						Usage: "Write query metrics to this file in Prometheus text format",
					},
				},
			},
			{
				Name:   "stats",
				Usage:  "Show catalog size, price range and categories",
				Action: statsCommand,
				Flags:  []cli.Flag{dbFlag()},
			},
			{
				Name:      "sentiment",
				Usage:     "Score the sentiment of a text, or of an item's reviews",
				ArgsUsage: "[TEXT...]",
				Action:    sentimentCommand,
				Flags: []cli.Flag{
					dbFlag(),
					&cli.StringFlag{
						Name:  "item",
						Usage: "Score the reviews of the item with this ID",
					},
				},
			},
		},
	}
}

// setup loads the configuration and installs the default logger.
func setup(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	level, err := cfg.SlogLevel()
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(c.App.ErrWriter, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	c.App.Metadata[configKey] = cfg
	return nil
}

// settings returns a copy of the loaded configuration with the command's
// flags applied on top.
func settings(c *cli.Context) (*config.Config, error) {
	loaded, ok := c.App.Metadata[configKey].(*config.Config)
	if !ok {
		loaded = config.DefaultConfig()
	}
	cfg := *loaded

	if c.IsSet("db") {
		cfg.DBPath = c.String("db")
	}
	if c.IsSet("batch-size") {
		cfg.BatchSize = c.Int("batch-size")
	}
	if c.IsSet("report-interval") {
		cfg.ReportInterval = c.Int("report-interval")
	}
	if c.IsSet("pool-size") {
		cfg.PoolSize = c.Int("pool-size")
	}
	if c.IsSet("category") {
		cfg.Category = c.String("category")
	}
	if c.IsSet("max-results") {
		cfg.MaxResults = c.Int("max-results")
	}
	if c.IsSet("metrics-file") {
		cfg.MetricsFile = c.String("metrics-file")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func openCatalog(cfg *config.Config) (*catalogrank.Catalog, error) {
	catalog, err := catalogrank.Open(cfg.DBPath,
		catalogrank.WithLogger(slog.Default()),
		catalogrank.WithPoolSize(cfg.PoolSize),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return catalog, nil
}

func importCommand(c *cli.Context) error {
	ctx := context.Background()

	if c.NArg() == 0 {
		return errors.New("at least one CSV file is required")
	}
	cfg, err := settings(c)
	if err != nil {
		return err
	}

	catalog, err := openCatalog(cfg)
	if err != nil {
		return err
	}
	defer catalog.Close()

	fmt.Fprintf(c.App.ErrWriter, "Database: %s\n", cfg.DBPath)
	fmt.Fprintf(c.App.ErrWriter, "Files: %d\n", c.NArg())
	fmt.Fprintln(c.App.ErrWriter)

	result, err := catalog.ImportFiles(ctx, c.Args().Slice(),
		ingestion.WithBatchSize(cfg.BatchSize),
		ingestion.WithRetry(max(c.Int("max-retries"), 1), ingestionRetryDelay),
		ingestion.WithProgress(c.App.ErrWriter, cfg.ReportInterval),
	)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	fmt.Fprintf(c.App.Writer, "Imported %d items (%d skipped)\n", result.Stored, result.Skipped)
	return nil
}

func queryCommand(c *cli.Context) error {
	ctx := context.Background()

	cfg, err := settings(c)
	if err != nil {
		return err
	}

	q := ranking.Query{
		Text:       strings.Join(c.Args().Slice(), " "),
		MinPrice:   c.Float64("min-price"),
		MaxPrice:   ranking.NoPriceLimit,
		Category:   cfg.Category,
		MaxResults: cfg.MaxResults,
	}
	if c.IsSet("max-price") {
		q.MaxPrice = c.Float64("max-price")
	}

	catalog, err := openCatalog(cfg)
	if err != nil {
		return err
	}
	defer catalog.Close()

	registry := prometheus.NewRegistry()
	metrics := ranking.NewMetrics()
	if err := metrics.Register(registry); err != nil {
		return err
	}

	engine, err := catalog.NewEngine(ctx, ranking.WithMetrics(metrics))
	if err != nil {
		return fmt.Errorf("failed to build ranking engine: %w", err)
	}
	defer engine.Release()

	results := engine.Recommend(q)
	renderResults(c, results)

	if cfg.MetricsFile != "" {
		if err := prometheus.WriteToTextfile(cfg.MetricsFile, registry); err != nil {
			return fmt.Errorf("failed to write metrics: %w", err)
		}
	}
	return nil
}

func renderResults(c *cli.Context, results []*core.RankedResult) {
	if len(results) == 0 {
		fmt.Fprintln(c.App.Writer, "No matching items.")
		return
	}

	table := tablewriter.NewWriter(c.App.Writer)
	table.SetHeader([]string{"Rank", "Title", "Category", "Price", "Rating", "Score"})
	table.SetBorder(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)

	for _, r := range results {
		table.Append([]string{
			r.Badge(),
			r.Title,
			r.Category,
			strconv.FormatFloat(r.Price, 'f', 2, 64),
			fmt.Sprintf("%.1f (%d)", r.AvgRating, r.ReviewCount),
			strconv.FormatFloat(r.Score, 'f', 3, 64),
		})
	}
	table.Render()
}

func statsCommand(c *cli.Context) error {
	ctx := context.Background()

	cfg, err := settings(c)
	if err != nil {
		return err
	}

	catalog, err := openCatalog(cfg)
	if err != nil {
		return err
	}
	defer catalog.Close()

	engine, err := catalog.NewEngine(ctx)
	if err != nil {
		return fmt.Errorf("failed to build ranking engine: %w", err)
	}
	defer engine.Release()

	prices := engine.PriceRange()
	fmt.Fprintf(c.App.Writer, "Items: %d\n", engine.TotalItems())
	fmt.Fprintf(c.App.Writer, "Vocabulary: %d terms\n", engine.VocabularySize())
	fmt.Fprintf(c.App.Writer, "Price range: %.2f - %.2f\n", prices.Min, prices.Max)

	stats := engine.CategoryStats()
	if len(stats) == 0 {
		return nil
	}
	fmt.Fprintln(c.App.Writer)

	table := tablewriter.NewWriter(c.App.Writer)
	table.SetHeader([]string{"Category", "Items"})
	table.SetBorder(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	for _, s := range stats {
		table.Append([]string{s.Name, strconv.Itoa(s.Count)})
	}
	table.Render()
	return nil
}

func sentimentCommand(c *cli.Context) error {
	ctx := context.Background()
	classifier := sentiment.NewClassifier()

	if c.IsSet("item") {
		cfg, err := settings(c)
		if err != nil {
			return err
		}
		catalog, err := openCatalog(cfg)
		if err != nil {
			return err
		}
		defer catalog.Close()

		item, err := catalog.Repository().GetItem(ctx, c.String("item"))
		if err != nil {
			return err
		}
		score := classifier.Score(item.Reviews)
		fmt.Fprintf(c.App.Writer, "%s: %.3f (%s, %d reviews)\n", item.Title, score, sentimentLabel(score), item.ReviewCount)
		if latest, ok := latestReviewDate(item.Reviews); ok {
			fmt.Fprintf(c.App.Writer, "latest review: %s\n", latest.Format(time.DateOnly))
		}
		return nil
	}

	if c.NArg() == 0 {
		return errors.New("text or --item is required")
	}
	score := classifier.Predict(strings.Join(c.Args().Slice(), " "))
	fmt.Fprintf(c.App.Writer, "%.3f (%s)\n", score, sentimentLabel(score))
	return nil
}

// latestReviewDate returns the newest dated review, ignoring undated ones.
func latestReviewDate(reviews []core.Review) (time.Time, bool) {
	var latest time.Time
	for i := range reviews {
		if reviews[i].HasDate() && reviews[i].Date.After(latest) {
			latest = reviews[i].Date
		}
	}
	return latest, !latest.IsZero()
}

func sentimentLabel(score float64) string {
	switch {
	case score > 0:
		return "positive"
	case score < 0:
		return "negative"
	default:
		return "neutral"
	}
}
