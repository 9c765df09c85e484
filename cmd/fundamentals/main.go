package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"finagentex/pkg/core/cache"
	"finagentex/pkg/core/config"
	"finagentex/pkg/core/ingest"
	"finagentex/pkg/core/period"
	"finagentex/pkg/core/pipeline"
	"finagentex/pkg/core/report"
	"finagentex/pkg/core/standardize"
	"finagentex/pkg/core/store"
	"finagentex/pkg/core/validate"
	"finagentex/pkg/models"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	var (
		ticker     = flag.String("ticker", "", "single ticker to fetch (e.g. AAPL)")
		tickers    = flag.String("tickers", "", "comma-separated tickers for a batch fetch")
		periodType = flag.String("type", "annual", "period type: annual or quarterly")
		configPath = flag.String("config", "config.yaml", "path to config file")
		format     = flag.String("format", "markdown", "output format: markdown, html or json")
		out        = flag.String("out", "", "output file (default stdout)")
		clearTk    = flag.String("clear-cache", "", "clear the durable cache (ticker, or 'all') and exit")
		check      = flag.Bool("check", false, "run consistency checks on the results")
		verbose    = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, assuming environment variables are set.")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	logger := buildLogger(*verbose)
	defer logger.Sync()
	period.SetLogger(logger)

	ctx := context.Background()
	durable := openStore(ctx, cfg, logger)
	if durable != nil {
		defer closeStore(durable)
	}

	if *clearTk != "" {
		if durable == nil {
			log.Fatal("Error: no durable store configured, nothing to clear")
		}
		target := *clearTk
		if target == "all" {
			target = ""
		}
		if err := durable.Clear(ctx, strings.ToUpper(target)); err != nil {
			log.Fatalf("Error: clear failed: %v", err)
		}
		rows, companies, _ := durable.Stats(ctx)
		fmt.Printf("Cache cleared. %d rows across %d tickers remain.\n", rows, companies)
		return
	}

	g := models.Granularity(*periodType)
	if !g.Valid() {
		log.Fatalf("Error: -type must be annual or quarterly, got %q", *periodType)
	}

	std := standardize.New(logger)
	if cfg.ConceptOverridesPath != "" {
		if err := std.LoadOverrides(cfg.ConceptOverridesPath); err != nil {
			logger.Warn("skipping concept overrides", zap.Error(err))
		}
	}

	hot := cache.NewMemoryCache()
	defer hot.Close()

	source := ingest.NewEDGARClient(cfg.SECUserAgent, logger)
	orch := pipeline.New(source, hot, durable, std, cfg, logger)

	var responses []*models.FundamentalsResponse
	switch {
	case *tickers != "":
		list := splitTickers(*tickers)
		results := orch.FetchBatch(ctx, list, g)
		for _, t := range list {
			if resp, ok := results[strings.ToUpper(strings.TrimSpace(t))]; ok {
				responses = append(responses, resp)
			}
		}
	case *ticker != "":
		responses = append(responses, orch.FetchTicker(ctx, *ticker, g))
	default:
		flag.Usage()
		os.Exit(2)
	}

	if *check {
		for _, resp := range responses {
			for _, f := range validate.CheckResponse(resp) {
				logger.Warn("consistency check failed",
					zap.String("ticker", resp.Ticker), zap.String("finding", f.String()))
			}
		}
	}

	output, err := render(responses, *format)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}
	if *out == "" {
		fmt.Print(output)
		return
	}
	if err := os.WriteFile(*out, []byte(output), 0o644); err != nil {
		log.Fatalf("Error: failed to write %s: %v", *out, err)
	}
	fmt.Printf("Wrote %s\n", *out)
}

func buildLogger(verbose bool) *zap.Logger {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	cfg.OutputPaths = []string{"stderr"}
	logger, err := cfg.Build()
	if err != nil {
		log.Fatalf("Error: failed to build logger: %v", err)
	}
	return logger
}

// openStore picks Postgres when DATABASE_URL is set, SQLite otherwise. A nil
// return means no durable tier; the pipeline degrades to hot-cache + origin.
func openStore(ctx context.Context, cfg config.Config, logger *zap.Logger) store.Store {
	if cfg.DatabaseURL != "" {
		s, err := store.NewPostgresStore(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Warn("postgres unavailable, falling back to sqlite", zap.Error(err))
		} else {
			return s
		}
	}
	if cfg.SQLitePath == "" {
		return nil
	}
	s, err := store.NewSQLiteStore(cfg.SQLitePath)
	if err != nil {
		logger.Warn("sqlite unavailable, continuing without durable cache", zap.Error(err))
		return nil
	}
	return s
}

func closeStore(s store.Store) {
	switch c := s.(type) {
	case *store.PostgresStore:
		c.Close()
	case *store.SQLiteStore:
		c.Close()
	}
}

func splitTickers(raw string) []string {
	var out []string
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func render(responses []*models.FundamentalsResponse, format string) (string, error) {
	switch format {
	case "json":
		raw, err := json.MarshalIndent(responses, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to encode responses: %w", err)
		}
		return string(raw) + "\n", nil
	case "markdown", "html":
		var b strings.Builder
		for _, resp := range responses {
			b.WriteString(report.Markdown(resp))
			b.WriteString("\n")
		}
		if format == "markdown" {
			return b.String(), nil
		}
		var htmlOut strings.Builder
		fmt.Fprintf(&htmlOut, "<!-- generated %s -->\n", time.Now().Format(time.RFC3339))
		for _, resp := range responses {
			h, err := report.HTML(resp)
			if err != nil {
				return "", err
			}
			htmlOut.WriteString(h)
		}
		return htmlOut.String(), nil
	default:
		return "", fmt.Errorf("unknown format %q (want markdown, html or json)", format)
	}
}
