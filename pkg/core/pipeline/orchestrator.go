// Package pipeline composes the fundamentals core into a read-through cache:
// hot tier, then durable tier, then origin fetch with full reprocessing.
// Tier order is fixed (Hot -> Durable -> Origin) and an unavailable tier
// degrades cost, never correctness.
package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"finagentex/pkg/core/cache"
	"finagentex/pkg/core/config"
	"finagentex/pkg/core/ingest"
	"finagentex/pkg/core/period"
	"finagentex/pkg/core/standardize"
	"finagentex/pkg/core/store"
	"finagentex/pkg/core/synthesis"
	"finagentex/pkg/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Orchestrator serves fundamentals through the tiered read path. Both cache
// tiers are optional: a nil hot cache or nil store is treated as a permanent
// miss for that tier.
type Orchestrator struct {
	source  ingest.FilingSource
	hot     cache.KVCache
	durable store.Store
	std     *standardize.Standardizer
	cfg     config.Config
	logger  *zap.Logger
}

// New wires an orchestrator from explicit dependencies; tests substitute
// doubles for any of them.
func New(source ingest.FilingSource, hot cache.KVCache, durable store.Store,
	std *standardize.Standardizer, cfg config.Config, logger *zap.Logger) *Orchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	if std == nil {
		std = standardize.New(logger)
	}
	initMetrics()
	return &Orchestrator{
		source:  source,
		hot:     hot,
		durable: durable,
		std:     std,
		cfg:     cfg,
		logger:  logger,
	}
}

// FetchTicker serves one (ticker, granularity) request. It always returns a
// typed response: failures surface as Success=false with a human-readable
// Error, never as a panic or error value.
func (o *Orchestrator) FetchTicker(ctx context.Context, ticker string, g models.Granularity) *models.FundamentalsResponse {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if !g.Valid() {
		return o.fail(ticker, g, fmt.Sprintf("unknown period type %q", g))
	}

	// 1. Hot tier.
	if resp := o.readHot(ticker, g); resp != nil {
		hotHits.Inc()
		o.logger.Debug("served from hot cache", zap.String("ticker", ticker), zap.String("granularity", string(g)))
		return resp
	}

	// 2. Durable tier, trusted only past the completeness threshold.
	if resp := o.readDurable(ctx, ticker, g); resp != nil {
		durableHits.Inc()
		o.logger.Info("served from durable store",
			zap.String("ticker", ticker), zap.Int("periods", len(resp.Periods)))
		o.writeHot(ticker, g, resp)
		return resp
	}

	// 3. Origin.
	return o.fetchOrigin(ctx, ticker, g)
}

// BatchResult maps ticker to its response. No ordering guarantee.
type BatchResult map[string]*models.FundamentalsResponse

// FetchBatch runs the single-ticker pipeline for each company on a worker
// pool bounded by min(WorkerCap, N). Companies are independent; one failing
// never aborts the rest. After assembly the standardizer runs again across
// the whole batch so labels line up across companies regardless of which
// cache tier served each one.
func (o *Orchestrator) FetchBatch(ctx context.Context, tickers []string, g models.Granularity) BatchResult {
	batchID := uuid.New().String()[:8]
	o.logger.Info("starting batch fetch",
		zap.String("batch_id", batchID), zap.Int("tickers", len(tickers)), zap.String("granularity", string(g)))

	limit := o.cfg.WorkerCap
	if len(tickers) < limit {
		limit = len(tickers)
	}
	if limit < 1 {
		limit = 1
	}

	var mu sync.Mutex
	results := make(BatchResult, len(tickers))

	eg, gctx := errgroup.WithContext(ctx)
	eg.SetLimit(limit)
	for _, t := range tickers {
		ticker := t
		eg.Go(func() error {
			resp := o.FetchTicker(gctx, ticker, g)
			mu.Lock()
			results[resp.Ticker] = resp
			mu.Unlock()
			return nil
		})
	}
	eg.Wait() // workers never return errors; failures live in the responses

	// Second, batch-wide standardization pass. Per-company standardization
	// already ran on origin fetches, but hot/durable hits may predate table
	// updates; the pass is idempotent so double application is harmless.
	for _, resp := range results {
		o.std.ApplyResponse(resp)
	}

	o.logger.Info("batch fetch complete", zap.String("batch_id", batchID), zap.Int("results", len(results)))
	return results
}

// --- tier 1: hot cache ---

func (o *Orchestrator) readHot(ticker string, g models.Granularity) *models.FundamentalsResponse {
	if o.hot == nil {
		return nil
	}
	raw, ok := o.hot.Get(cache.Key(ticker, g))
	if !ok {
		return nil
	}
	var resp models.FundamentalsResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		o.logger.Warn("discarding undecodable hot cache entry",
			zap.String("ticker", ticker), zap.Error(err))
		return nil
	}
	return &resp
}

func (o *Orchestrator) writeHot(ticker string, g models.Granularity, resp *models.FundamentalsResponse) {
	if o.hot == nil || !resp.Success {
		return
	}
	raw, err := json.Marshal(resp)
	if err != nil {
		o.logger.Warn("failed to serialize response for hot cache", zap.String("ticker", ticker), zap.Error(err))
		return
	}
	o.hot.Set(cache.Key(ticker, g), raw, o.cfg.HotTTL)
}

// --- tier 2: durable store ---

func (o *Orchestrator) readDurable(ctx context.Context, ticker string, g models.Granularity) *models.FundamentalsResponse {
	if o.durable == nil {
		return nil
	}
	periods, err := o.durable.ListPeriods(ctx, ticker, g)
	if err != nil {
		o.logger.Warn("durable store unavailable, falling through to origin",
			zap.String("ticker", ticker), zap.Error(err))
		return nil
	}
	if len(periods) < o.cfg.MinCachedPeriods {
		return nil
	}

	docs, err := o.durable.GetAll(ctx, ticker, g)
	if err != nil {
		o.logger.Warn("durable store read failed, falling through to origin",
			zap.String("ticker", ticker), zap.Error(err))
		return nil
	}

	resp := &models.FundamentalsResponse{
		Success:    true,
		Ticker:     ticker,
		PeriodType: string(g),
	}
	for _, st := range models.StatementTypes {
		rows, err := store.DocsToRows(docs[st])
		if err != nil {
			o.logger.Warn("corrupt durable entry, refetching from origin",
				zap.String("ticker", ticker), zap.String("statement", string(st)), zap.Error(err))
			return nil
		}
		resp.SetStatement(st, rows)
	}
	// A cache full of empty statements is not worth trusting.
	if len(resp.Income) == 0 && len(resp.Balance) == 0 {
		return nil
	}

	period.SortDesc(periods)
	resp.Periods = periods
	return resp
}

// --- tier 3: origin ---

func (o *Orchestrator) fetchOrigin(ctx context.Context, ticker string, g models.Granularity) *models.FundamentalsResponse {
	originFetches.Inc()

	max := o.cfg.MaxAnnualFilings
	if g == models.Quarterly {
		max = o.cfg.MaxQuarterlyFilings
	}

	o.logger.Info("fetching from filing source",
		zap.String("ticker", ticker), zap.String("granularity", string(g)), zap.Int("max_filings", max))

	filings, err := o.source.GetFilings(ctx, ticker, g, max)
	if err != nil && !errors.Is(err, ingest.ErrNoFilings) {
		originErrors.Inc()
		o.logger.Error("filing source fetch failed", zap.String("ticker", ticker), zap.Error(err))
		return o.fail(ticker, g, fmt.Sprintf("failed to fetch filings for %s: %v", ticker, err))
	}
	if len(filings) == 0 {
		// Not an error: a valid ticker can simply have no filings of this form.
		resp := o.empty(ticker, g)
		resp.Error = fmt.Sprintf("no filings found for %s (%s)", ticker, g)
		return resp
	}

	// Oldest first so the merge's recency bias lands on the newest filing.
	sort.Slice(filings, func(i, j int) bool {
		return filings[i].FilingDate.Before(filings[j].FilingDate)
	})

	resp := &models.FundamentalsResponse{
		Success:    true,
		Ticker:     ticker,
		PeriodType: string(g),
	}
	// Statement types are processed independently: losing one to bad data
	// still serves the other two.
	for _, st := range models.StatementTypes {
		var chunks [][]models.StatementRow
		for _, filing := range filings {
			table, ok := filing.Statements[st]
			if !ok {
				continue
			}
			if rows := o.tableToRows(table, g); len(rows) > 0 {
				chunks = append(chunks, rows)
			}
		}
		rows := synthesis.Merge(chunks)
		synthesis.ApplyYoY(rows)
		rows = o.std.Apply(rows)
		resp.SetStatement(st, rows)
	}

	resp.Periods = synthesis.Periods(resp.Income, resp.Balance, resp.Cashflow)
	if len(resp.Periods) == 0 {
		resp.Error = fmt.Sprintf("no usable statement data found for %s (%s)", ticker, g)
		return resp
	}

	o.persist(ctx, ticker, g, resp)
	o.writeHot(ticker, g, resp)
	return resp
}

// tableToRows converts one raw statement table into statement rows, applying
// the duration gate per column. Columns without duration metadata (instant
// balance-sheet columns) are assumed valid. Dropping YTD columns here, before
// the merge, is what keeps cumulative spans out of the quarterly series.
func (o *Orchestrator) tableToRows(table ingest.StatementTable, g models.Granularity) []models.StatementRow {
	annual := g == models.Annual

	labels := make([]string, len(table.Columns))
	usable := make([]bool, len(table.Columns))
	for i, col := range table.Columns {
		if col.HasDuration {
			kind := period.Classify(col.StartDate, col.EndDate)
			if annual && kind != period.AnnualPeriod {
				continue
			}
			if !annual && kind != period.DiscreteQuarter {
				continue
			}
		}
		usable[i] = true
		labels[i] = period.Label(col.EndDate, annual)
	}

	var rows []models.StatementRow
	for _, raw := range table.Rows {
		values := make(map[string]models.Cell)
		for i, v := range raw.Values {
			if i >= len(table.Columns) || !usable[i] || v == nil {
				continue
			}
			if _, dup := values[labels[i]]; dup {
				continue // first column wins when two dates label the same period
			}
			values[labels[i]] = models.Cell{Value: *v}
		}
		if len(values) > 0 {
			rows = append(rows, models.StatementRow{Label: raw.Label, Concept: raw.Concept, Values: values})
		}
	}
	return rows
}

// persist writes every (period, statement type) combination to the durable
// store. Write failures are logged and swallowed: the response is already
// assembled and the store is a cache, not the source of truth.
func (o *Orchestrator) persist(ctx context.Context, ticker string, g models.Granularity, resp *models.FundamentalsResponse) {
	if o.durable == nil {
		return
	}
	saved := 0
	for _, st := range models.StatementTypes {
		docs, err := store.RowsToPeriodDocs(resp.Statement(st))
		if err != nil {
			o.logger.Warn("failed to pivot rows for persistence",
				zap.String("ticker", ticker), zap.String("statement", string(st)), zap.Error(err))
			continue
		}
		for p, doc := range docs {
			if err := o.durable.Put(ctx, ticker, g, p, st, doc); err != nil {
				o.logger.Warn("durable store write failed",
					zap.String("ticker", ticker), zap.String("period", p), zap.Error(err))
				continue
			}
			saved++
		}
	}
	o.logger.Info("persisted fundamentals",
		zap.String("ticker", ticker), zap.String("granularity", string(g)), zap.Int("cells", saved))
}

func (o *Orchestrator) empty(ticker string, g models.Granularity) *models.FundamentalsResponse {
	return &models.FundamentalsResponse{
		Success:    true,
		Ticker:     ticker,
		PeriodType: string(g),
		Periods:    []string{},
		Income:     []models.StatementRow{},
		Balance:    []models.StatementRow{},
		Cashflow:   []models.StatementRow{},
	}
}

func (o *Orchestrator) fail(ticker string, g models.Granularity, msg string) *models.FundamentalsResponse {
	resp := o.empty(ticker, g)
	resp.Success = false
	resp.Error = msg
	return resp
}
