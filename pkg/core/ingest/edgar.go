package ingest

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"finagentex/pkg/models"

	"go.uber.org/zap"
)

const (
	// SEC EDGAR API endpoints
	secTickersURL     = "https://www.sec.gov/files/company_tickers.json"
	secSubmissionsURL = "https://data.sec.gov/submissions/CIK%s.json"
	secArchiveURL     = "https://www.sec.gov/Archives/edgar/data/%s/%s/%s"

	// SEC guidelines require a descriptive User-Agent with contact info.
	defaultUserAgent = "FinAgentEx/1.0 (finagentex@example.com)"
)

// EDGARClient implements FilingSource against live SEC EDGAR.
type EDGARClient struct {
	httpClient *http.Client
	userAgent  string
	logger     *zap.Logger
}

// NewEDGARClient creates a new SEC EDGAR client. An empty userAgent falls
// back to the package default.
func NewEDGARClient(userAgent string, logger *zap.Logger) *EDGARClient {
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EDGARClient{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		userAgent:  userAgent,
		logger:     logger,
	}
}

// secSubmissions is the submissions API response (parallel arrays).
type secSubmissions struct {
	CIK     string `json:"cik"`
	Name    string `json:"name"`
	Filings struct {
		Recent struct {
			AccessionNumber []string `json:"accessionNumber"`
			FilingDate      []string `json:"filingDate"`
			Form            []string `json:"form"`
		} `json:"recent"`
	} `json:"filings"`
}

// filingSummary is the FilingSummary.xml index shipped with every filing.
type filingSummary struct {
	Reports []struct {
		ShortName    string `xml:"ShortName"`
		HTMLFileName string `xml:"HtmlFileName"`
	} `xml:"MyReports>Report"`
}

// GetFilings implements FilingSource.
func (c *EDGARClient) GetFilings(ctx context.Context, ticker string, g models.Granularity, max int) ([]Filing, error) {
	cik, err := c.resolveCIK(ctx, ticker)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve CIK for %s: %w", ticker, err)
	}

	subs, err := c.fetchSubmissions(ctx, cik)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch submissions for %s: %w", ticker, err)
	}

	wantForms := map[string]bool{"10-K": true}
	if g == models.Quarterly {
		wantForms["10-Q"] = true
	}

	recent := subs.Filings.Recent
	var filings []Filing
	for i := range recent.AccessionNumber {
		form := recent.Form[i]
		// Amendments (10-K/A, 10-Q/A) restate whole filings and are excluded,
		// keeping the series to primary filings only.
		if !wantForms[form] || strings.HasSuffix(form, "/A") {
			continue
		}
		filed, err := time.Parse("2006-01-02", recent.FilingDate[i])
		if err != nil {
			c.logger.Warn("skipping filing with unparsable filing date",
				zap.String("accession", recent.AccessionNumber[i]), zap.String("date", recent.FilingDate[i]))
			continue
		}

		filing := Filing{
			AccessionNumber: recent.AccessionNumber[i],
			Form:            form,
			FilingDate:      filed,
			Statements:      make(map[models.StatementType]StatementTable),
		}
		if err := c.loadStatements(ctx, cik, &filing); err != nil {
			// A filing without parseable statements is skipped, not fatal.
			c.logger.Warn("failed to load statement tables",
				zap.String("ticker", ticker), zap.String("accession", filing.AccessionNumber), zap.Error(err))
			continue
		}
		filings = append(filings, filing)
		if len(filings) >= max {
			break
		}
	}
	if len(filings) == 0 {
		return nil, fmt.Errorf("%w for %s (%s)", ErrNoFilings, ticker, g)
	}
	return filings, nil
}

// resolveCIK maps a ticker symbol to its zero-padded 10-digit CIK.
func (c *EDGARClient) resolveCIK(ctx context.Context, ticker string) (string, error) {
	body, err := c.get(ctx, secTickersURL)
	if err != nil {
		return "", err
	}
	// Keyed by arbitrary index: {"0": {"cik_str": 320193, "ticker": "AAPL"}, ...}
	var table map[string]struct {
		CIK    int64  `json:"cik_str"`
		Ticker string `json:"ticker"`
	}
	if err := json.Unmarshal(body, &table); err != nil {
		return "", fmt.Errorf("failed to parse ticker table: %w", err)
	}
	upper := strings.ToUpper(strings.TrimSpace(ticker))
	for _, entry := range table {
		if entry.Ticker == upper {
			return fmt.Sprintf("%010d", entry.CIK), nil
		}
	}
	return "", fmt.Errorf("ticker %s not found in SEC company table", ticker)
}

func (c *EDGARClient) fetchSubmissions(ctx context.Context, cik string) (*secSubmissions, error) {
	body, err := c.get(ctx, fmt.Sprintf(secSubmissionsURL, cik))
	if err != nil {
		return nil, err
	}
	var subs secSubmissions
	if err := json.Unmarshal(body, &subs); err != nil {
		return nil, fmt.Errorf("failed to parse submissions: %w", err)
	}
	return &subs, nil
}

// loadStatements locates the three core statements via FilingSummary.xml and
// parses each R-file table. A parse failure in one statement leaves that
// statement missing and the others intact.
func (c *EDGARClient) loadStatements(ctx context.Context, cik string, filing *Filing) error {
	accDir := strings.ReplaceAll(filing.AccessionNumber, "-", "")
	cikTrimmed := strings.TrimLeft(cik, "0")

	body, err := c.get(ctx, fmt.Sprintf(secArchiveURL, cikTrimmed, accDir, "FilingSummary.xml"))
	if err != nil {
		return fmt.Errorf("failed to fetch filing summary: %w", err)
	}
	var summary filingSummary
	if err := xml.Unmarshal(body, &summary); err != nil {
		return fmt.Errorf("failed to parse filing summary: %w", err)
	}

	for _, report := range summary.Reports {
		st, ok := classifyReportName(report.ShortName)
		if !ok || report.HTMLFileName == "" {
			continue
		}
		if _, dup := filing.Statements[st]; dup {
			continue // first matching report wins (parenthetical variants follow it)
		}
		html, err := c.get(ctx, fmt.Sprintf(secArchiveURL, cikTrimmed, accDir, report.HTMLFileName))
		if err != nil {
			c.logger.Warn("failed to fetch statement report",
				zap.String("accession", filing.AccessionNumber), zap.String("statement", string(st)), zap.Error(err))
			continue
		}
		table, err := ParseStatementTable(string(html))
		if err != nil {
			c.logger.Warn("failed to parse statement table",
				zap.String("accession", filing.AccessionNumber), zap.String("statement", string(st)), zap.Error(err))
			continue
		}
		filing.Statements[st] = table
	}

	if len(filing.Statements) == 0 {
		return fmt.Errorf("no statement tables found in %s", filing.AccessionNumber)
	}
	return nil
}

// classifyReportName buckets a FilingSummary report title into a statement
// type. Parenthetical and note reports are rejected.
func classifyReportName(name string) (models.StatementType, bool) {
	n := strings.ToLower(name)
	if strings.Contains(n, "parenthetical") || strings.Contains(n, "note") {
		return "", false
	}
	switch {
	case strings.Contains(n, "statements of operations"),
		strings.Contains(n, "statements of income"),
		strings.Contains(n, "income statement"):
		return models.Income, true
	case strings.Contains(n, "balance sheet"),
		strings.Contains(n, "statements of financial position"):
		return models.Balance, true
	case strings.Contains(n, "cash flow"):
		return models.Cashflow, true
	}
	return "", false
}

func (c *EDGARClient) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url)
	}
	return io.ReadAll(resp.Body)
}
