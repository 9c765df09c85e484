// Package config loads pipeline tunables from a YAML file with environment
// overrides for deployment-specific values.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v2"
)

// Config holds every tunable of the fundamentals pipeline.
type Config struct {
	// DatabaseURL selects the Postgres durable store; empty falls back to
	// SQLitePath. Overridden by the DATABASE_URL environment variable.
	DatabaseURL string `yaml:"database_url"`
	SQLitePath  string `yaml:"sqlite_path"`

	// SECUserAgent is sent on every EDGAR request, per SEC guidelines.
	SECUserAgent string `yaml:"sec_user_agent"`

	// HotTTL is how long assembled responses stay in the hot tier. In YAML it
	// is a Go duration string ("168h"); see UnmarshalYAML.
	HotTTL time.Duration `yaml:"-"`

	// MinCachedPeriods is the completeness threshold for trusting the durable
	// tier without refetching. It assumes roughly one filing per period and at
	// least five years/quarters of history; issuers with a shorter filing
	// history will always refetch. Tunable, not an invariant.
	MinCachedPeriods int `yaml:"min_cached_periods"`

	// WorkerCap bounds batch concurrency; the effective pool is min(cap, N).
	WorkerCap int `yaml:"worker_cap"`

	// MaxAnnualFilings / MaxQuarterlyFilings bound the origin fetch. Quarterly
	// needs a generous count because YTD columns are discarded.
	MaxAnnualFilings    int `yaml:"max_annual_filings"`
	MaxQuarterlyFilings int `yaml:"max_quarterly_filings"`

	// ConceptOverridesPath optionally extends the standardizer table (HJSON).
	ConceptOverridesPath string `yaml:"concept_overrides_path"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		SQLitePath:          "cache.db",
		HotTTL:              7 * 24 * time.Hour,
		MinCachedPeriods:    5,
		WorkerCap:           10,
		MaxAnnualFilings:    10,
		MaxQuarterlyFilings: 40,
	}
}

// UnmarshalYAML decodes hot_ttl from a duration string, since yaml.v2 has no
// native time.Duration support.
func (c *Config) UnmarshalYAML(unmarshal func(interface{}) error) error {
	type plain Config
	aux := struct {
		Plain  plain  `yaml:",inline"`
		HotTTL string `yaml:"hot_ttl"`
	}{Plain: plain(*c)}
	if err := unmarshal(&aux); err != nil {
		return err
	}
	*c = Config(aux.Plain)
	if aux.HotTTL != "" {
		d, err := time.ParseDuration(aux.HotTTL)
		if err != nil {
			return fmt.Errorf("invalid hot_ttl %q: %w", aux.HotTTL, err)
		}
		c.HotTTL = d
	}
	return nil
}

// Load reads path (if non-empty) over the defaults, then applies env
// overrides. A missing file is not an error; a malformed one is.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
			}
		} else if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.DatabaseURL = v
	}
	if v := os.Getenv("SEC_USER_AGENT"); v != "" {
		cfg.SECUserAgent = v
	}
	return cfg.validate()
}

func (c Config) validate() (Config, error) {
	if c.MinCachedPeriods < 1 {
		return c, fmt.Errorf("min_cached_periods must be >= 1, got %d", c.MinCachedPeriods)
	}
	if c.WorkerCap < 1 {
		return c, fmt.Errorf("worker_cap must be >= 1, got %d", c.WorkerCap)
	}
	if c.HotTTL <= 0 {
		c.HotTTL = 7 * 24 * time.Hour
	}
	return c, nil
}
