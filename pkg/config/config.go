// Package config loads earnscan settings: defaults, then TOML files, then
// EARNSCAN_* environment variables, then command-line flags.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"earnscan/pkg/daterange"
)

// Config represents the application configuration.
type Config struct {
	Scan     ScanConfig     `toml:"scan"`
	Provider ProviderConfig `toml:"provider"`
	Pacing   PacingConfig   `toml:"pacing"`
	Output   OutputConfig   `toml:"output"`
	Logging  LoggingConfig  `toml:"logging"`
}

// ScanConfig selects the window and the EPS threshold.
type ScanConfig struct {
	Filter string  `toml:"filter"`
	Start  string  `toml:"start"`
	End    string  `toml:"end"`
	MinEPS float64 `toml:"min_eps"`
	// UniverseFile replaces the built-in symbol list for the poll strategy.
	UniverseFile string `toml:"universe_file"`
}

// ProviderConfig points the clients at their endpoints.
type ProviderConfig struct {
	QuoteURL      string   `toml:"quote_url"`
	ChartURL      string   `toml:"chart_url"`
	SiteURL       string   `toml:"site_url"`
	UserAgent     string   `toml:"user_agent"`
	Timeout       Duration `toml:"timeout"`
	ScrapeTimeout Duration `toml:"scrape_timeout"`
	// History is "yahoo" or "alpaca".
	History    string `toml:"history"`
	AlpacaFeed string `toml:"alpaca_feed"`
}

// PacingConfig holds the courtesy pauses between sequential requests.
type PacingConfig struct {
	CalendarDay  Duration `toml:"calendar_day"`
	PollSymbol   Duration `toml:"poll_symbol"`
	Fundamentals Duration `toml:"fundamentals"`
}

type OutputConfig struct {
	Dir string `toml:"dir"`
	// Formats is any of text, csv, json, html.
	Formats []string `toml:"formats"`
	TopN    int      `toml:"top_n"`
	Links   bool     `toml:"links"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Duration is a time.Duration written as "250ms" in TOML.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func NewDefaultConfig() *Config {
	return &Config{
		Scan: ScanConfig{
			Filter: "this-week",
			MinEPS: 0,
		},
		Provider: ProviderConfig{
			QuoteURL:      "https://query2.finance.yahoo.com",
			ChartURL:      "https://query1.finance.yahoo.com",
			SiteURL:       "https://finance.yahoo.com",
			Timeout:       Duration{30 * time.Second},
			ScrapeTimeout: Duration{10 * time.Second},
			History:       "yahoo",
			AlpacaFeed:    "iex",
		},
		Pacing: PacingConfig{
			CalendarDay:  Duration{time.Second},
			PollSymbol:   Duration{250 * time.Millisecond},
			Fundamentals: Duration{300 * time.Millisecond},
		},
		Output: OutputConfig{
			Dir:     ".",
			Formats: []string{"text"},
			TopN:    5,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// LoadFromFiles loads configuration with priority:
// defaults -> file1 -> file2 -> ... -> env. Empty paths are skipped.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	if err := applyEnvOverrides(config); err != nil {
		return nil, err
	}
	return config, nil
}

// LoadDotEnv reads KEY=value pairs from path into the process environment
// without replacing variables that are already set. A missing file is not
// an error.
func LoadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// applyEnvOverrides applies EARNSCAN_* environment variable overrides.
func applyEnvOverrides(config *Config) error {
	if v := os.Getenv("EARNSCAN_FILTER"); v != "" {
		config.Scan.Filter = v
	}
	if v := os.Getenv("EARNSCAN_START"); v != "" {
		config.Scan.Start = v
	}
	if v := os.Getenv("EARNSCAN_END"); v != "" {
		config.Scan.End = v
	}
	if v := os.Getenv("EARNSCAN_MIN_EPS"); v != "" {
		eps, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid EARNSCAN_MIN_EPS %q: %w", v, err)
		}
		config.Scan.MinEPS = eps
	}
	if v := os.Getenv("EARNSCAN_UNIVERSE_FILE"); v != "" {
		config.Scan.UniverseFile = v
	}
	if v := os.Getenv("EARNSCAN_HISTORY_PROVIDER"); v != "" {
		config.Provider.History = v
	}
	if v := os.Getenv("EARNSCAN_ALPACA_FEED"); v != "" {
		config.Provider.AlpacaFeed = v
	}
	if v := os.Getenv("EARNSCAN_OUTPUT_DIR"); v != "" {
		config.Output.Dir = v
	}
	if v := os.Getenv("EARNSCAN_OUTPUT_FORMATS"); v != "" {
		config.Output.Formats = splitList(v)
	}
	if v := os.Getenv("EARNSCAN_LOG_LEVEL"); v != "" {
		config.Logging.Level = v
	}
	if v := os.Getenv("EARNSCAN_LOG_FORMAT"); v != "" {
		config.Logging.Format = v
	}
	return nil
}

// Overrides carries command-line flags. Zero values leave the config alone.
type Overrides struct {
	Filter   string
	Start    string
	End      string
	MinEPS   *float64
	Formats  string
	Dir      string
	Universe string
	History  string
	Verbose  bool
}

// ApplyFlagOverrides applies command-line flag overrides to config.
func ApplyFlagOverrides(config *Config, o Overrides) {
	if o.Filter != "" {
		config.Scan.Filter = o.Filter
	}
	if o.Start != "" {
		config.Scan.Start = o.Start
	}
	if o.End != "" {
		config.Scan.End = o.End
	}
	if o.MinEPS != nil {
		config.Scan.MinEPS = *o.MinEPS
	}
	if o.Formats != "" {
		config.Output.Formats = splitList(o.Formats)
	}
	if o.Dir != "" {
		config.Output.Dir = o.Dir
	}
	if o.Universe != "" {
		config.Scan.UniverseFile = o.Universe
	}
	if o.History != "" {
		config.Provider.History = o.History
	}
	if o.Verbose {
		config.Logging.Level = "debug"
	}
}

var knownFormats = map[string]bool{"text": true, "csv": true, "json": true, "html": true}

// Window resolves the scan filter. Custom windows need both start and end.
func (c *Config) Window() (daterange.Filter, daterange.Range, error) {
	filter, err := daterange.ParseFilter(c.Scan.Filter)
	if err != nil {
		return 0, daterange.Range{}, err
	}
	if filter != daterange.Custom {
		return filter, daterange.Range{}, nil
	}
	if c.Scan.Start == "" || c.Scan.End == "" {
		return 0, daterange.Range{}, fmt.Errorf("custom date range needs both start and end")
	}
	r, err := daterange.ParseRange(c.Scan.Start, c.Scan.End, time.Local)
	if err != nil {
		return 0, daterange.Range{}, err
	}
	return filter, r, nil
}

// Validate checks values that cannot be checked while parsing.
func (c *Config) Validate() error {
	if _, _, err := c.Window(); err != nil {
		return err
	}
	switch c.Provider.History {
	case "yahoo", "alpaca":
	default:
		return fmt.Errorf("unknown history provider %q (want yahoo or alpaca)", c.Provider.History)
	}
	for _, f := range c.Output.Formats {
		if !knownFormats[f] {
			return fmt.Errorf("unknown output format %q", f)
		}
	}
	if c.Output.TopN < 0 {
		return fmt.Errorf("top_n must not be negative")
	}
	return nil
}

// Wants reports whether format is among the configured outputs.
func (c *Config) Wants(format string) bool {
	for _, f := range c.Output.Formats {
		if f == format {
			return true
		}
	}
	return false
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.ToLower(strings.TrimSpace(part)); p != "" {
			out = append(out, p)
		}
	}
	return out
}
