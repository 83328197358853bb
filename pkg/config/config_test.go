package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"earnscan/pkg/daterange"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaults(t *testing.T) {
	cfg, err := LoadFromFiles()
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, time.Second, cfg.Pacing.CalendarDay.Duration)
	assert.Equal(t, 250*time.Millisecond, cfg.Pacing.PollSymbol.Duration)
	assert.Equal(t, 300*time.Millisecond, cfg.Pacing.Fundamentals.Duration)
	assert.Equal(t, 10*time.Second, cfg.Provider.ScrapeTimeout.Duration)
	assert.True(t, cfg.Wants("text"))
	assert.False(t, cfg.Wants("csv"))
}

func TestLoadFromFiles_LaterFileWins(t *testing.T) {
	base := writeFile(t, "base.toml", `
[scan]
filter = "next-week"
min_eps = 1.5

[pacing]
poll_symbol = "100ms"

[output]
formats = ["text", "csv"]
`)
	local := writeFile(t, "local.toml", `
[scan]
min_eps = 2.0
`)

	cfg, err := LoadFromFiles(base, "", local)
	require.NoError(t, err)
	assert.Equal(t, "next-week", cfg.Scan.Filter)
	assert.Equal(t, 2.0, cfg.Scan.MinEPS)
	assert.Equal(t, 100*time.Millisecond, cfg.Pacing.PollSymbol.Duration)
	assert.Equal(t, time.Second, cfg.Pacing.CalendarDay.Duration)
	assert.Equal(t, []string{"text", "csv"}, cfg.Output.Formats)
}

func TestLoadFromFiles_Errors(t *testing.T) {
	_, err := LoadFromFiles(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)

	_, err = LoadFromFiles(writeFile(t, "bad.toml", "[pacing]\ncalendar_day = \"soon\"\n"))
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("EARNSCAN_FILTER", "today")
	t.Setenv("EARNSCAN_MIN_EPS", "0.75")
	t.Setenv("EARNSCAN_OUTPUT_FORMATS", "JSON, html")
	t.Setenv("EARNSCAN_HISTORY_PROVIDER", "alpaca")

	cfg, err := LoadFromFiles(writeFile(t, "c.toml", "[scan]\nfilter = \"this-month\"\n"))
	require.NoError(t, err)
	assert.Equal(t, "today", cfg.Scan.Filter)
	assert.Equal(t, 0.75, cfg.Scan.MinEPS)
	assert.Equal(t, []string{"json", "html"}, cfg.Output.Formats)
	assert.Equal(t, "alpaca", cfg.Provider.History)

	t.Setenv("EARNSCAN_MIN_EPS", "lots")
	_, err = LoadFromFiles()
	assert.Error(t, err)
}

func TestLoadDotEnv(t *testing.T) {
	path := writeFile(t, ".env", "EARNSCAN_LOG_LEVEL=debug\nEARNSCAN_OUTPUT_DIR=/tmp/keep\n")
	t.Setenv("EARNSCAN_OUTPUT_DIR", "/already/set")
	t.Setenv("EARNSCAN_LOG_LEVEL", "")
	os.Unsetenv("EARNSCAN_LOG_LEVEL")

	require.NoError(t, LoadDotEnv(path))
	assert.Equal(t, "debug", os.Getenv("EARNSCAN_LOG_LEVEL"))
	assert.Equal(t, "/already/set", os.Getenv("EARNSCAN_OUTPUT_DIR"))

	assert.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), "absent.env")))
	assert.NoError(t, LoadDotEnv(""))
}

func TestApplyFlagOverrides(t *testing.T) {
	cfg := NewDefaultConfig()
	eps := 3.0
	ApplyFlagOverrides(cfg, Overrides{Filter: "custom", Start: "2025-10-01", End: "2025-10-07", MinEPS: &eps, Formats: "csv", Verbose: true})

	assert.Equal(t, 3.0, cfg.Scan.MinEPS)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, []string{"csv"}, cfg.Output.Formats)

	filter, r, err := cfg.Window()
	require.NoError(t, err)
	assert.Equal(t, daterange.Custom, filter)
	assert.Equal(t, 7, r.Len())
}

func TestValidate(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Scan.Filter = "custom"
	assert.Error(t, cfg.Validate())

	cfg = NewDefaultConfig()
	cfg.Provider.History = "bloomberg"
	assert.Error(t, cfg.Validate())

	cfg = NewDefaultConfig()
	cfg.Output.Formats = []string{"pdf"}
	assert.Error(t, cfg.Validate())

	cfg = NewDefaultConfig()
	cfg.Scan.Filter = "fortnight"
	assert.Error(t, cfg.Validate())
}
