package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"go.uber.org/zap"

	"earnscan/pkg/app"
	"earnscan/pkg/config"
	"earnscan/pkg/logging"
	"earnscan/pkg/pipeline"
	"earnscan/pkg/progress"
	"earnscan/pkg/report"
)

// configPaths allows multiple -config flags.
type configPaths []string

func (c *configPaths) String() string {
	return fmt.Sprintf("%v", *c)
}

func (c *configPaths) Set(value string) error {
	*c = append(*c, value)
	return nil
}

var (
	configFiles configPaths
	envFile     = flag.String("env", ".env", "dotenv file with ALPACA_* and EARNSCAN_* variables")
	filter      = flag.String("filter", "", "today, tomorrow, this-week, next-week, this-month or custom")
	startDate   = flag.String("start", "", "custom range start, YYYY-MM-DD")
	endDate     = flag.String("end", "", "custom range end, YYYY-MM-DD")
	minEPS      = flag.Float64("min-eps", 0, "minimum EPS (trailing, else forward)")
	formats     = flag.String("format", "", "comma separated outputs: text,csv,json,html")
	outDir      = flag.String("out", "", "directory for csv/json/html files")
	universe    = flag.String("universe", "", "CSV of symbols for the polling fallback")
	history     = flag.String("history", "", "daily history provider: yahoo or alpaca")
	verbose     = flag.Bool("v", false, "debug logging and rejected-candidate table")
	quiet       = flag.Bool("q", false, "no progress line")
)

func init() {
	flag.Var(&configFiles, "config", "configuration file path (can be specified multiple times)")
	flag.Var(&configFiles, "c", "configuration file path (shorthand)")
}

func main() {
	flag.Parse()

	if err := config.LoadDotEnv(*envFile); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if len(configFiles) == 0 {
		if _, err := os.Stat("earnscan.toml"); err == nil {
			configFiles = append(configFiles, "earnscan.toml")
		}
	}

	cfg, err := config.LoadFromFiles(configFiles...)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	overrides := config.Overrides{
		Filter:   *filter,
		Start:    *startDate,
		End:      *endDate,
		Formats:  *formats,
		Dir:      *outDir,
		Universe: *universe,
		History:  *history,
		Verbose:  *verbose,
	}
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "min-eps" {
			overrides.MinEPS = minEPS
		}
	})
	config.ApplyFlagOverrides(cfg, overrides)

	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger, err := logging.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("scan failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	var reporter progress.Reporter = progress.NewLine(os.Stderr)
	if *quiet {
		reporter = progress.Nop{}
	}

	a, err := app.New(cfg, logger, reporter)
	if err != nil {
		return err
	}

	f, custom, err := cfg.Window()
	if err != nil {
		return err
	}

	res, err := a.Runner.Run(ctx, pipeline.Params{Filter: f, Custom: custom, MinEPS: cfg.Scan.MinEPS})
	if err != nil && !errors.Is(err, pipeline.ErrNoEarnings) {
		return err
	}

	if cfg.Wants("text") {
		opts := report.TextOptions{Verbose: cfg.Logging.Level == "debug", TopN: cfg.Output.TopN, Links: cfg.Output.Links}
		if err := report.WriteText(os.Stdout, res, opts); err != nil {
			return err
		}
	}
	if len(res.Outcome.Opportunities) == 0 {
		return nil
	}

	now := time.Now()
	if cfg.Wants("csv") {
		path, err := report.SaveCSV(cfg.Output.Dir, res.Range, now, res.Outcome.Opportunities)
		if err != nil {
			return err
		}
		logger.Info("csv written", zap.String("path", path))
	}
	if cfg.Wants("json") {
		path := filepath.Join(cfg.Output.Dir, fmt.Sprintf("earnings_analysis_%s_%s.json", res.Range.Start.Format("2006-01-02"), now.Format("150405")))
		if err := writeFile(path, func(file *os.File) error { return report.WriteJSON(file, res) }); err != nil {
			return err
		}
		logger.Info("json written", zap.String("path", path))
	}
	if cfg.Wants("html") {
		path := filepath.Join(cfg.Output.Dir, fmt.Sprintf("earnings_analysis_%s_%s.html", res.Range.Start.Format("2006-01-02"), now.Format("150405")))
		if err := writeFile(path, func(file *os.File) error { return report.WriteHTML(file, res) }); err != nil {
			return err
		}
		logger.Info("html written", zap.String("path", path))
	}
	return nil
}

func writeFile(path string, write func(*os.File) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := write(file); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
