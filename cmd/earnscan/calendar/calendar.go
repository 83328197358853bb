// Command calendar lists the companies reporting earnings in a window
// without fetching fundamentals.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"earnscan/pkg/app"
	"earnscan/pkg/config"
	"earnscan/pkg/daterange"
	"earnscan/pkg/earnings"
	"earnscan/pkg/logging"
	"earnscan/pkg/progress"
	"earnscan/pkg/report"
)

func main() {
	configFile := flag.String("config", "", "configuration file path")
	filter := flag.String("filter", "", "today, tomorrow, this-week, next-week, this-month or custom")
	start := flag.String("start", "", "custom range start, YYYY-MM-DD")
	end := flag.String("end", "", "custom range end, YYYY-MM-DD")
	scrapeOnly := flag.Bool("scrape-only", false, "skip the polling fallback")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	if err := config.LoadDotEnv(".env"); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	cfg, err := config.LoadFromFiles(*configFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	config.ApplyFlagOverrides(cfg, config.Overrides{Filter: *filter, Start: *start, End: *end, Verbose: *verbose})
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

	a, err := app.New(cfg, logger, progress.NewLine(os.Stderr))
	if err != nil {
		logger.Fatal("setup failed", zap.Error(err))
	}

	f, custom, err := cfg.Window()
	if err != nil {
		logger.Fatal("invalid window", zap.Error(err))
	}
	window := daterange.Resolve(f, time.Now(), custom)
	logger.Info("discovering earnings", zap.Stringer("range", window))

	var source earnings.Source = a.Source
	if *scrapeOnly {
		source = a.Scrape
	}
	records, err := source.Discover(ctx, window)
	if err != nil {
		logger.Fatal("discovery failed", zap.Error(err))
	}
	if err := report.WriteRecords(os.Stdout, records); err != nil {
		logger.Fatal("write failed", zap.Error(err))
	}
}
