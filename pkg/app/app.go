// Package app wires providers, sources and the runner from a Config.
package app

import (
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"earnscan/pkg/alpaca"
	"earnscan/pkg/config"
	"earnscan/pkg/earnings"
	"earnscan/pkg/fundamentals"
	"earnscan/pkg/market"
	"earnscan/pkg/pipeline"
	"earnscan/pkg/progress"
	"earnscan/pkg/ratelimit"
	"earnscan/pkg/yahoo"
)

// App holds the wired components of one process.
type App struct {
	Yahoo   *yahoo.Client
	History market.HistoryProvider
	Scrape  *earnings.ScrapeSource
	Poll    *earnings.PollSource
	Source  earnings.Source
	Fetcher *fundamentals.Fetcher
	Runner  *pipeline.Runner
}

// New builds every component. Progress goes to reporter.
func New(cfg *config.Config, logger *zap.Logger, reporter progress.Reporter) (*App, error) {
	if reporter == nil {
		reporter = progress.Nop{}
	}

	yc := yahoo.NewClient(
		yahoo.WithBaseURLs(cfg.Provider.QuoteURL, cfg.Provider.ChartURL, cfg.Provider.SiteURL),
		yahoo.WithHTTPClient(&http.Client{Timeout: cfg.Provider.Timeout.Duration}),
		yahoo.WithUserAgent(cfg.Provider.UserAgent),
		yahoo.WithLogger(logger.Named("yahoo")),
	)

	var history market.HistoryProvider = yc
	if cfg.Provider.History == "alpaca" {
		h, err := alpaca.NewFromEnv(cfg.Provider.AlpacaFeed, logger.Named("alpaca"))
		if err != nil {
			return nil, fmt.Errorf("alpaca history: %w", err)
		}
		history = h
	}

	universe := earnings.DefaultUniverse
	if cfg.Scan.UniverseFile != "" {
		u, err := earnings.LoadUniverseCSV(cfg.Scan.UniverseFile)
		if err != nil {
			return nil, err
		}
		universe = u
	}

	scrape := earnings.NewScrapeSource(logger.Named("scrape"))
	scrape.BaseURL = cfg.Provider.SiteURL
	scrape.HTTPClient = &http.Client{Timeout: cfg.Provider.ScrapeTimeout.Duration}
	scrape.Pacer = ratelimit.NewPacer(cfg.Pacing.CalendarDay.Duration)
	scrape.Progress = reporter

	poll := earnings.NewPollSource(yc, universe, logger.Named("poll"))
	poll.Pacer = ratelimit.NewPacer(cfg.Pacing.PollSymbol.Duration)
	poll.Progress = reporter

	source := earnings.NewFallback(scrape, poll, logger)
	fetcher := fundamentals.NewFetcher(yc, history, logger.Named("fundamentals"))

	runner := pipeline.NewRunner(source, fetcher, logger)
	runner.Pacer = ratelimit.NewPacer(cfg.Pacing.Fundamentals.Duration)
	runner.Progress = reporter

	return &App{
		Yahoo:   yc,
		History: history,
		Scrape:  scrape,
		Poll:    poll,
		Source:  source,
		Fetcher: fetcher,
		Runner:  runner,
	}, nil
}
