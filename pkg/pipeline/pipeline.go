// Package pipeline runs one scan: resolve the window, discover earnings,
// fetch fundamentals for each record, and screen them.
package pipeline

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"earnscan/pkg/daterange"
	"earnscan/pkg/earnings"
	"earnscan/pkg/fundamentals"
	"earnscan/pkg/progress"
	"earnscan/pkg/ratelimit"
	"earnscan/pkg/screen"
)

// FetchInterval is the pause between fundamentals requests.
const FetchInterval = 300 * time.Millisecond

// ErrNoEarnings is returned with a partial Result when discovery finds no
// record in the window.
var ErrNoEarnings = errors.New("no stocks with earnings in the selected date range")

// SnapshotFetcher is satisfied by *fundamentals.Fetcher.
type SnapshotFetcher interface {
	Fetch(ctx context.Context, symbol string) (*fundamentals.Snapshot, error)
}

type Params struct {
	Filter daterange.Filter
	// Custom is used only when Filter is daterange.Custom.
	Custom daterange.Range
	MinEPS float64
	// Now defaults to time.Now.
	Now time.Time
}

type Result struct {
	RunID   string
	Range   daterange.Range
	MinEPS  float64
	Records []earnings.Record
	Outcome screen.Outcome
	Summary screen.Summary
	Started time.Time
	Elapsed time.Duration
}

type Runner struct {
	Source   earnings.Source
	Fetcher  SnapshotFetcher
	Pacer    *ratelimit.Pacer
	Progress progress.Reporter
	Logger   *zap.Logger
}

func NewRunner(source earnings.Source, fetcher SnapshotFetcher, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		Source:   source,
		Fetcher:  fetcher,
		Pacer:    ratelimit.NewPacer(FetchInterval),
		Progress: progress.Nop{},
		Logger:   logger,
	}
}

// Run executes the scan sequentially. Per-symbol failures become
// rejections; only cancellation aborts the run.
func (r *Runner) Run(ctx context.Context, p Params) (*Result, error) {
	started := time.Now()
	now := p.Now
	if now.IsZero() {
		now = started
	}

	res := &Result{
		RunID:   uuid.New().String(),
		Range:   daterange.Resolve(p.Filter, now, p.Custom),
		MinEPS:  p.MinEPS,
		Started: started,
	}
	log := r.Logger.With(zap.String("run_id", res.RunID))
	log.Info("scan started",
		zap.Stringer("filter", p.Filter),
		zap.Stringer("range", res.Range),
		zap.Float64("min_eps", p.MinEPS))

	records, err := r.Source.Discover(ctx, res.Range)
	if err != nil {
		return nil, err
	}
	res.Records = records
	if len(records) == 0 {
		res.Elapsed = time.Since(started)
		log.Warn("no earnings found", zap.Stringer("range", res.Range))
		return res, ErrNoEarnings
	}
	log.Info("earnings discovered", zap.Int("records", len(records)))

	candidates, err := r.fetchAll(ctx, log, records)
	if err != nil {
		return nil, err
	}

	res.Outcome = screen.Evaluate(candidates, p.MinEPS)
	res.Summary = screen.Summarize(res.Outcome)
	res.Elapsed = time.Since(started)

	for _, rej := range res.Outcome.Rejections {
		log.Debug("rejected", zap.String("symbol", rej.Symbol), zap.String("reason", rej.Reason))
	}
	log.Info("scan finished",
		zap.Int("opportunities", len(res.Outcome.Opportunities)),
		zap.Int("rejected", len(res.Outcome.Rejections)),
		zap.Duration("elapsed", res.Elapsed))
	return res, nil
}

// fetchAll fetches one snapshot per symbol in record order. A symbol listed
// on several dates is fetched once.
func (r *Runner) fetchAll(ctx context.Context, log *zap.Logger, records []earnings.Record) ([]screen.Candidate, error) {
	cache := make(map[string]*fundamentals.Snapshot, len(records))
	fetched := 0

	candidates := make([]screen.Candidate, 0, len(records))
	for i, rec := range records {
		snap, ok := cache[rec.Symbol]
		if !ok {
			if err := r.Pacer.Wait(ctx); err != nil {
				return nil, err
			}
			r.Progress.Report(progress.Update{Stage: "Analyzing", Label: rec.Symbol, Checked: i + 1, Total: len(records), Found: fetched})

			var err error
			snap, err = r.Fetcher.Fetch(ctx, rec.Symbol)
			if err != nil {
				if ctx.Err() != nil {
					return nil, ctx.Err()
				}
				log.Debug("fundamentals unavailable", zap.String("symbol", rec.Symbol), zap.Error(err))
			}
			if snap != nil {
				fetched++
			}
			cache[rec.Symbol] = snap
		}
		candidates = append(candidates, screen.Candidate{Record: rec, Snapshot: snap})
	}
	r.Progress.Done("Analyzing")
	return candidates, nil
}
