package earnings

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	"earnscan/pkg/daterange"
	"earnscan/pkg/market"
	"earnscan/pkg/progress"
	"earnscan/pkg/ratelimit"
)

const PollInterval = 250 * time.Millisecond

// PollProvider is what the poll strategy asks about each symbol.
type PollProvider interface {
	market.InfoProvider
	market.CalendarProvider
	market.EarningsDatesProvider
}

// PollSource asks the provider for every symbol in Universe whether it
// reports inside the window.
type PollSource struct {
	Provider PollProvider
	Universe []string
	Pacer    *ratelimit.Pacer
	Progress progress.Reporter
	Logger   *zap.Logger
	Now      func() time.Time
}

func NewPollSource(p PollProvider, universe []string, logger *zap.Logger) *PollSource {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PollSource{
		Provider: p,
		Universe: universe,
		Pacer:    ratelimit.NewPacer(PollInterval),
		Progress: progress.Nop{},
		Logger:   logger,
		Now:      time.Now,
	}
}

func (s *PollSource) Discover(ctx context.Context, r daterange.Range) ([]Record, error) {
	symbols := UniqueSymbols(s.Universe)
	now := s.Now()

	found := newCollector()
	for i, symbol := range symbols {
		if err := s.Pacer.Wait(ctx); err != nil {
			return nil, err
		}
		s.Progress.Report(progress.Update{Stage: "Checking", Label: symbol, Checked: i + 1, Total: len(symbols), Found: len(found.records)})

		rec, ok := s.check(ctx, symbol, now, r)
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if ok && found.add(rec) {
			s.Logger.Debug("earnings in range", zap.String("symbol", symbol), zap.Time("date", rec.Date))
		}
	}
	s.Progress.Done("Checking")

	s.Logger.Info("symbol universe polled",
		zap.Int("checked", len(symbols)), zap.Int("found", len(found.records)))
	return found.records, nil
}

func (s *PollSource) check(ctx context.Context, symbol string, now time.Time, r daterange.Range) (Record, bool) {
	date, ok := s.nextEarningsDate(ctx, symbol, now)
	if !ok || !r.Contains(date) {
		return Record{}, false
	}

	info, err := s.Provider.Info(ctx, symbol)
	if err != nil {
		s.Logger.Debug("info lookup failed", zap.String("symbol", symbol), zap.Error(err))
		return Record{}, false
	}

	rec := Record{
		Symbol:      symbol,
		Company:     info.LongName,
		EPSEstimate: info.TrailingEPS,
		Date:        daterange.DateOf(date),
	}
	if rec.Company == "" {
		rec.Company = symbol
	}
	if rec.EPSEstimate == nil {
		rec.EPSEstimate = info.ForwardEPS
	}
	return rec, true
}

// nextEarningsDate takes the first calendar entry, else the earliest entry
// of the earnings-dates series that is not in the past.
func (s *PollSource) nextEarningsDate(ctx context.Context, symbol string, now time.Time) (time.Time, bool) {
	dates, err := s.Provider.EarningsCalendar(ctx, symbol)
	if err == nil && len(dates) > 0 {
		return dates[0], true
	}
	if err != nil {
		s.Logger.Debug("calendar lookup failed", zap.String("symbol", symbol), zap.Error(err))
	}

	series, err := s.Provider.EarningsDates(ctx, symbol)
	if err != nil {
		s.Logger.Debug("earnings dates lookup failed", zap.String("symbol", symbol), zap.Error(err))
		return time.Time{}, false
	}

	var upcoming []time.Time
	for _, d := range series {
		if daterange.OnOrAfter(d, now) {
			upcoming = append(upcoming, d)
		}
	}
	if len(upcoming) == 0 {
		return time.Time{}, false
	}
	sort.Slice(upcoming, func(i, j int) bool { return upcoming[i].Before(upcoming[j]) })
	return upcoming[0], true
}
