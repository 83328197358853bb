package fundamentals

import (
	"context"
	"time"

	"go.uber.org/zap"

	"earnscan/pkg/market"
)

// HistoryLookback is how far back daily closes are requested.
const HistoryLookback = 365 * 24 * time.Hour

// Fetcher combines provider info and daily history into a Snapshot.
type Fetcher struct {
	info    market.InfoProvider
	history market.HistoryProvider
	logger  *zap.Logger
}

// NewFetcher uses info for descriptive data and history for the moving
// averages. history may be nil, in which case no averages are computed.
func NewFetcher(info market.InfoProvider, history market.HistoryProvider, logger *zap.Logger) *Fetcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Fetcher{info: info, history: history, logger: logger}
}

// Fetch returns the snapshot for symbol. An info failure returns nil and the
// provider's error; a history failure only leaves the averages unset.
func (f *Fetcher) Fetch(ctx context.Context, symbol string) (*Snapshot, error) {
	info, err := f.info.Info(ctx, symbol)
	if err != nil {
		return nil, err
	}

	s := &Snapshot{
		Symbol:       symbol,
		Company:      info.DisplayName(),
		CurrentPrice: CurrentPrice(info),
		TargetPrice:  info.TargetMeanPrice,
		EPSTrailing:  info.TrailingEPS,
		EPSForward:   info.ForwardEPS,
		PERatio:      info.TrailingPE,
		MarketCap:    info.MarketCap,
		Sector:       orNA(info.Sector),
		Industry:     orNA(info.Industry),
	}

	if f.history == nil {
		return s, nil
	}
	closes, err := f.history.DailyCloses(ctx, symbol, HistoryLookback)
	if err != nil {
		f.logger.Debug("moving averages unavailable", zap.String("symbol", symbol), zap.Error(err))
		return s, nil
	}

	s.MA50 = TrailingMean(closes, ShortWindow)
	s.MA200 = TrailingMean(closes, LongWindow)
	s.AboveMA50 = above(s.CurrentPrice, s.MA50)
	s.AboveMA200 = above(s.CurrentPrice, s.MA200)

	f.logger.Debug("snapshot",
		zap.String("symbol", symbol),
		zap.Int("closes", len(closes)),
		zap.Float64p("price", s.CurrentPrice),
		zap.Float64p("ma50", s.MA50),
		zap.Float64p("ma200", s.MA200))
	return s, nil
}

// CurrentPrice is the first present, non-zero value of the live price, the
// regular-market price, the regular-market previous close and the previous
// close.
func CurrentPrice(info *market.Info) *float64 {
	for _, v := range []*float64{
		info.CurrentPrice,
		info.RegularMarketPrice,
		info.RegularMarketPreviousClose,
		info.PreviousClose,
	} {
		if v != nil && *v != 0 {
			return v
		}
	}
	return nil
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
