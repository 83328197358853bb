// Package alpaca reads daily bars from Alpaca market data for the moving
// average computation.
package alpaca

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"
	"go.uber.org/zap"

	"earnscan/pkg/market"
)

// ErrMissingCredentials is returned by NewFromEnv when the key pair is unset.
var ErrMissingCredentials = errors.New("ALPACA_API_KEY and ALPACA_SECRET_KEY must be set")

type barsGetter interface {
	GetBars(symbol string, req marketdata.GetBarsRequest) ([]marketdata.Bar, error)
}

// History satisfies market.HistoryProvider.
type History struct {
	client barsGetter
	feed   marketdata.Feed
	now    func() time.Time
	logger *zap.Logger
}

var _ market.HistoryProvider = (*History)(nil)

type Config struct {
	APIKey    string
	APISecret string
	// Feed is "iex" or "sip". Free accounts only get iex.
	Feed string
}

func New(cfg Config, logger *zap.Logger) (*History, error) {
	if cfg.APIKey == "" || cfg.APISecret == "" {
		return nil, ErrMissingCredentials
	}
	client := marketdata.NewClient(marketdata.ClientOpts{
		APIKey:    cfg.APIKey,
		APISecret: cfg.APISecret,
	})
	return newHistory(client, cfg.Feed, logger), nil
}

// NewFromEnv reads ALPACA_API_KEY and ALPACA_SECRET_KEY.
func NewFromEnv(feed string, logger *zap.Logger) (*History, error) {
	return New(Config{
		APIKey:    os.Getenv("ALPACA_API_KEY"),
		APISecret: os.Getenv("ALPACA_SECRET_KEY"),
		Feed:      feed,
	}, logger)
}

func newHistory(client barsGetter, feed string, logger *zap.Logger) *History {
	if feed == "" {
		feed = marketdata.IEX
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &History{client: client, feed: feed, now: time.Now, logger: logger}
}

// DailyCloses returns the closes of daily bars within lookback, oldest first.
func (h *History) DailyCloses(ctx context.Context, symbol string, lookback time.Duration) ([]float64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	end := h.now()
	bars, err := h.client.GetBars(symbol, marketdata.GetBarsRequest{
		TimeFrame:  marketdata.OneDay,
		Adjustment: marketdata.Split,
		Start:      end.Add(-lookback),
		End:        end,
		Feed:       h.feed,
	})
	if err != nil {
		return nil, market.NewFetchError(market.NetworkFailure, symbol, "history", err)
	}
	if len(bars) == 0 {
		return nil, market.NewFetchError(market.InsufficientHistory, symbol, "history", errors.New("no bars"))
	}

	h.logger.Debug("alpaca bars", zap.String("symbol", symbol), zap.Int("count", len(bars)))

	closes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
	}
	return closes, nil
}
