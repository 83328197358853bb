package fundamentals

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"earnscan/pkg/market"
)

type fakeInfo struct {
	info *market.Info
	err  error
}

func (f fakeInfo) Info(context.Context, string) (*market.Info, error) {
	return f.info, f.err
}

type fakeHistory struct {
	closes []float64
	err    error
}

func (f fakeHistory) DailyCloses(context.Context, string, time.Duration) ([]float64, error) {
	return f.closes, f.err
}

func series(n int, v float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func TestFetch_MovingAverageThresholds(t *testing.T) {
	tests := []struct {
		name    string
		closes  int
		want50  bool
		want200 bool
	}{
		{"49 closes", 49, false, false},
		{"50 closes", 50, true, false},
		{"199 closes", 199, true, false},
		{"200 closes", 200, true, true},
		{"full year", 252, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFetcher(
				fakeInfo{info: &market.Info{Symbol: "AAPL", CurrentPrice: market.Float(110)}},
				fakeHistory{closes: series(tt.closes, 100)},
				nil,
			)
			s, err := f.Fetch(context.Background(), "AAPL")
			require.NoError(t, err)

			assert.Equal(t, tt.want50, s.MA50 != nil)
			assert.Equal(t, tt.want50, s.AboveMA50 != nil)
			assert.Equal(t, tt.want200, s.MA200 != nil)
			assert.Equal(t, tt.want200, s.AboveMA200 != nil)
			if s.AboveMA50 != nil {
				assert.True(t, *s.AboveMA50)
			}
		})
	}
}

func TestFetch_AveragesUseMostRecentCloses(t *testing.T) {
	closes := append(series(150, 10), series(50, 20)...)
	f := NewFetcher(
		fakeInfo{info: &market.Info{CurrentPrice: market.Float(15)}},
		fakeHistory{closes: closes},
		nil,
	)

	s, err := f.Fetch(context.Background(), "X")
	require.NoError(t, err)
	assert.InDelta(t, 20, *s.MA50, 1e-9)
	assert.InDelta(t, 12.5, *s.MA200, 1e-9)
	assert.False(t, *s.AboveMA50)
	assert.True(t, *s.AboveMA200)
}

func TestFetch_HistoryFailureKeepsSnapshot(t *testing.T) {
	f := NewFetcher(
		fakeInfo{info: &market.Info{CurrentPrice: market.Float(15), TargetMeanPrice: market.Float(20)}},
		fakeHistory{err: market.NewFetchError(market.InsufficientHistory, "X", "history", errors.New("no closes"))},
		nil,
	)

	s, err := f.Fetch(context.Background(), "X")
	require.NoError(t, err)
	assert.Equal(t, 20.0, *s.TargetPrice)
	assert.Nil(t, s.MA50)
	assert.Nil(t, s.MA200)
	assert.Nil(t, s.AboveMA50)
}

func TestFetch_NoPriceLeavesFlagsUnset(t *testing.T) {
	f := NewFetcher(fakeInfo{info: &market.Info{}}, fakeHistory{closes: series(250, 5)}, nil)

	s, err := f.Fetch(context.Background(), "X")
	require.NoError(t, err)
	assert.NotNil(t, s.MA200)
	assert.Nil(t, s.AboveMA200)
	assert.Equal(t, "N/A", s.Sector)
	assert.Equal(t, "N/A", s.Industry)
}

func TestFetch_InfoFailure(t *testing.T) {
	f := NewFetcher(fakeInfo{err: market.NewFetchError(market.NetworkFailure, "X", "info", errors.New("reset"))}, nil, nil)

	s, err := f.Fetch(context.Background(), "X")
	assert.Nil(t, s)
	assert.Equal(t, market.NetworkFailure, market.KindOf(err))
}

func TestCurrentPrice_FirstAvailable(t *testing.T) {
	info := &market.Info{
		CurrentPrice:               market.Float(0),
		RegularMarketPrice:         nil,
		RegularMarketPreviousClose: market.Float(98),
		PreviousClose:              market.Float(97),
	}
	assert.Equal(t, 98.0, *CurrentPrice(info))

	assert.Nil(t, CurrentPrice(&market.Info{}))
}

func TestSnapshot_EPS(t *testing.T) {
	assert.Equal(t, 2.5, (&Snapshot{EPSTrailing: market.Float(2.5), EPSForward: market.Float(3)}).EPS())
	assert.Equal(t, 3.0, (&Snapshot{EPSForward: market.Float(3)}).EPS())
	assert.Equal(t, -1.0, (&Snapshot{EPSTrailing: market.Float(-1)}).EPS())
	assert.Equal(t, 0.0, (&Snapshot{}).EPS())
}

func TestTrailingMean(t *testing.T) {
	assert.Nil(t, TrailingMean([]float64{1, 2}, 3))
	assert.Nil(t, TrailingMean(nil, 0))
	assert.InDelta(t, 2.5, *TrailingMean([]float64{100, 2, 3}, 2), 1e-9)
}

func TestTrailingMean_ExactlyFifty(t *testing.T) {
	closes := make([]float64, 50)
	sum := 0.0
	for i := range closes {
		closes[i] = float64(i + 1)
		sum += closes[i]
	}
	require.Nil(t, TrailingMean(closes[1:], ShortWindow))
	require.NotNil(t, TrailingMean(closes, ShortWindow))
	assert.InDelta(t, sum/50, *TrailingMean(closes, ShortWindow), 1e-9)
}
