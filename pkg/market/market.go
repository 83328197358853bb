// Package market holds the provider-neutral view of a market-data source:
// the descriptive info record, the earnings calendar, daily closes and the
// error type every provider reports failures with.
package market

import (
	"context"
	"time"
)

// Info is the descriptive record a provider returns for one symbol. Numeric
// fields are nil when the provider did not report them.
type Info struct {
	Symbol    string
	LongName  string
	ShortName string
	Sector    string
	Industry  string

	CurrentPrice               *float64
	RegularMarketPrice         *float64
	RegularMarketPreviousClose *float64
	PreviousClose              *float64
	TargetMeanPrice            *float64

	TrailingEPS *float64
	ForwardEPS  *float64
	TrailingPE  *float64
	MarketCap   *float64
}

// DisplayName returns the long name, then the short name, then the symbol.
func (i *Info) DisplayName() string {
	switch {
	case i.LongName != "":
		return i.LongName
	case i.ShortName != "":
		return i.ShortName
	}
	return i.Symbol
}

// InfoProvider returns descriptive info for a symbol.
type InfoProvider interface {
	Info(ctx context.Context, symbol string) (*Info, error)
}

// CalendarProvider returns the upcoming "Earnings Date" entries from the
// provider's structured calendar, in the order the provider lists them.
type CalendarProvider interface {
	EarningsCalendar(ctx context.Context, symbol string) ([]time.Time, error)
}

// EarningsDatesProvider returns the provider's earnings-dates series, past
// and future, in no particular order.
type EarningsDatesProvider interface {
	EarningsDates(ctx context.Context, symbol string) ([]time.Time, error)
}

// HistoryProvider returns daily closing prices, oldest first, covering at
// most the given lookback.
type HistoryProvider interface {
	DailyCloses(ctx context.Context, symbol string, lookback time.Duration) ([]float64, error)
}

// Provider is everything the poll strategy and the fundamentals fetcher need.
type Provider interface {
	InfoProvider
	CalendarProvider
	EarningsDatesProvider
	HistoryProvider
}

// Float returns a pointer to v. Handy for optional fields.
func Float(v float64) *float64 {
	return &v
}
