package yahoo

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"

	"earnscan/pkg/market"
)

const quoteModules = "price,financialData,defaultKeyStatistics,summaryDetail,assetProfile,calendarEvents"

// exchangeLocation is used to turn unix earnings timestamps into dates.
var exchangeLocation = loadLocation("America/New_York")

func loadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (c *Client) quoteSummary(ctx context.Context, symbol, op string) (*quoteSummaryResult, error) {
	u := c.quoteURL + "/v10/finance/quoteSummary/" + url.PathEscape(symbol) +
		"?modules=" + url.QueryEscape(quoteModules)

	var resp quoteSummaryResponse
	if err := c.getJSON(ctx, symbol, op, u, &resp); err != nil {
		return nil, err
	}
	if resp.QuoteSummary.Error != nil {
		return nil, market.NewFetchError(market.MissingField, symbol, op, resp.QuoteSummary.Error)
	}
	if len(resp.QuoteSummary.Result) == 0 {
		return nil, market.NewFetchError(market.MissingField, symbol, op, errors.New("empty quoteSummary result"))
	}
	return &resp.QuoteSummary.Result[0], nil
}

// Info returns descriptive info for symbol.
func (c *Client) Info(ctx context.Context, symbol string) (*market.Info, error) {
	res, err := c.quoteSummary(ctx, symbol, "info")
	if err != nil {
		return nil, err
	}

	info := &market.Info{Symbol: strings.ToUpper(symbol)}
	if p := res.Price; p != nil {
		info.LongName = p.LongName
		info.ShortName = p.ShortName
		info.RegularMarketPrice = p.RegularMarketPrice.ptr()
		info.RegularMarketPreviousClose = p.RegularMarketPreviousClose.ptr()
		info.MarketCap = p.MarketCap.ptr()
	}
	if f := res.FinancialData; f != nil {
		info.CurrentPrice = f.CurrentPrice.ptr()
		info.TargetMeanPrice = f.TargetMeanPrice.ptr()
	}
	if k := res.DefaultKeyStatistics; k != nil {
		info.TrailingEPS = k.TrailingEps.ptr()
		info.ForwardEPS = k.ForwardEps.ptr()
	}
	if s := res.SummaryDetail; s != nil {
		info.PreviousClose = s.PreviousClose.ptr()
		info.TrailingPE = s.TrailingPE.ptr()
		if info.MarketCap == nil {
			info.MarketCap = s.MarketCap.ptr()
		}
	}
	if a := res.AssetProfile; a != nil {
		info.Sector = a.Sector
		info.Industry = a.Industry
	}
	return info, nil
}

// EarningsCalendar returns the "Earnings Date" entries of the calendar
// module, in the order Yahoo lists them.
func (c *Client) EarningsCalendar(ctx context.Context, symbol string) ([]time.Time, error) {
	res, err := c.quoteSummary(ctx, symbol, "calendar")
	if err != nil {
		return nil, err
	}
	if res.CalendarEvents == nil || len(res.CalendarEvents.Earnings.EarningsDate) == 0 {
		return nil, market.NewFetchError(market.MissingField, symbol, "calendar", errors.New("no earnings date"))
	}

	var dates []time.Time
	for _, v := range res.CalendarEvents.Earnings.EarningsDate {
		if d, ok := calendarDate(v); ok {
			dates = append(dates, d)
		}
	}
	if len(dates) == 0 {
		return nil, market.NewFetchError(market.ParseFailure, symbol, "calendar", errors.New("unreadable earnings date"))
	}
	return dates, nil
}

// calendarDate prefers the formatted date and falls back to the unix
// timestamp read in exchange time. The result is midnight UTC.
func calendarDate(v rawValue) (time.Time, bool) {
	if v.Fmt != "" {
		if t, err := time.Parse("2006-01-02", v.Fmt); err == nil {
			return t, true
		}
	}
	if v.Raw == nil {
		return time.Time{}, false
	}
	y, m, d := time.Unix(int64(*v.Raw), 0).In(exchangeLocation).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), true
}
