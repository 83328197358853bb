package yahoo

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"earnscan/pkg/market"
)

// DailyCloses returns daily closes covering lookback, oldest first. Null
// closes (halts, partial sessions) are dropped.
func (c *Client) DailyCloses(ctx context.Context, symbol string, lookback time.Duration) ([]float64, error) {
	end := c.now()
	start := end.Add(-lookback)
	u := fmt.Sprintf("%s/v8/finance/chart/%s?period1=%d&period2=%d&interval=1d",
		c.chartURL, url.PathEscape(symbol), start.Unix(), end.Unix())

	var resp chartResponse
	if err := c.getJSON(ctx, symbol, "history", u, &resp); err != nil {
		return nil, err
	}
	if resp.Chart.Error != nil {
		return nil, market.NewFetchError(market.MissingField, symbol, "history", resp.Chart.Error)
	}
	if len(resp.Chart.Result) == 0 || len(resp.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, market.NewFetchError(market.InsufficientHistory, symbol, "history", errors.New("empty chart"))
	}

	raw := resp.Chart.Result[0].Indicators.Quote[0].Close
	closes := make([]float64, 0, len(raw))
	for _, v := range raw {
		if v != nil {
			closes = append(closes, *v)
		}
	}
	if len(closes) == 0 {
		return nil, market.NewFetchError(market.InsufficientHistory, symbol, "history", errors.New("no closes"))
	}
	return closes, nil
}
