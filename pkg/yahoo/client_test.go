package yahoo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"earnscan/pkg/market"
)

const aaplSummary = `{"quoteSummary":{"result":[{
  "price":{"symbol":"AAPL","longName":"Apple Inc.","shortName":"Apple","regularMarketPrice":{"raw":101.5,"fmt":"101.50"},"regularMarketPreviousClose":{"raw":100.0,"fmt":"100.00"},"marketCap":{"raw":3000000000000,"fmt":"3T"}},
  "financialData":{"currentPrice":{"raw":101.5},"targetMeanPrice":{"raw":120.0}},
  "defaultKeyStatistics":{"trailingEps":{"raw":6.1},"forwardEps":{}},
  "summaryDetail":{"previousClose":{"raw":100.0},"trailingPE":{"raw":16.6}},
  "assetProfile":{"sector":"Technology","industry":"Consumer Electronics"},
  "calendarEvents":{"earnings":{"earningsDate":[{"raw":1761854400,"fmt":"2025-10-30"},{"raw":1762286400,"fmt":"2025-11-04"}]}}
}],"error":null}}`

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(
		WithBaseURLs(srv.URL, srv.URL, srv.URL),
		WithHTTPClient(srv.Client()),
		WithClock(func() time.Time { return time.Date(2025, 10, 15, 12, 0, 0, 0, time.UTC) }),
	)
}

func TestInfo(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v10/finance/quoteSummary/AAPL", r.URL.Path)
		assert.Contains(t, r.URL.Query().Get("modules"), "financialData")
		assert.Equal(t, DesktopUserAgent, r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte(aaplSummary))
	})

	info, err := c.Info(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.Equal(t, "Apple Inc.", info.DisplayName())
	assert.Equal(t, "Technology", info.Sector)
	require.NotNil(t, info.CurrentPrice)
	assert.Equal(t, 101.5, *info.CurrentPrice)
	require.NotNil(t, info.TargetMeanPrice)
	assert.Equal(t, 120.0, *info.TargetMeanPrice)
	require.NotNil(t, info.TrailingEPS)
	assert.Equal(t, 6.1, *info.TrailingEPS)
	assert.Nil(t, info.ForwardEPS)
	require.NotNil(t, info.MarketCap)
	assert.Equal(t, 3e12, *info.MarketCap)
}

func TestInfo_RepairsTrailingComma(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"quoteSummary":{"result":[{"price":{"longName":"Visa Inc.",}}],"error":null}}`))
	})

	info, err := c.Info(context.Background(), "V")
	require.NoError(t, err)
	assert.Equal(t, "Visa Inc.", info.LongName)
}

func TestInfo_StatusErrorIsNetworkFailure(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := c.Info(context.Background(), "AAPL")
	require.Error(t, err)
	assert.Equal(t, market.NetworkFailure, market.KindOf(err))

	var se *market.StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusTooManyRequests, se.StatusCode)
}

func TestInfo_EmptyResultIsMissingField(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"quoteSummary":{"result":[],"error":null}}`))
	})

	_, err := c.Info(context.Background(), "ZZZZ")
	assert.Equal(t, market.MissingField, market.KindOf(err))
}

func TestEarningsCalendar(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(aaplSummary))
	})

	dates, err := c.EarningsCalendar(context.Background(), "AAPL")
	require.NoError(t, err)
	require.Len(t, dates, 2)
	assert.Equal(t, time.Date(2025, 10, 30, 0, 0, 0, 0, time.UTC), dates[0])
}

func TestEarningsCalendar_SingleObjectAndRawOnly(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		// 2025-10-30 20:00 UTC is 16:00 in New York.
		_, _ = w.Write([]byte(`{"quoteSummary":{"result":[{"calendarEvents":{"earnings":{"earningsDate":{"raw":1761854400}}}}],"error":null}}`))
	})

	dates, err := c.EarningsCalendar(context.Background(), "MSFT")
	require.NoError(t, err)
	require.Len(t, dates, 1)
	assert.Equal(t, time.Date(2025, 10, 30, 0, 0, 0, 0, time.UTC), dates[0])
}

func TestEarningsCalendar_NoDates(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"quoteSummary":{"result":[{"calendarEvents":{"earnings":{}}}],"error":null}}`))
	})

	_, err := c.EarningsCalendar(context.Background(), "MSFT")
	assert.Equal(t, market.MissingField, market.KindOf(err))
}

func TestEarningsDates(t *testing.T) {
	page := `<html><body><table>
<tr><th>Symbol</th><th>Company</th><th>Earnings Date</th><th>EPS Estimate</th></tr>
<tr><td>AAPL</td><td>Apple Inc.</td><td>Jan 29, 2026, 4 PM EST</td><td>2.65</td></tr>
<tr><td>AAPL</td><td>Apple Inc.</td><td>Oct 30, 2025, 4 PM EDT</td><td>1.77</td></tr>
<tr><td>AAPL</td><td>Apple Inc.</td><td>-</td><td>-</td></tr>
</table></body></html>`

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/calendar/earnings", r.URL.Path)
		assert.Equal(t, "AAPL", r.URL.Query().Get("symbol"))
		assert.True(t, strings.HasPrefix(r.Header.Get("Accept"), "text/html"))
		_, _ = w.Write([]byte(page))
	})

	dates, err := c.EarningsDates(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.Equal(t, []time.Time{
		time.Date(2026, 1, 29, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 10, 30, 0, 0, 0, 0, time.UTC),
	}, dates)
}

func TestEarningsDates_NoTable(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><body><p>nothing</p></body></html>`))
	})

	_, err := c.EarningsDates(context.Background(), "AAPL")
	assert.Equal(t, market.MissingField, market.KindOf(err))
}

func TestDailyCloses(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v8/finance/chart/AAPL", r.URL.Path)
		assert.Equal(t, "1d", r.URL.Query().Get("interval"))
		assert.NotEmpty(t, r.URL.Query().Get("period1"))
		_, _ = w.Write([]byte(`{"chart":{"result":[{"timestamp":[1,2,3,4],"indicators":{"quote":[{"close":[10.0,null,11.5,12.0]}]}}],"error":null}}`))
	})

	closes, err := c.DailyCloses(context.Background(), "AAPL", 365*24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, []float64{10, 11.5, 12}, closes)
}

func TestDailyCloses_ChartError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found, symbol may be delisted"}}}`))
	})

	_, err := c.DailyCloses(context.Background(), "GONE", 365*24*time.Hour)
	require.Error(t, err)
	assert.Equal(t, market.MissingField, market.KindOf(err))
	assert.Contains(t, err.Error(), "delisted")
}

func TestParseEarningsDate(t *testing.T) {
	d, ok := parseEarningsDate("  May 1, 2025, 4 PM EDT ")
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC), d)

	_, ok = parseEarningsDate("N/A")
	assert.False(t, ok)
}
