package yahoo

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"earnscan/pkg/market"
)

// earningsDateLayout matches the leading part of cells such as
// "Oct 30, 2025, 4 PM EDT".
const earningsDateLayout = "Jan 2, 2006"

// EarningsDates scrapes the per-symbol earnings page and returns every date
// in its "Earnings Date" column, past and future.
func (c *Client) EarningsDates(ctx context.Context, symbol string) ([]time.Time, error) {
	u := c.siteURL + "/calendar/earnings?symbol=" + url.QueryEscape(symbol)
	doc, err := c.getHTML(ctx, symbol, "earnings_dates", u)
	if err != nil {
		return nil, err
	}

	var dates []time.Time
	doc.Find("table").Each(func(_ int, table *goquery.Selection) {
		col := -1
		table.Find("tr").First().Find("th,td").Each(func(i int, cell *goquery.Selection) {
			if col < 0 && strings.EqualFold(strings.TrimSpace(cell.Text()), "Earnings Date") {
				col = i
			}
		})
		if col < 0 {
			return
		}
		table.Find("tr").Slice(1, goquery.ToEnd).Each(func(_ int, row *goquery.Selection) {
			cell := row.Find("td").Eq(col)
			if d, ok := parseEarningsDate(cell.Text()); ok {
				dates = append(dates, d)
			}
		})
	})

	if len(dates) == 0 {
		return nil, market.NewFetchError(market.MissingField, symbol, "earnings_dates", errors.New("no earnings dates on page"))
	}
	return dates, nil
}

func parseEarningsDate(text string) (time.Time, bool) {
	parts := strings.Split(strings.TrimSpace(text), ",")
	if len(parts) < 2 {
		return time.Time{}, false
	}
	t, err := time.Parse(earningsDateLayout, strings.TrimSpace(parts[0])+", "+strings.TrimSpace(parts[1]))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
