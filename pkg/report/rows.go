package report

import (
	"earnscan/pkg/screen"
)

// OpportunityHeaders are the columns of the opportunity table and CSV.
var OpportunityHeaders = []string{
	"Symbol", "Company", "Earnings Date", "Sector", "Current Price", "Target Price",
	"Upside %", "50-Day MA", "200-Day MA", "EPS (Trailing)", "EPS (Forward)",
	"PE Ratio", "Market Cap",
}

// OpportunityRow formats one opportunity. Link is the quote URL the table
// shows in place of the bare symbol.
func OpportunityRow(o screen.Opportunity, link bool) []string {
	s := o.Snapshot
	symbol := o.Symbol
	if link {
		symbol = QuoteURL(o.Symbol)
	}
	return []string{
		symbol,
		o.Company,
		o.Date.Format("2006-01-02"),
		s.Sector,
		Money(s.CurrentPrice),
		Money(s.TargetPrice),
		Percent(o.UpsidePercent),
		MovingAverage(s.CurrentPrice, s.MA50),
		MovingAverage(s.CurrentPrice, s.MA200),
		Fixed2(s.EPSTrailing),
		Fixed2(s.EPSForward),
		Fixed2(s.PERatio),
		MarketCap(s.MarketCap),
	}
}

var TrendHeaders = []string{"Symbol", "Status", "Price vs 50-MA", "Price vs 200-MA"}

func TrendRow(t screen.Trend) []string {
	return []string{t.Symbol, t.Status.String(), SignedPercent(t.Vs50), SignedPercent(t.Vs200)}
}

var RejectionHeaders = []string{"Symbol", "Current Price", "Target Price", "EPS", "Reason"}

func RejectionRow(r screen.Rejection) []string {
	return []string{r.Symbol, Money(r.CurrentPrice), Money(r.TargetPrice), Fixed2(r.EPS), r.Reason}
}

// statusMarker is the colour dot shown next to a trend status.
func statusMarker(s screen.MAStatus) string {
	switch s {
	case screen.AboveBoth:
		return "🟢"
	case screen.Above200Only:
		return "🟡"
	case screen.Above50Only:
		return "🟠"
	case screen.BelowBoth:
		return "🔴"
	}
	return ""
}
