package screen

import (
	"sort"
	"time"

	"earnscan/pkg/earnings"
)

// MAStatus places the price relative to both moving averages.
type MAStatus int

const (
	MAUnknown MAStatus = iota
	AboveBoth
	Above200Only
	Above50Only
	BelowBoth
)

func (s MAStatus) String() string {
	switch s {
	case AboveBoth:
		return "Above Both MAs"
	case Above200Only:
		return "Above 200-Day MA"
	case Above50Only:
		return "Above 50-Day MA Only"
	case BelowBoth:
		return "Below Both MAs"
	}
	return ""
}

// Trend is the moving-average view of one opportunity.
type Trend struct {
	Symbol string
	Status MAStatus
	// Vs50 and Vs200 are price / MA - 1, as a percentage.
	Vs50  float64
	Vs200 float64
}

// TrendOf needs a price and both averages, all non-zero. ok is false
// otherwise.
func TrendOf(o Opportunity) (t Trend, ok bool) {
	s := o.Snapshot
	if s == nil || s.CurrentPrice == nil || s.MA50 == nil || s.MA200 == nil {
		return Trend{}, false
	}
	price, ma50, ma200 := *s.CurrentPrice, *s.MA50, *s.MA200
	if price == 0 || ma50 == 0 || ma200 == 0 {
		return Trend{}, false
	}

	t = Trend{
		Symbol: o.Symbol,
		Vs50:   (price/ma50 - 1) * 100,
		Vs200:  (price/ma200 - 1) * 100,
	}
	above50, above200 := price > ma50, price > ma200
	switch {
	case above50 && above200:
		t.Status = AboveBoth
	case above200:
		t.Status = Above200Only
	case above50:
		t.Status = Above50Only
	default:
		t.Status = BelowBoth
	}
	return t, true
}

// Trends returns the trend of every opportunity that has one.
func Trends(opps []Opportunity) []Trend {
	var out []Trend
	for _, o := range opps {
		if t, ok := TrendOf(o); ok {
			out = append(out, t)
		}
	}
	return out
}

// Summary holds the headline numbers for a set of opportunities.
type Summary struct {
	Candidates    int
	Opportunities int
	Rejected      int

	// AverageUpside is the mean of the positive upsides, nil if none.
	AverageUpside *float64
	MaxUpside     *float64
	AverageEPS    *float64

	WithTrend       int
	AboveBoth       int
	Above200Only    int
	PercentAbove200 float64
}

func Summarize(out Outcome) Summary {
	s := Summary{
		Candidates:    len(out.Opportunities) + len(out.Rejections),
		Opportunities: len(out.Opportunities),
		Rejected:      len(out.Rejections),
	}
	if len(out.Opportunities) == 0 {
		return s
	}

	var posSum, epsSum float64
	var posN int
	maxUp := upsideOrZero(out.Opportunities[0])
	for _, o := range out.Opportunities {
		u := upsideOrZero(o)
		if u > 0 {
			posSum += u
			posN++
		}
		if u > maxUp {
			maxUp = u
		}
		epsSum += o.Snapshot.EPS()
	}
	if posN > 0 {
		avg := posSum / float64(posN)
		s.AverageUpside = &avg
	}
	avgEPS := epsSum / float64(len(out.Opportunities))
	s.MaxUpside = &maxUp
	s.AverageEPS = &avgEPS

	for _, t := range Trends(out.Opportunities) {
		s.WithTrend++
		switch t.Status {
		case AboveBoth:
			s.AboveBoth++
		case Above200Only:
			s.Above200Only++
		}
	}
	if s.WithTrend > 0 {
		s.PercentAbove200 = float64(s.AboveBoth+s.Above200Only) / float64(s.WithTrend) * 100
	}
	return s
}

// DateCount is the number of records reporting on one date.
type DateCount struct {
	Date  time.Time
	Count int
}

// Distribution counts records per earnings date, ascending by date.
func Distribution(records []earnings.Record) []DateCount {
	idx := map[string]int{}
	var out []DateCount
	for _, r := range records {
		k := r.Date.Format("2006-01-02")
		if i, ok := idx[k]; ok {
			out[i].Count++
			continue
		}
		idx[k] = len(out)
		out = append(out, DateCount{Date: r.Date, Count: 1})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}
