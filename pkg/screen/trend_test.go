package screen

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"earnscan/pkg/earnings"
	"earnscan/pkg/fundamentals"
)

func withMAs(symbol string, price, ma50, ma200 float64) Opportunity {
	return Opportunity{
		Record: earnings.Record{Symbol: symbol},
		Snapshot: &fundamentals.Snapshot{
			CurrentPrice: f(price),
			TargetPrice:  f(price * 1.2),
			EPSTrailing:  f(2),
			MA50:         f(ma50),
			MA200:        f(ma200),
		},
		UpsidePercent: f(20),
	}
}

func TestTrendOf(t *testing.T) {
	tests := []struct {
		o    Opportunity
		want MAStatus
		name string
	}{
		{withMAs("A", 110, 100, 100), AboveBoth, "Above Both MAs"},
		{withMAs("B", 110, 120, 100), Above200Only, "Above 200-Day MA"},
		{withMAs("C", 110, 100, 120), Above50Only, "Above 50-Day MA Only"},
		{withMAs("D", 90, 100, 100), BelowBoth, "Below Both MAs"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, ok := TrendOf(tt.o)
			require.True(t, ok)
			assert.Equal(t, tt.want, tr.Status)
			assert.Equal(t, tt.name, tr.Status.String())
		})
	}

	tr, _ := TrendOf(withMAs("E", 110, 100, 200))
	assert.InDelta(t, 10.0, tr.Vs50, 1e-9)
	assert.InDelta(t, -45.0, tr.Vs200, 1e-9)

	missing := withMAs("F", 110, 100, 100)
	missing.Snapshot.MA200 = nil
	_, ok := TrendOf(missing)
	assert.False(t, ok)
}

func TestSummarize(t *testing.T) {
	a := withMAs("A", 110, 100, 100)
	a.UpsidePercent = f(30)
	b := withMAs("B", 110, 120, 100)
	b.UpsidePercent = f(10)
	c := withMAs("C", 90, 100, 100)
	c.UpsidePercent = nil
	c.Snapshot.EPSTrailing = f(5)
	d := Opportunity{Record: earnings.Record{Symbol: "D"}, Snapshot: &fundamentals.Snapshot{EPSForward: f(1)}, UpsidePercent: f(2)}

	s := Summarize(Outcome{
		Opportunities: []Opportunity{a, b, c, d},
		Rejections:    []Rejection{{Symbol: "Z", Reason: ReasonNoData}},
	})

	assert.Equal(t, 5, s.Candidates)
	assert.Equal(t, 4, s.Opportunities)
	assert.Equal(t, 1, s.Rejected)
	assert.InDelta(t, 14.0, *s.AverageUpside, 1e-9)
	assert.InDelta(t, 30.0, *s.MaxUpside, 1e-9)
	assert.InDelta(t, 2.5, *s.AverageEPS, 1e-9)
	assert.Equal(t, 3, s.WithTrend)
	assert.Equal(t, 1, s.AboveBoth)
	assert.Equal(t, 1, s.Above200Only)
	assert.InDelta(t, 66.666, s.PercentAbove200, 0.01)
}

func TestSummarize_NoOpportunities(t *testing.T) {
	s := Summarize(Outcome{Rejections: []Rejection{{Symbol: "Z"}}})
	assert.Equal(t, 1, s.Candidates)
	assert.Nil(t, s.AverageUpside)
	assert.Nil(t, s.MaxUpside)
	assert.Zero(t, s.PercentAbove200)
}

func TestDistribution(t *testing.T) {
	d1 := time.Date(2025, 10, 30, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2025, 10, 28, 0, 0, 0, 0, time.UTC)
	got := Distribution([]earnings.Record{
		{Symbol: "A", Date: d1},
		{Symbol: "B", Date: d2},
		{Symbol: "C", Date: d1},
	})
	require.Len(t, got, 2)
	assert.Equal(t, DateCount{Date: d2, Count: 1}, got[0])
	assert.Equal(t, DateCount{Date: d1, Count: 2}, got[1])
}
