package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/tidwall/pretty"

	"earnscan/pkg/pipeline"
	"earnscan/pkg/screen"
)

type jsonReport struct {
	RunID         string            `json:"run_id"`
	Start         string            `json:"start"`
	End           string            `json:"end"`
	MinEPS        float64           `json:"min_eps"`
	Candidates    int               `json:"candidates"`
	Summary       jsonSummary       `json:"summary"`
	Opportunities []jsonOpportunity `json:"opportunities"`
	Rejections    []jsonRejection   `json:"rejections"`
}

type jsonSummary struct {
	AverageUpside   *float64 `json:"average_upside,omitempty"`
	MaxUpside       *float64 `json:"max_upside,omitempty"`
	AverageEPS      *float64 `json:"average_eps,omitempty"`
	AboveBothMAs    int      `json:"above_both_mas"`
	Above200Only    int      `json:"above_200_only"`
	WithTrend       int      `json:"with_trend"`
	PercentAbove200 float64  `json:"percent_above_200"`
}

type jsonOpportunity struct {
	Symbol        string   `json:"symbol"`
	Company       string   `json:"company"`
	EarningsDate  string   `json:"earnings_date"`
	EPSEstimate   *float64 `json:"eps_estimate"`
	Sector        string   `json:"sector"`
	Industry      string   `json:"industry"`
	CurrentPrice  *float64 `json:"current_price"`
	TargetPrice   *float64 `json:"target_price"`
	UpsidePercent *float64 `json:"upside_percent"`
	EPSTrailing   *float64 `json:"eps_trailing"`
	EPSForward    *float64 `json:"eps_forward"`
	PERatio       *float64 `json:"pe_ratio"`
	MarketCap     *float64 `json:"market_cap"`
	MA50          *float64 `json:"ma_50"`
	MA200         *float64 `json:"ma_200"`
	AboveMA50     *bool    `json:"above_ma_50"`
	AboveMA200    *bool    `json:"above_ma_200"`
	MAStatus      string   `json:"ma_status,omitempty"`
	URL           string   `json:"url"`
}

type jsonRejection struct {
	Symbol       string   `json:"symbol"`
	CurrentPrice *float64 `json:"current_price,omitempty"`
	TargetPrice  *float64 `json:"target_price,omitempty"`
	EPS          *float64 `json:"eps,omitempty"`
	Reason       string   `json:"reason"`
}

// WriteJSON writes the whole result as indented JSON.
func WriteJSON(w io.Writer, res *pipeline.Result) error {
	out := jsonReport{
		RunID:         res.RunID,
		Start:         res.Range.Start.Format("2006-01-02"),
		End:           res.Range.End.Format("2006-01-02"),
		MinEPS:        res.MinEPS,
		Candidates:    len(res.Records),
		Opportunities: []jsonOpportunity{},
		Rejections:    []jsonRejection{},
		Summary: jsonSummary{
			AverageUpside:   res.Summary.AverageUpside,
			MaxUpside:       res.Summary.MaxUpside,
			AverageEPS:      res.Summary.AverageEPS,
			AboveBothMAs:    res.Summary.AboveBoth,
			Above200Only:    res.Summary.Above200Only,
			WithTrend:       res.Summary.WithTrend,
			PercentAbove200: res.Summary.PercentAbove200,
		},
	}

	for _, o := range res.Outcome.Opportunities {
		s := o.Snapshot
		jo := jsonOpportunity{
			Symbol:        o.Symbol,
			Company:       o.Company,
			EarningsDate:  o.Date.Format("2006-01-02"),
			EPSEstimate:   o.EPSEstimate,
			Sector:        s.Sector,
			Industry:      s.Industry,
			CurrentPrice:  s.CurrentPrice,
			TargetPrice:   s.TargetPrice,
			UpsidePercent: o.UpsidePercent,
			EPSTrailing:   s.EPSTrailing,
			EPSForward:    s.EPSForward,
			PERatio:       s.PERatio,
			MarketCap:     s.MarketCap,
			MA50:          s.MA50,
			MA200:         s.MA200,
			AboveMA50:     s.AboveMA50,
			AboveMA200:    s.AboveMA200,
			URL:           QuoteURL(o.Symbol),
		}
		if t, ok := screen.TrendOf(o); ok {
			jo.MAStatus = t.Status.String()
		}
		out.Opportunities = append(out.Opportunities, jo)
	}
	for _, r := range res.Outcome.Rejections {
		out.Rejections = append(out.Rejections, jsonRejection{
			Symbol:       r.Symbol,
			CurrentPrice: r.CurrentPrice,
			TargetPrice:  r.TargetPrice,
			EPS:          r.EPS,
			Reason:       r.Reason,
		})
	}

	data, err := json.Marshal(out)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	_, err = w.Write(pretty.Pretty(data))
	return err
}
