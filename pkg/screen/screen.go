// Package screen decides which earnings candidates trade below their
// analyst target with acceptable earnings, and summarises the survivors.
package screen

import (
	"sort"
	"strconv"

	"earnscan/pkg/earnings"
	"earnscan/pkg/fundamentals"
)

const (
	ReasonNoData        = "Could not fetch data"
	ReasonPriceAtTarget = "Price >= Target"
	ReasonMissingData   = "Missing data"
)

// Candidate is an earnings record with its snapshot. Snapshot is nil when
// fundamentals could not be fetched.
type Candidate struct {
	Record   earnings.Record
	Snapshot *fundamentals.Snapshot
}

// Opportunity is an accepted candidate.
type Opportunity struct {
	earnings.Record
	Snapshot *fundamentals.Snapshot
	// UpsidePercent is (target - price) / price * 100, nil when price <= 0.
	UpsidePercent *float64
}

// Rejection records why a candidate was not accepted. The price, target and
// EPS fields are zero-valued when the snapshot was missing.
type Rejection struct {
	Symbol       string
	CurrentPrice *float64
	TargetPrice  *float64
	EPS          *float64
	Reason       string
}

// Outcome is the result of screening a batch.
type Outcome struct {
	Opportunities []Opportunity
	Rejections    []Rejection
}

// Classify accepts a candidate when price and target are both present,
// price < target, and EPS >= minEPS. Otherwise it returns the first
// applicable rejection reason.
func Classify(c Candidate, minEPS float64) (*Opportunity, *Rejection) {
	s := c.Snapshot
	if s == nil {
		return nil, &Rejection{Symbol: c.Record.Symbol, Reason: ReasonNoData}
	}

	eps := s.EPS()
	price, target := s.CurrentPrice, s.TargetPrice
	if price != nil && target != nil && *price < *target && eps >= minEPS {
		return &Opportunity{Record: c.Record, Snapshot: s, UpsidePercent: Upside(price, target)}, nil
	}

	rej := &Rejection{
		Symbol:       c.Record.Symbol,
		CurrentPrice: price,
		TargetPrice:  target,
		EPS:          &eps,
	}
	switch {
	case price != nil && target != nil && *price >= *target:
		rej.Reason = ReasonPriceAtTarget
	case eps < minEPS:
		rej.Reason = "EPS too low (" + strconv.FormatFloat(eps, 'f', -1, 64) + ")"
	default:
		rej.Reason = ReasonMissingData
	}
	return nil, rej
}

// Upside returns the percent gain from price to target, or nil when either
// is missing or price is not positive.
func Upside(price, target *float64) *float64 {
	if price == nil || target == nil || *price <= 0 {
		return nil
	}
	u := (*target - *price) / *price * 100
	return &u
}

// Evaluate classifies every candidate in order and sorts the accepted ones
// by upside. It has no side effects.
func Evaluate(candidates []Candidate, minEPS float64) Outcome {
	var out Outcome
	for _, c := range candidates {
		opp, rej := Classify(c, minEPS)
		if opp != nil {
			out.Opportunities = append(out.Opportunities, *opp)
			continue
		}
		out.Rejections = append(out.Rejections, *rej)
	}
	SortByUpside(out.Opportunities)
	return out
}

// SortByUpside orders opportunities by descending upside, a missing upside
// counting as zero. Ties keep their input order.
func SortByUpside(opps []Opportunity) {
	sort.SliceStable(opps, func(i, j int) bool {
		return upsideOrZero(opps[i]) > upsideOrZero(opps[j])
	})
}

// Top returns at most n opportunities from the front of opps.
func Top(opps []Opportunity, n int) []Opportunity {
	if n < 0 {
		n = 0
	}
	if len(opps) < n {
		n = len(opps)
	}
	return opps[:n]
}

func upsideOrZero(o Opportunity) float64 {
	if o.UpsidePercent == nil {
		return 0
	}
	return *o.UpsidePercent
}
