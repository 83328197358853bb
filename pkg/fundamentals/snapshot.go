// Package fundamentals builds a point-in-time snapshot of price, analyst
// target, earnings and trend for one symbol.
package fundamentals

// Snapshot is what the screen needs to judge one symbol. Pointer fields are
// nil when the provider did not report a value.
type Snapshot struct {
	Symbol  string
	Company string

	CurrentPrice *float64
	TargetPrice  *float64
	EPSTrailing  *float64
	EPSForward   *float64
	PERatio      *float64
	MarketCap    *float64

	Sector   string
	Industry string

	MA50       *float64
	MA200      *float64
	AboveMA50  *bool
	AboveMA200 *bool
}

// EPS is the trailing figure, else the forward one, else zero.
func (s *Snapshot) EPS() float64 {
	switch {
	case s.EPSTrailing != nil:
		return *s.EPSTrailing
	case s.EPSForward != nil:
		return *s.EPSForward
	}
	return 0
}
