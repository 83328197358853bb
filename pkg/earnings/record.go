// Package earnings discovers which companies report earnings inside a date
// window, either by scraping the public calendar page or by polling a fixed
// universe of symbols.
package earnings

import (
	"context"
	"time"

	"earnscan/pkg/daterange"
)

// Record is one company reporting on one date.
type Record struct {
	Symbol      string
	Company     string
	EPSEstimate *float64
	Date        time.Time
}

// Key identifies a record. A symbol appears at most once per date.
type Key struct {
	Symbol string
	Date   string
}

func (r Record) Key() Key {
	return Key{Symbol: r.Symbol, Date: r.Date.Format("2006-01-02")}
}

// Source discovers earnings records for a window. Provider failures are
// absorbed; the error is only ctx.Err() on cancellation.
type Source interface {
	Discover(ctx context.Context, r daterange.Range) ([]Record, error)
}

// collector accumulates records and drops repeats of a (symbol, date) key.
type collector struct {
	seen    map[Key]struct{}
	records []Record
}

func newCollector() *collector {
	return &collector{seen: make(map[Key]struct{})}
}

func (c *collector) add(rec Record) bool {
	k := rec.Key()
	if _, ok := c.seen[k]; ok {
		return false
	}
	c.seen[k] = struct{}{}
	c.records = append(c.records, rec)
	return true
}

// Dedupe removes repeated (symbol, date) records, keeping the first.
func Dedupe(records []Record) []Record {
	c := newCollector()
	for _, r := range records {
		c.add(r)
	}
	return c.records
}
