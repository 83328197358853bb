package earnings

import (
	"context"

	"go.uber.org/zap"

	"earnscan/pkg/daterange"
)

// MinResults is the fewest records the primary source must produce before
// the secondary is consulted.
const MinResults = 5

// Fallback runs Primary and, when it yields fewer than Min records, returns
// Secondary's result instead.
type Fallback struct {
	Primary   Source
	Secondary Source
	Min       int
	Logger    *zap.Logger
}

func NewFallback(primary, secondary Source, logger *zap.Logger) *Fallback {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Fallback{Primary: primary, Secondary: secondary, Min: MinResults, Logger: logger}
}

func (f *Fallback) Discover(ctx context.Context, r daterange.Range) ([]Record, error) {
	records, err := f.Primary.Discover(ctx, r)
	if err != nil {
		return nil, err
	}
	if len(records) >= f.Min {
		return records, nil
	}

	f.Logger.Info("calendar scrape came up short, polling symbol universe",
		zap.Int("found", len(records)), zap.Int("min", f.Min))
	return f.Secondary.Discover(ctx, r)
}
