package earnings

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"earnscan/pkg/daterange"
)

type staticSource struct {
	records []Record
	calls   int
}

func (s *staticSource) Discover(context.Context, daterange.Range) ([]Record, error) {
	s.calls++
	return s.records, nil
}

func records(n int) []Record {
	out := make([]Record, n)
	for i := range out {
		out[i] = Record{Symbol: fmt.Sprintf("S%d", i), Date: day(2025, 10, 30)}
	}
	return out
}

func TestFallback(t *testing.T) {
	tests := []struct {
		name          string
		primary       int
		wantSecondary bool
	}{
		{"none", 0, true},
		{"four", 4, true},
		{"five", 5, false},
		{"many", 40, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			primary := &staticSource{records: records(tt.primary)}
			secondary := &staticSource{records: records(2)}

			got, err := NewFallback(primary, secondary, nil).Discover(context.Background(), daterange.Range{})
			require.NoError(t, err)

			if tt.wantSecondary {
				assert.Len(t, got, 2)
				assert.Equal(t, 1, secondary.calls)
			} else {
				assert.Len(t, got, tt.primary)
				assert.Zero(t, secondary.calls)
			}
		})
	}
}

func TestDedupe(t *testing.T) {
	in := []Record{
		{Symbol: "AAPL", Company: "first", Date: day(2025, 10, 30)},
		{Symbol: "AAPL", Company: "second", Date: day(2025, 10, 30)},
		{Symbol: "AAPL", Date: day(2025, 10, 31)},
	}
	out := Dedupe(in)
	require.Len(t, out, 2)
	assert.Equal(t, "first", out[0].Company)
}
