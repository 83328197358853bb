package fundamentals

const (
	ShortWindow = 50
	LongWindow  = 200
)

// TrailingMean averages the last n closes. It returns nil when fewer than n
// closes are available.
func TrailingMean(closes []float64, n int) *float64 {
	if n <= 0 || len(closes) < n {
		return nil
	}
	sum := 0.0
	for _, c := range closes[len(closes)-n:] {
		sum += c
	}
	mean := sum / float64(n)
	return &mean
}

// above reports price > ma when both are present and non-zero.
func above(price, ma *float64) *bool {
	if price == nil || ma == nil || *price == 0 || *ma == 0 {
		return nil
	}
	v := *price > *ma
	return &v
}
