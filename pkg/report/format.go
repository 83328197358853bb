// Package report renders a scan result for people: terminal tables, CSV,
// pretty JSON and an HTML page.
package report

import (
	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

const NA = "N/A"

const quoteURLPrefix = "https://finance.yahoo.com/quote/"

// QuoteURL links to the symbol's quote page.
func QuoteURL(symbol string) string {
	return quoteURLPrefix + symbol
}

// Fixed2 formats v with two decimals, or N/A.
func Fixed2(v *float64) string {
	if v == nil {
		return NA
	}
	return decimal.NewFromFloat(*v).StringFixed(2)
}

// Money formats v as dollars and cents, or N/A.
func Money(v *float64) string {
	if v == nil {
		return NA
	}
	return "$" + Fixed2(v)
}

// Percent formats v as "12.34%", or N/A.
func Percent(v *float64) string {
	if v == nil {
		return NA
	}
	return Fixed2(v) + "%"
}

// SignedPercent formats a price-vs-average gap with one decimal and an
// explicit sign when positive.
func SignedPercent(v float64) string {
	s := decimal.NewFromFloat(v).StringFixed(1) + "%"
	if v > 0 {
		return "+" + s
	}
	return s
}

// MarketCap formats whole dollars with thousands separators, or N/A.
func MarketCap(v *float64) string {
	if v == nil {
		return NA
	}
	return "$" + humanize.Comma(decimal.NewFromFloat(*v).Round(0).IntPart())
}

// MovingAverage marks the average green when the price is above it, red
// otherwise.
func MovingAverage(price, ma *float64) string {
	if price == nil || ma == nil || *price == 0 || *ma == 0 {
		return NA
	}
	marker := "🔴"
	if *price > *ma {
		marker = "🟢"
	}
	return marker + " " + Money(ma)
}
