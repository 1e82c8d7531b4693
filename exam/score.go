package exam

import (
	"strings"

	"github.com/shopspring/decimal"
)

// mismatchTolerance is the largest difference between a supplied total and
// the computed total that is still treated as agreement.
var mismatchTolerance = decimal.NewFromFloat(0.01)

var two = decimal.NewFromInt(2)

// ComputeTotal returns the average of the two sub-scores rounded to two
// decimal places. Rounding is half-away-from-zero on the decimal
// representation, so 8.125 becomes 8.13 rather than whatever the nearest
// float64 happens to be. The system is the sole authority on totals: any
// total carried in source data is discarded in favor of this value.
func ComputeTotal(written, practical decimal.Decimal) decimal.Decimal {
	return written.Add(practical).Div(two).Round(2)
}

// ParseScore converts a raw spreadsheet cell into a score. Empty cells and
// anything that does not parse as a finite decimal number come back as zero.
// Coercing bad cells to zero (rather than rejecting the row) mirrors the
// historical import behavior; it is a data-cleaning policy choice, so rows
// with junk score cells are still accepted with zero scores.
func ParseScore(cell string) decimal.Decimal {
	d, ok := parseOptionalScore(cell)
	if !ok {
		return decimal.Zero
	}
	return d
}

// parseOptionalScore distinguishes "no value supplied" from a real number.
// Used for the supplied-total column, where an absent value must not be
// compared against the computed total.
func parseOptionalScore(cell string) (decimal.Decimal, bool) {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(cell)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}
