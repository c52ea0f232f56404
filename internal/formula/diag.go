package formula

import (
	"math"

	"kformula/internal/config"
	"kformula/internal/series"
)

// ZigDefault runs zigzag pivot detection with the configured default
// reversal threshold, for formulas that do not name one.
func ZigDefault(s *series.Numeric, opts config.Options) (*series.Numeric, []Pivot, error) {
	return Zig(s, opts.Normalize().ZigThresholdPct)
}

// Equal reports whether two derived series agree within eps at every
// position. Both series must have the same length; NaN agrees with NaN,
// since "not yet computable" is a value of the contract, not a mismatch.
func Equal(a, b *series.Numeric, eps float64) bool {
	if a.Len() != b.Len() {
		return false
	}
	for i := 0; i < a.Len(); i++ {
		x, y := a.At(i), b.At(i)
		if math.IsNaN(x) || math.IsNaN(y) {
			if math.IsNaN(x) != math.IsNaN(y) {
				return false
			}
			continue
		}
		if math.Abs(x-y) > eps {
			return false
		}
	}
	return true
}
