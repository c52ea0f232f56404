package formula

import (
	"fmt"
	"math"

	"kformula/internal/series"
)

// CrossOver detects a single-bar upward crossing: true at position i iff
// s1[i] > s2[i] and s1[i-1] <= s2[i-1] after trailing alignment. The output
// has the aligned length with position 0 undefined, since a crossing needs
// the previous bar. Positions where either side is NaN are undefined.
func CrossOver(s1, s2 *series.Numeric) (*series.Bool, error) {
	return cross(s1, s2, "cross_over", func(cur1, cur2, prev1, prev2 float64) bool {
		return cur1 > cur2 && prev1 <= prev2
	})
}

// CrossUnder is the downward mirror of CrossOver: true where s1 drops
// strictly below s2 having been at or above it on the previous bar. The
// legacy surface only exposed the upward form; the downward variant is
// symmetric.
func CrossUnder(s1, s2 *series.Numeric) (*series.Bool, error) {
	return cross(s1, s2, "cross_under", func(cur1, cur2, prev1, prev2 float64) bool {
		return cur1 < cur2 && prev1 >= prev2
	})
}

func cross(s1, s2 *series.Numeric, name string, hit func(cur1, cur2, prev1, prev2 float64) bool) (*series.Bool, error) {
	s1, s2, err := series.Fit2(s1, s2)
	if err != nil {
		return nil, err
	}
	if s1.Len() < 2 {
		return nil, fmt.Errorf("%s: need at least 2 observations, got %d: %w", name, s1.Len(), series.ErrInsufficientData)
	}
	out := make([]series.Tri, s1.Len())
	out[0] = series.TriUndef
	for i := 1; i < s1.Len(); i++ {
		cur1, cur2 := s1.At(i), s2.At(i)
		prev1, prev2 := s1.At(i-1), s2.At(i-1)
		// NaN comparisons are false both ways, which would report a silent
		// non-cross; keep the slot undefined instead.
		if math.IsNaN(cur1) || math.IsNaN(cur2) || math.IsNaN(prev1) || math.IsNaN(prev2) {
			out[i] = series.TriUndef
			continue
		}
		if hit(cur1, cur2, prev1, prev2) {
			out[i] = series.TriTrue
		}
	}
	return series.NewTriBool(out), nil
}
