package formula

import (
	"fmt"

	"kformula/internal/series"
)

// Count emits, for each admissible trailing position, how many of the last n
// observations ending at that position are true. For a boolean series of
// length L the output has length L−n; slot j covers observations j+1..j+n,
// so the very first window of the series is never counted; that is the
// legacy surface downstream formulas index against. Undefined observations
// count as not true.
//
// The counts are maintained incrementally, adding the observation entering
// the window and subtracting the one leaving it, so the whole pass is O(L).
// That naturally fills every slot, including the first one the legacy
// descending scan left unassigned; its value is exactly what that scan would
// have produced had it reached it.
func Count(cond *series.Bool, n int) (*series.Numeric, error) {
	if n <= 0 {
		return nil, fmt.Errorf("count: window %d must be positive: %w", n, series.ErrInvalidParameter)
	}
	size := cond.Len() - n
	if size < 0 {
		return nil, fmt.Errorf("count: window %d exceeds history %d: %w", n, cond.Len(), series.ErrInsufficientData)
	}
	values := cond.Values()
	out := make([]float64, size)
	running := 0
	for i := 1; i <= n && i < len(values); i++ {
		if values[i] == series.TriTrue {
			running++
		}
	}
	for j := 0; j < size; j++ {
		if j > 0 {
			if values[j] == series.TriTrue {
				running--
			}
			if values[j+n] == series.TriTrue {
				running++
			}
		}
		out[j] = float64(running)
	}
	return series.NewDerived(out, series.Recipe{
		Transform: "count",
		Args:      []float64{float64(n)},
	}), nil
}

// Every is true exactly where all n observations of the trailing window are
// true, i.e. where Count equals n.
func Every(cond *series.Bool, n int) (*series.Bool, error) {
	counts, err := Count(cond, n)
	if err != nil {
		return nil, err
	}
	out := make([]bool, counts.Len())
	for i := range out {
		out[i] = counts.At(i) == float64(n)
	}
	return series.NewBool(out), nil
}
