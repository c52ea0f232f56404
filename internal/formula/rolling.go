package formula

import (
	"fmt"
	"math"

	"kformula/internal/series"
)

// Sliding-window extremum statistics. For a series of length L and window n
// the output has length L-n+1: one value per full window, sliding by one
// bar. Ties break to the earliest occurrence, matching conventional
// argmax/argmin. A window touching an undefined value is itself undefined:
// the extremum comes back NaN and the offset points at the first undefined
// position, the same answers a max/argmax reduction over the raw window
// would give. A monotonic deque keeps the whole pass O(L); talib's
// MinMaxIndex fixes neither this output length nor the tie-break, so the
// deque is implemented here.

// Highest emits the maximum value of every n-bar window.
func Highest(s *series.Numeric, n int) (*series.Numeric, error) {
	return rollingExtreme(s, n, "highest", true, false)
}

// Lowest emits the minimum value of every n-bar window.
func Lowest(s *series.Numeric, n int) (*series.Numeric, error) {
	return rollingExtreme(s, n, "lowest", false, false)
}

// BarsSinceHighest emits, for every n-bar window, the offset from the window
// start of the first occurrence of the maximum.
func BarsSinceHighest(s *series.Numeric, n int) (*series.Numeric, error) {
	return rollingExtreme(s, n, "bars_since_highest", true, true)
}

// BarsSinceLowest emits, for every n-bar window, the offset from the window
// start of the first occurrence of the minimum.
func BarsSinceLowest(s *series.Numeric, n int) (*series.Numeric, error) {
	return rollingExtreme(s, n, "bars_since_lowest", false, true)
}

func rollingExtreme(s *series.Numeric, n int, name string, wantMax, wantOffset bool) (*series.Numeric, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%s: window %d must be positive: %w", name, n, series.ErrInvalidParameter)
	}
	if n > s.Len() {
		return nil, fmt.Errorf("%s: window %d exceeds history %d: %w", name, n, s.Len(), series.ErrInsufficientData)
	}
	values := s.Values()
	out := make([]float64, len(values)-n+1)

	// Deque of defined candidate indices, front to back in window order.
	// Values at the indices are strictly decreasing (max) or increasing
	// (min); equal values are kept so the front stays the earliest
	// occurrence. Undefined positions are tracked separately: while any sits
	// in the window, the window's result is undefined.
	deque := make([]int, 0, n)
	nans := make([]int, 0, n)
	better := func(a, b float64) bool {
		if wantMax {
			return a < b
		}
		return a > b
	}
	for i, v := range values {
		if math.IsNaN(v) {
			nans = append(nans, i)
		} else {
			for len(deque) > 0 && better(values[deque[len(deque)-1]], v) {
				deque = deque[:len(deque)-1]
			}
			deque = append(deque, i)
		}
		start := i - n + 1
		if len(deque) > 0 && deque[0] < start {
			deque = deque[1:]
		}
		if len(nans) > 0 && nans[0] < start {
			nans = nans[1:]
		}
		if start < 0 {
			continue
		}
		switch {
		case len(nans) > 0:
			if wantOffset {
				out[start] = float64(nans[0] - start)
			} else {
				out[start] = math.NaN()
			}
		case wantOffset:
			out[start] = float64(deque[0] - start)
		default:
			out[start] = values[deque[0]]
		}
	}
	return series.NewDerived(out, series.Recipe{
		Transform: name,
		Args:      []float64{float64(n)},
	}), nil
}
