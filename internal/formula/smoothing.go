package formula

import (
	"fmt"
	"math"

	"kformula/internal/series"
)

// Smooth applies the recursive smoothing filter
//
//	result[0] = input[0]
//	result[i] = ((n-1)*result[i-1] + input[i]) / n
//
// strictly left to right. Unlike the windowed transforms, which propagate
// NaN, this filter zero-fills undefined and non-finite inputs before the
// recurrence: each output depends on every earlier output, so a single NaN
// would otherwise poison the whole tail. The recurrence is inherently
// sequential within one series; independent series may be smoothed
// concurrently.
func Smooth(s *series.Numeric, n int) (*series.Numeric, error) {
	if n <= 0 {
		return nil, fmt.Errorf("smooth: factor %d would divide by zero: %w", n, series.ErrInvalidParameter)
	}
	if s.Len() == 0 {
		return nil, fmt.Errorf("smooth: empty input: %w", series.ErrInsufficientData)
	}
	out := s.Values()
	for i, v := range out {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			out[i] = 0
		}
	}
	for i := 1; i < len(out); i++ {
		out[i] = (float64(n-1)*out[i-1] + out[i]) / float64(n)
	}
	return series.NewDerived(out, series.Recipe{
		Transform: "smooth",
		Args:      []float64{float64(n)},
	}), nil
}
