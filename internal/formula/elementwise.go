package formula

import (
	"fmt"
	"math"

	"kformula/internal/series"
)

// Elementwise utilities. Each maps values positionally; NaN propagates
// unless the operation's sanitization policy says otherwise.

// Ceiling rounds every value up to the nearest integer. Idempotent.
func Ceiling(s *series.Numeric) *series.Numeric {
	out := s.Values()
	for i, v := range out {
		out[i] = math.Ceil(v)
	}
	return series.NewDerived(out, series.Recipe{Transform: "ceiling"})
}

// Abs takes the absolute value of every observation. Like the windowed sum,
// it folds both infinities to 0 first.
func Abs(s *series.Numeric) *series.Numeric {
	out := s.Values()
	for i, v := range out {
		if math.IsInf(v, 0) {
			v = 0
		}
		out[i] = math.Abs(v)
	}
	return series.NewDerived(out, series.Recipe{Transform: "abs"})
}

// Power raises every observation to the scalar exponent n.
func Power(s *series.Numeric, n float64) *series.Numeric {
	out := s.Values()
	for i, v := range out {
		out[i] = math.Pow(v, n)
	}
	return series.NewDerived(out, series.Recipe{Transform: "power", Args: []float64{n}})
}

// SquareRoot takes the square root of every observation. Negative values
// come back NaN.
func SquareRoot(s *series.Numeric) *series.Numeric {
	out := s.Values()
	for i, v := range out {
		out[i] = math.Sqrt(v)
	}
	return series.NewDerived(out, series.Recipe{Transform: "sqrt"})
}

// Sum is the n-bar windowed sum, dispatched through the transform table so
// it shares the ±Inf→0 sanitization and warmup contract.
func Sum(s *series.Numeric, n int) (*series.Numeric, error) {
	return Apply1(KindSum, s, n)
}

// Minimum takes the positional minimum of two aligned series.
func Minimum(s1, s2 *series.Numeric) (*series.Numeric, error) {
	return pairwise(s1, s2, "minimum", math.Min)
}

// Maximum takes the positional maximum of two aligned series.
func Maximum(s1, s2 *series.Numeric) (*series.Numeric, error) {
	return pairwise(s1, s2, "maximum", math.Max)
}

func pairwise(s1, s2 *series.Numeric, name string, pick func(a, b float64) float64) (*series.Numeric, error) {
	if s1.Len() == 0 || s2.Len() == 0 {
		return nil, fmt.Errorf("%s: empty input: %w", name, series.ErrInsufficientData)
	}
	s1, s2, err := series.Fit2(s1, s2)
	if err != nil {
		return nil, err
	}
	out := make([]float64, s1.Len())
	for i := range out {
		out[i] = pick(s1.At(i), s2.At(i))
	}
	return series.NewDerived(out, series.Recipe{Transform: name}), nil
}

// IIf selects a[i] where cond[i] is true and b[i] where it is false, after
// trailing-aligning all three inputs. An undefined condition yields an
// undefined value rather than silently taking either branch.
func IIf(cond *series.Bool, a, b *series.Numeric) (*series.Numeric, error) {
	cond, a, b, err := series.FitBoolNumeric2(cond, a, b)
	if err != nil {
		return nil, err
	}
	out := make([]float64, cond.Len())
	for i := range out {
		switch cond.At(i) {
		case series.TriTrue:
			out[i] = a.At(i)
		case series.TriFalse:
			out[i] = b.At(i)
		default:
			out[i] = math.NaN()
		}
	}
	return series.NewDerived(out, series.Recipe{Transform: "iif"}), nil
}

// ConstScalar broadcasts a scalar into a length-1 series.
func ConstScalar(v float64) *series.Numeric {
	return series.NewDerived([]float64{v}, series.Recipe{Transform: "const"})
}

// ConstSlice wraps a raw sequence as a series. The buffer is copied, never
// aliased.
func ConstSlice(values []float64) *series.Numeric {
	return series.NewDerived(values, series.Recipe{Transform: "const"})
}

// ConstSeries is a copying pass-through of an existing series.
func ConstSeries(s *series.Numeric) *series.Numeric {
	return series.NewDerived(s.Values(), s.Recipe())
}

// Ref is the "value n bars ago" view: the series shifted n observations into
// the past, with its derivation recipe offset accordingly.
func Ref(s *series.Numeric, n int) (*series.Numeric, error) {
	return s.Shift(n)
}
