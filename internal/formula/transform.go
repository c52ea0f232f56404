// Package formula implements the indicator computation kernel: talib-backed
// transforms over numeric series, rolling-window statistics, condition
// counting, cross-event detection, a recursive smoothing filter, and zigzag
// pivot queries. All operations are pure functions over immutable inputs;
// sanitization always happens on a private copy of the caller's buffer.
package formula

import (
	"fmt"
	"math"

	talib "github.com/markcheno/go-talib"

	"kformula/internal/series"
)

// Kind identifies a transform in the closed dispatch table. Each kind fixes
// its own sanitization mode and lookback, so the parameter contract is
// uniform across the family instead of living in per-indicator subclasses.
type Kind int

const (
	KindMA Kind = iota
	KindWMA
	KindEMA
	KindStdDev
	KindSum
	KindCCI
)

type sanitizeMode int

const (
	// infToNaN replaces +Inf with NaN; the moving-average family treats
	// non-finite input as "not yet computable".
	infToNaN sanitizeMode = iota
	// infToZero replaces both infinities with 0; summation-style transforms
	// fold non-finite input away instead of propagating it.
	infToZero
)

type transformSpec struct {
	name     string
	sanitize sanitizeMode
	// lookback is the number of leading positions that stay undefined for a
	// window parameter of arg.
	lookback func(arg int) int
	fn       func(in []float64, arg int) []float64
}

var oneArgTransforms = map[Kind]transformSpec{
	KindMA: {
		name:     "ma",
		sanitize: infToNaN,
		lookback: func(arg int) int { return arg - 1 },
		fn:       talib.Sma,
	},
	KindWMA: {
		name:     "wma",
		sanitize: infToNaN,
		lookback: func(arg int) int { return arg - 1 },
		fn:       talib.Wma,
	},
	KindEMA: {
		name:     "ema",
		sanitize: infToNaN,
		lookback: func(arg int) int { return arg - 1 },
		fn:       talib.Ema,
	},
	KindStdDev: {
		name:     "stddev",
		sanitize: infToNaN,
		lookback: func(arg int) int { return arg - 1 },
		fn: func(in []float64, arg int) []float64 {
			return talib.StdDev(in, arg, 1.0)
		},
	},
	KindSum: {
		name:     "sum",
		sanitize: infToZero,
		lookback: func(arg int) int { return arg - 1 },
		fn:       talib.Sum,
	},
}

// Apply1 runs a one-parameter transform over s. The output has the same
// length as the input with the first lookback positions undefined, and
// carries a recipe of (transform id, arg).
func Apply1(kind Kind, s *series.Numeric, arg int) (*series.Numeric, error) {
	spec, ok := oneArgTransforms[kind]
	if !ok {
		return nil, fmt.Errorf("apply1: unknown transform kind %d: %w", kind, series.ErrInvalidParameter)
	}
	if arg <= 0 {
		return nil, fmt.Errorf("%s: window %d must be positive: %w", spec.name, arg, series.ErrInvalidParameter)
	}
	if s.Len() == 0 {
		return nil, fmt.Errorf("%s: empty input: %w", spec.name, series.ErrInsufficientData)
	}
	if arg > s.Len() {
		return nil, fmt.Errorf("%s: window %d exceeds history %d: %w", spec.name, arg, s.Len(), series.ErrInsufficientData)
	}
	in := sanitize(s.Values(), spec.sanitize)
	out, err := safeCall(spec.name, func() []float64 { return spec.fn(in, arg) })
	if err != nil {
		return nil, err
	}
	markWarmup(out, spec.lookback(arg))
	return series.NewDerived(out, series.Recipe{
		Transform: spec.name,
		Args:      []float64{float64(arg)},
	}), nil
}

// Apply2 runs a two-parameter transform. StdDev takes (window, deviation
// multiple); the recursive smoothing filter lives in Smooth and is not part
// of this table because its second legacy parameter is unused.
func Apply2(kind Kind, s *series.Numeric, arg1 int, arg2 float64) (*series.Numeric, error) {
	if kind != KindStdDev {
		return nil, fmt.Errorf("apply2: transform kind %d takes one parameter: %w", kind, series.ErrInvalidParameter)
	}
	if arg1 <= 0 {
		return nil, fmt.Errorf("stddev: window %d must be positive: %w", arg1, series.ErrInvalidParameter)
	}
	if s.Len() == 0 {
		return nil, fmt.Errorf("stddev: empty input: %w", series.ErrInsufficientData)
	}
	if arg1 > s.Len() {
		return nil, fmt.Errorf("stddev: window %d exceeds history %d: %w", arg1, s.Len(), series.ErrInsufficientData)
	}
	in := sanitize(s.Values(), infToNaN)
	out, err := safeCall("stddev", func() []float64 { return talib.StdDev(in, arg1, arg2) })
	if err != nil {
		return nil, err
	}
	markWarmup(out, arg1-1)
	return series.NewDerived(out, series.Recipe{
		Transform: "stddev",
		Args:      []float64{float64(arg1), arg2},
	}), nil
}

// Apply3 runs a three-sequence transform over high/low/close-like triples,
// trailing-aligning the inputs first. CCI is the only member of the family.
func Apply3(kind Kind, hi, lo, cl *series.Numeric, arg int) (*series.Numeric, error) {
	if kind != KindCCI {
		return nil, fmt.Errorf("apply3: transform kind %d is not a three-sequence transform: %w", kind, series.ErrInvalidParameter)
	}
	if arg <= 0 {
		return nil, fmt.Errorf("cci: window %d must be positive: %w", arg, series.ErrInvalidParameter)
	}
	hi, lo, cl, err := series.Fit3(hi, lo, cl)
	if err != nil {
		return nil, err
	}
	if arg > cl.Len() {
		return nil, fmt.Errorf("cci: window %d exceeds history %d: %w", arg, cl.Len(), series.ErrInsufficientData)
	}
	h := sanitize(hi.Values(), infToNaN)
	l := sanitize(lo.Values(), infToNaN)
	c := sanitize(cl.Values(), infToNaN)
	out, err := safeCall("cci", func() []float64 { return talib.Cci(h, l, c, arg) })
	if err != nil {
		return nil, err
	}
	markWarmup(out, arg-1)
	return series.NewDerived(out, series.Recipe{
		Transform: "cci",
		Args:      []float64{float64(arg)},
	}), nil
}

// sanitize applies the per-kind non-finite policy to a privately owned
// buffer. The caller must pass a copy; transforms are never handed values
// they were not designed for.
func sanitize(values []float64, mode sanitizeMode) []float64 {
	for i, v := range values {
		switch mode {
		case infToNaN:
			if math.IsInf(v, 1) {
				values[i] = math.NaN()
			}
		case infToZero:
			if math.IsInf(v, 0) {
				values[i] = 0
			}
		}
	}
	return values
}

// markWarmup overwrites the leading warmup region with NaN. talib zero-fills
// positions before its lookback is satisfied; those are "no value yet", not
// zeros.
func markWarmup(values []float64, lookback int) {
	if lookback > len(values) {
		lookback = len(values)
	}
	for i := 0; i < lookback; i++ {
		values[i] = math.NaN()
	}
}

// safeCall invokes a transform function and converts a panic into an
// explicit computation failure carrying the original cause.
func safeCall(op string, fn func() []float64) (out []float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			cause, ok := r.(error)
			if !ok {
				cause = fmt.Errorf("%v", r)
			}
			err = &series.ComputationError{Op: op, Cause: cause}
		}
	}()
	return fn(), nil
}
