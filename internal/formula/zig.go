package formula

import (
	"fmt"
	"math"

	"kformula/internal/series"
)

// PivotKind distinguishes zigzag peaks from troughs.
type PivotKind int8

const (
	PivotPeak PivotKind = iota
	PivotTrough
)

func (k PivotKind) String() string {
	if k == PivotPeak {
		return "peak"
	}
	return "trough"
}

// Pivot is a confirmed zigzag turning point.
type Pivot struct {
	Index int
	Value float64
	Kind  PivotKind
}

// Zig runs zigzag pivot detection with a reversal threshold of pct percent
// and returns the interpolated zigzag line (same length as the input, linear
// between pivots) together with the chronological pivot sequence. A pivot is
// confirmed once price reverses by at least pct percent from the last
// unconfirmed extreme; the first and last observations bracket the sequence
// so every bar lies on a segment.
func Zig(s *series.Numeric, pct float64) (*series.Numeric, []Pivot, error) {
	pivots, err := zigPivots(s, pct)
	if err != nil {
		return nil, nil, err
	}
	line := make([]float64, s.Len())
	for seg := 0; seg+1 < len(pivots); seg++ {
		a, b := pivots[seg], pivots[seg+1]
		span := b.Index - a.Index
		for i := a.Index; i <= b.Index; i++ {
			if span == 0 {
				line[i] = b.Value
				continue
			}
			t := float64(i-a.Index) / float64(span)
			line[i] = a.Value + t*(b.Value-a.Value)
		}
	}
	if len(pivots) == 1 {
		line[pivots[0].Index] = pivots[0].Value
	}
	return series.NewDerived(line, series.Recipe{
		Transform: "zig",
		Args:      []float64{pct},
	}), pivots, nil
}

// BarsSinceNthTrough scans the pivot-value list from the most recent pivot
// backward, counting adjacent pivot-to-pivot decreases, and returns the
// pivot-list index at which the m-th decrease is encountered. The count is
// checked before the decrease at the current index is evaluated, so the
// returned index is one past the pivot where the m-th decrease completes;
// that off-by-one is the legacy contract downstream formulas were written
// against and is preserved deliberately. The scan never evaluates the two
// oldest pivots, since a decrease needs a prior pivot to compare against;
// if fewer than m decreases exist in the scanned range the result is 0.
func BarsSinceNthTrough(s *series.Numeric, pct float64, m int) (int, error) {
	if m < 0 {
		return 0, fmt.Errorf("bars_since_nth_trough: negative count %d: %w", m, series.ErrInvalidParameter)
	}
	pivots, err := zigPivots(s, pct)
	if err != nil {
		return 0, err
	}
	count := 0
	for i := len(pivots) - 1; i >= 2; i-- {
		if count == m {
			return i, nil
		}
		if pivots[i].Value < pivots[i-1].Value {
			count++
		}
	}
	return 0, nil
}

func zigPivots(s *series.Numeric, pct float64) ([]Pivot, error) {
	if pct <= 0 {
		return nil, fmt.Errorf("zig: reversal threshold %.4f%% must be positive: %w", pct, series.ErrInvalidParameter)
	}
	if s.Len() == 0 {
		return nil, fmt.Errorf("zig: empty input: %w", series.ErrInsufficientData)
	}
	values := s.Values()
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("zig: non-finite value at %d: %w", i, series.ErrInvalidParameter)
		}
	}
	up := 1 + pct/100
	down := 1 - pct/100

	pivots := []Pivot{}
	// Until the first reversal confirms a direction, track the running
	// extremes from the start; whichever threshold is crossed first decides
	// whether the opening pivot is a trough or a peak.
	hiIdx, loIdx := 0, 0
	rising := 0 // 0 unresolved, 1 tracking a peak candidate, -1 tracking a trough candidate
	candIdx := 0
	for i := 1; i < len(values); i++ {
		v := values[i]
		switch rising {
		case 0:
			if v > values[hiIdx] {
				hiIdx = i
			}
			if v < values[loIdx] {
				loIdx = i
			}
			if v >= values[loIdx]*up {
				pivots = append(pivots, Pivot{Index: loIdx, Value: values[loIdx], Kind: PivotTrough})
				rising = 1
				candIdx = i
			} else if v <= values[hiIdx]*down {
				pivots = append(pivots, Pivot{Index: hiIdx, Value: values[hiIdx], Kind: PivotPeak})
				rising = -1
				candIdx = i
			}
		case 1:
			if v > values[candIdx] {
				candIdx = i
			} else if v <= values[candIdx]*down {
				pivots = append(pivots, Pivot{Index: candIdx, Value: values[candIdx], Kind: PivotPeak})
				rising = -1
				candIdx = i
			}
		case -1:
			if v < values[candIdx] {
				candIdx = i
			} else if v >= values[candIdx]*up {
				pivots = append(pivots, Pivot{Index: candIdx, Value: values[candIdx], Kind: PivotTrough})
				rising = 1
				candIdx = i
			}
		}
	}

	// Bracket the sequence: an opening point before the first confirmed
	// pivot and the unconfirmed trailing extreme, so the zigzag line spans
	// the full series.
	last := len(values) - 1
	if rising == 0 {
		out := []Pivot{{Index: 0, Value: values[0], Kind: PivotTrough}}
		if last > 0 {
			kind := PivotPeak
			if values[last] < values[0] {
				out[0].Kind = PivotPeak
				kind = PivotTrough
			}
			out = append(out, Pivot{Index: last, Value: values[last], Kind: kind})
		}
		return out, nil
	}
	out := make([]Pivot, 0, len(pivots)+2)
	if pivots[0].Index > 0 {
		kind := PivotPeak
		if pivots[0].Kind == PivotPeak {
			kind = PivotTrough
		}
		out = append(out, Pivot{Index: 0, Value: values[0], Kind: kind})
	}
	out = append(out, pivots...)
	if candIdx != out[len(out)-1].Index || candIdx != last {
		tail := candIdx
		kind := PivotPeak
		if rising == -1 {
			kind = PivotTrough
		}
		if tail != out[len(out)-1].Index {
			out = append(out, Pivot{Index: tail, Value: values[tail], Kind: kind})
		}
		if tail != last {
			altKind := PivotTrough
			if kind == PivotTrough {
				altKind = PivotPeak
			}
			out = append(out, Pivot{Index: last, Value: values[last], Kind: altKind})
		}
	}
	return out, nil
}
