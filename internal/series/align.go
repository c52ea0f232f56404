package series

import "fmt"

// Trailing alignment: sequences of different lengths are reconciled by
// keeping each one's most recent suffix of length min(lengths). Alignment
// never extends a sequence and never keeps head observations.

// Fit2 trims two numeric series to their common trailing window.
func Fit2(a, b *Numeric) (*Numeric, *Numeric, error) {
	n := min(a.Len(), b.Len())
	if n == 0 {
		return nil, nil, fmt.Errorf("fit: empty input: %w", ErrMisalignedInput)
	}
	return NewDerived(a.tail(n), a.recipe), NewDerived(b.tail(n), b.recipe), nil
}

// Fit3 trims three numeric series to their common trailing window.
func Fit3(a, b, c *Numeric) (*Numeric, *Numeric, *Numeric, error) {
	n := min(a.Len(), min(b.Len(), c.Len()))
	if n == 0 {
		return nil, nil, nil, fmt.Errorf("fit: empty input: %w", ErrMisalignedInput)
	}
	return NewDerived(a.tail(n), a.recipe), NewDerived(b.tail(n), b.recipe), NewDerived(c.tail(n), c.recipe), nil
}

// FitBoolNumeric2 trims a boolean selector and two numeric branches to their
// common trailing window, as needed by ternary selection.
func FitBoolNumeric2(cond *Bool, a, b *Numeric) (*Bool, *Numeric, *Numeric, error) {
	n := min(cond.Len(), min(a.Len(), b.Len()))
	if n == 0 {
		return nil, nil, nil, fmt.Errorf("fit: empty input: %w", ErrMisalignedInput)
	}
	return NewTriBool(cond.tail(n)), NewDerived(a.tail(n), a.recipe), NewDerived(b.tail(n), b.recipe), nil
}
