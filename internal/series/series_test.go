package series

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNumericCopiesInput(t *testing.T) {
	raw := []float64{1, 2, 3}
	s := NewNumeric(raw)
	raw[0] = 99
	assert.Equal(t, 1.0, s.At(0))

	// Values hands out a fresh buffer every time.
	v := s.Values()
	v[1] = 99
	assert.Equal(t, 2.0, s.At(1))
}

func TestShift(t *testing.T) {
	s := NewDerived([]float64{1, 2, 3, 4}, Recipe{Transform: "ema", Args: []float64{3}})

	shifted, err := s.Shift(1)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3}, shifted.Values())
	assert.Equal(t, 1, shifted.Recipe().Offset)
	assert.Equal(t, "ema", shifted.Recipe().Transform)

	// Shifting a shifted view accumulates the offset.
	twice, err := shifted.Shift(2)
	require.NoError(t, err)
	assert.Equal(t, 3, twice.Recipe().Offset)
	assert.Equal(t, []float64{1}, twice.Values())

	_, err = s.Shift(-1)
	assert.ErrorIs(t, err, ErrInvalidParameter)
	_, err = s.Shift(4)
	assert.ErrorIs(t, err, ErrInsufficientData)
}

func TestFit2KeepsTails(t *testing.T) {
	a := NewNumeric([]float64{1, 2, 3, 4, 5})
	b := NewNumeric([]float64{10, 20, 30})

	fa, fb, err := Fit2(a, b)
	require.NoError(t, err)
	assert.Equal(t, fa.Len(), fb.Len())
	assert.Equal(t, []float64{3, 4, 5}, fa.Values())
	assert.Equal(t, []float64{10, 20, 30}, fb.Values())
}

func TestFit2Empty(t *testing.T) {
	a := NewNumeric(nil)
	b := NewNumeric([]float64{1})
	_, _, err := Fit2(a, b)
	assert.ErrorIs(t, err, ErrMisalignedInput)
}

func TestFit3KeepsTails(t *testing.T) {
	a := NewNumeric([]float64{1, 2, 3, 4})
	b := NewNumeric([]float64{5, 6})
	c := NewNumeric([]float64{7, 8, 9})

	fa, fb, fc, err := Fit3(a, b, c)
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 4}, fa.Values())
	assert.Equal(t, []float64{5, 6}, fb.Values())
	assert.Equal(t, []float64{8, 9}, fc.Values())
}

func TestBoolTriState(t *testing.T) {
	b := NewTriBool([]Tri{TriTrue, TriFalse, TriUndef})
	assert.True(t, b.True(0))
	assert.False(t, b.True(1))
	assert.False(t, b.True(2))
	assert.Equal(t, TriUndef, b.At(2))
}

func TestLastEmpty(t *testing.T) {
	assert.True(t, math.IsNaN(NewNumeric(nil).Last()))
}

func TestComputationErrorKeepsCause(t *testing.T) {
	cause := errors.New("index out of range")
	err := &ComputationError{Op: "ema", Cause: cause}
	assert.ErrorIs(t, err, ErrComputationFailure)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "ema")
}
