package formula

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kformula/internal/series"
)

func TestHighestLowest(t *testing.T) {
	s := series.NewNumeric([]float64{1, 3, 2, 5, 4})

	hi, err := Highest(s, 3)
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 5, 5}, hi.Values())

	lo, err := Lowest(s, 3)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 2}, lo.Values())
}

func TestBarsSinceExtremum(t *testing.T) {
	s := series.NewNumeric([]float64{1, 3, 2, 5, 4})

	hb, err := BarsSinceHighest(s, 3)
	require.NoError(t, err)
	// Offsets of the max from each window start: [1,3,2]→1, [3,2,5]→2, [2,5,4]→1.
	assert.Equal(t, []float64{1, 2, 1}, hb.Values())

	lb, err := BarsSinceLowest(s, 3)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1, 0}, lb.Values())
}

func TestBarsSinceTieBreaksEarliest(t *testing.T) {
	s := series.NewNumeric([]float64{5, 5, 5, 5})

	hb, err := BarsSinceHighest(s, 3)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0}, hb.Values())

	lb, err := BarsSinceLowest(s, 3)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0}, lb.Values())
}

func TestRollingFullWindow(t *testing.T) {
	s := series.NewNumeric([]float64{2, 1, 3})

	hi, err := Highest(s, 3)
	require.NoError(t, err)
	assert.Equal(t, []float64{3}, hi.Values())

	hb, err := BarsSinceHighest(s, 3)
	require.NoError(t, err)
	assert.Equal(t, []float64{2}, hb.Values())
}

func TestRollingPropagatesUndefined(t *testing.T) {
	s := series.NewNumeric([]float64{1, math.NaN(), 2})

	hi, err := Highest(s, 3)
	require.NoError(t, err)
	require.Equal(t, 1, hi.Len())
	assert.True(t, math.IsNaN(hi.At(0)))

	lo, err := Lowest(s, 3)
	require.NoError(t, err)
	assert.True(t, math.IsNaN(lo.At(0)))

	// The offset points at the first undefined position, as an argmax
	// reduction over the raw window reports it.
	hb, err := BarsSinceHighest(s, 3)
	require.NoError(t, err)
	assert.Equal(t, []float64{1}, hb.Values())

	lb, err := BarsSinceLowest(s, 3)
	require.NoError(t, err)
	assert.Equal(t, []float64{1}, lb.Values())
}

func TestRollingUndefinedLeavesWindow(t *testing.T) {
	s := series.NewNumeric([]float64{math.NaN(), 3, 1, 5})

	hi, err := Highest(s, 2)
	require.NoError(t, err)
	require.Equal(t, 3, hi.Len())
	assert.True(t, math.IsNaN(hi.At(0)))
	assert.Equal(t, 3.0, hi.At(1))
	assert.Equal(t, 5.0, hi.At(2))
}

func TestRollingOverWarmupRegion(t *testing.T) {
	// Composing a rolling extremum over a transform's warmup region keeps
	// those windows undefined instead of coercing them.
	ma, err := Apply1(KindMA, series.NewNumeric([]float64{1, 2, 3, 4}), 2)
	require.NoError(t, err)

	hi, err := Highest(ma, 2)
	require.NoError(t, err)
	require.Equal(t, 3, hi.Len())
	assert.True(t, math.IsNaN(hi.At(0)))
	assert.Equal(t, 2.5, hi.At(1))
	assert.Equal(t, 3.5, hi.At(2))
}

func TestRollingErrors(t *testing.T) {
	s := series.NewNumeric([]float64{1, 2, 3})

	_, err := Highest(s, 4)
	assert.ErrorIs(t, err, series.ErrInsufficientData)

	_, err = Lowest(s, 0)
	assert.ErrorIs(t, err, series.ErrInvalidParameter)

	_, err = BarsSinceLowest(series.NewNumeric(nil), 1)
	assert.ErrorIs(t, err, series.ErrInsufficientData)
}

func TestRollingRecipe(t *testing.T) {
	s := series.NewNumeric([]float64{1, 2, 3})
	hi, err := Highest(s, 2)
	require.NoError(t, err)
	assert.Equal(t, "highest", hi.Recipe().Transform)
	assert.Equal(t, []float64{2}, hi.Recipe().Args)
}
