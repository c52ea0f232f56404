package formula

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kformula/internal/series"
)

func TestDumpTable(t *testing.T) {
	s := series.NewNumeric([]float64{1, 2, 3, 4, 5})
	ma, err := Apply1(KindMA, s, 3)
	require.NoError(t, err)

	var b strings.Builder
	DumpTable(&b, []string{"close", "ma3"}, s, ma)
	// go-pretty upper-cases headers in its default style.
	out := strings.ToLower(b.String())
	assert.Contains(t, out, "close")
	assert.Contains(t, out, "ma3")
	// Warmup positions render as dashes, not zeros.
	assert.Contains(t, out, "-")
	assert.Contains(t, out, "4.0000")
}

func TestDumpTableAlignsTails(t *testing.T) {
	long := series.NewNumeric([]float64{9, 9, 1, 2})
	short := series.NewNumeric([]float64{3, 4})

	var b strings.Builder
	DumpTable(&b, nil, long, short)
	out := b.String()
	assert.Contains(t, out, "1.0000")
	assert.NotContains(t, out, "9.0000")
}

func TestDumpTableEmpty(t *testing.T) {
	var b strings.Builder
	DumpTable(&b, nil)
	assert.Empty(t, b.String())

	// A series with only NaN still renders rows.
	b.Reset()
	DumpTable(&b, []string{"x"}, series.NewNumeric([]float64{math.NaN()}))
	assert.Contains(t, strings.ToLower(b.String()), "x")
}
