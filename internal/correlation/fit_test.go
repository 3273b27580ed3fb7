package correlation_test

import (
	"math"
	"testing"

	"berkotech.co/particlecorr/internal/correlation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFit_Line(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5}
	y := []float64{3, 5, 7, 9, 11}
	l, err := correlation.Fit("x", x, "y", y)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, l.Intercept, 1e-9)
	assert.InDelta(t, 2.0, l.Slope, 1e-9)
	assert.InDelta(t, 1.0, l.R2, 1e-9)
	assert.InDelta(t, 21.0, l.At(10), 1e-9)
	assert.Equal(t, 5, l.N)
}

func TestFit_SkipsMissing(t *testing.T) {
	x := []float64{1, 2, math.NaN(), 4}
	y := []float64{2, 4, 100, 8}
	l, err := correlation.Fit("x", x, "y", y)
	require.NoError(t, err)
	assert.Equal(t, 3, l.N)
	assert.InDelta(t, 2.0, l.Slope, 1e-9)
}

func TestFit_Degenerate(t *testing.T) {
	_, err := correlation.Fit("x", []float64{5, 5, 5}, "y", []float64{1, 2, 3})
	require.ErrorIs(t, err, correlation.ErrDegenerate)
	_, err = correlation.Fit("x", []float64{1}, "y", []float64{1})
	require.ErrorIs(t, err, correlation.ErrDegenerate)
}

func TestFitAll(t *testing.T) {
	ds := load(t, "a,b,c,label\n1,2,5,x\n2,4,5,y\n3,6.5,5,z\n")
	lines := correlation.FitAll(ds)
	// a~c and b~c have a constant response, which still fits; only constant
	// predictors are rejected.
	require.Len(t, lines, 3)
	require.Equal(t, "a", lines[0].X)
	require.Equal(t, "b", lines[0].Y)
}
