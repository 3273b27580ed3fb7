package correlation

import (
	"errors"
	"fmt"

	"berkotech.co/particlecorr/internal/dataset"
	"github.com/sajari/regression"
)

// ErrDegenerate is returned when a line cannot be fitted: fewer than two
// complete observations, or a constant predictor.
var ErrDegenerate = errors.New("correlation: degenerate fit")

// Line is the least-squares fit Y = Intercept + Slope*X.
type Line struct {
	X, Y      string
	Intercept float64
	Slope     float64
	R2        float64
	N         int
}

// At evaluates the line at x.
func (l Line) At(x float64) float64 { return l.Intercept + l.Slope*x }

// Fit regresses y on x over the complete pairs.
func Fit(xName string, x []float64, yName string, y []float64) (Line, error) {
	xs, ys := Complete(x, y)
	l := Line{X: xName, Y: yName, N: len(xs)}
	if len(xs) < 2 || constant(xs) {
		return l, fmt.Errorf("%w: %s ~ %s", ErrDegenerate, yName, xName)
	}

	r := new(regression.Regression)
	r.SetObserved(yName)
	r.SetVar(0, xName)
	for i := range xs {
		r.Train(regression.DataPoint(ys[i], []float64{xs[i]}))
	}
	if err := r.Run(); err != nil {
		return l, fmt.Errorf("fit %s ~ %s: %w", yName, xName, err)
	}
	l.Intercept = r.Coeff(0)
	l.Slope = r.Coeff(1)
	l.R2 = r.R2
	return l, nil
}

// FitColumns fits column y against column x of ds.
func FitColumns(ds *dataset.Dataset, x, y string) (Line, error) {
	xv, err := ds.Floats(x)
	if err != nil {
		return Line{}, err
	}
	yv, err := ds.Floats(y)
	if err != nil {
		return Line{}, err
	}
	return Fit(x, xv, y, yv)
}

// FitAll fits every pair of numeric columns (j against i, i < j). Pairs
// that cannot be fitted are left out.
func FitAll(ds *dataset.Dataset) []Line {
	cols := ds.Schema().Numeric()
	var lines []Line
	for i := 0; i < len(cols); i++ {
		for j := i + 1; j < len(cols); j++ {
			l, err := FitColumns(ds, cols[i], cols[j])
			if err != nil {
				continue
			}
			lines = append(lines, l)
		}
	}
	return lines
}
