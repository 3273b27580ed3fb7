// Package correlation computes pairwise Pearson correlation matrices and
// simple linear fits over the numeric columns of a dataset.
package correlation

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"berkotech.co/particlecorr/internal/dataset"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// ErrNoNumericColumns is returned when there is nothing to correlate.
var ErrNoNumericColumns = errors.New("correlation: no numeric columns")

// Matrix is a symmetric Pearson correlation matrix. Undefined coefficients
// (constant column, fewer than two complete observations) are NaN.
type Matrix struct {
	// Columns labels rows and columns, in dataset order.
	Columns []string
	// Skipped lists the text columns that were left out.
	Skipped []string

	r *mat.SymDense
	n [][]int
}

// Pearson computes the correlation of every pair of numeric columns of ds.
// Each pair uses only the rows where both values are present.
func Pearson(ds *dataset.Dataset) (*Matrix, error) {
	schema := ds.Schema()
	cols := schema.Numeric()
	if len(cols) == 0 {
		return nil, ErrNoNumericColumns
	}
	var skipped []string
	for _, c := range schema {
		if c.Kind != dataset.Numeric {
			skipped = append(skipped, c.Name)
		}
	}

	data := make([][]float64, len(cols))
	for i, c := range cols {
		v, err := ds.Floats(c)
		if err != nil {
			return nil, fmt.Errorf("correlation: %w", err)
		}
		data[i] = v
	}

	k := len(cols)
	m := &Matrix{
		Columns: cols,
		Skipped: skipped,
		r:       mat.NewSymDense(k, nil),
		n:       make([][]int, k),
	}
	for i := range m.n {
		m.n[i] = make([]int, k)
	}
	for i := 0; i < k; i++ {
		for j := i; j < k; j++ {
			r, n := pair(data[i], data[j], i == j)
			m.r.SetSym(i, j, r)
			m.n[i][j], m.n[j][i] = n, n
		}
	}
	return m, nil
}

func pair(x, y []float64, self bool) (float64, int) {
	xs, ys := Complete(x, y)
	n := len(xs)
	if n < 2 || constant(xs) || constant(ys) {
		return math.NaN(), n
	}
	if self {
		return 1, n
	}
	r := stat.Correlation(xs, ys, nil)
	return math.Max(-1, math.Min(1, r)), n
}

func constant(x []float64) bool {
	return floats.Min(x) == floats.Max(x)
}

// Complete returns the pairs (x[i], y[i]) where neither value is NaN.
func Complete(x, y []float64) (xs, ys []float64) {
	n := len(x)
	if len(y) < n {
		n = len(y)
	}
	xs = make([]float64, 0, n)
	ys = make([]float64, 0, n)
	for i := 0; i < n; i++ {
		if math.IsNaN(x[i]) || math.IsNaN(y[i]) {
			continue
		}
		xs = append(xs, x[i])
		ys = append(ys, y[i])
	}
	return xs, ys
}

// Len returns the number of columns.
func (m *Matrix) Len() int { return len(m.Columns) }

// At returns the coefficient between columns i and j.
func (m *Matrix) At(i, j int) float64 { return m.r.At(i, j) }

// Observations returns the number of complete rows used for pair (i, j).
func (m *Matrix) Observations(i, j int) int { return m.n[i][j] }

// Get returns the coefficient between the named columns.
func (m *Matrix) Get(a, b string) (float64, bool) {
	i, j := m.index(a), m.index(b)
	if i < 0 || j < 0 {
		return math.NaN(), false
	}
	return m.r.At(i, j), true
}

// Rows returns the matrix as a dense row-major copy.
func (m *Matrix) Rows() [][]float64 {
	out := make([][]float64, m.Len())
	for i := range out {
		out[i] = make([]float64, m.Len())
		for j := range out[i] {
			out[i][j] = m.r.At(i, j)
		}
	}
	return out
}

func (m *Matrix) index(name string) int {
	for i, c := range m.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

func (m *Matrix) String() string {
	var b strings.Builder
	for i, c := range m.Columns {
		fmt.Fprintf(&b, "%d: %s\n", i, c)
	}
	fa := mat.Formatted(m.r, mat.Prefix("   "), mat.Squeeze())
	fmt.Fprintf(&b, "ρ: %.4v\n", fa)
	return b.String()
}
