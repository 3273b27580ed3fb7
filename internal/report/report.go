// Package report writes a YAML summary of a correlation run.
package report

import (
	"fmt"
	"math"
	"os"
	"time"

	"berkotech.co/particlecorr/internal/correlation"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Report summarises one pipeline run.
type Report struct {
	Run       uuid.UUID `yaml:"run"`
	Generated time.Time `yaml:"generated"`
	Input     string    `yaml:"input"`
	Loaded    int       `yaml:"rows_loaded"`
	Kept      int       `yaml:"rows_kept"`
	Dropped   []string  `yaml:"dropped_columns"`
	Filter    Filter    `yaml:"filter"`
	Columns   []string  `yaml:"columns"`
	Skipped   []string  `yaml:"skipped_columns,omitempty"`
	// Matrix is row-major; NaN is written as .nan.
	Matrix [][]float64 `yaml:"matrix"`
	// Observations[i][j] counts the rows complete in both columns i and j.
	Observations [][]int `yaml:"observations"`
	Fits         []Fit   `yaml:"fits,omitempty"`
}

type Filter struct {
	Column    string  `yaml:"column"`
	Threshold float64 `yaml:"threshold"`
}

// Fit is one least-squares line, Y = Intercept + Slope*X.
type Fit struct {
	X         string  `yaml:"x"`
	Y         string  `yaml:"y"`
	R         float64 `yaml:"r"`
	Intercept float64 `yaml:"intercept"`
	Slope     float64 `yaml:"slope"`
	R2        float64 `yaml:"r2"`
	N         int     `yaml:"n"`
}

// New builds a report from the matrix and fits.
func New(run uuid.UUID, m *correlation.Matrix, lines []correlation.Line) *Report {
	r := &Report{
		Run:       run,
		Generated: time.Now().UTC(),
		Columns:   m.Columns,
		Skipped:   m.Skipped,
		Matrix:    m.Rows(),
	}
	r.Observations = make([][]int, m.Len())
	for i := range r.Observations {
		r.Observations[i] = make([]int, m.Len())
		for j := range r.Observations[i] {
			r.Observations[i][j] = m.Observations(i, j)
		}
	}
	for _, l := range lines {
		rho, ok := m.Get(l.X, l.Y)
		if !ok {
			rho = math.NaN()
		}
		r.Fits = append(r.Fits, Fit{
			X:         l.X,
			Y:         l.Y,
			R:         rho,
			Intercept: l.Intercept,
			Slope:     l.Slope,
			R2:        l.R2,
			N:         l.N,
		})
	}
	return r
}

// Write stores the report as YAML at path.
func (r *Report) Write(path string) error {
	b, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// Read loads a report written by Write.
func Read(path string) (*Report, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read report: %w", err)
	}
	var r Report
	if err := yaml.Unmarshal(b, &r); err != nil {
		return nil, fmt.Errorf("unmarshal report: %w", err)
	}
	return &r, nil
}
