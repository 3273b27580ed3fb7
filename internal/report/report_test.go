package report_test

import (
	"math"
	"path/filepath"
	"strings"
	"testing"

	"berkotech.co/particlecorr/internal/correlation"
	"berkotech.co/particlecorr/internal/dataset"
	"berkotech.co/particlecorr/internal/report"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteRead(t *testing.T) {
	ds, err := dataset.Read(strings.NewReader("a,b,width\n1,2,5\n2,4,5\n3,7,5\n4,,5\n"), "in.csv")
	require.NoError(t, err)
	m, err := correlation.Pearson(ds)
	require.NoError(t, err)

	id := uuid.New()
	r := report.New(id, m, correlation.FitAll(ds))
	r.Input = "in.csv"
	r.Loaded, r.Kept = 4, 4

	path := filepath.Join(t.TempDir(), "report.yaml")
	require.NoError(t, r.Write(path))

	got, err := report.Read(path)
	require.NoError(t, err)
	require.Equal(t, id, got.Run)
	require.Equal(t, []string{"a", "b", "width"}, got.Columns)
	require.Len(t, got.Matrix, 3)
	assert.Equal(t, 1.0, got.Matrix[0][0])
	assert.True(t, math.IsNaN(got.Matrix[0][2]))
	assert.True(t, math.IsNaN(got.Matrix[2][2]))

	require.Equal(t, [][]int{
		{4, 3, 4},
		{3, 3, 3},
		{4, 3, 4},
	}, got.Observations)

	require.NotEmpty(t, got.Fits)
	assert.Equal(t, "a", got.Fits[0].X)
	assert.Equal(t, "b", got.Fits[0].Y)
	assert.InDelta(t, m.At(0, 1), got.Fits[0].R, 1e-12)
	assert.Equal(t, got.Observations[0][1], got.Fits[0].N)
}
