package render_test

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"berkotech.co/particlecorr/internal/correlation"
	"berkotech.co/particlecorr/internal/dataset"
	"berkotech.co/particlecorr/internal/render"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot/vg"
)

const shapes = `area_from_moment,convexity,aspect_ratio,elongation,note
120.5,0.91,1,1.2,a
98,0.85,1,1.9,b
143.25,0.97,1,1.1,
75,0.66,1,3.4,c
,0.88,1,2.2,d
`

func load(t *testing.T) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.Read(strings.NewReader(shapes), t.Name())
	require.NoError(t, err)
	return ds
}

func decode(t *testing.T, im *render.Image) (w, h int) {
	t.Helper()
	var buf bytes.Buffer
	_, err := im.WriteTo(&buf)
	require.NoError(t, err)
	cfg, err := png.DecodeConfig(&buf)
	require.NoError(t, err)
	return cfg.Width, cfg.Height
}

func TestScatterMatrix(t *testing.T) {
	ds := load(t)
	opt := render.DefaultScatterOptions()
	opt.Trend = true

	im, err := render.ScatterMatrix(ds, opt)
	require.NoError(t, err)
	require.Equal(t, 10*vg.Inch, im.Width)

	w, h := decode(t, im)
	require.Equal(t, w, h)
	require.Greater(t, w, 0)
}

func TestHeatMap(t *testing.T) {
	m, err := correlation.Pearson(load(t))
	require.NoError(t, err)

	im, err := render.HeatMap(m, render.DefaultHeatMapOptions())
	require.NoError(t, err)

	w, h := decode(t, im)
	require.Equal(t, 2*h, w)
}

func TestImageSave_Overwrites(t *testing.T) {
	ds := load(t)
	im, err := render.ScatterMatrix(ds, render.DefaultScatterOptions())
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "correlation_plot.png")
	require.NoError(t, os.WriteFile(path, []byte("stale"), 0o644))
	require.NoError(t, im.Save(path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	_, err = png.DecodeConfig(f)
	require.NoError(t, err)
}

func TestNothingToPlot(t *testing.T) {
	ds, err := dataset.Read(strings.NewReader("name\nx\n"), "text.csv")
	require.NoError(t, err)
	_, err = render.ScatterMatrix(ds, render.DefaultScatterOptions())
	require.ErrorIs(t, err, render.ErrNothingToPlot)

	_, err = render.HeatMap(nil, render.DefaultHeatMapOptions())
	require.ErrorIs(t, err, render.ErrNothingToPlot)
}
