package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"berkotech.co/particlecorr/internal/config"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())
	c, err := config.Load(config.New(), "")
	require.NoError(t, err)

	require.Equal(t, "particle_shapes.csv", c.Input)
	require.Equal(t, "correlation_plot.png", c.Output)
	require.Empty(t, c.HeatMapOutput)
	require.Equal(t, []string{"particle_number", "contour_number"}, c.Drop)
	require.Equal(t, "elongation", c.FilterColumn)
	require.Equal(t, 100.0, c.Threshold)
	require.Equal(t, 5, c.PreviewRows)
	require.True(t, c.Show)
	require.Equal(t, 10, c.Bins)
}

func TestLoad_Precedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte("threshold: 50\noutput: file.png\nbins: 20\n"), 0o644))

	t.Setenv("PARTICLECORR_THRESHOLD", "75")

	v := config.New()
	v.Set("bins", 7) // stands in for a bound flag

	c, err := config.Load(v, path)
	require.NoError(t, err)
	require.Equal(t, 75.0, c.Threshold) // env beats file
	require.Equal(t, "file.png", c.Output)
	require.Equal(t, 7, c.Bins)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := config.Load(config.New(), filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	chdir(t, t.TempDir())
	c, err := config.Load(config.New(), "")
	require.NoError(t, err)
	c.Threshold = 42
	require.NoError(t, config.Save(c, "particlecorr.yaml"))

	got, err := config.Load(config.New(), "")
	require.NoError(t, err)
	require.Equal(t, 42.0, got.Threshold)
}

func TestValidate(t *testing.T) {
	c := &config.Run{Input: "a.csv", Output: "b.png", Bins: -1}
	require.Error(t, c.Validate())
	c.Bins = 0
	require.NoError(t, c.Validate())
}

// chdir changes the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}
