package dataset_test

import (
	"testing"

	"berkotech.co/particlecorr/internal/dataset"
	"github.com/stretchr/testify/require"
)

func TestPrepare_FiveRowScenario(t *testing.T) {
	ds := read(t, fiveRows)

	out, err := dataset.Prepare(ds, dataset.DefaultPrepareOptions())
	require.NoError(t, err)

	require.Equal(t, []string{"elongation", "width"}, out.Columns())
	require.Equal(t, 4, out.Len())

	el, err := out.Floats("elongation")
	require.NoError(t, err)
	require.Equal(t, []float64{10, 50, 100, 99}, el)

	w, err := out.Floats("width")
	require.NoError(t, err)
	require.Equal(t, []float64{1.5, 3.0, 4.5, 5.0}, w)

	// input untouched
	require.Equal(t, 5, ds.Len())
	require.True(t, ds.Schema().Has("particle_number"))
}

func TestPrepare_RemovesSentinelAndMissing(t *testing.T) {
	ds := read(t, "particle_number,contour_number,convexity,elongation\n"+
		"0,0,0.9,1.2\n"+
		"1,0,0.8,999\n"+
		"2,0,0.7,\n"+
		"3,1,0.95,100.5\n"+
		"4,0,0.85,3.4\n")

	out, err := dataset.Prepare(ds, dataset.DefaultPrepareOptions())
	require.NoError(t, err)

	el, err := out.Floats("elongation")
	require.NoError(t, err)
	require.Equal(t, []float64{1.2, 3.4}, el)
	require.NotContains(t, el, float64(dataset.NoElongation))
	for _, v := range el {
		require.LessOrEqual(t, v, 100.0)
	}
}

func TestPrepare_NothingSurvives(t *testing.T) {
	ds := read(t, "particle_number,contour_number,elongation,width\n0,0,500,1\n1,0,999,2\n")
	out, err := dataset.Prepare(ds, dataset.DefaultPrepareOptions())
	require.NoError(t, err)
	require.Equal(t, 0, out.Len())
	require.Equal(t, []string{"elongation", "width"}, out.Columns())
}

func TestDrop_MissingColumn(t *testing.T) {
	ds := read(t, "a,b\n1,2\n")
	_, err := ds.Drop("a", "particle_number")
	require.ErrorIs(t, err, dataset.ErrMissingColumn)
	require.Contains(t, err.Error(), "particle_number")
}

func TestFilterLessEq_Errors(t *testing.T) {
	ds := read(t, "a,label\n1,x\n")
	_, err := ds.FilterLessEq("elongation", 100)
	require.ErrorIs(t, err, dataset.ErrMissingColumn)
	_, err = ds.FilterLessEq("label", 100)
	require.ErrorIs(t, err, dataset.ErrNotNumeric)
}

func TestPrepare_Idempotence(t *testing.T) {
	ds := read(t, fiveRows)

	tests := []struct {
		name    string
		allow   bool
		wantErr error
	}{
		{name: "strict", allow: false, wantErr: dataset.ErrMissingColumn},
		{name: "allow missing", allow: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			opt := dataset.DefaultPrepareOptions()
			opt.AllowMissingDrop = tc.allow

			once, err := dataset.Prepare(ds, opt)
			require.NoError(t, err)

			twice, err := dataset.Prepare(once, opt)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, once.Columns(), twice.Columns())
			require.Equal(t, once.Records(), twice.Records())
		})
	}
}
