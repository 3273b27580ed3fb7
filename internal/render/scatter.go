package render

import (
	"fmt"
	"image/color"
	"math"

	"berkotech.co/particlecorr/internal/correlation"
	"berkotech.co/particlecorr/internal/dataset"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// ScatterOptions configures ScatterMatrix.
type ScatterOptions struct {
	Width, Height vg.Length
	// Bins is the number of histogram bins on the diagonal.
	Bins int
	// Trend overlays the least-squares line on each scatter panel.
	Trend bool
}

// DefaultScatterOptions returns a 10x10 inch canvas with 10 bins.
func DefaultScatterOptions() ScatterOptions {
	return ScatterOptions{
		Width:  10 * vg.Inch,
		Height: 10 * vg.Inch,
		Bins:   10,
	}
}

// ScatterMatrix draws an N×N grid over the numeric columns of ds: histograms
// on the diagonal, pairwise scatter plots elsewhere.
func ScatterMatrix(ds *dataset.Dataset, opt ScatterOptions) (*Image, error) {
	cols := ds.Schema().Numeric()
	if len(cols) == 0 {
		return nil, ErrNothingToPlot
	}
	data := make([][]float64, len(cols))
	for i, c := range cols {
		v, err := ds.Floats(c)
		if err != nil {
			return nil, fmt.Errorf("scatter matrix: %w", err)
		}
		data[i] = v
	}

	img := vgimg.New(opt.Width, opt.Height)
	dc := draw.New(img)
	n := len(cols)
	tiles := draw.Tiles{
		Rows: n,
		Cols: n,
		PadX: vg.Millimeter,
		PadY: vg.Millimeter,
	}

	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			p, err := panel(cols, data, row, col, opt)
			if err != nil {
				return nil, fmt.Errorf("scatter matrix %s/%s: %w", cols[row], cols[col], err)
			}
			if row != n-1 {
				p.X.Label.TextStyle.Color = color.Transparent
				p.X.Tick.Label.Color = color.Transparent
			}
			if col != 0 {
				p.Y.Label.TextStyle.Color = color.Transparent
				p.Y.Tick.Label.Color = color.Transparent
			}
			p.Draw(tiles.At(dc, col, row))
		}
	}

	return &Image{
		Name:   "scatter matrix",
		Width:  opt.Width,
		Height: opt.Height,
		w:      vgimg.PngCanvas{Canvas: img},
	}, nil
}

func panel(cols []string, data [][]float64, row, col int, opt ScatterOptions) (*plot.Plot, error) {
	p, err := plot.New()
	if err != nil {
		return nil, err
	}
	p.X.Label.Text = cols[col]
	p.Y.Label.Text = cols[row]

	if row == col {
		v := values(data[col])
		if len(v) == 0 {
			return p, nil
		}
		h, err := plotter.NewHist(v, opt.Bins)
		if err != nil {
			return nil, err
		}
		h.FillColor = color.RGBA{R: 31, G: 119, B: 180, A: 255}
		p.Add(h)
		return p, nil
	}

	pts := points(data[col], data[row])
	if len(pts) == 0 {
		return p, nil
	}
	s, err := plotter.NewScatter(pts)
	if err != nil {
		return nil, err
	}
	s.GlyphStyle.Shape = draw.CircleGlyph{}
	s.GlyphStyle.Radius = vg.Points(1)
	s.GlyphStyle.Color = color.RGBA{R: 31, G: 119, B: 180, A: 160}
	p.Add(s)

	if opt.Trend {
		l, err := correlation.Fit(cols[col], data[col], cols[row], data[row])
		if err == nil {
			f := plotter.NewFunction(l.At)
			f.Color = color.RGBA{R: 214, G: 39, B: 40, A: 255}
			p.Add(f)
		}
	}
	return p, nil
}

// values drops missing entries, which plotter rejects.
func values(x []float64) plotter.Values {
	v := make(plotter.Values, 0, len(x))
	for _, f := range x {
		if !math.IsNaN(f) && !math.IsInf(f, 0) {
			v = append(v, f)
		}
	}
	return v
}

func points(x, y []float64) plotter.XYs {
	xs, ys := correlation.Complete(x, y)
	pts := make(plotter.XYs, 0, len(xs))
	for i := range xs {
		if math.IsInf(xs[i], 0) || math.IsInf(ys[i], 0) {
			continue
		}
		pts = append(pts, plotter.XY{X: xs[i], Y: ys[i]})
	}
	return pts
}
