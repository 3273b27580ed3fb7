package render

import (
	"fmt"
	"image/color"
	"strconv"

	"berkotech.co/particlecorr/internal/correlation"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// HeatMapOptions configures HeatMap.
type HeatMapOptions struct {
	Width, Height vg.Length
	// Annotate prints each coefficient in its cell.
	Annotate bool
}

// DefaultHeatMapOptions returns a 20x10 inch annotated canvas.
func DefaultHeatMapOptions() HeatMapOptions {
	return HeatMapOptions{
		Width:    20 * vg.Inch,
		Height:   10 * vg.Inch,
		Annotate: true,
	}
}

// corrGrid lays the matrix out with row 0 at the top.
type corrGrid struct {
	m *correlation.Matrix
}

func (g corrGrid) Dims() (c, r int)   { return g.m.Len(), g.m.Len() }
func (g corrGrid) Z(c, r int) float64 { return g.m.At(g.row(r), c) }
func (g corrGrid) X(c int) float64    { return float64(c) }
func (g corrGrid) Y(r int) float64    { return float64(r) }
func (g corrGrid) row(r int) int      { return g.m.Len() - 1 - r }

// HeatMap draws m as a colour matrix on a fixed [-1, 1] diverging scale.
// NaN coefficients are drawn grey.
func HeatMap(m *correlation.Matrix, opt HeatMapOptions) (*Image, error) {
	if m == nil || m.Len() == 0 {
		return nil, ErrNothingToPlot
	}
	p, err := plot.New()
	if err != nil {
		return nil, err
	}
	p.Title.Text = "Pearson correlation"

	cm := moreland.SmoothBlueRed()
	cm.SetMin(-1)
	cm.SetMax(1)

	g := corrGrid{m: m}
	h := plotter.NewHeatMap(g, cm.Palette(255))
	h.Min, h.Max = -1, 1
	h.NaN = color.Gray{Y: 200}
	p.Add(h)

	xt, yt := axisTicks(g)
	p.X.Tick.Marker = plot.ConstantTicks(xt)
	p.Y.Tick.Marker = plot.ConstantTicks(yt)

	if opt.Annotate {
		l, err := cellLabels(g)
		if err != nil {
			return nil, fmt.Errorf("heat map: %w", err)
		}
		p.Add(l)
	}

	w, err := p.WriterTo(opt.Width, opt.Height, "png")
	if err != nil {
		return nil, fmt.Errorf("heat map: %w", err)
	}
	return &Image{
		Name:   "heat map",
		Width:  opt.Width,
		Height: opt.Height,
		w:      w,
	}, nil
}

// axisTicks labels both axes with the column names. X runs left to right in
// column order; Y follows the row flip so the first column is on top.
func axisTicks(g corrGrid) (xt, yt []plot.Tick) {
	n := g.m.Len()
	xt = make([]plot.Tick, n)
	yt = make([]plot.Tick, n)
	for i, c := range g.m.Columns {
		xt[i] = plot.Tick{Value: g.X(i), Label: c}
		yt[i] = plot.Tick{Value: g.Y(g.row(i)), Label: c}
	}
	return xt, yt
}

func cellLabels(g corrGrid) (*plotter.Labels, error) {
	c, r := g.Dims()
	d := plotter.XYLabels{
		XYs:    make(plotter.XYs, 0, c*r),
		Labels: make([]string, 0, c*r),
	}
	for i := 0; i < c; i++ {
		for j := 0; j < r; j++ {
			d.XYs = append(d.XYs, plotter.XY{X: g.X(i), Y: g.Y(j)})
			d.Labels = append(d.Labels, strconv.FormatFloat(g.Z(i, j), 'f', 2, 64))
		}
	}
	l, err := plotter.NewLabels(d)
	if err != nil {
		return nil, err
	}
	for i := range l.TextStyle {
		l.TextStyle[i].XAlign = draw.XCenter
		l.TextStyle[i].YAlign = draw.YCenter
	}
	return l, nil
}
