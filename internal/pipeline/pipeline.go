// Package pipeline runs the particle-shape correlation analysis end to end:
// load, project, filter, preview, correlate, render, display.
package pipeline

import (
	"fmt"
	"io"
	"log/slog"
	"slices"

	"berkotech.co/particlecorr/internal/config"
	"berkotech.co/particlecorr/internal/correlation"
	"berkotech.co/particlecorr/internal/dataset"
	"berkotech.co/particlecorr/internal/display"
	"berkotech.co/particlecorr/internal/render"
	"berkotech.co/particlecorr/internal/report"
	"github.com/google/uuid"
)

// FileOpener is implemented by presenters that can show a file already on
// disk without writing a copy.
type FileOpener interface {
	Open(name, path string) error
}

// Pipeline holds the collaborators of a run.
type Pipeline struct {
	Config    *config.Run
	Presenter display.Presenter
	// Out receives the preview and the printed matrix.
	Out    io.Writer
	Logger *slog.Logger
	RunID  uuid.UUID
}

// Result is what a run produced.
type Result struct {
	Loaded  *dataset.Dataset
	Data    *dataset.Dataset
	Matrix  *correlation.Matrix
	Scatter *render.Image
	HeatMap *render.Image
}

// Run executes every stage in order. Load, projection and filter errors
// abort the run before anything is written.
func (p *Pipeline) Run() (*Result, error) {
	c := p.Config
	log := p.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	out := p.Out
	if out == nil {
		out = io.Discard
	}
	runID := p.RunID
	if runID == uuid.Nil {
		runID = uuid.New()
	}
	log = log.With("run", runID.String())

	raw, err := dataset.Load(c.Input)
	if err != nil {
		return nil, err
	}
	log.Info("loaded", "file", c.Input, "rows", raw.Len(), "cols", len(raw.Columns()))
	log.Debug("schema", "columns", raw.Schema().String())
	if missing, extra := compareColumns(raw.Columns(), dataset.DefaultDescriptorColumns); len(missing)+len(extra) > 0 {
		log.Debug("non-standard descriptor columns", "missing", missing, "extra", extra)
	}
	if n := countSentinel(raw, c.FilterColumn); n > 0 {
		log.Info("contours without elongation", "column", c.FilterColumn, "rows", n)
	}

	data, err := dataset.Prepare(raw, dataset.PrepareOptions{
		Drop:             c.Drop,
		FilterColumn:     c.FilterColumn,
		Threshold:        c.Threshold,
		AllowMissingDrop: c.AllowMissingDrop,
	})
	if err != nil {
		return nil, err
	}
	log.Info("filtered", "column", c.FilterColumn, "threshold", c.Threshold,
		"kept", data.Len(), "removed", raw.Len()-data.Len())

	if c.PreviewRows > 0 {
		fmt.Fprintln(out, data.Head(c.PreviewRows))
	}
	if c.Describe {
		fmt.Fprintln(out, data.Describe())
	}

	m, err := correlation.Pearson(data)
	if err != nil {
		return nil, err
	}
	for _, s := range m.Skipped {
		log.Warn("column not numeric, left out of correlation", "column", s)
	}
	fmt.Fprintln(out, m)
	log.Info("correlated", "columns", m.Len())

	res := &Result{Loaded: raw, Data: data, Matrix: m}

	sopt := render.DefaultScatterOptions()
	sopt.Bins = c.Bins
	sopt.Trend = c.Trend
	res.Scatter, err = render.ScatterMatrix(data, sopt)
	if err != nil {
		return nil, err
	}
	if err := res.Scatter.Save(c.Output); err != nil {
		return nil, err
	}
	log.Info("saved", "plot", res.Scatter.Name, "file", c.Output)
	p.show(log, res.Scatter, c.Output)

	hopt := render.DefaultHeatMapOptions()
	hopt.Annotate = c.Annotate
	res.HeatMap, err = render.HeatMap(m, hopt)
	if err != nil {
		return nil, err
	}
	if c.HeatMapOutput != "" {
		if err := res.HeatMap.Save(c.HeatMapOutput); err != nil {
			return nil, err
		}
		log.Info("saved", "plot", res.HeatMap.Name, "file", c.HeatMapOutput)
	}
	p.show(log, res.HeatMap, c.HeatMapOutput)

	if c.Report != "" {
		r := report.New(runID, m, correlation.FitAll(data))
		r.Input = c.Input
		r.Loaded, r.Kept = raw.Len(), data.Len()
		r.Dropped = c.Drop
		r.Filter = report.Filter{Column: c.FilterColumn, Threshold: c.Threshold}
		if err := r.Write(c.Report); err != nil {
			return nil, err
		}
		log.Info("report written", "file", c.Report)
	}
	return res, nil
}

// show presents img. A file already saved is opened in place; otherwise the
// presenter gets the encoded image. Failures are logged, not returned.
func (p *Pipeline) show(log *slog.Logger, img *render.Image, saved string) {
	if p.Presenter == nil {
		return
	}
	var err error
	if fo, ok := p.Presenter.(FileOpener); ok && saved != "" {
		err = fo.Open(img.Name, saved)
	} else {
		err = p.Presenter.Show(img.Name, img)
	}
	if err != nil {
		log.Warn("display failed", "plot", img.Name, "err", err)
	}
}

// compareColumns reports the names of want absent from got and the names of
// got not in want.
func compareColumns(got, want []string) (missing, extra []string) {
	for _, w := range want {
		if !slices.Contains(got, w) {
			missing = append(missing, w)
		}
	}
	for _, g := range got {
		if !slices.Contains(want, g) {
			extra = append(extra, g)
		}
	}
	return missing, extra
}

// countSentinel counts the rows of col holding dataset.NoElongation. A
// missing or text column counts zero; Prepare reports those.
func countSentinel(d *dataset.Dataset, col string) int {
	vals, err := d.Floats(col)
	if err != nil {
		return 0
	}
	n := 0
	for _, v := range vals {
		if v == dataset.NoElongation {
			n++
		}
	}
	return n
}
