// Package render draws the correlation plots with gonum/plot.
//
// Every call builds its own plot and canvas, so consecutive renderings never
// share state.
package render

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gonum.org/v1/plot/vg"
)

// ErrNothingToPlot is returned when the input has no numeric columns.
var ErrNothingToPlot = errors.New("render: nothing to plot")

// Image is a rendered PNG.
type Image struct {
	Name          string
	Width, Height vg.Length

	w io.WriterTo
}

// WriteTo encodes the image as PNG.
func (im *Image) WriteTo(w io.Writer) (int64, error) {
	return im.w.WriteTo(w)
}

// Save writes the PNG to path, replacing any existing file.
func (im *Image) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("save %s: %w", im.Name, err)
	}
	if _, err := im.WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("save %s: %w", im.Name, err)
	}
	return f.Close()
}
