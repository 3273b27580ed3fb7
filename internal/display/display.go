// Package display shows rendered images to the user.
//
// Opener hands each image to the desktop's default viewer and returns
// without waiting for it. Several windows may therefore be open at the same
// time; closing one does not gate the next.
package display

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/skratchdot/open-golang/open"
)

// Presenter shows an image.
type Presenter interface {
	Show(name string, img io.WriterTo) error
}

// Discard drops every image. Used for headless runs.
type Discard struct{}

// Show ignores img.
func (Discard) Show(string, io.WriterTo) error { return nil }

// Opener writes images under Dir and opens them with the desktop's default
// application for PNG files.
type Opener struct {
	// Dir holds the temporary PNG files. Empty means os.TempDir().
	Dir string
	// App names the application to open files with, e.g. "feh". Empty
	// means the platform default.
	App    string
	Logger *slog.Logger

	start func(path, app string) error
}

// Show writes img to a temporary file and opens it.
func (o *Opener) Show(name string, img io.WriterTo) error {
	f, err := os.CreateTemp(o.Dir, slug(name)+"-*.png")
	if err != nil {
		return fmt.Errorf("show %s: %w", name, err)
	}
	if _, err := img.WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("show %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("show %s: %w", name, err)
	}
	return o.Open(name, f.Name())
}

// Open hands an existing file to the viewer.
func (o *Opener) Open(name, path string) error {
	start := o.start
	if start == nil {
		start = startViewer
	}
	if err := start(path, o.App); err != nil {
		return fmt.Errorf("show %s: %w", name, err)
	}
	if o.Logger != nil {
		o.Logger.Info("displayed", "plot", name, "file", path, "app", o.App)
	}
	return nil
}

func startViewer(path, app string) error {
	if app == "" {
		return open.Start(path)
	}
	return open.StartWith(path, app)
}

func slug(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = strings.ReplaceAll(s, " ", "_")
	return filepath.Base(s)
}
