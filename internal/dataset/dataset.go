// Package dataset loads the particle-shape table and prepares it for
// analysis: projecting out identifier columns and filtering rows.
//
// A Dataset is immutable. Every operation returns a new Dataset and leaves
// its receiver untouched.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"slices"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Columns written by the particle descriptor extractor, in file order.
var DefaultDescriptorColumns = []string{
	"particle_number",
	"contour_number",
	"area_from_moment",
	"fancy_area",
	"arch_length",
	"feret_x",
	"feret_y",
	"convexity",
	"aspect_ratio",
	"elongation",
}

// Identifier columns that carry no measurement.
var IdentifierColumns = []string{"particle_number", "contour_number"}

// NoElongation is the value the extractor writes when a contour has too few
// points to fit an ellipse.
const NoElongation = 999

var missingValues = []string{"", "NA", "NaN", "<nil>"}

// Dataset is a table of records sharing one schema.
type Dataset struct {
	Name   string
	frame  dataframe.DataFrame
	schema Schema
}

// Load reads a comma-delimited file with a header row. The file is closed
// before Load returns.
func Load(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f, path)
}

// Read parses CSV from r. Numeric columns are detected from their values;
// anything else is kept as text. A column with no values at all is numeric
// and entirely NaN. A header with no rows gives an empty Dataset.
func Read(r io.Reader, name string) (*Dataset, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, name, err)
	}
	if len(records) == 0 || len(records[0]) == 0 {
		return nil, fmt.Errorf("%w: %s: no columns", ErrMalformed, name)
	}

	var df dataframe.DataFrame
	if len(records) == 1 {
		df = emptyFrame(records[0])
	} else {
		df = dataframe.LoadRecords(records,
			dataframe.HasHeader(true),
			dataframe.DetectTypes(true),
			dataframe.NaNValues(missingValues),
			dataframe.WithTypes(blankColumns(records)),
		)
	}
	if df.Err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, name, df.Err)
	}
	return fromFrame(name, df), nil
}

// blankColumns types every column holding only missing values as float.
// Type detection would otherwise fall back to string for them.
func blankColumns(records [][]string) map[string]series.Type {
	types := map[string]series.Type{}
	for i, col := range records[0] {
		blank := true
		for _, rec := range records[1:] {
			if !slices.Contains(missingValues, rec[i]) {
				blank = false
				break
			}
		}
		if blank {
			types[col] = series.Float
		}
	}
	return types
}

func emptyFrame(header []string) dataframe.DataFrame {
	cols := make([]series.Series, len(header))
	for i, h := range header {
		cols[i] = series.New([]float64{}, series.Float, h)
	}
	return dataframe.New(cols...)
}

func fromFrame(name string, df dataframe.DataFrame) *Dataset {
	names := df.Names()
	types := df.Types()
	schema := make(Schema, len(names))
	for i := range names {
		schema[i] = Column{Name: names[i], Kind: kindOf(types[i])}
	}
	return &Dataset{Name: name, frame: df, schema: schema}
}

// Schema returns the column layout. The returned slice must not be modified.
func (d *Dataset) Schema() Schema { return d.schema }

// Len returns the number of records.
func (d *Dataset) Len() int { return d.frame.Nrow() }

// Columns returns the column names in order.
func (d *Dataset) Columns() []string { return d.schema.Names() }

// Floats returns a copy of a numeric column. Missing values are NaN.
func (d *Dataset) Floats(name string) ([]float64, error) {
	i := d.schema.Index(name)
	if i < 0 {
		return nil, fmt.Errorf("%w: %q", ErrMissingColumn, name)
	}
	if d.schema[i].Kind != Numeric {
		return nil, fmt.Errorf("%w: %q", ErrNotNumeric, name)
	}
	return d.frame.Col(name).Float(), nil
}

// Records returns the rows as text, in column order.
func (d *Dataset) Records() [][]string {
	// gota includes the header as the first record.
	return d.frame.Records()[1:]
}

// Head returns the first n records.
func (d *Dataset) Head(n int) *Dataset {
	if n >= d.Len() {
		return d
	}
	if n < 0 {
		n = 0
	}
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	return d.subset(idx)
}

func (d *Dataset) subset(idx []int) *Dataset {
	var df dataframe.DataFrame
	if len(idx) == 0 {
		cols := make([]series.Series, 0, len(d.schema))
		for _, c := range d.schema {
			cols = append(cols, d.frame.Col(c.Name).Empty())
		}
		df = dataframe.New(cols...)
	} else {
		df = d.frame.Subset(idx)
	}
	return &Dataset{Name: d.Name, frame: df, schema: d.schema}
}

// Describe returns per-column summary statistics (mean, std, min,
// quartiles, max) as a text table.
func (d *Dataset) Describe() string {
	return d.frame.Describe().String()
}

// String renders the dataset as a text table.
func (d *Dataset) String() string {
	return d.frame.String()
}
