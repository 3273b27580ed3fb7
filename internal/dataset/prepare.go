package dataset

import (
	"fmt"
	"math"
)

// Drop removes the named columns. Every name must be present.
func (d *Dataset) Drop(cols ...string) (*Dataset, error) {
	for _, c := range cols {
		if !d.schema.Has(c) {
			return nil, fmt.Errorf("%w: %q", ErrMissingColumn, c)
		}
	}
	return d.drop(cols), nil
}

func (d *Dataset) drop(cols []string) *Dataset {
	if len(cols) == 0 {
		return d
	}
	set := make(map[string]bool, len(cols))
	for _, c := range cols {
		set[c] = true
	}
	schema := d.schema.without(set)
	df := d.frame.Select(schema.Names())
	return &Dataset{Name: d.Name, frame: df, schema: schema}
}

// FilterLessEq keeps the records whose value in col is <= threshold, in
// their original order. Missing values never satisfy the predicate.
func (d *Dataset) FilterLessEq(col string, threshold float64) (*Dataset, error) {
	vals, err := d.Floats(col)
	if err != nil {
		return nil, err
	}
	keep := make([]int, 0, len(vals))
	for i, v := range vals {
		if !math.IsNaN(v) && v <= threshold {
			keep = append(keep, i)
		}
	}
	if len(keep) == len(vals) {
		return d, nil
	}
	return d.subset(keep), nil
}

// PrepareOptions configures Prepare.
type PrepareOptions struct {
	// Drop lists the columns to project out.
	Drop []string
	// FilterColumn is the column the threshold applies to.
	FilterColumn string
	// Threshold is the inclusive upper bound for FilterColumn.
	Threshold float64
	// AllowMissingDrop skips Drop entries that are already absent instead
	// of failing, which makes Prepare idempotent.
	AllowMissingDrop bool
}

// DefaultPrepareOptions reproduces the standard particle analysis: drop the
// identifiers and discard elongations above 100.
func DefaultPrepareOptions() PrepareOptions {
	return PrepareOptions{
		Drop:         append([]string(nil), IdentifierColumns...),
		FilterColumn: "elongation",
		Threshold:    100,
	}
}

// Prepare projects out opt.Drop and then applies the threshold filter.
func Prepare(d *Dataset, opt PrepareOptions) (*Dataset, error) {
	drop := opt.Drop
	if opt.AllowMissingDrop {
		drop = drop[:0:0]
		for _, c := range opt.Drop {
			if d.schema.Has(c) {
				drop = append(drop, c)
			}
		}
	}
	out, err := d.Drop(drop...)
	if err != nil {
		return nil, fmt.Errorf("project: %w", err)
	}
	if opt.FilterColumn == "" {
		return out, nil
	}
	out, err = out.FilterLessEq(opt.FilterColumn, opt.Threshold)
	if err != nil {
		return nil, fmt.Errorf("filter: %w", err)
	}
	return out, nil
}
