package dataset

import (
	"strings"

	"github.com/go-gota/gota/series"
)

// Kind is the inferred type of a column.
type Kind string

const (
	// Numeric columns hold integers or floats. Missing values read as NaN.
	Numeric Kind = "numeric"
	// Text is any column with a value that does not parse as a number.
	Text Kind = "text"
)

// Column describes one column of a Dataset.
type Column struct {
	Name string
	Kind Kind
}

// Schema is the ordered column layout of a Dataset, discovered at load time.
type Schema []Column

func kindOf(t series.Type) Kind {
	switch t {
	case series.Int, series.Float:
		return Numeric
	default:
		return Text
	}
}

// Names returns the column names in order.
func (s Schema) Names() []string {
	names := make([]string, len(s))
	for i, c := range s {
		names[i] = c.Name
	}
	return names
}

// Index returns the position of the named column, or -1.
func (s Schema) Index(name string) int {
	for i, c := range s {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// Has reports whether the named column is present.
func (s Schema) Has(name string) bool { return s.Index(name) >= 0 }

// Numeric returns the names of the numeric columns in order.
func (s Schema) Numeric() []string {
	var names []string
	for _, c := range s {
		if c.Kind == Numeric {
			names = append(names, c.Name)
		}
	}
	return names
}

func (s Schema) without(drop map[string]bool) Schema {
	out := make(Schema, 0, len(s))
	for _, c := range s {
		if !drop[c.Name] {
			out = append(out, c)
		}
	}
	return out
}

func (s Schema) String() string {
	parts := make([]string, len(s))
	for i, c := range s {
		parts[i] = c.Name + ":" + string(c.Kind)
	}
	return "[" + strings.Join(parts, " ") + "]"
}
