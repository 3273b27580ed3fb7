package dataset

import "errors"

var (
	// ErrNotFound is returned when the input file does not exist.
	ErrNotFound = errors.New("dataset: input not found")
	// ErrMalformed is returned when the input cannot be parsed as a table,
	// e.g. a row has a different number of fields than the header.
	ErrMalformed = errors.New("dataset: malformed input")
	// ErrMissingColumn is returned when a stage refers to a column the
	// dataset does not have.
	ErrMissingColumn = errors.New("dataset: missing column")
	// ErrNotNumeric is returned when a numeric operation targets a text column.
	ErrNotNumeric = errors.New("dataset: column is not numeric")
)
