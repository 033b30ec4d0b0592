package entity

import "errors"

var (
	// ErrEmptyOrInvalidDocument is returned when an upload has no usable rows.
	ErrEmptyOrInvalidDocument = errors.New("empty or invalid document")
	// ErrMissingAxisSelection is returned when a plot is requested without both x and y.
	ErrMissingAxisSelection = errors.New("missing x or y axis")
	// ErrMissingFileID is returned when a file scoped query has no file id.
	ErrMissingFileID = errors.New("missing file id")
	// ErrNoDataForFile is returned when analysis targets a file without records.
	ErrNoDataForFile = errors.New("no data found for file")
)
