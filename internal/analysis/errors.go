package analysis

import "fmt"

// ConversionError indicates a forced numeric conversion hit a non-numeric cell.
type ConversionError struct {
	Column string
	Row    int
	Value  string
	Err    error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("could not convert column %q to float: row %d value %q: %v", e.Column, e.Row, e.Value, e.Err)
}

func (e *ConversionError) Unwrap() error { return e.Err }
