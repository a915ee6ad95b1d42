package extract

import "fmt"

// UnsupportedFormatError reports a file extension with no extraction strategy.
type UnsupportedFormatError struct {
	Ext string
}

func (e *UnsupportedFormatError) Error() string {
	return "Unsupported file type: " + e.Ext
}

// ExtractionError wraps a parser failure for one file.
type ExtractionError struct {
	Format Format
	Err    error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("%s processing error: %v", e.Format.label(), e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}
