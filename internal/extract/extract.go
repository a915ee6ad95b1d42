// Package extract turns uploaded office documents into plain text.
//
// Libraries used: github.com/ledongthuc/pdf (PDF) and github.com/xuri/excelize/v2
// (XLSX). DOCX is read straight from word/document.xml.
package extract

import (
	"context"
	"errors"
	"fmt"
)

// Extractor converts one format's raw bytes into plain text.
type Extractor interface {
	Extract(ctx context.Context, data []byte) (string, error)
}

// ExtractorFunc adapts a function to Extractor.
type ExtractorFunc func(ctx context.Context, data []byte) (string, error)

// Extract calls f.
func (f ExtractorFunc) Extract(ctx context.Context, data []byte) (string, error) {
	return f(ctx, data)
}

// Registry dispatches each Format to exactly one Extractor.
type Registry struct {
	extractors map[Format]Extractor
}

// NewRegistry returns a Registry wired with the built-in extractors.
func NewRegistry() *Registry {
	return &Registry{
		extractors: map[Format]Extractor{
			FormatPDF:  ExtractorFunc(extractPDF),
			FormatDOCX: ExtractorFunc(extractDOCX),
			FormatXLSX: ExtractorFunc(extractXLSX),
			FormatTXT:  ExtractorFunc(extractTXT),
		},
	}
}

// With returns a copy of the registry using ext for format f.
func (r *Registry) With(f Format, ext Extractor) *Registry {
	next := make(map[Format]Extractor, len(r.extractors)+1)
	for k, v := range r.extractors {
		next[k] = v
	}
	next[f] = ext
	return &Registry{extractors: next}
}

// Extract runs the extractor registered for f. Every failure, including a
// parser panic, is returned as *ExtractionError.
func (r *Registry) Extract(ctx context.Context, f Format, data []byte) (text string, err error) {
	ext, ok := r.extractors[f]
	if !ok {
		return "", &ExtractionError{Format: f, Err: errors.New("no extractor registered")}
	}
	if err := ctx.Err(); err != nil {
		return "", &ExtractionError{Format: f, Err: err}
	}

	defer func() {
		if rec := recover(); rec != nil {
			text = ""
			err = &ExtractionError{Format: f, Err: fmt.Errorf("parser panic: %v", rec)}
		}
	}()

	text, err = ext.Extract(ctx, data)
	if err != nil {
		var extErr *ExtractionError
		if errors.As(err, &extErr) {
			return "", err
		}
		return "", &ExtractionError{Format: f, Err: err}
	}
	return text, nil
}
