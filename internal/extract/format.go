package extract

import (
	"path/filepath"
	"strings"
)

// Format identifies an extraction strategy.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
	FormatXLSX Format = "xlsx"
	FormatTXT  Format = "txt"
)

var formatByExt = map[string]Format{
	".pdf":  FormatPDF,
	".docx": FormatDOCX,
	".xlsx": FormatXLSX,
	".xls":  FormatXLSX,
	".txt":  FormatTXT,
}

// Detect maps a filename's extension to its extraction strategy.
func Detect(fileName string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(fileName))
	if f, ok := formatByExt[ext]; ok {
		return f, nil
	}
	return "", &UnsupportedFormatError{Ext: ext}
}

// label is the human-facing name used in error messages.
func (f Format) label() string {
	switch f {
	case FormatXLSX:
		return "Excel"
	case FormatDOCX:
		return "Word"
	default:
		return strings.ToUpper(string(f))
	}
}
