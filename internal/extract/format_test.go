package extract

import (
	"errors"
	"testing"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name     string
		fileName string
		want     Format
		wantExt  string
	}{
		{name: "pdf", fileName: "report.pdf", want: FormatPDF},
		{name: "uppercase docx", fileName: "Contract.DOCX", want: FormatDOCX},
		{name: "xlsx", fileName: "q3.xlsx", want: FormatXLSX},
		{name: "legacy xls shares xlsx strategy", fileName: "old.xls", want: FormatXLSX},
		{name: "txt", fileName: "notes.txt", want: FormatTXT},
		{name: "double extension uses last", fileName: "archive.txt.pdf", want: FormatPDF},
		{name: "svg unsupported", fileName: "logo.svg", wantExt: ".svg"},
		{name: "no extension", fileName: "README", wantExt: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Detect(tt.fileName)
			if tt.want != "" {
				if err != nil {
					t.Fatalf("Detect(%q) unexpected error: %v", tt.fileName, err)
				}
				if got != tt.want {
					t.Fatalf("Detect(%q) = %q, want %q", tt.fileName, got, tt.want)
				}
				return
			}
			var unsupported *UnsupportedFormatError
			if !errors.As(err, &unsupported) {
				t.Fatalf("Detect(%q) expected UnsupportedFormatError, got %v", tt.fileName, err)
			}
			if unsupported.Ext != tt.wantExt {
				t.Fatalf("expected ext %q, got %q", tt.wantExt, unsupported.Ext)
			}
		})
	}
}

func TestUnsupportedFormatMessage(t *testing.T) {
	_, err := Detect("diagram.SVG")
	if err == nil || err.Error() != "Unsupported file type: .svg" {
		t.Fatalf("unexpected error: %v", err)
	}
}
