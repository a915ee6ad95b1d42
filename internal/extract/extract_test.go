package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"das-backend/internal/extract/extracttest"
)

const docxBody = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>Quarterly</w:t></w:r><w:r><w:t xml:space="preserve"> report</w:t></w:r></w:p>
    <w:p><w:r><w:t>Revenue grew</w:t><w:tab/><w:t>12%</w:t></w:r></w:p>
  </w:body>
</w:document>`

func buildDOCX(t *testing.T, body string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatalf("create zip entry: %v", err)
	}
	if _, err := w.Write([]byte(body)); err != nil {
		t.Fatalf("write zip entry: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

func buildXLSX(t *testing.T) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", "Revenue"); err != nil {
		t.Fatalf("rename sheet: %v", err)
	}
	rows := [][]any{{"Region", "Total"}, {"North", 120}, {"South", 80}}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow("Revenue", cell, &row); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}
	if _, err := f.NewSheet("Empty"); err != nil {
		t.Fatalf("new sheet: %v", err)
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write xlsx: %v", err)
	}
	return buf.Bytes()
}

func TestRegistryExtractWellFormed(t *testing.T) {
	reg := NewRegistry()
	ctx := context.Background()

	tests := []struct {
		name   string
		format Format
		data   []byte
		want   string
	}{
		{
			name:   "pdf",
			format: FormatPDF,
			data:   extracttest.PDF("Hello PDF"),
			want:   "Hello PDF",
		},
		{
			name:   "docx",
			format: FormatDOCX,
			data:   buildDOCX(t, docxBody),
			want:   "Quarterly report\nRevenue grew\t12%",
		},
		{
			name:   "xlsx with empty sheet",
			format: FormatXLSX,
			data:   buildXLSX(t),
			want:   "Sheet: Revenue\nRegion, Total\nNorth, 120\nSouth, 80\n\nSheet: Empty\n\n",
		},
		{
			name:   "txt verbatim",
			format: FormatTXT,
			data:   []byte("line one\n\tline two\n"),
			want:   "line one\n\tline two\n",
		},
		{
			name:   "txt invalid utf8 replaced",
			format: FormatTXT,
			data:   []byte{'o', 'k', 0xff, '!'},
			want:   "ok\uFFFD!",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := reg.Extract(ctx, tt.format, tt.data)
			if err != nil {
				t.Fatalf("extract: %v", err)
			}
			if tt.format == FormatPDF {
				// Page text may carry layout newlines around the run.
				got = strings.TrimSpace(got)
			}
			if got != tt.want {
				t.Fatalf("extract = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRegistryExtractMalformed(t *testing.T) {
	reg := NewRegistry()
	ctx := context.Background()

	noBody := func() []byte {
		var buf bytes.Buffer
		zw := zip.NewWriter(&buf)
		w, _ := zw.Create("notes.txt")
		_, _ = w.Write([]byte("hello"))
		_ = zw.Close()
		return buf.Bytes()
	}()

	tests := []struct {
		name    string
		format  Format
		data    []byte
		wantMsg string
	}{
		{name: "pdf garbage", format: FormatPDF, data: []byte("definitely not a pdf"), wantMsg: "PDF processing error"},
		{name: "pdf empty", format: FormatPDF, data: nil, wantMsg: "PDF processing error: empty pdf data"},
		{name: "docx not zip", format: FormatDOCX, data: []byte("plain bytes"), wantMsg: "Word processing error"},
		{name: "docx missing body", format: FormatDOCX, data: noBody, wantMsg: "document.xml file not found"},
		{name: "xlsx not zip", format: FormatXLSX, data: []byte("a,b,c"), wantMsg: "Excel processing error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := reg.Extract(ctx, tt.format, tt.data)
			var extErr *ExtractionError
			if !errors.As(err, &extErr) {
				t.Fatalf("expected ExtractionError, got %v", err)
			}
			if extErr.Format != tt.format {
				t.Fatalf("expected format %q, got %q", tt.format, extErr.Format)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Fatalf("error %q does not contain %q", err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestRegistryRecoversParserPanic(t *testing.T) {
	reg := NewRegistry().With(FormatPDF, ExtractorFunc(func(context.Context, []byte) (string, error) {
		panic("index out of range")
	}))

	_, err := reg.Extract(context.Background(), FormatPDF, []byte("%PDF-1.4"))
	var extErr *ExtractionError
	if !errors.As(err, &extErr) {
		t.Fatalf("expected ExtractionError, got %v", err)
	}
	if !strings.Contains(err.Error(), "parser panic: index out of range") {
		t.Fatalf("unexpected message: %v", err)
	}
}

func TestRegistryHonoursCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewRegistry().Extract(ctx, FormatTXT, []byte("hello"))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled in chain, got %v", err)
	}
}

func TestWithDoesNotMutateOriginal(t *testing.T) {
	base := NewRegistry()
	_ = base.With(FormatTXT, ExtractorFunc(func(context.Context, []byte) (string, error) {
		return "", errors.New("boom")
	}))
	got, err := base.Extract(context.Background(), FormatTXT, []byte("still here"))
	if err != nil || got != "still here" {
		t.Fatalf("base registry changed: got %q err %v", got, err)
	}
}
