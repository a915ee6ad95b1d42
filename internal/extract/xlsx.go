package extract

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// extractXLSX renders every worksheet as a "Sheet: <name>" header followed by
// one comma-joined line per non-empty row, with a blank line between sheets.
func extractXLSX(ctx context.Context, data []byte) (string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	defer f.Close()

	var b strings.Builder
	for _, name := range f.GetSheetList() {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		rows, err := f.GetRows(name)
		if err != nil {
			return "", fmt.Errorf("sheet %q: %w", name, err)
		}
		b.WriteString("Sheet: ")
		b.WriteString(name)
		b.WriteByte('\n')
		for _, row := range rows {
			if len(row) == 0 {
				continue
			}
			b.WriteString(strings.Join(row, ", "))
			b.WriteByte('\n')
		}
		b.WriteByte('\n')
	}
	return b.String(), nil
}
