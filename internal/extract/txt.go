package extract

import (
	"context"
	"strings"
)

// extractTXT decodes the bytes as UTF-8, substituting U+FFFD for invalid sequences.
func extractTXT(_ context.Context, data []byte) (string, error) {
	return strings.ToValidUTF8(string(data), "\uFFFD"), nil
}
