package extract

import (
	"regexp"
	"strings"
)

var (
	// Whitespace as JavaScript's \s defines it, so uploads normalize the same
	// way regardless of which Unicode space separators they carry.
	whitespaceClass = `\s\v\p{Zs}\x{2028}\x{2029}\x{FEFF}`

	disallowedRe = regexp.MustCompile(`[^\w` + whitespaceClass + `.,!?;:()\-]+`)
	whitespaceRe = regexp.MustCompile(`[` + whitespaceClass + `]+`)
)

// Normalize strips every character other than ASCII word characters,
// whitespace and . , ! ? ; : ( ) -, collapses whitespace runs to one space
// and trims the result. Normalize(Normalize(s)) == Normalize(s).
func Normalize(text string) string {
	text = disallowedRe.ReplaceAllString(text, "")
	text = whitespaceRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
