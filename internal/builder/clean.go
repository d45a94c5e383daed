// Package builder transforms committed GeneratedItems into a
// presentable FinalAssessment: text cleaning, math normalization and
// format-specific rendering, lexical calibration, and pagination.
package builder

import "strings"

var escapeReplacer = strings.NewReplacer(
	`\'`, "'",
	`\"`, `"`,
	`\n`, " ",
	`\t`, " ",
)

var smartPunctuationReplacer = strings.NewReplacer(
	"‘", "'", "’", "'",
	"“", `"`, "”", `"`,
	"–", "-", "—", "--",
)

// cleanText strips residual JSON escape artifacts, normalizes smart
// quotes/dashes to their straight/double-hyphen forms, and collapses
// whitespace.
func cleanText(s string) string {
	s = escapeReplacer.Replace(s)
	s = smartPunctuationReplacer.Replace(s)
	return collapseWhitespace(s)
}

func collapseWhitespace(s string) string {
	fields := strings.Fields(s)
	return strings.Join(fields, " ")
}
