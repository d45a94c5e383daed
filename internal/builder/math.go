package builder

import (
	"regexp"
	"strings"

	"assessment-forge/internal/domain"
)

var superscriptDigits = map[rune]string{
	'⁰': "0", '¹': "1", '²': "2", '³': "3", '⁴': "4",
	'⁵': "5", '⁶': "6", '⁷': "7", '⁸': "8", '⁹': "9",
}

var (
	unicodeSuperscriptRun = regexp.MustCompile(`[\x{2070}-\x{2079}]+`)
	caretExponent         = regexp.MustCompile(`([A-Za-z0-9\)])\^([A-Za-z0-9]+)`)
	numericFraction       = regexp.MustCompile(`\b(\d+)/(\d+)\b`)
	parenFraction         = regexp.MustCompile(`\(([A-Za-z0-9+\-\s]+)\)/\(([A-Za-z0-9+\-\s]+)\)`)
	unicodeSqrt           = regexp.MustCompile(`√\(?([A-Za-z0-9+\-]+)\)?`)
	plainSqrt             = regexp.MustCompile(`sqrt\(([^)]+)\)`)
	multiplicationDot     = regexp.MustCompile(`(\d+)\s*[·*]\s*([A-Za-z])`)
	doubleBraces          = regexp.MustCompile(`\{\{+`)
	doubleBracesClose     = regexp.MustCompile(`\}\}+`)
	latexFrac             = regexp.MustCompile(`\\frac\{([^{}]*)\}\{([^{}]*)\}`)
	latexSqrt             = regexp.MustCompile(`\\sqrt\{([^{}]*)\}`)
	latexExponent         = regexp.MustCompile(`\^\{([^{}]*)\}`)
	parenMultiplication   = regexp.MustCompile(`(\d+)\s*\(([A-Za-z0-9+\-]+)\)`)
)

// normalizeMath converts every recognized math shorthand to the
// canonical LaTeX-flavored form used internally, before mathFormat
// rendering narrows it back down.
func normalizeMath(s string) string {
	s = unicodeSuperscriptRun.ReplaceAllStringFunc(s, func(run string) string {
		var digits strings.Builder
		for _, r := range run {
			digits.WriteString(superscriptDigits[r])
		}
		return "^{" + digits.String() + "}"
	})

	s = caretExponent.ReplaceAllString(s, `$1^{$2}`)
	s = parenFraction.ReplaceAllString(s, `\frac{$1}{$2}`)
	s = numericFraction.ReplaceAllString(s, `\frac{$1}{$2}`)
	s = unicodeSqrt.ReplaceAllString(s, `\sqrt{$1}`)
	s = plainSqrt.ReplaceAllString(s, `\sqrt{$1}`)
	s = multiplicationDot.ReplaceAllString(s, `$1$2`)
	s = doubleBraces.ReplaceAllString(s, "{")
	s = doubleBracesClose.ReplaceAllString(s, "}")

	return s
}

// formatMath renders canonical math markup per the requested
// mathFormat.
func formatMath(s string, format domain.MathFormat) string {
	switch format {
	case domain.MathUnicode:
		return toUnicode(s)
	case domain.MathPlain:
		return toPlain(s)
	default:
		return s // latex: leave canonical, already the internal form
	}
}

func toUnicode(s string) string {
	s = latexFrac.ReplaceAllString(s, `($1)/($2)`)
	s = latexSqrt.ReplaceAllString(s, `√($1)`)
	s = latexExponent.ReplaceAllStringFunc(s, func(m string) string {
		groups := latexExponent.FindStringSubmatch(m)
		return toSuperscript(groups[1])
	})
	s = parenMultiplication.ReplaceAllString(s, `$1·($2)`)
	return s
}

func toPlain(s string) string {
	s = latexFrac.ReplaceAllString(s, `($1)/($2)`)
	s = latexSqrt.ReplaceAllString(s, `sqrt($1)`)
	s = latexExponent.ReplaceAllString(s, `^$1`)
	return s
}

var superscriptOut = map[rune]rune{
	'0': '⁰', '1': '¹', '2': '²', '3': '³', '4': '⁴',
	'5': '⁵', '6': '⁶', '7': '⁷', '8': '⁸', '9': '⁹',
}

func toSuperscript(digits string) string {
	var out strings.Builder
	for _, r := range digits {
		if sup, ok := superscriptOut[r]; ok {
			out.WriteRune(sup)
		} else {
			out.WriteRune(r)
		}
	}
	return out.String()
}
