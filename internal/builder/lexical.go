package builder

import "strings"

// simplifications are mild synonym swaps applied for grade <= 5, each
// trading a longer/rarer word for a shorter, more common one without
// changing the question's meaning.
var simplifications = map[string]string{
	"utilize":     "use",
	"determine":   "find",
	"demonstrate": "show",
	"approximately": "about",
	"subsequently": "then",
	"additional":  "more",
	"numerous":    "many",
	"sufficient":  "enough",
}

// calibrateLexicon applies mild synonym swaps for grade <= 5, leaving
// upper-grade text untouched. Sentence length is not adjusted.
func calibrateLexicon(s string, grade int) string {
	if grade > 5 {
		return s
	}
	words := strings.Fields(s)
	for i, w := range words {
		lower := strings.ToLower(strings.Trim(w, ".,;:!?"))
		if replacement, ok := simplifications[lower]; ok {
			words[i] = preserveCase(w, replacement)
		}
	}
	return strings.Join(words, " ")
}

func preserveCase(original, replacement string) string {
	if original == "" {
		return replacement
	}
	if original[0] >= 'A' && original[0] <= 'Z' {
		return strings.ToUpper(replacement[:1]) + replacement[1:]
	}
	return replacement
}
