// Package constraints implements the classification and resolution of
// free-text constraint phrases into the structural knobs the Architect
// and Rigor Profile Resolver consume.
package constraints

import (
	"strings"

	"assessment-forge/internal/domain"
)

// phrasePattern is one catalog entry: a substring to look for in
// case-folded teacher-supplied text, and the classified constraint it
// yields when found.
type phrasePattern struct {
	phrase   string
	ctype    domain.ConstraintType
	polarity domain.Polarity
	value    string
}

// catalog is the fixed phrase dictionary. It is intentionally small and
// literal rather than NLP-driven — matching the teacher's own
// preference for deterministic, explainable rules over fuzzy matching.
var catalog = []phrasePattern{
	{"no more than remember", domain.ConstraintBloomCap, domain.PolarityRequire, string(domain.BloomRemember)},
	{"keep it at the understand level", domain.ConstraintBloomCap, domain.PolarityRequire, string(domain.BloomUnderstand)},
	{"don't go past apply", domain.ConstraintBloomCap, domain.PolarityRequire, string(domain.BloomApply)},
	{"push them to analyze", domain.ConstraintBloomRaise, domain.PolarityRequire, string(domain.BloomAnalyze)},
	{"stretch to evaluate", domain.ConstraintBloomRaise, domain.PolarityRequire, string(domain.BloomEvaluate)},
	{"challenge with create", domain.ConstraintBloomRaise, domain.PolarityRequire, string(domain.BloomCreate)},
	{"no word problems", domain.ConstraintForbiddenContent, domain.PolarityForbid, "word problems"},
	{"no calculators", domain.ConstraintForbiddenContent, domain.PolarityForbid, "calculator"},
	{"avoid negative numbers", domain.ConstraintForbiddenContent, domain.PolarityForbid, "negative numbers"},
	{"include a common misconception", domain.ConstraintRequiredMisconception, domain.PolarityRequire, ""},
	{"narrow scope", domain.ConstraintScopeNarrow, domain.PolarityRequire, ""},
	{"keep it focused on one concept", domain.ConstraintScopeNarrow, domain.PolarityRequire, ""},
	{"cover the whole unit", domain.ConstraintScopeBroad, domain.PolarityRequire, ""},
	{"mix it up", domain.ConstraintScopeBroad, domain.PolarityRequire, ""},
	{"strict pacing", domain.ConstraintPacingStrict, domain.PolarityRequire, ""},
	{"plain text only", domain.ConstraintFormatPreference, domain.PolarityRequire, string(domain.MathPlain)},
	{"use latex", domain.ConstraintFormatPreference, domain.PolarityRequire, string(domain.MathLatex)},
}

// Classify scans additionalDetails for catalog phrases, case-folded,
// tagging each match explicit when the canonical fields independently
// corroborate it and heuristic otherwise.
func Classify(additionalDetails string, canonicalHints map[domain.ConstraintType]string) []domain.ClassifiedConstraint {
	folded := strings.ToLower(additionalDetails)
	var out []domain.ClassifiedConstraint
	seq := 0
	for _, p := range catalog {
		if !strings.Contains(folded, p.phrase) {
			continue
		}
		priority := domain.PriorityHeuristic
		if hint, ok := canonicalHints[p.ctype]; ok && hint == p.value {
			priority = domain.PriorityExplicit
		}
		out = append(out, domain.ClassifiedConstraint{
			Type:       p.ctype,
			Polarity:   p.polarity,
			Priority:   priority,
			SourceText: p.phrase,
			Value:      p.value,
			Seq:        seq,
		})
		seq++
	}
	return out
}

// Resolve groups classified constraints by type and drops lower-
// priority members that contradict a higher-priority polarity. Ties
// (equal priority, contradictory) keep the most recently added (higher
// Seq). Returns the surviving constraints plus one warning per dropped
// item.
func Resolve(classified []domain.ClassifiedConstraint) ([]domain.ClassifiedConstraint, []string) {
	groups := make(map[domain.ConstraintType][]domain.ClassifiedConstraint)
	for _, c := range classified {
		groups[c.Type] = append(groups[c.Type], c)
	}

	var resolved []domain.ClassifiedConstraint
	var warnings []string
	for _, group := range groups {
		resolved = append(resolved, resolveGroup(group, &warnings)...)
	}
	return resolved, warnings
}

func resolveGroup(group []domain.ClassifiedConstraint, warnings *[]string) []domain.ClassifiedConstraint {
	keep := make([]bool, len(group))
	for i := range group {
		keep[i] = true
	}

	for i := 0; i < len(group); i++ {
		if !keep[i] {
			continue
		}
		for j := i + 1; j < len(group); j++ {
			if !keep[j] || group[i].Polarity == group[j].Polarity {
				continue
			}
			winner, loser := pickWinner(i, j, group)
			keep[loser] = false
			*warnings = append(*warnings, "dropped conflicting constraint: "+group[loser].SourceText+" (superseded by "+group[winner].SourceText+")")
		}
	}

	var out []domain.ClassifiedConstraint
	for i, k := range keep {
		if k {
			out = append(out, group[i])
		}
	}
	return out
}

// pickWinner returns (winnerIdx, loserIdx) between positions i and j in
// group: higher priority wins; equal priority keeps the higher Seq
// (most recently added).
func pickWinner(i, j int, group []domain.ClassifiedConstraint) (int, int) {
	a, b := group[i], group[j]
	if a.Priority != b.Priority {
		if a.Priority == domain.PriorityExplicit {
			return i, j
		}
		return j, i
	}
	if a.Seq >= b.Seq {
		return i, j
	}
	return j, i
}

// Derive computes the structural knobs from resolved constraints.
// Absent fields are left nil — callers treat nil as "no override", not
// as a zero value.
func Derive(resolved []domain.ClassifiedConstraint) domain.DerivedStructuralConstraints {
	var out domain.DerivedStructuralConstraints

	var strongestCap *domain.ClassifiedConstraint
	var raise *domain.ClassifiedConstraint
	for i := range resolved {
		c := &resolved[i]
		switch c.Type {
		case domain.ConstraintBloomCap:
			if strongestCap == nil || c.Priority == domain.PriorityExplicit {
				strongestCap = c
			}
		case domain.ConstraintBloomRaise:
			raise = c
		case domain.ConstraintScopeNarrow:
			width := 2
			out.ScopeWidth = &width
		case domain.ConstraintScopeBroad:
			width := 6
			out.ScopeWidth = &width
		case domain.ConstraintPacingStrict:
			tol := 0.08
			out.PacingTolerance = &tol
		}
	}
	if strongestCap != nil {
		level := domain.BloomLevel(strongestCap.Value)
		out.CapBloomAt = &level
	}
	if raise != nil && strongestCap == nil {
		level := domain.BloomLevel(raise.Value)
		out.RaiseBloomCeiling = &level
	}
	return out
}

// Run performs the full classify → resolve → derive pipeline in one
// call for convenience at the Architect call site.
func Run(additionalDetails string, canonicalHints map[domain.ConstraintType]string) domain.ConstraintResolution {
	classified := Classify(additionalDetails, canonicalHints)
	resolved, warnings := Resolve(classified)
	derived := Derive(resolved)
	return domain.ConstraintResolution{
		Classified: classified,
		Resolved:   resolved,
		Derived:    derived,
		Warnings:   warnings,
	}
}
