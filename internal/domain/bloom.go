// Package domain holds the immutable vocabulary and shared value objects
// used across the pipeline: Bloom levels, assessment types, student
// levels, and the data model that flows between Architect, Writer,
// Gatekeeper, SCRIBE, Philosopher, and Builder.
package domain

// BloomLevel is a cognitive-demand rung on Bloom's taxonomy. The zero
// value ("") is not a valid level and has Index -1; comparisons always
// go through Index, never
// string equality, since "analyze" > "understand" is an ordering
// relationship, not a set membership one.
type BloomLevel string

const (
	BloomRemember   BloomLevel = "remember"
	BloomUnderstand BloomLevel = "understand"
	BloomApply      BloomLevel = "apply"
	BloomAnalyze    BloomLevel = "analyze"
	BloomEvaluate   BloomLevel = "evaluate"
	BloomCreate     BloomLevel = "create"
)

// bloomOrder is the single source of truth for Bloom ordering. BloomLevels
// below is declared separately and lists the levels in the same order.
var bloomOrder = map[BloomLevel]int{
	BloomRemember:   0,
	BloomUnderstand: 1,
	BloomApply:      2,
	BloomAnalyze:    3,
	BloomEvaluate:   4,
	BloomCreate:     5,
}

// BloomLevels lists every level in ascending cognitive-demand order.
var BloomLevels = []BloomLevel{
	BloomRemember, BloomUnderstand, BloomApply, BloomAnalyze, BloomEvaluate, BloomCreate,
}

// Index returns the ordinal position of a Bloom level, or -1 if it is
// not a recognized level.
func (b BloomLevel) Index() int {
	idx, ok := bloomOrder[b]
	if !ok {
		return -1
	}
	return idx
}

// Valid reports whether b is one of the six recognized Bloom levels.
func (b BloomLevel) Valid() bool {
	_, ok := bloomOrder[b]
	return ok
}

// Meets reports whether a detected Bloom level satisfies an intended
// floor: meets(detected, intended) ⇔ index(detected) ≥ index(intended).
func Meets(detected, intended BloomLevel) bool {
	return detected.Index() >= intended.Index()
}

// Clamp returns b restricted to [floor, ceiling]. If b is invalid, floor
// is returned.
func Clamp(b, floor, ceiling BloomLevel) BloomLevel {
	if !b.Valid() {
		return floor
	}
	if b.Index() < floor.Index() {
		return floor
	}
	if b.Index() > ceiling.Index() {
		return ceiling
	}
	return b
}

// Step returns the Bloom level n steps above b, clamped to the valid
// range. Negative n steps down.
func Step(b BloomLevel, n int) BloomLevel {
	idx := b.Index()
	if idx < 0 {
		idx = 0
	}
	idx += n
	if idx < 0 {
		idx = 0
	}
	if idx >= len(BloomLevels) {
		idx = len(BloomLevels) - 1
	}
	return BloomLevels[idx]
}
