package domain

// ClassifiedConstraint is one free-text directive the constraint engine
// recognized, before resolution.
type ClassifiedConstraint struct {
	Type       ConstraintType     `json:"type"`
	Polarity   Polarity           `json:"polarity"`
	Priority   ConstraintPriority `json:"priority"`
	SourceText string             `json:"sourceText"`
	// Value carries the constraint's payload where one applies (a Bloom
	// level for bloom-cap/raise, a forbidden phrase for forbidden-content,
	// a misconception tag, etc).
	Value string `json:"value,omitempty"`
	// Seq disambiguates "most recent" among same-priority, same-type,
	// contradictory constraints — higher Seq was added later.
	Seq int `json:"-"`
}

// DerivedStructuralConstraints are the structural knobs the constraint
// engine derives after resolving classified constraints. Only
// CapBloomAt can lower a ceiling; only RaiseBloomCeiling can raise one;
// a cap always wins over a raise.
type DerivedStructuralConstraints struct {
	CapBloomAt        *BloomLevel `json:"capBloomAt,omitempty"`
	RaiseBloomCeiling *BloomLevel `json:"raiseBloomCeiling,omitempty"`
	ScopeWidth        *int        `json:"scopeWidth,omitempty"`
	PacingTolerance   *float64    `json:"pacingTolerance,omitempty"`
}

// ConstraintResolution is the full output of the constraint engine:
// every classified constraint found, the subset retained after conflict
// resolution, the derived structural knobs, and informational warnings
// for anything dropped.
type ConstraintResolution struct {
	Classified []ClassifiedConstraint       `json:"classified"`
	Resolved   []ClassifiedConstraint       `json:"resolved"`
	Derived    DerivedStructuralConstraints `json:"derivedStructural"`
	Warnings   []string                     `json:"warnings,omitempty"`
}

// RigorProfile is the (floor, ceiling) Bloom band a run is constrained
// to, plus a human-readable trace of which rules fired to produce it.
type RigorProfile struct {
	DepthFloor   BloomLevel `json:"depthFloor"`
	DepthCeiling BloomLevel `json:"depthCeiling"`
	Trace        []string   `json:"trace"`
}
