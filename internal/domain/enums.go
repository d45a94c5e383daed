package domain

// AssessmentType is the kind of artifact being generated.
type AssessmentType string

const (
	AssessmentBellRinger  AssessmentType = "bellRinger"
	AssessmentExitTicket  AssessmentType = "exitTicket"
	AssessmentQuiz        AssessmentType = "quiz"
	AssessmentTest        AssessmentType = "test"
	AssessmentWorksheet   AssessmentType = "worksheet"
	AssessmentTestReview  AssessmentType = "testReview"
)

// StudentLevel is the rigor tier the request is targeted at.
type StudentLevel string

const (
	LevelRemedial StudentLevel = "remedial"
	LevelStandard StudentLevel = "standard"
	LevelHonors   StudentLevel = "honors"
	LevelAP       StudentLevel = "ap"
)

// MathFormat controls how Builder renders normalized math expressions.
type MathFormat string

const (
	MathUnicode MathFormat = "unicode"
	MathPlain   MathFormat = "plain"
	MathLatex   MathFormat = "latex"
)

// QuestionType is the item shape the Writer can produce.
type QuestionType string

const (
	QuestionMultipleChoice    QuestionType = "multipleChoice"
	QuestionShortAnswer       QuestionType = "shortAnswer"
	QuestionConstructedResponse QuestionType = "constructedResponse"
	QuestionTrueFalse         QuestionType = "trueFalse"
)

// DifficultyModifier scales an individual slot's difficulty within its
// Bloom level.
type DifficultyModifier string

const (
	DifficultyLow    DifficultyModifier = "low"
	DifficultyMedium DifficultyModifier = "medium"
	DifficultyHigh   DifficultyModifier = "high"
)

// DifficultyProfile is the overall shape of the assessment's difficulty
// curve.
type DifficultyProfile string

const (
	ProfileEasy      DifficultyProfile = "easy"
	ProfileOnLevel   DifficultyProfile = "onLevel"
	ProfileChallenge DifficultyProfile = "challenge"
)

// OrderingStrategy controls how slots are sequenced by Bloom level.
type OrderingStrategy string

const (
	OrderingProgressive OrderingStrategy = "progressive"
	OrderingMixed       OrderingStrategy = "mixed"
	OrderingBackloaded  OrderingStrategy = "backloaded"
)

// ConstraintType enumerates the closed set of classified constraint
// kinds the constraint engine can produce.
type ConstraintType string

const (
	ConstraintBloomCap            ConstraintType = "bloom-cap"
	ConstraintBloomRaise          ConstraintType = "bloom-raise"
	ConstraintForbiddenContent    ConstraintType = "forbidden-content"
	ConstraintRequiredMisconception ConstraintType = "required-misconception"
	ConstraintScopeNarrow         ConstraintType = "scope-narrow"
	ConstraintScopeBroad          ConstraintType = "scope-broad"
	ConstraintPacingStrict        ConstraintType = "pacing-strict"
	ConstraintFormatPreference    ConstraintType = "format-preference"
)

// Polarity is whether a constraint requires or forbids its subject.
type Polarity string

const (
	PolarityRequire Polarity = "require"
	PolarityForbid  Polarity = "forbid"
)

// ConstraintPriority ranks how a constraint was discovered; explicit
// teacher phrasing always outranks heuristic inference.
type ConstraintPriority string

const (
	PriorityExplicit  ConstraintPriority = "explicit"
	PriorityHeuristic ConstraintPriority = "heuristic"
)

// ViolationType is the closed catalog of Gatekeeper findings.
type ViolationType string

const (
	ViolationMissingField              ViolationType = "missing-field"
	ViolationInvalidJSON               ViolationType = "invalid-json"
	ViolationMCQOptionsInvalid         ViolationType = "mcq-options-invalid"
	ViolationMCQAnswerMismatch         ViolationType = "mcq-answer-mismatch"
	ViolationCognitiveDemandMismatch   ViolationType = "cognitive-demand-mismatch"
	ViolationDifficultyMismatch        ViolationType = "difficulty-mismatch"
	ViolationTopicMismatch             ViolationType = "topic-mismatch"
	ViolationDomainMismatch            ViolationType = "domain-mismatch"
	ViolationForbiddenContent         ViolationType = "forbidden-content"
	ViolationMissingMisconception      ViolationType = "missing-misconception-alignment"
	ViolationPacing                    ViolationType = "pacing-violation"
	ViolationScopeWidth                ViolationType = "scope-width-violation"
	ViolationOrdering                  ViolationType = "ordering-violation"
	ViolationFormat                    ViolationType = "format-violation"
)

// Severity ranks how urgently a violation must be addressed.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "med"
	SeverityHigh   Severity = "high"
)

// Culprit is which agent's output produced a violation.
type Culprit string

const (
	CulpritWriter    Culprit = "writer"
	CulpritArchitect Culprit = "architect"
)

// AgentPrefix names the three agent families SCRIBE keeps dossiers for.
type AgentPrefix string

const (
	AgentWriter     AgentPrefix = "writer"
	AgentArchitect  AgentPrefix = "architect"
	AgentAstronomer AgentPrefix = "astronomer"
)

// BloomDirection records whether a misaligned item over- or
// under-shot its intended Bloom level.
type BloomDirection string

const (
	DirectionOver  BloomDirection = "over"
	DirectionUnder BloomDirection = "under"
)

// FrictionTier classifies how much rewrite friction a run produced.
type FrictionTier string

const (
	FrictionNone     FrictionTier = "none"
	FrictionMild     FrictionTier = "mild"
	FrictionSystemic FrictionTier = "systemic"
)
