package domain

// SourceDocument is a teacher-supplied reference material the Architect
// and Writer may draw vocabulary and scope from.
type SourceDocument struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Content string `json:"content"`
}

// TeacherIntent is the input boundary: the structured request a teacher
// submits to generate an assessment.
type TeacherIntent struct {
	GradeBand         string           `json:"gradeBand"`
	Course            string           `json:"course"`
	Unit              string          `json:"unit"`
	AssessmentType    AssessmentType   `json:"assessmentType"`
	StudentLevel      StudentLevel     `json:"studentLevel"`
	TimeMinutes       int              `json:"timeMinutes"`
	Topic             string           `json:"topic,omitempty"`
	LessonName        string           `json:"lessonName,omitempty"`
	QuestionTypes     []QuestionType   `json:"questionTypes,omitempty"`
	QuestionCount     int              `json:"questionCount,omitempty"`
	MathFormat        MathFormat       `json:"mathFormat,omitempty"`
	AdditionalDetails string           `json:"additionalDetails,omitempty"`
	SourceDocuments   []SourceDocument `json:"sourceDocuments,omitempty"`
	ExampleAssessment string           `json:"exampleAssessment,omitempty"`

	// UserID scopes SCRIBE dossiers and usage accounting; not part of the
	// pedagogical payload but required to run the pipeline.
	UserID string `json:"userId"`
}

// Grade returns a numeric grade estimate parsed out of GradeBand for
// lexical-calibration thresholds. Non-numeric bands (e.g. "K") resolve
// to 0.
func (t TeacherIntent) Grade() int {
	n := 0
	matched := false
	for _, r := range t.GradeBand {
		if r < '0' || r > '9' {
			if matched {
				break
			}
			continue
		}
		matched = true
		n = n*10 + int(r-'0')
	}
	return n
}
