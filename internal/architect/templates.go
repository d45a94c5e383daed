package architect

import "assessment-forge/internal/domain"

// distributionTemplate gives the baseline percentage (summing to 100)
// of items at each Bloom level for an assessment type, before any
// honors/AP shift or floor/ceiling redistribution.
var distributionTemplate = map[domain.AssessmentType]map[domain.BloomLevel]int{
	domain.AssessmentBellRinger: {
		domain.BloomRemember: 60, domain.BloomUnderstand: 40,
	},
	domain.AssessmentExitTicket: {
		domain.BloomRemember: 30, domain.BloomUnderstand: 40, domain.BloomApply: 30,
	},
	domain.AssessmentQuiz: {
		domain.BloomRemember: 40, domain.BloomUnderstand: 30, domain.BloomApply: 20, domain.BloomAnalyze: 10,
	},
	domain.AssessmentTest: {
		domain.BloomRemember: 20, domain.BloomUnderstand: 25, domain.BloomApply: 25,
		domain.BloomAnalyze: 20, domain.BloomEvaluate: 10,
	},
	domain.AssessmentWorksheet: {
		domain.BloomRemember: 25, domain.BloomUnderstand: 35, domain.BloomApply: 30, domain.BloomAnalyze: 10,
	},
	domain.AssessmentTestReview: {
		domain.BloomRemember: 20, domain.BloomUnderstand: 30, domain.BloomApply: 30, domain.BloomAnalyze: 20,
	},
}

// defaultQuestionTypes is the type mix used when the teacher omits
// questionTypes, keyed by assessment type.
var defaultQuestionTypes = map[domain.AssessmentType][]domain.QuestionType{
	domain.AssessmentBellRinger:  {domain.QuestionShortAnswer},
	domain.AssessmentExitTicket:  {domain.QuestionShortAnswer, domain.QuestionMultipleChoice},
	domain.AssessmentQuiz:        {domain.QuestionMultipleChoice, domain.QuestionShortAnswer},
	domain.AssessmentTest:        {domain.QuestionMultipleChoice, domain.QuestionShortAnswer, domain.QuestionConstructedResponse},
	domain.AssessmentWorksheet:   {domain.QuestionShortAnswer, domain.QuestionMultipleChoice},
	domain.AssessmentTestReview:  {domain.QuestionMultipleChoice, domain.QuestionShortAnswer, domain.QuestionConstructedResponse},
}

// pacingMinutesPerType is the weighted minutes-per-item used to infer
// questionCount from a time budget when the teacher omits it.
var pacingMinutesPerType = map[domain.QuestionType]float64{
	domain.QuestionMultipleChoice:     1.0,
	domain.QuestionTrueFalse:          0.75,
	domain.QuestionShortAnswer:        2.5,
	domain.QuestionConstructedResponse: 6.0,
}

// difficultyProfileForLevel picks the DifficultyProfile template shape
// for a student level, used when the teacher doesn't specify one.
var difficultyProfileForLevel = map[domain.StudentLevel]domain.DifficultyProfile{
	domain.LevelRemedial: domain.ProfileEasy,
	domain.LevelStandard: domain.ProfileOnLevel,
	domain.LevelHonors:   domain.ProfileOnLevel,
	domain.LevelAP:       domain.ProfileChallenge,
}

// difficultyMix gives the {low, medium, high} weight split for a
// DifficultyProfile.
var difficultyMix = map[domain.DifficultyProfile][3]int{
	domain.ProfileEasy:      {60, 35, 5},
	domain.ProfileOnLevel:   {20, 60, 20},
	domain.ProfileChallenge: {5, 35, 60},
}
