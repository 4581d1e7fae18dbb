package models

// QuestionBreakdown splits questions into high (rating >= 4) and low
// (rating <= 2) performers. Informational only, not used in score math.
type QuestionBreakdown struct {
	HighPerformance []InterviewQuestion `json:"highPerformance"`
	LowPerformance  []InterviewQuestion `json:"lowPerformance"`
}

// CandidateScores is derived from an InterviewAssessment on demand. All
// percentage fields are integers in [0,100].
type CandidateScores struct {
	OverallMatch      int               `json:"overallMatch"`
	TechnicalScore    int               `json:"technicalScore"`
	BehavioralScore   int               `json:"behavioralScore"`
	SituationalScore  int               `json:"situationalScore"`
	ExperienceScore   int               `json:"experienceScore"`
	ConsistencyScore  int               `json:"consistencyScore"`
	AverageRating     int               `json:"averageRating"`
	Strengths         []string          `json:"strengths"`
	Weaknesses        []string          `json:"weaknesses"`
	Summary           string            `json:"summary"`
	QuestionBreakdown QuestionBreakdown `json:"questionBreakdown"`
}
