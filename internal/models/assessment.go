package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type QuestionCategory string

const (
	CategoryTechnical   QuestionCategory = "technical"
	CategoryBehavioral  QuestionCategory = "behavioral"
	CategorySituational QuestionCategory = "situational"
	CategoryExperience  QuestionCategory = "experience"
)

type QuestionDifficulty string

const (
	DifficultyEasy   QuestionDifficulty = "easy"
	DifficultyMedium QuestionDifficulty = "medium"
	DifficultyHard   QuestionDifficulty = "hard"
)

// InterviewQuestion is one rated question extracted from an assessment PDF.
type InterviewQuestion struct {
	ID                 string             `json:"id"`
	Question           string             `json:"question"`
	Category           QuestionCategory   `json:"category"`
	Difficulty         QuestionDifficulty `json:"difficulty"`
	Duration           int                `json:"duration"`
	Rating             float64            `json:"rating"`
	MaxRating          float64            `json:"maxRating"`
	Comments           string             `json:"comments,omitempty"`
	EvaluationCriteria string             `json:"evaluationCriteria"`
}

type CategoryBreakdown struct {
	Technical   int `json:"technical"`
	Behavioral  int `json:"behavioral"`
	Situational int `json:"situational"`
	Experience  int `json:"experience"`
}

// Total returns the number of questions counted across all categories.
func (b CategoryBreakdown) Total() int {
	return b.Technical + b.Behavioral + b.Situational + b.Experience
}

// InterviewAssessment is the structured record extracted from one candidate's
// interview-assessment PDF. The summary figures (TotalDuration, QuestionsRated,
// AverageRating) are kept as the document reports them and are never reconciled
// with the parsed question list.
type InterviewAssessment struct {
	CandidateName     string              `json:"candidateName"`
	JobTitle          string              `json:"jobTitle"`
	Department        string              `json:"department"`
	ExperienceLevel   string              `json:"experienceLevel"`
	RequiredSkills    []string            `json:"requiredSkills"`
	ResumeFileName    string              `json:"resumeFileName"`
	GeneratedDate     time.Time           `json:"generatedDate"`
	TotalQuestions    int                 `json:"totalQuestions"`
	TotalDuration     int                 `json:"totalDuration"`
	QuestionsRated    int                 `json:"questionsRated"`
	AverageRating     float64             `json:"averageRating"`
	Questions         []InterviewQuestion `json:"questions"`
	CategoryBreakdown CategoryBreakdown   `json:"categoryBreakdown"`
}

// CandidateAssessment is the persisted form of a parsed assessment.
type CandidateAssessment struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	CandidateID string         `gorm:"type:text;not null" json:"candidate_id"`
	DocumentID  uuid.UUID      `gorm:"type:uuid;not null" json:"document_id"`
	Assessment  datatypes.JSON `gorm:"type:jsonb" json:"assessment"`
	CreatedAt   time.Time      `gorm:"type:timestamp;default:now()" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"type:timestamp;default:now()" json:"updated_at"`

	Document Document `gorm:"foreignKey:DocumentID" json:"-"`
}

func (CandidateAssessment) TableName() string {
	return "candidate_assessments"
}
