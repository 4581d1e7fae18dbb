package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type InterviewStatus string

const (
	StatusQueued     InterviewStatus = "queued"
	StatusProcessing InterviewStatus = "processing"
	StatusCompleted  InterviewStatus = "completed"
	StatusFailed     InterviewStatus = "failed"
)

// GeneratedQuestion is one question produced by the generator for a job
// requirements + resume pair. Rating and Comments are filled in later by
// reviewers.
type GeneratedQuestion struct {
	ID                 string  `json:"id"`
	Text               string  `json:"text"`
	Difficulty         string  `json:"difficulty"`
	Category           string  `json:"category"`
	EvaluationCriteria string  `json:"evaluationCriteria"`
	Rating             float64 `json:"rating,omitempty"`
	Comments           string  `json:"comments,omitempty"`
}

// Interview is a question-generation job.
type Interview struct {
	ID               uuid.UUID       `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	JobTitle         string          `gorm:"type:text" json:"job_title"`
	JobDescription   string          `gorm:"type:text" json:"job_description"`
	ExperienceLevel  string          `gorm:"type:text" json:"experience_level"`
	RequiredSkills   string          `gorm:"type:text" json:"required_skills"`
	ResumeDocumentID uuid.UUID       `gorm:"type:uuid;not null" json:"resume_document_id"`
	Status           InterviewStatus `gorm:"not null;default:'queued'" json:"status"`
	Questions        datatypes.JSON  `gorm:"type:jsonb" json:"questions,omitempty"`
	QuestionSource   string          `gorm:"type:text" json:"question_source,omitempty"`
	ErrorMessage     string          `gorm:"type:text" json:"error_message,omitempty"`
	CreatedAt        time.Time       `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt        time.Time       `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`

	ResumeDocument Document `gorm:"foreignKey:ResumeDocumentID" json:"-"`
}

func (Interview) TableName() string {
	return "interviews"
}
