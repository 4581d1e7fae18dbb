package repositories

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alfredoptarigan/interview-evaluator/internal/models"
)

type AssessmentRepository interface {
	Create(assessment *models.CandidateAssessment) error
	FindByID(id uuid.UUID) (*models.CandidateAssessment, error)
	FindLatestByCandidateID(candidateID string) (*models.CandidateAssessment, error)
}

type assessmentRepository struct {
	db *gorm.DB
}

func NewAssessmentRepository(db *gorm.DB) AssessmentRepository {
	return &assessmentRepository{db: db}
}

func (r *assessmentRepository) Create(assessment *models.CandidateAssessment) error {
	if err := r.db.Create(assessment).Error; err != nil {
		return fmt.Errorf("failed to create candidate assessment: %w", err)
	}
	return nil
}

func (r *assessmentRepository) FindByID(id uuid.UUID) (*models.CandidateAssessment, error) {
	var assessment models.CandidateAssessment
	if err := r.db.Where("id = ?", id).First(&assessment).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("candidate assessment not found")
		}
		return nil, fmt.Errorf("failed to find candidate assessment: %w", err)
	}
	return &assessment, nil
}

// FindLatestByCandidateID returns the newest stored assessment for a
// candidate; re-uploads supersede older parses.
func (r *assessmentRepository) FindLatestByCandidateID(candidateID string) (*models.CandidateAssessment, error) {
	var assessment models.CandidateAssessment
	err := r.db.
		Where("candidate_id = ?", candidateID).
		Order("created_at DESC").
		First(&assessment).Error

	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("no assessment found for candidate %s", candidateID)
		}
		return nil, fmt.Errorf("failed to find candidate assessment: %w", err)
	}

	return &assessment, nil
}
