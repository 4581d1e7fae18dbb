package repositories

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"alfredoptarigan/interview-evaluator/internal/models"
)

type InterviewRepository interface {
	Create(interview *models.Interview) error
	FindByID(id uuid.UUID) (*models.Interview, error)
	UpdateStatus(id uuid.UUID, status models.InterviewStatus) error
	UpdateQuestions(id uuid.UUID, questions datatypes.JSON, source string) error
	UpdateError(id uuid.UUID, errorMsg string) error
	FindPendingJobs(limit int) ([]models.Interview, error)
}

type interviewRepository struct {
	db *gorm.DB
}

func NewInterviewRepository(db *gorm.DB) InterviewRepository {
	return &interviewRepository{db: db}
}

func (r *interviewRepository) Create(interview *models.Interview) error {
	if err := r.db.Create(interview).Error; err != nil {
		return fmt.Errorf("failed to create interview: %w", err)
	}
	return nil
}

func (r *interviewRepository) FindByID(id uuid.UUID) (*models.Interview, error) {
	var interview models.Interview
	if err := r.db.Where("id = ?", id).First(&interview).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("interview not found")
		}
		return nil, fmt.Errorf("failed to find interview: %w", err)
	}
	return &interview, nil
}

func (r *interviewRepository) UpdateStatus(id uuid.UUID, status models.InterviewStatus) error {
	result := r.db.Model(&models.Interview{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update status: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("interview not found")
	}

	return nil
}

// UpdateQuestions stores the generated (or reviewer-amended) question list.
// Passing a non-empty source also marks the interview completed.
func (r *interviewRepository) UpdateQuestions(id uuid.UUID, questions datatypes.JSON, source string) error {
	updates := map[string]interface{}{
		"questions":  questions,
		"updated_at": time.Now(),
	}
	if source != "" {
		updates["status"] = models.StatusCompleted
		updates["question_source"] = source
	}

	result := r.db.Model(&models.Interview{}).
		Where("id = ?", id).
		Updates(updates)

	if result.Error != nil {
		return fmt.Errorf("failed to update questions: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("interview not found")
	}

	return nil
}

func (r *interviewRepository) UpdateError(id uuid.UUID, errorMsg string) error {
	result := r.db.Model(&models.Interview{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":        models.StatusFailed,
			"error_message": errorMsg,
			"updated_at":    time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update error: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("interview not found")
	}

	return nil
}

func (r *interviewRepository) FindPendingJobs(limit int) ([]models.Interview, error) {
	var interviews []models.Interview
	err := r.db.
		Where("status = ?", models.StatusQueued).
		Order("created_at ASC").
		Limit(limit).
		Find(&interviews).Error

	if err != nil {
		return nil, fmt.Errorf("failed to find pending jobs: %w", err)
	}

	return interviews, nil
}
