package handlers

import (
	"encoding/json"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alfredoptarigan/interview-evaluator/internal/models"
	"alfredoptarigan/interview-evaluator/internal/repositories"
	"alfredoptarigan/interview-evaluator/internal/services"
)

type InterviewHandler struct {
	interviewRepo repositories.InterviewRepository
	docRepo       repositories.DocumentRepository
	worker        services.Worker
}

func NewInterviewHandler(
	interviewRepo repositories.InterviewRepository,
	docRepo repositories.DocumentRepository,
	worker services.Worker,
) *InterviewHandler {
	return &InterviewHandler{
		interviewRepo: interviewRepo,
		docRepo:       docRepo,
		worker:        worker,
	}
}

// HandleGenerate creates a question-generation job and enqueues it. The
// response carries the interview id to poll for results.
func (h *InterviewHandler) HandleGenerate(c *fiber.Ctx) error {
	var req models.GenerateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	if req.JobTitle == "" || req.JobDescription == "" || req.ExperienceLevel == "" || req.RequiredSkills == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "job_title, job_description, experience_level and required_skills are required",
		})
	}

	resumeID, err := uuid.Parse(req.ResumeDocumentID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "resume_document_id must be a valid UUID",
		})
	}

	if _, err := h.docRepo.FindByID(resumeID); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": fmt.Sprintf("resume document not found: %v", err),
		})
	}

	interview := &models.Interview{
		ID:               uuid.New(),
		JobTitle:         req.JobTitle,
		JobDescription:   req.JobDescription,
		ExperienceLevel:  req.ExperienceLevel,
		RequiredSkills:   req.RequiredSkills,
		ResumeDocumentID: resumeID,
		Status:           models.StatusQueued,
	}

	if err := h.interviewRepo.Create(interview); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to create interview: %v", err),
		})
	}

	h.worker.EnqueueJob(interview.ID)

	return c.Status(fiber.StatusCreated).JSON(models.GenerateResponse{
		ID:     interview.ID.String(),
		Status: string(interview.Status),
	})
}

// HandleResult returns the interview status and, once completed, the generated
// questions.
func (h *InterviewHandler) HandleResult(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid interview id",
		})
	}

	interview, err := h.interviewRepo.FindByID(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "interview not found",
		})
	}

	resp := models.InterviewResultResponse{
		ID:             interview.ID.String(),
		Status:         string(interview.Status),
		QuestionSource: interview.QuestionSource,
		ErrorMessage:   interview.ErrorMessage,
	}

	if len(interview.Questions) > 0 {
		var questions []models.GeneratedQuestion
		if err := json.Unmarshal(interview.Questions, &questions); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to decode stored questions",
			})
		}
		resp.Questions = questions
	}

	return c.JSON(resp)
}

// HandleRateQuestion records a reviewer's rating and comments against one
// generated question.
func (h *InterviewHandler) HandleRateQuestion(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid interview id",
		})
	}

	questionID := c.Params("questionId")
	if questionID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "question id is required",
		})
	}

	var req models.RateQuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	if req.Rating < 0 || req.Rating > 5 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "rating must be between 0 and 5",
		})
	}

	interview, err := h.interviewRepo.FindByID(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "interview not found",
		})
	}

	if len(interview.Questions) == 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "interview has no questions to rate yet",
		})
	}

	var questions []models.GeneratedQuestion
	if err := json.Unmarshal(interview.Questions, &questions); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to decode stored questions",
		})
	}

	found := false
	for i := range questions {
		if questions[i].ID == questionID {
			questions[i].Rating = req.Rating
			questions[i].Comments = req.Comments
			found = true
			break
		}
	}

	if !found {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": fmt.Sprintf("question %s not found", questionID),
		})
	}

	payload, err := json.Marshal(questions)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to encode questions",
		})
	}

	// Empty source leaves status and question_source untouched.
	if err := h.interviewRepo.UpdateQuestions(id, payload, ""); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to save rating: %v", err),
		})
	}

	return c.JSON(fiber.Map{
		"message":     "Question rated successfully",
		"question_id": questionID,
	})
}
