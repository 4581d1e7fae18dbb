package handlers

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alfredoptarigan/interview-evaluator/internal/models"
	"alfredoptarigan/interview-evaluator/internal/repositories"
	"alfredoptarigan/interview-evaluator/internal/services"
)

type ComparisonHandler struct {
	docRepo        repositories.DocumentRepository
	assessmentRepo repositories.AssessmentRepository
	storageService services.StorageService
	textExtractor  services.TextExtractionService
	parserService  services.AssessmentParserService
	scoringService services.ScoringService
	maxFileSize    int64

	// Monotonic per-process counter feeding generated candidate names, so two
	// uploads in the same second never collide.
	uploadSeq atomic.Int64
}

func NewComparisonHandler(
	docRepo repositories.DocumentRepository,
	assessmentRepo repositories.AssessmentRepository,
	storageService services.StorageService,
	textExtractor services.TextExtractionService,
	parserService services.AssessmentParserService,
	scoringService services.ScoringService,
	maxFileSize int64,
) *ComparisonHandler {
	return &ComparisonHandler{
		docRepo:        docRepo,
		assessmentRepo: assessmentRepo,
		storageService: storageService,
		textExtractor:  textExtractor,
		parserService:  parserService,
		scoringService: scoringService,
		maxFileSize:    maxFileSize,
	}
}

// HandleUploadPDF ingests one candidate's assessment PDF: saves the file,
// acquires its text, extracts the structured assessment and persists it keyed
// by candidate id.
func (h *ComparisonHandler) HandleUploadPDF(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "no PDF file uploaded. Please upload 'file' as a PDF.",
		})
	}

	candidateID := strings.TrimSpace(c.FormValue("candidate_id"))
	if candidateID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "candidate_id is required",
		})
	}

	if file.Size > h.maxFileSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("Assessment file too large. Max size: %d bytes", h.maxFileSize),
		})
	}

	filename, filePath, err := h.storageService.SaveFile(file, models.FileTypeAssessment)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to save assessment file: %v", err),
		})
	}

	// Parse before persisting anything so a rejected PDF leaves no orphaned
	// file or document row behind.
	rawText, err := h.textExtractor.AcquireText(filePath)
	if err != nil {
		h.storageService.DeleteFile(filename)
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to read PDF text: %v", err),
		})
	}

	assessment, err := h.parserService.Extract(rawText, int(h.uploadSeq.Add(1)))
	if err != nil {
		h.storageService.DeleteFile(filename)
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	payload, err := json.Marshal(assessment)
	if err != nil {
		h.storageService.DeleteFile(filename)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to encode assessment",
		})
	}

	doc := models.Document{
		ID:               uuid.New(),
		Filename:         filename,
		OriginalFileName: file.Filename,
		FileType:         models.FileTypeAssessment,
		FilePath:         filePath,
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
	}
	if err := h.docRepo.Create(&doc); err != nil {
		h.storageService.DeleteFile(filename)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to save document record: %v", err),
		})
	}

	record := &models.CandidateAssessment{
		ID:          uuid.New(),
		CandidateID: candidateID,
		DocumentID:  doc.ID,
		Assessment:  payload,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if err := h.assessmentRepo.Create(record); err != nil {
		h.docRepo.Delete(doc.ID)
		h.storageService.DeleteFile(filename)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to save assessment record: %v", err),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":      "Assessment processed successfully",
		"id":           record.ID.String(),
		"candidate_id": candidateID,
		"assessment":   assessment,
	})
}

// HandleAnalyze scores the latest stored assessment of each requested
// candidate and returns them ranked by overall match, best first.
func (h *ComparisonHandler) HandleAnalyze(c *fiber.Ctx) error {
	var req models.AnalyzeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	if len(req.CandidateIDs) < 2 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "at least 2 candidate_ids are required for comparison",
		})
	}

	results := make([]models.CandidateResult, 0, len(req.CandidateIDs))
	for _, candidateID := range req.CandidateIDs {
		record, err := h.assessmentRepo.FindLatestByCandidateID(candidateID)
		if err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": fmt.Sprintf("no assessment found for candidate %s", candidateID),
			})
		}

		var assessment models.InterviewAssessment
		if err := json.Unmarshal(record.Assessment, &assessment); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": fmt.Sprintf("failed to decode assessment for candidate %s", candidateID),
			})
		}

		scores, err := h.scoringService.Score(&assessment)
		if err != nil {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"error": fmt.Sprintf("failed to score candidate %s: %v", candidateID, err),
			})
		}

		results = append(results, models.CandidateResult{
			CandidateID:   candidateID,
			CandidateName: assessment.CandidateName,
			JobTitle:      assessment.JobTitle,
			Scores:        scores,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Scores.OverallMatch > results[j].Scores.OverallMatch
	})

	return c.JSON(models.AnalyzeResponse{Results: results})
}
