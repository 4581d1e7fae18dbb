package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"alfredoptarigan/interview-evaluator/internal/models"
	"alfredoptarigan/interview-evaluator/internal/repositories"
)

const (
	questionSourceLLM  = "llm"
	questionSourceMock = "mock"

	generationTemperature = 0.7
	ragResultsPerDocType  = 3
)

var ragDocTypes = []string{"job_description", "interview_guide", "question_bank"}

// GeneratorService produces interview questions for a queued interview job.
// When no LLM is configured, or the LLM call/parse fails, it falls back to the
// deterministic mock question set instead of failing the job.
type GeneratorService interface {
	GenerateInterview(ctx context.Context, interviewID uuid.UUID) error
}

type generatorService struct {
	interviewRepo repositories.InterviewRepository
	docRepo       repositories.DocumentRepository
	geminiService GeminiService
	qdrantService QdrantService
	textExtractor TextExtractionService
	promptBuilder *PromptBuilder
	maxRetries    int
}

// NewGeneratorService wires the generation pipeline. geminiService and
// qdrantService may be nil; generation then runs in mock mode without RAG
// context.
func NewGeneratorService(
	interviewRepo repositories.InterviewRepository,
	docRepo repositories.DocumentRepository,
	geminiService GeminiService,
	qdrantService QdrantService,
	textExtractor TextExtractionService,
	maxRetries int,
) GeneratorService {
	return &generatorService{
		interviewRepo: interviewRepo,
		docRepo:       docRepo,
		geminiService: geminiService,
		qdrantService: qdrantService,
		textExtractor: textExtractor,
		promptBuilder: NewPromptBuilder(),
		maxRetries:    maxRetries,
	}
}

type generatedInterviewPayload struct {
	Questions []models.GeneratedQuestion `json:"questions"`
}

func (g *generatorService) GenerateInterview(ctx context.Context, interviewID uuid.UUID) error {
	if err := g.interviewRepo.UpdateStatus(interviewID, models.StatusProcessing); err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}

	log.Printf("🔄 Starting question generation for interview %s\n", interviewID)

	interview, err := g.interviewRepo.FindByID(interviewID)
	if err != nil {
		g.interviewRepo.UpdateError(interviewID, err.Error())
		return fmt.Errorf("failed to get interview: %w", err)
	}

	questions, source := g.generateQuestions(ctx, interview)

	payload, err := json.Marshal(questions)
	if err != nil {
		g.interviewRepo.UpdateError(interviewID, fmt.Sprintf("failed to encode questions: %v", err))
		return fmt.Errorf("failed to encode questions: %w", err)
	}

	if err := g.interviewRepo.UpdateQuestions(interviewID, payload, source); err != nil {
		return fmt.Errorf("failed to save questions: %w", err)
	}

	log.Printf("✅ Generated %d questions for interview %s (source: %s)\n", len(questions), interviewID, source)
	return nil
}

func (g *generatorService) generateQuestions(ctx context.Context, interview *models.Interview) ([]models.GeneratedQuestion, string) {
	if g.geminiService == nil {
		log.Println("⚠️  No LLM configured. Using mock interview questions.")
		return mockInterviewQuestions(interview), questionSourceMock
	}

	resumeText := g.resumeText(interview)
	ragContext := g.retrieveContext(ctx, interview.JobTitle)

	prompt := g.promptBuilder.BuildQuestionGenerationPrompt(
		interview.JobTitle,
		interview.JobDescription,
		interview.ExperienceLevel,
		interview.RequiredSkills,
		resumeText,
		ragContext,
	)

	response, err := g.geminiService.GenerateTextWithRetry(ctx, prompt, generationTemperature, g.maxRetries)
	if err != nil {
		log.Printf("❌ Question generation failed: %v. Using mock data as fallback.\n", err)
		return mockInterviewQuestions(interview), questionSourceMock
	}

	var payload generatedInterviewPayload
	if err := parseJSONResponse(response, &payload); err != nil {
		log.Printf("❌ Failed to parse generation response: %v. Using mock data as fallback.\n", err)
		return mockInterviewQuestions(interview), questionSourceMock
	}

	if len(payload.Questions) == 0 {
		log.Println("⚠️  LLM returned no questions. Using mock data as fallback.")
		return mockInterviewQuestions(interview), questionSourceMock
	}

	return normalizeQuestions(payload.Questions), questionSourceLLM
}

func (g *generatorService) resumeText(interview *models.Interview) string {
	doc, err := g.docRepo.FindByID(interview.ResumeDocumentID)
	if err != nil {
		log.Printf("⚠️  Warning: resume document not found: %v\n", err)
		return ""
	}

	text, err := g.textExtractor.AcquireText(doc.FilePath)
	if err != nil {
		log.Printf("⚠️  Warning: failed to extract resume text: %v\n", err)
		return ""
	}

	return text
}

// retrieveContext pulls reference-document chunks relevant to the job title.
// Retrieval failure degrades to empty context, never fails generation.
func (g *generatorService) retrieveContext(ctx context.Context, jobTitle string) string {
	if g.qdrantService == nil {
		return ""
	}

	var allResults []SearchResult
	for _, docType := range ragDocTypes {
		query := g.promptBuilder.BuildRetrievalQuery(docType, jobTitle)

		embedding, err := g.geminiService.GenerateEmbedding(ctx, query)
		if err != nil {
			log.Printf("⚠️  Failed to embed retrieval query for %s: %v\n", docType, err)
			continue
		}

		results, err := g.qdrantService.SearchSimilar(ctx, embedding, docType, ragResultsPerDocType)
		if err != nil {
			log.Printf("⚠️  Failed to search for %s: %v\n", docType, err)
			continue
		}
		allResults = append(allResults, results...)
	}

	return FormatRAGContext(allResults)
}

// normalizeQuestions fills the fields LLM output tends to drop.
func normalizeQuestions(questions []models.GeneratedQuestion) []models.GeneratedQuestion {
	normalized := make([]models.GeneratedQuestion, 0, len(questions))
	for i, q := range questions {
		if strings.TrimSpace(q.Text) == "" {
			continue
		}
		if q.ID == "" {
			q.ID = fmt.Sprintf("%d", i+1)
		}
		if q.Difficulty == "" {
			q.Difficulty = "Medium"
		}
		if q.Category == "" {
			q.Category = "Technical"
		}
		normalized = append(normalized, q)
	}
	return normalized
}

func parseJSONResponse(response string, target interface{}) error {
	jsonStr := extractJSON(response)

	if err := json.Unmarshal([]byte(jsonStr), target); err != nil {
		return fmt.Errorf("failed to unmarshal JSON: %w", err)
	}

	return nil
}

// extractJSON strips markdown fences and isolates the JSON object or array an
// LLM response tends to wrap its answer in.
func extractJSON(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")

	startObj := strings.Index(text, "{")
	startArr := strings.Index(text, "[")
	endObj := strings.LastIndex(text, "}")
	endArr := strings.LastIndex(text, "]")

	if startObj != -1 && endObj != -1 && endObj > startObj {
		return text[startObj : endObj+1]
	} else if startArr != -1 && endArr != -1 && endArr > startArr {
		return text[startArr : endArr+1]
	}

	return text
}

// mockInterviewQuestions is the development fallback: the fixed 2 behavioral /
// 6 experience / 12 technical mix, templated with the job's title and skills.
func mockInterviewQuestions(interview *models.Interview) []models.GeneratedQuestion {
	log.Printf("🧪 Generating mock interview questions for: %s\n", interview.JobTitle)

	skill := firstSkill(interview.RequiredSkills)

	templates := []struct {
		text       string
		difficulty string
		category   string
		criteria   string
	}{
		{"Describe a situation where you had to collaborate with a difficult team member. How did you handle it?", "Medium", "Behavioral", "Conflict resolution, empathy, and communication skills"},
		{"Tell me about a time when you had to adapt quickly to a major change in project requirements.", "Medium", "Behavioral", "Flexibility, positive attitude toward change"},
		{"Tell me about the most technically challenging project you have worked on. What made it difficult?", "Medium", "Experience", "Depth of involvement and ownership of hard problems"},
		{"Describe a time when you identified and fixed a performance bottleneck in production.", "Hard", "Experience", "Systematic debugging and measurement before optimizing"},
		{"Give an example of a technical decision you made that you later regretted. What did you learn?", "Medium", "Experience", "Honest reflection and growth mindset"},
		{"Tell me about a time you had to deliver a project under a tight deadline. What trade-offs did you make?", "Medium", "Experience", "Prioritization and pragmatic scope management"},
		{"Describe an innovation or process improvement you introduced to your team.", "Medium", "Experience", "Initiative and measurable impact"},
		{fmt.Sprintf("Walk me through a project where you used %s extensively. What would you do differently now?", skill), "Medium", "Experience", "Real depth with the core stack, self-awareness"},
		{fmt.Sprintf("How would you design a scalable architecture for a high-traffic %s application?", interview.JobTitle), "Hard", "Technical", "Scalability patterns, load balancing, caching strategy"},
		{fmt.Sprintf("How would you implement authentication and authorization in a %s system?", skill), "Medium", "Technical", "Security fundamentals, token handling, session management"},
		{"How would you optimize a slow database query that joins several large tables?", "Medium", "Technical", "Indexing, query planning, denormalization trade-offs"},
		{"What's the best approach to handle partial failures in a distributed system?", "Hard", "Technical", "Retries, idempotency, circuit breakers"},
		{"How would you design an API rate limiter? Which algorithm would you choose and why?", "Medium", "Technical", "Token bucket vs sliding window reasoning"},
		{"Explain how you would debug a memory leak in a long-running service.", "Hard", "Technical", "Profiling tools, heap analysis methodology"},
		{fmt.Sprintf("How would you structure automated testing for a %s codebase?", skill), "Medium", "Technical", "Test pyramid, meaningful coverage over raw numbers"},
		{"How would you migrate a monolithic application to services without downtime?", "Hard", "Technical", "Strangler pattern, data migration strategy"},
		{"What caching strategy would you use for frequently-read, rarely-written data, and how would you invalidate it?", "Medium", "Technical", "Cache invalidation awareness, TTL vs event-driven"},
		{"How would you secure sensitive data at rest and in transit in your application?", "Medium", "Technical", "Encryption practices, secret management"},
		{"Explain how you would handle schema changes on a database serving live traffic.", "Hard", "Technical", "Backward-compatible migrations, rollout discipline"},
		{"How would you instrument a service so that production incidents can be diagnosed quickly?", "Medium", "Technical", "Logging, metrics, tracing fundamentals"},
	}

	questions := make([]models.GeneratedQuestion, 0, len(templates))
	for i, tpl := range templates {
		questions = append(questions, models.GeneratedQuestion{
			ID:                 fmt.Sprintf("%d", i+1),
			Text:               tpl.text,
			Difficulty:         tpl.difficulty,
			Category:           tpl.category,
			EvaluationCriteria: tpl.criteria,
		})
	}
	return questions
}

func firstSkill(skills string) string {
	for _, s := range strings.Split(skills, ",") {
		if s = strings.TrimSpace(s); s != "" {
			return s
		}
	}
	return "your core technology"
}
