package services

import (
	"fmt"
	"strings"
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildQuestionGenerationPrompt creates the prompt for generating interview
// questions from job requirements and resume text. The fixed question mix (2
// behavioral, 6 experience-based, 12 technical) matches what the assessment
// export and the downstream parser expect.
func (pb *PromptBuilder) BuildQuestionGenerationPrompt(jobTitle, jobDescription, experienceLevel, requiredSkills, resumeText, ragContext string) string {
	return fmt.Sprintf(`You are an expert technical interviewer assistant. Generate interview questions based on these job requirements and resume.

JOB TITLE: %s
EXPERIENCE LEVEL: %s
REQUIRED SKILLS: %s

JOB DESCRIPTION:
%s

REFERENCE MATERIAL:
%s

CANDIDATE RESUME:
%s

GENERATE EXACTLY:
- 2 behavioral questions about collaboration and adaptability
- 6 experience-based questions focusing on problem-solving and innovation
- 12 technical questions (medium/hard difficulty)

IMPORTANT: For technical questions, DO NOT ask general experience questions like "Tell me about your experience with X technology." Instead, create specific problem-solving questions that test deep technical knowledge, such as:
- "How would you implement X feature using Y technology?"
- "What's the best approach to solve X problem in Y framework?"
- "How would you optimize X for better performance?"

For each question include:
- Question text
- Difficulty (Easy/Medium/Hard)
- Category (Technical/Behavioral/Experience)
- Evaluation criteria

Return your response in the following JSON format:
{
  "questions": [
    {
      "id": "1",
      "text": "Question text",
      "difficulty": "Easy|Medium|Hard",
      "category": "Technical|Behavioral|Experience",
      "evaluationCriteria": "What to look for in a good answer"
    }
  ]
}

Sort order: behavioral, experience-based, technical. Return ONLY the JSON object, no additional text.`,
		jobTitle, experienceLevel, requiredSkills, jobDescription, ragContext, resumeText)
}

// BuildRetrievalQuery creates the query text for RAG retrieval.
func (pb *PromptBuilder) BuildRetrievalQuery(docType, context string) string {
	switch docType {
	case "job_description":
		return fmt.Sprintf("Job requirements and qualifications for %s", context)
	case "interview_guide":
		return fmt.Sprintf("Interview techniques and question guidelines for %s", context)
	case "question_bank":
		return fmt.Sprintf("Example interview questions for %s", context)
	default:
		return context
	}
}

// FormatRAGContext flattens retrieval results into prompt context.
func FormatRAGContext(results []SearchResult) string {
	if len(results) == 0 {
		return "No relevant context found."
	}

	var parts []string
	for i, result := range results {
		parts = append(parts, fmt.Sprintf("--- Context %d (Score: %.2f) ---\n%s",
			i+1, result.Score, strings.TrimSpace(result.Text)))
	}

	return strings.Join(parts, "\n\n")
}
