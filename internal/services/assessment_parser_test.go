package services

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/interview-evaluator/internal/models"
)

// digitalExport mirrors the layout produced by the assessment export feature
// when the PDF still carries its text layer.
const digitalExport = `Interview Assessment Report
Generated on: January 15, 2024
Position: Software Engineer
DEPARTMENT
Engineering
EXPERIENCE LEVEL
Senior
REQUIRED SKILLS
Go, PostgreSQL, Docker
RESUME
jane_doe_resume.pdf
20 QUESTIONS
100 MINUTES
4.2 AVG RATING
18 of 20 questions rated
4.0/5.0
TECHNICAL
MEDIUM
How would you design a caching layer for a read-heavy service?
EVALUATION CRITERIA
Understanding of cache invalidation and consistency trade-offs
10 MIN
3.5/5.0
BEHAVIORAL
EASY
Tell me about a time when you disagreed with your team lead.
EVALUATION CRITERIA
Communication and conflict resolution approach
Comments: Gave a thoughtful structured answer
`

// ocrReconstructed mimics OCR output: inline labels, concatenated role noun,
// no category keywords and no summary block.
const ocrReconstructed = `MobileDeveloper
Department: Mobile
Experience: Mid-level
Skills: Kotlin, Swift
3/5.0
Describe a difficult production incident you resolved recently.
Criteria: Clear incident narrative with root cause
Interview Assessment
Rating: 4
Comments: No additional comments
4.5/5.0
Explain how you structure modules in a large mobile application.
2/5.0
Tell me about a time when you mentored a junior engineer.
`

func TestAssessmentParserDigitalExport(t *testing.T) {
	parser := NewAssessmentParserService()

	assessment, err := parser.Extract(digitalExport, 1)
	require.NoError(t, err)

	assert.Equal(t, "Candidate 1", assessment.CandidateName)
	assert.Equal(t, "Software Engineer", assessment.JobTitle)
	assert.Equal(t, "Engineering", assessment.Department)
	assert.Equal(t, "Senior", assessment.ExperienceLevel)
	assert.Equal(t, []string{"Go", "PostgreSQL", "Docker"}, assessment.RequiredSkills)
	assert.Equal(t, "jane_doe_resume.pdf", assessment.ResumeFileName)
	assert.Equal(t, time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC), assessment.GeneratedDate)

	require.Len(t, assessment.Questions, 2)

	q1 := assessment.Questions[0]
	assert.Equal(t, "Q1", q1.ID)
	assert.Equal(t, "How would you design a caching layer for a read-heavy service?", q1.Question)
	assert.Equal(t, models.CategoryTechnical, q1.Category)
	assert.Equal(t, models.DifficultyMedium, q1.Difficulty)
	assert.Equal(t, 4.0, q1.Rating)
	assert.Equal(t, 5.0, q1.MaxRating)
	assert.Equal(t, 10, q1.Duration)
	assert.Equal(t, "Understanding of cache invalidation and consistency trade-offs", q1.EvaluationCriteria)

	q2 := assessment.Questions[1]
	assert.Equal(t, "Q2", q2.ID)
	assert.Equal(t, models.CategoryBehavioral, q2.Category)
	assert.Equal(t, models.DifficultyEasy, q2.Difficulty)
	assert.Equal(t, 3.5, q2.Rating)
	assert.Equal(t, 5, q2.Duration)
	assert.Equal(t, "Gave a thoughtful structured answer", q2.Comments)

	assert.Equal(t, models.CategoryBreakdown{Technical: 1, Behavioral: 1}, assessment.CategoryBreakdown)
}

// Header figures are stored exactly as the document reports them, except the
// question count, which always reflects what was actually parsed.
func TestAssessmentParserHeaderFiguresKeptAsReported(t *testing.T) {
	parser := NewAssessmentParserService()

	assessment, err := parser.Extract(digitalExport, 1)
	require.NoError(t, err)

	assert.Equal(t, 2, assessment.TotalQuestions)
	assert.Equal(t, 100, assessment.TotalDuration)
	assert.Equal(t, 4.2, assessment.AverageRating)
	assert.Equal(t, 18, assessment.QuestionsRated)
}

// A per-question "10 MIN" line sets that question's duration without touching
// the document's total.
func TestAssessmentParserQuestionDurationDoesNotClobberTotal(t *testing.T) {
	parser := NewAssessmentParserService()

	assessment, err := parser.Extract(digitalExport, 1)
	require.NoError(t, err)

	assert.Equal(t, 10, assessment.Questions[0].Duration)
	assert.Equal(t, 100, assessment.TotalDuration)
}

// Question durations appear as "10 MIN" or "15 mins" depending on the export
// version; both forms must override the default without touching the document
// total, which only the spelled-out "minutes" form feeds.
func TestAssessmentParserDurationForms(t *testing.T) {
	parser := NewAssessmentParserService()

	input := `4/5.0
Walk me through your approach to debugging flaky integration tests.
15 mins
TECHNICAL
3/5.0
How would you roll back a bad deployment with zero downtime?
10 MIN
TECHNICAL
`

	assessment, err := parser.Extract(input, 1)
	require.NoError(t, err)
	require.Len(t, assessment.Questions, 2)

	assert.Equal(t, 15, assessment.Questions[0].Duration)
	assert.Equal(t, 10, assessment.Questions[1].Duration)
	assert.Equal(t, 0, assessment.TotalDuration)
}

func TestAssessmentParserOCRReconstructedLayout(t *testing.T) {
	parser := NewAssessmentParserService()

	assessment, err := parser.Extract(ocrReconstructed, 3)
	require.NoError(t, err)

	assert.Equal(t, "Candidate 3", assessment.CandidateName)
	assert.Equal(t, "Mobile Developer", assessment.JobTitle)
	assert.Equal(t, "Mobile", assessment.Department)
	assert.Equal(t, "Mid-level", assessment.ExperienceLevel)
	assert.Equal(t, []string{"Kotlin", "Swift"}, assessment.RequiredSkills)

	// No summary block in the document.
	assert.Equal(t, 0, assessment.TotalDuration)
	assert.Equal(t, 0, assessment.QuestionsRated)
	assert.Equal(t, 0.0, assessment.AverageRating)

	require.Len(t, assessment.Questions, 3)

	q1 := assessment.Questions[0]
	assert.Equal(t, "Clear incident narrative with root cause", q1.EvaluationCriteria)
	// "Rating: 4" in the refinement window overrides the 3/5.0 trigger value.
	assert.Equal(t, 4.0, q1.Rating)
	// The placeholder comment is never stored.
	assert.Empty(t, q1.Comments)
	// Keyword sniffing: "difficult" marks the question situational.
	assert.Equal(t, models.CategorySituational, q1.Category)
	assert.Equal(t, models.DifficultyMedium, q1.Difficulty)

	q2 := assessment.Questions[1]
	assert.Equal(t, 4.5, q2.Rating)
	assert.Equal(t, models.CategoryTechnical, q2.Category)
	assert.Equal(t, "Standard evaluation criteria", q2.EvaluationCriteria)

	// The trailing question has no closing rating line but is still captured;
	// "time when" sniffs it behavioral.
	q3 := assessment.Questions[2]
	assert.Equal(t, 2.0, q3.Rating)
	assert.Equal(t, models.CategoryBehavioral, q3.Category)

	assert.Equal(t,
		models.CategoryBreakdown{Technical: 1, Behavioral: 1, Situational: 1},
		assessment.CategoryBreakdown)
}

// A minimal block: trigger line, a filler line the lookahead skips, question
// text, explicit category, then the criteria section.
func TestAssessmentParserSingleQuestionBlock(t *testing.T) {
	parser := NewAssessmentParserService()

	input := `3/5.0
SESSION 1
How would you design a caching layer for a high-traffic API?
TECHNICAL
EVALUATION CRITERIA
Look for cache invalidation strategy awareness.
`

	assessment, err := parser.Extract(input, 1)
	require.NoError(t, err)
	require.Len(t, assessment.Questions, 1)

	q := assessment.Questions[0]
	assert.Equal(t, "How would you design a caching layer for a high-traffic API?", q.Question)
	assert.Equal(t, 3.0, q.Rating)
	assert.Equal(t, models.CategoryTechnical, q.Category)
	assert.Equal(t, "Look for cache invalidation strategy awareness.", q.EvaluationCriteria)
}

func TestAssessmentParserBreakdownMatchesQuestionCount(t *testing.T) {
	parser := NewAssessmentParserService()

	for name, input := range map[string]string{
		"digital": digitalExport,
		"ocr":     ocrReconstructed,
	} {
		assessment, err := parser.Extract(input, 1)
		require.NoError(t, err, name)
		assert.Equal(t, len(assessment.Questions), assessment.CategoryBreakdown.Total(), name)
		assert.Equal(t, len(assessment.Questions), assessment.TotalQuestions, name)
	}
}

func TestAssessmentParserDeterministicForSameSequence(t *testing.T) {
	parser := NewAssessmentParserService()

	first, err := parser.Extract(digitalExport, 5)
	require.NoError(t, err)
	second, err := parser.Extract(digitalExport, 5)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestAssessmentParserEmptyInput(t *testing.T) {
	parser := NewAssessmentParserService()

	_, err := parser.Extract("   \n\n  ", 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no readable text content")
}

func TestAssessmentParserMinimalText(t *testing.T) {
	parser := NewAssessmentParserService()

	_, err := parser.Extract("too short to be an assessment", 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "minimal text content")
}

func TestAssessmentParserNoQuestionsFound(t *testing.T) {
	parser := NewAssessmentParserService()

	input := strings.Repeat("This document has plenty of text but no rating lines at all. ", 3)
	_, err := parser.Extract(input, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no valid interview questions")
}
