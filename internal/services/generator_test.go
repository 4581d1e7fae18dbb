package services

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/interview-evaluator/internal/models"
)

func TestMockInterviewQuestionsMix(t *testing.T) {
	interview := &models.Interview{
		JobTitle:       "Backend Engineer",
		RequiredSkills: "Go, PostgreSQL",
	}

	questions := mockInterviewQuestions(interview)
	require.Len(t, questions, 20)

	byCategory := map[string]int{}
	for i, q := range questions {
		byCategory[q.Category]++
		assert.Equal(t, strconv.Itoa(i+1), q.ID)
		assert.NotEmpty(t, q.Text)
		assert.NotEmpty(t, q.EvaluationCriteria)
	}

	assert.Equal(t, 2, byCategory["Behavioral"])
	assert.Equal(t, 6, byCategory["Experience"])
	assert.Equal(t, 12, byCategory["Technical"])
}

func TestMockInterviewQuestionsDeterministic(t *testing.T) {
	interview := &models.Interview{
		JobTitle:       "Platform Engineer",
		RequiredSkills: "Kubernetes, Terraform",
	}

	assert.Equal(t, mockInterviewQuestions(interview), mockInterviewQuestions(interview))
}

func TestMockInterviewQuestionsUseFirstSkill(t *testing.T) {
	interview := &models.Interview{
		JobTitle:       "Backend Engineer",
		RequiredSkills: "Elixir, Postgres",
	}

	found := false
	for _, q := range mockInterviewQuestions(interview) {
		if strings.Contains(q.Text, "Elixir") {
			found = true
			break
		}
	}
	assert.True(t, found, "expected at least one question templated with the first skill")
}

func TestFirstSkill(t *testing.T) {
	assert.Equal(t, "Go", firstSkill("Go, SQL"))
	assert.Equal(t, "Postgres", firstSkill(" , Postgres"))
	assert.Equal(t, "your core technology", firstSkill(""))
	assert.Equal(t, "your core technology", firstSkill(" , , "))
}

func TestExtractJSONStripsMarkdownFences(t *testing.T) {
	fenced := "```json\n{\"questions\": []}\n```"
	assert.Equal(t, `{"questions": []}`, extractJSON(fenced))
}

func TestExtractJSONIsolatesObjectFromProse(t *testing.T) {
	noisy := `Here is the result you asked for: {"questions": [{"id": "1"}]} Hope it helps!`
	assert.Equal(t, `{"questions": [{"id": "1"}]}`, extractJSON(noisy))
}

func TestParseJSONResponse(t *testing.T) {
	response := "```json\n{\"questions\":[{\"id\":\"1\",\"text\":\"Explain goroutine scheduling.\"}]}\n```"

	var payload generatedInterviewPayload
	require.NoError(t, parseJSONResponse(response, &payload))
	require.Len(t, payload.Questions, 1)
	assert.Equal(t, "Explain goroutine scheduling.", payload.Questions[0].Text)
}

func TestParseJSONResponseInvalid(t *testing.T) {
	var payload generatedInterviewPayload
	assert.Error(t, parseJSONResponse("not json at all", &payload))
}

func TestNormalizeQuestionsFillsDefaults(t *testing.T) {
	normalized := normalizeQuestions([]models.GeneratedQuestion{
		{Text: "How does connection pooling work?"},
		{Text: "   "},
		{ID: "q-7", Text: "Explain eventual consistency.", Difficulty: "Hard", Category: "Technical"},
	})

	require.Len(t, normalized, 2)

	assert.Equal(t, "1", normalized[0].ID)
	assert.Equal(t, "Medium", normalized[0].Difficulty)
	assert.Equal(t, "Technical", normalized[0].Category)

	assert.Equal(t, "q-7", normalized[1].ID)
	assert.Equal(t, "Hard", normalized[1].Difficulty)
}
