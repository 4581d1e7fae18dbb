package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/interview-evaluator/internal/models"
)

func ratedQuestion(id string, category models.QuestionCategory, rating float64) models.InterviewQuestion {
	return models.InterviewQuestion{
		ID:        id,
		Question:  "How would you approach this in production?",
		Category:  category,
		Rating:    rating,
		MaxRating: 5,
		Duration:  5,
	}
}

func TestScoringIdenticalTopRatings(t *testing.T) {
	scoring := NewScoringService()

	assessment := &models.InterviewAssessment{
		Questions: []models.InterviewQuestion{
			ratedQuestion("Q1", models.CategoryTechnical, 5),
			ratedQuestion("Q2", models.CategoryBehavioral, 5),
			ratedQuestion("Q3", models.CategorySituational, 5),
			ratedQuestion("Q4", models.CategoryExperience, 5),
		},
	}

	scores, err := scoring.Score(assessment)
	require.NoError(t, err)

	assert.Equal(t, 100, scores.TechnicalScore)
	assert.Equal(t, 100, scores.BehavioralScore)
	assert.Equal(t, 100, scores.SituationalScore)
	assert.Equal(t, 100, scores.ExperienceScore)
	assert.Equal(t, 100, scores.ConsistencyScore)
	assert.Equal(t, 100, scores.OverallMatch)
	assert.Equal(t, 100, scores.AverageRating)

	assert.ElementsMatch(t, []string{
		"Strong technical performance",
		"Excellent behavioral responses",
		"Great situational judgment",
		"Relevant experience",
		"Consistent performance across questions",
	}, scores.Strengths)
	assert.Empty(t, scores.Weaknesses)

	assert.Len(t, scores.QuestionBreakdown.HighPerformance, 4)
	assert.Empty(t, scores.QuestionBreakdown.LowPerformance)
}

func TestScoringSingleCategoryPerfectRun(t *testing.T) {
	scoring := NewScoringService()

	assessment := &models.InterviewAssessment{
		Questions: []models.InterviewQuestion{
			ratedQuestion("Q1", models.CategoryTechnical, 5),
			ratedQuestion("Q2", models.CategoryTechnical, 5),
			ratedQuestion("Q3", models.CategoryTechnical, 5),
		},
	}

	scores, err := scoring.Score(assessment)
	require.NoError(t, err)

	assert.Equal(t, 100, scores.TechnicalScore)
	assert.Equal(t, 0, scores.BehavioralScore)
	assert.Equal(t, 0, scores.SituationalScore)
	assert.Equal(t, 0, scores.ExperienceScore)
	assert.Equal(t, 100, scores.ConsistencyScore)
	// The three empty categories are excluded, so the perfect technical run
	// still scores a perfect overall.
	assert.Equal(t, 100, scores.OverallMatch)
}

func TestScoringHighVarianceTanksConsistency(t *testing.T) {
	scoring := NewScoringService()

	assessment := &models.InterviewAssessment{
		Questions: []models.InterviewQuestion{
			ratedQuestion("Q1", models.CategoryTechnical, 1),
			ratedQuestion("Q2", models.CategoryTechnical, 5),
			ratedQuestion("Q3", models.CategoryBehavioral, 1),
			ratedQuestion("Q4", models.CategoryBehavioral, 5),
		},
	}

	scores, err := scoring.Score(assessment)
	require.NoError(t, err)

	assert.Equal(t, 60, scores.TechnicalScore)
	assert.Equal(t, 60, scores.BehavioralScore)
	// Ratings [1,5,1,5]: population variance 4, so 100 - 4*20 = 20.
	assert.Equal(t, 20, scores.ConsistencyScore)
	// round((60+60+20)/3)
	assert.Equal(t, 47, scores.OverallMatch)
	assert.Equal(t, 60, scores.AverageRating)
}

func TestScoringEmptyCategoriesExcludedFromOverall(t *testing.T) {
	scoring := NewScoringService()

	assessment := &models.InterviewAssessment{
		Questions: []models.InterviewQuestion{
			ratedQuestion("Q1", models.CategoryTechnical, 1),
			ratedQuestion("Q2", models.CategoryBehavioral, 5),
		},
	}

	scores, err := scoring.Score(assessment)
	require.NoError(t, err)

	assert.Equal(t, 20, scores.TechnicalScore)
	assert.Equal(t, 100, scores.BehavioralScore)
	assert.Equal(t, 0, scores.SituationalScore)
	assert.Equal(t, 0, scores.ExperienceScore)

	// Ratings 1 and 5 have population variance 4, so 100 - 4*20 = 20.
	assert.Equal(t, 20, scores.ConsistencyScore)

	// Overall averages technical, behavioral and consistency only; the empty
	// situational and experience buckets do not drag it down.
	assert.Equal(t, 47, scores.OverallMatch)
	assert.Equal(t, 60, scores.AverageRating)

	assert.Equal(t, []string{"Excellent behavioral responses"}, scores.Strengths)
	// Empty categories score 0 and therefore still surface as weaknesses.
	assert.ElementsMatch(t, []string{
		"Technical skills need improvement",
		"Situational judgment needs work",
		"Limited relevant experience demonstrated",
		"Inconsistent performance across questions",
	}, scores.Weaknesses)

	require.Len(t, scores.QuestionBreakdown.HighPerformance, 1)
	assert.Equal(t, "Q2", scores.QuestionBreakdown.HighPerformance[0].ID)
	require.Len(t, scores.QuestionBreakdown.LowPerformance, 1)
	assert.Equal(t, "Q1", scores.QuestionBreakdown.LowPerformance[0].ID)

	assert.Equal(t,
		"Candidate achieved an average rating of 3.0/5.0 across 2 questions."+
			" Performed well on 1 questions. Needs improvement on 1 questions.",
		scores.Summary)
}

// Each stage rounds before entering the next: the category score is rounded
// to 70 first, then the overall average of 70 and 95 lands on 82.5 and rounds
// half up to 83.
func TestScoringRoundsHalfUpPerStage(t *testing.T) {
	scoring := NewScoringService()

	assessment := &models.InterviewAssessment{
		Questions: []models.InterviewQuestion{
			ratedQuestion("Q1", models.CategoryTechnical, 3),
			ratedQuestion("Q2", models.CategoryTechnical, 4),
		},
	}

	scores, err := scoring.Score(assessment)
	require.NoError(t, err)

	assert.Equal(t, 70, scores.TechnicalScore)
	assert.Equal(t, 95, scores.ConsistencyScore)
	assert.Equal(t, 83, scores.OverallMatch)
	assert.Equal(t, 70, scores.AverageRating)
}

func TestScoringAllFieldsWithinPercentageBounds(t *testing.T) {
	scoring := NewScoringService()

	assessment := &models.InterviewAssessment{
		Questions: []models.InterviewQuestion{
			ratedQuestion("Q1", models.CategoryTechnical, 0),
			ratedQuestion("Q2", models.CategoryBehavioral, 5),
			ratedQuestion("Q3", models.CategorySituational, 0),
			ratedQuestion("Q4", models.CategoryExperience, 5),
		},
	}

	scores, err := scoring.Score(assessment)
	require.NoError(t, err)

	for name, v := range map[string]int{
		"overall":     scores.OverallMatch,
		"technical":   scores.TechnicalScore,
		"behavioral":  scores.BehavioralScore,
		"situational": scores.SituationalScore,
		"experience":  scores.ExperienceScore,
		"consistency": scores.ConsistencyScore,
		"avgRating":   scores.AverageRating,
	} {
		assert.GreaterOrEqual(t, v, 0, name)
		assert.LessOrEqual(t, v, 100, name)
	}
}

func TestScoringNoQuestions(t *testing.T) {
	scoring := NewScoringService()

	_, err := scoring.Score(&models.InterviewAssessment{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no questions found")
}
