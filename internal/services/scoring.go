package services

import (
	"fmt"
	"math"
	"strings"

	"alfredoptarigan/interview-evaluator/internal/models"
)

// ScoringService converts a parsed InterviewAssessment into comparable
// percentage scores. It is a pure function of the assessment: nothing is
// cached, every call recomputes from the question ratings.
type ScoringService interface {
	Score(assessment *models.InterviewAssessment) (*models.CandidateScores, error)
}

type scoringService struct{}

func NewScoringService() ScoringService {
	return &scoringService{}
}

const (
	strengthThreshold = 80
	weaknessThreshold = 60
	highRating        = 4
	lowRating         = 2

	// Scale factor for the variance penalty: a rating variance of 5 zeroes the
	// consistency score.
	variancePenalty = 20
)

func (s *scoringService) Score(assessment *models.InterviewAssessment) (*models.CandidateScores, error) {
	questions := assessment.Questions
	if len(questions) == 0 {
		return nil, fmt.Errorf("no questions found in assessment")
	}

	buckets := map[models.QuestionCategory][]float64{}
	var ratings []float64
	for _, q := range questions {
		buckets[q.Category] = append(buckets[q.Category], q.Rating)
		ratings = append(ratings, q.Rating)
	}

	technicalScore := categoryScore(buckets[models.CategoryTechnical])
	behavioralScore := categoryScore(buckets[models.CategoryBehavioral])
	situationalScore := categoryScore(buckets[models.CategorySituational])
	experienceScore := categoryScore(buckets[models.CategoryExperience])

	avgRating := mean(ratings)
	consistencyScore := roundHalfUp(math.Max(0, 100-populationVariance(ratings)*variancePenalty))

	// Empty categories are excluded from the overall average so they do not
	// drag it toward zero; consistency always participates. Each stage is
	// rounded independently before entering the average.
	var parts []int
	if len(buckets[models.CategoryTechnical]) > 0 {
		parts = append(parts, technicalScore)
	}
	if len(buckets[models.CategoryBehavioral]) > 0 {
		parts = append(parts, behavioralScore)
	}
	if len(buckets[models.CategorySituational]) > 0 {
		parts = append(parts, situationalScore)
	}
	if len(buckets[models.CategoryExperience]) > 0 {
		parts = append(parts, experienceScore)
	}
	parts = append(parts, consistencyScore)

	sum := 0
	for _, p := range parts {
		sum += p
	}
	overallMatch := roundHalfUp(float64(sum) / float64(len(parts)))

	var high, low []models.InterviewQuestion
	for _, q := range questions {
		if q.Rating >= highRating {
			high = append(high, q)
		}
		if q.Rating <= lowRating {
			low = append(low, q)
		}
	}

	strengths, weaknesses := describePerformance(
		technicalScore, behavioralScore, situationalScore, experienceScore, consistencyScore)

	return &models.CandidateScores{
		OverallMatch:     overallMatch,
		TechnicalScore:   technicalScore,
		BehavioralScore:  behavioralScore,
		SituationalScore: situationalScore,
		ExperienceScore:  experienceScore,
		ConsistencyScore: consistencyScore,
		AverageRating:    roundHalfUp(avgRating * 20),
		Strengths:        strengths,
		Weaknesses:       weaknesses,
		Summary:          buildSummary(avgRating, len(questions), len(high), len(low)),
		QuestionBreakdown: models.QuestionBreakdown{
			HighPerformance: high,
			LowPerformance:  low,
		},
	}, nil
}

// categoryScore maps the bucket's mean rating from the 1-5 scale onto a
// rounded 0-100 percentage. Empty buckets score 0; the caller decides whether
// they count toward the overall average.
func categoryScore(ratings []float64) int {
	if len(ratings) == 0 {
		return 0
	}
	return roundHalfUp(mean(ratings) / 5 * 100)
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// populationVariance divides by N, not N-1.
func populationVariance(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	avg := mean(values)
	sum := 0.0
	for _, v := range values {
		d := v - avg
		sum += d * d
	}
	return sum / float64(len(values))
}

func roundHalfUp(v float64) int {
	if math.IsNaN(v) {
		return 0
	}
	return int(math.Round(v))
}

func describePerformance(technical, behavioral, situational, experience, consistency int) ([]string, []string) {
	var strengths, weaknesses []string

	if technical >= strengthThreshold {
		strengths = append(strengths, "Strong technical performance")
	}
	if behavioral >= strengthThreshold {
		strengths = append(strengths, "Excellent behavioral responses")
	}
	if situational >= strengthThreshold {
		strengths = append(strengths, "Great situational judgment")
	}
	if experience >= strengthThreshold {
		strengths = append(strengths, "Relevant experience")
	}
	if consistency >= strengthThreshold {
		strengths = append(strengths, "Consistent performance across questions")
	}

	if technical < weaknessThreshold {
		weaknesses = append(weaknesses, "Technical skills need improvement")
	}
	if behavioral < weaknessThreshold {
		weaknesses = append(weaknesses, "Behavioral responses could be stronger")
	}
	if situational < weaknessThreshold {
		weaknesses = append(weaknesses, "Situational judgment needs work")
	}
	if experience < weaknessThreshold {
		weaknesses = append(weaknesses, "Limited relevant experience demonstrated")
	}
	if consistency < weaknessThreshold {
		weaknesses = append(weaknesses, "Inconsistent performance across questions")
	}

	return strengths, weaknesses
}

func buildSummary(avgRating float64, total, high, low int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Candidate achieved an average rating of %.1f/5.0 across %d questions.", avgRating, total)
	if high > 0 {
		fmt.Fprintf(&sb, " Performed well on %d questions.", high)
	}
	if low > 0 {
		fmt.Fprintf(&sb, " Needs improvement on %d questions.", low)
	}
	return sb.String()
}
