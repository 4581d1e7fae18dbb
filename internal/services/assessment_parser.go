package services

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"alfredoptarigan/interview-evaluator/internal/models"
)

// AssessmentParserService turns raw text extracted from an interview-assessment
// PDF into a structured InterviewAssessment. The input format is the companion
// "export interview" layout, so this is a narrow line-oriented reader made
// tolerant of OCR artifacts (lost whitespace, case changes, label-on-one-line
// vs label-colon-value), not a general document parser.
type AssessmentParserService interface {
	Extract(rawText string, sequence int) (*models.InterviewAssessment, error)
}

type assessmentParserService struct{}

func NewAssessmentParserService() AssessmentParserService {
	return &assessmentParserService{}
}

const (
	defaultCriteria    = "Standard evaluation criteria"
	defaultJobTitle    = "Interview Position"
	placeholderComment = "No additional comments"
	maxCandidateName   = 50
	minQuestionLength  = 10
	lookaheadWindow    = 4
)

// The "<rating>/5.0" line that the export layout places directly before each
// question block. Matching it finalizes the open question and starts a new one.
var reRatingTrigger = regexp.MustCompile(`^(\d+(?:\.\d+)?)/5\.0?$`)

var (
	reDateLine         = regexp.MustCompile(`(?i)(?:Generated on|Date|Created):\s*(.+)`)
	reJobTitleLabel    = regexp.MustCompile(`(?i)(?:Position|Job Title|Role):\s*(.*)`)
	reRoleNoun         = regexp.MustCompile(`(?i)^(Software Engineer|Developer|Manager|Analyst|Designer|Consultant|MobileDeveloper|Mobile Developer)`)
	reDepartmentInline = regexp.MustCompile(`(?i)Department:\s*(.*)`)
	reExperienceInline = regexp.MustCompile(`(?i)Experience:\s*(.*)`)
	reSkillsInline     = regexp.MustCompile(`(?i)Skills:\s*(.*)`)
	reResumeInline     = regexp.MustCompile(`(?i)Resume:\s*(.*)`)

	reTotalQuestions = regexp.MustCompile(`(?i)(\d+)\s*questions?`)
	// Narrower than reDurationValue: a bare "10 MIN" inside a question block
	// must not overwrite the document's total duration.
	reTotalMinutes   = regexp.MustCompile(`(?i)(\d+)\s*minutes?\b`)
	reAvgRatingCond  = regexp.MustCompile(`(?i)Average:\s*[\d.]+`)
	reAvgRatingValue = regexp.MustCompile(`(?i)([\d.]+)\s*(?:AVG RATING|Average Rating|Average)`)
	reQuestionsRated = regexp.MustCompile(`(?i)(\d+)\s*of\s*\d+\s*(?:questions\s*)?rated`)

	reCategoryWord     = regexp.MustCompile(`(?i)^(TECHNICAL|BEHAVIORAL|SITUATIONAL|EXPERIENCE)$`)
	reCategoryInline   = regexp.MustCompile(`(?i)Category:\s*(technical|behavioral|situational|experience)`)
	reDifficultyWord   = regexp.MustCompile(`(?i)^(EASY|MEDIUM|HARD)$`)
	reDifficultyInline = regexp.MustCompile(`(?i)Difficulty:\s*(easy|medium|hard)`)
	reKeywordLine      = regexp.MustCompile(`(?i)^(TECHNICAL|BEHAVIORAL|SITUATIONAL|EXPERIENCE|EASY|MEDIUM|HARD)$`)

	reDurationValue = regexp.MustCompile(`(?i)(\d+)\s*(?:MIN|minutes?|mins?)`)
	reBareDuration  = regexp.MustCompile(`(?i)^\d+\s*(MIN|minutes?)`)
	reRatingShaped  = regexp.MustCompile(`^\d+/5`)

	reCriteriaInline = regexp.MustCompile(`(?i)Criteria:\s*(.+)`)
	reRatingInline   = regexp.MustCompile(`(?i)(?:Rating|Score):\s*(\d+(?:\.\d+)?)`)
	reCommentsInline = regexp.MustCompile(`(?i)(?:Comments|Feedback):\s*(.+)`)

	reCategoryLabel   = regexp.MustCompile(`(?i)Category:`)
	reDifficultyLabel = regexp.MustCompile(`(?i)Difficulty:`)
)

// questionDraft is the scan state for the question currently being
// accumulated. A nil draft means the scanner is idle (between questions).
type questionDraft struct {
	models.InterviewQuestion
	categoryExplicit bool
}

func (p *assessmentParserService) Extract(rawText string, sequence int) (*models.InterviewAssessment, error) {
	trimmed := strings.TrimSpace(rawText)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf(`no readable text content found in PDF. This PDF may be:
	• A scanned document (image-only PDF)
	• Password protected or encrypted
	• Corrupted or not a valid PDF

	Please upload an Interview Assessment PDF that contains selectable text content`)
	}

	if len(trimmed) < 50 {
		return nil, fmt.Errorf(`PDF contains minimal text content (%d characters). This PDF may contain:
	• Scanned images instead of selectable text
	• Protected/encrypted content
	• Complex formatting that cannot be parsed

	Please ensure your Interview Assessment PDF contains selectable text content`, len(trimmed))
	}

	generatedName := fmt.Sprintf("Candidate %d", sequence)

	assessment := &models.InterviewAssessment{
		CandidateName: generatedName,
		GeneratedDate: time.Now(),
	}

	lines := splitLines(rawText)

	var current *questionDraft
	questionIndex := 0

	finalize := func() {
		if current == nil || current.ID == "" || current.Question == "" {
			return
		}
		if current.EvaluationCriteria == "" {
			current.EvaluationCriteria = defaultCriteria
		}
		if current.Category == "" {
			current.Category = models.CategoryTechnical
		}
		if current.Difficulty == "" {
			current.Difficulty = models.DifficultyMedium
		}
		if !current.categoryExplicit && current.Category == models.CategoryTechnical {
			current.Category = sniffCategory(current.Question)
		}
		assessment.Questions = append(assessment.Questions, current.InterviewQuestion)
		bumpBreakdown(&assessment.CategoryBreakdown, current.Category)
	}

	for i := 0; i < len(lines); i++ {
		line := lines[i]
		next := lineAt(lines, i+1)

		// Header metadata. Candidate names are never trusted from the text;
		// OCR garbles them too often, so the generated name stands.
		if m := reDateLine.FindStringSubmatch(line); m != nil {
			if t, ok := parseReportDate(m[1]); ok {
				assessment.GeneratedDate = t
			}
		}

		if m := reJobTitleLabel.FindStringSubmatch(line); m != nil {
			if v := labelValue(m[1], next); v != "" {
				assessment.JobTitle = v
			}
		} else if reRoleNoun.MatchString(line) && assessment.JobTitle == "" {
			assessment.JobTitle = normalizeJobTitle(line)
		}

		if v, ok := headerValue(line, next, "DEPARTMENT", reDepartmentInline); ok {
			assessment.Department = v
		}
		if v, ok := headerValue(line, next, "EXPERIENCE LEVEL", reExperienceInline); ok {
			assessment.ExperienceLevel = v
		}
		if v, ok := headerValue(line, next, "REQUIRED SKILLS", reSkillsInline); ok {
			assessment.RequiredSkills = splitSkills(v)
		}
		if v, ok := headerValue(line, next, "RESUME", reResumeInline); ok {
			assessment.ResumeFileName = v
		}

		// Summary statistics, stored exactly as the document reports them.
		// They are never cross-checked against the parsed question list.
		if strings.Contains(line, "QUESTIONS") || reTotalQuestions.MatchString(line) {
			if m := reTotalQuestions.FindStringSubmatch(line); m != nil {
				assessment.TotalQuestions, _ = strconv.Atoi(m[1])
			}
		}
		if strings.Contains(line, "MINUTES") || reTotalMinutes.MatchString(line) {
			if m := reTotalMinutes.FindStringSubmatch(line); m != nil {
				assessment.TotalDuration, _ = strconv.Atoi(m[1])
			}
		}
		if strings.Contains(line, "AVG RATING") || strings.Contains(line, "Average Rating") || reAvgRatingCond.MatchString(line) {
			if m := reAvgRatingValue.FindStringSubmatch(line); m != nil {
				if v, err := strconv.ParseFloat(m[1], 64); err == nil {
					assessment.AverageRating = v
				}
			}
		}
		if strings.Contains(line, "questions rated") || reQuestionsRated.MatchString(line) {
			if m := reQuestionsRated.FindStringSubmatch(line); m != nil {
				assessment.QuestionsRated, _ = strconv.Atoi(m[1])
			}
		}

		// Question boundary: a standalone "<rating>/5.0" line.
		if m := reRatingTrigger.FindStringSubmatch(line); m != nil {
			finalize()
			questionIndex++
			rating, _ := strconv.ParseFloat(m[1], 64)
			current = &questionDraft{
				InterviewQuestion: models.InterviewQuestion{
					ID:        fmt.Sprintf("Q%d", questionIndex),
					Rating:    rating,
					MaxRating: 5,
					Duration:  5,
					Category:  models.CategoryTechnical,
				},
			}
			if text, ok := lookahead(lines, i, lookaheadWindow, isQuestionShaped); ok {
				current.Question = text
			}
		}

		// Deferred capture, strict pass: the lookahead above found nothing, so
		// try every later line that looks like a literal question.
		if current != nil && current.ID != "" && current.Question == "" {
			if isDeferredQuestion(line, true) {
				current.Question = line
			}
		}

		// Explicit category/difficulty overrides for the open question.
		if current != nil {
			if m := reCategoryWord.FindStringSubmatch(line); m != nil {
				current.Category = models.QuestionCategory(strings.ToLower(m[1]))
				current.categoryExplicit = true
			} else if m := reCategoryInline.FindStringSubmatch(line); m != nil {
				current.Category = models.QuestionCategory(strings.ToLower(m[1]))
				current.categoryExplicit = true
			}

			if m := reDifficultyWord.FindStringSubmatch(line); m != nil {
				current.Difficulty = models.QuestionDifficulty(strings.ToLower(m[1]))
			} else if m := reDifficultyInline.FindStringSubmatch(line); m != nil {
				current.Difficulty = models.QuestionDifficulty(strings.ToLower(m[1]))
			}
		}

		// Duration override, wherever it appears inside the question block.
		// Accepts every observed form ("10 MIN", "15 mins", "20 minutes").
		if current != nil {
			if m := reDurationValue.FindStringSubmatch(line); m != nil {
				current.Duration, _ = strconv.Atoi(m[1])
			}
		}

		// Deferred capture, permissive pass: same shape checks without the
		// question-mark requirement. Kept as a separate second pass so that
		// questions phrased as statements still get captured.
		if current != nil && current.ID != "" && current.Question == "" {
			if isDeferredQuestion(line, false) {
				current.Question = line
			}
		}

		// Evaluation criteria: bare section header with lookahead, or inline.
		if line == "EVALUATION CRITERIA" && current != nil {
			if text, ok := lookahead(lines, i, lookaheadWindow, isCriteriaShaped); ok {
				current.EvaluationCriteria = text
			}
		} else if m := reCriteriaInline.FindStringSubmatch(line); m != nil && current != nil {
			current.EvaluationCriteria = strings.TrimSpace(m[1])
		}

		// Rating/comment refinement window: re-scan the current line plus the
		// next few for explicit "Rating:"/"Comments:" values, which win over
		// the provisional trigger rating.
		if current != nil && (strings.Contains(line, "Interview Assessment") ||
			strings.Contains(line, "Comments:") || strings.Contains(line, "Feedback:")) {
			for j := i; j < len(lines) && j <= i+lookaheadWindow; j++ {
				scanLine := lines[j]
				if m := reRatingInline.FindStringSubmatch(scanLine); m != nil {
					if v, err := strconv.ParseFloat(m[1], 64); err == nil {
						current.Rating = v
					}
				}
				if m := reCommentsInline.FindStringSubmatch(scanLine); m != nil {
					comment := strings.TrimSpace(m[1])
					if comment != "" && !strings.Contains(comment, placeholderComment) {
						current.Comments = comment
					}
				}
			}
		}
	}

	// The trailing question has no closing trigger; finalize it the same way.
	finalize()

	valid := make([]models.InterviewQuestion, 0, len(assessment.Questions))
	for _, q := range assessment.Questions {
		if len(q.Question) > minQuestionLength && q.Category != "" {
			valid = append(valid, q)
		}
	}
	assessment.Questions = valid
	assessment.TotalQuestions = len(valid)

	if assessment.JobTitle == "" {
		assessment.JobTitle = defaultJobTitle
	}

	lowerName := strings.ToLower(assessment.CandidateName)
	if strings.Contains(lowerName, "assessment") || strings.Contains(lowerName, "unknown") ||
		len(assessment.CandidateName) > maxCandidateName {
		assessment.CandidateName = generatedName
	}

	if len(assessment.Questions) == 0 {
		return nil, fmt.Errorf("no valid interview questions found in the PDF; ensure the document is a properly formatted interview assessment export with questions and ratings (scanned, encrypted, or malformed files cannot be parsed)")
	}

	return assessment, nil
}

// splitLines trims every line and drops the empty ones; all scan logic indexes
// into the result.
func splitLines(text string) []string {
	raw := strings.Split(text, "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func lineAt(lines []string, i int) string {
	if i < 0 || i >= len(lines) {
		return ""
	}
	return lines[i]
}

// lookahead inspects up to window lines after position i, without consuming
// them, and returns the first one accepted by match.
func lookahead(lines []string, i, window int, match func(string) bool) (string, bool) {
	for j := i + 1; j < len(lines) && j <= i+window; j++ {
		if match(lines[j]) {
			return lines[j], true
		}
	}
	return "", false
}

// isQuestionShaped accepts lines that can serve as question text during the
// post-trigger lookahead.
func isQuestionShaped(line string) bool {
	return len(line) > 20 &&
		!reKeywordLine.MatchString(line) &&
		!strings.Contains(line, "EVALUATION CRITERIA") &&
		!strings.Contains(line, "Interview Assessment") &&
		!strings.Contains(line, "Rating:") &&
		!reRatingShaped.MatchString(line) &&
		!reBareDuration.MatchString(line)
}

// isDeferredQuestion is the broader filter used once the lookahead has failed.
// The strict pass additionally requires a question mark.
func isDeferredQuestion(line string, strict bool) bool {
	if len(line) <= 20 ||
		reKeywordLine.MatchString(line) ||
		strings.Contains(line, "EVALUATION CRITERIA") ||
		strings.Contains(line, "Rating:") ||
		strings.Contains(line, "/5") ||
		reBareDuration.MatchString(line) ||
		reCategoryLabel.MatchString(line) ||
		reDifficultyLabel.MatchString(line) {
		return false
	}
	if strict {
		return !strings.Contains(line, "Interview Assessment") && strings.Contains(line, "?")
	}
	return true
}

func isCriteriaShaped(line string) bool {
	return len(line) > 10 &&
		!strings.Contains(line, "Interview Assessment") &&
		!strings.Contains(line, "Rating:") &&
		!reRatingShaped.MatchString(line)
}

// headerValue recognizes both observed header styles: an exact uppercase label
// on its own line with the value below it, or an inline "Label: value".
func headerValue(line, next, bareLabel string, inline *regexp.Regexp) (string, bool) {
	if line == bareLabel {
		if next != "" {
			return next, true
		}
		return "", false
	}
	if m := inline.FindStringSubmatch(line); m != nil {
		if v := labelValue(m[1], next); v != "" {
			return v, true
		}
	}
	return "", false
}

// labelValue prefers the inline remainder and falls back to the next line,
// covering both the digital and the OCR-reconstructed layout.
func labelValue(remainder, next string) string {
	if v := strings.TrimSpace(remainder); v != "" {
		return v
	}
	return strings.TrimSpace(next)
}

func splitSkills(value string) []string {
	parts := strings.Split(value, ",")
	skills := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			skills = append(skills, p)
		}
	}
	if len(skills) == 0 {
		return []string{strings.TrimSpace(value)}
	}
	return skills
}

// normalizeJobTitle fixes the one known OCR concatenation artifact where
// title-cased words lose their separating space.
func normalizeJobTitle(line string) string {
	title := strings.TrimSpace(line)
	if title == "MobileDeveloper" {
		return "Mobile Developer"
	}
	return title
}

// sniffCategory reclassifies questions left at the provisional default by
// keyword: behavioral markers are checked before situational ones.
func sniffCategory(question string) models.QuestionCategory {
	text := strings.ToLower(question)
	for _, kw := range []string{"situation", "time when", "experience", "example"} {
		if strings.Contains(text, kw) {
			return models.CategoryBehavioral
		}
	}
	for _, kw := range []string{"difficult", "conflict", "challenge", "problem"} {
		if strings.Contains(text, kw) {
			return models.CategorySituational
		}
	}
	return models.CategoryTechnical
}

func bumpBreakdown(b *models.CategoryBreakdown, category models.QuestionCategory) {
	switch category {
	case models.CategoryTechnical:
		b.Technical++
	case models.CategoryBehavioral:
		b.Behavioral++
	case models.CategorySituational:
		b.Situational++
	case models.CategoryExperience:
		b.Experience++
	}
}

var reportDateLayouts = []string{
	"January 2, 2006",
	"Jan 2, 2006",
	"2006-01-02",
	"01/02/2006",
	"2/1/2006",
}

func parseReportDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	for _, layout := range reportDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
