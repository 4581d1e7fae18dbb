package models

type UploadResponse struct {
	ID           string `json:"id"`
	Filename     string `json:"filename"`
	OriginalName string `json:"original_name"`
	FileType     string `json:"file_type"`
}

type GenerateRequest struct {
	JobTitle         string `json:"job_title" validate:"required"`
	JobDescription   string `json:"job_description" validate:"required"`
	ExperienceLevel  string `json:"experience_level" validate:"required"`
	RequiredSkills   string `json:"required_skills" validate:"required"`
	ResumeDocumentID string `json:"resume_document_id" validate:"required,uuid"`
}

type GenerateResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type InterviewResultResponse struct {
	ID             string              `json:"id"`
	Status         string              `json:"status"`
	Questions      []GeneratedQuestion `json:"questions,omitempty"`
	QuestionSource string              `json:"question_source,omitempty"`
	ErrorMessage   string              `json:"error_message,omitempty"`
}

type RateQuestionRequest struct {
	Rating   float64 `json:"rating" validate:"required,min=0,max=5"`
	Comments string  `json:"comments"`
}

type AnalyzeRequest struct {
	CandidateIDs []string `json:"candidate_ids" validate:"required,min=2"`
}

type CandidateResult struct {
	CandidateID   string           `json:"candidate_id"`
	CandidateName string           `json:"candidate_name"`
	JobTitle      string           `json:"job_title"`
	Scores        *CandidateScores `json:"scores"`
}

type AnalyzeResponse struct {
	Results []CandidateResult `json:"results"`
}
