package dto

import (
	"time"

	"github.com/careerbloom/backend/internal/model"
	"github.com/careerbloom/backend/internal/vectorstore"
)

type JobMatchDTO struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Company         string    `json:"company"`
	Location        string    `json:"location"`
	Description     string    `json:"description"`
	Salary          string    `json:"salary,omitempty"`
	Type            string    `json:"type,omitempty"`
	Remote          bool      `json:"remote"`
	Skills          []string  `json:"skills,omitempty"`
	URL             string    `json:"url,omitempty"`
	PostedDate      time.Time `json:"posted_date"`
	Score           float64   `json:"score"`
	MatchPercentage int       `json:"match_percentage"`
}

// NewJobMatchDTO flattens a scored result for the API.
func NewJobMatchDTO(r vectorstore.ScoredResult) JobMatchDTO {
	return JobMatchDTO{
		ID:              r.Job.ID,
		Title:           r.Job.Title,
		Company:         r.Job.Company,
		Location:        r.Job.Location,
		Description:     r.Job.Description,
		Salary:          r.Job.Salary,
		Type:            r.Job.Type,
		Remote:          r.Job.Remote,
		Skills:          r.Job.Skills,
		URL:             r.Job.URL,
		PostedDate:      r.Job.PostedDate,
		Score:           r.Score,
		MatchPercentage: r.MatchPercentage,
	}
}

type RecommendationRequestDTO struct {
	ResumeText string `json:"resume_text"`
	Limit      int    `json:"limit"`
}

type RecommendationResponseDTO struct {
	Recommendations []JobMatchDTO `json:"recommendations"`
	ExtractedSkills []string      `json:"extracted_skills,omitempty"`
}

type IngestJobsRequestDTO struct {
	Jobs []model.Job `json:"jobs"`
}

type ScrapeRequestDTO struct {
	Query string `json:"query"`
	Pages int    `json:"pages"`
}

type CoverLetterRequestDTO struct {
	ResumeText string `json:"resume_text"`
	JobID      string `json:"job_id,omitempty"`
	JobTitle   string `json:"job_title,omitempty"`
	Company    string `json:"company,omitempty"`
	JobText    string `json:"job_text,omitempty"`
}

type CoverLetterResponseDTO struct {
	CoverLetter string `json:"cover_letter"`
}
