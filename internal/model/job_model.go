package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

// Job is a single job posting. It is persisted in Postgres and mirrored into
// the in-memory retrieval store for chatbot and recommendation lookups.
type Job struct {
	ID          string          `gorm:"type:varchar(64);primaryKey" json:"id"`
	Title       string          `json:"title"`
	Company     string          `json:"company"`
	Location    string          `json:"location"`
	Description string          `gorm:"type:text" json:"description"`
	Salary      string          `json:"salary"`
	Type        string          `json:"type"`
	Remote      bool            `json:"remote"`
	Skills      []string        `gorm:"serializer:json" json:"skills"`
	URL         string          `json:"url"`
	PostedDate  time.Time       `json:"posted_date"`
	IsActive    bool            `json:"is_active"`
	Embedding   pgvector.Vector `gorm:"type:vector(1536)" json:"-"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func (j *Job) TableName() string {
	return "jobs"
}

// EnsureID assigns a generated id when the job carries none, e.g. for records
// that never passed through the database.
func (j *Job) EnsureID() {
	if j.ID == "" {
		j.ID = uuid.NewString()
	}
}

// SearchText flattens the job into the text blob indexed by the retrieval
// store. It must be recomputed on every ingestion; absent optional fields get
// documented defaults instead of failing.
func (j *Job) SearchText() string {
	salary := j.Salary
	if salary == "" {
		salary = "Not specified"
	}
	remote := "No"
	if j.Remote {
		remote = "Yes"
	}
	posted := "Not specified"
	if !j.PostedDate.IsZero() {
		posted = j.PostedDate.Format("2006-01-02")
	}
	return fmt.Sprintf(
		"Job Title: %s\nCompany: %s\nLocation: %s\nRemote: %s\nSalary: %s\nJob Type: %s\nSkills: %s\nDescription: %s\nPosted Date: %s",
		j.Title, j.Company, j.Location, remote, salary, j.Type,
		strings.Join(j.Skills, ", "), j.Description, posted,
	)
}
