package service

import (
	"time"

	"github.com/careerbloom/backend/internal/model"
	"github.com/careerbloom/backend/internal/vectorstore"
)

// mockBaseDate keeps fallback data deterministic; posted dates are offsets
// from this instant rather than from time.Now.
var mockBaseDate = time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)

// MockJobs returns the fixed development corpus used when no jobs could be
// loaded from the database.
func MockJobs() []model.Job {
	return []model.Job{
		{
			ID:          "mock-job-1",
			Title:       "Senior Software Engineer",
			Company:     "Tech Innovations Inc.",
			Location:    "San Francisco, CA",
			Description: "We're looking for a senior software engineer to join our team. You'll be working on cutting-edge technologies to solve complex problems.",
			Salary:      "$120,000 - $150,000",
			URL:         "https://example.com/jobs/1",
			Skills:      []string{"JavaScript", "React", "Node.js", "TypeScript", "AWS"},
			PostedDate:  mockBaseDate,
			Type:        "Full-time",
			Remote:      true,
			IsActive:    true,
		},
		{
			ID:          "mock-job-2",
			Title:       "Frontend Developer",
			Company:     "Digital Solutions",
			Location:    "New York, NY",
			Description: "Join our frontend team to build beautiful and responsive user interfaces using modern frameworks and tools.",
			Salary:      "$90,000 - $120,000",
			URL:         "https://example.com/jobs/2",
			Skills:      []string{"HTML", "CSS", "JavaScript", "React", "Redux"},
			PostedDate:  mockBaseDate.AddDate(0, 0, -1),
			Type:        "Full-time",
			Remote:      true,
			IsActive:    true,
		},
		{
			ID:          "mock-job-3",
			Title:       "Backend Engineer",
			Company:     "Data Systems Inc.",
			Location:    "Austin, TX",
			Description: "Build robust and scalable backend services to power our growing platform. Experience with distributed systems is a plus.",
			Salary:      "$110,000 - $140,000",
			URL:         "https://example.com/jobs/3",
			Skills:      []string{"Java", "Spring Boot", "Microservices", "PostgreSQL", "Docker"},
			PostedDate:  mockBaseDate.AddDate(0, 0, -2),
			Type:        "Full-time",
			Remote:      false,
			IsActive:    true,
		},
		{
			ID:          "mock-job-4",
			Title:       "Full Stack Developer",
			Company:     "WebTech Solutions",
			Location:    "Remote",
			Description: "Looking for a versatile developer who can work across the entire stack. You'll be involved in all aspects of product development.",
			Salary:      "$100,000 - $130,000",
			URL:         "https://example.com/jobs/4",
			Skills:      []string{"JavaScript", "TypeScript", "React", "Node.js", "MongoDB"},
			PostedDate:  mockBaseDate.AddDate(0, 0, -3),
			Type:        "Contract",
			Remote:      true,
			IsActive:    true,
		},
		{
			ID:          "mock-job-5",
			Title:       "DevOps Engineer",
			Company:     "Cloud Systems",
			Location:    "Seattle, WA",
			Description: "Join our infrastructure team to build and maintain our cloud-based systems. Experience with AWS and automation is required.",
			Salary:      "$130,000 - $160,000",
			URL:         "https://example.com/jobs/5",
			Skills:      []string{"AWS", "Kubernetes", "Docker", "Terraform", "CI/CD"},
			PostedDate:  mockBaseDate.AddDate(0, 0, -4),
			Type:        "Full-time",
			Remote:      false,
			IsActive:    true,
		},
	}
}

// MockRecommendations is the default fallback provider for Recommend: the
// mock corpus with fixed descending scores, so failing recommendation calls
// still return a stable, non-empty result set.
func MockRecommendations(limit int) []vectorstore.ScoredResult {
	jobs := MockJobs()
	if limit < 0 {
		limit = 0
	}
	if limit > len(jobs) {
		limit = len(jobs)
	}
	out := make([]vectorstore.ScoredResult, 0, limit)
	for i := 0; i < limit; i++ {
		score := 0.9 - float64(i)*0.1
		out = append(out, vectorstore.ScoredResult{
			Job:             jobs[i],
			Score:           score,
			MatchPercentage: int(score * 100),
		})
	}
	return out
}
