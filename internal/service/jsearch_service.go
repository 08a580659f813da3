package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/careerbloom/backend/internal/config"
	"github.com/careerbloom/backend/internal/model"
	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
)

const jsearchURL = "https://jsearch.p.rapidapi.com/search"

type JobBoardServiceInterface interface {
	SearchJobs(ctx context.Context, query string, pages int) ([]model.Job, error)
}

// JSearchService pulls job postings from the JSearch RapidAPI board so the
// corpus can be refreshed on demand.
type JSearchService struct {
	apiKey string
	client *resty.Client
}

func NewJSearchService() *JSearchService {
	return &JSearchService{
		apiKey: config.LoadJSearchConfig().APIKey,
		client: resty.New().SetTimeout(30 * time.Second),
	}
}

// SearchJobs queries the board and maps the raw payload into jobs. Pages
// below 1 are clamped to 1.
func (s *JSearchService) SearchJobs(ctx context.Context, query string, pages int) ([]model.Job, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("search query cannot be empty")
	}
	if s.apiKey == "" {
		return nil, fmt.Errorf("JSEARCH_API_KEY not set")
	}
	if pages < 1 {
		pages = 1
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("X-RapidAPI-Key", s.apiKey).
		SetHeader("X-RapidAPI-Host", "jsearch.p.rapidapi.com").
		SetQueryParams(map[string]string{
			"query":     query,
			"page":      "1",
			"num_pages": fmt.Sprintf("%d", pages),
		}).
		Get(jsearchURL)
	if err != nil {
		return nil, fmt.Errorf("jsearch request failed: %w", err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("jsearch returned status %d: %s", resp.StatusCode(), resp.String())
	}

	body := resp.String()
	data := gjson.Get(body, "data")
	if !data.Exists() || !data.IsArray() {
		return nil, fmt.Errorf("unexpected jsearch response shape")
	}

	var jobs []model.Job
	data.ForEach(func(_, item gjson.Result) bool {
		job := mapJSearchJob(item)
		job.EnsureID()
		jobs = append(jobs, job)
		return true
	})
	return jobs, nil
}

func mapJSearchJob(item gjson.Result) model.Job {
	location := item.Get("job_city").String()
	if country := item.Get("job_country").String(); country != "" {
		if location != "" {
			location += ", "
		}
		location += country
	}

	var skills []string
	item.Get("job_required_skills").ForEach(func(_, s gjson.Result) bool {
		skills = append(skills, s.String())
		return true
	})

	var posted time.Time
	if ts := item.Get("job_posted_at_timestamp").Int(); ts > 0 {
		posted = time.Unix(ts, 0).UTC()
	}

	return model.Job{
		ID:          item.Get("job_id").String(),
		Title:       item.Get("job_title").String(),
		Company:     item.Get("employer_name").String(),
		Location:    location,
		Description: item.Get("job_description").String(),
		Salary:      item.Get("job_salary").String(),
		Type:        item.Get("job_employment_type").String(),
		Remote:      item.Get("job_is_remote").Bool(),
		Skills:      skills,
		URL:         item.Get("job_apply_link").String(),
		PostedDate:  posted,
		IsActive:    true,
	}
}
