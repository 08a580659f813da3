package usecase

import (
	"context"
	"fmt"
	"log"
	"math"
	"strings"

	"github.com/careerbloom/backend/internal/dto"
	"github.com/careerbloom/backend/internal/model"
	"github.com/careerbloom/backend/internal/repository"
	"github.com/careerbloom/backend/internal/response"
	"github.com/careerbloom/backend/internal/service"
	"github.com/careerbloom/backend/internal/util"
	"github.com/careerbloom/backend/internal/vectorstore"
	"github.com/pgvector/pgvector-go"
)

const (
	defaultRecommendationLimit = 5
	defaultSearchLimit         = 8
	coverLetterModel           = "gemini-2.5-flash"
)

// CareerUsecase wires the retrieval stores, the chatbot and the LLM clients
// into the operations the HTTP layer exposes. The chatbot and recommendation
// flows each own a store: the chatbot ranks queries against recent active
// postings with cosine similarity, recommendations rank the full corpus
// against resume text with keyword overlap.
type CareerUsecase struct {
	jobRepo            *repository.JobRepository
	chatbotRetrieval   *service.RetrievalService
	recommendRetrieval *service.RetrievalService
	chatbot            *service.ChatbotService
	gemini             service.GeminiServiceInterface
	jobBoard           service.JobBoardServiceInterface
	embedder           *vectorstore.Embedder
}

func NewCareerUsecase(
	jobRepo *repository.JobRepository,
	chatbotRetrieval *service.RetrievalService,
	recommendRetrieval *service.RetrievalService,
	chatbot *service.ChatbotService,
	gemini service.GeminiServiceInterface,
	jobBoard service.JobBoardServiceInterface,
	embedder *vectorstore.Embedder,
) *CareerUsecase {
	return &CareerUsecase{
		jobRepo:            jobRepo,
		chatbotRetrieval:   chatbotRetrieval,
		recommendRetrieval: recommendRetrieval,
		chatbot:            chatbot,
		gemini:             gemini,
		jobBoard:           jobBoard,
		embedder:           embedder,
	}
}

func (uc *CareerUsecase) Chat(ctx context.Context, req dto.ChatRequestDTO) string {
	return uc.chatbot.ProcessQuery(ctx, service.ChatRequest{
		Query:      req.Message,
		ResumeText: req.ResumeText,
		Job:        req.Job,
	})
}

// Recommend matches resume text against the recommendation store and reports
// the skills recognized in the resume alongside the matches.
func (uc *CareerUsecase) Recommend(resumeText string, limit int) dto.RecommendationResponseDTO {
	if limit <= 0 {
		limit = defaultRecommendationLimit
	}
	results := uc.recommendRetrieval.Recommend(resumeText, limit)
	matches := make([]dto.JobMatchDTO, 0, len(results))
	for _, r := range results {
		matches = append(matches, dto.NewJobMatchDTO(r))
	}
	return dto.RecommendationResponseDTO{
		Recommendations: matches,
		ExtractedSkills: util.ExtractTechnicalSkills(resumeText),
	}
}

// SearchJobs runs a free-text search over the chatbot store, boosting results
// toward any job types detected in the query.
func (uc *CareerUsecase) SearchJobs(query string, limit int) []dto.JobMatchDTO {
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	types := vectorstore.ExtractJobTypes(query)
	results := uc.chatbotRetrieval.Query(query, limit)
	results = vectorstore.BoostByJobType(results, types)

	matches := make([]dto.JobMatchDTO, 0, len(results))
	for _, r := range results {
		matches = append(matches, dto.NewJobMatchDTO(r))
	}
	return matches
}

// SearchSimilarJobs ranks the persisted corpus against the query by vector
// distance in the database, bypassing the in-memory stores. Unlike SearchJobs
// it sees every stored row, not just the chatbot corpus.
func (uc *CareerUsecase) SearchSimilarJobs(query string, limit int) ([]dto.JobMatchDTO, error) {
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	queryVec, err := uc.embedder.Embed(query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	vec := make([]float32, len(queryVec))
	for i, v := range queryVec {
		vec[i] = float32(v)
	}
	jobs, err := uc.jobRepo.SearchJobsByEmbedding(pgvector.NewVector(vec), limit)
	if err != nil {
		return nil, fmt.Errorf("search jobs by embedding: %w", err)
	}
	return scoreJobsAgainst(queryVec, jobs), nil
}

// scoreJobsAgainst recomputes cosine scores for rows the database returned by
// distance; stored and query vectors are both unit length, so the dot product
// is the cosine.
func scoreJobsAgainst(queryVec []float64, jobs []model.Job) []dto.JobMatchDTO {
	matches := make([]dto.JobMatchDTO, 0, len(jobs))
	for _, job := range jobs {
		stored := job.Embedding.Slice()
		n := len(queryVec)
		if len(stored) < n {
			n = len(stored)
		}
		score := 0.0
		for i := 0; i < n; i++ {
			score += queryVec[i] * float64(stored[i])
		}
		pct := int(math.Round(score * 100))
		if pct < 0 {
			pct = 0
		}
		if pct > 100 {
			pct = 100
		}
		matches = append(matches, dto.NewJobMatchDTO(vectorstore.ScoredResult{
			Job:             job,
			Score:           score,
			MatchPercentage: pct,
		}))
	}
	return matches
}

// IngestJobs persists jobs with their embeddings and feeds both in-memory
// stores. Returns how many jobs were stored.
func (uc *CareerUsecase) IngestJobs(ctx context.Context, jobs []model.Job) (int, error) {
	if len(jobs) == 0 {
		return 0, nil
	}
	for i := range jobs {
		jobs[i].EnsureID()
		emb, err := uc.embedder.Embed(jobs[i].SearchText())
		if err != nil {
			return 0, fmt.Errorf("embed job %s: %w", jobs[i].ID, err)
		}
		vec := make([]float32, len(emb))
		for j, v := range emb {
			vec[j] = float32(v)
		}
		jobs[i].Embedding = pgvector.NewVector(vec)
		if !jobs[i].IsActive {
			jobs[i].IsActive = true
		}
	}
	if err := uc.jobRepo.UpsertJobs(jobs); err != nil {
		return 0, fmt.Errorf("persist jobs: %w", err)
	}

	if err := uc.chatbotRetrieval.Ingest(ctx, jobs); err != nil {
		return len(jobs), err
	}
	if err := uc.recommendRetrieval.Ingest(ctx, jobs); err != nil {
		return len(jobs), err
	}
	return len(jobs), nil
}

// Scrape pulls postings from the job board and ingests them.
func (uc *CareerUsecase) Scrape(ctx context.Context, query string, pages int) (int, error) {
	if uc.jobBoard == nil {
		return 0, fmt.Errorf("job board client not configured")
	}
	jobs, err := uc.jobBoard.SearchJobs(ctx, query, pages)
	if err != nil {
		return 0, fmt.Errorf("scrape jobs: %w", err)
	}
	log.Printf("scraped %d jobs for query %q", len(jobs), query)
	return uc.IngestJobs(ctx, jobs)
}

// GenerateCoverLetter drafts a cover letter for the given job from the resume
// text.
func (uc *CareerUsecase) GenerateCoverLetter(ctx context.Context, req dto.CoverLetterRequestDTO) (string, error) {
	if uc.gemini == nil {
		return "", fmt.Errorf("generation service not configured")
	}
	if strings.TrimSpace(req.ResumeText) == "" {
		return "", fmt.Errorf("resume text is required")
	}

	jobTitle := req.JobTitle
	company := req.Company
	jobText := req.JobText
	if req.JobID != "" {
		job, err := uc.jobRepo.FindJobByID(req.JobID)
		if err != nil {
			return "", fmt.Errorf("job %s not found: %w", req.JobID, err)
		}
		jobTitle = job.Title
		company = job.Company
		jobText = job.SearchText()
	}
	if jobTitle == "" && jobText == "" {
		return "", fmt.Errorf("a job id, title or description is required")
	}

	prompt := fmt.Sprintf(`You are a professional career coach. Write a concise, compelling cover letter for the position below, based on the candidate's resume.

Position: %s
Company: %s

Job Details:
%s

Candidate Resume:
%s

Keep it under 400 words, address it to the hiring team, highlight the candidate's most relevant experience and skills for this specific role, and close with a confident call to action. Return only the letter text.`,
		jobTitle, company, jobText, req.ResumeText)

	return uc.gemini.GenerateContent(ctx, coverLetterModel, prompt)
}

// ListJobs returns one page of persisted jobs with a pagination envelope.
func (uc *CareerUsecase) ListJobs(page, pageSize int) ([]model.Job, *response.Pagination, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}
	jobs, total, err := uc.jobRepo.GetJobsPage(page, pageSize)
	if err != nil {
		return nil, nil, err
	}
	return jobs, response.NewPagination(page, pageSize, total), nil
}
