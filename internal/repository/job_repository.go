package repository

import (
	"github.com/careerbloom/backend/internal/model"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// chatbotCorpusLimit caps the chatbot corpus at the freshest active postings
// so store warm-up stays fast.
const chatbotCorpusLimit = 50

type JobRepository struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) *JobRepository {
	return &JobRepository{db}
}

// UpsertJobs inserts jobs, overwriting existing rows with the same id so
// re-scraping a board does not duplicate postings.
func (r *JobRepository) UpsertJobs(jobs []model.Job) error {
	if len(jobs) == 0 {
		return nil
	}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(&jobs).Error
}

func (r *JobRepository) FindJobByID(id string) (*model.Job, error) {
	var j model.Job
	err := r.db.First(&j, "id = ?", id).Error
	return &j, err
}

func (r *JobRepository) GetAllJobs() ([]model.Job, error) {
	var jobs []model.Job
	err := r.db.Find(&jobs).Error
	return jobs, err
}

// GetJobsForChatbot returns the recent active postings that seed the chatbot
// store.
func (r *JobRepository) GetJobsForChatbot() ([]model.Job, error) {
	var jobs []model.Job
	err := r.db.
		Where("is_active = ?", true).
		Order("posted_date DESC").
		Limit(chatbotCorpusLimit).
		Find(&jobs).Error
	return jobs, err
}

// GetJobsPage returns one page of jobs plus the total row count.
func (r *JobRepository) GetJobsPage(page, pageSize int) ([]model.Job, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}

	var total int64
	if err := r.db.Model(&model.Job{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var jobs []model.Job
	err := r.db.
		Order("posted_date DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&jobs).Error
	return jobs, total, err
}

// SearchJobsByEmbedding ranks persisted jobs by vector distance to the given
// embedding.
func (r *JobRepository) SearchJobsByEmbedding(embedding pgvector.Vector, topK int) ([]model.Job, error) {
	var jobs []model.Job

	// pgvector <-> operator (Euclidean distance)
	err := r.db.Raw(`
        SELECT *, embedding <-> ? AS distance
        FROM jobs
        ORDER BY embedding <-> ?
        LIMIT ?
    `, embedding, embedding, topK).Scan(&jobs).Error

	return jobs, err
}
