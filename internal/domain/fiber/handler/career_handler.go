package handler

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/careerbloom/backend/internal/dto"
	"github.com/careerbloom/backend/internal/middleware"
	"github.com/careerbloom/backend/internal/usecase"
	"github.com/careerbloom/backend/internal/util"
	"github.com/gofiber/fiber/v2"
)

const maxResumeSize = 5 * 1024 * 1024

type CareerHandler struct {
	uc *usecase.CareerUsecase
}

func NewCareerHandler(uc *usecase.CareerUsecase) *CareerHandler {
	return &CareerHandler{uc: uc}
}

func (h *CareerHandler) RegisterRoutes(app *fiber.App) {
	app.Post("/chat", h.Chat)
	app.Post("/recommendations", h.Recommendations)
	app.Get("/jobs", h.ListJobs)
	app.Get("/jobs/search", h.SearchJobs)
	app.Get("/jobs/similar", h.SimilarJobs)
	app.Post("/jobs", h.IngestJobs)
	app.Post("/cover-letter", middleware.RateLimiter(10, 1*time.Minute), h.CoverLetter)
	app.Post("/scrape", middleware.RateLimiter(2, 1*time.Minute), h.Scrape)
}

func (h *CareerHandler) Chat(c *fiber.Ctx) error {
	var req dto.ChatRequestDTO
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid request body",
		}, err)
	}
	if strings.TrimSpace(req.Message) == "" {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "message is required",
		})
	}

	answer := h.uc.Chat(c.Context(), req)
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusOK,
		Message: "Success process chat",
		Data:    dto.ChatResponseDTO{Response: answer},
	})
}

// Recommendations accepts either a multipart "resume" PDF or a JSON body with
// resume_text.
func (h *CareerHandler) Recommendations(c *fiber.Ctx) error {
	resumeText, limit, err := h.resumeFromRequest(c)
	if err != nil {
		return err
	}
	if strings.TrimSpace(resumeText) == "" {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "resume text or resume file is required",
		})
	}

	result := h.uc.Recommend(resumeText, limit)
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusOK,
		Message: "Success get recommendations",
		Data:    result,
	})
}

func (h *CareerHandler) resumeFromRequest(c *fiber.Ctx) (string, int, error) {
	file, err := c.FormFile("resume")
	if err == nil {
		if file.Size > maxResumeSize {
			return "", 0, util.ErrorResponse(c, util.ErrorResponseFormat{
				Code:    fiber.StatusBadRequest,
				Message: "resume file is too large (max 5MB)",
			})
		}
		if strings.ToLower(filepath.Ext(file.Filename)) != ".pdf" {
			return "", 0, util.ErrorResponse(c, util.ErrorResponseFormat{
				Code:    fiber.StatusBadRequest,
				Message: "unsupported resume file type",
			})
		}
		savePath := filepath.Join("./uploads/resume/", file.Filename)
		if err := c.SaveFile(file, savePath); err != nil {
			return "", 0, util.ErrorResponse(c, util.ErrorResponseFormat{
				Code:    fiber.StatusInternalServerError,
				Message: "cannot save resume file",
			}, err)
		}
		text, err := util.ExtractPDFText(savePath)
		if err != nil {
			return "", 0, util.ErrorResponse(c, util.ErrorResponseFormat{
				Code:    fiber.StatusUnprocessableEntity,
				Message: "failed to extract resume text",
			}, err)
		}
		return text, c.QueryInt("limit"), nil
	}

	var req dto.RecommendationRequestDTO
	if err := c.BodyParser(&req); err != nil {
		return "", 0, util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid request body",
		}, err)
	}
	return req.ResumeText, req.Limit, nil
}

func (h *CareerHandler) ListJobs(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	pageSize := c.QueryInt("page_size", 10)

	jobs, pagination, err := h.uc.ListJobs(page, pageSize)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to list jobs",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:       fiber.StatusOK,
		Message:    "Success get jobs",
		Data:       jobs,
		Pagination: pagination,
	})
}

func (h *CareerHandler) SearchJobs(c *fiber.Ctx) error {
	query := c.Query("q")
	if strings.TrimSpace(query) == "" {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "query parameter q is required",
		})
	}

	matches := h.uc.SearchJobs(query, c.QueryInt("limit"))
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusOK,
		Message: "Success search jobs",
		Data:    matches,
	})
}

// SimilarJobs searches the persisted corpus by vector distance instead of the
// in-memory store.
func (h *CareerHandler) SimilarJobs(c *fiber.Ctx) error {
	query := c.Query("q")
	if strings.TrimSpace(query) == "" {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "query parameter q is required",
		})
	}

	matches, err := h.uc.SearchSimilarJobs(query, c.QueryInt("limit"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to search similar jobs",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusOK,
		Message: "Success search similar jobs",
		Data:    matches,
	})
}

func (h *CareerHandler) IngestJobs(c *fiber.Ctx) error {
	var req dto.IngestJobsRequestDTO
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid request body",
		}, err)
	}
	if len(req.Jobs) == 0 {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "jobs array is required",
		})
	}

	count, err := h.uc.IngestJobs(c.Context(), req.Jobs)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to ingest jobs",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusOK,
		Message: "Success ingest jobs",
		Data:    fiber.Map{"ingested": count},
	})
}

func (h *CareerHandler) CoverLetter(c *fiber.Ctx) error {
	var req dto.CoverLetterRequestDTO
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid request body",
		}, err)
	}

	letter, err := h.uc.GenerateCoverLetter(c.Context(), req)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to generate cover letter",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusOK,
		Message: "Success generate cover letter",
		Data:    dto.CoverLetterResponseDTO{CoverLetter: letter},
	})
}

func (h *CareerHandler) Scrape(c *fiber.Ctx) error {
	var req dto.ScrapeRequestDTO
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid request body",
		}, err)
	}
	if strings.TrimSpace(req.Query) == "" {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "query is required",
		})
	}

	count, err := h.uc.Scrape(c.Context(), req.Query, req.Pages)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to scrape jobs",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusOK,
		Message: "Success scrape jobs",
		Data:    fiber.Map{"ingested": count},
	})
}
