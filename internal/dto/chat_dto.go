package dto

import "github.com/careerbloom/backend/internal/model"

type ChatRequestDTO struct {
	Message    string     `json:"message"`
	ResumeText string     `json:"resume_text,omitempty"`
	Job        *model.Job `json:"job,omitempty"`
}

type ChatResponseDTO struct {
	Response string `json:"response"`
}
