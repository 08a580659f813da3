package service

import (
	"context"
	"fmt"

	"github.com/careerbloom/backend/internal/config"
	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
)

const (
	openRouterURL   = "https://openrouter.ai/api/v1/chat/completions"
	openRouterModel = "deepseek/deepseek-r1-0528:free"
	siteURL         = "career-bloom-engine"
	siteName        = "CareerBloom Assistant"
)

// ChatResponderInterface is the LLM capability the chatbot depends on.
type ChatResponderInterface interface {
	Chat(ctx context.Context, systemPrompt, userMessage string) (string, error)
}

// OpenRouterService talks to OpenRouter's chat completions endpoint with the
// DeepSeek model used for chatbot answers.
type OpenRouterService struct {
	apiKey string
	model  string
	client *resty.Client
}

func NewOpenRouterService() *OpenRouterService {
	return &OpenRouterService{
		apiKey: config.LoadOpenRouterConfig().APIKey,
		model:  openRouterModel,
		client: resty.New(),
	}
}

func (s *OpenRouterService) Chat(ctx context.Context, systemPrompt, userMessage string) (string, error) {
	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+s.apiKey).
		SetHeader("Content-Type", "application/json").
		SetHeader("HTTP-Referer", siteURL).
		SetHeader("X-Title", siteName).
		SetBody(map[string]any{
			"model": s.model,
			"messages": []map[string]string{
				{"role": "system", "content": systemPrompt},
				{"role": "user", "content": userMessage},
			},
		}).
		Post(openRouterURL)
	if err != nil {
		return "", err
	}

	body := resp.String()
	if apiErr := gjson.Get(body, "error.message"); apiErr.Exists() {
		return "", fmt.Errorf("openrouter api error: %s", apiErr.String())
	}
	text := gjson.Get(body, "choices.0.message.content").String()
	if text == "" {
		return "", fmt.Errorf("no response from LLM")
	}
	return text, nil
}
