package service

import (
	"context"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"github.com/careerbloom/backend/internal/config"
	"google.golang.org/genai"
)

type GeminiServiceInterface interface {
	GenerateContent(ctx context.Context, model string, prompt string) (string, error)
}

// GeminiService wraps the Gemini client with retries, exponential backoff and
// a simple consecutive-error circuit breaker. Used for cover-letter and
// career-advice generation.
type GeminiService struct {
	client            *genai.Client
	maxRetries        int
	baseDelay         time.Duration
	maxDelay          time.Duration
	requestTimeout    time.Duration
	consecutiveErrors int
	circuitBreakerMax int
}

func NewGeminiService(ctx context.Context) (*GeminiService, error) {
	apiKey := config.LoadGeminiConfig().APIKey
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY not set")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &GeminiService{
		client:            client,
		maxRetries:        3,
		baseDelay:         time.Second,
		maxDelay:          90 * time.Second,
		requestTimeout:    90 * time.Second,
		circuitBreakerMax: 5,
	}, nil
}

// GenerateContent runs a single prompt through the given model and returns
// the response text.
func (s *GeminiService) GenerateContent(ctx context.Context, model string, prompt string) (string, error) {
	if model == "" {
		return "", fmt.Errorf("model name cannot be empty")
	}
	if strings.TrimSpace(prompt) == "" {
		return "", fmt.Errorf("prompt cannot be empty")
	}
	if s.consecutiveErrors >= s.circuitBreakerMax {
		return "", fmt.Errorf("circuit breaker open: %d consecutive errors", s.consecutiveErrors)
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, s.requestTimeout)
	defer cancel()

	var lastErr error
	for attempt := 0; attempt <= s.maxRetries; attempt++ {
		if attempt > 0 {
			delay := s.backoff(attempt)
			log.Printf("gemini: retry %d/%d after %v", attempt, s.maxRetries, delay)
			select {
			case <-time.After(delay):
			case <-timeoutCtx.Done():
				return "", fmt.Errorf("context timeout during retry: %w", timeoutCtx.Err())
			}
		}

		result, err := s.client.Models.GenerateContent(
			timeoutCtx,
			model,
			genai.Text(prompt),
			&genai.GenerateContentConfig{Temperature: genai.Ptr(float32(0.1))},
		)
		if err == nil {
			s.consecutiveErrors = 0
			if err := validateGenerateResponse(result); err != nil {
				return "", fmt.Errorf("invalid response: %w", err)
			}
			return result.Text(), nil
		}

		lastErr = err
		if !isRetryableError(err) {
			s.consecutiveErrors++
			return "", fmt.Errorf("generate content failed: %w", err)
		}
		log.Printf("gemini: retryable error on attempt %d: %v", attempt+1, err)
	}

	s.consecutiveErrors++
	return "", fmt.Errorf("max retries (%d) exceeded: %w", s.maxRetries, lastErr)
}

func (s *GeminiService) backoff(attempt int) time.Duration {
	delay := s.baseDelay * time.Duration(math.Pow(2, float64(attempt-1)))
	if delay > s.maxDelay {
		delay = s.maxDelay
	}
	jitter := time.Duration(float64(delay) * 0.25)
	return delay - jitter/2 + time.Duration(float64(jitter)*0.5)
}

func isRetryableError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	if strings.Contains(msg, "context canceled") || strings.Contains(msg, "context deadline exceeded") {
		return false
	}
	if apiErr, ok := err.(*genai.APIError); ok {
		switch apiErr.Code {
		case 429, 500, 502, 503, 504:
			return true
		case 400, 401, 403, 404:
			return false
		}
	}
	return strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "connection reset") ||
		strings.Contains(msg, "timeout") ||
		strings.Contains(msg, "temporary failure") ||
		strings.Contains(msg, "EOF")
}

func validateGenerateResponse(resp *genai.GenerateContentResponse) error {
	if resp == nil {
		return fmt.Errorf("response is nil")
	}
	if len(resp.Candidates) == 0 {
		return fmt.Errorf("no candidates in response")
	}
	if resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return fmt.Errorf("candidate content is empty")
	}
	return nil
}
