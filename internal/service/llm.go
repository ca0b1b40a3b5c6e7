package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/smartcook/smartcook-backend/config"
)

// LLMClient is the minimal surface the pipeline needs from the model
// provider: a blocking system+user chat call returning one text blob.
type LLMClient interface {
	Chat(ctx context.Context, system, user string) (string, error)
}

// LLMService calls the DashScope OpenAI-compatible chat-completions API.
type LLMService struct {
	client      *resty.Client
	model       string
	temperature float64
	maxTokens   int
	logger      *zap.Logger
}

// NewLLMService creates a DashScope-backed LLM client.
func NewLLMService(cfg *config.Config, logger *zap.Logger) *LLMService {
	client := resty.New().
		SetBaseURL(cfg.DashScope.BaseURL).
		SetTimeout(cfg.DashScope.Timeout).
		SetHeader("Authorization", fmt.Sprintf("Bearer %s", cfg.DashScope.APIKey)).
		SetHeader("Content-Type", "application/json")

	return &LLMService{
		client:      client,
		model:       cfg.DashScope.Model,
		temperature: cfg.DashScope.Temperature,
		maxTokens:   cfg.DashScope.MaxTokens,
		logger:      logger,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

// Chat sends a system+user prompt pair and returns the raw completion text.
// No retries and no cancellation beyond the client timeout.
func (s *LLMService) Chat(ctx context.Context, system, user string) (string, error) {
	start := time.Now()

	req := chatRequest{
		Model: s.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: s.temperature,
		MaxTokens:   s.maxTokens,
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(req).
		Post("/chat/completions")
	if err != nil {
		return "", fmt.Errorf("failed to send request to DashScope: %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("DashScope API returned status %d: %s", resp.StatusCode(), resp.String())
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return "", fmt.Errorf("failed to parse DashScope response: %w", err)
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("no choices in DashScope response")
	}

	s.logger.Info("model call completed",
		zap.String("model", s.model),
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("response_chars", len(result.Choices[0].Message.Content)),
	)

	return result.Choices[0].Message.Content, nil
}
