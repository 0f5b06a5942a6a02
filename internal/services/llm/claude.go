package llm

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/ternarybob/aperio/internal/interfaces"
)

// getClaudeClient returns a Claude client for the key, creating one if the
// cached client was built for a different key.
func (s *Service) getClaudeClient(apiKey string) anthropic.Client {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.claudeKey == apiKey {
		return s.claudeClient
	}

	client := anthropic.NewClient(
		option.WithAPIKey(apiKey),
	)

	s.claudeClient = client
	s.claudeKey = apiKey
	return client
}

func (s *Service) analyzeWithClaude(ctx context.Context, req *interfaces.VisionRequest, model, prompt string) (string, error) {
	client := s.getClaudeClient(req.APIKey)

	if s.claudeLimiter != nil {
		if err := s.claudeLimiter.Wait(ctx); err != nil {
			return "", err
		}
	}

	ctx, cancel := context.WithTimeout(ctx, s.claudeTimeout)
	defer cancel()

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(model),
		MaxTokens: int64(s.claudeConfig.MaxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(
				anthropic.NewImageBlockBase64("image/png", base64.StdEncoding.EncodeToString(req.Image)),
				anthropic.NewTextBlock(prompt),
			),
		},
	}

	if s.claudeConfig.Temperature > 0 {
		params.Temperature = anthropic.Float(float64(s.claudeConfig.Temperature))
	}

	// One attempt per page, failures surface to the caller
	resp, err := client.Messages.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("Claude API call failed: %w", err)
	}

	// Extract text from response
	var text strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}

	if text.Len() == 0 {
		return "", fmt.Errorf("empty response from Claude API")
	}

	return text.String(), nil
}
