package llm

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/ternarybob/aperio/internal/interfaces"
)

// safetyOff disables all harm category filters. Scanned disclosure pages
// carry politician names and money amounts that trip the default filters.
var safetyOff = []*genai.SafetySetting{
	{Category: genai.HarmCategoryHarassment, Threshold: genai.HarmBlockThresholdBlockNone},
	{Category: genai.HarmCategoryHateSpeech, Threshold: genai.HarmBlockThresholdBlockNone},
	{Category: genai.HarmCategorySexuallyExplicit, Threshold: genai.HarmBlockThresholdBlockNone},
	{Category: genai.HarmCategoryDangerousContent, Threshold: genai.HarmBlockThresholdBlockNone},
}

// getGeminiClient returns a Gemini client for the key, creating one if the
// cached client was built for a different key.
func (s *Service) getGeminiClient(ctx context.Context, apiKey string) (*genai.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.geminiClient != nil && s.geminiKey == apiKey {
		return s.geminiClient, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	s.geminiClient = client
	s.geminiKey = apiKey
	return client, nil
}

func (s *Service) analyzeWithGemini(ctx context.Context, req *interfaces.VisionRequest, model, prompt string) (string, error) {
	client, err := s.getGeminiClient(ctx, req.APIKey)
	if err != nil {
		return "", err
	}

	if s.geminiLimiter != nil {
		if err := s.geminiLimiter.Wait(ctx); err != nil {
			return "", err
		}
	}

	ctx, cancel := context.WithTimeout(ctx, s.geminiTimeout)
	defer cancel()

	config := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(s.geminiConfig.Temperature),
		TopP:            genai.Ptr(s.geminiConfig.TopP),
		TopK:            genai.Ptr(s.geminiConfig.TopK),
		MaxOutputTokens: s.geminiConfig.MaxOutputTokens,
		SafetySettings:  safetyOff,
	}

	// One attempt per page, failures surface to the caller
	resp, err := client.Models.GenerateContent(ctx, model, []*genai.Content{
		{
			Role: "user",
			Parts: []*genai.Part{
				genai.NewPartFromText(prompt),
				genai.NewPartFromBytes(req.Image, "image/png"),
			},
		},
	}, config)
	if err != nil {
		return "", fmt.Errorf("Gemini API call failed: %w", err)
	}

	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("empty response from Gemini API")
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("empty text in Gemini response")
	}

	return text, nil
}
