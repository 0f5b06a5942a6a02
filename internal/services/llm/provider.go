package llm

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/ternarybob/arbor"
	"golang.org/x/time/rate"
	"google.golang.org/genai"

	"github.com/ternarybob/aperio/internal/common"
	"github.com/ternarybob/aperio/internal/interfaces"
	"github.com/ternarybob/aperio/internal/models"
)

// ProviderType represents the AI provider type
type ProviderType string

const (
	// ProviderGemini uses Google Gemini API
	ProviderGemini ProviderType = "gemini"
	// ProviderClaude uses Anthropic Claude API
	ProviderClaude ProviderType = "claude"
)

// Service sends rendered report pages to a vision model and returns the
// raw response text. Each page is a single API call: a failed call is
// reported to the caller, never retried. Rate limiters only space calls
// out, they do not re-issue them.
type Service struct {
	geminiConfig *common.GeminiConfig
	claudeConfig *common.ClaudeConfig
	llmConfig    *common.LLMConfig
	logger       arbor.ILogger

	mu           sync.Mutex
	geminiClient *genai.Client
	geminiKey    string
	claudeClient anthropic.Client
	claudeKey    string

	geminiLimiter *rate.Limiter
	claudeLimiter *rate.Limiter
	geminiTimeout time.Duration
	claudeTimeout time.Duration
}

// Compile-time interface assertion
var _ interfaces.VisionService = (*Service)(nil)

// NewService creates a new vision model service
func NewService(config *common.Config, logger arbor.ILogger) *Service {
	return &Service{
		geminiConfig:  &config.Gemini,
		claudeConfig:  &config.Claude,
		llmConfig:     &config.LLM,
		logger:        logger,
		geminiLimiter: newLimiter(config.Gemini.RateLimit),
		claudeLimiter: newLimiter(config.Claude.RateLimit),
		geminiTimeout: parseTimeout(config.Gemini.Timeout),
		claudeTimeout: parseTimeout(config.Claude.Timeout),
	}
}

// DetectProvider determines the provider type from a model string.
// Model strings can be:
// - "claude-sonnet-4-20250514" -> Claude
// - "claude/claude-sonnet-4-20250514" -> Claude (with prefix)
// - "gemini-3-pro-preview" -> Gemini
// - "gemini/gemini-3-pro-preview" -> Gemini (with prefix)
// - Empty string -> uses default provider from config
func (s *Service) DetectProvider(model string) ProviderType {
	if model == "" {
		return ProviderType(s.llmConfig.DefaultProvider)
	}

	model = strings.ToLower(model)

	// Check for explicit provider prefix
	if strings.HasPrefix(model, "claude/") || strings.HasPrefix(model, "anthropic/") {
		return ProviderClaude
	}
	if strings.HasPrefix(model, "gemini/") || strings.HasPrefix(model, "google/") {
		return ProviderGemini
	}

	// Check for model name patterns
	if strings.HasPrefix(model, "claude-") {
		return ProviderClaude
	}
	if strings.HasPrefix(model, "gemini-") {
		return ProviderGemini
	}

	// Default to configured provider
	return ProviderType(s.llmConfig.DefaultProvider)
}

// NormalizeModel removes provider prefix from model name if present
func (s *Service) NormalizeModel(model string) string {
	prefixes := []string{"claude/", "anthropic/", "gemini/", "google/"}
	for _, prefix := range prefixes {
		if strings.HasPrefix(strings.ToLower(model), prefix) {
			return model[len(prefix):]
		}
	}
	return model
}

// ModelID returns the model identifier a request will actually use: the
// normalized request model, or the configured default for its provider.
func (s *Service) ModelID(model string) string {
	provider := s.DetectProvider(model)
	normalized := s.NormalizeModel(model)
	if normalized == "" {
		return s.defaultModel(provider)
	}
	return normalized
}

func (s *Service) defaultModel(provider ProviderType) string {
	switch provider {
	case ProviderClaude:
		return s.claudeConfig.Model
	default:
		return s.geminiConfig.Model
	}
}

// ResolveKey resolves the API key for the provider the model selects.
// For Gemini the request key wins, then GEMINI_API_KEY, then config.
// Claude keys only come from the environment or config; the request
// field carries a Gemini key.
func (s *Service) ResolveKey(model, requestKey string) (string, error) {
	switch s.DetectProvider(model) {
	case ProviderClaude:
		key, err := common.ResolveAPIKey("anthropic_api_key", s.claudeConfig.APIKey)
		if err != nil {
			return "", models.NewInputError("anthropicApiKey is required")
		}
		return key, nil
	default:
		if requestKey != "" {
			return requestKey, nil
		}
		key, err := common.ResolveAPIKey("gemini_api_key", s.geminiConfig.APIKey)
		if err != nil {
			return "", models.NewInputError("geminiApiKey is required")
		}
		return key, nil
	}
}

// AnalyzePage sends one rendered page image to the vision model and
// returns the raw response text.
func (s *Service) AnalyzePage(ctx context.Context, req *interfaces.VisionRequest) (string, error) {
	provider := s.DetectProvider(req.Model)
	model := s.ModelID(req.Model)
	prompt := pagePrompt(req.Batch)

	s.logger.Debug().
		Str("provider", string(provider)).
		Str("model", model).
		Int("page", req.PageNumber).
		Int("image_bytes", len(req.Image)).
		Msg("Sending page to vision model")

	switch provider {
	case ProviderClaude:
		return s.analyzeWithClaude(ctx, req, model, prompt)
	default:
		return s.analyzeWithGemini(ctx, req, model, prompt)
	}
}

// Close closes all provider clients
func (s *Service) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.geminiClient = nil
	s.geminiKey = ""
	s.claudeClient = anthropic.Client{} // Reset to zero value
	s.claudeKey = ""
	return nil
}

func newLimiter(spacing string) *rate.Limiter {
	d, err := time.ParseDuration(spacing)
	if err != nil || d <= 0 {
		return nil
	}
	return rate.NewLimiter(rate.Every(d), 1)
}

func parseTimeout(value string) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return 5 * time.Minute
	}
	return d
}
