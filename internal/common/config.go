package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration
type Config struct {
	Environment string        `toml:"environment"` // "development" or "production"
	Server      ServerConfig  `toml:"server"`
	Logging     LoggingConfig `toml:"logging"`
	Drive       DriveConfig   `toml:"drive"`
	PDF         PDFConfig     `toml:"pdf"`
	Gemini      GeminiConfig  `toml:"gemini"`
	Claude      ClaudeConfig  `toml:"claude"`
	LLM         LLMConfig     `toml:"llm"`
	Batch       BatchConfig   `toml:"batch"`
}

type ServerConfig struct {
	Port int    `toml:"port"`
	Host string `toml:"host"`
}

type LoggingConfig struct {
	Level  string   `toml:"level"`  // "debug", "info", "warn", "error"
	Format string   `toml:"format"` // "json" or "text"
	Output []string `toml:"output"` // "stdout", "file"
}

// DriveConfig contains Google Drive document store configuration
type DriveConfig struct {
	CredentialsFile string `toml:"credentials_file"` // Service account JSON path (empty = Application Default Credentials)
	MaxFileSize     int64  `toml:"max_file_size"`    // Maximum source document size in bytes (default: 100 MiB)
}

// PDFConfig contains page rasterization configuration
type PDFConfig struct {
	DPI      int    `toml:"dpi"`      // Render resolution (default: 300, matches the scan pipeline)
	Pdftoppm string `toml:"pdftoppm"` // Path to the poppler pdftoppm binary
}

// GeminiConfig contains Google Gemini API configuration
type GeminiConfig struct {
	APIKey          string  `toml:"api_key"`           // Gemini API key (request field and GEMINI_API_KEY take priority)
	Model           string  `toml:"model"`             // Model for page analysis (default: "gemini-3-pro-preview")
	Temperature     float32 `toml:"temperature"`       // Generation temperature (default: 0.1 for faithful transcription)
	TopP            float32 `toml:"top_p"`             // Nucleus sampling (default: 0.95)
	TopK            float32 `toml:"top_k"`             // Top-k sampling (default: 40)
	MaxOutputTokens int32   `toml:"max_output_tokens"` // Output budget for dense table pages (default: 65536)
	Timeout         string  `toml:"timeout"`           // Per-call timeout as duration string (default: "5m")
	RateLimit       string  `toml:"rate_limit"`        // Minimum spacing between calls (default: "4s" for free tier, "" disables)
}

// ClaudeConfig contains Anthropic Claude API configuration
type ClaudeConfig struct {
	APIKey      string  `toml:"api_key"`     // Anthropic API key (ANTHROPIC_API_KEY takes priority)
	Model       string  `toml:"model"`       // Model for page analysis (default: "claude-haiku-3-5-20241022")
	MaxTokens   int     `toml:"max_tokens"`  // Maximum tokens in response (default: 8192)
	Temperature float32 `toml:"temperature"` // Generation temperature (default: 0.1)
	Timeout     string  `toml:"timeout"`     // Per-call timeout as duration string (default: "5m")
	RateLimit   string  `toml:"rate_limit"`  // Minimum spacing between calls (default: "1s", "" disables)
}

// LLMProvider represents the AI provider type
type LLMProvider string

const (
	// LLMProviderGemini uses Google Gemini API
	LLMProviderGemini LLMProvider = "gemini"
	// LLMProviderClaude uses Anthropic Claude API
	LLMProviderClaude LLMProvider = "claude"
)

// LLMConfig contains unified configuration for all AI providers
type LLMConfig struct {
	DefaultProvider LLMProvider `toml:"default_provider"` // "gemini" or "claude" (default: "gemini")
}

// BatchConfig contains configuration for page-range extraction
type BatchConfig struct {
	Workers int `toml:"workers"` // Concurrent page workers (default: 1 = sequential)
}

// NewDefaultConfig creates a configuration with default values.
// Technical parameters are hardcoded here for production stability.
// Only user-facing settings should be exposed in aperio.toml.
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Port: 8080,
			Host: "localhost",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: []string{"stdout", "file"},
		},
		Drive: DriveConfig{
			CredentialsFile: "",                // Application Default Credentials
			MaxFileSize:     100 * 1024 * 1024, // 100 MiB source document cap
		},
		PDF: PDFConfig{
			DPI:      300, // Same resolution as the scanning pipeline
			Pdftoppm: "pdftoppm",
		},
		Gemini: GeminiConfig{
			APIKey:          "",                     // Provided per request or via GEMINI_API_KEY
			Model:           "gemini-3-pro-preview", // Highest accuracy for dense scanned tables
			Temperature:     0.1,
			TopP:            0.95,
			TopK:            40,
			MaxOutputTokens: 65536,
			Timeout:         "5m",
			RateLimit:       "4s", // 15 RPM free tier
		},
		Claude: ClaudeConfig{
			APIKey:      "",
			Model:       "claude-haiku-3-5-20241022",
			MaxTokens:   8192,
			Temperature: 0.1,
			Timeout:     "5m",
			RateLimit:   "1s",
		},
		LLM: LLMConfig{
			DefaultProvider: LLMProviderGemini,
		},
		Batch: BatchConfig{
			Workers: 1, // Sequential by default, pages hit the model one at a time
		},
	}
}

// LoadFromFiles loads configuration from multiple files with priority:
// default -> file1 -> file2 -> ... -> env. Later files override earlier
// files; environment variables override all files.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	// Environment configuration (highest priority: APERIO_ENV, fallback: GO_ENV)
	if env := os.Getenv("APERIO_ENV"); env != "" {
		config.Environment = env
	} else if env := os.Getenv("GO_ENV"); env != "" {
		config.Environment = env
	}

	// Server configuration. PORT is honored for Cloud Run compatibility.
	if port := os.Getenv("APERIO_SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	} else if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if host := os.Getenv("APERIO_SERVER_HOST"); host != "" {
		config.Server.Host = host
	}

	// Logging configuration
	if level := os.Getenv("APERIO_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if format := os.Getenv("APERIO_LOG_FORMAT"); format != "" {
		config.Logging.Format = format
	}
	if output := os.Getenv("APERIO_LOG_OUTPUT"); output != "" {
		outputs := []string{}
		for _, o := range strings.Split(output, ",") {
			trimmed := strings.TrimSpace(o)
			if trimmed != "" {
				outputs = append(outputs, trimmed)
			}
		}
		if len(outputs) > 0 {
			config.Logging.Output = outputs
		}
	}

	// Drive configuration
	if credsFile := os.Getenv("APERIO_DRIVE_CREDENTIALS_FILE"); credsFile != "" {
		config.Drive.CredentialsFile = credsFile
	}
	if maxSize := os.Getenv("APERIO_DRIVE_MAX_FILE_SIZE"); maxSize != "" {
		if ms, err := strconv.ParseInt(maxSize, 10, 64); err == nil {
			config.Drive.MaxFileSize = ms
		}
	}

	// PDF configuration
	if dpi := os.Getenv("APERIO_PDF_DPI"); dpi != "" {
		if d, err := strconv.Atoi(dpi); err == nil {
			config.PDF.DPI = d
		}
	}
	if pdftoppm := os.Getenv("APERIO_PDF_PDFTOPPM"); pdftoppm != "" {
		config.PDF.Pdftoppm = pdftoppm
	}

	// Gemini configuration
	if apiKey := os.Getenv("APERIO_GEMINI_API_KEY"); apiKey != "" {
		config.Gemini.APIKey = apiKey
	}
	if model := os.Getenv("APERIO_GEMINI_MODEL"); model != "" {
		config.Gemini.Model = model
	}
	if temperature := os.Getenv("APERIO_GEMINI_TEMPERATURE"); temperature != "" {
		if t, err := strconv.ParseFloat(temperature, 32); err == nil {
			config.Gemini.Temperature = float32(t)
		}
	}
	if maxTokens := os.Getenv("APERIO_GEMINI_MAX_OUTPUT_TOKENS"); maxTokens != "" {
		if mt, err := strconv.ParseInt(maxTokens, 10, 32); err == nil {
			config.Gemini.MaxOutputTokens = int32(mt)
		}
	}
	if timeout := os.Getenv("APERIO_GEMINI_TIMEOUT"); timeout != "" {
		config.Gemini.Timeout = timeout
	}
	if rateLimit := os.Getenv("APERIO_GEMINI_RATE_LIMIT"); rateLimit != "" {
		config.Gemini.RateLimit = rateLimit
	}

	// Claude configuration
	if apiKey := os.Getenv("APERIO_CLAUDE_API_KEY"); apiKey != "" {
		config.Claude.APIKey = apiKey
	}
	if model := os.Getenv("APERIO_CLAUDE_MODEL"); model != "" {
		config.Claude.Model = model
	}
	if maxTokens := os.Getenv("APERIO_CLAUDE_MAX_TOKENS"); maxTokens != "" {
		if mt, err := strconv.Atoi(maxTokens); err == nil {
			config.Claude.MaxTokens = mt
		}
	}
	if temperature := os.Getenv("APERIO_CLAUDE_TEMPERATURE"); temperature != "" {
		if t, err := strconv.ParseFloat(temperature, 32); err == nil {
			config.Claude.Temperature = float32(t)
		}
	}
	if timeout := os.Getenv("APERIO_CLAUDE_TIMEOUT"); timeout != "" {
		config.Claude.Timeout = timeout
	}
	if rateLimit := os.Getenv("APERIO_CLAUDE_RATE_LIMIT"); rateLimit != "" {
		config.Claude.RateLimit = rateLimit
	}

	// LLM provider configuration
	if provider := os.Getenv("APERIO_LLM_DEFAULT_PROVIDER"); provider != "" {
		config.LLM.DefaultProvider = LLMProvider(provider)
	}

	// Batch configuration
	if workers := os.Getenv("APERIO_BATCH_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil {
			config.Batch.Workers = w
		}
	}
}

// ApplyFlagOverrides applies command-line flag overrides to config
func ApplyFlagOverrides(config *Config, port int, host string) {
	// Command-line flags have highest priority
	if port > 0 {
		config.Server.Port = port
	}
	if host != "" {
		config.Server.Host = host
	}
}

// ResolveAPIKey resolves an API key by name with environment variable
// priority: environment variables -> config fallback -> error.
func ResolveAPIKey(name string, configFallback string) (string, error) {
	keyToEnvMapping := map[string][]string{
		"gemini_api_key":    {"GEMINI_API_KEY", "APERIO_GEMINI_API_KEY"},
		"anthropic_api_key": {"ANTHROPIC_API_KEY", "APERIO_CLAUDE_API_KEY"},
	}

	if envVarNames, hasMappedEnv := keyToEnvMapping[name]; hasMappedEnv {
		for _, envVarName := range envVarNames {
			if envValue := os.Getenv(envVarName); envValue != "" {
				return envValue, nil
			}
		}
	}

	if configFallback != "" {
		return configFallback, nil
	}

	return "", fmt.Errorf("API key '%s' not found in environment or config", name)
}

// IsProduction returns true if the environment is set to production
func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.Environment))
	return env == "production" || env == "prod"
}
