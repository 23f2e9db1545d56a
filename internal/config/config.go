package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// Config holds application configuration loaded from environment.
type Config struct {
	Server     ServerConfig
	Log        LogConfig
	Provider   string
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	Generation GenerationConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port               string
	ReadTimeout        int
	WriteTimeout       int
	CORSAllowedOrigins string // comma-separated, or "*" for all
	GinMode            string
}

// LogConfig selects the zap level ("debug", "info", "warn", "error").
type LogConfig struct {
	Level string
}

// OpenAIConfig holds Assistants API credentials.
type OpenAIConfig struct {
	APIKey      string
	AssistantID string
	BaseURL     string // optional, e.g. an Azure or proxy endpoint
}

// GeminiConfig holds Gemini credentials. Model plays the role of the assistant identifier.
type GeminiConfig struct {
	APIKey     string
	Model      string
	RunTimeout time.Duration
}

// GenerationConfig bounds a single generation.
type GenerationConfig struct {
	PollInterval        time.Duration
	MaxPollAttempts     int
	MaxCompletionTokens int
}

// Load reads configuration from environment, with optional .env file.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:               getEnv("PORT", "8080"),
			ReadTimeout:        getEnvInt("READ_TIMEOUT_SEC", 30),
			WriteTimeout:       getEnvInt("WRITE_TIMEOUT_SEC", 90),
			CORSAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
			GinMode:            getEnv("GIN_MODE", "release"),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Provider: strings.ToLower(getEnv("AI_PROVIDER", ProviderOpenAI)),
		OpenAI: OpenAIConfig{
			APIKey:      getEnv("OPENAI_API_KEY", ""),
			AssistantID: getEnv("ASSISTANT_ID", ""),
			BaseURL:     getEnv("OPENAI_BASE_URL", ""),
		},
		Gemini: GeminiConfig{
			APIKey:     getEnv("GEMINI_API_KEY", ""),
			Model:      getEnv("GEMINI_MODEL", "gemini-2.5-flash-lite"),
			RunTimeout: getEnvDuration("GEMINI_RUN_TIMEOUT", 60*time.Second),
		},
		Generation: GenerationConfig{
			PollInterval:        2 * time.Second,
			MaxPollAttempts:     30,
			MaxCompletionTokens: 350,
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the selected provider has its credentials.
func (c *Config) Validate() error {
	switch c.Provider {
	case ProviderOpenAI:
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY environment variable is required")
		}
		if c.OpenAI.AssistantID == "" {
			return fmt.Errorf("ASSISTANT_ID environment variable is required")
		}
	case ProviderGemini:
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY environment variable is required")
		}
		if c.Gemini.Model == "" {
			return fmt.Errorf("GEMINI_MODEL must not be empty")
		}
	default:
		return fmt.Errorf("unknown AI_PROVIDER %q (want %q or %q)", c.Provider, ProviderOpenAI, ProviderGemini)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
