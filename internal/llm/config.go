package llm

import (
	"fmt"
	"os"
	"strings"
)

type Provider string

const (
	ProviderOpenAI Provider = "openai"
	ProviderGemini Provider = "gemini"
	ProviderOllama Provider = "ollama"
	ProviderNone   Provider = "none"
)

const (
	DefaultOpenAIBaseURL = "https://api.groq.com/openai/v1"
	DefaultOpenAIModel   = "llama-3.1-8b-instant"
	DefaultGeminiModel   = "gemini-2.0-flash"
	DefaultOllamaBaseURL = "http://localhost:11434"
	DefaultOllamaModel   = "llama3.1"
)

type Config struct {
	Provider Provider
	APIKey   string
	Model    string
	BaseURL  string
}

// Configured reports whether the config describes a usable client.
func (c *Config) Configured() bool {
	switch c.Provider {
	case ProviderOllama:
		return c.BaseURL != ""
	case ProviderOpenAI, ProviderGemini:
		return c.APIKey != ""
	default:
		return false
	}
}

// LoadConfigFromEnv reads LLM_* variables. GROQ_API_KEY and GEMINI_API_KEY
// are accepted as fallbacks for LLM_API_KEY.
func LoadConfigFromEnv() (*Config, error) {
	provider := Provider(strings.ToLower(strings.TrimSpace(os.Getenv("LLM_PROVIDER"))))
	if provider == "" {
		provider = ProviderOpenAI
	}

	cfg := &Config{
		Provider: provider,
		APIKey:   os.Getenv("LLM_API_KEY"),
		Model:    os.Getenv("LLM_MODEL"),
		BaseURL:  os.Getenv("LLM_BASE_URL"),
	}

	switch provider {
	case ProviderOpenAI:
		if cfg.APIKey == "" {
			cfg.APIKey = os.Getenv("GROQ_API_KEY")
		}
		if cfg.BaseURL == "" {
			cfg.BaseURL = DefaultOpenAIBaseURL
		}
		if cfg.Model == "" {
			cfg.Model = DefaultOpenAIModel
		}
	case ProviderGemini:
		if cfg.APIKey == "" {
			cfg.APIKey = os.Getenv("GEMINI_API_KEY")
		}
		if cfg.Model == "" {
			cfg.Model = DefaultGeminiModel
		}
	case ProviderOllama:
		if cfg.BaseURL == "" {
			cfg.BaseURL = DefaultOllamaBaseURL
		}
		if cfg.Model == "" {
			cfg.Model = DefaultOllamaModel
		}
	case ProviderNone:
	default:
		return nil, fmt.Errorf("invalid LLM_PROVIDER value: %s, expected one of %v",
			provider, []Provider{ProviderOpenAI, ProviderGemini, ProviderOllama, ProviderNone})
	}

	return cfg, nil
}
