package store

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"gopkg.in/yaml.v3"
)

// Provider names accepted by llm.provider / WEEKLY_PROVIDER.
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
	ProviderClaude = "claude"
	ProviderNoop   = "noop"
)

// ProviderConfig carries the credentials of one generative-AI backend.
type ProviderConfig struct {
	APIKey   string `yaml:"api_key" env:"API_KEY"`
	Model    string `yaml:"model" env:"MODEL"`
	Endpoint string `yaml:"endpoint" env:"API_ENDPOINT"`
}

// Flag is a switch read from the environment. Any non-empty value turns it
// on unless it parses as a false boolean ("0", "false", "F").
type Flag bool

func (f *Flag) UnmarshalText(text []byte) error {
	s := strings.TrimSpace(string(text))
	if s == "" {
		*f = false
		return nil
	}
	if b, err := strconv.ParseBool(s); err == nil {
		*f = Flag(b)
		return nil
	}
	*f = true
	return nil
}

// Config is built once at startup and handed to the components that need it.
type Config struct {
	Debug Flag `yaml:"debug" env:"DEBUG"`
	LLM   struct {
		Provider       string `yaml:"provider" env:"WEEKLY_PROVIDER"`
		System         string `yaml:"system" env:"WEEKLY_SYSTEM_INSTRUCTION"`
		MaxTokens      int    `yaml:"max_tokens" env:"LLM_MAX_TOKENS"`
		TimeoutSeconds int    `yaml:"timeout_seconds" env:"LLM_TIMEOUT_SECONDS"`
	} `yaml:"llm"`
	Gemini  ProviderConfig `yaml:"gemini" envPrefix:"GEMINI_"`
	OpenAI  ProviderConfig `yaml:"openai" envPrefix:"OPENAI_"`
	Claude  ProviderConfig `yaml:"claude" envPrefix:"CLAUDE_"`
	Reports struct {
		Extension string `yaml:"extension" env:"WEEKLY_REPORT_EXT"`
	} `yaml:"reports"`
	Log struct {
		Level          string `yaml:"level" env:"LOG_LEVEL"`
		Format         string `yaml:"format" env:"LOG_FORMAT"`
		Detailed       bool   `yaml:"detailed" env:"LOG_DETAILED"`
		TracingEnabled bool   `yaml:"tracing_enabled" env:"LOG_TRACING_ENABLED"`
		File           string `yaml:"file" env:"LOG_FILE"`
	} `yaml:"log"`
}

func (c *Config) Validate() error {
	switch c.LLM.Provider {
	case ProviderGemini, ProviderOpenAI, ProviderClaude, ProviderNoop:
	default:
		return fmt.Errorf("invalid llm.provider '%s': must be one of gemini, openai, claude, noop", c.LLM.Provider)
	}
	if c.Reports.Extension == "" || strings.ContainsAny(c.Reports.Extension, `./\`) {
		return fmt.Errorf("invalid reports.extension '%s': must be a bare extension such as 'md'", c.Reports.Extension)
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return fmt.Errorf("log.format must be 'text' or 'json', got '%s'", c.Log.Format)
	}
	if c.LLM.TimeoutSeconds <= 0 {
		return errors.New("llm.timeout_seconds must be positive")
	}
	return nil
}

// Provider returns the credentials for the selected provider.
func (c *Config) Provider() ProviderConfig {
	switch c.LLM.Provider {
	case ProviderOpenAI:
		return c.OpenAI
	case ProviderClaude:
		return c.Claude
	default:
		return c.Gemini
	}
}

func (c *Config) Timeout() time.Duration {
	return time.Duration(c.LLM.TimeoutSeconds) * time.Second
}

// PrefsPathFromEnv returns WEEKLY_PREFS without loading or validating the rest
// of the configuration.
func PrefsPathFromEnv() (string, error) {
	var c struct {
		PrefsPath string `env:"WEEKLY_PREFS"`
	}
	if err := env.Parse(&c); err != nil {
		return "", fmt.Errorf("reading environment: %w", err)
	}
	return c.PrefsPath, nil
}

// LoadConfig reads the optional YAML settings file at path, overlays the
// process environment and fills defaults. Precedence is env > file > defaults.
func LoadConfig(path string) (*Config, error) {
	var c Config
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(b, &c); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	}

	if err := env.Parse(&c); err != nil {
		return nil, fmt.Errorf("reading environment: %w", err)
	}

	c.applyDefaults()

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &c, nil
}

func (c *Config) applyDefaults() {
	c.LLM.Provider = strings.ToLower(strings.TrimSpace(c.LLM.Provider))
	if c.LLM.Provider == "" {
		c.LLM.Provider = ProviderGemini
	}
	if c.LLM.TimeoutSeconds == 0 {
		c.LLM.TimeoutSeconds = 120
	}
	if c.LLM.MaxTokens == 0 {
		c.LLM.MaxTokens = 1024
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-1.5-flash"
	}
	if c.OpenAI.Model == "" {
		c.OpenAI.Model = "gpt-4o-mini"
	}
	if c.Claude.Model == "" {
		c.Claude.Model = "claude-3-5-haiku-latest"
	}
	c.Reports.Extension = strings.TrimPrefix(c.Reports.Extension, ".")
	if c.Reports.Extension == "" {
		c.Reports.Extension = "md"
	}
	if c.Log.Level == "" {
		c.Log.Level = "INFO"
	}
	c.Log.Format = strings.ToLower(c.Log.Format)
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	if c.Debug {
		c.Log.Detailed = true
	}
}
