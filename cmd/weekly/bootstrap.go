package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"

	"weekly-reports/internal/interfaces"
	"weekly-reports/internal/llm/claude"
	"weekly-reports/internal/llm/gemini"
	"weekly-reports/internal/llm/llmobs"
	"weekly-reports/internal/llm/noop"
	"weekly-reports/internal/llm/openai"
	"weekly-reports/internal/logger"
	"weekly-reports/internal/prompt"
	"weekly-reports/internal/store"
	"weekly-reports/internal/trace"
	"weekly-reports/internal/weekly"
	"weekly-reports/internal/weekly/weeklyobs"
)

// loadEnv loads .env from the working directory, or envFile when given.
// Values from an explicit file win over the inherited environment.
func loadEnv(envFile string) error {
	if envFile == "" {
		_ = godotenv.Load()
		return nil
	}
	if err := godotenv.Overload(envFile); err != nil {
		return fmt.Errorf("loading env file %s: %w", envFile, err)
	}
	return nil
}

// loadConfig loads and returns the configuration
func loadConfig(envFile, configPath string) (*store.Config, error) {
	if err := loadEnv(envFile); err != nil {
		return nil, err
	}
	return store.LoadConfig(configPath)
}

// initializeSystem initializes logger and tracer. The returned func flushes both.
func initializeSystem(ctx context.Context, cfg *store.Config) (func(), error) {
	if err := logger.Init(logger.LogConfig{
		Level:           cfg.Log.Level,
		Format:          cfg.Log.Format,
		DetailedLogging: cfg.Log.Detailed,
		File:            cfg.Log.File,
	}); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := trace.Init(cfg.Log.TracingEnabled, version); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize tracer: %v\n", err)
	}

	return func() {
		if err := trace.Shutdown(ctx); err != nil {
			logger.Warn(ctx, "Failed to flush traces", "error", err)
		}
		logger.Close()
	}, nil
}

// initializeAdapter initializes and returns the provider adapter with observability
func initializeAdapter(ctx context.Context, cfg *store.Config) interfaces.Adapter {
	var adapter interfaces.Adapter

	system := cfg.LLM.System
	if system == "" {
		system = prompt.SystemInstruction
	}
	pc := cfg.Provider()

	switch cfg.LLM.Provider {
	case store.ProviderOpenAI:
		adapter = openai.New(openai.Params{
			APIKey:            pc.APIKey,
			Model:             pc.Model,
			SystemInstruction: system,
			Endpoint:          pc.Endpoint,
			MaxTokens:         cfg.LLM.MaxTokens,
			Timeout:           cfg.Timeout(),
		})
	case store.ProviderClaude:
		adapter = claude.New(claude.Params{
			APIKey:            pc.APIKey,
			Model:             pc.Model,
			SystemInstruction: system,
			Endpoint:          pc.Endpoint,
			MaxTokens:         cfg.LLM.MaxTokens,
			Timeout:           cfg.Timeout(),
		})
	case store.ProviderNoop:
		adapter = noop.New()
		logger.Warn(ctx, "Noop provider configured - no summary will be written")
	default:
		adapter = gemini.New(gemini.Params{
			APIKey:            pc.APIKey,
			Model:             pc.Model,
			SystemInstruction: system,
			Endpoint:          pc.Endpoint,
			Timeout:           cfg.Timeout(),
		})
	}

	logger.Debug(ctx, "Adapter initialized", "provider", cfg.LLM.Provider, "model", pc.Model)

	// Wrap with observability middleware
	return llmobs.Wrap(adapter, cfg.LLM.Provider)
}

// newSummarizer builds the orchestrator for cfg with observability.
func newSummarizer(ctx context.Context, cfg *store.Config, out io.Writer) (interfaces.WeeklySummarizer, error) {
	s := weekly.NewSummarizer(
		initializeAdapter(ctx, cfg),
		weekly.WithReportExtension(cfg.Reports.Extension),
		weekly.WithDebug(bool(cfg.Debug), out),
	)
	return weeklyobs.Wrap(s), nil
}
