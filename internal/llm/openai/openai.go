package openai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"weekly-reports/internal/llm"
	"weekly-reports/internal/logger"
	"weekly-reports/internal/trace"
)

// Name is the provider key of this adapter.
const Name = "openai"

// Params configures an Adapter. It is fixed after construction.
type Params struct {
	APIKey            string
	Model             string
	SystemInstruction string
	// Endpoint overrides the API base URL (proxies, Azure-compatible gateways).
	Endpoint  string
	MaxTokens int
	Timeout   time.Duration
}

// Adapter calls the chat completions API through the official SDK.
type Adapter struct {
	params Params
	client openai.Client
}

func New(p Params) *Adapter {
	if p.Timeout <= 0 {
		p.Timeout = 120 * time.Second
	}
	opts := []option.RequestOption{
		option.WithAPIKey(p.APIKey),
		option.WithMaxRetries(0),
		option.WithRequestTimeout(p.Timeout),
	}
	if p.Endpoint != "" {
		opts = append(opts, option.WithBaseURL(strings.TrimRight(p.Endpoint, "/")+"/"))
	}
	return &Adapter{params: p, client: openai.NewClient(opts...)}
}

// GenerateContent sends the system instruction and prompt and returns the
// content of the single requested choice.
func (a *Adapter) GenerateContent(ctx context.Context, prompt string) (string, error) {
	ctx, span := trace.StartSpan(ctx, "openai-api-call")
	defer span.End()

	if a.params.APIKey == "" {
		return "", llm.NewProviderError(Name, 0, fmt.Errorf("OPENAI_API_KEY: %w", llm.ErrMissingAPIKey))
	}

	var messages []openai.ChatCompletionMessageParamUnion
	if a.params.SystemInstruction != "" {
		messages = append(messages, openai.SystemMessage(a.params.SystemInstruction))
	}
	messages = append(messages, openai.UserMessage(prompt))

	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(a.params.Model),
		Messages: messages,
		N:        openai.Int(1),
	}
	if a.params.MaxTokens > 0 {
		params.MaxCompletionTokens = openai.Int(int64(a.params.MaxTokens))
	}

	logger.Debug(ctx, "Sending request to OpenAI", "model", a.params.Model, "prompt_bytes", len(prompt))
	start := time.Now()
	completion, err := a.client.Chat.Completions.New(ctx, params)
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			return "", llm.NewProviderError(Name, apiErr.StatusCode, err)
		}
		return "", llm.NewProviderError(Name, 0, err)
	}
	logger.Debug(ctx, "Received response from OpenAI",
		"latency_ms", time.Since(start).Milliseconds(),
		"choices", len(completion.Choices),
	)

	if len(completion.Choices) == 0 {
		return "", llm.NewProviderError(Name, 0, llm.ErrEmptyResponse)
	}
	return completion.Choices[0].Message.Content, nil
}
