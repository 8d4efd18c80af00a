package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"google.golang.org/genai"

	"weekly-reports/internal/llm"
	"weekly-reports/internal/logger"
	"weekly-reports/internal/trace"
)

// Name is the provider key of this adapter.
const Name = "gemini"

// APIVersion is the Generative Language API version requests are sent to.
const APIVersion = "v1beta"

// Params configures an Adapter. It is fixed after construction.
type Params struct {
	APIKey            string
	Model             string
	SystemInstruction string
	// Endpoint overrides the SDK base URL (proxies, test servers).
	Endpoint string
	Timeout  time.Duration
}

// Adapter calls Gemini through the official genai SDK.
type Adapter struct {
	params Params
	client *http.Client
}

func New(p Params) *Adapter {
	p.Endpoint = strings.TrimRight(p.Endpoint, "/")
	if p.Timeout <= 0 {
		p.Timeout = 120 * time.Second
	}
	return &Adapter{params: p, client: &http.Client{Timeout: p.Timeout}}
}

func (a *Adapter) newClient(ctx context.Context) (*genai.Client, error) {
	cc := &genai.ClientConfig{
		APIKey:     a.params.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: a.client,
		HTTPOptions: genai.HTTPOptions{
			APIVersion: APIVersion,
		},
	}
	if a.params.Endpoint != "" {
		cc.HTTPOptions.BaseURL = a.params.Endpoint + "/"
	}
	return genai.NewClient(ctx, cc)
}

// GenerateContent sends prompt as a single user turn and returns the text of
// the only candidate requested. A candidate without text, or one stopped for
// any reason other than STOP or MAX_TOKENS, is an error.
func (a *Adapter) GenerateContent(ctx context.Context, prompt string) (string, error) {
	ctx, span := trace.StartSpan(ctx, "gemini-api-call")
	defer span.End()

	if a.params.APIKey == "" {
		return "", llm.NewProviderError(Name, 0, fmt.Errorf("GEMINI_API_KEY: %w", llm.ErrMissingAPIKey))
	}

	client, err := a.newClient(ctx)
	if err != nil {
		return "", llm.NewProviderError(Name, 0, err)
	}

	config := &genai.GenerateContentConfig{CandidateCount: 1}
	if a.params.SystemInstruction != "" {
		config.SystemInstruction = &genai.Content{Parts: []*genai.Part{{Text: a.params.SystemInstruction}}}
	}

	logger.Debug(ctx, "Sending request to Gemini", "model", a.params.Model, "prompt_bytes", len(prompt))
	start := time.Now()
	resp, err := client.Models.GenerateContent(ctx, a.params.Model, genai.Text(prompt), config)
	if err != nil {
		return "", llm.NewProviderError(Name, statusCode(err), err)
	}
	logger.Debug(ctx, "Received response from Gemini",
		"latency_ms", time.Since(start).Milliseconds(),
		"candidates", len(resp.Candidates),
	)

	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		return "", llm.NewProviderError(Name, http.StatusOK, fmt.Errorf("prompt blocked: %s", resp.PromptFeedback.BlockReason))
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return "", llm.NewProviderError(Name, http.StatusOK, llm.ErrEmptyResponse)
	}

	candidate := resp.Candidates[0]
	switch candidate.FinishReason {
	case "", genai.FinishReasonStop, genai.FinishReasonMaxTokens:
	default:
		return "", llm.NewProviderError(Name, http.StatusOK,
			fmt.Errorf("%w: finish reason %s", llm.ErrEmptyResponse, candidate.FinishReason))
	}

	var sb strings.Builder
	if candidate.Content != nil {
		for _, p := range candidate.Content.Parts {
			if p != nil {
				sb.WriteString(p.Text)
			}
		}
	}
	if sb.Len() == 0 {
		return "", llm.NewProviderError(Name, http.StatusOK,
			fmt.Errorf("%w: candidate has no text (finish reason %q)", llm.ErrEmptyResponse, candidate.FinishReason))
	}
	return sb.String(), nil
}

// statusCode extracts the HTTP status of an SDK API error, 0 otherwise.
func statusCode(err error) int {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) {
		return apiErrPtr.Code
	}
	return 0
}
