package claude

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"weekly-reports/internal/llm"
	"weekly-reports/internal/logger"
	"weekly-reports/internal/trace"
)

// Name is the provider key of this adapter.
const Name = "claude"

// DefaultEndpoint is the public Anthropic messages endpoint. Proxies, Bedrock
// or Vertex gateways are configured through CLAUDE_API_ENDPOINT.
const DefaultEndpoint = "https://api.anthropic.com/v1/messages"

const apiVersion = "2023-06-01"

// Params configures an Adapter. It is fixed after construction.
type Params struct {
	APIKey            string
	Model             string
	SystemInstruction string
	Endpoint          string
	MaxTokens         int
	Timeout           time.Duration
}

// Adapter implements interfaces.Adapter using the Anthropic Messages API
type Adapter struct {
	params Params
	client *http.Client
}

// New creates a new Claude-based adapter
func New(p Params) *Adapter {
	if p.Endpoint == "" {
		p.Endpoint = DefaultEndpoint
	}
	if p.MaxTokens <= 0 {
		p.MaxTokens = 1024
	}
	if p.Timeout <= 0 {
		p.Timeout = 120 * time.Second
	}
	return &Adapter{params: p, client: &http.Client{Timeout: p.Timeout}}
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messagesRequest struct {
	Model     string    `json:"model"`
	System    string    `json:"system,omitempty"`
	MaxTokens int       `json:"max_tokens"`
	Messages  []message `json:"messages"`
}

type messagesResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	StopReason string `json:"stop_reason"`
}

// GenerateContent sends prompt as the single user message.
func (a *Adapter) GenerateContent(ctx context.Context, prompt string) (string, error) {
	ctx, span := trace.StartSpan(ctx, "claude-api-call")
	defer span.End()

	if a.params.APIKey == "" {
		return "", llm.NewProviderError(Name, 0, fmt.Errorf("CLAUDE_API_KEY: %w", llm.ErrMissingAPIKey))
	}

	bb, err := json.Marshal(messagesRequest{
		Model:     a.params.Model,
		System:    a.params.SystemInstruction,
		MaxTokens: a.params.MaxTokens,
		Messages:  []message{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", llm.NewProviderError(Name, 0, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.params.Endpoint, bytes.NewReader(bb))
	if err != nil {
		return "", llm.NewProviderError(Name, 0, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", a.params.APIKey)
	req.Header.Set("anthropic-version", apiVersion)

	logger.Debug(ctx, "Sending request to Claude", "model", a.params.Model, "endpoint", a.params.Endpoint)
	start := time.Now()
	resp, err := a.client.Do(req)
	if err != nil {
		return "", llm.NewProviderError(Name, 0, err)
	}
	defer resp.Body.Close()

	logger.Debug(ctx, "Received response from Claude",
		"status_code", resp.StatusCode,
		"latency_ms", time.Since(start).Milliseconds(),
	)

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", llm.NewProviderError(Name, resp.StatusCode, errors.New(strings.TrimSpace(string(body))))
	}

	var mr messagesResponse
	if err := json.NewDecoder(resp.Body).Decode(&mr); err != nil {
		return "", llm.NewProviderError(Name, resp.StatusCode, fmt.Errorf("decoding response: %w", err))
	}

	if mr.StopReason == "refusal" {
		return "", llm.NewProviderError(Name, resp.StatusCode,
			fmt.Errorf("%w: stop reason %s", llm.ErrEmptyResponse, mr.StopReason))
	}

	var sb strings.Builder
	for _, c := range mr.Content {
		if c.Type == "" || c.Type == "text" {
			sb.WriteString(c.Text)
		}
	}
	if sb.Len() == 0 {
		return "", llm.NewProviderError(Name, resp.StatusCode,
			fmt.Errorf("%w: no text block (stop reason %q)", llm.ErrEmptyResponse, mr.StopReason))
	}
	return sb.String(), nil
}
