package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weekly-reports/internal/llm"
)

// wireRequest is the generateContent body as it reaches the server.
type wireRequest struct {
	SystemInstruction *struct {
		Parts []struct {
			Text string `json:"text"`
		} `json:"parts"`
	} `json:"systemInstruction"`
	Contents []struct {
		Role  string `json:"role"`
		Parts []struct {
			Text string `json:"text"`
		} `json:"parts"`
	} `json:"contents"`
	GenerationConfig struct {
		CandidateCount int `json:"candidateCount"`
	} `json:"generationConfig"`
}

func newTestAdapter(t *testing.T, handler http.HandlerFunc) *Adapter {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(Params{
		APIKey:            "test_key",
		Model:             "test-model",
		SystemInstruction: "Test instruction",
		Endpoint:          srv.URL,
	})
}

func TestGenerateContent(t *testing.T) {
	var got wireRequest
	a := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.True(t, strings.HasSuffix(r.URL.Path, "/v1beta/models/test-model:generateContent"), r.URL.Path)
		assert.Equal(t, "test_key", r.Header.Get("x-goog-api-key"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"Test "},{"text":"response"}]},"finishReason":"STOP"}]}`))
	})

	out, err := a.GenerateContent(context.Background(), "Test message")
	require.NoError(t, err)
	assert.Equal(t, "Test response", out)

	require.NotNil(t, got.SystemInstruction)
	assert.Equal(t, "Test instruction", got.SystemInstruction.Parts[0].Text)
	require.Len(t, got.Contents, 1)
	assert.Equal(t, "user", got.Contents[0].Role)
	assert.Equal(t, "Test message", got.Contents[0].Parts[0].Text)
	assert.Equal(t, 1, got.GenerationConfig.CandidateCount)
}

func TestGenerateContentRejectedKey(t *testing.T) {
	a := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"code":400,"message":"API key not valid.","status":"INVALID_ARGUMENT"}}`))
	})

	_, err := a.GenerateContent(context.Background(), "hi")
	var pe *llm.ProviderError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, Name, pe.Provider)
	assert.Equal(t, http.StatusBadRequest, pe.StatusCode)
	assert.Contains(t, pe.Error(), "API key not valid.")
}

func TestGenerateContentMalformed(t *testing.T) {
	a := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>not json</html>`))
	})

	_, err := a.GenerateContent(context.Background(), "hi")
	assert.True(t, llm.IsProviderError(err))
}

func TestGenerateContentNoCandidates(t *testing.T) {
	a := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	})

	_, err := a.GenerateContent(context.Background(), "hi")
	assert.ErrorIs(t, err, llm.ErrEmptyResponse)
}

func TestGenerateContentBlocked(t *testing.T) {
	a := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"promptFeedback":{"blockReason":"SAFETY"}}`))
	})

	_, err := a.GenerateContent(context.Background(), "hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SAFETY")
}

func TestGenerateContentCandidateWithoutText(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"safety", `{"candidates":[{"finishReason":"SAFETY","content":{"role":"model"}}]}`, "SAFETY"},
		{"recitation with text", `{"candidates":[{"finishReason":"RECITATION","content":{"role":"model","parts":[{"text":"partial"}]}}]}`, "RECITATION"},
		{"stop without parts", `{"candidates":[{"finishReason":"STOP","content":{"role":"model","parts":[]}}]}`, "no text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(tt.body))
			})

			out, err := a.GenerateContent(context.Background(), "hi")
			assert.Empty(t, out)
			require.Error(t, err)
			assert.True(t, llm.IsProviderError(err))
			assert.ErrorIs(t, err, llm.ErrEmptyResponse)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestGenerateContentMaxTokensKeepsText(t *testing.T) {
	a := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"finishReason":"MAX_TOKENS","content":{"role":"model","parts":[{"text":"- cortado"}]}}]}`))
	})

	out, err := a.GenerateContent(context.Background(), "hi")
	require.NoError(t, err)
	assert.Equal(t, "- cortado", out)
}

func TestGenerateContentMissingKey(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true }))
	defer srv.Close()

	a := New(Params{Model: "m", Endpoint: srv.URL})
	_, err := a.GenerateContent(context.Background(), "hi")
	assert.ErrorIs(t, err, llm.ErrMissingAPIKey)
	assert.False(t, called)
}

func TestGenerateContentUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	a := New(Params{APIKey: "k", Model: "m", Endpoint: url})
	_, err := a.GenerateContent(context.Background(), "hi")
	assert.True(t, llm.IsProviderError(err))
}
