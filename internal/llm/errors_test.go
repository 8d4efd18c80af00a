package llm

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProviderErrorMessage(t *testing.T) {
	err := NewProviderError("gemini", 403, errors.New("API key not valid"))
	assert.Equal(t, "gemini: http 403: API key not valid", err.Error())

	err = NewProviderError("claude", 0, ErrMissingAPIKey)
	assert.Equal(t, "claude: API key missing", err.Error())
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestIsProviderErrorThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("generating summary: %w", NewProviderError("openai", 500, ErrEmptyResponse))
	assert.True(t, IsProviderError(wrapped))
	assert.False(t, IsProviderError(errors.New("plain")))
}
