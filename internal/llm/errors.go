// Package llm holds what every generative-AI adapter shares.
package llm

import (
	"errors"
	"fmt"
)

// ErrMissingAPIKey is wrapped in a ProviderError when no key is configured.
var ErrMissingAPIKey = errors.New("API key missing")

// ErrEmptyResponse is wrapped when the provider answers without a candidate.
var ErrEmptyResponse = errors.New("response has no candidates")

// ProviderError reports a failed call to a generative-AI backend: the service
// was unreachable, rejected the key or model, or returned malformed output.
type ProviderError struct {
	Provider   string
	StatusCode int
	Err        error
}

func (e *ProviderError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: http %d: %v", e.Provider, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// NewProviderError builds a ProviderError.
func NewProviderError(provider string, status int, err error) *ProviderError {
	return &ProviderError{Provider: provider, StatusCode: status, Err: err}
}

// IsProviderError reports whether err came from an adapter.
func IsProviderError(err error) bool {
	var pe *ProviderError
	return errors.As(err, &pe)
}
