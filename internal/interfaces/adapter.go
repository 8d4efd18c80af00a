package interfaces

import "context"

// Adapter isolates callers from a specific generative-AI provider.
type Adapter interface {
	// GenerateContent sends prompt to the provider and returns the single
	// generated candidate as plain text.
	GenerateContent(ctx context.Context, prompt string) (string, error)
}
