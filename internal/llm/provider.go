package llm

import (
	"context"
	"errors"
)

// ErrMissingAPIKey is returned when a provider that needs a credential gets none
var ErrMissingAPIKey = errors.New("API key is required")

// Provider is any text-generation backend an audit can run against
type Provider interface {
	// Generate sends one prompt and returns the raw text of the single response
	Generate(ctx context.Context, prompt string) (string, error)

	// GetName returns the provider name (for logging)
	GetName() string

	// GetModel returns the model in use
	GetModel() string
}
