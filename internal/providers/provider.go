// internal/providers/provider.go

// Package providers defines the boundary to generative language model services.
// Implementations send a single prompt and return the raw text of the reply,
// optionally constrained by a JSON schema.
package providers

import (
	"context"
	"errors"
)

// ErrEmptyResponse is returned when a provider answers without any text.
var ErrEmptyResponse = errors.New("empty model response")

// CompletionRequest is one prompt sent to a model.
type CompletionRequest struct {
	Model  string
	Prompt string
	// Schema is a JSON schema document the reply must satisfy. When nil the
	// provider returns free-form text.
	Schema map[string]any
}

// Completer is implemented by every model backend.
type Completer interface {
	// Name identifies the backend in logs.
	Name() string
	// Complete sends req and returns the text of the first candidate.
	Complete(ctx context.Context, req CompletionRequest) (string, error)
	// Close releases any resources held by the backend.
	Close() error
}
