package ai

import (
	"context"
	"errors"
)

// ErrInvalidCredential marks provider failures caused by a missing or rejected API key.
var ErrInvalidCredential = errors.New("invalid provider credential")

// Provider is the single touch point with the generative-AI backend.
// Invoke sends one request and returns the raw response text. Any failure
// rejected for credential reasons wraps ErrInvalidCredential; every other
// failure is a transport error.
type Provider interface {
	Invoke(ctx context.Context, req Request) (string, error)
}
