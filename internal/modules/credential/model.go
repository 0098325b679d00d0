// README: Provider credential errors and the fixed storage key.
package credential

import (
	"context"
	"errors"
)

// KeyName is the fixed name the provider credential is stored under.
const KeyName = "gemini_api_key"

var (
	// ErrNotFound is returned when no credential has been stored.
	ErrNotFound = errors.New("credential not configured")
	// ErrInvalid is returned when a blank credential is submitted.
	ErrInvalid = errors.New("credential is empty")
)

// Store persists the credential as an opaque string.
// Get returns ErrNotFound when nothing is stored.
type Store interface {
	Get(ctx context.Context) (string, error)
	Set(ctx context.Context, value string) error
}
