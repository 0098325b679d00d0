package credential

import (
	"context"
	"strings"
)

// Service reads and writes the provider credential through a Store.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// Load returns the stored credential, or ErrNotFound when absent or blank.
func (s *Service) Load(ctx context.Context) (string, error) {
	v, err := s.store.Get(ctx)
	if err != nil {
		return "", err
	}
	v = strings.TrimSpace(v)
	if v == "" {
		return "", ErrNotFound
	}
	return v, nil
}

// Save stores a new credential, replacing any previous one.
func (s *Service) Save(ctx context.Context, value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return ErrInvalid
	}
	return s.store.Set(ctx, value)
}

// Configured reports whether a credential is present.
func (s *Service) Configured(ctx context.Context) (bool, error) {
	_, err := s.Load(ctx)
	switch err {
	case nil:
		return true, nil
	case ErrNotFound:
		return false, nil
	default:
		return false, err
	}
}

// Seed stores value only when nothing is configured yet. Blank values are ignored.
func (s *Service) Seed(ctx context.Context, value string) (bool, error) {
	if strings.TrimSpace(value) == "" {
		return false, nil
	}
	ok, err := s.Configured(ctx)
	if err != nil || ok {
		return false, err
	}
	return true, s.Save(ctx, value)
}
