// README: Formula generation service (credential, guards, provider call, validation).
package formula

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"formulagen/internal/ai"
	"formulagen/internal/modules/credential"
)

// CredentialSource yields the provider API key for the next call.
type CredentialSource interface {
	Load(ctx context.Context) (string, error)
}

// Gate admits one outstanding generation per client.
type Gate interface {
	Acquire(ctx context.Context, uid string) (release func(), err error)
}

// UsageGuard charges one generation to a client's allowance.
type UsageGuard interface {
	UseToken(ctx context.Context, uid string) error
}

type ServiceDeps struct {
	Provider    ai.Provider
	Credentials CredentialSource
	Model       string
	Temperature float32

	// Gate and Usage are optional.
	Gate  Gate
	Usage UsageGuard
}

type Service struct {
	provider    ai.Provider
	creds       CredentialSource
	model       string
	temperature float32
	gate        Gate
	usage       UsageGuard
}

func NewService(deps ServiceDeps) *Service {
	return &Service{
		provider:    deps.Provider,
		creds:       deps.Credentials,
		model:       deps.Model,
		temperature: deps.Temperature,
		gate:        deps.Gate,
		usage:       deps.Usage,
	}
}

// Generate runs one formula generation for uid. Provider and validation
// failures come back as *GenerationError; ErrEmptyPrompt and the gate and
// usage errors are returned as-is. A unit of usage is charged only once a
// credential is available.
func (s *Service) Generate(ctx context.Context, uid, prompt string) (Result, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return Result{}, ErrEmptyPrompt
	}

	if s.gate != nil {
		release, err := s.gate.Acquire(ctx, uid)
		if err != nil {
			log.Printf("formula: gate rejected uid=%s: %v", uid, err)
			return Result{}, err
		}
		defer release()
	}

	req, err := s.prepare(ctx, prompt)
	if err != nil {
		return Result{}, s.fail(uid, err)
	}

	if s.usage != nil {
		if err := s.usage.UseToken(ctx, uid); err != nil {
			log.Printf("formula: usage rejected uid=%s: %v", uid, err)
			return Result{}, err
		}
	}

	res, err := s.invoke(ctx, req)
	if err != nil {
		return Result{}, s.fail(uid, err)
	}
	return res, nil
}

func (s *Service) fail(uid string, err error) error {
	kind, _ := KindOf(err)
	log.Printf("formula: generation failed uid=%s kind=%s: %v", uid, kind, errors.Unwrap(err))
	return err
}

// prepare loads the credential and builds the provider request.
func (s *Service) prepare(ctx context.Context, prompt string) (ai.Request, error) {
	key, err := s.creds.Load(ctx)
	if err != nil {
		if errors.Is(err, credential.ErrNotFound) {
			return ai.Request{}, newError(KindConfiguration, err)
		}
		return ai.Request{}, newError(KindTransport, fmt.Errorf("load credential: %w", err))
	}
	return NewBuilder(s.model, key).WithTemperature(s.temperature).Build(prompt), nil
}

func (s *Service) invoke(ctx context.Context, req ai.Request) (Result, error) {
	raw, err := s.provider.Invoke(ctx, req)
	if err != nil {
		if errors.Is(err, ai.ErrInvalidCredential) {
			return Result{}, newError(KindConfiguration, err)
		}
		return Result{}, newError(KindTransport, err)
	}
	return Parse(raw)
}
