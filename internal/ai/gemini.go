package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/googleapis/gax-go/v2/apierror"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// reasonAPIKeyInvalid is the error reason Google APIs report for a bad key.
const reasonAPIKeyInvalid = "API_KEY_INVALID"

// GeminiProvider implements Provider using Google's Gemini models.
// A client is created per call because the API key is carried by the request.
type GeminiProvider struct {
	opts []option.ClientOption
}

// NewGeminiProvider returns a provider. Extra client options (endpoint, HTTP
// client) are appended after the per-request API key.
func NewGeminiProvider(opts ...option.ClientOption) *GeminiProvider {
	return &GeminiProvider{opts: opts}
}

// Invoke sends req to Gemini and returns the concatenated text of the first candidate.
func (p *GeminiProvider) Invoke(ctx context.Context, req Request) (string, error) {
	if strings.TrimSpace(req.APIKey) == "" {
		return "", fmt.Errorf("gemini: missing api key: %w", ErrInvalidCredential)
	}

	opts := append([]option.ClientOption{option.WithAPIKey(req.APIKey)}, p.opts...)
	client, err := genai.NewClient(ctx, opts...)
	if err != nil {
		return "", fmt.Errorf("gemini: create client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(req.Model)
	if req.SystemInstruction != "" {
		model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(req.SystemInstruction)}}
	}
	model.ResponseMIMEType = req.ResponseMIMEType
	model.ResponseSchema = toGenaiSchema(req.Schema)
	if req.Temperature > 0 {
		model.SetTemperature(req.Temperature)
	}

	resp, err := model.GenerateContent(ctx, genai.Text(req.UserContent))
	if err != nil {
		return "", classifyError(err)
	}
	return responseText(resp), nil
}

// responseText joins the text parts of the first candidate. A response
// without candidates yields "" and is judged by the caller.
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			b.WriteString(string(txt))
		}
	}
	return b.String()
}

// classifyError decides at the point of failure whether the provider
// rejected the credential.
func classifyError(err error) error {
	if isCredentialRejection(err) {
		return fmt.Errorf("gemini: credential rejected: %w: %w", ErrInvalidCredential, err)
	}
	return fmt.Errorf("gemini: generate content: %w", err)
}

func isCredentialRejection(err error) bool {
	var apiErr *apierror.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Reason() == reasonAPIKeyInvalid {
			return true
		}
		if code := apiErr.HTTPCode(); code == http.StatusUnauthorized || code == http.StatusForbidden {
			return true
		}
	}
	var gErr *googleapi.Error
	if errors.As(err, &gErr) {
		if gErr.Code == http.StatusUnauthorized || gErr.Code == http.StatusForbidden {
			return true
		}
		for _, item := range gErr.Errors {
			if item.Reason == reasonAPIKeyInvalid {
				return true
			}
		}
	}
	return false
}

func toGenaiSchema(s *Schema) *genai.Schema {
	if s == nil {
		return nil
	}
	out := &genai.Schema{
		Type:        toGenaiType(s.Type),
		Description: s.Description,
		Items:       toGenaiSchema(s.Items),
	}
	if len(s.Required) > 0 {
		out.Required = append([]string(nil), s.Required...)
	}
	if len(s.Properties) > 0 {
		out.Properties = make(map[string]*genai.Schema, len(s.Properties))
		for name, prop := range s.Properties {
			out.Properties[name] = toGenaiSchema(prop)
		}
	}
	return out
}

func toGenaiType(t SchemaType) genai.Type {
	switch t {
	case TypeObject:
		return genai.TypeObject
	case TypeString:
		return genai.TypeString
	case TypeNumber:
		return genai.TypeNumber
	case TypeInteger:
		return genai.TypeInteger
	case TypeBoolean:
		return genai.TypeBoolean
	case TypeArray:
		return genai.TypeArray
	default:
		return genai.TypeUnspecified
	}
}
