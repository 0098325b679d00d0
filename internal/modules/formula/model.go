// README: Formula result, explanation lines, and the generation error taxonomy.
package formula

import (
	"errors"
	"strings"
)

// Result is a validated provider answer. Both fields are always present.
type Result struct {
	Formula     string `json:"formula"`
	Explanation string `json:"explanation"`
}

// Line is one line of an explanation. Bullet is set for "- " lines.
type Line struct {
	Text   string `json:"text"`
	Bullet bool   `json:"bullet"`
}

// Lines splits the explanation into display lines.
func (r Result) Lines() []Line {
	raw := strings.Split(strings.ReplaceAll(r.Explanation, "\r\n", "\n"), "\n")
	out := make([]Line, 0, len(raw))
	for _, l := range raw {
		out = append(out, Line{Text: l, Bullet: strings.HasPrefix(strings.TrimSpace(l), "- ")})
	}
	return out
}

// ExamplePrompts are starter tasks offered next to the prompt field.
var ExamplePrompts = []string{
	"Sum values in column A if column B is 'Sales'",
	"Find the average of cells A1 to A10, but only include numbers greater than 50",
	"Combine text from cell A2 and B2 with a space in between",
	"If cell C5 is greater than 100, show 'High', otherwise show 'Low'",
}

// ErrEmptyPrompt is returned when the prompt is blank after trimming.
var ErrEmptyPrompt = errors.New("prompt is empty")

// Kind categorises a failed generation.
type Kind string

const (
	KindConfiguration  Kind = "configuration"
	KindEmptyResponse  Kind = "empty_response"
	KindMalformedJSON  Kind = "malformed_json"
	KindSchemaMismatch Kind = "schema_mismatch"
	KindTransport      Kind = "transport"
)

var kindMessages = map[Kind]string{
	KindConfiguration:  "The Gemini API key is missing or invalid. Please enter a valid API key.",
	KindEmptyResponse:  "Received an empty response from the AI. Please try again.",
	KindMalformedJSON:  "Failed to parse the response from the AI. Please try again.",
	KindSchemaMismatch: "The AI returned an invalid response structure. Please try again.",
	KindTransport:      "An error occurred while communicating with the AI. Please check your connection and try again.",
}

// Message is the user-facing text for the kind.
func (k Kind) Message() string {
	if m, ok := kindMessages[k]; ok {
		return m
	}
	return kindMessages[KindTransport]
}

// GenerationError is the single error type surfaced by a failed generation.
// Error returns the user-facing message; Err keeps the cause for logs.
type GenerationError struct {
	Kind Kind
	Err  error
}

func (e *GenerationError) Error() string {
	return e.Kind.Message()
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

func newError(kind Kind, cause error) *GenerationError {
	return &GenerationError{Kind: kind, Err: cause}
}

// KindOf reports the kind of a generation error anywhere in err's chain.
func KindOf(err error) (Kind, bool) {
	var ge *GenerationError
	if errors.As(err, &ge) {
		return ge.Kind, true
	}
	return "", false
}
