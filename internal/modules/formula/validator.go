// README: Validation of raw provider text into a Result.
package formula

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Parse turns raw provider text into a Result. The first failing check wins:
// blank text, JSON syntax, then shape (an object whose "formula" and
// "explanation" are both strings). Extra fields are dropped.
func Parse(raw string) (Result, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return Result{}, newError(KindEmptyResponse, errors.New("blank response text"))
	}

	var payload any
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		return Result{}, newError(KindMalformedJSON, fmt.Errorf("decode response: %w", err))
	}

	obj, ok := payload.(map[string]any)
	if !ok {
		return Result{}, newError(KindSchemaMismatch, fmt.Errorf("response is %T, want object", payload))
	}
	f, ok := obj["formula"].(string)
	if !ok {
		return Result{}, newError(KindSchemaMismatch, errors.New(`"formula" missing or not a string`))
	}
	e, ok := obj["explanation"].(string)
	if !ok {
		return Result{}, newError(KindSchemaMismatch, errors.New(`"explanation" missing or not a string`))
	}
	return Result{Formula: f, Explanation: e}, nil
}
