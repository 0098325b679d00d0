// README: Provider request construction for formula generation.
package formula

import (
	"fmt"

	"formulagen/internal/ai"
)

const systemInstruction = "You are an expert in Microsoft Excel and Google Sheets. " +
	"Your task is to generate a formula based on a user's description. " +
	"You must return the response in a JSON format with two keys: 'formula' and 'explanation'. " +
	"The 'formula' key should contain only the formula, starting with an '=' sign. " +
	"The 'explanation' key should provide a clear, step-by-step explanation of how the formula works."

const userTemplate = "Generate a formula for the following task: %s"

const responseMIMEType = "application/json"

// outputSchema is shared by every request and must not be mutated.
var outputSchema = &ai.Schema{
	Type: ai.TypeObject,
	Properties: map[string]*ai.Schema{
		"formula": {
			Type:        ai.TypeString,
			Description: "The generated Excel or Google Sheets formula, starting with an '=' sign.",
		},
		"explanation": {
			Type:        ai.TypeString,
			Description: "A clear, step-by-step explanation of how the formula works. Use bullet points for complex formulas.",
		},
	},
	Required: []string{"formula", "explanation"},
}

// Builder composes provider requests. Model and credential are fixed at construction.
type Builder struct {
	model       string
	apiKey      string
	temperature float32
}

func NewBuilder(model, apiKey string) Builder {
	return Builder{model: model, apiKey: apiKey}
}

// WithTemperature returns a copy using the given sampling temperature.
func (b Builder) WithTemperature(t float32) Builder {
	b.temperature = t
	return b
}

// Build forwards prompt verbatim; callers check it is non-empty.
func (b Builder) Build(prompt string) ai.Request {
	return ai.Request{
		Model:             b.model,
		APIKey:            b.apiKey,
		SystemInstruction: systemInstruction,
		UserContent:       fmt.Sprintf(userTemplate, prompt),
		Schema:            outputSchema,
		ResponseMIMEType:  responseMIMEType,
		Temperature:       b.temperature,
	}
}
