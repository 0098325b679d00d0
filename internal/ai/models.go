package ai

// SchemaType names a JSON schema type.
type SchemaType string

const (
	TypeObject  SchemaType = "object"
	TypeString  SchemaType = "string"
	TypeNumber  SchemaType = "number"
	TypeInteger SchemaType = "integer"
	TypeBoolean SchemaType = "boolean"
	TypeArray   SchemaType = "array"
)

// Schema is the subset of JSON schema the provider is asked to honour.
type Schema struct {
	Type        SchemaType
	Description string
	Properties  map[string]*Schema
	Items       *Schema
	Required    []string
}

// Request describes one provider call.
type Request struct {
	// Model is the provider model identifier (e.g. "gemini-2.5-flash").
	Model string

	// APIKey authenticates the call. It travels with the request so the
	// credential can change between calls without rebuilding the provider.
	APIKey string

	SystemInstruction string
	UserContent       string

	// Schema constrains the structured output; nil means free text.
	Schema *Schema

	// ResponseMIMEType selects the output format, "application/json" for structured output.
	ResponseMIMEType string

	// Temperature is passed through when positive.
	Temperature float32
}
