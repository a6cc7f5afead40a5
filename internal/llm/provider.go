package llm

import (
	"context"
	"encoding/json"
)

// Provider is the text-generation capability the planner depends on.
// Callers describe the output they expect with a JSON Schema and get back
// JSON that has already been validated against it.
type Provider interface {
	// Generate sends one request to the model. When req.Schema is set the
	// provider asks for structured output and validates the result before
	// returning it.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes what to send to the model.
type Request struct {
	// System is the fixed instruction block for the domain.
	System string

	// Messages is the conversation. Plan generation and refinement are
	// single-turn, so this usually holds one user message.
	Messages []Message

	// Schema constrains the response. Nil means free text.
	Schema *Schema

	// MaxTokens caps the response length.
	MaxTokens int

	// Temperature controls randomness, 0.0 - 1.0. Zero leaves the
	// provider default in place.
	Temperature float64
}

// Message is a single conversation turn.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema is a named JSON Schema for structured output.
type Schema struct {
	// Name identifies the schema, kebab-case. Also used as the cache key
	// for the compiled validator, so it must be unique per definition.
	Name string

	// Description is sent to providers that accept one.
	Description string

	// Definition is the JSON Schema document.
	Definition map[string]any
}

// Response holds the model output.
type Response struct {
	// Content is the validated JSON object when a Schema was requested,
	// otherwise the raw text.
	Content json.RawMessage

	Usage Usage

	// Model is the model that actually served the request.
	Model string

	// StopReason is normalized to "end" or "max_tokens".
	StopReason string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
