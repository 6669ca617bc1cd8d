package llm

import (
	"context"
	"encoding/json"
)

// Provider is the completion service abstraction every generator talks to.
// A Provider turns a (system prompt, user prompt) pair into JSON.
type Provider interface {
	// Generate sends a prompt to the hosted model and returns its output.
	// When the request carries a Schema, the provider asks for structured
	// output, strips any code fence the model wrapped it in, and validates
	// the result before returning it.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes what to send to the model.
type Request struct {
	// System is the system prompt. Sets the agent's role and output contract.
	System string

	// Messages is the conversation. Every BABA agent sends a single user
	// message; multi-message requests are supported for completeness.
	Messages []Message

	// Schema is the JSON Schema the response must conform to.
	// When nil, the response Content is the raw model text.
	Schema *Schema

	// MaxTokens is the maximum number of tokens in the response.
	MaxTokens int

	// Temperature controls randomness. Range: 0.0 - 1.0.
	Temperature float64
}

// Message represents a single message in the conversation.
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

// Schema defines the JSON structure expected from the model.
type Schema struct {
	// Name identifies this schema (tool/schema name for the vendor APIs and
	// cache key for the compiled validator). Kebab-case, e.g. "task-classification".
	Name string

	// Description is sent to the model to guide generation.
	Description string

	// Definition is the JSON Schema definition as a map.
	Definition map[string]any
}

// Response holds the model's output.
type Response struct {
	// Content is the generated output. With a Schema this is the validated
	// JSON object; without one it is the raw text.
	Content json.RawMessage

	// Usage reports token consumption for this request.
	Usage Usage

	// Model is the actual model that served the request.
	Model string

	// StopReason is normalized to "end", "max_tokens" or "error".
	StopReason string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// CompleteJSON is the single-shot JSON completion every agent uses: one
// system prompt, one user prompt, structured output validated against schema.
func CompleteJSON(ctx context.Context, p Provider, system, user string, temperature float64, maxTokens int, schema *Schema) (json.RawMessage, error) {
	resp, err := p.Generate(ctx, Request{
		System:      system,
		Messages:    []Message{{Role: RoleUser, Content: user}},
		Schema:      schema,
		MaxTokens:   maxTokens,
		Temperature: temperature,
	})
	if err != nil {
		return nil, err
	}
	return resp.Content, nil
}
