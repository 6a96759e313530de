package provider

import (
	"errors"
	"fmt"

	"github.com/invopop/jsonschema"
)

// Role identifies the author of a message in a conversation.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a prior turn sent along with a request.
type Message struct {
	Role    Role
	Content string
}

// CompletionRequest encapsulates everything needed for one chat completion.
// It is built fresh per call and treated as immutable by providers.
type CompletionRequest struct {
	// SystemMessage is sent first with the system role when non-empty.
	SystemMessage string

	// UserMessage is sent last with the user role when non-empty.
	UserMessage string

	// History holds prior turns, sent between the system and user messages.
	History []Message

	// Model is the endpoint model name. Required.
	Model string

	// Temperature is the sampling temperature, between 0 and 2.
	Temperature float64

	// MaxTokens caps the length of the reply. Zero leaves it to the endpoint.
	MaxTokens int

	// Stream selects the streaming transport. Providers set it themselves
	// according to the method called.
	Stream bool

	// ResponseSchema requests a JSON schema response format when set.
	ResponseSchema *StructuredOutput

	// Prevents unkeyed literals
	_ struct{}
}

// Messages returns the conversation in wire order: system, history, user.
func (r CompletionRequest) Messages() []Message {
	msgs := make([]Message, 0, len(r.History)+2)
	if r.SystemMessage != "" {
		msgs = append(msgs, Message{Role: RoleSystem, Content: r.SystemMessage})
	}
	msgs = append(msgs, r.History...)
	if r.UserMessage != "" {
		msgs = append(msgs, Message{Role: RoleUser, Content: r.UserMessage})
	}
	return msgs
}

// Validate reports every problem with the request at once.
func (r CompletionRequest) Validate() error {
	var errs []error
	if r.Model == "" {
		errs = append(errs, ErrModelRequired)
	}
	if r.Temperature < 0 || r.Temperature > 2 {
		errs = append(errs, fmt.Errorf("temperature %v out of range [0, 2]", r.Temperature))
	}
	if r.MaxTokens < 0 {
		errs = append(errs, fmt.Errorf("max tokens must not be negative, got %d", r.MaxTokens))
	}
	for i, m := range r.History {
		switch m.Role {
		case RoleSystem, RoleUser, RoleAssistant:
		default:
			errs = append(errs, fmt.Errorf("history[%d]: unknown role %q", i, m.Role))
		}
	}
	return errors.Join(errs...)
}

// WithModel returns a copy of the request using the given model.
func (r CompletionRequest) WithModel(model string) CompletionRequest {
	r.Model = model
	return r
}

// WithResponseSchema returns a copy of the request asking for the given
// structured output.
func (r CompletionRequest) WithResponseSchema(schema *StructuredOutput) CompletionRequest {
	r.ResponseSchema = schema
	return r
}

// StructuredOutput defines a schema for formatted responses.
type StructuredOutput struct {
	// Name identifies this output format
	Name string

	// Description explains the purpose and usage of this format
	Description string

	// Schema defines the JSON structure that responses should follow
	Schema *jsonschema.Schema
}

var reflector = jsonschema.Reflector{
	AllowAdditionalProperties: false,
	DoNotReference:            true,
}

// ToJSONSchema reflects the JSON schema of T.
func ToJSONSchema[T any]() *jsonschema.Schema {
	var v T
	return reflector.Reflect(v)
}

// StructuredOutputFor builds a StructuredOutput from the JSON shape of T.
func StructuredOutputFor[T any](name, description string) *StructuredOutput {
	return &StructuredOutput{
		Name:        name,
		Description: description,
		Schema:      ToJSONSchema[T](),
	}
}
