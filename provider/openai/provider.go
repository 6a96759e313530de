package openai

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gdoct/ai-storywriter-sub001/provider"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

var _ provider.Provider = (*Provider)(nil)

type Provider struct {
	client openai.Client
}

// New creates a provider. Retries are off by default; options are applied
// after the default so callers can turn them back on.
func New(options ...option.RequestOption) *Provider {
	options = append([]option.RequestOption{option.WithMaxRetries(0)}, options...)
	return &Provider{
		client: openai.NewClient(options...),
	}
}

func (p *Provider) buildRequest(req provider.CompletionRequest) openai.ChatCompletionNewParams {
	msgs := req.Messages()
	result := make([]openai.ChatCompletionMessageParamUnion, 0, len(msgs))
	for _, m := range msgs {
		switch m.Role {
		case provider.RoleSystem:
			result = append(result, openai.SystemMessage(m.Content))
		case provider.RoleAssistant:
			result = append(result, openai.AssistantMessage(m.Content))
		default:
			result = append(result, openai.UserMessage(m.Content))
		}
	}

	params := openai.ChatCompletionNewParams{
		Messages:    result,
		Model:       openai.ChatModel(req.Model),
		Temperature: openai.Float(req.Temperature),
	}
	if req.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(req.MaxTokens))
	}
	if rs := req.ResponseSchema; rs != nil {
		schema := openai.ResponseFormatJSONSchemaJSONSchemaParam{
			Name:   rs.Name,
			Strict: openai.Bool(true),
			Schema: rs.Schema,
		}
		if rs.Description != "" {
			schema.Description = openai.String(rs.Description)
		}
		params.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &openai.ResponseFormatJSONSchemaParam{JSONSchema: schema},
		}
	}
	return params
}

// Stream posts a streaming chat completion and returns the raw SSE body.
func (p *Provider) Stream(ctx context.Context, req provider.CompletionRequest) (io.ReadCloser, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var raw *http.Response
	err := p.client.Post(ctx, "chat/completions", p.buildRequest(req), &raw,
		option.WithJSONSet("stream", true),
		option.WithHeader("Accept", "text/event-stream"),
	)
	if err != nil {
		return nil, wrapError(err)
	}
	if raw == nil || raw.Body == nil {
		return nil, errors.New("chat completion: empty response")
	}
	if raw.StatusCode < 200 || raw.StatusCode > 299 {
		raw.Body.Close()
		return nil, &provider.StatusError{StatusCode: raw.StatusCode}
	}
	return raw.Body, nil
}

// Complete posts a non-streaming chat completion and returns the content of
// the first choice.
func (p *Provider) Complete(ctx context.Context, req provider.CompletionRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}

	completion, err := p.client.Chat.Completions.New(ctx, p.buildRequest(req))
	if err != nil {
		return "", wrapError(err)
	}
	if len(completion.Choices) == 0 {
		return "", errors.New("chat completion: no choices in response")
	}
	return completion.Choices[0].Message.Content, nil
}

func wrapError(err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return &provider.StatusError{StatusCode: apiErr.StatusCode, Err: err}
	}
	return fmt.Errorf("chat completion: %w", err)
}
