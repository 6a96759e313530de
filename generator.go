package storywriter

import (
	"context"
	"log/slog"

	"github.com/fogfish/opts"
	"github.com/gdoct/ai-storywriter-sub001/events"
	"github.com/gdoct/ai-storywriter-sub001/internal/broker"
	"github.com/gdoct/ai-storywriter-sub001/partial"
	"github.com/gdoct/ai-storywriter-sub001/pkg/slogx"
	"github.com/gdoct/ai-storywriter-sub001/provider"
)

// DefaultTopicPrefix prefixes the broker topic of every task; the task ID
// completes the name.
const DefaultTopicPrefix = "storywriter.tasks"

// Generator starts generation tasks against a single provider.
// It is safe for concurrent use; tasks share no mutable state.
type Generator struct {
	provider    provider.Provider
	broker      broker.Broker
	hooks       []events.Hook
	logger      *slog.Logger
	topicPrefix string
}

var (
	// TopicPrefix overrides DefaultTopicPrefix.
	TopicPrefix = opts.ForName[Generator, string]("topicPrefix")
)

// WithBroker publishes task events through b instead of an in-process broker.
func WithBroker(b broker.Broker) opts.Option[Generator] {
	return opts.Type[Generator](func(g *Generator) error {
		g.broker = b
		return nil
	})
}

// WithHooks subscribes the hooks to the events of every task.
func WithHooks(hook events.Hook, extraHooks ...events.Hook) opts.Option[Generator] {
	return opts.Type[Generator](func(g *Generator) error {
		g.hooks = append(g.hooks, hook)
		g.hooks = append(g.hooks, extraHooks...)
		return nil
	})
}

func WithLogger(logger *slog.Logger) opts.Option[Generator] {
	return opts.Type[Generator](func(g *Generator) error {
		g.logger = logger
		return nil
	})
}

func New(p provider.Provider, options ...opts.Option[Generator]) *Generator {
	g := &Generator{
		provider:    p,
		broker:      broker.Local(),
		logger:      slog.Default().With(slogx.LoggerName("storywriter")),
		topicPrefix: DefaultTopicPrefix,
	}
	if err := opts.Apply(g, options); err != nil {
		panic(err)
	}
	return g
}

// GenerateText streams a plain-text reply. onProgress receives the cumulative
// text after every increment; the task resolves with the full text.
func (g *Generator) GenerateText(ctx context.Context, req provider.CompletionRequest, onProgress ProgressFunc) *Handle[string] {
	return start(ctx, g, req, taskConfig[string]{
		stream:     true,
		onProgress: onProgress,
		resolve:    partial.DefaultUnmarshal[string](),
	})
}

// GenerateStructured streams a JSON reply shaped like StructuredAnswer.
// onProgress receives the answer extracted from the incomplete document; the
// task resolves with the parsed answer and follow-up questions. A reply that
// cannot be parsed resolves with empty fields rather than failing.
func (g *Generator) GenerateStructured(ctx context.Context, req provider.CompletionRequest, onProgress ProgressFunc) *Handle[partial.StructuredAnswer] {
	return start(ctx, g, req, taskConfig[partial.StructuredAnswer]{
		stream:     true,
		onProgress: onProgress,
		view:       partial.Answer,
		resolve: func(text string) (partial.StructuredAnswer, error) {
			return partial.Parse(text), nil
		},
	})
}

// Complete issues a non-streaming request. The task resolves with the
// message content of the first choice.
func (g *Generator) Complete(ctx context.Context, req provider.CompletionRequest) *Handle[string] {
	return start(ctx, g, req, taskConfig[string]{
		resolve: partial.DefaultUnmarshal[string](),
	})
}

// GenerateObject streams a JSON reply and decodes it into T once complete.
// onProgress receives the cumulative raw text. Pair it with
// provider.StructuredOutputFor[T] to ask the endpoint for the matching schema.
func GenerateObject[T any](ctx context.Context, g *Generator, req provider.CompletionRequest, onProgress ProgressFunc) *Handle[T] {
	return start(ctx, g, req, taskConfig[T]{
		stream:     true,
		onProgress: onProgress,
		resolve:    partial.DefaultUnmarshal[T](),
	})
}

// StructuredAnswerOutput is the response format describing StructuredAnswer.
func StructuredAnswerOutput() *provider.StructuredOutput {
	return provider.StructuredOutputFor[partial.StructuredAnswer](
		"structured_answer",
		"An answer followed by suggested follow-up questions",
	)
}
