package storywriter

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gdoct/ai-storywriter-sub001/events"
	"github.com/gdoct/ai-storywriter-sub001/internal/broker"
	"github.com/gdoct/ai-storywriter-sub001/partial"
	"github.com/gdoct/ai-storywriter-sub001/pkg/slogx"
	"github.com/gdoct/ai-storywriter-sub001/provider"
	"github.com/gdoct/ai-storywriter-sub001/stream"
	"github.com/go-openapi/strfmt"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/tidwall/gjson"
)

type taskConfig[T any] struct {
	stream     bool
	onProgress ProgressFunc
	// view maps the cumulative text to the value shown as progress.
	view    func(string) string
	resolve partial.Unmarshaler[T]
}

type task[T any] struct {
	taskConfig[T]
	id       uuid.UUID
	handle   *Handle[T]
	provider provider.Provider
	req      provider.CompletionRequest
	topic    broker.Topic
	logger   *slog.Logger
}

func start[T any](ctx context.Context, g *Generator, req provider.CompletionRequest, tc taskConfig[T]) *Handle[T] {
	id := uuid.Must(uuid.NewV7())
	taskCtx, cancel := context.WithCancel(ctx)
	req.Stream = tc.stream

	t := &task[T]{
		taskConfig: tc,
		id:         id,
		handle:     newHandle[T](id, cancel),
		provider:   g.provider,
		req:        req,
		topic:      g.broker.Topic(ctx, fmt.Sprintf("%s.%s", g.topicPrefix, id)),
		logger:     g.logger.With(slogx.TaskID(id)),
	}

	// hooks outlive a cancelled task so they still observe the Cancelled event
	hookCtx := context.WithoutCancel(ctx)
	for _, hook := range g.hooks {
		if _, err := t.topic.Subscribe(hookCtx, hook); err != nil {
			t.logger.WarnContext(ctx, "failed to subscribe hook", slogx.Error(err))
		}
	}

	go t.run(taskCtx)
	return t.handle
}

func (t *task[T]) run(ctx context.Context) {
	pubCtx := context.WithoutCancel(ctx)
	defer t.handle.cancel()
	defer t.topic.Close()

	if !t.handle.start() {
		t.cancelled(pubCtx)
		return
	}

	t.publish(pubCtx, events.Delim{TaskID: t.id, Delim: events.DelimStart})
	defer t.publish(pubCtx, events.Delim{TaskID: t.id, Delim: events.DelimEnd})
	t.logger.DebugContext(ctx, "generation started", slog.String("model", t.req.Model), slog.Bool("stream", t.stream))

	text, err := t.generate(ctx)
	if err != nil {
		t.fail(pubCtx, err)
		return
	}

	value, err := t.resolve(text)
	if err != nil {
		t.fail(pubCtx, fmt.Errorf("resolve reply: %w", err))
		return
	}
	t.succeed(pubCtx, text, value)
}

func (t *task[T]) generate(ctx context.Context) (string, error) {
	if !t.stream {
		text, err := t.provider.Complete(ctx, t.req)
		if err != nil {
			return "", err
		}
		t.progress(ctx, text, text)
		return text, nil
	}

	body, err := t.provider.Stream(ctx, t.req)
	if err != nil {
		return "", err
	}
	defer body.Close()

	acc := stream.NewAccumulator()
	done, err := stream.Decode(ctx, body, func(delta string) {
		t.progress(ctx, delta, acc.Append(delta))
	})
	if err != nil {
		return "", err
	}
	if !done {
		t.logger.DebugContext(ctx, "stream ended without [DONE] marker")
	}
	return acc.MarkDone(), nil
}

func (t *task[T]) progress(ctx context.Context, delta, text string) {
	value := text
	if t.view != nil {
		value = t.view(text)
	}

	delivered := t.handle.deliver(func() {
		if t.onProgress != nil {
			t.onProgress(value)
		}
	})
	if delivered {
		t.publish(context.WithoutCancel(ctx), events.Progress{
			TaskID:    t.id,
			Delta:     delta,
			Text:      value,
			Timestamp: strfmt.DateTime(time.Now()),
		})
	}
}

func (t *task[T]) succeed(ctx context.Context, text string, value T) {
	if !t.handle.resolve(value) {
		t.cancelled(ctx)
		return
	}
	t.logger.DebugContext(ctx, "generation complete", slog.Int("text_len", len(text)))
	t.publish(ctx, events.Result{
		TaskID:    t.id,
		Text:      text,
		Output:    outputJSON(value),
		Timestamp: strfmt.DateTime(time.Now()),
	})
}

func (t *task[T]) fail(ctx context.Context, err error) {
	if !t.handle.reject(err) {
		t.cancelled(ctx)
		return
	}
	t.logger.ErrorContext(ctx, "generation failed", slogx.Error(err))
	t.publish(ctx, events.Error{
		TaskID:    t.id,
		Err:       err,
		Timestamp: strfmt.DateTime(time.Now()),
	})
}

func (t *task[T]) cancelled(ctx context.Context) {
	t.logger.DebugContext(ctx, "generation cancelled")
	t.publish(ctx, events.Cancelled{
		TaskID:    t.id,
		Timestamp: strfmt.DateTime(time.Now()),
	})
}

func (t *task[T]) publish(ctx context.Context, event events.Event) {
	if err := t.topic.Publish(ctx, event); err != nil {
		t.logger.WarnContext(ctx, "failed to publish event", slogx.Error(err))
	}
}

func outputJSON(v any) gjson.Result {
	data, err := json.Marshal(v)
	if err != nil {
		return gjson.Result{}
	}
	return gjson.ParseBytes(data)
}
