package events

import (
	"context"
	"log/slog"
	"slices"

	"github.com/gdoct/ai-storywriter-sub001/pkg/slogx"
)

// Hook observes the events of generation tasks.
//
// There is no no-op base implementation; adding an event kind breaks
// implementations at compile time. Delim events are not forwarded to hooks.
type Hook interface {
	OnProgress(context.Context, Progress)

	OnResult(context.Context, Result)

	OnError(context.Context, Error)

	OnCancelled(context.Context, Cancelled)
}

// Dispatch calls the hook method matching event.
func Dispatch(ctx context.Context, hook Hook, event Event) {
	switch e := event.(type) {
	case Progress:
		hook.OnProgress(ctx, e)
	case Result:
		hook.OnResult(ctx, e)
	case Error:
		hook.OnError(ctx, e)
	case Cancelled:
		hook.OnCancelled(ctx, e)
	case Delim:
		// boundaries only
	default:
		slog.WarnContext(ctx, "unknown event type", slog.Any("event", event))
	}
}

// LoggingHook logs every event through the default slog logger. Progress is
// logged at debug level since it fires once per increment.
func LoggingHook() Hook {
	return loggingHook{}
}

type loggingHook struct{}

func (loggingHook) OnProgress(ctx context.Context, p Progress) {
	slog.DebugContext(ctx, "generation progress",
		slogx.TaskID(p.TaskID),
		slog.Int("delta_len", len(p.Delta)),
		slog.Int("text_len", len(p.Text)),
	)
}

func (loggingHook) OnResult(ctx context.Context, r Result) {
	slog.InfoContext(ctx, "generation complete",
		slogx.TaskID(r.TaskID),
		slog.Int("text_len", len(r.Text)),
	)
}

func (loggingHook) OnError(ctx context.Context, e Error) {
	slog.ErrorContext(ctx, "generation failed", slogx.TaskID(e.TaskID), slogx.Error(e))
}

func (loggingHook) OnCancelled(ctx context.Context, c Cancelled) {
	slog.InfoContext(ctx, "generation cancelled", slogx.TaskID(c.TaskID))
}

func NewCompositeHook(hooks ...Hook) Hook {
	return CompositeHook(hooks)
}

// CompositeHook fans every event out to each of its hooks in order.
type CompositeHook []Hook

func (c CompositeHook) OnProgress(ctx context.Context, p Progress) {
	for h := range slices.Values(c) {
		h.OnProgress(ctx, p)
	}
}

func (c CompositeHook) OnResult(ctx context.Context, r Result) {
	for h := range slices.Values(c) {
		h.OnResult(ctx, r)
	}
}

func (c CompositeHook) OnError(ctx context.Context, e Error) {
	for h := range slices.Values(c) {
		h.OnError(ctx, e)
	}
}

func (c CompositeHook) OnCancelled(ctx context.Context, cancelled Cancelled) {
	for h := range slices.Values(c) {
		h.OnCancelled(ctx, cancelled)
	}
}
