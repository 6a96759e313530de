package events

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type mockHook struct {
	progress  []Progress
	results   []Result
	errs      []Error
	cancelled []Cancelled
}

func (m *mockHook) OnProgress(_ context.Context, p Progress) { m.progress = append(m.progress, p) }
func (m *mockHook) OnResult(_ context.Context, r Result) { m.results = append(m.results, r) }
func (m *mockHook) OnError(_ context.Context, e Error) { m.errs = append(m.errs, e) }
func (m *mockHook) OnCancelled(_ context.Context, c Cancelled) { m.cancelled = append(m.cancelled, c) }

func TestDispatch(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()
	hook := &mockHook{}

	Dispatch(ctx, hook, Delim{TaskID: id, Delim: DelimStart})
	Dispatch(ctx, hook, Progress{TaskID: id, Text: "a"})
	Dispatch(ctx, hook, Result{TaskID: id, Text: "a"})
	Dispatch(ctx, hook, Error{TaskID: id, Err: errors.New("x")})
	Dispatch(ctx, hook, Cancelled{TaskID: id})

	assert.Len(t, hook.progress, 1)
	assert.Len(t, hook.results, 1)
	assert.Len(t, hook.errs, 1)
	assert.Len(t, hook.cancelled, 1)
	assert.Equal(t, "a", hook.progress[0].Text)
}

func TestCompositeHook(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()
	first, second := &mockHook{}, &mockHook{}
	hook := NewCompositeHook(first, second)

	hook.OnProgress(ctx, Progress{TaskID: id, Text: "p"})
	hook.OnResult(ctx, Result{TaskID: id, Text: "r"})
	hook.OnError(ctx, Error{TaskID: id, Err: errors.New("e")})
	hook.OnCancelled(ctx, Cancelled{TaskID: id})

	for _, h := range []*mockHook{first, second} {
		assert.Equal(t, []Progress{{TaskID: id, Text: "p"}}, h.progress)
		assert.Equal(t, []Result{{TaskID: id, Text: "r"}}, h.results)
		assert.Len(t, h.errs, 1)
		assert.Equal(t, []Cancelled{{TaskID: id}}, h.cancelled)
	}
}

func TestLoggingHook(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(prev) })

	ctx := context.Background()
	id := uuid.New()
	hook := LoggingHook()
	hook.OnProgress(ctx, Progress{TaskID: id, Delta: "ab", Text: "abc"})
	hook.OnResult(ctx, Result{TaskID: id, Text: "abc"})
	hook.OnError(ctx, Error{TaskID: id, Err: errors.New("stream broke")})
	hook.OnCancelled(ctx, Cancelled{TaskID: id})

	out := buf.String()
	assert.Contains(t, out, "generation progress")
	assert.Contains(t, out, "generation complete")
	assert.Contains(t, out, "stream broke")
	assert.Contains(t, out, "generation cancelled")
	assert.Contains(t, out, id.String())
}
