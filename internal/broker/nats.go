package broker

import (
	"context"
	"errors"
	"log/slog"

	"github.com/alphadose/haxmap"
	"github.com/gdoct/ai-storywriter-sub001/events"
	"github.com/gdoct/ai-storywriter-sub001/pkg/slogx"
	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
)

type NATSBroker struct {
	client *nats.Conn
	topics *haxmap.Map[string, *natsTopic]
}

// NATS creates a broker publishing each topic on the NATS subject of the same
// name.
func NATS(client *nats.Conn) *NATSBroker {
	return &NATSBroker{
		client: client,
		topics: haxmap.New[string, *natsTopic](),
	}
}

func (b *NATSBroker) Topic(_ context.Context, id string) Topic {
	top, _ := b.topics.GetOrCompute(id, func() *natsTopic {
		return &natsTopic{
			subject:       id,
			client:        b.client,
			subscriptions: haxmap.New[string, *natsSubscription](),
			release:       func() { b.topics.Del(id) },
		}
	})
	return top
}

type natsTopic struct {
	client        *nats.Conn
	subject       string
	subscriptions *haxmap.Map[string, *natsSubscription]
	release       func()
}

func (t *natsTopic) Publish(_ context.Context, event events.Event) error {
	eb, err := events.ToJSON(event)
	if err != nil {
		return err
	}
	return t.client.Publish(t.subject, eb)
}

func (t *natsTopic) Subscribe(ctx context.Context, hook events.Hook) (Subscription, error) {
	if hook == nil {
		return nil, ErrHookRequired
	}

	ch := make(chan events.Event, subscriptionBuffer)
	nsub, err := t.client.Subscribe(t.subject, func(msg *nats.Msg) {
		event, err := events.FromJSON(msg.Data)
		if err != nil {
			slog.ErrorContext(ctx, "failed to unmarshal event", slogx.Error(err), slog.String("subject", msg.Subject))
			return
		}

		select {
		case ch <- event:
		case <-ctx.Done():
		}
	})
	if err != nil {
		return nil, err
	}
	nsub.SetClosedHandler(func(_ string) { close(ch) })
	if err := t.client.Flush(); err != nil {
		_ = nsub.Unsubscribe()
		return nil, err
	}

	go forwardToHook(ctx, ch, hook)

	sub := &natsSubscription{
		id:  uuid.NewString(),
		sub: nsub,
	}
	sub.onClose = func() { t.subscriptions.Del(sub.id) }
	t.subscriptions.Set(sub.id, sub)
	return sub, nil
}

func (t *natsTopic) Close() {
	t.subscriptions.ForEach(func(_ string, sub *natsSubscription) bool {
		if sub != nil {
			sub.Unsubscribe()
		}
		return true
	})
	if t.release != nil {
		t.release()
	}
}

type natsSubscription struct {
	id      string
	sub     *nats.Subscription
	onClose func()
}

func (n *natsSubscription) ID() string {
	return n.id
}

// Unsubscribe drains the subscription: events already published are still
// delivered to the hook.
func (n *natsSubscription) Unsubscribe() {
	if n.onClose != nil {
		n.onClose()
	}
	if err := n.sub.Drain(); err != nil && !errors.Is(err, nats.ErrBadSubscription) && !errors.Is(err, nats.ErrConnectionClosed) {
		slog.Error("failed to unsubscribe", slogx.Error(err), slog.String("subscription", n.id))
	}
}
