package broker

import (
	"context"
	"errors"

	"github.com/gdoct/ai-storywriter-sub001/events"
)

var ErrHookRequired = errors.New("hook is required")

type Broker interface {
	Topic(context.Context, string) Topic
}

type Topic interface {
	Publish(context.Context, events.Event) error
	Subscribe(context.Context, events.Hook) (Subscription, error)
	// Close ends all subscriptions and releases the topic.
	Close()
}

type Subscription interface {
	ID() string
	Unsubscribe()
}

func forwardToHook(ctx context.Context, ch <-chan events.Event, hook events.Hook) {
	for {
		select {
		case event, ok := <-ch:
			if !ok {
				return
			}
			events.Dispatch(ctx, hook, event)
		case <-ctx.Done():
			return
		}
	}
}
