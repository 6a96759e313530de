// Package broker distributes generation events from a running task to the
// hooks observing it. Every task publishes to its own topic.
//
// Design decisions:
//   - Context-first: all operations accept context.Context for cancellation
//   - Topic per task: topics are created on first use and released with Close
//     once the task has published its final event
//   - Bounded delivery: each subscription buffers events; a subscriber that
//     stays full longer than the slow-subscriber timeout is evicted so one
//     stuck hook cannot stall a generation
//   - Ordered delivery: a subscription sees events in publish order
//
// Interface hierarchy:
//   - Broker: Top-level interface for accessing topics
//     └── Topic: Interface for publishing/subscribing to events
//     └── Subscription: Interface for managing subscriptions
//
// Two implementations are provided: Local, an in-process broker, and NATS,
// which carries events as JSON on the subject named by the topic so tasks can
// be observed from another process.
package broker
