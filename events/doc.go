// Package events defines the events a generation task publishes while it runs
// and the hooks that observe them.
//
// Design decisions:
//   - Closed set: every event implements the unexported event marker so only
//     this package defines event types
//   - Task scoped: every event carries the ID of the task that produced it
//   - Efficient JSON: custom marshaling starts from a pre-allocated type
//     marker and is decoded with gjson, so events cross process boundaries
//     (see internal/broker) without reflection
//   - Explicit hooks: Hook has one method per observable event and no no-op
//     base, so new events force implementations to decide how to handle them
//
// Event hierarchy:
//   - Event: Base interface for all generation events
//     ├── Delim: Stream boundary markers ("start", "end")
//     ├── Progress: One increment and the value shown to the reader so far
//     ├── Result: Final text and resolved value of a task
//     ├── Error: Rejection of a task
//     └── Cancelled: Task cancelled by its caller
//
// Example usage:
//
//	data, err := events.ToJSON(events.Progress{TaskID: id, Delta: "Once", Text: "Once"})
//	if err != nil {
//	    return err
//	}
//	evt, err := events.FromJSON(data)
package events
