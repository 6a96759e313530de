// Package stream turns the raw server-sent event body of an OpenAI-compatible
// chat completion into ordered text increments and reassembles them.
//
// Framing rules:
//   - Lines are separated by "\n"; a trailing "\r" is ignored
//   - Only lines starting with "data: " carry payloads, everything else is skipped
//   - "data: [DONE]" terminates the stream, nothing after it is emitted
//   - Payloads that are not valid JSON are dropped without failing the stream
//   - Each non-empty choices[0].delta.content is emitted in arrival order
//
// The output is independent of how the body was split into chunks: a line
// fragmented across reads is reassembled before it is interpreted.
package stream
