// Package provider defines the contract between the generation core and an
// OpenAI-compatible chat-completion endpoint.
//
// Design decisions:
//   - One request type for both modes: the same CompletionRequest drives a
//     streaming call (raw SSE body) and a non-streaming call (message content)
//   - Raw streaming body: Stream hands back the undecoded body so the stream
//     package owns framing and malformed-frame tolerance
//   - Explicit configuration: the selected model travels on the request, never
//     through package state
//   - Fail fast: requests without a model are rejected before any network call
//   - No retries: retry policy belongs to callers
//
// Key concepts:
//   - Provider: Interface implemented by concrete endpoints (see provider/openai)
//   - CompletionRequest: Immutable description of a single chat completion
//   - StructuredOutput: Optional JSON schema requested as the response format
//   - StatusError: Non-2xx answer from the endpoint, carrying the status code
//
// Example usage:
//
//	req := provider.CompletionRequest{
//	    SystemMessage: "You are a story writer",
//	    UserMessage:   "Write the opening scene",
//	    Model:         "gpt-4o-mini",
//	    Temperature:   0.8,
//	    MaxTokens:     1024,
//	}
//	body, err := p.Stream(ctx, req)
//	if err != nil {
//	    return err
//	}
//	defer body.Close()
package provider
