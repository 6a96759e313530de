package provider

import (
	"context"
	"io"
)

// Provider defines the interface for chat-completion endpoints.
// Implementations issue exactly one request per call and never retry.
type Provider interface {
	// Stream issues a streaming completion and returns the raw server-sent
	// event body. Cancelling ctx aborts the read. The caller closes the body.
	Stream(ctx context.Context, req CompletionRequest) (io.ReadCloser, error)

	// Complete issues a non-streaming completion and returns the content of
	// the first choice.
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}
