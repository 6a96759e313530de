/*
Package storywriter is the streaming-completion core of an AI-assisted
creative-writing editor. Every generation feature (story text, character
sheets, backstory, story arcs, scene lists, chat replies) follows the same
pattern: send a chat-completion request to an OpenAI-compatible endpoint,
consume the token stream, show the text or a partially parsed structured
answer as it grows, and let the writer cancel at any time.

# Basic Usage

	p := openai.New(option.WithBaseURL("http://localhost:1234/v1"))
	gen := storywriter.New(p)

	h := gen.GenerateText(ctx, provider.CompletionRequest{
		SystemMessage: "You are a novelist",
		UserMessage:   "Write the opening paragraph",
		Model:         "llama-3.1-8b-instruct",
		Temperature:   0.8,
	}, func(text string) {
		render(text)
	})

	story, err := h.Get(ctx)

Structured replies ({"answer": ..., "followUpQuestions": [...]}) are streamed
with GenerateStructured; the progress callback then receives the answer
extracted from the incomplete JSON so far, and the task resolves with a
partial.StructuredAnswer. GenerateObject decodes the final reply into any
JSON-shaped type.

# Architecture

 1. Provider (provider, provider/openai)
    - Issues one chat-completion request per task
    - Returns the raw event stream or the non-streaming content

 2. Stream (stream)
    - Decodes server-sent events into ordered text increments
    - Accumulates increments into the full text

 3. Partial extraction (partial)
    - Resolves display fields from incomplete JSON
    - Resolves the final structured answer

 4. Tasks (task.go, handle.go)
    - Run each generation in its own goroutine
    - Expose progress, the result and cancellation through a Handle
    - Publish events to a broker topic named after the task

# Cancellation

Handle.Cancel cancels the context of the underlying request, which aborts the
network read. Once Cancel returns, the progress callback is not invoked again
and Get reports ErrCancelled.
*/
package storywriter
