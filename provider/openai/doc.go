// Package openai implements provider.Provider on top of the openai-go SDK for
// any OpenAI-compatible endpoint (OpenAI, LM Studio, Ollama, vLLM).
//
// Streaming requests bypass the SDK's stream decoder: the raw response body is
// handed back so the stream package can apply its own framing rules. The SDK
// retry loop is disabled unless explicitly re-enabled with option.WithMaxRetries.
package openai
