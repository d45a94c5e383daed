// Package llmprovider is the capability interface the Writer
// generates against, with concrete Anthropic and OpenAI
// implementations selected by config.LLMProvider.
package llmprovider

import "context"

// Request is one generation call: a system prompt plus the running
// conversation, capped at maxTokens and temperature.
type Request struct {
	SystemPrompt string
	Messages     []Message
	MaxTokens    int
	Temperature  float64
}

// Message is a single turn in the conversation sent to the model.
type Message struct {
	Role    string // "user" | "assistant"
	Content string
}

// Chunk is one increment of a streaming response: either more text, or
// (on the final chunk) Done with the stop reason.
type Chunk struct {
	Text string
	Done bool
	// StopReason mirrors the provider's own stop reason vocabulary
	// ("end_turn", "max_tokens", ...) so callers like the Writer can
	// detect truncation without a provider-specific import.
	StopReason string
}

// Provider is the capability interface the Writer's chunked generation
// loop programs against instead of a concrete SDK client. The Architect
// composes its prompt without calling a Provider.
type Provider interface {
	// Generate performs a single non-streaming completion.
	Generate(ctx context.Context, req Request) (string, string, error)
	// GenerateStreaming performs a completion and delivers it
	// incrementally over the returned channel, closing it when the
	// response (or ctx) ends. The channel yields no error value; a
	// provider failure mid-stream is reported as a final Chunk with
	// StopReason "error" and an empty Text, and the error itself is
	// returned once streaming setup fails before any chunk is sent.
	GenerateStreaming(ctx context.Context, req Request) (<-chan Chunk, error)
}
