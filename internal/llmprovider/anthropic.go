package llmprovider

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// AnthropicProvider implements Provider against the Anthropic Messages
// API.
type AnthropicProvider struct {
	client anthropic.Client
	model  string
}

// NewAnthropicProvider builds a Provider bound to model, authenticating
// via apiKey (falls back to ANTHROPIC_API_KEY when empty).
func NewAnthropicProvider(apiKey, model string) *AnthropicProvider {
	opts := []option.RequestOption{}
	if apiKey != "" {
		opts = append(opts, option.WithAPIKey(apiKey))
	}
	return &AnthropicProvider{
		client: anthropic.NewClient(opts...),
		model:  model,
	}
}

func (p *AnthropicProvider) toParams(req Request) anthropic.MessageNewParams {
	messages := make([]anthropic.MessageParam, 0, len(req.Messages))
	for _, m := range req.Messages {
		if m.Role == "assistant" {
			messages = append(messages, anthropic.NewAssistantMessage(anthropic.NewTextBlock(m.Content)))
		} else {
			messages = append(messages, anthropic.NewUserMessage(anthropic.NewTextBlock(m.Content)))
		}
	}
	return anthropic.MessageNewParams{
		Model:     anthropic.Model(p.model),
		MaxTokens: int64(req.MaxTokens),
		System: []anthropic.TextBlockParam{
			{Text: req.SystemPrompt},
		},
		Messages:    messages,
		Temperature: anthropic.Float(req.Temperature),
	}
}

func (p *AnthropicProvider) Generate(ctx context.Context, req Request) (string, string, error) {
	resp, err := p.client.Messages.New(ctx, p.toParams(req))
	if err != nil {
		return "", "", fmt.Errorf("anthropic generate: %w", err)
	}
	var text string
	for _, block := range resp.Content {
		if tb, ok := block.AsAny().(anthropic.TextBlock); ok {
			text += tb.Text
		}
	}
	return text, string(resp.StopReason), nil
}

func (p *AnthropicProvider) GenerateStreaming(ctx context.Context, req Request) (<-chan Chunk, error) {
	stream := p.client.Messages.NewStreaming(ctx, p.toParams(req))
	out := make(chan Chunk)

	go func() {
		defer close(out)
		message := anthropic.Message{}
		for stream.Next() {
			event := stream.Current()
			if err := message.Accumulate(event); err != nil {
				out <- Chunk{Done: true, StopReason: "error"}
				return
			}
			if evt, ok := event.AsAny().(anthropic.ContentBlockDeltaEvent); ok {
				select {
				case out <- Chunk{Text: evt.Delta.Text}:
				case <-ctx.Done():
					return
				}
			}
		}
		if err := stream.Err(); err != nil {
			out <- Chunk{Done: true, StopReason: "error"}
			return
		}
		out <- Chunk{Done: true, StopReason: string(message.StopReason)}
	}()

	return out, nil
}
