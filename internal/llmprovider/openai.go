package llmprovider

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// OpenAIProvider implements Provider against the Chat Completions API.
type OpenAIProvider struct {
	client openai.Client
	model  string
}

// NewOpenAIProvider builds a Provider bound to model, authenticating
// via apiKey (falls back to OPENAI_API_KEY when empty).
func NewOpenAIProvider(apiKey, model string) *OpenAIProvider {
	opts := []option.RequestOption{}
	if apiKey != "" {
		opts = append(opts, option.WithAPIKey(apiKey))
	}
	if model == "" {
		model = "gpt-4o"
	}
	return &OpenAIProvider{
		client: openai.NewClient(opts...),
		model:  model,
	}
}

func (p *OpenAIProvider) toParams(req Request) openai.ChatCompletionNewParams {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(req.Messages)+1)
	messages = append(messages, openai.SystemMessage(req.SystemPrompt))
	for _, m := range req.Messages {
		if m.Role == "assistant" {
			messages = append(messages, openai.AssistantMessage(m.Content))
		} else {
			messages = append(messages, openai.UserMessage(m.Content))
		}
	}

	params := openai.ChatCompletionNewParams{
		Model:               p.model,
		Messages:            messages,
		MaxCompletionTokens: openai.Int(int64(req.MaxTokens)),
		Temperature:         openai.Float(req.Temperature),
	}
	return params
}

func (p *OpenAIProvider) Generate(ctx context.Context, req Request) (string, string, error) {
	resp, err := p.client.Chat.Completions.New(ctx, p.toParams(req))
	if err != nil {
		return "", "", fmt.Errorf("openai generate: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", "", fmt.Errorf("openai generate: no choices in response")
	}
	choice := resp.Choices[0]
	return choice.Message.Content, string(choice.FinishReason), nil
}

func (p *OpenAIProvider) GenerateStreaming(ctx context.Context, req Request) (<-chan Chunk, error) {
	params := p.toParams(req)
	stream := p.client.Chat.Completions.NewStreaming(ctx, params)
	out := make(chan Chunk)

	go func() {
		defer close(out)
		finishReason := ""
		for stream.Next() {
			chunk := stream.Current()
			if len(chunk.Choices) == 0 {
				continue
			}
			delta := chunk.Choices[0].Delta.Content
			if fr := string(chunk.Choices[0].FinishReason); fr != "" {
				finishReason = fr
			}
			if delta == "" && finishReason == "" {
				continue
			}
			select {
			case out <- Chunk{Text: delta}:
			case <-ctx.Done():
				return
			}
		}
		if err := stream.Err(); err != nil {
			out <- Chunk{Done: true, StopReason: "error"}
			return
		}
		out <- Chunk{Done: true, StopReason: finishReason}
	}()

	return out, nil
}
