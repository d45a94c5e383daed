package llmprovider

import (
	"github.com/invopop/jsonschema"

	"assessment-forge/internal/config"
)

// New selects a Provider implementation based on cfg.LLMProvider.
// Anthropic is the default; any other value falls back to OpenAI so an
// unrecognized setting degrades to a working provider instead of a nil
// one.
func New(cfg *config.Config) Provider {
	switch cfg.LLMProvider {
	case "", "anthropic":
		return NewAnthropicProvider(cfg.LLMAPIKey, cfg.LLMModel)
	default:
		return NewOpenAIProvider(cfg.LLMAPIKey, cfg.LLMModel)
	}
}

// ItemSchema reflects the JSON shape the Writer must produce for a
// single generated item, reused across both providers' prompts so a
// schema drift between them is impossible by construction.
func ItemSchema() *jsonschema.Schema {
	reflector := &jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	return reflector.Reflect(&GeneratedItemShape{})
}

// GeneratedItemShape is the wire shape the Writer's prompt asks the
// model to emit per item, before conversion into domain.GeneratedItem.
type GeneratedItemShape struct {
	SlotID       int               `json:"slotId" jsonschema:"required"`
	QuestionType string            `json:"questionType" jsonschema:"required"`
	Prompt       string            `json:"prompt" jsonschema:"required"`
	Options      []string          `json:"options,omitempty"`
	Answer       string            `json:"answer" jsonschema:"required"`
	Metadata     map[string]string `json:"metadata,omitempty"`
}
