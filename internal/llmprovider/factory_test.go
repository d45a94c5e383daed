package llmprovider

import (
	"testing"

	"assessment-forge/internal/config"

	"github.com/stretchr/testify/assert"
)

func TestNewDefaultsToAnthropic(t *testing.T) {
	p := New(&config.Config{LLMProvider: "", LLMAPIKey: "k", LLMModel: "m"})
	_, ok := p.(*AnthropicProvider)
	assert.True(t, ok)
}

func TestNewUnrecognizedProviderFallsBackToOpenAI(t *testing.T) {
	p := New(&config.Config{LLMProvider: "mystery-vendor", LLMAPIKey: "k", LLMModel: "m"})
	_, ok := p.(*OpenAIProvider)
	assert.True(t, ok)
}

func TestNewOpenAISelectsOpenAIProvider(t *testing.T) {
	p := New(&config.Config{LLMProvider: "openai", LLMAPIKey: "k", LLMModel: "m"})
	_, ok := p.(*OpenAIProvider)
	assert.True(t, ok)
}

func TestItemSchemaIsProduced(t *testing.T) {
	schema := ItemSchema()
	assert.NotNil(t, schema)
}
