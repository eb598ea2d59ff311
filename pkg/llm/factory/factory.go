package factory

import (
	"fmt"

	"support-chat-be/internal/entity"
	"support-chat-be/pkg/llm"
	"support-chat-be/pkg/llm/anthropic"
	"support-chat-be/pkg/llm/openai"
)

// NewProvider builds a single provider for the given family.
func NewProvider(providerType, apiKey, modelName string) (llm.Provider, error) {
	switch providerType {
	case entity.ProviderOpenAI:
		if apiKey == "" {
			return nil, fmt.Errorf("openai provider: missing api key")
		}
		return openai.NewOpenAIProvider(apiKey, modelName), nil
	case entity.ProviderAnthropic:
		if apiKey == "" {
			return nil, fmt.Errorf("anthropic provider: missing api key")
		}
		return anthropic.NewAnthropicProvider(apiKey, modelName), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}

// NewChain builds the fallback chain with the primary family first and the
// alternate family (when a credential exists) second, using its lighter
// default model.
func NewChain(primary, primaryKey, primaryModel string, keys map[string]string) (*llm.Chain, error) {
	first, err := NewProvider(primary, primaryKey, primaryModel)
	if err != nil {
		return nil, err
	}

	providers := []llm.Provider{first}

	alternate := entity.ProviderAnthropic
	if primary == entity.ProviderAnthropic {
		alternate = entity.ProviderOpenAI
	}
	if key := keys[alternate]; key != "" {
		// Empty model picks the family's fallback default.
		second, err := NewProvider(alternate, key, "")
		if err == nil {
			providers = append(providers, second)
		}
	}

	return llm.NewChain(providers...), nil
}
