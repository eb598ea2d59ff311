package entity

import (
	"time"

	"github.com/google/uuid"
)

// Provider families supported by the answer-generation fallback chain.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

// Fallback models used when the primary provider family fails and the
// alternate family has a credential.
const (
	FallbackModelOpenAI    = "gpt-4o-mini"
	FallbackModelAnthropic = "claude-3-5-haiku-latest"
)

// AiConfiguration is the active model configuration the orchestrator resolves
// before every generation call. At most one row has IsActive=true.
type AiConfiguration struct {
	Id          uuid.UUID
	Provider    string // "openai" | "anthropic"
	Model       string
	Temperature float64
	ApiKey      string // resolved from environment when empty
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
