package entity

import (
	"time"

	"github.com/google/uuid"
)

// Usage operation types recorded after every provider invocation.
const (
	UsageOperationEmbedding  = "embedding"
	UsageOperationGeneration = "generation"
	UsageOperationWebSearch  = "web_search"
)

// UsageLog records one provider invocation, success or failure. Written
// fire-and-forget; a lost row never fails the user-facing call.
type UsageLog struct {
	Id           uuid.UUID
	Model        string
	Operation    string
	Success      bool
	UserId       string
	WidgetId     string
	TokensUsed   int
	ErrorMessage string
	Metadata     map[string]interface{}
	CreatedAt    time.Time
}
