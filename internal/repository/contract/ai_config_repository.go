package contract

import (
	"context"

	"support-chat-be/internal/entity"
)

type AiConfigRepository interface {
	// FindActive returns the active model configuration or nil when none is set.
	FindActive(ctx context.Context) (*entity.AiConfiguration, error)
	Upsert(ctx context.Context, cfg *entity.AiConfiguration) error
}
