package contract

import (
	"context"

	"support-chat-be/internal/entity"
)

type UsageLogRepository interface {
	Create(ctx context.Context, log *entity.UsageLog) error
}
