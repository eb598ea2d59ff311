package contract

import (
	"context"

	"support-chat-be/internal/entity"
)

type KnowledgeRepository interface {
	Create(ctx context.Context, entry *entity.KnowledgeEntry) error
	FindByTopic(ctx context.Context, topic string, language string) ([]*entity.KnowledgeEntry, error)
	ListTopics(ctx context.Context, language string) ([]string, error)
}
