package unitofwork

import (
	"context"

	"support-chat-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	DocumentRepository() contract.DocumentRepository
	DocumentChunkRepository() contract.DocumentChunkRepository
	AiConfigRepository() contract.AiConfigRepository
	UsageLogRepository() contract.UsageLogRepository
	KnowledgeRepository() contract.KnowledgeRepository
}
