package service

import (
	"context"
	"encoding/json"

	"support-chat-be/internal/dto"
	"support-chat-be/internal/entity"
	"support-chat-be/internal/pkg/logger"
	"support-chat-be/internal/repository/contract"
	"support-chat-be/internal/repository/specification"
	"support-chat-be/internal/repository/unitofwork"
	"support-chat-be/pkg/chunker"
	"support-chat-be/pkg/embedding"
	"support-chat-be/pkg/events"
	pktNats "support-chat-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService runs the ingestion pipeline: for each published document it
// chunks the content, embeds every chunk and persists the batch. Chunks whose
// embedding call fails are stored without a vector; keyword retrieval still
// reaches them.
type consumerService struct {
	pubSub            *gochannel.GoChannel
	topicName         string
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.EmbeddingProvider
	eventPublisher    *pktNats.Publisher
	logger            logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.EmbeddingProvider,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:            pubSub,
		topicName:         topicName,
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
		eventPublisher:    eventPublisher,
		logger:            log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishProcessDocumentMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("ingestion", "failed to unmarshal message", map[string]interface{}{"error": err.Error()})
		// Ack invalid messages to prevent infinite retry.
		msg.Ack()
		return
	}

	cs.logger.Info("ingestion", "processing document", map[string]interface{}{"document_id": payload.DocumentId.String()})

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	docs := uow.DocumentRepository()
	chunks := uow.DocumentChunkRepository()

	doc, err := docs.FindOne(ctx, specification.ByID{ID: payload.DocumentId})
	if err != nil {
		cs.logger.Error("ingestion", "failed to load document", map[string]interface{}{"document_id": payload.DocumentId.String(), "error": err.Error()})
		msg.Nack()
		return
	}
	if doc == nil {
		// Deleted before processing started.
		msg.Ack()
		return
	}

	if err := docs.UpdateStatus(ctx, doc.Id, entity.DocumentStatusProcessing, 0); err != nil {
		cs.logger.Error("ingestion", "failed to mark document processing", map[string]interface{}{"document_id": doc.Id.String(), "error": err.Error()})
		msg.Nack()
		return
	}

	pieces := chunker.Chunk(doc.Content, doc.Id, string(doc.Type), doc.Language, chunker.Strategy(payload.ChunkStrategy), chunker.DefaultOptions())
	if len(pieces) == 0 {
		cs.failDocument(ctx, docs, doc, "document produced no chunks")
		msg.Ack()
		return
	}

	// Reprocessing replaces the previous chunk set.
	if err := chunks.DeleteByDocumentId(ctx, doc.Id); err != nil {
		cs.logger.Error("ingestion", "failed to clear previous chunks", map[string]interface{}{"document_id": doc.Id.String(), "error": err.Error()})
		msg.Nack()
		return
	}

	embedded := 0
	batch := make([]*entity.DocumentChunk, 0, len(pieces))
	for i := range pieces {
		chunk := pieces[i]
		vector, err := cs.embeddingProvider.Generate(ctx, embedding.TruncateInput(chunk.Content))
		if err != nil {
			cs.logger.Warn("ingestion", "chunk embedding failed, storing without vector", map[string]interface{}{
				"document_id": doc.Id.String(),
				"chunk_index": chunk.ChunkIndex,
				"error":       err.Error(),
			})
		} else {
			chunk.Embedding = vector
			embedded++
		}
		batch = append(batch, &chunk)

		progress := (i + 1) * 100 / len(pieces)
		if progress < 100 && (i+1)%10 == 0 {
			if err := docs.UpdateStatus(ctx, doc.Id, entity.DocumentStatusProcessing, progress); err != nil {
				cs.logger.Warn("ingestion", "failed to update progress", map[string]interface{}{"document_id": doc.Id.String(), "error": err.Error()})
			}
		}
	}

	if err := chunks.CreateBulk(ctx, batch); err != nil {
		cs.failDocument(ctx, docs, doc, "failed to persist chunks: "+err.Error())
		msg.Nack()
		return
	}

	finalStatus := entity.DocumentStatusCompleted
	if embedded > 0 {
		finalStatus = entity.DocumentStatusIndexed
	}
	if err := docs.UpdateStatus(ctx, doc.Id, finalStatus, 100); err != nil {
		cs.logger.Error("ingestion", "failed to finalize document status", map[string]interface{}{"document_id": doc.Id.String(), "error": err.Error()})
		msg.Nack()
		return
	}

	cs.publishLifecycleEvent(ctx, doc, finalStatus, len(batch))

	cs.logger.Info("ingestion", "document processed", map[string]interface{}{
		"document_id": doc.Id.String(),
		"chunks":      len(batch),
		"embedded":    embedded,
		"status":      string(finalStatus),
	})
	msg.Ack()
}

func (cs *consumerService) failDocument(ctx context.Context, docs contract.DocumentRepository, doc *entity.Document, reason string) {
	cs.logger.Error("ingestion", "document processing failed", map[string]interface{}{
		"document_id": doc.Id.String(),
		"reason":      reason,
	})
	if err := docs.UpdateStatus(ctx, doc.Id, entity.DocumentStatusError, 0); err != nil {
		cs.logger.Error("ingestion", "failed to mark document errored", map[string]interface{}{"document_id": doc.Id.String(), "error": err.Error()})
	}
	if cs.eventPublisher != nil {
		if err := cs.eventPublisher.Publish(ctx, events.DocumentFailed(doc.Id, reason)); err != nil {
			cs.logger.Warn("ingestion", "failed to publish failure event", map[string]interface{}{"error": err.Error()})
		}
	}
}

func (cs *consumerService) publishLifecycleEvent(ctx context.Context, doc *entity.Document, status entity.DocumentStatus, chunkCount int) {
	if cs.eventPublisher == nil {
		return
	}

	var evt events.Event
	if status == entity.DocumentStatusIndexed {
		evt = events.DocumentIndexed(doc.Id, chunkCount)
	} else {
		evt = events.DocumentProcessed(doc.Id, chunkCount)
	}
	if err := cs.eventPublisher.Publish(ctx, evt); err != nil {
		cs.logger.Warn("ingestion", "failed to publish lifecycle event", map[string]interface{}{"error": err.Error()})
	}
}
