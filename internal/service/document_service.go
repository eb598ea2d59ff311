package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"support-chat-be/internal/dto"
	"support-chat-be/internal/entity"
	"support-chat-be/internal/repository/specification"
	"support-chat-be/internal/repository/unitofwork"
	"support-chat-be/pkg/chunker"
	"support-chat-be/pkg/events"
	pktNats "support-chat-be/pkg/nats"

	"github.com/google/uuid"
)

type IDocumentService interface {
	Create(ctx context.Context, req *dto.CreateDocumentRequest) (*dto.CreateDocumentResponse, error)
	Show(ctx context.Context, id uuid.UUID) (*dto.ShowDocumentResponse, error)
	List(ctx context.Context) ([]*dto.ShowDocumentResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type documentService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	eventPublisher   *pktNats.Publisher
}

func NewDocumentService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	eventPublisher *pktNats.Publisher,
) IDocumentService {
	return &documentService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
	}
}

// Create persists the document as pending and hands it to the ingestion
// consumer via the in-process bus. Chunking and embedding happen there.
func (c *documentService) Create(ctx context.Context, req *dto.CreateDocumentRequest) (*dto.CreateDocumentResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	doc := entity.Document{
		Id:        uuid.New(),
		Name:      req.Name,
		Content:   req.Content,
		Type:      classifyDocumentType(req.Type, req.Name),
		Status:    entity.DocumentStatusPending,
		Language:  languageOrDefault(req.Language),
		CreatedAt: time.Now(),
	}

	if err := uow.DocumentRepository().Create(ctx, &doc); err != nil {
		return nil, err
	}

	strategy := req.ChunkStrategy
	if strategy == "" {
		strategy = string(chunker.StrategyAuto)
	}
	msgPayload := dto.PublishProcessDocumentMessage{
		DocumentId:    doc.Id,
		ChunkStrategy: strategy,
	}
	msgJson, err := json.Marshal(msgPayload)
	if err != nil {
		return nil, err
	}
	if err := c.publisherService.Publish(ctx, msgJson); err != nil {
		return nil, err
	}

	if c.eventPublisher != nil {
		// Lifecycle events are best-effort; ingestion proceeds regardless.
		_ = c.eventPublisher.Publish(ctx, events.DocumentCreated(doc.Id, doc.Name))
	}

	return &dto.CreateDocumentResponse{Id: doc.Id}, nil
}

func (c *documentService) Show(ctx context.Context, id uuid.UUID) (*dto.ShowDocumentResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	doc, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, nil
	}
	return toShowDocumentResponse(doc), nil
}

func (c *documentService) List(ctx context.Context) ([]*dto.ShowDocumentResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	docs, err := uow.DocumentRepository().FindAll(ctx, specification.OrderBy{Field: "created_at", Desc: true})
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.ShowDocumentResponse, 0, len(docs))
	for _, doc := range docs {
		responses = append(responses, toShowDocumentResponse(doc))
	}
	return responses, nil
}

// Delete removes the document and cascades its chunks so retrieval never
// serves orphaned content.
func (c *documentService) Delete(ctx context.Context, id uuid.UUID) error {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.DocumentChunkRepository().DeleteByDocumentId(ctx, id); err != nil {
		return err
	}
	if err := uow.DocumentRepository().Delete(ctx, id); err != nil {
		return err
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	if c.eventPublisher != nil {
		_ = c.eventPublisher.Publish(ctx, events.DocumentDeleted(id))
	}
	return nil
}

// classifyDocumentType prefers the explicit type tag; untyped uploads whose
// name suggests operator rules ("Instruções de Atendimento", "Regras...")
// are classified as instruction so they lead the assembled context.
func classifyDocumentType(raw, name string) entity.DocumentType {
	if raw != "" {
		return entity.DocumentType(strings.ToLower(raw))
	}
	lower := strings.ToLower(name)
	for _, marker := range []string{"instruç", "priorit", "regras"} {
		if strings.Contains(lower, marker) {
			return entity.DocumentTypeInstruction
		}
	}
	return entity.DocumentTypeText
}

func languageOrDefault(raw string) string {
	if raw == "" {
		return "pt"
	}
	return raw
}

func toShowDocumentResponse(doc *entity.Document) *dto.ShowDocumentResponse {
	return &dto.ShowDocumentResponse{
		Id:        doc.Id,
		Name:      doc.Name,
		Type:      string(doc.Type),
		Status:    string(doc.Status),
		Progress:  doc.Progress,
		Language:  doc.Language,
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}
}
