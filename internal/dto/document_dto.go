package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateDocumentRequest struct {
	Name          string `json:"name" validate:"required"`
	Content       string `json:"content" validate:"required"`
	Type          string `json:"type" validate:"omitempty,oneof=text manual technical instruction"`
	Language      string `json:"language" validate:"omitempty,oneof=pt en"`
	ChunkStrategy string `json:"chunk_strategy" validate:"omitempty,oneof=auto fixed semantic recursive"`
}

type CreateDocumentResponse struct {
	Id uuid.UUID `json:"id"`
}

type ShowDocumentResponse struct {
	Id        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Type      string     `json:"type"`
	Status    string     `json:"status"`
	Progress  int        `json:"progress"`
	Language  string     `json:"language"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

// PublishProcessDocumentMessage is the in-process bus payload that triggers
// chunking and embedding for a newly created document.
type PublishProcessDocumentMessage struct {
	DocumentId    uuid.UUID `json:"document_id"`
	ChunkStrategy string    `json:"chunk_strategy"`
}
