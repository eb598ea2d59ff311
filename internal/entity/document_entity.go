package entity

import (
	"time"

	"github.com/google/uuid"
)

// DocumentStatus tracks the ingestion lifecycle of a training document.
type DocumentStatus string

const (
	DocumentStatusPending    DocumentStatus = "pending"
	DocumentStatusProcessing DocumentStatus = "processing"
	DocumentStatusCompleted  DocumentStatus = "completed"
	DocumentStatusIndexed    DocumentStatus = "indexed"
	DocumentStatusError      DocumentStatus = "error"
)

// DocumentType classifies a document at ingestion time. Instruction documents
// are rendered before technical ones when the prompt context is assembled.
type DocumentType string

const (
	DocumentTypeText        DocumentType = "text"
	DocumentTypeManual      DocumentType = "manual"
	DocumentTypeTechnical   DocumentType = "technical"
	DocumentTypeInstruction DocumentType = "instruction"
)

// Document is an uploaded/pasted training artifact. Structurally immutable
// after completion; only status/progress mutate during processing.
type Document struct {
	Id        uuid.UUID
	Name      string
	Content   string
	Type      DocumentType
	Status    DocumentStatus
	Progress  int // 0-100, meaningful while Status is processing
	Language  string
	CreatedAt time.Time
	UpdatedAt *time.Time
	DeletedAt *time.Time
}

// Trained reports whether the document participates in retrieval.
func (d *Document) Trained() bool {
	return d.Status == DocumentStatusCompleted || d.Status == DocumentStatusIndexed
}

// IsPriority reports whether the document must lead the assembled context.
func (d *Document) IsPriority() bool {
	return d.Type == DocumentTypeInstruction
}
