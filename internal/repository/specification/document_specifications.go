package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ByDocumentID filters chunks by owning document
type ByDocumentID struct {
	DocumentID uuid.UUID
}

func (s ByDocumentID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("document_id = ?", s.DocumentID)
}

// ByStatus filters documents by processing status
type ByStatus struct {
	Status string
}

func (s ByStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", s.Status)
}

// ByStatuses filters documents by a set of processing statuses
type ByStatuses struct {
	Statuses []string
}

func (s ByStatuses) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status IN ?", s.Statuses)
}

// ByLanguage filters by language tag
type ByLanguage struct {
	Language string
}

func (s ByLanguage) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("language = ?", s.Language)
}

// ByDocumentType filters by the ingestion-time type tag
type ByDocumentType struct {
	Type string
}

func (s ByDocumentType) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("type = ?", s.Type)
}

// WithNonEmptyContent skips documents with blank content
type WithNonEmptyContent struct{}

func (s WithNonEmptyContent) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("content IS NOT NULL AND btrim(content) <> ''")
}
