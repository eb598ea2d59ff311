package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type DocumentChunk struct {
	Id          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	DocumentId  uuid.UUID       `gorm:"type:uuid;not null;index"`
	ChunkIndex  int             `gorm:"default:0"` // 0-based, insertion order within the document
	Content     string          `gorm:"type:text"`
	ContentHash string          `gorm:"type:varchar(64);index"`
	SourceType  string          `gorm:"type:varchar(32)"`
	Language    string          `gorm:"type:varchar(8);default:'pt';index"`
	// Nullable: chunks whose embedding call failed are stored without a
	// vector and stay reachable through keyword search.
	Embedding *pgvector.Vector `gorm:"type:vector(1536)"` // text-embedding-3-small dimensions
	CreatedAt   time.Time       `gorm:"autoCreateTime"`
	DeletedAt   gorm.DeletedAt  `gorm:"index"`
}

func (DocumentChunk) TableName() string {
	return "document_chunks"
}
