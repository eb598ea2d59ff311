package model

import (
	"time"

	"github.com/google/uuid"
)

type KnowledgeEntry struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Topic     string    `gorm:"type:varchar(255);index"`
	Content   string    `gorm:"type:text"`
	Source    string    `gorm:"type:varchar(32)"`
	Language  string    `gorm:"type:varchar(8);default:'pt'"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (KnowledgeEntry) TableName() string {
	return "knowledge_entries"
}
