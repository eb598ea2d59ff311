package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Document struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"type:varchar(255);not null"`
	Content   string    `gorm:"type:text"`
	Type      string    `gorm:"type:varchar(32);default:'text';index"`
	Status    string    `gorm:"type:varchar(32);default:'pending';index"`
	Progress  int       `gorm:"default:0"`
	Language  string    `gorm:"type:varchar(8);default:'pt';index"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Document) TableName() string {
	return "documents"
}
