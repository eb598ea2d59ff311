package model

import (
	"time"

	"github.com/google/uuid"
)

type AiConfiguration struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Provider    string    `gorm:"type:varchar(32);not null"`
	Model       string    `gorm:"type:varchar(64);not null"`
	Temperature float64   `gorm:"default:0.3"`
	ApiKey      string    `gorm:"type:text"`
	IsActive    bool      `gorm:"default:false;index"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (AiConfiguration) TableName() string {
	return "ai_configurations"
}
