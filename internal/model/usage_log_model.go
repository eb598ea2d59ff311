package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type UsageLog struct {
	Id           uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Model        string         `gorm:"type:varchar(64);index"`
	Operation    string         `gorm:"type:varchar(32);index"`
	Success      bool           `gorm:"default:false"`
	UserId       string         `gorm:"type:varchar(64);index"`
	WidgetId     string         `gorm:"type:varchar(64);index"`
	TokensUsed   int            `gorm:"default:0"`
	ErrorMessage string         `gorm:"type:text"`
	Metadata     datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt    time.Time      `gorm:"autoCreateTime;index"`
}

func (UsageLog) TableName() string {
	return "usage_logs"
}
