package implementation

import (
	"context"
	"encoding/json"

	"support-chat-be/internal/entity"
	"support-chat-be/internal/model"
	"support-chat-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type UsageLogRepositoryImpl struct {
	db *gorm.DB
}

func NewUsageLogRepository(db *gorm.DB) contract.UsageLogRepository {
	return &UsageLogRepositoryImpl{db: db}
}

func (r *UsageLogRepositoryImpl) Create(ctx context.Context, log *entity.UsageLog) error {
	if log.Id == uuid.Nil {
		log.Id = uuid.New()
	}

	var metadata datatypes.JSON
	if log.Metadata != nil {
		if raw, err := json.Marshal(log.Metadata); err == nil {
			metadata = raw
		}
	}

	m := &model.UsageLog{
		Id:           log.Id,
		Model:        log.Model,
		Operation:    log.Operation,
		Success:      log.Success,
		UserId:       log.UserId,
		WidgetId:     log.WidgetId,
		TokensUsed:   log.TokensUsed,
		ErrorMessage: log.ErrorMessage,
		Metadata:     metadata,
	}
	return r.db.WithContext(ctx).Create(m).Error
}
