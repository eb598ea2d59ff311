package implementation

import (
	"context"
	"errors"

	"support-chat-be/internal/entity"
	"support-chat-be/internal/model"
	"support-chat-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AiConfigRepositoryImpl struct {
	db *gorm.DB
}

func NewAiConfigRepository(db *gorm.DB) contract.AiConfigRepository {
	return &AiConfigRepositoryImpl{db: db}
}

func (r *AiConfigRepositoryImpl) FindActive(ctx context.Context) (*entity.AiConfiguration, error) {
	var m model.AiConfiguration
	err := r.db.WithContext(ctx).Where("is_active = ?", true).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entity.AiConfiguration{
		Id:          m.Id,
		Provider:    m.Provider,
		Model:       m.Model,
		Temperature: m.Temperature,
		ApiKey:      m.ApiKey,
		IsActive:    m.IsActive,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}, nil
}

func (r *AiConfigRepositoryImpl) Upsert(ctx context.Context, cfg *entity.AiConfiguration) error {
	if cfg.Id == uuid.Nil {
		cfg.Id = uuid.New()
	}
	m := &model.AiConfiguration{
		Id:          cfg.Id,
		Provider:    cfg.Provider,
		Model:       cfg.Model,
		Temperature: cfg.Temperature,
		ApiKey:      cfg.ApiKey,
		IsActive:    cfg.IsActive,
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if cfg.IsActive {
			// Only one active configuration at a time
			if err := tx.Model(&model.AiConfiguration{}).
				Where("id <> ?", cfg.Id).
				Update("is_active", false).Error; err != nil {
				return err
			}
		}
		return tx.Save(m).Error
	})
}
