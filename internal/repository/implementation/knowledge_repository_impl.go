package implementation

import (
	"context"

	"support-chat-be/internal/entity"
	"support-chat-be/internal/model"
	"support-chat-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type KnowledgeRepositoryImpl struct {
	db *gorm.DB
}

func NewKnowledgeRepository(db *gorm.DB) contract.KnowledgeRepository {
	return &KnowledgeRepositoryImpl{db: db}
}

func (r *KnowledgeRepositoryImpl) Create(ctx context.Context, entry *entity.KnowledgeEntry) error {
	if entry.Id == uuid.Nil {
		entry.Id = uuid.New()
	}
	m := &model.KnowledgeEntry{
		Id:       entry.Id,
		Topic:    entry.Topic,
		Content:  entry.Content,
		Source:   entry.Source,
		Language: entry.Language,
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	entry.CreatedAt = m.CreatedAt
	return nil
}

func (r *KnowledgeRepositoryImpl) FindByTopic(ctx context.Context, topic string, language string) ([]*entity.KnowledgeEntry, error) {
	var models []*model.KnowledgeEntry
	err := r.db.WithContext(ctx).
		Where("topic ILIKE ?", "%"+topic+"%").
		Where("language = ?", language).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	entries := make([]*entity.KnowledgeEntry, len(models))
	for i, m := range models {
		entries[i] = &entity.KnowledgeEntry{
			Id:        m.Id,
			Topic:     m.Topic,
			Content:   m.Content,
			Source:    m.Source,
			Language:  m.Language,
			CreatedAt: m.CreatedAt,
		}
	}
	return entries, nil
}

func (r *KnowledgeRepositoryImpl) ListTopics(ctx context.Context, language string) ([]string, error) {
	var topics []string
	err := r.db.WithContext(ctx).
		Model(&model.KnowledgeEntry{}).
		Where("language = ?", language).
		Distinct("topic").
		Order("topic").
		Pluck("topic", &topics).Error
	if err != nil {
		return nil, err
	}
	return topics, nil
}
