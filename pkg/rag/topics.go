package rag

import (
	"context"
	"sync"
	"time"

	"support-chat-be/internal/repository/contract"

	gocache "github.com/patrickmn/go-cache"
)

const topicsCacheKey = "topics"

// TopicCache holds the known external-knowledge topics per language. It is
// populated once from the knowledge store on first read and appended to as
// new entries are persisted, so repeated lookups never hit the database.
type TopicCache struct {
	knowledge contract.KnowledgeRepository
	cache     *gocache.Cache

	mu     sync.Mutex
	loaded map[string]bool
}

func NewTopicCache(knowledge contract.KnowledgeRepository) *TopicCache {
	return &TopicCache{
		knowledge: knowledge,
		cache:     gocache.New(gocache.NoExpiration, 10*time.Minute),
		loaded:    map[string]bool{},
	}
}

// Topics returns the known topics for a language, loading them from the
// store on the first call.
func (t *TopicCache) Topics(ctx context.Context, language string) ([]string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	key := topicsCacheKey + ":" + language
	if t.loaded[language] {
		if cached, ok := t.cache.Get(key); ok {
			return cached.([]string), nil
		}
		return nil, nil
	}

	topics, err := t.knowledge.ListTopics(ctx, language)
	if err != nil {
		return nil, err
	}

	t.cache.Set(key, topics, gocache.NoExpiration)
	t.loaded[language] = true
	return topics, nil
}

// Append records a newly persisted topic without invalidating the cache.
func (t *TopicCache) Append(language, topic string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	key := topicsCacheKey + ":" + language
	var topics []string
	if cached, ok := t.cache.Get(key); ok {
		topics = cached.([]string)
	}
	for _, existing := range topics {
		if existing == topic {
			return
		}
	}
	topics = append(topics, topic)
	t.cache.Set(key, topics, gocache.NoExpiration)
	t.loaded[language] = true
}
