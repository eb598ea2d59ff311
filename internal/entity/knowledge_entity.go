package entity

import (
	"time"

	"github.com/google/uuid"
)

// KnowledgeEntry stores an answer learned from an external-knowledge lookup so
// later queries on the same topic can be served from the corpus.
type KnowledgeEntry struct {
	Id        uuid.UUID
	Topic     string
	Content   string
	Source    string // e.g. "perplexity", "searx", "duckduckgo"
	Language  string
	CreatedAt time.Time
}
