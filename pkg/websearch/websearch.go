// Package websearch provides the external-knowledge lookup used when the
// corpus cannot answer a question. Backends are capability-equivalent
// adapters tried in order; the first non-empty result wins.
package websearch

import (
	"context"
	"fmt"

	"support-chat-be/internal/pkg/logger"
)

// Searcher answers a free-text query with a short factual summary.
type Searcher interface {
	Name() string
	Search(ctx context.Context, query, language string) (string, error)
}

// Result carries the summary and the backend that produced it.
type Result struct {
	Content string
	Source  string
}

// Chain sequences searchers with a first-success-wins policy.
type Chain struct {
	searchers []Searcher
	logger    logger.ILogger
}

func NewChain(log logger.ILogger, searchers ...Searcher) *Chain {
	return &Chain{
		searchers: searchers,
		logger:    log,
	}
}

// Search tries each backend in order. Backend failures are logged and the
// next one is tried; an exhausted chain returns the last error.
func (c *Chain) Search(ctx context.Context, query, language string) (*Result, error) {
	if len(c.searchers) == 0 {
		return nil, fmt.Errorf("websearch chain: no backends configured")
	}

	var lastErr error
	for _, s := range c.searchers {
		content, err := s.Search(ctx, query, language)
		if err != nil {
			c.logger.Warn("websearch", "backend failed, trying next", map[string]interface{}{
				"backend": s.Name(),
				"error":   err.Error(),
			})
			lastErr = err
			continue
		}
		if content == "" {
			continue
		}
		return &Result{Content: content, Source: s.Name()}, nil
	}

	if lastErr != nil {
		return nil, lastErr
	}
	return nil, fmt.Errorf("websearch chain: no backend returned content")
}
