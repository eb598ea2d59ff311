package llm

import (
	"context"
	"errors"
	"fmt"
)

// ErrNoProviders is returned when the chain has no members to try.
var ErrNoProviders = errors.New("llm chain: no providers configured")

// Chain tries capability-equivalent providers in order; the first success
// wins. It replaces hand-written nested fallback at every call site.
type Chain struct {
	providers []Provider
}

func NewChain(providers ...Provider) *Chain {
	return &Chain{providers: providers}
}

// Providers returns the chain members in try order.
func (c *Chain) Providers() []Provider {
	return c.providers
}

// Chat runs the history through each provider until one answers. The last
// error is returned when the chain is exhausted.
func (c *Chain) Chat(ctx context.Context, history []Message, opts ...Option) (*Result, error) {
	if len(c.providers) == 0 {
		return nil, ErrNoProviders
	}

	var lastErr error
	for _, p := range c.providers {
		result, err := p.Chat(ctx, history, opts...)
		if err == nil {
			return result, nil
		}
		lastErr = fmt.Errorf("%s: %w", p.Name(), err)
	}
	return nil, lastErr
}
