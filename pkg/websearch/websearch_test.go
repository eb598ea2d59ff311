package websearch

import (
	"context"
	"errors"
	"testing"

	"support-chat-be/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSearcher struct {
	name    string
	content string
	err     error
	calls   int
}

func (f *fakeSearcher) Name() string { return f.name }

func (f *fakeSearcher) Search(ctx context.Context, query, language string) (string, error) {
	f.calls++
	return f.content, f.err
}

func TestChainFirstNonEmptyWins(t *testing.T) {
	first := &fakeSearcher{name: "perplexity", content: "resposta externa"}
	second := &fakeSearcher{name: "searx", content: "não deveria ser usado"}

	chain := NewChain(logger.NewNopLogger(), first, second)
	res, err := chain.Search(context.Background(), "consulta", "pt")

	require.NoError(t, err)
	assert.Equal(t, "resposta externa", res.Content)
	assert.Equal(t, "perplexity", res.Source)
	assert.Zero(t, second.calls)
}

func TestChainSkipsFailingAndEmptyBackends(t *testing.T) {
	failing := &fakeSearcher{name: "perplexity", err: errors.New("401 unauthorized")}
	empty := &fakeSearcher{name: "searx", content: ""}
	last := &fakeSearcher{name: "duckduckgo", content: "resumo factual"}

	chain := NewChain(logger.NewNopLogger(), failing, empty, last)
	res, err := chain.Search(context.Background(), "consulta", "pt")

	require.NoError(t, err)
	assert.Equal(t, "duckduckgo", res.Source)
	assert.Equal(t, 1, failing.calls)
	assert.Equal(t, 1, empty.calls)
}

func TestChainExhausted(t *testing.T) {
	failing := &fakeSearcher{name: "perplexity", err: errors.New("network down")}

	chain := NewChain(logger.NewNopLogger(), failing)
	_, err := chain.Search(context.Background(), "consulta", "pt")
	require.Error(t, err)

	empty := &fakeSearcher{name: "searx", content: ""}
	chain = NewChain(logger.NewNopLogger(), empty)
	_, err = chain.Search(context.Background(), "consulta", "pt")
	require.Error(t, err)

	_, err = NewChain(logger.NewNopLogger()).Search(context.Background(), "consulta", "pt")
	require.Error(t, err)
}
