package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	name   string
	result *Result
	err    error
	calls  int
}

func (f *fakeProvider) Name() string { return f.name }

func (f *fakeProvider) Chat(ctx context.Context, history []Message, opts ...Option) (*Result, error) {
	f.calls++
	return f.result, f.err
}

func TestChainFirstSuccessWins(t *testing.T) {
	first := &fakeProvider{name: "openai", result: &Result{Content: "primary answer"}}
	second := &fakeProvider{name: "anthropic", result: &Result{Content: "fallback answer"}}

	chain := NewChain(first, second)
	res, err := chain.Chat(context.Background(), []Message{{Role: "user", Content: "hi"}})

	require.NoError(t, err)
	assert.Equal(t, "primary answer", res.Content)
	assert.Equal(t, 1, first.calls)
	assert.Zero(t, second.calls)
}

func TestChainFallsThroughOnError(t *testing.T) {
	first := &fakeProvider{name: "openai", err: errors.New("quota exceeded")}
	second := &fakeProvider{name: "anthropic", result: &Result{Content: "fallback answer"}}

	chain := NewChain(first, second)
	res, err := chain.Chat(context.Background(), nil)

	require.NoError(t, err)
	assert.Equal(t, "fallback answer", res.Content)
	assert.Equal(t, 1, first.calls)
	assert.Equal(t, 1, second.calls)
}

func TestChainExhaustedReturnsLastError(t *testing.T) {
	first := &fakeProvider{name: "openai", err: errors.New("auth failed")}
	second := &fakeProvider{name: "anthropic", err: errors.New("network down")}

	chain := NewChain(first, second)
	_, err := chain.Chat(context.Background(), nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "anthropic")
	assert.Contains(t, err.Error(), "network down")
}

func TestChainEmpty(t *testing.T) {
	_, err := NewChain().Chat(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNoProviders)
}

func TestApplyOptionsDefaults(t *testing.T) {
	opts := ApplyOptions()
	assert.InDelta(t, 0.3, opts.Temperature, 1e-9)

	opts = ApplyOptions(WithTemperature(0.7), WithModel("gpt-4o"), WithMaxTokens(2048))
	assert.InDelta(t, 0.7, opts.Temperature, 1e-9)
	assert.Equal(t, "gpt-4o", opts.Model)
	assert.Equal(t, 2048, opts.MaxTokens)
}
