// Package llm defines the provider-agnostic contract for chat-completion
// backends and the fallback chain that sequences them.
package llm

import (
	"context"
)

// Message represents a chat message in a provider-agnostic format
type Message struct {
	Role    string // "user", "assistant", "system"
	Content string
}

// Usage carries token counts for usage logging.
type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// Result is one completed generation.
type Result struct {
	Content string
	Model   string
	Usage   Usage
}

// Option allows for optional parameters like Temperature, MaxTokens, etc.
type Option func(*Options)

type Options struct {
	Temperature float64
	MaxTokens   int
	Model       string // Override default model
}

func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = temp
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

func WithMaxTokens(n int) Option {
	return func(o *Options) {
		o.MaxTokens = n
	}
}

// ApplyOptions folds option funcs over the defaults.
func ApplyOptions(opts ...Option) *Options {
	options := &Options{
		Temperature: 0.3,
	}
	for _, opt := range opts {
		opt(options)
	}
	return options
}

// Provider defines the contract for any LLM backend
type Provider interface {
	// Name identifies the provider family ("openai", "anthropic").
	Name() string

	// Chat sends a chat history to the model and returns the response with
	// token usage.
	Chat(ctx context.Context, history []Message, options ...Option) (*Result, error)
}
