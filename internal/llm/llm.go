// Package llm provides an abstraction layer for the language model used by
// the explain command.
//
// Example usage:
//
//	provider, err := llm.NewProvider(cfg, logger)
//	if err != nil {
//	    return err
//	}
//
//	resp, err := provider.Chat(ctx, []llm.Message{
//	    {Role: "system", Content: "You describe log patterns."},
//	    {Role: "user", Content: prompt},
//	}, &llm.ChatOptions{Temperature: 0})
package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/bimmerbailey/onediff/internal/config"
	"github.com/bimmerbailey/onediff/internal/llm/ollama"
)

// Provider defines the interface for LLM interactions.
type Provider interface {
	// Chat sends messages and returns a complete response.
	Chat(ctx context.Context, messages []Message, opts *ChatOptions) (*Response, error)

	// Heartbeat returns nil if the provider is reachable.
	Heartbeat(ctx context.Context) error

	// ModelAvailable reports whether model is ready for use.
	ModelAvailable(ctx context.Context, model string) (bool, error)
}

// Message represents a single message in a conversation.
type Message struct {
	// Role identifies the message sender: "system", "user", or "assistant"
	Role string

	// Content is the message text
	Content string
}

// ChatOptions configures chat behavior.
// All fields are optional; nil opts uses provider defaults.
type ChatOptions struct {
	Model       string
	Temperature float32
	MaxTokens   int // 0 = provider default
}

// Response represents a complete LLM response.
type Response struct {
	Content      string
	Model        string
	TokensPrompt int
	TokensTotal  int
}

// Common errors returned by LLM providers.
var (
	// ErrProviderUnavailable indicates the LLM provider is not reachable
	ErrProviderUnavailable = ollama.ErrProviderUnavailable

	// ErrModelNotFound indicates the requested model is not available
	ErrModelNotFound = ollama.ErrModelNotFound

	// ErrEmptyReply indicates the model answered without any text
	ErrEmptyReply = ollama.ErrEmptyReply

	// ErrContextCanceled indicates the operation was canceled via context
	ErrContextCanceled = ollama.ErrContextCanceled
)

// NewProvider creates an LLM provider based on the configuration.
func NewProvider(cfg *config.Config, logger *slog.Logger) (Provider, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	providerType := strings.ToLower(cfg.LLM.Provider)
	logger.Debug("creating llm provider", "type", providerType)

	switch providerType {
	case "ollama":
		p, err := ollama.New(ollama.Config{
			Host:  cfg.LLM.Ollama.Host,
			Model: cfg.LLM.Ollama.Model,
		}, logger)
		if err != nil {
			return nil, err
		}
		return &ollamaAdapter{provider: p}, nil

	case "":
		return nil, errors.New("llm provider not specified in configuration")

	default:
		return nil, fmt.Errorf("unknown llm provider: %s (supported: ollama)", providerType)
	}
}

// ollamaAdapter adapts ollama.Provider to the Provider interface.
type ollamaAdapter struct {
	provider *ollama.Provider
}

func (a *ollamaAdapter) Chat(ctx context.Context, messages []Message, opts *ChatOptions) (*Response, error) {
	ollamaMessages := make([]ollama.Message, len(messages))
	for i, msg := range messages {
		ollamaMessages[i] = ollama.Message{Role: msg.Role, Content: msg.Content}
	}

	var ollamaOpts *ollama.ChatOptions
	if opts != nil {
		ollamaOpts = &ollama.ChatOptions{
			Model:       opts.Model,
			Temperature: opts.Temperature,
			MaxTokens:   opts.MaxTokens,
		}
	}

	resp, err := a.provider.Chat(ctx, ollamaMessages, ollamaOpts)
	if err != nil {
		return nil, err
	}

	return &Response{
		Content:      resp.Content,
		Model:        resp.Model,
		TokensPrompt: resp.TokensPrompt,
		TokensTotal:  resp.TokensTotal,
	}, nil
}

func (a *ollamaAdapter) Heartbeat(ctx context.Context) error {
	return a.provider.Heartbeat(ctx)
}

func (a *ollamaAdapter) ModelAvailable(ctx context.Context, model string) (bool, error) {
	return a.provider.ModelAvailable(ctx, model)
}
