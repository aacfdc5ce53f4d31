// Package ollama asks a local Ollama server to describe log patterns.
//
// The package keeps its own message types so it does not import the
// parent llm package; llm converts between the two.
package ollama

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ollama/ollama/api"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "llama3.2"

// latestTag is the tag Ollama lists for models pulled without one.
const latestTag = "latest"

// requestTimeout bounds one request when the host is configured
// explicitly. A pattern description is short, so this is generous.
const requestTimeout = 2 * time.Minute

var (
	// ErrProviderUnavailable is returned when the server cannot be reached
	// or answers with an error.
	ErrProviderUnavailable = errors.New("ollama server is not reachable")

	// ErrModelNotFound is returned when the server does not have the model.
	ErrModelNotFound = errors.New("model is not pulled")

	// ErrContextCanceled is returned when the explain run was interrupted.
	ErrContextCanceled = errors.New("explain was canceled")

	// ErrEmptyReply is returned when the model answers with no text.
	ErrEmptyReply = errors.New("model returned an empty explanation")
)

// Config selects the server and the default model.
type Config struct {
	// Host is the API endpoint, e.g. "http://localhost:11434". Empty uses
	// OLLAMA_HOST or the client default.
	Host string

	// Model is used when a request does not name one.
	Model string
}

// Message is one chat turn.
type Message struct {
	Role    string
	Content string
}

// ChatOptions overrides request settings.
type ChatOptions struct {
	Model       string
	Temperature float32
	MaxTokens   int // num_predict; 0 keeps the server default
}

// Response is a complete, non-streamed answer.
type Response struct {
	Content      string
	Model        string
	TokensPrompt int
	TokensTotal  int
}

// Provider sends explain requests to one Ollama server.
type Provider struct {
	client *api.Client
	model  string
	logger *slog.Logger
}

// New creates a Provider. It does not contact the server.
func New(cfg Config, logger *slog.Logger) (*Provider, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	client, err := newClient(cfg.Host)
	if err != nil {
		return nil, err
	}

	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}

	logger.Debug("ollama provider ready", "host", cfg.Host, "model", model)

	return &Provider{
		client: client,
		model:  model,
		logger: logger,
	}, nil
}

func newClient(host string) (*api.Client, error) {
	if host == "" {
		client, err := api.ClientFromEnvironment()
		if err != nil {
			return nil, fmt.Errorf("%w: reading OLLAMA_HOST: %v", ErrProviderUnavailable, err)
		}
		return client, nil
	}

	u, err := url.Parse(host)
	if err != nil {
		return nil, fmt.Errorf("invalid ollama host %q: %w", host, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid ollama host %q: want scheme://host[:port]", host)
	}

	return api.NewClient(u, &http.Client{Timeout: requestTimeout}), nil
}

// Model returns the model used when a request does not name one.
func (p *Provider) Model() string {
	return p.model
}

// Chat sends messages and waits for the whole answer. Surrounding
// whitespace is trimmed from the reply.
func (p *Provider) Chat(ctx context.Context, messages []Message, opts *ChatOptions) (*Response, error) {
	if len(messages) == 0 {
		return nil, errors.New("ollama: no messages to send")
	}

	req := p.chatRequest(messages, opts)
	start := time.Now()

	var reply api.ChatResponse
	err := p.client.Chat(ctx, req, func(r api.ChatResponse) error {
		reply = r
		return nil
	})
	if err != nil {
		return nil, p.classify("chat", req.Model, err)
	}

	content := strings.TrimSpace(reply.Message.Content)
	if content == "" {
		return nil, fmt.Errorf("%w (model %s)", ErrEmptyReply, req.Model)
	}

	model := reply.Model
	if model == "" {
		model = req.Model
	}

	p.logger.Debug("pattern explained",
		"model", model,
		"prompt_tokens", reply.PromptEvalCount,
		"reply_tokens", reply.EvalCount,
		"elapsed", time.Since(start))

	return &Response{
		Content:      content,
		Model:        model,
		TokensPrompt: reply.PromptEvalCount,
		TokensTotal:  reply.PromptEvalCount + reply.EvalCount,
	}, nil
}

func (p *Provider) chatRequest(messages []Message, opts *ChatOptions) *api.ChatRequest {
	model := p.model
	options := map[string]any{"temperature": float32(0)}
	if opts != nil {
		if opts.Model != "" {
			model = opts.Model
		}
		options["temperature"] = opts.Temperature
		if opts.MaxTokens > 0 {
			options["num_predict"] = opts.MaxTokens
		}
	}

	turns := make([]api.Message, len(messages))
	for i, m := range messages {
		turns[i] = api.Message{Role: m.Role, Content: m.Content}
	}

	stream := false
	return &api.ChatRequest{
		Model:    model,
		Messages: turns,
		Options:  options,
		Stream:   &stream,
	}
}

// Heartbeat returns nil when the server answers.
func (p *Provider) Heartbeat(ctx context.Context) error {
	if err := p.client.Heartbeat(ctx); err != nil {
		return p.classify("heartbeat", "", err)
	}
	return nil
}

// ModelAvailable reports whether the server has model. Empty means the
// provider's default. A name without a tag matches the "latest" tag.
func (p *Provider) ModelAvailable(ctx context.Context, model string) (bool, error) {
	if model == "" {
		model = p.model
	}

	list, err := p.client.List(ctx)
	if err != nil {
		return false, p.classify("list models", "", err)
	}

	want := withTag(model)
	for _, m := range list.Models {
		if withTag(m.Name) == want || withTag(m.Model) == want {
			return true, nil
		}
	}

	p.logger.Debug("model not pulled", "model", model, "pulled", len(list.Models))
	return false, nil
}

// classify maps a client error onto the package sentinels. A 404 only
// means a missing model for requests that name one.
func (p *Provider) classify(op, model string, err error) error {
	p.logger.Error("ollama request failed", "op", op, "model", model, "error", err)

	var status api.StatusError
	switch {
	case errors.Is(err, context.Canceled):
		return fmt.Errorf("%w: %s: %v", ErrContextCanceled, op, err)
	case model != "" && errors.As(err, &status) && status.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrModelNotFound, model)
	default:
		return fmt.Errorf("%w: %s: %v", ErrProviderUnavailable, op, err)
	}
}

// withTag returns name with the implicit "latest" tag added when it has
// none. A registry port ("host:5000/model") is not a tag.
func withTag(name string) string {
	if name == "" {
		return ""
	}
	base := name[strings.LastIndex(name, "/")+1:]
	if strings.Contains(base, ":") {
		return name
	}
	return name + ":" + latestTag
}
