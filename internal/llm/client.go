package llm

import (
	"context"
	"strings"
	"time"

	"github.com/tenderworks/tenderd/internal/common"
	"github.com/tenderworks/tenderd/internal/llm/providers"
)

const (
	// minReplyLength is the sanity threshold a sanitized reply must exceed
	// before a model variant's answer is accepted.
	minReplyLength = 10

	defaultCallTimeout = 60 * time.Second
)

// Result is the outcome of a generation request. Fallback marks replies
// produced by the deterministic responder instead of a live model, so the UI
// can hint that live configuration is missing.
type Result struct {
	Text     string `json:"text"`
	Model    string `json:"model"`
	Fallback bool   `json:"fallback"`
}

// Client wraps a Provider with the variant-fallback chain. Generate never
// returns an error: when every variant is exhausted, or no backend is
// configured, it degrades to the deterministic canned responder.
type Client struct {
	provider providers.Provider
	timeout  time.Duration
}

// Option customizes a Client.
type Option func(*Client)

// WithTimeout sets the per-variant call timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

func NewClient(provider providers.Provider, opts ...Option) *Client {
	c := &Client{provider: provider, timeout: defaultCallTimeout}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Provider exposes the wrapped backend.
func (c *Client) Provider() providers.Provider {
	if c == nil {
		return nil
	}
	return c.provider
}

// Generate runs the prompt through the backend's model variants in their
// fixed order, accepting the first sanitized reply longer than the sanity
// threshold. A supplied system prompt is sent ahead of the user prompt.
// Variant failures are logged and recovered; the final fallback is the
// keyword-matched canned response.
func (c *Client) Generate(ctx context.Context, prompt, systemPrompt string) Result {
	logger := common.Logger()
	if c == nil || c.provider == nil || c.provider.Name() == "mock" {
		return fallbackResult(prompt)
	}
	var messages []providers.Message
	if strings.TrimSpace(systemPrompt) != "" {
		messages = append(messages, providers.Message{Role: "system", Content: systemPrompt})
	}
	messages = append(messages, providers.Message{Role: "user", Content: prompt})
	for _, model := range c.provider.Models() {
		callCtx, cancel := context.WithTimeout(ctx, c.timeout)
		raw, err := c.provider.Chat(callCtx, model, messages)
		cancel()
		if err != nil {
			logger.Warn("llm: model variant failed", "provider", c.provider.Name(), "model", model, "error", err)
			continue
		}
		cleaned := Sanitize(raw)
		if len(cleaned) <= minReplyLength {
			logger.Warn("llm: model variant returned unusable reply", "provider", c.provider.Name(), "model", model, "length", len(cleaned))
			continue
		}
		logger.Debug("llm: generation succeeded", "provider", c.provider.Name(), "model", model)
		return Result{Text: cleaned, Model: model}
	}
	logger.Warn("llm: all model variants exhausted; using fallback responder", "provider", c.provider.Name())
	return fallbackResult(prompt)
}

func fallbackResult(prompt string) Result {
	return Result{Text: providers.CannedResponse(prompt), Model: "fallback", Fallback: true}
}
