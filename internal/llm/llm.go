package llm

import (
	"context"
	"os"
	"strings"
	"time"

	openai "github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"

	"github.com/tenderworks/tenderd/internal/common"
	"github.com/tenderworks/tenderd/internal/llm/providers"
)

type Message = providers.Message

type Provider = providers.Provider

// NewProvider resolves the generation backend from the environment. Backends
// are tried in a fixed priority order: OpenAI, Gemini, Ollama. When none is
// configured, or construction fails for every candidate, the deterministic
// mock provider is returned so callers always have a responder.
func NewProvider(ctx context.Context) Provider {
	logger := common.Logger()
	if apiKey := strings.TrimSpace(os.Getenv("OPENAI_API_KEY")); apiKey != "" {
		opts := []option.RequestOption{option.WithAPIKey(apiKey)}
		if timeoutStr := strings.TrimSpace(os.Getenv("OPENAI_HTTP_TIMEOUT")); timeoutStr != "" {
			timeout, err := time.ParseDuration(timeoutStr)
			if err != nil {
				logger.Warn("llm: invalid OPENAI_HTTP_TIMEOUT, using default", "value", timeoutStr, "error", err)
			} else {
				opts = append(opts, option.WithRequestTimeout(timeout))
			}
		}
		if endpoint := strings.TrimSpace(os.Getenv("OPENAI_ENDPOINT")); endpoint != "" {
			logger.Info("llm: configuring OpenAI client with custom endpoint", "endpoint", endpoint)
			opts = append(opts, option.WithBaseURL(endpoint))
		}
		logger.Info("llm: OpenAI provider selected")
		return providers.NewOpenAIProvider(openai.NewClient(opts...))
	}
	if apiKey := strings.TrimSpace(os.Getenv("GEMINI_API_KEY")); apiKey != "" {
		provider, err := providers.NewGeminiProvider(ctx, apiKey)
		if err != nil {
			logger.Warn("llm: Gemini provider unavailable", "error", err)
		} else {
			logger.Info("llm: Gemini provider selected")
			return provider
		}
	}
	if host := strings.TrimSpace(os.Getenv("OLLAMA_HOST")); host != "" {
		provider, err := providers.NewOllamaProvider(host)
		if err != nil {
			logger.Warn("llm: Ollama provider unavailable", "error", err)
		} else {
			logger.Info("llm: Ollama provider selected")
			return provider
		}
	}
	logger.Warn("llm: no backend configured; falling back to mock provider")
	return providers.NewMockProvider()
}
