package providers

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"

	"github.com/tenderworks/tenderd/internal/common"
)

var ollamaModels = []string{"llama3.1", "mistral"}

// OllamaProvider calls a local Ollama server through langchaingo.
type OllamaProvider struct {
	llm    *ollama.LLM
	models []string
}

// NewOllamaProvider connects to the Ollama server at serverURL. OLLAMA_MODEL
// overrides the first variant tried.
func NewOllamaProvider(serverURL string) (*OllamaProvider, error) {
	models := append([]string(nil), ollamaModels...)
	if preferred := strings.TrimSpace(os.Getenv("OLLAMA_MODEL")); preferred != "" {
		models = append([]string{preferred}, models...)
	}
	llm, err := ollama.New(ollama.WithServerURL(serverURL), ollama.WithModel(models[0]))
	if err != nil {
		return nil, fmt.Errorf("create ollama client: %w", err)
	}
	logger := common.Logger()
	logger.Info("llm: Ollama provider configured", "server", serverURL, "models", strings.Join(models, ","))
	return &OllamaProvider{llm: llm, models: models}, nil
}

func (o *OllamaProvider) Chat(ctx context.Context, model string, messages []Message) (string, error) {
	if o.llm == nil {
		return "", fmt.Errorf("nil ollama client")
	}
	logger := common.Logger()
	logger.Debug("llm: sending ollama generation request", "model", model, "messages", len(messages))
	return llms.GenerateFromSinglePrompt(ctx, o.llm, JoinMessages(messages), llms.WithModel(model))
}

func (o *OllamaProvider) Models() []string {
	return append([]string(nil), o.models...)
}

func (o *OllamaProvider) Name() string {
	return "ollama"
}
