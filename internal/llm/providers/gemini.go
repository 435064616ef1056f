package providers

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/tenderworks/tenderd/internal/common"
)

var geminiModels = []string{"gemini-1.5-pro", "gemini-1.5-flash"}

// GeminiProvider calls the Gemini API through the google genai SDK.
type GeminiProvider struct {
	client *genai.Client
	models []string
}

// NewGeminiProvider constructs a Gemini-backed provider from an API key.
func NewGeminiProvider(ctx context.Context, apiKey string) (*GeminiProvider, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	logger := common.Logger()
	logger.Info("llm: Gemini provider configured", "models", strings.Join(geminiModels, ","))
	return &GeminiProvider{client: client, models: geminiModels}, nil
}

func (g *GeminiProvider) Chat(ctx context.Context, model string, messages []Message) (string, error) {
	if g.client == nil {
		return "", fmt.Errorf("nil genai client")
	}
	logger := common.Logger()
	logger.Debug("llm: sending generate content request", "model", model, "messages", len(messages))
	resp, err := g.client.Models.GenerateContent(ctx, model, genai.Text(JoinMessages(messages)), nil)
	if err != nil {
		return "", err
	}
	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("empty response")
	}
	return text, nil
}

func (g *GeminiProvider) Models() []string {
	return append([]string(nil), g.models...)
}

func (g *GeminiProvider) Name() string {
	return "gemini"
}
