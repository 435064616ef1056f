package providers

import (
	"context"
	"fmt"
	"os"
	"strings"

	openai "github.com/openai/openai-go/v2"

	"github.com/tenderworks/tenderd/internal/common"
)

var openAIModels = []string{"gpt-4o", "gpt-4o-mini", "gpt-3.5-turbo"}

// OpenAIProvider calls the OpenAI chat completion API.
type OpenAIProvider struct {
	client openai.Client
	models []string
}

// NewOpenAIProvider wraps an already-configured OpenAI client. The variant
// order can be overridden with OPENAI_CHAT_MODEL, which is then tried first.
func NewOpenAIProvider(client openai.Client) *OpenAIProvider {
	models := append([]string(nil), openAIModels...)
	if preferred := strings.TrimSpace(os.Getenv("OPENAI_CHAT_MODEL")); preferred != "" {
		models = append([]string{preferred}, models...)
	}
	logger := common.Logger()
	logger.Info("llm: OpenAI provider configured", "models", strings.Join(models, ","))
	return &OpenAIProvider{client: client, models: models}
}

func (o *OpenAIProvider) Chat(ctx context.Context, model string, messages []Message) (string, error) {
	logger := common.Logger()
	params := openai.ChatCompletionNewParams{Model: openai.ChatModel(model)}
	for _, msg := range messages {
		switch strings.ToLower(msg.Role) {
		case "system":
			params.Messages = append(params.Messages, openai.SystemMessage(msg.Content))
		case "assistant":
			params.Messages = append(params.Messages, openai.AssistantMessage(msg.Content))
		default:
			params.Messages = append(params.Messages, openai.UserMessage(msg.Content))
		}
	}
	logger.Debug("llm: sending chat completion request", "model", model, "messages", len(messages))
	resp, err := o.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices returned")
	}
	return resp.Choices[0].Message.Content, nil
}

func (o *OpenAIProvider) Models() []string {
	return append([]string(nil), o.models...)
}

func (o *OpenAIProvider) Name() string {
	return "openai"
}
