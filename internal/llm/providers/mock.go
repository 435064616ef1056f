package providers

import (
	"context"
	"strings"
)

const configHint = "Configure OPENAI_API_KEY, GEMINI_API_KEY, or OLLAMA_HOST to enable live analysis."

// MockProvider is the deterministic responder used when no backend is
// configured. It answers from a small set of canned sentences keyed on
// prompt keywords, so every operation still resolves to a usable record.
type MockProvider struct{}

func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

func (m *MockProvider) Chat(ctx context.Context, model string, messages []Message) (string, error) {
	return CannedResponse(JoinMessages(messages)), nil
}

func (m *MockProvider) Models() []string {
	return []string{"mock"}
}

func (m *MockProvider) Name() string {
	return "mock"
}

// CannedResponse selects the deterministic fallback sentence for a prompt by
// simple keyword matching. The same text is returned for the same prompt
// category on every call.
func CannedResponse(prompt string) string {
	lower := strings.ToLower(prompt)
	switch {
	case strings.Contains(lower, "requirement"):
		return "Key requirements typically include technical specifications, delivery timelines, and compliance obligations stated in the tender documents. " + configHint
	case strings.Contains(lower, "compliance"):
		return "Compliance items usually cover certifications, standards, and regulatory obligations named in the tender documents. " + configHint
	case strings.Contains(lower, "risk"):
		return "Common risks include tight deadlines, penalty clauses, and unclear scope definitions; review the tender documents for the specifics. " + configHint
	case strings.Contains(lower, "deadline"), strings.Contains(lower, "date"):
		return "Submission deadlines and milestone dates are stated in the tender notice; verify them directly in the source documents. " + configHint
	default:
		return "Review the uploaded tender documents for the details relevant to this question. " + configHint
	}
}
