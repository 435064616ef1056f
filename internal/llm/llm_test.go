package llm

import (
	"context"
	"testing"
)

func TestNewProviderDefaultsToMock(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("OLLAMA_HOST", "")

	provider := NewProvider(context.Background())
	if provider.Name() != "mock" {
		t.Fatalf("unconfigured environment should resolve the mock provider, got %q", provider.Name())
	}
}

func TestNewProviderPrefersOpenAI(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("GEMINI_API_KEY", "g-test")
	t.Setenv("OLLAMA_HOST", "http://localhost:11434")

	provider := NewProvider(context.Background())
	if provider.Name() != "openai" {
		t.Fatalf("OpenAI should win the priority order, got %q", provider.Name())
	}
	if len(provider.Models()) == 0 {
		t.Fatal("provider must expose a model variant chain")
	}
}
