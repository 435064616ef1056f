package analysis

import (
	"context"
	"strings"
	"testing"
)

func TestGenerateInsightsWithoutDocuments(t *testing.T) {
	st := newFakeStore()
	engine, provider := scriptedEngine(st, "should never be used")

	got := engine.GenerateInsights(context.Background(), "t1")
	if len(got.RecommendedActions) == 0 || !strings.Contains(got.RecommendedActions[0], "Upload") {
		t.Fatalf("degraded report should tell the user to upload documents: %+v", got)
	}
	if got.Priority != "low" {
		t.Fatalf("degraded report priority should be low: %+v", got)
	}
	if provider.calls != 0 {
		t.Fatalf("no backend call expected without document text, got %d", provider.calls)
	}
	patch, ok := st.tenderPatches["t1"]
	if !ok || patch.AutoInsights == nil {
		t.Fatal("degraded report not persisted on the tender")
	}
}

func TestGenerateInsightsParsesModelReport(t *testing.T) {
	st := newFakeStore()
	st.docs = append(st.docs, storeDoc("d1", "t1", "project",
		"The tender covers five-year maintenance of the regional road network with strict SLAs."))
	engine, _ := scriptedEngine(st,
		`{"strengths": ["long contract term"], "risks": ["strict SLAs"], "recommended_actions": ["clarify penalties"], "success_probability": 140, "priority": "HIGH"}`)

	got := engine.GenerateInsights(context.Background(), "t1")
	if got.Fallback {
		t.Fatalf("live report flagged fallback: %+v", got)
	}
	if got.SuccessProbability != 100 {
		t.Fatalf("success probability not clamped: %+v", got)
	}
	if got.Priority != "high" {
		t.Fatalf("priority not normalized: %q", got.Priority)
	}
	patch, ok := st.tenderPatches["t1"]
	if !ok || patch.AutoInsights == nil || !strings.Contains(*patch.AutoInsights, "strict SLAs") {
		t.Fatalf("report not persisted: %+v", patch)
	}
}

func TestGenerateInsightsFallbackReport(t *testing.T) {
	st := newFakeStore()
	st.docs = append(st.docs, storeDoc("d1", "t1", "project",
		"A readable tender document long enough to build a prompt from."))
	engine := mockEngine(st)

	got := engine.GenerateInsights(context.Background(), "t1")
	if !got.Fallback {
		t.Fatalf("mock backend should flag the report as fallback: %+v", got)
	}
	if got.SuccessProbability != defaultWinProb || got.Priority != "medium" {
		t.Fatalf("fallback report defaults wrong: %+v", got)
	}
}

func TestNormalizePriority(t *testing.T) {
	cases := map[string]string{
		"low": "low", " HIGH ": "high", "medium": "medium", "urgent": "medium", "": "medium",
	}
	for in, want := range cases {
		if got := normalizePriority(in); got != want {
			t.Fatalf("normalizePriority(%q) = %q, want %q", in, got, want)
		}
	}
}
