package analysis

import (
	"context"
	"fmt"
	"strings"

	"github.com/tenderworks/tenderd/internal/common"
	"github.com/tenderworks/tenderd/internal/store"
)

const insightDocExcerpt = 2000

const insightSystemPrompt = "You synthesize tender-level insights from document excerpts. " +
	"Return one JSON object with the keys strengths (array), risks (array), recommended_actions (array), " +
	"success_probability (0-100), and priority (low, medium, or high). " +
	"Return the JSON object and nothing else."

// GenerateInsights synthesizes strengths, risks, and recommended actions
// across every document under a tender and stores the serialized report on
// the tender record. With no readable documents it degrades to an actionable
// "upload documents" report without calling the backend.
func (e *Engine) GenerateInsights(ctx context.Context, tenderID string) InsightReport {
	logger := common.Logger()
	docs, err := e.store.FindDocuments(ctx, store.DocumentFilter{TenderID: tenderID})
	if err != nil {
		logger.Warn("analysis: insight document lookup failed", "tender", tenderID, "error", err)
		docs = nil
	}
	var builder strings.Builder
	count := 0
	for _, doc := range docs {
		if strings.TrimSpace(doc.Content) == "" {
			continue
		}
		fmt.Fprintf(&builder, "\n--- %s ---\n%s\n", doc.Filename, excerpt(doc.Content, insightDocExcerpt))
		count++
	}
	if count == 0 {
		report := InsightReport{
			Strengths:          []string{},
			Risks:              []string{"No document text is available to assess this tender."},
			RecommendedActions: []string{"Upload the tender documents to enable insight generation."},
			Priority:           "low",
		}
		e.persistTender(ctx, tenderID, store.TenderPatch{AutoInsights: store.StringPtr(serialize(report))})
		return report
	}

	generated := e.client.Generate(ctx, "Analyze these tender documents:\n"+builder.String(), insightSystemPrompt)
	defaults := InsightReport{
		Strengths:          []string{},
		Risks:              []string{},
		RecommendedActions: []string{"Review the tender documents manually; automated insight generation was unavailable."},
		SuccessProbability: defaultWinProb,
		Priority:           "medium",
	}
	report, ok := parseStructured(generated.Text, defaults)
	if !ok || generated.Fallback {
		defaults.Fallback = true
		report = defaults
	}
	report.SuccessProbability = clampPercent(report.SuccessProbability)
	report.Priority = normalizePriority(report.Priority)

	logger.Info("analysis: tender insights generated",
		"tender", tenderID, "documents", count, "fallback", report.Fallback)
	e.persistTender(ctx, tenderID, store.TenderPatch{AutoInsights: store.StringPtr(serialize(report))})
	return report
}

func normalizePriority(priority string) string {
	switch strings.ToLower(strings.TrimSpace(priority)) {
	case "low":
		return "low"
	case "high":
		return "high"
	default:
		return "medium"
	}
}
