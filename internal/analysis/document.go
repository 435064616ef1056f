package analysis

import (
	"context"
	"fmt"

	"github.com/tenderworks/tenderd/internal/common"
	"github.com/tenderworks/tenderd/internal/patterns"
	"github.com/tenderworks/tenderd/internal/store"
)

const summaryExcerpt = 4000

const analystSystemPrompt = "You are a procurement analyst. " +
	"Summarize tender documents factually in three to five plain sentences. " +
	"Do not invent facts that are not in the text."

// AnalyzeDocument extracts requirement, compliance, risk, and deadline
// sentences with the deterministic pattern rules and asks the model for a
// narrative summary. The pattern output is authoritative for the list
// fields; list caps are enforced by the rule library. When docID is
// non-empty the serialized result is written back onto the document.
func (e *Engine) AnalyzeDocument(ctx context.Context, docID, filename, text string) AnalysisResult {
	logger := common.Logger()
	extracted := patterns.ExtractAll(text)
	result := AnalysisResult{
		Requirements: extracted[patterns.Requirements],
		Compliance:   extracted[patterns.Compliance],
		Risks:        extracted[patterns.Risks],
		Deadlines:    extracted[patterns.Deadlines],
	}

	prompt := fmt.Sprintf("Summarize the tender document %q:\n\n%s", filename, excerpt(text, summaryExcerpt))
	generated := e.client.Generate(ctx, prompt, analystSystemPrompt)
	result.Summary = generated.Text
	result.Fallback = generated.Fallback

	logger.Info("analysis: document analyzed",
		"doc", docID,
		"requirements", len(result.Requirements),
		"risks", len(result.Risks),
		"fallback", result.Fallback)

	e.persistDocument(ctx, docID, store.DocumentPatch{AutoAnalysis: store.StringPtr(serialize(result))})
	return result
}
