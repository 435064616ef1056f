package analysis

import (
	"context"
	"fmt"
	"strings"

	"github.com/tenderworks/tenderd/internal/common"
	"github.com/tenderworks/tenderd/internal/patterns"
	"github.com/tenderworks/tenderd/internal/store"
)

const (
	capabilityDocExcerpt = 1500
	maxCapabilityDocs    = 5
	defaultWinProb       = 50
)

const capabilitySystemPrompt = "You assess how well a company's capability documents cover tender requirements. " +
	"Return one JSON object with the keys winning_probability (0-100), capability_score (0-100), " +
	"matched_requirements (integer), strengths (array), weaknesses (array), and recommendations (array). " +
	"Return the JSON object and nothing else."

// ScoreCapability compares the tender's requirements against the company's
// capability documents. With zero company-category documents it
// short-circuits to a deterministic zero-probability result whose
// recommendations instruct the user to upload supporting material — a
// "cannot assess" terminal state, produced without a backend call. All
// scores are clamped to [0,100] and the match count never exceeds the
// requirement count.
func (e *Engine) ScoreCapability(ctx context.Context, tenderID string, requirements []string) CapabilityAssessment {
	logger := common.Logger()
	if len(requirements) == 0 {
		requirements = e.tenderRequirements(ctx, tenderID)
	}
	companyDocs, err := e.store.FindDocuments(ctx, store.DocumentFilter{
		Categories: []string{store.CategoryCompany, store.CategoryGlobal},
		Limit:      maxCapabilityDocs,
	})
	if err != nil {
		logger.Warn("analysis: company document lookup failed", "error", err)
		companyDocs = nil
	}
	if len(companyDocs) == 0 {
		logger.Info("analysis: capability assessment without company documents", "tender", tenderID)
		return CapabilityAssessment{
			TotalRequirements: len(requirements),
			Weaknesses:        []string{"No company capability documents are available for comparison."},
			Recommendations: []string{
				"Upload company capability and reference documents to enable the assessment.",
			},
		}
	}

	var builder strings.Builder
	builder.WriteString("Tender requirements:\n")
	for i, req := range requirements {
		fmt.Fprintf(&builder, "%d. %s\n", i+1, req)
	}
	builder.WriteString("\nCompany documents:\n")
	for _, doc := range companyDocs {
		fmt.Fprintf(&builder, "\n--- %s ---\n%s\n", doc.Filename, excerpt(doc.Content, capabilityDocExcerpt))
	}

	generated := e.client.Generate(ctx, builder.String(), capabilitySystemPrompt)
	defaults := CapabilityAssessment{
		TotalRequirements: len(requirements),
		Recommendations:   []string{"Re-run the assessment once a live model backend is available."},
	}
	assessment, ok := parseStructured(generated.Text, defaults)
	if !ok || generated.Fallback {
		defaults.Fallback = true
		return defaults
	}
	assessment.Fallback = false
	assessment.TotalRequirements = len(requirements)
	assessment.WinningProbability = clampPercent(assessment.WinningProbability)
	assessment.CapabilityScore = clampPercent(assessment.CapabilityScore)
	assessment.MatchedRequirements = clampInt(assessment.MatchedRequirements, 0, assessment.TotalRequirements)
	logger.Info("analysis: capability assessed",
		"tender", tenderID,
		"probability", assessment.WinningProbability,
		"matched", assessment.MatchedRequirements,
		"total", assessment.TotalRequirements)
	return assessment
}

// EstimateWinProbability asks the model for a bare number judged from the
// tender's scoring fields. The first integer token of the reply is used; a
// digitless reply defaults to 50. Always clamped to [0,100]. The output is
// advisory, not a calibrated probability.
func (e *Engine) EstimateWinProbability(ctx context.Context, tender store.Tender) int {
	prompt := fmt.Sprintf(
		"Estimate the probability of winning this tender as a single integer between 0 and 100. "+
			"Respond with the number only.\n\n"+
			"Technical score: %.1f\nCommercial score: %.1f\nCompliance score: %.1f\nRisk score: %.1f\n"+
			"Contract value: %.0f\nStatus: %s",
		tender.TechnicalScore, tender.CommercialScore, tender.ComplianceScore, tender.RiskScore,
		tender.Value, tender.Status)
	generated := e.client.Generate(ctx, prompt, "")
	return clampInt(firstInt(generated.Text, defaultWinProb), 0, 100)
}

// tenderRequirements derives a requirement list from the tender's own
// documents via the pattern rules when the caller supplies none.
func (e *Engine) tenderRequirements(ctx context.Context, tenderID string) []string {
	if strings.TrimSpace(tenderID) == "" {
		return nil
	}
	docs, err := e.store.FindDocuments(ctx, store.DocumentFilter{TenderID: tenderID})
	if err != nil {
		common.Logger().Warn("analysis: requirement lookup failed", "tender", tenderID, "error", err)
		return nil
	}
	seen := make(map[string]struct{})
	var requirements []string
	for _, doc := range docs {
		for _, req := range patterns.Extract(doc.Content, patterns.Requirements) {
			if _, ok := seen[req]; ok {
				continue
			}
			seen[req] = struct{}{}
			requirements = append(requirements, req)
		}
	}
	return requirements
}
