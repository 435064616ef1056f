package analysis

import (
	"context"

	"github.com/tenderworks/tenderd/internal/common"
	"github.com/tenderworks/tenderd/internal/store"
)

const validationExcerpt = 6000

const validationSystemPrompt = "You audit procurement document quality. " +
	"Return one JSON object with the keys completeness, accuracy, clarity, structure, compliance " +
	"(each 0-1), overall (0-1), grade (excellent, good, needs_improvement, or poor), " +
	"and issues (array of short strings). " +
	"Return the JSON object and nothing else."

// defaultValidation is the neutral record substituted when validation cannot
// be performed: every dimension at 0.5 with a needs_improvement grade.
func defaultValidation() ValidationResult {
	return ValidationResult{
		Completeness: 0.5,
		Accuracy:     0.5,
		Clarity:      0.5,
		Structure:    0.5,
		Compliance:   0.5,
		Overall:      0.5,
		Grade:        "needs_improvement",
	}
}

// ValidateDocument scores a document's quality per dimension. Scores are
// clamped to [0,1]; a missing overall score is derived from the dimension
// mean, and a missing grade is derived from the overall score. When docID is
// non-empty the serialized result is written back onto the document.
func (e *Engine) ValidateDocument(ctx context.Context, docID, text string) ValidationResult {
	logger := common.Logger()
	generated := e.client.Generate(ctx, "Assess the quality of this document:\n\n"+excerpt(text, validationExcerpt), validationSystemPrompt)
	result, ok := parseStructured(generated.Text, defaultValidation())
	if !ok || generated.Fallback {
		result = defaultValidation()
	}
	result.Completeness = clamp01(result.Completeness)
	result.Accuracy = clamp01(result.Accuracy)
	result.Clarity = clamp01(result.Clarity)
	result.Structure = clamp01(result.Structure)
	result.Compliance = clamp01(result.Compliance)
	if result.Overall == 0 {
		result.Overall = (result.Completeness + result.Accuracy + result.Clarity + result.Structure + result.Compliance) / 5
	}
	result.Overall = clamp01(result.Overall)
	if result.Grade == "" {
		result.Grade = gradeFor(result.Overall)
	}
	logger.Info("analysis: document validated", "doc", docID, "overall", result.Overall, "grade", result.Grade)
	e.persistDocument(ctx, docID, store.DocumentPatch{AutoValidation: store.StringPtr(serialize(result))})
	return result
}

func gradeFor(overall float64) string {
	switch {
	case overall >= 0.8:
		return "excellent"
	case overall >= 0.65:
		return "good"
	case overall >= 0.45:
		return "needs_improvement"
	default:
		return "poor"
	}
}
