package analysis

import (
	"context"
	"regexp"
	"strings"

	"github.com/tenderworks/tenderd/internal/common"
	"github.com/tenderworks/tenderd/internal/patterns"
	"github.com/tenderworks/tenderd/internal/store"
)

const metadataExcerpt = 8000

const metadataSystemPrompt = "You extract tender metadata. " +
	"Return one JSON object with the keys title, budget, location, deadlines (array of strings), " +
	"and requirements (array of strings). " +
	"Include ONLY facts explicitly stated in the text. " +
	"Omit any key whose value is not explicitly stated. Never infer or estimate. " +
	"Return the JSON object and nothing else."

var submissionHint = regexp.MustCompile(`(?i)\b(?:submission|submit|bid|offer|proposal)\b`)

// ExtractMetadata pulls explicitly-stated metadata from document text. When
// the model is unavailable or its reply is unusable, the deterministic
// pattern rules supply the record instead. Deadlines are post-processed to
// isolate the submission deadline; SubmissionMatched reports whether
// submission-flavored phrasing was found or the first entry was used as a
// best-effort fallback.
func (e *Engine) ExtractMetadata(ctx context.Context, text string) ExtractionRecord {
	logger := common.Logger()
	prompt := "Extract the metadata from this tender text:\n\n" + excerpt(text, metadataExcerpt)
	generated := e.client.Generate(ctx, prompt, metadataSystemPrompt)

	record, ok := parseStructured(generated.Text, ExtractionRecord{})
	if generated.Fallback || !ok {
		logger.Info("analysis: metadata extraction using pattern fallback", "model_fallback", generated.Fallback, "parsed", ok)
		record = fallbackExtraction(text)
	}
	if len(record.Deadlines) > 0 {
		record.SubmissionDeadline, record.SubmissionMatched = submissionDeadline(record.Deadlines)
	}
	return record
}

// ExtractTenderMetadata runs metadata extraction over a tender's own
// documents and writes the extracted fields back onto the tender record.
// With no readable documents the record stays empty; that is a degraded
// outcome, not an error.
func (e *Engine) ExtractTenderMetadata(ctx context.Context, tenderID string) ExtractionRecord {
	logger := common.Logger()
	docs, err := e.store.FindDocuments(ctx, store.DocumentFilter{TenderID: tenderID})
	if err != nil {
		logger.Warn("analysis: metadata document lookup failed", "tender", tenderID, "error", err)
		docs = nil
	}
	var corpus strings.Builder
	for _, doc := range docs {
		if strings.TrimSpace(doc.Content) == "" {
			continue
		}
		corpus.WriteString(excerpt(doc.Content, metadataExcerpt/2))
		corpus.WriteString("\n\n")
	}
	if corpus.Len() == 0 {
		logger.Info("analysis: no document text available for metadata", "tender", tenderID)
		return ExtractionRecord{}
	}

	record := e.ExtractMetadata(ctx, corpus.String())

	patch := store.TenderPatch{}
	if record.Title != "" {
		patch.AutoTitle = store.StringPtr(record.Title)
	}
	if record.Budget != "" {
		patch.AutoBudget = store.StringPtr(record.Budget)
	}
	if record.Location != "" {
		patch.AutoLocation = store.StringPtr(record.Location)
	}
	if record.SubmissionDeadline != "" {
		patch.AutoDeadline = store.StringPtr(record.SubmissionDeadline)
	}
	e.persistTender(ctx, tenderID, patch)
	return record
}

// submissionDeadline picks the submission entry out of a deadline list,
// preferring submission-flavored phrasing and stripping a leading label up
// to the first colon. Without a submission-flavored entry the first entry is
// returned trimmed, flagged as unmatched.
func submissionDeadline(deadlines []string) (string, bool) {
	for _, entry := range deadlines {
		if !submissionHint.MatchString(entry) {
			continue
		}
		cleaned := entry
		if idx := strings.Index(entry, ":"); idx >= 0 && submissionHint.MatchString(entry[:idx]) {
			cleaned = entry[idx+1:]
		}
		return strings.TrimSpace(cleaned), true
	}
	return strings.TrimSpace(deadlines[0]), false
}

// fallbackExtraction builds the record from the deterministic rule library
// alone. Only labelled, explicit statements are picked up.
func fallbackExtraction(text string) ExtractionRecord {
	record := ExtractionRecord{}
	if title, ok := patterns.ExplicitTitle(text); ok {
		record.Title = title
	}
	if budget, ok := patterns.ExplicitBudget(text); ok {
		record.Budget = budget
	}
	if location, ok := patterns.ExplicitLocation(text); ok {
		record.Location = location
	}
	record.Deadlines = patterns.Extract(text, patterns.Deadlines)
	record.Requirements = patterns.Extract(text, patterns.Requirements)
	return record
}
