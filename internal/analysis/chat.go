package analysis

import (
	"context"
	"fmt"
	"strings"

	"github.com/tenderworks/tenderd/internal/common"
	"github.com/tenderworks/tenderd/internal/retrieval"
)

const chatDocExcerpt = 2000

const chatSystemPrompt = "You are a tender-management assistant. " +
	"Answer in clear, plain prose grounded in the provided document excerpts, " +
	"referencing them by their [Doc #] labels. " +
	"If the excerpts do not cover the question, say so before answering from general knowledge."

const ungroundedSystemPrompt = "You are a tender-management assistant. " +
	"No tender documents are available for this conversation; answer from general " +
	"procurement knowledge and say that the answer is not grounded in uploaded documents."

// Chat produces a grounded reply for the latest user turn. When retrieval
// finds only placeholder/unusable documents, the reply explains how to make
// them usable instead of fabricating an answer; when retrieval finds nothing
// at all, the reply degrades to an ungrounded general-purpose answer with
// empty citations. Citations list exactly the documents embedded in the
// prompt.
func (e *Engine) Chat(ctx context.Context, turns []ChatTurn, tenderID string) ChatResult {
	logger := common.Logger()
	query := latestUserTurn(turns)
	if query == "" {
		return ChatResult{Reply: "Ask a question about the tender to get started."}
	}
	retrieved := e.retriever.Retrieve(ctx, query, tenderID)
	if len(retrieved.Docs) == 0 && len(retrieved.Unusable) > 0 {
		logger.Info("analysis: chat grounding unavailable", "tender", tenderID, "unusable", len(retrieved.Unusable))
		return ChatResult{Reply: unusableGuidance(retrieved.Unusable)}
	}
	if len(retrieved.Docs) == 0 {
		result := e.client.Generate(ctx, query, ungroundedSystemPrompt)
		return ChatResult{Reply: result.Text, Citations: []Citation{}, Fallback: result.Fallback}
	}

	var builder strings.Builder
	builder.WriteString("Document excerpts:\n")
	citations := make([]Citation, 0, len(retrieved.Docs))
	for idx, doc := range retrieved.Docs {
		fmt.Fprintf(&builder, "\n[Doc %d] %s\n%s\n", idx+1, doc.Filename, excerpt(doc.Text, chatDocExcerpt))
		citations = append(citations, Citation{DocID: doc.ID, Filename: doc.Filename})
	}
	builder.WriteString("\nQuestion: ")
	builder.WriteString(query)

	result := e.client.Generate(ctx, builder.String(), chatSystemPrompt)
	logger.Info("analysis: chat reply produced", "tender", tenderID, "citations", len(citations), "fallback", result.Fallback)
	return ChatResult{Reply: result.Text, Citations: citations, Fallback: result.Fallback}
}

func latestUserTurn(turns []ChatTurn) string {
	for i := len(turns) - 1; i >= 0; i-- {
		if strings.EqualFold(strings.TrimSpace(turns[i].Role), "user") {
			return strings.TrimSpace(turns[i].Content)
		}
	}
	return ""
}

func unusableGuidance(unusable []retrieval.ContextDoc) string {
	names := make([]string, 0, len(unusable))
	for _, doc := range unusable {
		if doc.Filename != "" {
			names = append(names, doc.Filename)
		}
	}
	listing := strings.Join(names, ", ")
	if listing == "" {
		listing = "the uploaded files"
	}
	return "The uploaded documents (" + listing + ") could not be read as text, so this answer cannot be grounded in them. " +
		"Re-upload them as text-based PDFs or paste the document text directly, then ask again."
}
