// Package retrieval selects the documents used to ground a model prompt.
// Selection is scope-filtered and recency-ordered; there is no similarity
// search.
package retrieval

import (
	"context"
	"sort"
	"strings"

	"github.com/tenderworks/tenderd/internal/common"
	"github.com/tenderworks/tenderd/internal/store"
)

const (
	// maxContextDocs caps how many documents are embedded in one prompt.
	maxContextDocs = 6
	// minUsableLength is the shortest document text considered groundable.
	minUsableLength = 40
)

// placeholderMarkers identify texts left behind by failed uploads or
// unparsed binaries. Matching documents are surfaced separately so callers
// can explain why grounding is unavailable.
var placeholderMarkers = []string{
	"could not be parsed",
	"parsing failed",
	"pdf uploaded",
	"uploaded successfully",
	"content extraction pending",
}

// ContextDoc is one grounding candidate.
type ContextDoc struct {
	ID       string `json:"id"`
	Filename string `json:"filename"`
	Text     string `json:"text"`
}

// Result separates usable grounding documents from placeholder/unusable
// ones. An empty Docs with a non-empty Unusable means documents exist but
// none can ground an answer, which is distinct from no documents at all.
type Result struct {
	Docs     []ContextDoc
	Unusable []ContextDoc
}

// DocumentSource is the slice of the data store the retriever reads.
type DocumentSource interface {
	FindDocuments(ctx context.Context, filter store.DocumentFilter) ([]store.Document, error)
}

type Retriever struct {
	source DocumentSource
}

func New(source DocumentSource) *Retriever {
	return &Retriever{source: source}
}

// Retrieve fetches the union of tender-scoped and global/company documents,
// newest first, capped at maxContextDocs. An empty tender scope yields an
// empty result: with no scope there is nothing to ground against. Store
// read failures are logged and treated as "no documents found".
func (r *Retriever) Retrieve(ctx context.Context, query, tenderID string) Result {
	logger := common.Logger()
	if strings.TrimSpace(tenderID) == "" {
		logger.Debug("retrieval: no tender scope supplied", "query_length", len(query))
		return Result{}
	}
	scoped, err := r.source.FindDocuments(ctx, store.DocumentFilter{TenderID: tenderID})
	if err != nil {
		logger.Warn("retrieval: scoped document lookup failed", "tender", tenderID, "error", err)
		scoped = nil
	}
	global, err := r.source.FindDocuments(ctx, store.DocumentFilter{
		Categories: []string{store.CategoryGlobal, store.CategoryCompany},
	})
	if err != nil {
		logger.Warn("retrieval: global document lookup failed", "error", err)
		global = nil
	}

	seen := make(map[string]struct{})
	var candidates []store.Document
	for _, doc := range append(scoped, global...) {
		if _, ok := seen[doc.ID]; ok {
			continue
		}
		seen[doc.ID] = struct{}{}
		candidates = append(candidates, doc)
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].CreatedAt.After(candidates[j].CreatedAt)
	})

	var result Result
	for _, doc := range candidates {
		entry := ContextDoc{ID: doc.ID, Filename: doc.Filename, Text: strings.TrimSpace(doc.Content)}
		if !usable(entry.Text) {
			result.Unusable = append(result.Unusable, entry)
			continue
		}
		if len(result.Docs) < maxContextDocs {
			result.Docs = append(result.Docs, entry)
		}
	}
	logger.Debug("retrieval: context assembled",
		"tender", tenderID, "docs", len(result.Docs), "unusable", len(result.Unusable))
	return result
}

func usable(text string) bool {
	if len(text) < minUsableLength {
		return false
	}
	lower := strings.ToLower(text)
	for _, marker := range placeholderMarkers {
		if strings.Contains(lower, marker) {
			return false
		}
	}
	return true
}
