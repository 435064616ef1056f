// Package analysis implements the document-grounded tender analysis engine:
// grounded chat, document analysis, metadata extraction, insight generation,
// tagging, validation, and capability scoring. Every operation resolves to a
// fully-shaped record; failures degrade to documented defaults instead of
// propagating.
package analysis

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/tenderworks/tenderd/internal/common"
	"github.com/tenderworks/tenderd/internal/llm"
	"github.com/tenderworks/tenderd/internal/retrieval"
	"github.com/tenderworks/tenderd/internal/store"
)

// Store is the slice of the data store the engine consumes. The engine never
// issues anything richer than scope/category filters and keyed write-backs.
type Store interface {
	FindDocuments(ctx context.Context, filter store.DocumentFilter) ([]store.Document, error)
	FindTender(ctx context.Context, id string) (store.Tender, error)
	UpdateTender(ctx context.Context, id string, patch store.TenderPatch) error
	UpdateDocument(ctx context.Context, id string, patch store.DocumentPatch) error
}

// Engine composes the retriever, generation client, pattern rules, and
// structured-output parser behind the operation API. It holds no mutable
// state; operations may run concurrently.
type Engine struct {
	store     Store
	client    *llm.Client
	retriever *retrieval.Retriever
}

func NewEngine(st Store, client *llm.Client) *Engine {
	return &Engine{store: st, client: client, retriever: retrieval.New(st)}
}

// excerpt bounds document text embedded into prompts. Rune-safe.
func excerpt(text string, limit int) string {
	cleaned := strings.TrimSpace(text)
	runes := []rune(cleaned)
	if limit <= 0 || len(runes) <= limit {
		return cleaned
	}
	trimmed := strings.TrimSpace(string(runes[:limit]))
	if trimmed == "" {
		return cleaned
	}
	return trimmed + "…"
}

// serialize renders a derived record for opaque storage on its owning row.
func serialize(record interface{}) string {
	b, err := json.Marshal(record)
	if err != nil {
		return "{}"
	}
	return string(b)
}

func (e *Engine) persistDocument(ctx context.Context, docID string, patch store.DocumentPatch) {
	if strings.TrimSpace(docID) == "" {
		return
	}
	if err := e.store.UpdateDocument(ctx, docID, patch); err != nil {
		common.Logger().Warn("analysis: document write-back failed", "doc", docID, "error", err)
	}
}

func (e *Engine) persistTender(ctx context.Context, tenderID string, patch store.TenderPatch) {
	if strings.TrimSpace(tenderID) == "" {
		return
	}
	if err := e.store.UpdateTender(ctx, tenderID, patch); err != nil {
		common.Logger().Warn("analysis: tender write-back failed", "tender", tenderID, "error", err)
	}
}
