package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	chi "github.com/go-chi/chi/v5"

	"github.com/tenderworks/tenderd/internal/common"
	"github.com/tenderworks/tenderd/internal/store"
)

type createDocumentRequest struct {
	Filename string `json:"filename"`
	Content  string `json:"content"`
	DocType  string `json:"doc_type"`
	Category string `json:"category"`
	TenderID string `json:"tender_id"`
}

func (s *Server) handleCreateDocument(w http.ResponseWriter, r *http.Request) {
	logger := common.Logger()
	var req createDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if strings.TrimSpace(req.Filename) == "" {
		writeError(w, http.StatusBadRequest, fmt.Errorf("filename required"))
		return
	}
	doc, err := s.store.InsertDocument(r.Context(), store.Document{
		Filename: req.Filename,
		Content:  req.Content,
		DocType:  req.DocType,
		Category: req.Category,
		TenderID: req.TenderID,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	logger.Info("api: document stored", "doc", doc.ID, "tender", doc.TenderID, "category", doc.Category)
	writeJSON(w, http.StatusCreated, doc)
}

func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	filter := store.DocumentFilter{
		TenderID: r.URL.Query().Get("tender_id"),
		Category: r.URL.Query().Get("category"),
	}
	docs, err := s.store.FindDocuments(r.Context(), filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"documents": docs})
}

func (s *Server) loadDocument(w http.ResponseWriter, r *http.Request) (store.Document, bool) {
	id := chi.URLParam(r, "id")
	doc, err := s.store.GetDocument(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, fmt.Errorf("document %s not found", id))
		return store.Document{}, false
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return store.Document{}, false
	}
	return doc, true
}

func (s *Server) handleAnalyzeDocument(w http.ResponseWriter, r *http.Request) {
	doc, ok := s.loadDocument(w, r)
	if !ok {
		return
	}
	result := s.engine.AnalyzeDocument(r.Context(), doc.ID, doc.Filename, doc.Content)
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleTagDocument(w http.ResponseWriter, r *http.Request) {
	doc, ok := s.loadDocument(w, r)
	if !ok {
		return
	}
	tags := s.engine.TagDocument(r.Context(), doc.ID, doc.Content)
	writeJSON(w, http.StatusOK, tags)
}

func (s *Server) handleValidateDocument(w http.ResponseWriter, r *http.Request) {
	doc, ok := s.loadDocument(w, r)
	if !ok {
		return
	}
	result := s.engine.ValidateDocument(r.Context(), doc.ID, doc.Content)
	writeJSON(w, http.StatusOK, result)
}
