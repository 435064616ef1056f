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

type createTenderRequest struct {
	Title           string  `json:"title"`
	Budget          string  `json:"budget"`
	Deadline        string  `json:"deadline"`
	Status          string  `json:"status"`
	Value           float64 `json:"value"`
	TechnicalScore  float64 `json:"technical_score"`
	CommercialScore float64 `json:"commercial_score"`
	ComplianceScore float64 `json:"compliance_score"`
	RiskScore       float64 `json:"risk_score"`
}

func (s *Server) handleCreateTender(w http.ResponseWriter, r *http.Request) {
	logger := common.Logger()
	var req createTenderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		writeError(w, http.StatusBadRequest, fmt.Errorf("title required"))
		return
	}
	tender, err := s.store.InsertTender(r.Context(), store.Tender{
		Title:           req.Title,
		Budget:          req.Budget,
		Deadline:        req.Deadline,
		Status:          req.Status,
		Value:           req.Value,
		TechnicalScore:  req.TechnicalScore,
		CommercialScore: req.CommercialScore,
		ComplianceScore: req.ComplianceScore,
		RiskScore:       req.RiskScore,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	logger.Info("api: tender stored", "tender", tender.ID, "title", tender.Title)
	writeJSON(w, http.StatusCreated, tender)
}

func (s *Server) handleListTenders(w http.ResponseWriter, r *http.Request) {
	tenders, err := s.store.ListTenders(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"tenders": tenders})
}

func (s *Server) loadTender(w http.ResponseWriter, r *http.Request) (store.Tender, bool) {
	id := chi.URLParam(r, "id")
	tender, err := s.store.FindTender(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, fmt.Errorf("tender %s not found", id))
		return store.Tender{}, false
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return store.Tender{}, false
	}
	return tender, true
}

func (s *Server) handleGetTender(w http.ResponseWriter, r *http.Request) {
	tender, ok := s.loadTender(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, tender)
}

func (s *Server) handleExtractMetadata(w http.ResponseWriter, r *http.Request) {
	tender, ok := s.loadTender(w, r)
	if !ok {
		return
	}
	record := s.engine.ExtractTenderMetadata(r.Context(), tender.ID)
	writeJSON(w, http.StatusOK, record)
}

func (s *Server) handleInsights(w http.ResponseWriter, r *http.Request) {
	tender, ok := s.loadTender(w, r)
	if !ok {
		return
	}
	report := s.engine.GenerateInsights(r.Context(), tender.ID)
	writeJSON(w, http.StatusOK, report)
}

type capabilityRequest struct {
	Requirements []string `json:"requirements"`
}

func (s *Server) handleCapability(w http.ResponseWriter, r *http.Request) {
	tender, ok := s.loadTender(w, r)
	if !ok {
		return
	}
	var req capabilityRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
	}
	assessment := s.engine.ScoreCapability(r.Context(), tender.ID, req.Requirements)
	writeJSON(w, http.StatusOK, assessment)
}

func (s *Server) handleWinProbability(w http.ResponseWriter, r *http.Request) {
	tender, ok := s.loadTender(w, r)
	if !ok {
		return
	}
	probability := s.engine.EstimateWinProbability(r.Context(), tender)
	writeJSON(w, http.StatusOK, map[string]int{"win_probability": probability})
}
