// Package api exposes the analysis engine over a thin chi HTTP surface. The
// handlers adapt plain JSON payloads onto the engine's operation API; no
// engine contract depends on these types.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	chi "github.com/go-chi/chi/v5"

	"github.com/tenderworks/tenderd/internal/analysis"
	"github.com/tenderworks/tenderd/internal/common"
	"github.com/tenderworks/tenderd/internal/llm"
	"github.com/tenderworks/tenderd/internal/store"
)

type Server struct {
	router   chi.Router
	store    *store.Store
	engine   *analysis.Engine
	provider llm.Provider
}

func NewServer(st *store.Store, provider llm.Provider) (*Server, error) {
	logger := common.Logger()
	client := llm.NewClient(provider)
	providerName := "unknown"
	if provider != nil {
		providerName = provider.Name()
	}
	logger.Info("api: building server", "provider", providerName)
	srv := &Server{
		router:   chi.NewRouter(),
		store:    st,
		engine:   analysis.NewEngine(st, client),
		provider: provider,
	}
	srv.routes()
	logger.Info("api: server ready")
	return srv, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	logger := common.Logger()
	s.router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			logger.Debug("request", "method", r.Method, "path", r.URL.Path, "dur", time.Since(start), "remote", r.RemoteAddr)
		})
	})

	s.router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	s.router.Get("/v1/logs", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{"entries": common.LogEntries()})
	})

	s.router.Post("/v1/chat", s.handleChat)

	s.router.Post("/v1/documents", s.handleCreateDocument)
	s.router.Get("/v1/documents", s.handleListDocuments)
	s.router.Post("/v1/documents/{id}/analyze", s.handleAnalyzeDocument)
	s.router.Post("/v1/documents/{id}/tags", s.handleTagDocument)
	s.router.Post("/v1/documents/{id}/validate", s.handleValidateDocument)

	s.router.Post("/v1/tenders", s.handleCreateTender)
	s.router.Get("/v1/tenders", s.handleListTenders)
	s.router.Get("/v1/tenders/{id}", s.handleGetTender)
	s.router.Post("/v1/tenders/{id}/metadata", s.handleExtractMetadata)
	s.router.Post("/v1/tenders/{id}/insights", s.handleInsights)
	s.router.Post("/v1/tenders/{id}/capability", s.handleCapability)
	s.router.Post("/v1/tenders/{id}/win-probability", s.handleWinProbability)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, err error) {
	logger := common.Logger()
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", "status", status, "error", err)
	} else {
		logger.Warn("request failed", "status", status, "error", err)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
