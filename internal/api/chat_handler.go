package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/tenderworks/tenderd/internal/analysis"
	"github.com/tenderworks/tenderd/internal/common"
)

type chatRequest struct {
	TenderID string              `json:"tender_id"`
	Messages []analysis.ChatTurn `json:"messages"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	logger := common.Logger()
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("api: chat decode failed", "error", err)
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if len(req.Messages) == 0 {
		writeError(w, http.StatusBadRequest, fmt.Errorf("messages required"))
		return
	}
	logger.Info("api: chat request received", "tender", req.TenderID, "messages", len(req.Messages))
	result := s.engine.Chat(r.Context(), req.Messages, req.TenderID)
	writeJSON(w, http.StatusOK, result)
}
