package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"retail-ai-assistant/internal/domain"
	"retail-ai-assistant/internal/domain/model"
	"retail-ai-assistant/internal/infra/logging"
	"retail-ai-assistant/internal/infra/metrics"
)

type askRequest struct {
	SessionID string `json:"session_id"`
	Question  string `json:"question"`
}

type askResponse struct {
	SessionID string                   `json:"session_id"`
	Question  string                   `json:"question"`
	Answer    string                   `json:"answer"`
	History   []model.ConversationTurn `json:"history"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		metrics.IncAsk("rejected")
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	req.SessionID = strings.TrimSpace(req.SessionID)
	req.Question = strings.TrimSpace(req.Question)

	ctx = logging.WithSessionID(ctx, req.SessionID)
	answer, err := s.dialogue.Ask(ctx, req.SessionID, req.Question)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidArgument) {
			metrics.IncAsk("rejected")
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
		metrics.IncAsk("error")
		logging.With(ctx, s.log).Error().Err(err).Msg("ask failed")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to answer question"})
		return
	}

	history, err := s.dialogue.History(ctx, req.SessionID)
	if err != nil {
		logging.With(ctx, s.log).Warn().Err(err).Msg("history fetch failed")
		history = nil
	}
	if history == nil {
		history = []model.ConversationTurn{}
	}

	metrics.IncAsk("answered")
	writeJSON(w, http.StatusOK, askResponse{
		SessionID: req.SessionID,
		Question:  req.Question,
		Answer:    answer,
		History:   history,
	})
}

func (s *Server) handleGreet(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.dialogue.Greet())
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
