package server

import (
	"encoding/json"
	"net/http"

	"github.com/jonathan/resume-screener/internal/textmatch"
	"github.com/jonathan/resume-screener/internal/types"
)

// handleScore scores resume text against job text without storing anything
func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	var req types.ScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	eval, err := s.service.ScoreText(&req)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, eval)
}

// handleKeywords extracts keyword stems from free text
func (s *Server) handleKeywords(w http.ResponseWriter, r *http.Request) {
	var req types.KeywordsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.serviceError(w, r, &ErrValidation{Field: "text", Message: "text is required"})
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"keywords": textmatch.ExtractKeywords(req.Text),
	})
}
