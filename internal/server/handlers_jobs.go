package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/jonathan/resume-screener/internal/types"
)

// parseQueryInt parses an integer query parameter with default and max values
func parseQueryInt(r *http.Request, key string, defaultValue, maxValue int) int {
	valStr := r.URL.Query().Get(key)
	if valStr == "" {
		return defaultValue
	}
	val, err := strconv.Atoi(valStr)
	if err != nil || val < 0 {
		return defaultValue
	}
	if maxValue > 0 && val > maxValue {
		return maxValue
	}
	return val
}

// parsePathID parses the {id} path value, writing a 400 response when it is not a UUID
func (s *Server) parsePathID(w http.ResponseWriter, r *http.Request, what string) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid "+what+" ID")
		return uuid.Nil, false
	}
	return id, true
}

// handleCreateJob registers a job description
func (s *Server) handleCreateJob(w http.ResponseWriter, r *http.Request) {
	var req types.CreateJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	job, err := s.service.CreateJob(r.Context(), &req)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusCreated, job)
}

// handleListJobs lists every job description
func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := s.service.ListJobs(r.Context())
	if err != nil {
		s.serviceError(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"jobs":  jobs,
		"total": len(jobs),
	})
}

// handleGetJob retrieves a job description by ID
func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	jobID, ok := s.parsePathID(w, r, "job")
	if !ok {
		return
	}

	job, err := s.service.GetJob(r.Context(), jobID)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, job)
}

// handleJobKeywords returns the job's keyword stems, deriving and caching them if needed
func (s *Server) handleJobKeywords(w http.ResponseWriter, r *http.Request) {
	jobID, ok := s.parsePathID(w, r, "job")
	if !ok {
		return
	}

	keywords, err := s.service.JobKeywords(r.Context(), jobID)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"job_id":   jobID,
		"keywords": keywords,
		"count":    len(keywords),
	})
}

// handleRankJob ranks the job's resumes with the strategy from ?strategy=
func (s *Server) handleRankJob(w http.ResponseWriter, r *http.Request) {
	jobID, ok := s.parsePathID(w, r, "job")
	if !ok {
		return
	}
	strategy := r.URL.Query().Get("strategy")

	ranked, err := s.service.RankJob(r.Context(), jobID, strategy)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"job_id":     jobID,
		"candidates": ranked,
		"total":      len(ranked),
	})
}
