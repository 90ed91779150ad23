package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/jonathan/resume-screener/internal/db"
	"github.com/jonathan/resume-screener/internal/screening"
	"github.com/jonathan/resume-screener/internal/types"
)

// multipartOverhead allows for form boundaries and fields beyond the file itself
const multipartOverhead = 1 << 20

// UploadResponse is the response for /upload-resume
type UploadResponse struct {
	Success bool       `json:"success"`
	Score   float64    `json:"score"`
	Matched []string   `json:"matched"`
	Resume  *db.Resume `json:"resume"`
}

// handleUploadResume accepts a multipart resume file ("resume") for a job ("jd_id"),
// scores its keyword coverage and stores it.
func (s *Server) handleUploadResume(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes+multipartOverhead)
	if err := r.ParseMultipartForm(s.maxUploadBytes); err != nil {
		var maxBytes *http.MaxBytesError
		if errors.As(err, &maxBytes) {
			s.serviceError(w, r, &ErrUploadTooLarge{Limit: s.maxUploadBytes})
			return
		}
		s.errorResponse(w, http.StatusBadRequest, "Invalid multipart form: "+err.Error())
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	file, header, err := r.FormFile("resume")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "No file uploaded")
		return
	}
	defer func() { _ = file.Close() }()

	if header.Size > s.maxUploadBytes {
		s.serviceError(w, r, &ErrUploadTooLarge{Limit: s.maxUploadBytes})
		return
	}

	jobID, err := uuid.Parse(strings.TrimSpace(r.FormValue("jd_id")))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid jd_id")
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Failed to read uploaded file: "+err.Error())
		return
	}

	result, err := s.service.UploadResume(r.Context(), screening.UploadInput{
		JobID:         jobID,
		FileName:      header.Filename,
		Data:          data,
		CandidateName: r.FormValue("candidate_name"),
	})
	if err != nil {
		s.serviceError(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, UploadResponse{
		Success: true,
		Score:   result.Coverage.Score,
		Matched: result.Coverage.Matched,
		Resume:  result.Resume,
	})
}

// handleListResumes lists a job's resumes, filtered by ?stage= and ?q=
func (s *Server) handleListResumes(w http.ResponseWriter, r *http.Request) {
	jobID, ok := s.parsePathID(w, r, "job")
	if !ok {
		return
	}
	filter := db.ResumeFilter{
		Stage: types.Stage(strings.ToLower(r.URL.Query().Get("stage"))),
		Query: r.URL.Query().Get("q"),
	}

	resumes, err := s.service.ListResumes(r.Context(), jobID, filter)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"resumes": resumes,
		"total":   len(resumes),
	})
}

// handleExportResumes streams a job's resumes as CSV
func (s *Server) handleExportResumes(w http.ResponseWriter, r *http.Request) {
	jobID, ok := s.parsePathID(w, r, "job")
	if !ok {
		return
	}

	// Resolve the job first so a missing job is still a JSON error
	if _, err := s.service.GetJob(r.Context(), jobID); err != nil {
		s.serviceError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="resumes-`+jobID.String()+`.csv"`)
	if err := s.service.ExportCSV(r.Context(), w, jobID); err != nil {
		s.log.WithError(err).WithField("job_id", jobID).Error("failed to export resumes")
	}
}

// handleGetResume retrieves a resume by ID
func (s *Server) handleGetResume(w http.ResponseWriter, r *http.Request) {
	resumeID, ok := s.parsePathID(w, r, "resume")
	if !ok {
		return
	}

	resume, err := s.service.GetResume(r.Context(), resumeID)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, resume)
}

// handleUpdateStage moves a resume to another pipeline stage
func (s *Server) handleUpdateStage(w http.ResponseWriter, r *http.Request) {
	resumeID, ok := s.parsePathID(w, r, "resume")
	if !ok {
		return
	}

	var req types.UpdateStageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.serviceError(w, r, &screening.InvalidStageError{Stage: req.Stage})
		return
	}

	resume, err := s.service.MoveStage(r.Context(), resumeID, req.Stage)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, resume)
}

// handleDeleteResume deletes a resume
func (s *Server) handleDeleteResume(w http.ResponseWriter, r *http.Request) {
	resumeID, ok := s.parsePathID(w, r, "resume")
	if !ok {
		return
	}

	if err := s.service.DeleteResume(r.Context(), resumeID); err != nil {
		s.serviceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleListActivity lists recent activity, newest first
func (s *Server) handleListActivity(w http.ResponseWriter, r *http.Request) {
	limit := parseQueryInt(r, "limit", db.DefaultActivityLimit, db.MaxActivityLimit)

	entries, err := s.service.ListActivity(r.Context(), limit)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"activity": entries,
		"limit":    limit,
	})
}
