package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Khushi740/job-tracker/internal/server/middleware"
	"github.com/Khushi740/job-tracker/internal/store"
	"github.com/Khushi740/job-tracker/internal/types"
)

// handleListJobs returns the caller's non-archived records, newest first.
// Optional query parameters: status, company.
func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	owner, err := middleware.GetUserID(r)
	if err != nil {
		errorResponse(w, http.StatusUnauthorized, "No token, authorization denied")
		return
	}

	opts := store.ListOptions{
		Status:  types.Status(r.URL.Query().Get("status")),
		Company: r.URL.Query().Get("company"),
	}

	jobs, err := s.jobs.ListJobs(r.Context(), owner, opts)
	if err != nil {
		s.log.Error("list jobs failed", zap.Error(err))
		errorResponse(w, http.StatusInternalServerError, "Server error fetching jobs")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]any{
		"message": "Jobs retrieved successfully",
		"count":   len(jobs),
		"jobs":    jobs,
	})
}

// handleGetJob returns a single record. A record owned by another user is
// indistinguishable from an absent one.
func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	owner, err := middleware.GetUserID(r)
	if err != nil {
		errorResponse(w, http.StatusUnauthorized, "No token, authorization denied")
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		errorResponse(w, http.StatusNotFound, "Job not found")
		return
	}

	job, err := s.jobs.GetJob(r.Context(), owner, id)
	if err != nil {
		s.log.Error("get job failed", zap.Error(err))
		errorResponse(w, http.StatusInternalServerError, "Server error fetching job")
		return
	}
	if job == nil {
		errorResponse(w, http.StatusNotFound, "Job not found")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]any{
		"message": "Job retrieved successfully",
		"job":     job,
	})
}

// handleCreateJob validates and stores a new record for the caller. The
// owner always comes from the token, never from the request body.
func (s *Server) handleCreateJob(w http.ResponseWriter, r *http.Request) {
	owner, err := middleware.GetUserID(r)
	if err != nil {
		errorResponse(w, http.StatusUnauthorized, "No token, authorization denied")
		return
	}

	var job types.JobApplication
	if err := json.NewDecoder(r.Body).Decode(&job); err != nil {
		errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	job.UserID = owner

	created, err := s.jobs.CreateJob(r.Context(), &job)
	if err != nil {
		var verr *types.ValidationError
		if errors.As(err, &verr) {
			validationResponse(w, verr)
			return
		}
		s.log.Error("create job failed", zap.Error(err))
		errorResponse(w, http.StatusInternalServerError, "Server error creating job")
		return
	}

	jsonResponse(w, http.StatusCreated, map[string]any{
		"message": "Job application added successfully",
		"job":     created,
	})
}

// handleUpdateJob merges a partial update onto a record and re-validates
// the whole result before storing it.
func (s *Server) handleUpdateJob(w http.ResponseWriter, r *http.Request) {
	owner, err := middleware.GetUserID(r)
	if err != nil {
		errorResponse(w, http.StatusUnauthorized, "No token, authorization denied")
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		errorResponse(w, http.StatusNotFound, "Job not found")
		return
	}

	var upd types.JobUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := s.jobs.UpdateJob(r.Context(), owner, id, &upd)
	if err != nil {
		var verr *types.ValidationError
		if errors.As(err, &verr) {
			validationResponse(w, verr)
			return
		}
		s.log.Error("update job failed", zap.Error(err))
		errorResponse(w, http.StatusInternalServerError, "Server error updating job")
		return
	}
	if updated == nil {
		errorResponse(w, http.StatusNotFound, "Job not found")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]any{
		"message": "Job updated successfully",
		"job":     updated,
	})
}

// handleArchiveJob soft-deletes a record. Archived records drop out of
// listings and statistics but stay readable by ID.
func (s *Server) handleArchiveJob(w http.ResponseWriter, r *http.Request) {
	owner, err := middleware.GetUserID(r)
	if err != nil {
		errorResponse(w, http.StatusUnauthorized, "No token, authorization denied")
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		errorResponse(w, http.StatusNotFound, "Job not found")
		return
	}

	archived, err := s.jobs.ArchiveJob(r.Context(), owner, id)
	if err != nil {
		s.log.Error("archive job failed", zap.Error(err))
		errorResponse(w, http.StatusInternalServerError, "Server error deleting job")
		return
	}
	if archived == nil {
		errorResponse(w, http.StatusNotFound, "Job not found")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]any{
		"message": "Job archived successfully",
		"job":     archived,
	})
}

// handleStats returns per-status counts and derived rates for the
// caller's non-archived records.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	owner, err := middleware.GetUserID(r)
	if err != nil {
		errorResponse(w, http.StatusUnauthorized, "No token, authorization denied")
		return
	}

	summary, err := s.stats.ForUser(r.Context(), owner)
	if err != nil {
		s.log.Error("stats failed", zap.Error(err))
		errorResponse(w, http.StatusInternalServerError, "Server error fetching stats")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]any{
		"message": "Stats retrieved successfully",
		"stats":   summary,
	})
}
