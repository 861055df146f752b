package web

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/shulebus/shulebus/internal/importer"
)

// handleListJobs returns recent import jobs, optionally filtered by
// entity type via the entity_type query parameter.
func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	var entityType importer.EntityType
	if raw := r.URL.Query().Get("entity_type"); raw != "" {
		et, err := importer.ParseEntityType(raw)
		if err != nil {
			respondBadRequest(w, err.Error())
			return
		}
		entityType = et
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			respondBadRequest(w, "limit must be a positive integer")
			return
		}
		limit = n
	}

	jobs, err := s.jobs.ListJobs(r.Context(), entityType, limit)
	if err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"jobs": jobs})
}

// handleGetJob returns one import job by ID.
func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "jobID"))
	if err != nil {
		respondBadRequest(w, "invalid job ID")
		return
	}

	job, err := s.jobs.GetJob(r.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, ErrorResponse{
				Error:   "import job not found",
				Message: "import job not found",
				Code:    "JOB404",
			})
			return
		}
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, job)
}
