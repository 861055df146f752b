package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/shulebus/shulebus/internal/importer"
	"github.com/shulebus/shulebus/internal/logging"
	"github.com/shulebus/shulebus/internal/metrics"
	"github.com/shulebus/shulebus/internal/rowsource"
)

// multipartMemory is the in-memory buffer for multipart parsing; larger
// files spill to temp files.
const multipartMemory = 32 << 20

// importResponse wraps the batch report for API clients.
type importResponse struct {
	DryRun  bool             `json:"dry_run"`
	JobID   string           `json:"job_id,omitempty"`
	Summary string           `json:"summary"`
	Report  *importer.Report `json:"report"`
}

// handleImport runs a bulk import for one entity type. Files are processed
// in order, rows continue past individual failures, and the response
// reports every created entity and every skipped row.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	s.runImport(w, r, false)
}

// handleDryRun validates and normalizes the uploaded files without
// creating any records.
func (s *Server) handleDryRun(w http.ResponseWriter, r *http.Request) {
	s.runImport(w, r, true)
}

func (s *Server) runImport(w http.ResponseWriter, r *http.Request, dry bool) {
	entityType, err := importer.ParseEntityType(chi.URLParam(r, "entityType"))
	if err != nil {
		respondBadRequest(w, err.Error())
		return
	}

	spec, ok := importer.Spec(entityType)
	if !ok {
		respondBadRequest(w, fmt.Sprintf("no import support for entity type %q", entityType))
		return
	}

	if err := s.limiter.Acquire(r.Context()); err != nil {
		if errors.Is(err, importer.ErrTooManyImports) {
			w.Header().Set("Retry-After", "30")
			s.respondError(w, r, err, http.StatusTooManyRequests)
			return
		}
		s.respondError(w, r, err, http.StatusServiceUnavailable)
		return
	}
	defer s.limiter.Release()

	maxFiles := s.cfg.Import.MaxFilesPerBatch
	maxFileSize := s.cfg.Import.MaxFileSize
	r.Body = http.MaxBytesReader(w, r.Body, maxFileSize*int64(maxFiles))

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		respondBadRequest(w, "request too large or invalid multipart form")
		return
	}
	defer r.MultipartForm.RemoveAll()

	headers := r.MultipartForm.File["files"]
	if len(headers) == 0 {
		headers = r.MultipartForm.File["file"]
	}
	if len(headers) == 0 {
		respondBadRequest(w, "no files provided; use multipart field \"files\"")
		return
	}
	if len(headers) > maxFiles {
		respondBadRequest(w, fmt.Sprintf("too many files: %d exceeds limit of %d", len(headers), maxFiles))
		return
	}

	// Decode failures become per-file errors in the report rather than
	// failing the whole batch.
	files := make([]importer.File, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			files = append(files, importer.File{Name: fh.Filename, Err: err})
			continue
		}
		files = append(files, rowsource.DecodeFile(fh.Filename, f, maxFileSize))
		f.Close()
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.cfg.Import.Timeout)
	defer cancel()

	log := logging.ForImport(ctx, string(entityType), len(files))
	proc := importer.NewProcessor(spec, s.creator, importer.WithLogger(log))

	mode := "import"
	if dry {
		mode = "dry_run"
	}

	start := time.Now()
	var report *importer.Report
	if dry {
		report = proc.DryRun(ctx, files)
	} else {
		report = proc.Run(ctx, files)
	}
	metrics.ObserveBatch(string(entityType), mode, report.TotalSuccess, report.TotalFailed, time.Since(start))

	resp := importResponse{
		DryRun:  dry,
		Summary: report.Summary(),
		Report:  report,
	}

	if !dry {
		job, err := s.jobs.RecordJob(ctx, report)
		if err != nil {
			// The records are already created; losing the history row is
			// not worth failing the request over.
			log.Warn("failed to record import job", "error", err)
		} else {
			resp.JobID = job.ID.String()
		}
	}

	writeJSON(w, http.StatusOK, resp)
}
