package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/docrill/pdfoutliner/internal/extractor"
	"github.com/docrill/pdfoutliner/internal/pipeline"
	"github.com/go-chi/chi/v5"
)

// handleOutline extracts an outline synchronously from an uploaded PDF.
func (s *Server) handleOutline(w http.ResponseWriter, r *http.Request) {
	path, _, cleanup, ok := s.spoolUpload(w, r)
	if !ok {
		return
	}
	defer cleanup()

	ol, err := s.ex.Extract(r.Context(), path)
	if err != nil {
		if errors.Is(err, extractor.ErrPageLimit) {
			jsonError(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		jsonError(w, "extraction failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ol.Contract())
}

// handleOutlineAsync queues an uploaded PDF for background extraction.
// The resulting JSON is written to the output directory and kept on the
// job for polling.
func (s *Server) handleOutlineAsync(w http.ResponseWriter, r *http.Request) {
	path, filename, cleanup, ok := s.spoolUpload(w, r)
	if !ok {
		return
	}

	job := pipeline.NewJob(filename, path, true)
	if err := s.orchestrator.Submit(job); err != nil {
		cleanup()
		jsonError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	// The worker owns the spooled file now; it removes it when done.

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]any{
		"job_id":   job.ID,
		"status":   job.Status,
		"poll_url": fmt.Sprintf("/api/jobs/%s", job.ID),
	})
}

// handleJobStatus reports the state of an async job, including the
// extracted outline once completed.
func (s *Server) handleJobStatus(w http.ResponseWriter, r *http.Request) {
	job := s.orchestrator.GetJob(chi.URLParam(r, "jobID"))
	if job == nil {
		jsonError(w, "unknown job", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(job.Snapshot())
}

// handleStats reports extraction latency aggregates.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if s.stats == nil {
		jsonError(w, "stats unavailable", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"queue_depth": s.orchestrator.QueueDepth(),
		"extraction":  s.stats.Snapshot(),
	})
}

// spoolUpload validates a multipart PDF upload and writes it to a temp
// file. The caller owns the file via cleanup. On failure the response has
// already been written and ok is false.
func (s *Server) spoolUpload(w http.ResponseWriter, r *http.Request) (path, filename string, cleanup func(), ok bool) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024) // headroom for form overhead

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return "", "", nil, false
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "file is required: "+err.Error(), http.StatusBadRequest)
		return "", "", nil, false
	}
	defer file.Close()

	filename = sanitizeFilename(header.Filename)
	if !strings.EqualFold(filepath.Ext(filename), ".pdf") {
		jsonError(w, fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)), http.StatusBadRequest)
		return "", "", nil, false
	}

	tmp, err := os.CreateTemp("", "pdfoutliner-*.pdf")
	if err != nil {
		jsonError(w, "failed to spool upload", http.StatusInternalServerError)
		return "", "", nil, false
	}

	n, err := io.Copy(tmp, io.LimitReader(file, s.cfg.MaxUploadBytes+1))
	tmp.Close()
	if err != nil {
		os.Remove(tmp.Name())
		jsonError(w, "failed to read file", http.StatusInternalServerError)
		return "", "", nil, false
	}
	if n > s.cfg.MaxUploadBytes {
		os.Remove(tmp.Name())
		jsonError(w, fmt.Sprintf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
		return "", "", nil, false
	}

	return tmp.Name(), filename, func() { os.Remove(tmp.Name()) }, true
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}
