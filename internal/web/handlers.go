package web

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"premalloc/internal/ingest"
	"premalloc/internal/model"
	"premalloc/internal/pipeline"
)

// GeocodeHandler serves the upload and health endpoints.
type GeocodeHandler struct {
	pipeline *pipeline.Pipeline
	config   *model.Config
}

// errorResponse is the failure payload shape.
type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// Upload accepts a multipart CSV upload, runs one allocation job
// synchronously and returns the assembled reports. The uploaded file is
// spooled to a temp file that is removed on success and failure alike.
func (h *GeocodeHandler) Upload(w http.ResponseWriter, r *http.Request) {
	jobID := uuid.NewString()

	r.Body = http.MaxBytesReader(w, r.Body, h.config.Limits.MaxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "No file uploaded", err.Error())
		return
	}
	defer func() { _ = file.Close() }()

	if !strings.EqualFold(filepath.Ext(header.Filename), ".csv") {
		writeError(w, http.StatusBadRequest, "Only CSV files are allowed", "")
		return
	}

	tmpPath, err := spoolUpload(file, jobID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Internal server error", err.Error())
		return
	}
	defer func() { _ = os.Remove(tmpPath) }()

	h.logf("[%s] processing upload %s (%d bytes)\n", jobID, header.Filename, header.Size)

	records, err := ingest.ParseFile(tmpPath)
	if err != nil {
		writeError(w, http.StatusBadRequest, "CSV parsing error", err.Error())
		return
	}

	start := time.Now()
	result, err := h.pipeline.Run(r.Context(), records)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Internal server error", err.Error())
		return
	}
	h.logf("[%s] processed %d records in %v\n", jobID, result.TotalRecords, time.Since(start).Round(time.Millisecond))

	writeJSON(w, http.StatusOK, result)
}

// Health reports liveness.
func (h *GeocodeHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "OK",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// spoolUpload copies the uploaded stream to a temp file named after the
// job so stray files are attributable.
func spoolUpload(file io.Reader, jobID string) (string, error) {
	tmp, err := os.CreateTemp("", "premalloc-upload-"+jobID+"-*.csv")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	if _, err := io.Copy(tmp, file); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("spool upload: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("close temp file: %w", err)
	}
	return tmp.Name(), nil
}

func (h *GeocodeHandler) logf(format string, args ...any) {
	if h.config.Output.Verbose {
		fmt.Fprintf(os.Stderr, format, args...)
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message, details string) {
	writeJSON(w, status, errorResponse{Error: message, Details: details})
}
