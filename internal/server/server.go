// Package server exposes the cross-check pipeline over HTTP for the web
// upload flow. It owns no extraction logic; every request is a stateless
// pass through the orchestrator.
package server

import (
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/tryalma/doccheck/internal/crosscheck"
	"github.com/tryalma/doccheck/internal/extract"
	"github.com/tryalma/doccheck/internal/model"
)

// maxUploadBytes bounds document uploads (10 MiB covers 300-DPI scans).
const maxUploadBytes = 10 << 20

// Server handles document upload and cross-check requests.
type Server struct {
	orchestrator *crosscheck.Orchestrator
	tempDir      string
}

// New creates a Server. tempDir defaults to the OS temp directory.
func New(orchestrator *crosscheck.Orchestrator, tempDir string) *Server {
	if tempDir == "" {
		tempDir = os.TempDir()
	}
	return &Server{orchestrator: orchestrator, tempDir: tempDir}
}

// Router builds the chi router with CORS and request logging.
func (s *Server) Router(allowedOrigins []string) http.Handler {
	r := chi.NewRouter()
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
	r.Use(requestLogger)

	r.Get("/healthz", s.handleHealth)
	r.Post("/api/v1/crosscheck", s.handleCrossCheck)
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleCrossCheck accepts a multipart upload under "document" with an
// optional "document_type" value, runs the dual-source cross-check, and
// returns the flat result JSON. status=error maps to 422: the request was
// well-formed but neither source could read the document.
func (s *Server) handleCrossCheck(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart request")
		return
	}

	file, header, err := r.FormFile("document")
	if err != nil {
		writeError(w, http.StatusBadRequest, "document file is required")
		return
	}
	defer file.Close()

	path, err := s.saveUpload(file, header.Filename)
	if err != nil {
		zap.L().Error("upload save failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not store upload")
		return
	}
	defer os.Remove(path)

	result := s.orchestrator.Run(r.Context(), extract.Input{
		ImagePath:    path,
		DocumentType: r.FormValue("document_type"),
	})

	code := http.StatusOK
	if result.Status == model.StatusError {
		code = http.StatusUnprocessableEntity
	}
	writeJSON(w, code, result)
}

// saveUpload copies the multipart file into the temp dir, preserving only
// the extension of the client-supplied name.
func (s *Server) saveUpload(file io.Reader, name string) (string, error) {
	ext := filepath.Ext(name)
	dst, err := os.CreateTemp(s.tempDir, "doccheck-*"+ext)
	if err != nil {
		return "", err
	}
	defer dst.Close()
	if _, err := io.Copy(dst, file); err != nil {
		os.Remove(dst.Name())
		return "", err
	}
	return dst.Name(), nil
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

// requestLogger logs method, path, status, and latency per request.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(ww, r)
		zap.L().Info("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.status),
			zap.Duration("elapsed", time.Since(start)),
		)
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
