package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/myamashita/regsheet/internal/genai"
	"github.com/myamashita/regsheet/internal/parser"
	"github.com/myamashita/regsheet/internal/pipeline"
)

// handleExtract accepts one or more regulation documents, runs the full
// extraction pipeline and returns the rendered workbook as a download.
func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	uploads, ok := s.readUploads(w, r, "files")
	if !ok {
		return
	}

	res, err := s.processor.Process(r.Context(), uploads)
	if err != nil {
		s.writeProcessError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="requirements.xlsx"`)
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(res.Workbook)))
	w.Write(res.Workbook)
}

// handleParse accepts a single document and returns the heuristic
// candidate records as JSON, without a model call.
func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	uploads, ok := s.readUploads(w, r, "file")
	if !ok {
		return
	}
	if len(uploads) != 1 {
		jsonError(w, "exactly one file is required", http.StatusBadRequest)
		return
	}

	doc, reqs, err := s.processor.ProcessHeuristic(r.Context(), uploads[0])
	if err != nil {
		s.writeProcessError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"document": map[string]any{
			"extraction_method": doc.Method,
			"metadata":          doc.Metadata,
			"pages":             len(doc.Pages),
		},
		"requirements": reqs,
	})
}

// readUploads parses the multipart form and returns the validated files.
// On failure it has already written the error response.
func (s *Server) readUploads(w http.ResponseWriter, r *http.Request, field string) ([]pipeline.Upload, bool) {
	maxTotal := s.cfg.MaxUploadBytes*int64(s.cfg.MaxFiles) + 1024*1024
	r.Body = http.MaxBytesReader(w, r.Body, maxTotal)

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return nil, false
	}
	defer r.MultipartForm.RemoveAll()

	headers := r.MultipartForm.File[field]
	if len(headers) == 0 {
		jsonError(w, field+" is required", http.StatusBadRequest)
		return nil, false
	}
	if len(headers) > s.cfg.MaxFiles {
		jsonError(w, fmt.Sprintf("too many files (max %d)", s.cfg.MaxFiles), http.StatusBadRequest)
		return nil, false
	}

	var uploads []pipeline.Upload
	for _, fh := range headers {
		filename := sanitizeFilename(fh.Filename)
		if !parser.IsSupportedExtension(filename) {
			jsonError(w, fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)), http.StatusBadRequest)
			return nil, false
		}
		data, err := readFile(fh, s.cfg.MaxUploadBytes)
		if err != nil {
			jsonError(w, fmt.Sprintf("%s: %s", filename, err), http.StatusRequestEntityTooLarge)
			return nil, false
		}
		uploads = append(uploads, pipeline.Upload{Filename: filename, Data: data})
	}
	return uploads, true
}

func readFile(fh *multipart.FileHeader, maxBytes int64) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > maxBytes {
		return nil, fmt.Errorf("file exceeds max size (%d bytes)", maxBytes)
	}
	return data, nil
}

// writeProcessError maps pipeline failures onto HTTP statuses. Classified
// model-call errors keep their full multi-line diagnostic: the help desk
// acts on the cause hypothesis, not on a bare status code.
func (s *Server) writeProcessError(w http.ResponseWriter, err error) {
	var apiErr *genai.APIError
	if errors.As(err, &apiErr) {
		status := http.StatusBadGateway
		switch apiErr.Kind {
		case genai.KindAuth:
			status = http.StatusInternalServerError
		case genai.KindRateLimit:
			status = http.StatusServiceUnavailable
		case genai.KindTimeout:
			status = http.StatusGatewayTimeout
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(map[string]any{
			"error": apiErr.Error(),
			"kind":  apiErr.Kind,
		})
		return
	}
	jsonError(w, err.Error(), http.StatusUnprocessableEntity)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}
