package http

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/HamzaKhandev1446/Portfolio-builder-app/internal/service"
)

const (
	uploadField = "file"
	// multipartOverhead allows for boundaries and part headers around the file.
	multipartOverhead = 64 << 10
)

// readUpload reads the "file" part of a multipart request. Oversized bodies
// are rejected with 413 before the service sees them.
func (h *Handlers) readUpload(w http.ResponseWriter, r *http.Request) (string, []byte, bool) {
	limit := h.CVImport.MaxBytes()
	r.Body = http.MaxBytesReader(w, r.Body, limit+multipartOverhead)

	if err := r.ParseMultipartForm(limit); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeDomainError(w, fmt.Errorf("%w: limit is %d bytes", service.ErrFileTooLarge, limit), "")
			return "", nil, false
		}
		writeError(w, http.StatusBadRequest, "expected multipart form with a file field")
		return "", nil, false
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	f, hdr, err := r.FormFile(uploadField)
	if err != nil {
		writeError(w, http.StatusBadRequest, "file is required")
		return "", nil, false
	}
	defer func() { _ = f.Close() }()

	// One byte past the limit is enough for the service to reject it.
	data, err := io.ReadAll(io.LimitReader(f, limit+1))
	if err != nil {
		writeInternalError(w, fmt.Errorf("read upload: %w", err))
		return "", nil, false
	}
	return hdr.Filename, data, true
}

// ExtractCV handles POST /api/v1/cv/extract
func (h *Handlers) ExtractCV(w http.ResponseWriter, r *http.Request) {
	if _, ok := ownerID(w, r); !ok {
		return
	}
	name, data, ok := h.readUpload(w, r)
	if !ok {
		return
	}
	partial, err := h.CVImport.Extract(r.Context(), name, data)
	if err != nil {
		writeDomainError(w, err, "")
		return
	}
	writeJSON(w, http.StatusOK, partial)
}

// ImportCV handles POST /api/v1/cv/import
func (h *Handlers) ImportCV(w http.ResponseWriter, r *http.Request) {
	uid, ok := ownerID(w, r)
	if !ok {
		return
	}
	name, data, ok := h.readUpload(w, r)
	if !ok {
		return
	}
	res, err := h.CVImport.Import(r.Context(), uid, name, data)
	if err != nil {
		writeDomainError(w, err, "draft not found")
		return
	}
	writeJSON(w, http.StatusOK, res)
}
