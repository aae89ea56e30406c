package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/HamzaKhandev1446/Portfolio-builder-app/internal/cvextract"
	"github.com/HamzaKhandev1446/Portfolio-builder-app/internal/domain"
	"github.com/HamzaKhandev1446/Portfolio-builder-app/internal/service"
)

func TestWriteDomainError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"not found", fmt.Errorf("draft of u1: %w", domain.ErrNotFound), http.StatusNotFound, "fallback"},
		{"conflict", fmt.Errorf("%w: Email is already in use", domain.ErrConflict), http.StatusConflict, "Email is already in use"},
		{"wrapped conflict", fmt.Errorf("register username: %w", fmt.Errorf("%w: username taken", domain.ErrConflict)), http.StatusConflict, "username taken"},
		{"validation", fmt.Errorf("%w: templateId is required", domain.ErrValidation), http.StatusBadRequest, "templateId is required"},
		{"format", fmt.Errorf("%w: %s", domain.ErrUnsupportedFormat, service.PDFNotSupportedMessage), http.StatusUnsupportedMediaType, service.PDFNotSupportedMessage},
		{"too large", fmt.Errorf("%w: limit is 10 bytes", service.ErrFileTooLarge), http.StatusRequestEntityTooLarge, "file too large: limit is 10 bytes"},
		{"extraction", &cvextract.Error{Rule: "skills", Detail: "boom"}, http.StatusUnprocessableEntity, "Error parsing CV: boom"},
		{"credentials", service.ErrInvalidCredentials, http.StatusUnauthorized, "invalid credentials"},
		{"disabled", service.ErrAccountDisabled, http.StatusUnauthorized, "invalid credentials"},
		{"store", fmt.Errorf("%w: save draft: %w", service.ErrStoreUnavailable, errors.New("nats: timeout")), http.StatusBadGateway, "store unavailable"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "internal server error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeDomainError(rec, tt.err, "fallback")

			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d", rec.Code, tt.status)
			}
			var body errorResponse
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body.Error != tt.message {
				t.Errorf("message = %q, want %q", body.Error, tt.message)
			}
		})
	}
}
