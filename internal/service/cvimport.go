package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"

	cfotel "github.com/HamzaKhandev1446/Portfolio-builder-app/internal/adapter/otel"
	"github.com/HamzaKhandev1446/Portfolio-builder-app/internal/cvextract"
	"github.com/HamzaKhandev1446/Portfolio-builder-app/internal/domain"
	"github.com/HamzaKhandev1446/Portfolio-builder-app/internal/domain/portfolio"
	"github.com/HamzaKhandev1446/Portfolio-builder-app/internal/resilience"
)

// PDFNotSupportedMessage is returned for PDF uploads.
const PDFNotSupportedMessage = "PDF parsing is not yet supported. Please convert your CV to a text file (.txt) first."

// ErrFileTooLarge is returned for uploads above the configured limit.
var ErrFileTooLarge = errors.New("file too large")

// CVImportService checks uploaded CV files and runs the extractor over them.
type CVImportService struct {
	extractor  *cvextract.Extractor
	portfolios *PortfolioService
	maxBytes   int64
	pool       *resilience.Pool
	metrics    *cfotel.Metrics
}

// NewCVImportService creates a CVImportService.
func NewCVImportService(extractor *cvextract.Extractor, portfolios *PortfolioService, maxBytes int64) *CVImportService {
	return &CVImportService{
		extractor:  extractor,
		portfolios: portfolios,
		maxBytes:   maxBytes,
	}
}

// SetPool bounds concurrent extractions. Without a pool they are unbounded.
func (s *CVImportService) SetPool(p *resilience.Pool) { s.pool = p }

// SetMetrics attaches metric instruments.
func (s *CVImportService) SetMetrics(m *cfotel.Metrics) { s.metrics = m }

// MaxBytes is the upload size limit.
func (s *CVImportService) MaxBytes() int64 { return s.maxBytes }

// Extract returns the structured data found in an uploaded CV.
func (s *CVImportService) Extract(ctx context.Context, filename string, data []byte) (*portfolio.Partial, error) {
	mime, err := s.checkUpload(filename, data)
	if err != nil {
		s.metrics.RecordCVImport(ctx, "rejected", 0)
		return nil, err
	}

	ctx, span := cfotel.StartCVExtractSpan(ctx, mime, len(data))
	defer span.End()

	var out *portfolio.Partial
	start := time.Now()
	err = s.pool.Run(ctx, func() error {
		var runErr error
		out, runErr = s.extractor.Extract(string(data))
		return runErr
	})
	elapsed := time.Since(start).Seconds()
	if err != nil {
		span.RecordError(err)
		s.metrics.RecordCVImport(ctx, "error", elapsed)
		var ee *cvextract.Error
		if errors.As(err, &ee) {
			slog.Error("cv extraction fault", "rule", ee.Rule, "detail", ee.Detail)
		}
		return nil, err
	}
	s.metrics.RecordCVImport(ctx, "ok", elapsed)
	return out, nil
}

// Import extracts a CV and merges the result into the owner's draft.
func (s *CVImportService) Import(ctx context.Context, userID, filename string, data []byte) (*ImportResult, error) {
	imp, err := s.Extract(ctx, filename, data)
	if err != nil {
		return nil, err
	}
	return s.portfolios.ApplyImport(ctx, userID, imp)
}

// checkUpload rejects oversized, empty and non-text files before any parsing.
func (s *CVImportService) checkUpload(filename string, data []byte) (string, error) {
	if s.maxBytes > 0 && int64(len(data)) > s.maxBytes {
		return "", fmt.Errorf("%w: limit is %d bytes", ErrFileTooLarge, s.maxBytes)
	}
	if len(data) == 0 {
		return "", fmt.Errorf("%w: file is empty", domain.ErrValidation)
	}

	mt := mimetype.Detect(data)
	if mt.Is("application/pdf") || strings.EqualFold(filepath.Ext(filename), ".pdf") {
		return mt.String(), fmt.Errorf("%w: %s", domain.ErrUnsupportedFormat, PDFNotSupportedMessage)
	}
	for m := mt; m != nil; m = m.Parent() {
		if m.Is("text/plain") {
			return mt.String(), nil
		}
	}
	return mt.String(), fmt.Errorf("%w: Unsupported file type: %s", domain.ErrUnsupportedFormat, mt.String())
}
