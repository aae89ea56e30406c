package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/HamzaKhandev1446/Portfolio-builder-app/internal/cvextract"
	"github.com/HamzaKhandev1446/Portfolio-builder-app/internal/domain"
	"github.com/HamzaKhandev1446/Portfolio-builder-app/internal/domain/portfolio"
	"github.com/HamzaKhandev1446/Portfolio-builder-app/internal/resilience"
)

const cvText = `Jane Doe
email: jane@example.com
title: Platform Engineer
location: Berlin, Germany
Skills: Go, Kubernetes, PostgreSQL, Docker, Terraform and a few other things I like
`

func newTestCVImportService(t *testing.T, rules ...cvextract.Rule) (*CVImportService, *PortfolioService) {
	t.Helper()
	ps := newTestPortfolioService(t, newFaultyStore())
	opts := []cvextract.Option{cvextract.WithClock(func() time.Time { return testNow })}
	if len(rules) > 0 {
		opts = append(opts, cvextract.WithRules(rules...))
	}
	return NewCVImportService(cvextract.New(opts...), ps, 1<<10), ps
}

func TestCVImportService_Extract(t *testing.T) {
	svc, _ := newTestCVImportService(t)

	got, err := svc.Extract(context.Background(), "cv.txt", []byte(cvText))
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if got.Profile == nil || got.Profile.Name != "Jane Doe" || got.Profile.Email != "jane@example.com" {
		t.Errorf("profile = %+v", got.Profile)
	}
	if len(got.Skills) == 0 {
		t.Error("no skills extracted")
	}
}

func TestCVImportService_RejectsUploads(t *testing.T) {
	svc, _ := newTestCVImportService(t)
	pdf := []byte("%PDF-1.4\n1 0 obj\n<<>>\nendobj\n")
	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

	tests := []struct {
		name     string
		filename string
		data     []byte
		sentinel error
		message  string
	}{
		{"pdf content", "cv.txt", pdf, domain.ErrUnsupportedFormat, PDFNotSupportedMessage},
		{"pdf extension", "cv.pdf", []byte(cvText), domain.ErrUnsupportedFormat, PDFNotSupportedMessage},
		{"image", "cv.png", png, domain.ErrUnsupportedFormat, "Unsupported file type: image/png"},
		{"empty", "cv.txt", nil, domain.ErrValidation, "file is empty"},
		{"too large", "cv.txt", []byte(strings.Repeat("a", 2<<10)), ErrFileTooLarge, "limit is 1024 bytes"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Extract(context.Background(), tt.filename, tt.data)
			if !errors.Is(err, tt.sentinel) {
				t.Fatalf("err = %v, want %v", err, tt.sentinel)
			}
			if !strings.Contains(err.Error(), tt.message) {
				t.Errorf("err = %q, want %q", err, tt.message)
			}
		})
	}
}

func TestCVImportService_ExtractionFault(t *testing.T) {
	broken := cvextract.Rule{
		Name:  "broken",
		Apply: func(*cvextract.Document, *portfolio.Partial) { panic("boom") },
	}
	svc, _ := newTestCVImportService(t, broken)

	got, err := svc.Extract(context.Background(), "cv.txt", []byte(cvText))
	if got != nil {
		t.Errorf("partial result returned on fault: %+v", got)
	}
	var ee *cvextract.Error
	if !errors.As(err, &ee) {
		t.Fatalf("err = %v, want *cvextract.Error", err)
	}
	if err.Error() != "Error parsing CV: boom" {
		t.Errorf("message = %q", err.Error())
	}
}

func TestCVImportService_ImportMergesIntoDraft(t *testing.T) {
	svc, ps := newTestCVImportService(t)
	ctx := context.Background()

	res, err := svc.Import(ctx, "u1", "cv.txt", []byte(cvText))
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if res.Draft.Profile.Name != "Jane Doe" {
		t.Errorf("draft name = %q", res.Draft.Profile.Name)
	}

	draft, err := ps.GetDraft(ctx, "u1")
	if err != nil {
		t.Fatalf("get draft: %v", err)
	}
	if draft.Profile.Title != "Platform Engineer" || len(draft.Skills) != res.Stats.Skills {
		t.Errorf("stored draft = %+v", draft)
	}
}

func TestCVImportService_PoolCanceled(t *testing.T) {
	svc, _ := newTestCVImportService(t)
	pool := resilience.NewPool(1)
	svc.SetPool(pool)

	occupied := make(chan struct{})
	release := make(chan struct{})
	go func() {
		_ = pool.Run(context.Background(), func() error {
			close(occupied)
			<-release
			return nil
		})
	}()
	<-occupied
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := svc.Extract(ctx, "cv.txt", []byte(cvText)); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}
