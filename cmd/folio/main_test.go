package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/HamzaKhandev1446/Portfolio-builder-app/internal/adapter/memkv"
	"github.com/HamzaKhandev1446/Portfolio-builder-app/internal/cvextract"
	"github.com/HamzaKhandev1446/Portfolio-builder-app/internal/domain/portfolio"
	"github.com/HamzaKhandev1446/Portfolio-builder-app/internal/port/docstore"
	"github.com/HamzaKhandev1446/Portfolio-builder-app/internal/service"
)

func TestOriginPatterns(t *testing.T) {
	tests := []struct {
		origin string
		want   []string
	}{
		{"http://localhost:3000", []string{"localhost:3000"}},
		{"https://editor.folio.app", []string{"editor.folio.app"}},
		{"*", nil},
		{"", nil},
	}
	for _, tt := range tests {
		if got := originPatterns(tt.origin); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("originPatterns(%q) = %v, want %v", tt.origin, got, tt.want)
		}
	}
}

func TestExtractCV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cv.txt")
	if err := os.WriteFile(path, []byte("Jane Doe\nemail: jane@example.com\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	svc := service.NewCVImportService(cvextract.New(), nil, 1<<20)
	if err := extractCV(context.Background(), &buf, svc, path); err != nil {
		t.Fatalf("extractCV: %v", err)
	}

	var got portfolio.Partial
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
	}
	if got.Profile == nil || got.Profile.Email != "jane@example.com" {
		t.Errorf("profile = %+v", got.Profile)
	}
}

func TestExtractCV_MissingFile(t *testing.T) {
	svc := service.NewCVImportService(cvextract.New(), nil, 1<<20)
	err := extractCV(context.Background(), &bytes.Buffer{}, svc, filepath.Join(t.TempDir(), "nope.txt"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestPrintResolution(t *testing.T) {
	ctx := context.Background()
	store := memkv.New()
	if err := docstore.SetJSON(ctx, store, docstore.UsernamePath("jane-doe"), "owner-1"); err != nil {
		t.Fatal(err)
	}
	resolver := service.NewResolverService(store, nil, "folio.app", time.Second)

	tests := []struct {
		name    string
		sig     service.Signals
		want    resolveOutput
		message string
	}{
		{
			name: "username",
			sig:  service.Signals{RouteUsername: "jane-doe", Host: "folio.app"},
			want: resolveOutput{Resolution: service.Resolution{UserID: "owner-1", Source: service.SourceUsername}, Found: true},
		},
		{
			name: "unknown domain",
			sig:  service.Signals{DomainPath: "nobody.dev"},
			want: resolveOutput{
				Resolution: service.Resolution{Source: service.SourceNone, DomainSignal: true},
				Message:    "Domain not configured or portfolio not found",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := printResolution(ctx, &buf, resolver, tt.sig); err != nil {
				t.Fatalf("printResolution: %v", err)
			}
			var got resolveOutput
			if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if got != tt.want {
				t.Errorf("output = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestRunHelp(t *testing.T) {
	if err := run([]string{"help"}); err != nil {
		t.Errorf("help: %v", err)
	}
	if err := run([]string{"cv"}); err == nil {
		t.Error("cv without arguments should fail")
	}
}
