package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/HamzaKhandev1446/Portfolio-builder-app/internal/config"
	"github.com/HamzaKhandev1446/Portfolio-builder-app/internal/cvextract"
	"github.com/HamzaKhandev1446/Portfolio-builder-app/internal/service"
)

// runCV handles "folio cv extract <file>".
func runCV(args []string) error {
	if len(args) < 2 || args[0] != "extract" {
		fmt.Fprintln(os.Stderr, "Usage: folio cv extract <file>")
		return fmt.Errorf("cv: expected \"extract <file>\"")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	svc := service.NewCVImportService(cvextract.New(), nil, cfg.Import.MaxBytes)
	return extractCV(context.Background(), os.Stdout, svc, args[1])
}

func extractCV(ctx context.Context, w io.Writer, svc *service.CVImportService, path string) error {
	data, err := os.ReadFile(path) //nolint:gosec // path is the operator's own argument
	if err != nil {
		return fmt.Errorf("read cv: %w", err)
	}
	partial, err := svc.Extract(ctx, filepath.Base(path), data)
	if err != nil {
		return err
	}
	return writeIndented(w, partial)
}

// resolveOutput is what "folio resolve" prints.
type resolveOutput struct {
	service.Resolution
	Found   bool   `json:"found"`
	Message string `json:"message,omitempty"`
}

// runResolve handles "folio resolve", which runs the resolver against the
// configured document store.
func runResolve(args []string) error {
	fs := flag.NewFlagSet("resolve", flag.ContinueOnError)
	userID := fs.String("user-id", "", "route user ID")
	username := fs.String("username", "", "route username")
	domainPath := fs.String("domain-path", "", "path-based domain segment")
	host := fs.String("host", "", "request host")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	ctx := context.Background()
	docs, closeDocs, err := openDocStore(ctx, cfg.Store)
	if err != nil {
		return err
	}
	defer closeDocs()

	resolver := service.NewResolverService(docs, nil, cfg.Site.PrimaryHost, cfg.Store.LookupTimeout)
	return printResolution(ctx, os.Stdout, resolver, service.Signals{
		RouteUserID:   *userID,
		RouteUsername: *username,
		DomainPath:    *domainPath,
		Host:          *host,
	})
}

func printResolution(ctx context.Context, w io.Writer, resolver *service.ResolverService, sig service.Signals) error {
	res := resolver.Resolve(ctx, sig)
	out := resolveOutput{Resolution: res, Found: res.Found()}
	if !res.Found() {
		out.Message = res.NotFoundMessage()
	}
	return writeIndented(w, out)
}

func writeIndented(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
