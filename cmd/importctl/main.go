package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/ngenohkevin/bookstore-admin/internal/client"
	"github.com/ngenohkevin/bookstore-admin/internal/importer"
	"github.com/ngenohkevin/bookstore-admin/internal/services"
)

func main() {
	var (
		file    = flag.String("file", "", "input CSV path")
		server  = flag.String("server", "http://localhost:8080/router", "catalog backend base URL")
		token   = flag.String("token", os.Getenv("BOOKADMIN_TOKEN"), "bearer token (defaults to BOOKADMIN_TOKEN)")
		mode    = flag.String("mode", "preview", "preview | csv | json")
		timeout = flag.Duration("timeout", 2*time.Minute, "request timeout")
	)
	flag.Parse()

	if *file == "" {
		log.Fatal("-file is required")
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	backend := client.New(*server, *timeout, logger)
	importService := services.NewImportService(backend, logger)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	switch *mode {
	case "preview":
		runPreview(importService, *file)
	case "csv":
		runCSV(ctx, importService, *token, *file)
	case "json":
		runJSON(ctx, importService, *token, *file)
	default:
		log.Fatalf("unknown mode %q", *mode)
	}
}

// runPreview parses the CSV locally and prints the normalized records.
func runPreview(importService *services.ImportService, path string) {
	f, err := os.Open(path)
	if err != nil {
		log.Fatalf("open CSV failed: %v", err)
	}
	defer f.Close()

	preview, err := importService.PreviewCSV(f)
	if err != nil {
		log.Fatalf("preview failed: %v", err)
	}

	out, err := json.MarshalIndent(preview.Records, "", "  ")
	if err != nil {
		log.Fatalf("encode preview failed: %v", err)
	}
	fmt.Println(string(out))
	log.Printf("%d record(s) importable, %d row(s) skipped", len(preview.Records), preview.Skipped)
}

// runCSV uploads the raw file to the bulk import endpoint.
func runCSV(ctx context.Context, importService *services.ImportService, token, path string) {
	f, err := os.Open(path)
	if err != nil {
		log.Fatalf("open CSV failed: %v", err)
	}
	defer f.Close()

	result, err := importService.ImportCSVFile(ctx, token, filepath.Base(path), f, func(percent int) {
		fmt.Fprintf(os.Stderr, "\rprogress: %3d%%", percent)
	})
	fmt.Fprintln(os.Stderr)
	if err != nil {
		log.Fatalf("import failed: %v", err)
	}
	printResult(result.Imported, result.Total, result.Errors)
}

// runJSON builds records locally and submits them to the legacy structured
// endpoint, the path for backends without server-side CSV parsing.
func runJSON(ctx context.Context, importService *services.ImportService, token, path string) {
	f, err := os.Open(path)
	if err != nil {
		log.Fatalf("open CSV failed: %v", err)
	}
	defer f.Close()

	records, skipped, err := importer.BuildRecords(f)
	if err != nil {
		log.Fatalf("parse CSV failed: %v", err)
	}
	if skipped > 0 {
		log.Printf("skipped %d row(s) failing the inclusion filter", skipped)
	}

	payload, err := json.Marshal(map[string]any{"books": records})
	if err != nil {
		log.Fatalf("encode books failed: %v", err)
	}

	result, err := importService.ImportJSON(ctx, token, string(payload), nil)
	if err != nil {
		log.Fatalf("import failed: %v", err)
	}
	printResult(result.Imported, result.Total, result.Errors)
}

func printResult(imported, total int, errors []string) {
	log.Printf("imported %d of %d book(s)", imported, total)
	for _, e := range errors {
		log.Printf("  error: %s", e)
	}
}
