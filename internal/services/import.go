package services

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"strings"

	"github.com/ngenohkevin/bookstore-admin/internal/importer"
	"github.com/ngenohkevin/bookstore-admin/internal/models"
)

// ImportBackend is the slice of the catalog API the import orchestrator
// needs. The production implementation is client.Client.
type ImportBackend interface {
	ImportCSV(ctx context.Context, token, fileName string, file io.Reader, onUpload func(sent, total int64)) (*models.ImportResult, error)
	ImportBooks(ctx context.Context, token string, books []models.BookRecord) (*models.ImportResult, error)
}

// ProgressFunc receives overall operation progress as a percentage, 0-100.
type ProgressFunc func(percent int)

// ImportService orchestrates the two mutually exclusive import modes. CSV
// mode forwards the raw file to the bulk import endpoint; JSON mode parses a
// {books: [...]} document and submits the records to the legacy structured
// endpoint. Both converge on models.ImportResult. Failed imports are never
// retried; the caller resubmits.
type ImportService struct {
	backend ImportBackend
	logger  *slog.Logger
}

// NewImportService creates a new import orchestrator.
func NewImportService(backend ImportBackend, logger *slog.Logger) *ImportService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ImportService{backend: backend, logger: logger}
}

// ImportCSVFile submits a raw CSV file in csv mode. The upload occupies the
// 30-90 band of the progress indicator, leaving headroom for file validation
// at the start and server-side acknowledgement at the end.
func (s *ImportService) ImportCSVFile(ctx context.Context, token, fileName string, file io.Reader, onProgress ProgressFunc) (*models.ImportResult, error) {
	if err := requireToken(token); err != nil {
		return nil, err
	}
	report := reporter(onProgress)
	report(10)
	report(30)

	result, err := s.backend.ImportCSV(ctx, token, fileName, file, func(sent, total int64) {
		if total <= 0 {
			return
		}
		report(30 + int(float64(sent)/float64(total)*60))
	})
	if err != nil {
		s.logger.Warn("csv import failed", slog.String("file", fileName), slog.Any("error", err))
		return nil, err
	}
	report(100)
	return result, nil
}

// ImportJSON submits pasted JSON text in json mode. An empty book list is a
// validation failure detected before any network call.
func (s *ImportService) ImportJSON(ctx context.Context, token, jsonText string, onProgress ProgressFunc) (*models.ImportResult, error) {
	if err := requireToken(token); err != nil {
		return nil, err
	}

	var payload struct {
		Books []models.BookRecord `json:"books"`
	}
	if err := json.Unmarshal([]byte(jsonText), &payload); err != nil {
		return nil, models.NewValidationError("invalid JSON data: " + err.Error())
	}

	report := reporter(onProgress)
	report(30)

	if len(payload.Books) == 0 {
		return nil, models.NewValidationError("no valid books found in the data")
	}
	report(50)

	result, err := s.backend.ImportBooks(ctx, token, payload.Books)
	if err != nil {
		s.logger.Warn("json import failed", slog.Any("error", err))
		return nil, err
	}
	report(100)
	return result, nil
}

// PreviewCSV runs the record builder over a CSV document and returns the
// normalized records without contacting the backend.
func (s *ImportService) PreviewCSV(file io.Reader) (*models.ImportPreview, error) {
	records, skipped, err := importer.BuildRecords(file)
	if err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	return &models.ImportPreview{
		Records: records,
		Total:   len(records) + skipped,
		Skipped: skipped,
	}, nil
}

func requireToken(token string) error {
	if strings.TrimSpace(token) == "" {
		return models.NewValidationError("authentication required")
	}
	return nil
}

func reporter(onProgress ProgressFunc) func(int) {
	return func(percent int) {
		if onProgress != nil {
			if percent > 100 {
				percent = 100
			}
			onProgress(percent)
		}
	}
}
