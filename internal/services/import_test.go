package services

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ngenohkevin/bookstore-admin/internal/models"
)

type importBackendStub struct {
	csvCalls    int
	booksCalls  int
	gotFileName string
	gotBooks    []models.BookRecord
	result      *models.ImportResult
	err         error
	uploadTotal int64
}

func (s *importBackendStub) ImportCSV(_ context.Context, _, fileName string, file io.Reader, onUpload func(sent, total int64)) (*models.ImportResult, error) {
	s.csvCalls++
	s.gotFileName = fileName
	if _, err := io.Copy(io.Discard, file); err != nil {
		return nil, err
	}
	if s.err != nil {
		return nil, s.err
	}
	if onUpload != nil && s.uploadTotal > 0 {
		onUpload(s.uploadTotal/2, s.uploadTotal)
		onUpload(s.uploadTotal, s.uploadTotal)
	}
	return s.result, nil
}

func (s *importBackendStub) ImportBooks(_ context.Context, _ string, books []models.BookRecord) (*models.ImportResult, error) {
	s.booksCalls++
	s.gotBooks = books
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func okResult() *models.ImportResult {
	return &models.ImportResult{Imported: 2, Total: 2, Errors: []string{}}
}

func TestImportCSVFileRequiresToken(t *testing.T) {
	backend := &importBackendStub{result: okResult()}
	svc := NewImportService(backend, nil)

	_, err := svc.ImportCSVFile(context.Background(), "  ", "books.csv", strings.NewReader("x"), nil)

	var importErr *models.ImportError
	require.ErrorAs(t, err, &importErr)
	assert.Equal(t, models.ImportErrorValidation, importErr.Kind)
	assert.Equal(t, "authentication required", importErr.Message)
	assert.Equal(t, 0, backend.csvCalls)
}

func TestImportCSVFileProgressBand(t *testing.T) {
	backend := &importBackendStub{result: okResult(), uploadTotal: 1000}
	svc := NewImportService(backend, nil)

	var progress []int
	result, err := svc.ImportCSVFile(context.Background(), "token", "books.csv", strings.NewReader("csv data"),
		func(percent int) { progress = append(progress, percent) })
	require.NoError(t, err)
	assert.Equal(t, 2, result.Imported)
	assert.Equal(t, "books.csv", backend.gotFileName)

	// 10 and 30 before the upload, the 30-90 band during it, 100 after.
	require.GreaterOrEqual(t, len(progress), 4)
	assert.Equal(t, 10, progress[0])
	assert.Equal(t, 30, progress[1])
	assert.Equal(t, 100, progress[len(progress)-1])
	for i := 1; i < len(progress); i++ {
		assert.GreaterOrEqual(t, progress[i], progress[i-1])
	}
	assert.Contains(t, progress, 60) // half uploaded: 30 + 0.5*60
	assert.Contains(t, progress, 90) // fully uploaded
}

func TestImportCSVFileBackendFailure(t *testing.T) {
	backend := &importBackendStub{err: models.NewBackendError("row 3: missing title")}
	svc := NewImportService(backend, nil)

	var progress []int
	_, err := svc.ImportCSVFile(context.Background(), "token", "books.csv", strings.NewReader("x"),
		func(percent int) { progress = append(progress, percent) })

	var importErr *models.ImportError
	require.ErrorAs(t, err, &importErr)
	assert.Equal(t, models.ImportErrorBackend, importErr.Kind)
	assert.NotContains(t, progress, 100)
}

func TestImportJSONRequiresToken(t *testing.T) {
	backend := &importBackendStub{result: okResult()}
	svc := NewImportService(backend, nil)

	_, err := svc.ImportJSON(context.Background(), "", `{"books":[]}`, nil)

	var importErr *models.ImportError
	require.ErrorAs(t, err, &importErr)
	assert.Equal(t, models.ImportErrorValidation, importErr.Kind)
	assert.Equal(t, 0, backend.booksCalls)
}

func TestImportJSONInvalidDocument(t *testing.T) {
	backend := &importBackendStub{result: okResult()}
	svc := NewImportService(backend, nil)

	_, err := svc.ImportJSON(context.Background(), "token", "{not json", nil)

	var importErr *models.ImportError
	require.ErrorAs(t, err, &importErr)
	assert.Equal(t, models.ImportErrorValidation, importErr.Kind)
	assert.True(t, strings.HasPrefix(importErr.Message, "invalid JSON data: "))
	assert.Equal(t, 0, backend.booksCalls)
}

func TestImportJSONEmptyBooksFailsBeforeNetwork(t *testing.T) {
	backend := &importBackendStub{result: okResult()}
	svc := NewImportService(backend, nil)

	for _, doc := range []string{`{"books":[]}`, `{}`, `{"other":1}`} {
		_, err := svc.ImportJSON(context.Background(), "token", doc, nil)

		var importErr *models.ImportError
		require.ErrorAs(t, err, &importErr, "doc %s", doc)
		assert.Equal(t, models.ImportErrorValidation, importErr.Kind)
		assert.Equal(t, "no valid books found in the data", importErr.Message)
	}
	assert.Equal(t, 0, backend.booksCalls)
}

func TestImportJSONProgressSequence(t *testing.T) {
	backend := &importBackendStub{result: okResult()}
	svc := NewImportService(backend, nil)

	var progress []int
	result, err := svc.ImportJSON(context.Background(), "token",
		`{"books":[{"title":"A","price":"9.99"}]}`,
		func(percent int) { progress = append(progress, percent) })
	require.NoError(t, err)
	assert.Equal(t, 2, result.Total)
	assert.Equal(t, []int{30, 50, 100}, progress)
	require.Len(t, backend.gotBooks, 1)
	assert.Equal(t, "A", backend.gotBooks[0].Title)
}

func TestImportJSONBackendFailureNotRetried(t *testing.T) {
	backend := &importBackendStub{err: errors.New("connection refused")}
	svc := NewImportService(backend, nil)

	_, err := svc.ImportJSON(context.Background(), "token", `{"books":[{"title":"A"}]}`, nil)
	require.Error(t, err)
	assert.Equal(t, 1, backend.booksCalls)
}

func TestPreviewCSV(t *testing.T) {
	svc := NewImportService(&importBackendStub{}, nil)

	csv := "title,price\nKept,5\nDropped,0\n"
	preview, err := svc.PreviewCSV(strings.NewReader(csv))
	require.NoError(t, err)
	assert.Equal(t, 2, preview.Total)
	assert.Equal(t, 1, preview.Skipped)
	require.Len(t, preview.Records, 1)
	assert.Equal(t, "Kept", preview.Records[0].Title)
}

func TestPreviewCSVMalformed(t *testing.T) {
	svc := NewImportService(&importBackendStub{}, nil)

	_, err := svc.PreviewCSV(strings.NewReader(""))

	var importErr *models.ImportError
	require.ErrorAs(t, err, &importErr)
	assert.Equal(t, models.ImportErrorValidation, importErr.Kind)
}
