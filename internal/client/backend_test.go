package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ngenohkevin/bookstore-admin/internal/models"
)

func newTestClient(url string) *Client {
	return New(url, 5*time.Second, nil)
}

func TestImportCSVMultipartRequest(t *testing.T) {
	var gotAuth, gotFileName, gotContent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/import/books/csv", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")

		file, header, err := r.FormFile("csvFile")
		require.NoError(t, err)
		defer file.Close()
		gotFileName = header.Filename
		data, err := io.ReadAll(file)
		require.NoError(t, err)
		gotContent = string(data)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"imported":2,"total":3,"errors":["row 2: duplicate isbn"],"books":[]}}`))
	}))
	defer server.Close()

	var lastSent, lastTotal int64
	result, err := newTestClient(server.URL).ImportCSV(
		context.Background(), "tok-123", "books.csv", strings.NewReader("title,price\nA,1\n"),
		func(sent, total int64) { lastSent, lastTotal = sent, total })
	require.NoError(t, err)

	assert.Equal(t, "Bearer tok-123", gotAuth)
	assert.Equal(t, "books.csv", gotFileName)
	assert.Equal(t, "title,price\nA,1\n", gotContent)
	assert.Equal(t, 2, result.Imported)
	assert.Equal(t, 3, result.Total)
	assert.Equal(t, []string{"row 2: duplicate isbn"}, result.Errors)
	assert.Equal(t, lastTotal, lastSent)
	assert.Greater(t, lastTotal, int64(0))
}

func TestImportBooksJSONRequest(t *testing.T) {
	var gotBody map[string][]models.BookRecord
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/book/import-csv", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		_, _ = w.Write([]byte(`{"imported":1,"total":1,"errors":[]}`))
	}))
	defer server.Close()

	books := []models.BookRecord{{Title: "A", Price: "9.99", Slug: "a-1"}}
	result, err := newTestClient(server.URL).ImportBooks(context.Background(), "tok", books)
	require.NoError(t, err)

	// Bare (un-enveloped) response bodies decode too.
	assert.Equal(t, 1, result.Imported)
	require.Len(t, gotBody["books"], 1)
	assert.Equal(t, "A", gotBody["books"][0].Title)
}

func TestGetReportStatusEnvelopedAndBare(t *testing.T) {
	bodies := []string{
		`{"data":{"id":"rep-1","status":"generating","progress":40,"message":"crunching"}}`,
		`{"id":"rep-1","status":"generating","progress":40,"message":"crunching"}`,
	}
	for _, body := range bodies {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/statistics/rep-1/status", r.URL.Path)
			_, _ = w.Write([]byte(body))
		}))

		status, err := newTestClient(server.URL).GetReportStatus(context.Background(), "tok", "rep-1")
		server.Close()
		require.NoError(t, err, "body %s", body)
		assert.Equal(t, models.ReportGenerating, status.Status)
		assert.Equal(t, 40, status.Progress)
		assert.Equal(t, "crunching", status.Message)
	}
}

func TestBackendErrorMessageExtraction(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		expected string
	}{
		{
			name:     "flat message",
			status:   http.StatusBadRequest,
			body:     `{"message":"invalid csv header"}`,
			expected: "invalid csv header",
		},
		{
			name:     "nested error message",
			status:   http.StatusUnprocessableEntity,
			body:     `{"error":{"message":"isbn already exists"}}`,
			expected: "isbn already exists",
		},
		{
			name:     "no message falls back to status",
			status:   http.StatusInternalServerError,
			body:     `<html>oops</html>`,
			expected: "backend returned status 500",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			_, err := newTestClient(server.URL).GenerateReport(context.Background(), "tok")

			var importErr *models.ImportError
			require.ErrorAs(t, err, &importErr)
			assert.Equal(t, models.ImportErrorBackend, importErr.Kind)
			assert.Equal(t, tt.expected, importErr.Message)
		})
	}
}

func TestUnreachableBackendIsTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close() // nothing listening anymore

	_, err := newTestClient(server.URL).GenerateReport(context.Background(), "tok")

	var importErr *models.ImportError
	require.ErrorAs(t, err, &importErr)
	assert.Equal(t, models.ImportErrorTransport, importErr.Kind)
}

func TestListReportsQuery(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/statistics", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "25", r.URL.Query().Get("limit"))
		_, _ = w.Write([]byte(`{"data":[],"pagination":{"page":2,"limit":25,"total":0,"pages":0}}`))
	}))
	defer server.Close()

	page, err := newTestClient(server.URL).ListReports(context.Background(), "tok", 2, 25)
	require.NoError(t, err)
	assert.Equal(t, 2, page.Pagination.Page)
}

func TestListPendingCategoriesFilters(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/category/pending", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "pending", q.Get("status"))
		assert.Equal(t, "fantasy", q.Get("search"))
		assert.Equal(t, "3", q.Get("page"))
		assert.False(t, q.Has("sort"))
		_, _ = w.Write([]byte(`{"data":[],"pagination":{"page":3,"limit":10,"total":0,"pages":0}}`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).ListPendingCategories(context.Background(), "tok",
		models.PendingCategoryFilters{Status: "pending", Search: "fantasy", Page: 3, Limit: 10})
	require.NoError(t, err)
}

func TestApprovePendingCategoryRequest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/category/pending/pc-1/approve", r.URL.Path)

		var body models.ApprovePendingCategoryRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Thriller", body.CategoryName)

		_, _ = w.Write([]byte(`{"data":{"_id":"pc-1","status":"approved"}}`))
	}))
	defer server.Close()

	category, err := newTestClient(server.URL).ApprovePendingCategory(context.Background(), "tok", "pc-1",
		models.ApprovePendingCategoryRequest{CategoryName: "Thriller"})
	require.NoError(t, err)
	assert.Equal(t, "approved", category.Status)
}

func TestNoAuthHeaderWithoutToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"data":{}}`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).GetReportStatus(context.Background(), "", "rep-1")
	require.NoError(t, err)
}
