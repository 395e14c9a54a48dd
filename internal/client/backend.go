package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/ngenohkevin/bookstore-admin/internal/models"
)

// Client talks to the catalog backend's REST API. It is the only component
// in this module that performs network I/O. Credentials are passed
// explicitly on every call rather than read from ambient state.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// New creates a backend client rooted at baseURL.
func New(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// ImportCSV submits a raw CSV document as a multipart upload to the bulk
// import endpoint. The backend parses and validates rows server-side.
// onUpload, when non-nil, receives upload progress as bytes sent out of the
// total request body size.
func (c *Client) ImportCSV(ctx context.Context, token, fileName string, file io.Reader, onUpload func(sent, total int64)) (*models.ImportResult, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("csvFile", fileName)
	if err != nil {
		return nil, models.NewTransportError("failed to build upload: " + err.Error())
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, models.NewTransportError("failed to read CSV file: " + err.Error())
	}
	if err := mw.Close(); err != nil {
		return nil, models.NewTransportError("failed to build upload: " + err.Error())
	}

	total := int64(body.Len())
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/import/books/csv",
		&progressReader{r: &body, total: total, fn: onUpload})
	if err != nil {
		return nil, models.NewTransportError(err.Error())
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.ContentLength = total
	setAuth(req, token)

	var result models.ImportResult
	if err := c.do(req, &result); err != nil {
		return nil, err
	}
	c.logger.Info("csv import submitted",
		slog.String("file", fileName),
		slog.Int("imported", result.Imported),
		slog.Int("total", result.Total))
	return &result, nil
}

// ImportBooks submits already-normalized records as a JSON body to the
// legacy structured import endpoint.
func (c *Client) ImportBooks(ctx context.Context, token string, books []models.BookRecord) (*models.ImportResult, error) {
	payload := map[string]any{"books": books}
	req, err := c.jsonRequest(ctx, http.MethodPost, "/book/import-csv", token, payload)
	if err != nil {
		return nil, err
	}
	var result models.ImportResult
	if err := c.do(req, &result); err != nil {
		return nil, err
	}
	c.logger.Info("structured import submitted",
		slog.Int("imported", result.Imported),
		slog.Int("total", result.Total))
	return &result, nil
}

// GenerateReport asks the backend to start building a sales-statistics
// report. The reporting user is derived from the token server-side.
func (c *Client) GenerateReport(ctx context.Context, token string) (*models.GenerateReportResponse, error) {
	req, err := c.jsonRequest(ctx, http.MethodPost, "/statistics/generate", token, map[string]any{})
	if err != nil {
		return nil, err
	}
	var resp models.GenerateReportResponse
	if err := c.do(req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetReportStatus fetches the current progress snapshot of a report.
func (c *Client) GetReportStatus(ctx context.Context, token, id string) (*models.ReportStatus, error) {
	req, err := c.jsonRequest(ctx, http.MethodGet, "/statistics/"+url.PathEscape(id)+"/status", token, nil)
	if err != nil {
		return nil, err
	}
	var status models.ReportStatus
	if err := c.do(req, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// GetReport fetches the full report body.
func (c *Client) GetReport(ctx context.Context, token, id string) (*models.Report, error) {
	req, err := c.jsonRequest(ctx, http.MethodGet, "/statistics/"+url.PathEscape(id), token, nil)
	if err != nil {
		return nil, err
	}
	var report models.Report
	if err := c.do(req, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

// ListReports fetches one page of the report history.
func (c *Client) ListReports(ctx context.Context, token string, page, limit int) (*models.ReportPage, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))
	req, err := c.jsonRequest(ctx, http.MethodGet, "/statistics?"+q.Encode(), token, nil)
	if err != nil {
		return nil, err
	}
	var result models.ReportPage
	if err := c.do(req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ListPendingCategories fetches the category review queue.
func (c *Client) ListPendingCategories(ctx context.Context, token string, filters models.PendingCategoryFilters) (*models.PendingCategoryPage, error) {
	q := url.Values{}
	if filters.Status != "" {
		q.Set("status", filters.Status)
	}
	if filters.Search != "" {
		q.Set("search", filters.Search)
	}
	if filters.Page > 0 {
		q.Set("page", strconv.Itoa(filters.Page))
	}
	if filters.Limit > 0 {
		q.Set("limit", strconv.Itoa(filters.Limit))
	}
	if filters.Sort != "" {
		q.Set("sort", filters.Sort)
	}
	path := "/category/pending"
	if encoded := q.Encode(); encoded != "" {
		path += "?" + encoded
	}
	req, err := c.jsonRequest(ctx, http.MethodGet, path, token, nil)
	if err != nil {
		return nil, err
	}
	var result models.PendingCategoryPage
	if err := c.do(req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetPendingCategoryStats fetches queue counts by status.
func (c *Client) GetPendingCategoryStats(ctx context.Context, token string) (*models.PendingCategoryStats, error) {
	req, err := c.jsonRequest(ctx, http.MethodGet, "/category/pending/stats", token, nil)
	if err != nil {
		return nil, err
	}
	var stats models.PendingCategoryStats
	if err := c.do(req, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// ApprovePendingCategory promotes a proposal into a real category.
func (c *Client) ApprovePendingCategory(ctx context.Context, token, id string, reqBody models.ApprovePendingCategoryRequest) (*models.PendingCategory, error) {
	req, err := c.jsonRequest(ctx, http.MethodPut, "/category/pending/"+url.PathEscape(id)+"/approve", token, reqBody)
	if err != nil {
		return nil, err
	}
	var category models.PendingCategory
	if err := c.do(req, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

// RejectPendingCategory declines a proposal.
func (c *Client) RejectPendingCategory(ctx context.Context, token, id string, reqBody models.RejectPendingCategoryRequest) (*models.PendingCategory, error) {
	req, err := c.jsonRequest(ctx, http.MethodPut, "/category/pending/"+url.PathEscape(id)+"/reject", token, reqBody)
	if err != nil {
		return nil, err
	}
	var category models.PendingCategory
	if err := c.do(req, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

func (c *Client) jsonRequest(ctx context.Context, method, path, token string, payload any) (*http.Request, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, models.NewValidationError("failed to encode request: " + err.Error())
		}
		body = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, models.NewTransportError(err.Error())
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	setAuth(req, token)
	return req, nil
}

// do executes the request and decodes the response body into out. The
// backend wraps most payloads in a {data: ...} envelope but some legacy
// endpoints return the payload bare; both shapes are accepted.
func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return models.NewTransportError(err.Error())
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return models.NewTransportError("failed to read backend response: " + err.Error())
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return models.NewBackendError(backendMessage(resp.StatusCode, data))
	}
	if out == nil {
		return nil
	}
	return decodeData(data, out)
}

func decodeData(data []byte, out any) error {
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(data, &envelope); err == nil &&
		len(envelope.Data) > 0 && string(envelope.Data) != "null" {
		if err := json.Unmarshal(envelope.Data, out); err == nil {
			return nil
		}
	}
	if err := json.Unmarshal(data, out); err != nil {
		return models.NewTransportError("failed to decode backend response: " + err.Error())
	}
	return nil
}

// backendMessage extracts the backend's message field when present, falling
// back to a generic status-based message.
func backendMessage(status int, data []byte) string {
	var flat struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &flat); err == nil && flat.Message != "" {
		return flat.Message
	}
	var nested struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(data, &nested); err == nil && nested.Error.Message != "" {
		return nested.Error.Message
	}
	return fmt.Sprintf("backend returned status %d", status)
}

func setAuth(req *http.Request, token string) {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

// progressReader reports cumulative bytes read through it, which for an
// outgoing request body equals bytes sent upstream.
type progressReader struct {
	r     io.Reader
	total int64
	sent  int64
	fn    func(sent, total int64)
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.sent += int64(n)
		if p.fn != nil {
			p.fn(p.sent, p.total)
		}
	}
	return n, err
}
