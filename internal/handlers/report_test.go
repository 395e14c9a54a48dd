package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ngenohkevin/bookstore-admin/internal/models"
	"github.com/ngenohkevin/bookstore-admin/internal/services"
)

type reportBackendStub struct {
	status    *models.ReportStatus
	statusErr error
	report    *models.Report
}

func (s *reportBackendStub) GenerateReport(context.Context, string) (*models.GenerateReportResponse, error) {
	return &models.GenerateReportResponse{ID: "rep-1", Status: "generating", EstimatedTime: "2-3 minutes"}, nil
}

func (s *reportBackendStub) GetReportStatus(context.Context, string, string) (*models.ReportStatus, error) {
	return s.status, s.statusErr
}

func (s *reportBackendStub) GetReport(context.Context, string, string) (*models.Report, error) {
	return s.report, nil
}

func (s *reportBackendStub) ListReports(context.Context, string, int, int) (*models.ReportPage, error) {
	return &models.ReportPage{Pagination: models.Pagination{Page: 1, Limit: 10}}, nil
}

func reportTestRouter(backend services.ReportBackend) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := services.NewReportService(backend, nil, 10*time.Millisecond, nil)
	handler := NewReportHandler(svc)

	r := gin.New()
	auth := r.Group("", withToken("tok"))
	auth.POST("/statistics", handler.GenerateReport)
	auth.GET("/statistics", handler.ListReports)
	auth.GET("/statistics/:id", handler.GetReport)
	auth.GET("/statistics/:id/status", handler.GetReportStatus)
	auth.GET("/statistics/:id/wait", handler.WaitReport)
	return r
}

func TestGenerateReportAccepted(t *testing.T) {
	r := reportTestRouter(&reportBackendStub{})

	req := httptest.NewRequest(http.MethodPost, "/statistics", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusAccepted, w.Code)
	var resp struct {
		Data models.GenerateReportResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "rep-1", resp.Data.ID)
}

func TestGetReportStatusEndpoint(t *testing.T) {
	backend := &reportBackendStub{
		status: &models.ReportStatus{ID: "rep-1", Status: models.ReportGenerating, Progress: 70},
	}
	r := reportTestRouter(backend)

	req := httptest.NewRequest(http.MethodGet, "/statistics/rep-1/status", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Data models.ReportStatus `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 70, resp.Data.Progress)
}

func TestGetReportStatusBackendDown(t *testing.T) {
	backend := &reportBackendStub{statusErr: models.NewTransportError("connection refused")}
	r := reportTestRouter(backend)

	req := httptest.NewRequest(http.MethodGet, "/statistics/rep-1/status", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, "BACKEND_UNREACHABLE", decodeError(t, w).Code)
}

func TestWaitReportReturnsCompletedReport(t *testing.T) {
	backend := &reportBackendStub{
		status: &models.ReportStatus{ID: "rep-1", Status: models.ReportCompleted, Progress: 100},
		report: &models.Report{ID: "rep-1", Title: "Monthly Sales"},
	}
	r := reportTestRouter(backend)

	req := httptest.NewRequest(http.MethodGet, "/statistics/rep-1/wait", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Data models.Report `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Monthly Sales", resp.Data.Title)
}

func TestListReportsEndpoint(t *testing.T) {
	r := reportTestRouter(&reportBackendStub{})

	req := httptest.NewRequest(http.MethodGet, "/statistics?page=1&limit=10", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
