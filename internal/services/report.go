package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/ngenohkevin/bookstore-admin/internal/models"
)

const defaultPollInterval = 3 * time.Second

// ReportBackend is the slice of the catalog API the report service needs.
type ReportBackend interface {
	GenerateReport(ctx context.Context, token string) (*models.GenerateReportResponse, error)
	GetReportStatus(ctx context.Context, token, id string) (*models.ReportStatus, error)
	GetReport(ctx context.Context, token, id string) (*models.Report, error)
	ListReports(ctx context.Context, token string, page, limit int) (*models.ReportPage, error)
}

// StatusCache absorbs dashboard polling bursts with a short-lived snapshot
// of each report's status. Entries expire on their own; nothing here is
// persistent state.
type StatusCache interface {
	LookupReportStatus(ctx context.Context, id string) (*models.ReportStatus, bool)
	StoreReportStatus(ctx context.Context, id string, status *models.ReportStatus, ttl time.Duration)
}

// ReportService fronts the asynchronous sales-statistics feature: it
// triggers generation and polls status until a terminal state.
type ReportService struct {
	backend  ReportBackend
	cache    StatusCache
	interval time.Duration
	cacheTTL time.Duration
	logger   *slog.Logger
}

// NewReportService creates a report service. cache may be nil; interval <= 0
// selects the 3-second default.
func NewReportService(backend ReportBackend, cache StatusCache, interval time.Duration, logger *slog.Logger) *ReportService {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ReportService{
		backend:  backend,
		cache:    cache,
		interval: interval,
		cacheTTL: interval / 2,
		logger:   logger,
	}
}

// Generate starts report generation for the user identified by token.
func (s *ReportService) Generate(ctx context.Context, token string) (*models.GenerateReportResponse, error) {
	if err := requireToken(token); err != nil {
		return nil, err
	}
	resp, err := s.backend.GenerateReport(ctx, token)
	if err != nil {
		return nil, err
	}
	s.logger.Info("report generation started", slog.String("report_id", resp.ID))
	return resp, nil
}

// Status returns the current progress snapshot, serving a cached copy when
// one is fresh enough.
func (s *ReportService) Status(ctx context.Context, token, id string) (*models.ReportStatus, error) {
	if s.cache != nil {
		if cached, ok := s.cache.LookupReportStatus(ctx, id); ok {
			return cached, nil
		}
	}
	status, err := s.backend.GetReportStatus(ctx, token, id)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.StoreReportStatus(ctx, id, status, s.cacheTTL)
	}
	return status, nil
}

// Get fetches the full report body.
func (s *ReportService) Get(ctx context.Context, token, id string) (*models.Report, error) {
	return s.backend.GetReport(ctx, token, id)
}

// List fetches one page of the report history.
func (s *ReportService) List(ctx context.Context, token string, page, limit int) (*models.ReportPage, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	return s.backend.ListReports(ctx, token, page, limit)
}

// Poll repeatedly queries the status of a report until it reaches a
// terminal state. The first check is issued immediately; onProgress fires
// for every response, terminal or not. A completed report is fetched in
// full and handed to onComplete; a failed one reaches onError. A
// query-level failure also reaches onError and stops the loop - transient
// failures are not retried. A still-generating report is re-checked after
// the configured interval, indefinitely.
//
// The returned cancel func suppresses any further ticks; callbacks already
// in flight may still complete.
func (s *ReportService) Poll(ctx context.Context, token, id string, onProgress func(models.ReportStatus), onComplete func(*models.Report), onError func(error)) (cancel func()) {
	pollCtx, stop := context.WithCancel(ctx)

	go func() {
		defer stop()
		timer := time.NewTimer(0)
		defer timer.Stop()

		for {
			select {
			case <-pollCtx.Done():
				return
			case <-timer.C:
			}

			status, err := s.backend.GetReportStatus(pollCtx, token, id)
			if err != nil {
				if pollCtx.Err() == nil && onError != nil {
					onError(err)
				}
				return
			}
			if onProgress != nil {
				onProgress(*status)
			}

			switch status.Status {
			case models.ReportCompleted:
				report, err := s.backend.GetReport(pollCtx, token, id)
				if err != nil {
					if onError != nil {
						onError(err)
					}
					return
				}
				if onComplete != nil {
					onComplete(report)
				}
				return
			case models.ReportFailed:
				if onError != nil {
					msg := status.Message
					if msg == "" {
						msg = "report generation failed"
					}
					onError(models.NewBackendError(msg))
				}
				return
			default:
				timer.Reset(s.interval)
			}
		}
	}()

	return stop
}

// Wait blocks until the report reaches a terminal state, the context is
// done, or polling fails. It is the synchronous face of Poll, used by the
// long-poll handler and the CLI.
func (s *ReportService) Wait(ctx context.Context, token, id string, onProgress func(models.ReportStatus)) (*models.Report, error) {
	type outcome struct {
		report *models.Report
		err    error
	}
	done := make(chan outcome, 1)

	cancel := s.Poll(ctx, token, id, onProgress,
		func(report *models.Report) { done <- outcome{report: report} },
		func(err error) { done <- outcome{err: err} },
	)
	defer cancel()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case o := <-done:
		return o.report, o.err
	}
}
