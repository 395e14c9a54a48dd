package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ngenohkevin/bookstore-admin/internal/models"
)

// PendingCategoryBackend is the slice of the catalog API the review queue
// needs.
type PendingCategoryBackend interface {
	ListPendingCategories(ctx context.Context, token string, filters models.PendingCategoryFilters) (*models.PendingCategoryPage, error)
	GetPendingCategoryStats(ctx context.Context, token string) (*models.PendingCategoryStats, error)
	ApprovePendingCategory(ctx context.Context, token, id string, req models.ApprovePendingCategoryRequest) (*models.PendingCategory, error)
	RejectPendingCategory(ctx context.Context, token, id string, req models.RejectPendingCategoryRequest) (*models.PendingCategory, error)
}

// PendingCategoryService fronts the review queue fed by the external
// recommendation system.
type PendingCategoryService struct {
	backend PendingCategoryBackend
	logger  *slog.Logger
}

// NewPendingCategoryService creates a new review-queue service.
func NewPendingCategoryService(backend PendingCategoryBackend, logger *slog.Logger) *PendingCategoryService {
	if logger == nil {
		logger = slog.Default()
	}
	return &PendingCategoryService{backend: backend, logger: logger}
}

// List fetches the queue with optional status/search filters.
func (s *PendingCategoryService) List(ctx context.Context, token string, filters models.PendingCategoryFilters) (*models.PendingCategoryPage, error) {
	if err := requireToken(token); err != nil {
		return nil, err
	}
	return s.backend.ListPendingCategories(ctx, token, filters)
}

// Stats fetches queue counts by status.
func (s *PendingCategoryService) Stats(ctx context.Context, token string) (*models.PendingCategoryStats, error) {
	if err := requireToken(token); err != nil {
		return nil, err
	}
	return s.backend.GetPendingCategoryStats(ctx, token)
}

// Approve promotes one proposal into a real category.
func (s *PendingCategoryService) Approve(ctx context.Context, token, id string, req models.ApprovePendingCategoryRequest) (*models.PendingCategory, error) {
	if err := requireToken(token); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.CategoryName) == "" {
		return nil, models.NewValidationError("category name is required")
	}
	return s.backend.ApprovePendingCategory(ctx, token, id, req)
}

// Reject declines one proposal. Review notes are mandatory so the
// recommendation system gets feedback.
func (s *PendingCategoryService) Reject(ctx context.Context, token, id string, req models.RejectPendingCategoryRequest) (*models.PendingCategory, error) {
	if err := requireToken(token); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.ReviewNotes) == "" {
		return nil, models.NewValidationError("review notes are required")
	}
	return s.backend.RejectPendingCategory(ctx, token, id, req)
}

// BulkApprove approves several proposals sequentially, aggregating per-ID
// outcomes. A missing category name falls back to a generated one.
func (s *PendingCategoryService) BulkApprove(ctx context.Context, token string, ids []string, req models.ApprovePendingCategoryRequest) (*models.BulkReviewResult, error) {
	if err := requireToken(token); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, models.NewValidationError("no pending categories selected")
	}

	result := &models.BulkReviewResult{
		Successful: make([]string, 0, len(ids)),
		Failed:     make([]models.BulkFailure, 0),
	}
	for _, id := range ids {
		perID := req
		if strings.TrimSpace(perID.CategoryName) == "" {
			perID.CategoryName = fmt.Sprintf("Auto Category %d", time.Now().UnixMilli())
		}
		if _, err := s.backend.ApprovePendingCategory(ctx, token, id, perID); err != nil {
			result.Failed = append(result.Failed, models.BulkFailure{ID: id, Error: err.Error()})
			continue
		}
		result.Successful = append(result.Successful, id)
	}
	s.logger.Info("bulk approve finished",
		slog.Int("successful", len(result.Successful)),
		slog.Int("failed", len(result.Failed)))
	return result, nil
}

// BulkReject rejects several proposals sequentially with shared notes.
func (s *PendingCategoryService) BulkReject(ctx context.Context, token string, ids []string, reviewNotes string) (*models.BulkReviewResult, error) {
	if err := requireToken(token); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, models.NewValidationError("no pending categories selected")
	}
	if strings.TrimSpace(reviewNotes) == "" {
		return nil, models.NewValidationError("review notes are required")
	}

	result := &models.BulkReviewResult{
		Successful: make([]string, 0, len(ids)),
		Failed:     make([]models.BulkFailure, 0),
	}
	for _, id := range ids {
		req := models.RejectPendingCategoryRequest{ReviewNotes: reviewNotes}
		if _, err := s.backend.RejectPendingCategory(ctx, token, id, req); err != nil {
			result.Failed = append(result.Failed, models.BulkFailure{ID: id, Error: err.Error()})
			continue
		}
		result.Successful = append(result.Successful, id)
	}
	return result, nil
}
