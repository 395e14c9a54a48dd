package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ngenohkevin/bookstore-admin/internal/middleware"
	"github.com/ngenohkevin/bookstore-admin/internal/models"
	"github.com/ngenohkevin/bookstore-admin/internal/services"
)

// PendingCategoryHandler exposes the category review queue.
type PendingCategoryHandler struct {
	pendingService *services.PendingCategoryService
}

// NewPendingCategoryHandler creates a review-queue handler.
func NewPendingCategoryHandler(pendingService *services.PendingCategoryService) *PendingCategoryHandler {
	return &PendingCategoryHandler{pendingService: pendingService}
}

// ListPendingCategories returns the queue, filtered by status and search.
func (h *PendingCategoryHandler) ListPendingCategories(c *gin.Context) {
	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))
	filters := models.PendingCategoryFilters{
		Status: c.Query("status"),
		Search: c.Query("search"),
		Page:   page,
		Limit:  limit,
		Sort:   c.Query("sort"),
	}

	result, err := h.pendingService.List(c.Request.Context(), middleware.TokenFromContext(c), filters)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Success: true,
		Data:    result,
	})
}

// GetPendingCategoryStats returns queue counts by status.
func (h *PendingCategoryHandler) GetPendingCategoryStats(c *gin.Context) {
	stats, err := h.pendingService.Stats(c.Request.Context(), middleware.TokenFromContext(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Success: true,
		Data:    stats,
	})
}

// ApprovePendingCategory promotes one proposal into a real category.
func (h *PendingCategoryHandler) ApprovePendingCategory(c *gin.Context) {
	var req models.ApprovePendingCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Success: false,
			Error: ErrorDetail{
				Code:    "VALIDATION_ERROR",
				Message: "Invalid request data",
				Details: err.Error(),
			},
		})
		return
	}

	category, err := h.pendingService.Approve(c.Request.Context(), middleware.TokenFromContext(c), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Success: true,
		Data:    category,
		Message: "Pending category approved",
	})
}

// RejectPendingCategory declines one proposal.
func (h *PendingCategoryHandler) RejectPendingCategory(c *gin.Context) {
	var req models.RejectPendingCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Success: false,
			Error: ErrorDetail{
				Code:    "VALIDATION_ERROR",
				Message: "Invalid request data",
				Details: err.Error(),
			},
		})
		return
	}

	category, err := h.pendingService.Reject(c.Request.Context(), middleware.TokenFromContext(c), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Success: true,
		Data:    category,
		Message: "Pending category rejected",
	})
}

type bulkApproveRequest struct {
	IDs                 []string `json:"ids"`
	CategoryName        string   `json:"category_name"`
	CategoryDescription string   `json:"category_description"`
	ReviewNotes         string   `json:"review_notes"`
}

// BulkApprovePendingCategories approves a selection, reporting per-ID
// outcomes.
func (h *PendingCategoryHandler) BulkApprovePendingCategories(c *gin.Context) {
	var req bulkApproveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Success: false,
			Error: ErrorDetail{
				Code:    "VALIDATION_ERROR",
				Message: "Invalid request data",
				Details: err.Error(),
			},
		})
		return
	}

	result, err := h.pendingService.BulkApprove(
		c.Request.Context(), middleware.TokenFromContext(c), req.IDs,
		models.ApprovePendingCategoryRequest{
			CategoryName:        req.CategoryName,
			CategoryDescription: req.CategoryDescription,
			ReviewNotes:         req.ReviewNotes,
		})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Success: true,
		Data:    result,
	})
}

type bulkRejectRequest struct {
	IDs         []string `json:"ids"`
	ReviewNotes string   `json:"review_notes"`
}

// BulkRejectPendingCategories rejects a selection with shared review notes.
func (h *PendingCategoryHandler) BulkRejectPendingCategories(c *gin.Context) {
	var req bulkRejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Success: false,
			Error: ErrorDetail{
				Code:    "VALIDATION_ERROR",
				Message: "Invalid request data",
				Details: err.Error(),
			},
		})
		return
	}

	result, err := h.pendingService.BulkReject(
		c.Request.Context(), middleware.TokenFromContext(c), req.IDs, req.ReviewNotes)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Success: true,
		Data:    result,
	})
}
