package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ngenohkevin/bookstore-admin/internal/models"
)

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Success bool        `json:"success"`
	Error   ErrorDetail `json:"error"`
}

// ErrorDetail represents detailed error information
type ErrorDetail struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// SuccessResponse represents a standard success response
type SuccessResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

func parsePaginationParams(c *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	return page, limit
}

// respondError maps the structured import error taxonomy onto HTTP statuses:
// validation failures are the caller's fault, transport and backend failures
// surface as a bad gateway.
func respondError(c *gin.Context, err error) {
	var importErr *models.ImportError
	if errors.As(err, &importErr) {
		switch importErr.Kind {
		case models.ImportErrorValidation:
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Success: false,
				Error: ErrorDetail{
					Code:    "VALIDATION_ERROR",
					Message: importErr.Message,
				},
			})
		case models.ImportErrorTransport:
			c.JSON(http.StatusBadGateway, ErrorResponse{
				Success: false,
				Error: ErrorDetail{
					Code:    "BACKEND_UNREACHABLE",
					Message: importErr.Message,
				},
			})
		default:
			c.JSON(http.StatusBadGateway, ErrorResponse{
				Success: false,
				Error: ErrorDetail{
					Code:    "BACKEND_ERROR",
					Message: importErr.Message,
				},
			})
		}
		return
	}

	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Success: false,
		Error: ErrorDetail{
			Code:    "INTERNAL_ERROR",
			Message: err.Error(),
		},
	})
}
