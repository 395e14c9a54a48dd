package handlers

import (
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ngenohkevin/bookstore-admin/internal/importer"
	"github.com/ngenohkevin/bookstore-admin/internal/middleware"
	"github.com/ngenohkevin/bookstore-admin/internal/services"
)

// ImportHandler exposes the book import wizard's operations.
type ImportHandler struct {
	importService *services.ImportService
	maxFileSize   int64
}

// NewImportHandler creates an import handler. maxFileSizeMB bounds uploads.
func NewImportHandler(importService *services.ImportService, maxFileSizeMB int) *ImportHandler {
	return &ImportHandler{
		importService: importService,
		maxFileSize:   int64(maxFileSizeMB) * 1024 * 1024,
	}
}

// ImportBooks handles csv-mode import: the uploaded file is forwarded to the
// backend's bulk import endpoint unchanged.
func (h *ImportHandler) ImportBooks(c *gin.Context) {
	file, fileName, ok := h.csvFormFile(c)
	if !ok {
		return
	}
	defer file.Close()

	result, err := h.importService.ImportCSVFile(
		c.Request.Context(), middleware.TokenFromContext(c), fileName, file, nil)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Success: true,
		Data:    result,
		Message: "Books imported successfully",
	})
}

// ImportBooksJSON handles json-mode import: the request body is the pasted
// {books: [...]} document.
func (h *ImportHandler) ImportBooksJSON(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, h.maxFileSize))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Success: false,
			Error: ErrorDetail{
				Code:    "INVALID_BODY",
				Message: "Failed to read request body",
				Details: err.Error(),
			},
		})
		return
	}

	result, err := h.importService.ImportJSON(
		c.Request.Context(), middleware.TokenFromContext(c), string(body), nil)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Success: true,
		Data:    result,
		Message: "Books imported successfully",
	})
}

// PreviewImport parses an uploaded CSV and returns the normalized records
// without contacting the backend.
func (h *ImportHandler) PreviewImport(c *gin.Context) {
	file, _, ok := h.csvFormFile(c)
	if !ok {
		return
	}
	defer file.Close()

	preview, err := h.importService.PreviewCSV(file)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Success: true,
		Data:    preview,
	})
}

// DownloadSampleCSV serves the reference import document.
func (h *ImportHandler) DownloadSampleCSV(c *gin.Context) {
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", "attachment; filename=\""+importer.SampleCSVFileName+"\"")
	c.Header("Cache-Control", "no-cache")
	c.String(http.StatusOK, importer.SampleCSV)
}

// csvFormFile pulls the uploaded CSV out of the multipart form and runs the
// size and extension checks. The dashboard posts the field as csvFile; the
// plain file name is accepted for compatibility with generic clients.
func (h *ImportHandler) csvFormFile(c *gin.Context) (io.ReadCloser, string, bool) {
	file, header, err := c.Request.FormFile("csvFile")
	if err != nil {
		file, header, err = c.Request.FormFile("file")
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Success: false,
			Error: ErrorDetail{
				Code:    "FILE_UPLOAD_ERROR",
				Message: "Failed to get uploaded file",
				Details: err.Error(),
			},
		})
		return nil, "", false
	}

	fileName := header.Filename
	if strings.ToLower(filepath.Ext(fileName)) != ".csv" {
		file.Close()
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Success: false,
			Error: ErrorDetail{
				Code:    "UNSUPPORTED_FORMAT",
				Message: "Only CSV files are supported",
				Details: "Supported formats: .csv",
			},
		})
		return nil, "", false
	}

	if header.Size == 0 {
		file.Close()
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Success: false,
			Error: ErrorDetail{
				Code:    "EMPTY_FILE",
				Message: "Empty file uploaded",
				Details: "File size cannot be zero",
			},
		})
		return nil, "", false
	}

	if header.Size > h.maxFileSize {
		file.Close()
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Success: false,
			Error: ErrorDetail{
				Code:    "FILE_TOO_LARGE",
				Message: "File size exceeds the upload limit",
			},
		})
		return nil, "", false
	}

	return file, fileName, true
}
