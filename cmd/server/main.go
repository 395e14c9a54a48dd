package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ngenohkevin/bookstore-admin/internal/client"
	"github.com/ngenohkevin/bookstore-admin/internal/config"
	"github.com/ngenohkevin/bookstore-admin/internal/database"
	"github.com/ngenohkevin/bookstore-admin/internal/handlers"
	"github.com/ngenohkevin/bookstore-admin/internal/middleware"
	"github.com/ngenohkevin/bookstore-admin/internal/services"
)

func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Set Gin mode
	gin.SetMode(cfg.Server.Mode)

	// Initialize Redis connection
	redis, err := database.NewRedis(cfg)
	if err != nil {
		slog.Error("Failed to connect to Redis", "error", err)
		os.Exit(1)
	}
	defer redis.Close()

	// Initialize catalog backend client and services
	backend := client.New(cfg.Backend.BaseURL, time.Duration(cfg.Backend.TimeoutSeconds)*time.Second, logger)
	importService := services.NewImportService(backend, logger)
	reportService := services.NewReportService(backend, redis,
		time.Duration(cfg.Report.PollIntervalMS)*time.Millisecond, logger)
	pendingService := services.NewPendingCategoryService(backend, logger)

	// Initialize Gin router
	r := gin.New()

	// Add global middleware
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.SecurityHeaders())

	// Initialize rate limiter
	rateLimiter := middleware.NewRateLimiter(redis.Client)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(redis)
	importHandler := handlers.NewImportHandler(importService, cfg.Import.MaxFileSizeMB)
	reportHandler := handlers.NewReportHandler(reportService)
	pendingHandler := handlers.NewPendingCategoryHandler(pendingService)

	// Public routes (no authentication required)
	public := r.Group("/api/v1")
	{
		public.GET("/ping", healthHandler.Ping)
		public.GET("/health", healthHandler.Health)
		public.GET("/books/import/sample", importHandler.DownloadSampleCSV)
	}

	// Protected routes (authentication required)
	protected := r.Group("/api/v1")
	protected.Use(middleware.RequireAuth())
	protected.Use(rateLimiter.APILimit())
	{
		// Book import wizard
		books := protected.Group("/books")
		{
			imports := books.Group("/import")
			imports.Use(rateLimiter.ImportLimit())
			{
				imports.POST("", importHandler.ImportBooks)
				imports.POST("/json", importHandler.ImportBooksJSON)
				imports.POST("/preview", importHandler.PreviewImport)
			}
		}

		// Sales-statistics reports
		statistics := protected.Group("/statistics")
		{
			statistics.POST("", reportHandler.GenerateReport)
			statistics.GET("", reportHandler.ListReports)
			statistics.GET("/:id", reportHandler.GetReport)
			statistics.GET("/:id/status", reportHandler.GetReportStatus)
			statistics.GET("/:id/wait", reportHandler.WaitReport)
		}

		// Category review queue
		pending := protected.Group("/categories/pending")
		{
			pending.GET("", pendingHandler.ListPendingCategories)
			pending.GET("/stats", pendingHandler.GetPendingCategoryStats)
			pending.PUT("/:id/approve", pendingHandler.ApprovePendingCategory)
			pending.PUT("/:id/reject", pendingHandler.RejectPendingCategory)
			pending.POST("/bulk-approve", pendingHandler.BulkApprovePendingCategories)
			pending.POST("/bulk-reject", pendingHandler.BulkRejectPendingCategories)
		}
	}

	// Root health check
	r.GET("/health", healthHandler.Health)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Server.Port
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 5 * time.Minute, // long-poll endpoints hold connections open
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		slog.Info("Starting server", "port", port, "mode", cfg.Server.Mode, "backend", cfg.Backend.BaseURL)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exited")
}
