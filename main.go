package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/finreg/corep/config"
	"github.com/finreg/corep/internal/cache"
	"github.com/finreg/corep/internal/database"
	"github.com/finreg/corep/internal/engine"
	"github.com/finreg/corep/internal/handlers"
	"github.com/finreg/corep/internal/middleware"
	"github.com/finreg/corep/internal/models"
	"github.com/finreg/corep/internal/repository"
	"github.com/finreg/corep/internal/services"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const version = "2.0.0"

// @title COREP Reporting Engine API
// @version 2.0.0
// @description Capital calculation and validation engine for COREP CA1/CA2 templates
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Create context for initialization
	ctx := context.Background()

	// Initialize database connection
	db, err := database.New(ctx, cfg.PGURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Static registries, built once and passed by reference
	schemas := engine.NewSchemaRegistry()
	rules := engine.DefaultRules()

	// Initialize caches
	memCache := cache.NewMemoryCache(5 * time.Minute)

	// Initialize repositories
	filingRepo := repository.NewFilingRepository(db.Pool)

	// Initialize services
	reportSvc := services.NewReportService(schemas, rules, memCache)
	filingSvc := services.NewFilingService(reportSvc, filingRepo)

	// Initialize handlers
	reportHandler := handlers.NewReportHandler(reportSvc)
	templateHandler := handlers.NewTemplateHandler(reportSvc)
	filingHandler := handlers.NewFilingHandler(filingSvc)

	// Setup Gin router
	router := gin.Default()

	// Apply global middleware
	router.Use(middleware.CORS())
	router.Use(middleware.IdentifyInstitution())

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, models.HealthResponse{
			Status:   "healthy",
			Version:  version,
			Features: []string{"evaluate", "batch", "validation", "filings"},
		})
	})

	// Template and rule registries
	router.GET("/templates", templateHandler.List)
	router.GET("/templates/:id", templateHandler.Get)
	router.GET("/rules", templateHandler.Rules)

	// Evaluation routes
	router.POST("/evaluate", reportHandler.Evaluate)
	router.POST("/evaluate/batch", reportHandler.EvaluateBatch)

	// Filing routes require an identified institution
	filings := router.Group("/filings", middleware.RequireInstitution())
	filings.POST("", filingHandler.Create)
	filings.GET("", filingHandler.List)
	filings.GET("/:id", filingHandler.Get)

	// API docs
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Starting server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Give outstanding requests 5 seconds to complete
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	fmt.Println("Server exited")
}
