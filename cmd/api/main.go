package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"alfredoptarigan/interview-evaluator/internal/config"
	"alfredoptarigan/interview-evaluator/internal/handlers"
	"alfredoptarigan/interview-evaluator/internal/repositories"
	"alfredoptarigan/interview-evaluator/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	// Initialize database
	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	// Initialize repositories
	docRepo := repositories.NewDocumentRepository(db)
	interviewRepo := repositories.NewInterviewRepository(db)
	assessmentRepo := repositories.NewAssessmentRepository(db)
	log.Println("✅ Repositories initialized successfully")

	// Initialize services
	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		log.Fatalf("❌ Failed to create upload directory: %v", err)
	}

	textExtractor := services.NewTextExtractionService(cfg.Extraction.OCRMaxPages)
	parserService := services.NewAssessmentParserService()
	scoringService := services.NewScoringService()
	log.Println("✅ Services initialized successfully")

	// Gemini and Qdrant are optional; without an API key the generator runs in
	// mock mode and RAG retrieval is skipped.
	var geminiService services.GeminiService
	var qdrantService services.QdrantService

	if cfg.Gemini.APIKey != "" {
		geminiService, err = services.NewGeminiService(cfg.Gemini.APIKey, cfg.Worker.RetryInitialDelay)
		if err != nil {
			log.Fatalf("❌ Failed to initialize Gemini AI: %v", err)
		}
		log.Println("✅ Gemini AI initialized successfully")

		qdrantService, err = services.NewQdrantService(
			cfg.Qdrant.URL,
			cfg.Qdrant.APIKey,
			cfg.Qdrant.Collection,
		)
		if err != nil {
			log.Printf("⚠️  Failed to initialize Qdrant, continuing without RAG: %v\n", err)
			qdrantService = nil
		} else if err := qdrantService.InitCollection(); err != nil {
			log.Printf("⚠️  Failed to initialize Qdrant collection, continuing without RAG: %v\n", err)
			qdrantService = nil
		} else {
			log.Println("✅ Qdrant initialized successfully")
		}
	} else {
		log.Println("⚠️  GEMINI_API_KEY not set. Question generation will use mock data.")
	}

	// Initialize question generator
	generatorService := services.NewGeneratorService(
		interviewRepo,
		docRepo,
		geminiService,
		qdrantService,
		textExtractor,
		cfg.Worker.RetryMaxAttempts,
	)
	log.Println("✅ Generator service initialized")

	// Initialize worker
	worker := services.NewWorker(
		interviewRepo,
		generatorService,
		cfg.Worker.Concurrency,
	)
	log.Println("✅ Worker initialized successfully")

	// Start worker
	ctx := context.Background()
	worker.Start(ctx)
	log.Println("✅ Worker started successfully")

	// Initialize Handlers
	uploadHandler := handlers.NewUploadHandler(
		docRepo,
		storageService,
		cfg.Storage.MaxFileSize,
	)
	interviewHandler := handlers.NewInterviewHandler(
		interviewRepo,
		docRepo,
		worker,
	)
	comparisonHandler := handlers.NewComparisonHandler(
		docRepo,
		assessmentRepo,
		storageService,
		textExtractor,
		parserService,
		scoringService,
		cfg.Storage.MaxFileSize,
	)
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Interview Evaluator API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize),
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PATCH,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Routes
	api := app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// API endpoints
	api.Post("/upload", uploadHandler.HandleUpload)
	api.Post("/interview/generate", interviewHandler.HandleGenerate)
	api.Get("/interview/:id", interviewHandler.HandleResult)
	api.Patch("/interview/:id/questions/:questionId/rate", interviewHandler.HandleRateQuestion)
	api.Post("/comparison/upload-pdf", comparisonHandler.HandleUploadPDF)
	api.Post("/comparison/analyze", comparisonHandler.HandleAnalyze)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Interview Evaluator API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/upload",
				"POST /api/v1/interview/generate",
				"GET /api/v1/interview/:id",
				"PATCH /api/v1/interview/:id/questions/:questionId/rate",
				"POST /api/v1/comparison/upload-pdf",
				"POST /api/v1/comparison/analyze",
			},
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		worker.Stop()
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)
	log.Printf("📖 API Documentation: http://localhost%s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}

}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
