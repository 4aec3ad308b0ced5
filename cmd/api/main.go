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

	"excelinterviewer/mock-interviewer/internal/catalog"
	"excelinterviewer/mock-interviewer/internal/config"
	"excelinterviewer/mock-interviewer/internal/grading"
	"excelinterviewer/mock-interviewer/internal/handlers"
	"excelinterviewer/mock-interviewer/internal/repositories"
	"excelinterviewer/mock-interviewer/internal/services"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	var repo repositories.InterviewRepository
	if cfg.Database.Enabled {
		db, err := config.InitDatabase(cfg)
		if err != nil {
			log.Fatalf("❌ Failed to initialize database: %v", err)
		}
		repo = repositories.NewInterviewRepository(db)
	} else {
		repo = repositories.NewMemoryInterviewRepository()
		log.Println("⚠️  DB_ENABLED=false, answers are kept in memory only")
	}

	cat, err := catalog.Load(cfg.Interview.QuestionBankPath)
	if err != nil {
		log.Fatalf("❌ Failed to load question bank: %v", err)
	}
	log.Printf("✅ Question bank loaded (%d questions)\n", len(cat.IDs()))

	dataset, err := grading.LoadDataset()
	if err != nil {
		log.Fatalf("❌ Failed to load sample dataset: %v", err)
	}

	var gemini services.GeminiService
	if cfg.LLM.GeminiAPIKey != "" {
		gemini, err = services.NewGeminiService(ctx, cfg.LLM)
		if err != nil {
			log.Fatalf("❌ Failed to initialize Gemini AI: %v", err)
		}
		log.Println("✅ Gemini AI initialized successfully")
	}

	llm, err := services.NewTextGenerator(cfg.LLM, gemini)
	if err != nil {
		log.Fatalf("❌ Failed to initialize LLM provider: %v", err)
	}

	var retriever services.ReferenceRetriever
	if cfg.RAGEnabled() {
		qdrantService, err := services.NewQdrantService(cfg.Qdrant.URL, cfg.Qdrant.APIKey, cfg.Qdrant.Collection)
		if err != nil {
			log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
		}
		if err := qdrantService.InitCollection(ctx); err != nil {
			log.Fatalf("❌ Failed to initialize Qdrant collection: %v", err)
		}
		retriever = services.NewReferenceRetriever(gemini, qdrantService)
		log.Println("✅ Qdrant reference retrieval enabled")
	}

	var grader grading.RubricGrader
	if llm != nil {
		grader = services.NewRubricGrader(llm, retriever, cfg.LLM.MaxRetries)
		log.Printf("✅ Free-text answers graded by %s\n", cfg.LLM.Provider)
	} else {
		log.Println("⚠️  No LLM provider configured, free-text answers use keyword scoring")
	}
	evaluators := grading.NewSet(dataset, grader, cfg.LLM.Timeout)

	mirror := services.NewMirrorWorker(repo, services.MirrorWorkerConfig{
		Concurrency:       cfg.Worker.Concurrency,
		QueueSize:         cfg.Worker.QueueSize,
		RetryMaxAttempts:  cfg.Worker.RetryMaxAttempts,
		RetryInitialDelay: cfg.Worker.RetryInitialDelay,
		WriteTimeout:      cfg.Interview.WriteTimeout,
	})
	mirror.Start(ctx)
	log.Println("✅ Mirror worker started")

	store := services.NewSessionStore(cat, repo, mirror, services.SessionStoreConfig{
		MaxQuestions: cfg.Interview.MaxQuestions,
		HintPenalty:  cfg.Interview.HintPenalty,
		WriteTimeout: cfg.Interview.WriteTimeout,
	})
	interviewService := services.NewInterviewService(store, cat, evaluators, repo)

	interviewHandler := handlers.NewInterviewHandler(interviewService)
	adminHandler := handlers.NewAdminHandler(interviewService)
	log.Println("✅ Handlers initialized")

	app := fiber.New(fiber.Config{
		AppName:      "Excel Mock Interviewer API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		ErrorHandler: customErrorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))

	api := app.Group("/api/v1")
	handlers.Register(api, interviewHandler, adminHandler)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message":   "Excel Mock Interviewer API",
			"version":   "1.0.0",
			"endpoints": handlers.Endpoints,
		})
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
		mirror.Stop()
		cancel()
	}()

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)

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
