package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"oneclarity/internal/cache"
	"oneclarity/internal/config"
	"oneclarity/internal/repository"
	"oneclarity/internal/service"
	"oneclarity/internal/transport/rest"
)

// @title OneClarity Tutor API
// @version 1.0
// @description Adaptive tutoring decision engine
// @host localhost:8080
// @BasePath /v1
func main() {
	log.Println("started")
	ctx := context.Background()

	cfg := config.Load()
	aiConfig := config.DefaultAIConfig()

	log.Printf("Config:")
	log.Printf("  Confidence threshold: %.2f", cfg.ConfidenceThreshold)
	log.Printf("  Retrieval top-k:      %d", cfg.RetrievalTopK)
	log.Printf("  Curriculum topics:    %d", len(cfg.Curriculum))
	if aiConfig.IsEnabled() {
		log.Println("  Gemini API key:       configured ✓")
	} else {
		log.Println("  Gemini API key:       NOT SET (using mock generation)")
	}
	if aiConfig.RetrievalEnabled() {
		log.Printf("  Retrieval service:    %s", aiConfig.RetrievalURL)
	} else {
		log.Println("  Retrieval service:    NOT SET (using mock retrieval)")
	}

	// Stores: Mongo when configured, in-memory otherwise
	var (
		progressRepo    repository.ProgressRepo
		interactionRepo repository.InteractionRepo
		studentRepo     repository.StudentRepo
	)
	if cfg.MongoURI != "" {
		mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
		if err != nil {
			log.Fatal("Failed to connect to MongoDB:", err)
		}
		defer mongoClient.Disconnect(ctx)

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := mongoClient.Ping(pingCtx, nil); err != nil {
			log.Fatal("Failed to ping MongoDB:", err)
		}
		log.Println("Connected to MongoDB")

		db := mongoClient.Database(cfg.MongoDatabase)
		progressRepo = repository.NewProgressRepo(db)
		interactionRepo = repository.NewInteractionRepo(db)
		studentRepo = repository.NewStudentRepo(db)
	} else {
		log.Println("Warning: MONGO_URI not set, using in-memory stores")
		progressRepo = repository.NewMemoryProgressRepo()
		interactionRepo = repository.NewMemoryInteractionRepo()
		studentRepo = repository.NewMemoryStudentRepo()
	}

	// Caches: Redis when configured, in-memory otherwise
	var (
		quizCache     cache.QuizCache
		evidenceCache cache.EvidenceCache
	)
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr: cfg.RedisAddr,
		})
		defer rdb.Close()

		if _, err := rdb.Ping(ctx).Result(); err != nil {
			log.Fatal("Failed to ping Redis:", err)
		}
		log.Println("Connected to Redis")

		quizCache = cache.NewQuizCache(rdb)
		evidenceCache = cache.NewEvidenceCache(rdb)
	} else {
		log.Println("Warning: REDIS_ADDR not set, using in-memory caches")
		quizCache = cache.NewMemoryQuizCache()
		evidenceCache = cache.NewMemoryEvidenceCache()
	}

	// Initialize services
	studentSvc := service.NewStudentService(progressRepo)
	progressSvc := service.NewProgressService(progressRepo)
	classifier := service.NewIntentClassifier(cfg.Curriculum)
	evaluator := service.NewConfidenceEvaluator(cfg.RetrievalTopK, cfg.ConfidenceThreshold)
	planner := service.NewPlanner()
	retriever := service.NewRetrievalClient(aiConfig)
	generator := service.NewGeneratorService(aiConfig)
	tutorSvc := service.NewTutorService(
		studentSvc, interactionRepo, classifier, evaluator, planner,
		retriever, generator, quizCache, evidenceCache, cfg.QuizSize,
	)

	container := &rest.Container{
		TutorService:    tutorSvc,
		ProgressService: progressSvc,
		StudentRepo:     studentRepo,
	}
	router := rest.NewRouter(container)

	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on :%s", cfg.HTTPPort)
		log.Println("Endpoints:")
		log.Println("  POST /v1/students")
		log.Println("  GET  /v1/ask")
		log.Println("  GET  /v1/quiz")
		log.Println("  POST /v1/answers")
		log.Println("  GET  /v1/progress/{studentId}")
		log.Println("  GET  /v1/interactions/{studentId}")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("ListenAndServe:", err)
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
