package bootstrap

import (
	"context"
	"log"

	"github.com/redis/go-redis/v9"

	"intellinote-be/internal/config"
	"intellinote-be/internal/controller"
	"intellinote-be/internal/pkg/logger"
	"intellinote-be/internal/repository/implementation"
	"intellinote-be/internal/repository/memory"
	"intellinote-be/internal/service"
	"intellinote-be/pkg/database"
	"intellinote-be/pkg/genai"
	pktNats "intellinote-be/pkg/nats"
	"intellinote-be/pkg/storage"
)

type Container struct {
	// Controllers
	StudyController controller.IStudyController

	// Exposed for graceful shutdown
	Logger logger.ILogger
}

func NewContainer(cfg *config.Config) *Container {
	ctx := context.Background()

	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Durable Storage
	// Backend is selected by config; the file store is the zero-infra default.
	var kv storage.KeyValue
	switch cfg.History.Backend {
	case "redis":
		opt, err := redis.ParseURL(cfg.History.RedisURL)
		if err != nil {
			log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
			opt = &redis.Options{
				Addr: cfg.History.RedisURL,
			}
		}
		rdb := redis.NewClient(opt)
		if _, err := rdb.Ping(ctx).Result(); err != nil {
			log.Printf("[WARN] Failed to connect to Redis: %v", err)
		}
		kv = storage.NewRedisStore(rdb)
		log.Println("[INFO] Using History Storage: REDIS")
	case "postgres":
		gormDB, err := database.NewGormDBFromDSN(cfg.History.DBConnection)
		if err != nil {
			log.Fatalf("[FATAL] Unable to connect to GORM DB: %v", err)
		}
		kv, err = storage.NewGormStore(gormDB)
		if err != nil {
			log.Fatalf("[FATAL] Unable to prepare storage table: %v", err)
		}
		log.Println("[INFO] Using History Storage: POSTGRES")
	default:
		fileStore, err := storage.NewFileStore(cfg.History.FilePath)
		if err != nil {
			log.Fatalf("[FATAL] Unable to prepare history file storage: %v", err)
		}
		kv = fileStore
		log.Printf("[INFO] Using History Storage: FILE (%s)", cfg.History.FilePath)
	}

	// 3. Repositories
	historyRepo := implementation.NewHistoryRepository(ctx, kv, sysLogger)
	sessionRepo := memory.NewSessionRepository()

	// 4. Infrastructure
	// NATS is optional; lifecycle events are best-effort.
	var natsPub *pktNats.Publisher
	if cfg.App.NatsURL != "" {
		var err error
		natsPub, err = pktNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		}
	}

	// 5. Services
	generationClient := genai.NewClient(cfg.Keys.GoogleGemini, cfg.Ai.Model)
	log.Printf("[INFO] Using Generation Model: %s", cfg.Ai.Model)

	studyService := service.NewStudyService(
		historyRepo,
		sessionRepo,
		generationClient,
		natsPub,
		sysLogger,
	)

	// 6. Controllers
	return &Container{
		StudyController: controller.NewStudyController(studyService),
		Logger:          sysLogger,
	}
}
