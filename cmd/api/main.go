package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/nabelosaurus/polls-api/internal/config"
	"github.com/nabelosaurus/polls-api/internal/domain/repository"
	"github.com/nabelosaurus/polls-api/internal/repository/memory"
	pgRepo "github.com/nabelosaurus/polls-api/internal/repository/postgres"
	redisRepo "github.com/nabelosaurus/polls-api/internal/repository/redis"
	"github.com/nabelosaurus/polls-api/internal/router"
	"github.com/nabelosaurus/polls-api/internal/service"
	"github.com/nabelosaurus/polls-api/pkg/database"
)

func main() {
	// .env необязателен: в контейнере переменные приходят из окружения
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("Warning: failed to load .env: %v", err)
	}

	// Загружаем конфигурацию
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	log.Printf("Загрузка конфигурации из %s", configPath)

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		os.Exit(1)
	}
	gin.SetMode(cfg.Server.Mode)
	isProduction := gin.Mode() == gin.ReleaseMode

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Инициализируем хранилище
	var (
		questionRepo repository.QuestionRepository
		choiceRepo   repository.ChoiceRepository
		closeStore   = func() {}
	)
	switch cfg.Storage.Driver {
	case config.StorageDriverMemory:
		log.Println("Хранилище: memory (данные не переживут перезапуск, только одна реплика)")
		store := memory.NewStore()
		questionRepo = store.Questions()
		choiceRepo = store.Choices()
	default:
		db, err := database.NewPostgresDB(cfg.Database.PostgresConnectionString(), isProduction)
		if err != nil {
			log.Printf("Failed to connect to database: %v", err)
			os.Exit(1)
		}

		// Применяем миграции
		if err := database.MigrateDB(db, cfg.Database.MigrationsPath); err != nil {
			log.Printf("Failed to migrate database: %v", err)
			os.Exit(1)
		}

		questionRepo = pgRepo.NewQuestionRepo(db)
		choiceRepo = pgRepo.NewChoiceRepo(db)
		closeStore = func() {
			if sqlDB, err := database.GetSQLDB(db); err == nil {
				sqlDB.Close()
			}
		}
	}
	defer closeStore()

	// Redis нужен только для ограничения частоты запросов
	var cacheRepo repository.CacheRepository
	if cfg.Redis.Enabled {
		redisClient, err := database.NewUniversalRedisClient(ctx, cfg.Redis)
		if err != nil {
			log.Printf("Failed to connect to Redis: %v", err)
			os.Exit(1)
		}
		defer redisClient.Close()
		log.Println("Successfully connected to Redis")

		cache, err := redisRepo.NewCacheRepo(redisClient)
		if err != nil {
			log.Printf("Failed to initialize CacheRepo: %v", err)
			os.Exit(1)
		}
		cacheRepo = cache
	} else {
		log.Println("Redis отключен: ограничение частоты голосования не применяется")
	}

	// Инициализируем сервисы
	pollService := service.NewPollService(questionRepo, choiceRepo, cfg.Polls.LatestLimit)
	adminService := service.NewAdminService(questionRepo, choiceRepo)

	engine, err := router.NewRouter(router.Deps{
		Config:       cfg,
		PollService:  pollService,
		AdminService: adminService,
		Cache:        cacheRepo,
	})
	if err != nil {
		log.Printf("Failed to build router: %v", err)
		os.Exit(1)
	}

	// Настраиваем HTTP сервер с тайм-аутами для защиты от slow client attacks
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Failed to start server: %v", err)
			cancel()
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case <-ctx.Done():
	}
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited properly")
}
