package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/nabelosaurus/polls-api/internal/config"
	"github.com/nabelosaurus/polls-api/internal/factory"
	pgRepo "github.com/nabelosaurus/polls-api/internal/repository/postgres"
	"github.com/nabelosaurus/polls-api/pkg/database"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("Warning: failed to load .env: %v", err)
	}

	fs := flag.NewFlagSet("seed", flag.ExitOnError)
	defaultConfig := os.Getenv("CONFIG_PATH")
	if defaultConfig == "" {
		defaultConfig = "config/config.yaml"
	}
	configPath := fs.String("config", defaultConfig, "path to config file")
	questionCount := fs.Int("questions", 10, "number of questions to create")
	choicesPerQuestion := fs.Int("choices", 3, "number of choices per question")
	seed := fs.Int64("seed", time.Now().UnixNano(), "random seed")
	fs.Parse(os.Args[1:])

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.Storage.Driver != config.StorageDriverPostgres {
		log.Fatalf("seed works only with storage.driver=%s, got %q", config.StorageDriverPostgres, cfg.Storage.Driver)
	}

	db, err := database.NewPostgresDB(cfg.Database.PostgresConnectionString(), true)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.MigrateDB(db, cfg.Database.MigrationsPath); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	questions := factory.NewQuestionFactory(pgRepo.NewQuestionRepo(db), *seed)
	choices := factory.NewChoiceFactory(pgRepo.NewChoiceRepo(db), questions, *seed+1)

	ctx := context.Background()
	created, err := questions.CreateBatch(ctx, *questionCount)
	if err != nil {
		log.Fatalf("Failed to create questions: %v", err)
	}
	for _, q := range created {
		if _, err := choices.CreateBatch(ctx, *choicesPerQuestion, factory.ForQuestion(q)); err != nil {
			log.Fatalf("Failed to create choices for question %d: %v", q.ID, err)
		}
	}

	log.Printf("[Seed] Создано вопросов: %d, вариантов на вопрос: %d (seed=%d)", len(created), *choicesPerQuestion, *seed)
}
