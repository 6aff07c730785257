package main

import (
	"context"
	"log"

	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"

	"github.com/dmarchuk/filesmanager/internal/config"
	"github.com/dmarchuk/filesmanager/internal/db"
	"github.com/dmarchuk/filesmanager/internal/queue"
	"github.com/dmarchuk/filesmanager/internal/repository"
	"github.com/dmarchuk/filesmanager/internal/worker"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading it, using environment variables")
	}
	cfg := config.Load()
	ctx := context.Background()

	mongo, err := db.Connect(ctx, cfg.MongoURI(), cfg.DBDatabase)
	if err != nil {
		log.Fatalf("MongoDB connection failed: %v", err)
	}
	defer mongo.Close(ctx)

	users := repository.NewMongoUsers(mongo.Users())
	files := repository.NewMongoFiles(mongo.Files())

	srv := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		},
		asynq.Config{Concurrency: cfg.WorkerConcurrency},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(queue.TypeThumbnail, worker.NewThumbnailProcessor(files).ProcessTask)
	mux.HandleFunc(queue.TypeWelcome, worker.NewWelcomeProcessor(users).ProcessTask)

	if err := srv.Run(mux); err != nil {
		log.Fatalf("Worker stopped: %v", err)
	}
}
