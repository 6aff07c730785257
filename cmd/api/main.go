package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"

	"github.com/dmarchuk/filesmanager/internal/cache"
	"github.com/dmarchuk/filesmanager/internal/config"
	"github.com/dmarchuk/filesmanager/internal/db"
	"github.com/dmarchuk/filesmanager/internal/handlers"
	"github.com/dmarchuk/filesmanager/internal/middleware"
	"github.com/dmarchuk/filesmanager/internal/queue"
	"github.com/dmarchuk/filesmanager/internal/repository"
	"github.com/dmarchuk/filesmanager/internal/services"
	"github.com/dmarchuk/filesmanager/internal/session"
	"github.com/dmarchuk/filesmanager/internal/storage"
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

	redis := cache.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err := redis.Ping(ctx); err != nil {
		log.Fatalf("Redis connection failed: %v", err)
	}
	defer redis.Close()

	queueClient := queue.NewClient(asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	defer queueClient.Close()

	store := storage.NewStore(cfg.FolderPath)
	if err := store.EnsureRoot(); err != nil {
		log.Fatalf("Failed to create content root %s: %v", cfg.FolderPath, err)
	}

	users := repository.NewMongoUsers(mongo.Users())
	files := repository.NewMongoFiles(mongo.Files())
	sessions := session.NewStore(redis)

	authService := services.NewAuthService(users, sessions, queueClient)
	fileService := services.NewFileService(files, store, queueClient)
	guard := middleware.NewAuth(authService)

	app := fiber.New()
	app.Use(logger.New())
	app.Use(cors.New())

	handlers.Register(app, guard,
		handlers.NewAppHandler(mongo, redis, users, files),
		handlers.NewAuthHandler(authService),
		handlers.NewUserHandler(authService),
		handlers.NewFileHandler(fileService, authService),
	)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatalf("Server stopped: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down")
	if err := app.Shutdown(); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}
