package config

import (
	"os"
	"path/filepath"
	"strconv"
)

// Config holds all runtime settings for the API and worker processes.
// Values come from environment variables; a .env file can be auto-loaded
// with godotenv before calling Load.
type Config struct {
	Port string

	DBHost     string
	DBPort     string
	DBDatabase string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// FolderPath is the content root where uploaded bytes and thumbnail
	// derivatives are written.
	FolderPath string

	WorkerConcurrency int
}

// Load reads configuration from the environment, applying defaults for
// anything unset.
func Load() Config {
	return Config{
		Port:              getEnv("PORT", "5000"),
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            getEnv("DB_PORT", "27017"),
		DBDatabase:        getEnv("DB_DATABASE", "files_manager"),
		RedisAddr:         getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:     os.Getenv("REDIS_PASSWORD"),
		RedisDB:           getEnvInt("REDIS_DB", 0),
		FolderPath:        getEnv("FOLDER_PATH", filepath.Join(os.TempDir(), "files_manager")),
		WorkerConcurrency: getEnvInt("WORKER_CONCURRENCY", 10),
	}
}

// MongoURI builds the connection string for the document store.
func (c Config) MongoURI() string {
	return "mongodb://" + c.DBHost + ":" + c.DBPort
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}
