package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	App     AppConfig
	History HistoryConfig
	Keys    APIKeys
	Ai      AIConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
}

type HistoryConfig struct {
	Backend      string // "file", "redis" or "postgres"
	FilePath     string
	RedisURL     string
	DBConnection string
}

type APIKeys struct {
	GoogleGemini string
}

type AIConfig struct {
	Model string // e.g. "gemini-2.5-flash"
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", ""),
		},
		History: HistoryConfig{
			Backend:      getEnv("HISTORY_STORAGE", "file"),
			FilePath:     getEnv("HISTORY_FILE_PATH", "data/history.json"),
			RedisURL:     getEnv("REDIS_URL", "redis://localhost:6379"),
			DBConnection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Keys: APIKeys{
			GoogleGemini: getEnv("GOOGLE_GEMINI_API_KEY", ""),
		},
		Ai: AIConfig{
			Model: getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
