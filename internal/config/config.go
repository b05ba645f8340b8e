package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Keys     APIKeys
	Chat     ChatConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	HubLogFilePath     string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
}

type DatabaseConfig struct {
	Connection string
}

type APIKeys struct {
	GoogleGemini string
}

type ChatConfig struct {
	GeminiModel      string
	SentimentBaseURL string
	SnapshotTopic    string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			HubLogFilePath:     getEnv("HUB_LOG_FILE_PATH", "hub.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3001"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", ""),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Keys: APIKeys{
			GoogleGemini: getEnv("GOOGLE_GEMINI_API_KEY", ""),
		},
		Chat: ChatConfig{
			GeminiModel:      getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
			SentimentBaseURL: getEnv("SENTIMENT_BASE_URL", ""),
			SnapshotTopic:    getEnv("MESSAGE_SNAPSHOT_TOPIC_NAME", "MESSAGES_UPDATED"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
