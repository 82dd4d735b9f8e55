package config

import (
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config содержит конфигурацию сервера.
type Config struct {
	// Настройки сервера
	Port     string `envconfig:"SERVER_PORT" default:"8090"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// Настройки PostgreSQL
	DBHost     string `envconfig:"DB_HOST" default:"localhost"`
	DBPort     string `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER" default:"postgres"`
	DBPassword string `envconfig:"DB_PASSWORD" default:"postgres"`
	DBName     string `envconfig:"DB_NAME" default:"visionboard"`
	DBSSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	DBMaxConns int    `envconfig:"DB_MAX_CONNECTIONS" default:"10"`

	// Настройки Redis
	RedisAddr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisPassword string `envconfig:"REDIS_PASSWORD" default:""`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`

	// Настройки текстовой модели
	AIAPIKey         string `envconfig:"AI_API_KEY" required:"true"`
	AIBaseURL        string `envconfig:"AI_BASE_URL" default:"https://openrouter.ai/api/v1"`
	AIModel          string `envconfig:"AI_MODEL" default:"x-ai/grok-3-mini"`
	AITimeoutSec     int    `envconfig:"AI_TIMEOUT_SEC" default:"120"`
	AIMaxRetries     int    `envconfig:"AI_MAX_RETRIES" default:"3"`
	PromptTokenLimit int    `envconfig:"AI_PROMPT_TOKEN_LIMIT" default:"12000"`

	// Настройки модели изображений
	ImageAPIKey  string `envconfig:"IMAGE_API_KEY" required:"true"`
	ImageBaseURL string `envconfig:"IMAGE_BASE_URL" default:""`
	ImageModel   string `envconfig:"IMAGE_MODEL" default:"dall-e-3"`

	// Прочее
	CORSAllowOrigins  []string `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000"`
	QuestionBatchSize int      `envconfig:"QUESTION_BATCH_SIZE" default:"4"`
}

// GetDSN возвращает строку подключения (DSN) для PostgreSQL.
func (c *Config) GetDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode)
}

// LoadConfig загружает конфигурацию из .env файла и переменных окружения.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("ошибка загрузки конфигурации: %w", err)
	}

	log.Printf("Конфигурация загружена:")
	log.Printf("  Port: %s", cfg.Port)
	log.Printf("  LogLevel: %s", cfg.LogLevel)
	log.Printf("  DB DSN: postgres://%s:***@%s:%s/%s?sslmode=%s", cfg.DBUser, cfg.DBHost, cfg.DBPort, cfg.DBName, cfg.DBSSLMode)
	log.Printf("  Redis: %s (db %d)", cfg.RedisAddr, cfg.RedisDB)
	log.Printf("  AI Model: %s", cfg.AIModel)
	log.Printf("  Image Model: %s", cfg.ImageModel)
	log.Printf("  Question Batch Size: %d", cfg.QuestionBatchSize)

	return &cfg, nil
}
