package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Compile-time check
var _ GenerationTracker = (*redisGenerationTracker)(nil)

// generatingKeyPrefix - ключ-замок на время генерации изображения элемента.
const generatingKeyPrefix = "generating_element:"

// generatingTTL страхует от вечно висящих замков после падения процесса.
const generatingTTL = 10 * time.Minute

type redisGenerationTracker struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRedisGenerationTracker создает Redis-реализацию GenerationTracker.
func NewRedisGenerationTracker(client *redis.Client, logger *zap.Logger) GenerationTracker {
	return &redisGenerationTracker{
		client: client,
		logger: logger.Named("RedisGenTracker"),
	}
}

func (t *redisGenerationTracker) Acquire(ctx context.Context, elementID uuid.UUID) (bool, error) {
	key := generatingKeyPrefix + elementID.String()
	acquired, err := t.client.SetNX(ctx, key, "1", generatingTTL).Result()
	if err != nil {
		t.logger.Error("Failed to acquire generation lock", zap.String("elementID", elementID.String()), zap.Error(err))
		return false, fmt.Errorf("failed to acquire generation lock: %w", err)
	}
	if !acquired {
		t.logger.Debug("Element already generating", zap.String("elementID", elementID.String()))
	}
	return acquired, nil
}

func (t *redisGenerationTracker) Release(ctx context.Context, elementID uuid.UUID) error {
	key := generatingKeyPrefix + elementID.String()
	if err := t.client.Del(ctx, key).Err(); err != nil {
		t.logger.Error("Failed to release generation lock", zap.String("elementID", elementID.String()), zap.Error(err))
		return fmt.Errorf("failed to release generation lock: %w", err)
	}
	return nil
}
