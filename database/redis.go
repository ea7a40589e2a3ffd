package database

import (
	"context"
	"time"

	"payexsync/config"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

var RedisClient *redis.Client

// InitRedis connects to REDIS_ADDR. Without REDIS_ADDR the client stays nil
// and order transitions are not locked.
func InitRedis(logger *zap.Logger) bool {
	addr := config.Config("REDIS_ADDR", "")
	if addr == "" {
		return false
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: config.Config("REDIS_PASS", ""),
		DB:       config.ConfigInt("REDIS_DB", 0),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("redis connection failed, order locking disabled", zap.String("addr", addr), zap.Error(err))
		client.Close()
		return false
	}

	logger.Info("redis connection successful", zap.String("addr", addr))
	RedisClient = client
	return true
}
