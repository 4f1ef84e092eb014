// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"trimly/config"

	"github.com/go-redis/redis/v8"
)

var (
	// SessionCacheClient holds in-flight booking sessions.
	SessionCacheClient *redis.Client
	// ScheduleCacheClient holds short-lived upstream schedule snapshots.
	ScheduleCacheClient *redis.Client
)

// InitSessionCache initializes the Redis client backing booking sessions.
func InitSessionCache() {
	SessionCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisSessionDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := SessionCacheClient.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (Sessions): %v", err)
	}
}

// GetSessionCacheClient returns the booking session client.
func GetSessionCacheClient() *redis.Client {
	if SessionCacheClient == nil {
		InitSessionCache()
	}
	return SessionCacheClient
}

// InitScheduleCache initializes the Redis client for cached schedule data.
func InitScheduleCache() {
	ScheduleCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisCacheDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := ScheduleCacheClient.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (Schedule Cache): %v", err)
	}
}

// GetScheduleCacheClient returns the schedule cache client.
func GetScheduleCacheClient() *redis.Client {
	if ScheduleCacheClient == nil {
		InitScheduleCache()
	}
	return ScheduleCacheClient
}

// InitRedis brings up every Redis client the service uses.
func InitRedis() {
	InitSessionCache()
	InitScheduleCache()
}
