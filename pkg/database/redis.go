// Package database holds connections to external stores.
package database

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"

	"maternal-companion-go/pkg/log"
)

// RDB is the shared Redis client. It stays nil unless InitRedis is called.
var RDB *redis.Client

// InitRedis connects to Redis and exits the process when it is unreachable.
func InitRedis(addr, password string, db int) {
	RDB = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := RDB.Ping(ctx).Err(); err != nil {
		log.Fatal("failed to connect to redis", err)
	}

	log.Infof("Redis client connected successfully, addr: %s", addr)
}

// CloseRedis closes the shared client if it was opened.
func CloseRedis() {
	if RDB == nil {
		return
	}
	if err := RDB.Close(); err != nil {
		log.Error("failed to close redis client", err)
	}
}
