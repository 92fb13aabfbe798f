package repo

import (
	"context"
	"log"

	"github.com/go-redis/redis/v8"
)

// InitRedis connects the Redis client used for login sessions.
func InitRedis(addr, password string) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		return nil, err
	}
	return rdb, nil
}

// CloseRedis closes the Redis client connection.
func CloseRedis(rdb *redis.Client) {
	if rdb != nil {
		if err := rdb.Close(); err != nil {
			log.Println("failed to close redis connection:", err)
		}
	}
}
