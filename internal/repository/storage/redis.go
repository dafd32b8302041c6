package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const dialTimeout = 5 * time.Second

// RedisOptions selects the server and sizes the client pool. Zero values keep go-redis defaults.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	PoolSize int
}

type RedisStorage struct {
	Connection *redis.Client
}

// NewRedisStorage connects and pings once, so a wrong address fails at startup instead of on the first move.
func NewRedisStorage(ctx context.Context, options RedisOptions) (*RedisStorage, error) {
	conn := redis.NewClient(&redis.Options{
		Addr:        options.Addr,
		Password:    options.Password,
		DB:          options.DB,
		PoolSize:    options.PoolSize,
		DialTimeout: dialTimeout,
	})

	if _, err := conn.Ping(ctx).Result(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", options.Addr, err)
	}

	return &RedisStorage{Connection: conn}, nil
}

func (that *RedisStorage) Close() error {
	return that.Connection.Close()
}
