package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type Options struct {
	Host     string
	Port     string
	Password string
	DB       int
}

func (o Options) Addr() string {
	return fmt.Sprintf("%s:%s", o.Host, o.Port)
}

// NewRedisClient connects and pings once so a misconfigured cache fails at
// startup instead of on the first request.
func NewRedisClient(opts Options) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         opts.Addr(),
		Password:     opts.Password,
		DB:           opts.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})

	if err := Ping(context.Background(), rdb); err != nil {
		_ = rdb.Close()
		return nil, err
	}

	return rdb, nil
}

// Ping is used by the health endpoint.
func Ping(ctx context.Context, rdb *redis.Client) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis at %s unreachable: %w", rdb.Options().Addr, err)
	}
	return nil
}
