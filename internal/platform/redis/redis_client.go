package redis

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

// Options は接続先の Redis サーバーを表します。
type Options struct {
	Addr     string
	Password string
	DB       int
}

// NewRedisClient は Redis に接続し、PING で疎通を確認します。
func NewRedisClient(ctx context.Context, opts Options) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	// 接続確認
	if err := rdb.Ping(ctx).Err(); err != nil {
		slog.Error("Redis connection failed", "address", opts.Addr, "error", err)
		_ = rdb.Close()
		return nil, err
	}

	slog.Info("Redis connection successful", "address", opts.Addr)
	return rdb, nil
}
