package redis

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

const (
	connectAttempts = 20
	connectBackoff  = 2 * time.Second
)

// Connect opens a client and waits until the server answers PING.
func Connect(ctx context.Context, addr string, logger *slog.Logger) (*goredis.Client, error) {
	log := logger.With("component", "redis")
	rdb := goredis.NewClient(&goredis.Options{Addr: addr})

	for i := 1; i <= connectAttempts; i++ {
		pingCtx, cancel := context.WithTimeout(ctx, connectBackoff)
		err := rdb.Ping(pingCtx).Err()
		cancel()
		if err == nil {
			log.InfoContext(ctx, "Connected to Redis", "addr", addr)
			return rdb, nil
		}

		log.InfoContext(ctx, "Waiting for Redis", "attempt", i, "error", err)
		select {
		case <-ctx.Done():
			_ = rdb.Close()
			return nil, ctx.Err()
		case <-time.After(connectBackoff):
		}
	}

	_ = rdb.Close()
	return nil, fmt.Errorf("redis: no answer from %s after %d attempts", addr, connectAttempts)
}
