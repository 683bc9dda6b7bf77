package cache

import (
	"context"
	"log"
	"strings"

	"github.com/redis/go-redis/v9"
)

// Client is the shared redis connection backing result memoization. Nil
// when redis is unavailable; callers must tolerate that, the cache is a
// pure optimization.
var Client *redis.Client

var (
	newRedisClient = func(opts *redis.Options) *redis.Client {
		return redis.NewClient(opts)
	}
	pingRedis = func(ctx context.Context, client *redis.Client) error {
		return client.Ping(ctx).Err()
	}
	parseRedisURL = redis.ParseURL
)

// InitRedis connects to the given address ("host:port" or a redis:// URL).
// A failed connection leaves Client nil and the service degraded but up.
func InitRedis(ctx context.Context, addr string) {
	if addr == "" {
		log.Println("REDIS_URL not set, backtest memoization disabled")
		return
	}

	opts := &redis.Options{Addr: addr}
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		parsed, err := parseRedisURL(addr)
		if err != nil {
			log.Printf("failed to parse REDIS_URL: %v", err)
			return
		}
		opts = parsed
	}

	client := newRedisClient(opts)
	if err := pingRedis(ctx, client); err != nil {
		log.Printf("failed to connect to Redis, memoization disabled: %v", err)
		return
	}

	Client = client
	log.Println("Connected to Redis")
}
