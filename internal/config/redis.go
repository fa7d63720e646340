package config

// Redis backs the response cache, the rate limiter and the per-client
// preference store.  All three degrade when the client is nil: caching and
// rate limiting become passthroughs and preferences fall back to memory.

import (
	"context"
	"crypto/tls"
	"os"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisOptions builds client options from the environment:
//
//	REDIS_ADDR (or REDIS_HOST + REDIS_PORT), REDIS_PASSWORD, REDIS_DB, REDIS_TLS
func RedisOptions() *redis.Options {
	addr := os.Getenv("REDIS_ADDR")
	if host, port := os.Getenv("REDIS_HOST"), os.Getenv("REDIS_PORT"); host != "" && port != "" {
		addr = host + ":" + port
	}
	if addr == "" {
		addr = "localhost:6379"
	}
	opts := &redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       envInt("REDIS_DB", 0),
	}
	if v := os.Getenv("REDIS_TLS"); strings.EqualFold(v, "true") || v == "1" {
		opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	return opts
}

// NewRedisClient connects and pings with a short timeout.  It returns nil
// when REDIS_ENABLED is false or the server cannot be reached.
func NewRedisClient() *redis.Client {
	if !envBool("REDIS_ENABLED", true) {
		return nil
	}
	client := redis.NewClient(RedisOptions())
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil
	}
	return client
}
