// Package config holds the serve command's configuration. Flags win
// over environment variables; both fall back to defaults suited to a
// local dev run.
package config

import (
	"flag"
	"fmt"
	"os"
	"time"
)

// Config carries everything the serve command needs to wire the app.
type Config struct {
	Addr         string
	DBPath       string
	RedisAddr    string
	RedisPass    string
	RedisDB      int
	DirectoryURL string
	AuthorsFile  string
	RateLimit    int
	RateWindow   time.Duration
	FeedCacheTTL time.Duration
}

// Load parses serve-command arguments, applying CHIRPER_* environment
// variables as defaults.
func Load(args []string) (*Config, error) {
	cfg := &Config{}

	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.StringVar(&cfg.Addr, "addr", envOr("CHIRPER_ADDR", ":8080"), "listen address")
	fs.StringVar(&cfg.DBPath, "db", envOr("CHIRPER_DB", "data/badger"), "badger database directory")
	fs.StringVar(&cfg.RedisAddr, "redis", envOr("CHIRPER_REDIS_ADDR", ""), "redis address for the shared rate limiter (empty = in-process limiter)")
	fs.StringVar(&cfg.RedisPass, "redis-password", envOr("CHIRPER_REDIS_PASSWORD", ""), "redis password")
	fs.IntVar(&cfg.RedisDB, "redis-db", 0, "redis database number")
	fs.StringVar(&cfg.DirectoryURL, "directory-url", envOr("CHIRPER_DIRECTORY_URL", ""), "identity directory base URL (empty = static directory from -authors)")
	fs.StringVar(&cfg.AuthorsFile, "authors", envOr("CHIRPER_AUTHORS", ""), "JSON file seeding the static identity directory")
	fs.IntVar(&cfg.RateLimit, "rate-limit", 5, "posts allowed per author per window")
	fs.DurationVar(&cfg.RateWindow, "rate-window", time.Minute, "rate limit window size")
	fs.DurationVar(&cfg.FeedCacheTTL, "feed-cache-ttl", 30*time.Second, "TTL for the cached global feed")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if cfg.RateLimit < 1 {
		return nil, fmt.Errorf("rate-limit must be at least 1, got %d", cfg.RateLimit)
	}
	if cfg.RateWindow <= 0 {
		return nil, fmt.Errorf("rate-window must be positive, got %s", cfg.RateWindow)
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
