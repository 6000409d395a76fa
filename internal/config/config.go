package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	SeedFile     string        // path to the categories.yaml seed file (optional, empty = built-in seed)
	ScanInterval time.Duration // interval between duplicate scans (default: 6h)
	SeedInterval time.Duration // interval to reload the seed file (default: 24h)

	// Redis
	RedisAddr             string        // ex: "localhost:6379"
	RedisUser             string        // optional
	RedisPassword         string        // optional
	RedisPasswordRequired bool          // true => require password, false => allow empty password
	RedisDB               int           // Redis DB number
	RedisDT               time.Duration // Redis dial timeout (ex: 5s)
	RedisRT               time.Duration // Redis read timeout (ex: 3s)
	RedisWT               time.Duration // Redis write timeout (ex: 3s)
	RedisMaxWait          time.Duration // max wait between retries (ex: 10s)
	RedisPingTimeout      time.Duration // timeout for each ping attempt (ex: 5s)
	RedisPoolSize         int           // Redis connection pool size
	RedisConnectTimeout   time.Duration // Total time to retry connecting (ex: 30s)
	RedisRetryInterval    time.Duration // Initial wait between retries (ex: 2s, grows exponentially)

	// Rate limiting on mutating admin endpoints (scan, categorize, merge)
	AdminBurst        int  // token bucket burst (default: 3)
	AdminRefillPerMin int  // tokens refilled per minute (default: 6)
	TrustProxy        bool // resolve client IPs from proxy headers
}

func Load() *Config {
	cfg := &Config{
		// Server settings
		ListenPort:      getenv("CURATOR_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("CURATOR_SHUTDOWN_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  getenv("CURATOR_LOG_LEVEL", "info"),
		PrettyLog: mustBool("CURATOR_PRETTY_LOG", true),

		// Curation settings
		SeedFile:     getenv("CURATOR_SEED_FILE", ""),
		ScanInterval: mustDuration("CURATOR_SCAN_INTERVAL", 6*time.Hour),
		SeedInterval: mustDuration("CURATOR_SEED_RELOAD_INTERVAL", 24*time.Hour),

		// Redis settings
		RedisAddr:             requireEnv("CURATOR_REDIS_ADDR"),
		RedisUser:             getenv("CURATOR_REDIS_USERNAME", "default"),
		RedisPasswordRequired: mustBool("CURATOR_REDIS_PASSWORD_REQUIRED", true),
		RedisPassword:         getenv("CURATOR_REDIS_PASSWORD", ""),
		RedisDB:               getenvInt("CURATOR_REDIS_DB", 0),
		RedisDT:               mustDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:               mustDuration("REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:               mustDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisMaxWait:          mustDuration("REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:      mustDuration("REDIS_PING_TIMEOUT", 5*time.Second),
		RedisPoolSize:         getenvInt("REDIS_POOL_SIZE", 10),
		RedisConnectTimeout:   mustDuration("REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:    mustDuration("REDIS_RETRY_INTERVAL", 2*time.Second),

		// Admin rate limiting
		AdminBurst:        getenvInt("CURATOR_ADMIN_BURST", 3),
		AdminRefillPerMin: getenvInt("CURATOR_ADMIN_REFILL_PER_MIN", 6),
		TrustProxy:        mustBool("CURATOR_TRUST_PROXY", false),
	}

	// Validate Redis password configuration
	if cfg.RedisPasswordRequired && cfg.RedisPassword == "" {
		panic("FATAL: CURATOR_REDIS_PASSWORD is required when CURATOR_REDIS_PASSWORD_REQUIRED=true")
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		cfgCopy := *cfg
		cfgCopy.RedisPassword = "***REDACTED***"
		if cfg.RedisUser != "" {
			cfgCopy.RedisUser = "***REDACTED***"
		}
		log.Printf("[DEBUG] cfg: %+v\n", cfgCopy)
	}

	return cfg
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func requireEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("FATAL: Required environment variable %s is not set", key))
	}
	return v
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
