package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/curator-sh/curator/internal/bulk"
	"github.com/curator-sh/curator/internal/config"
	"github.com/curator-sh/curator/internal/httpserver"
	"github.com/curator-sh/curator/internal/httpserver/deps"
	"github.com/curator-sh/curator/internal/index"
	"github.com/curator-sh/curator/internal/logger"
	"github.com/curator-sh/curator/internal/redis"
	"github.com/curator-sh/curator/internal/scheduler"
	redisstore "github.com/curator-sh/curator/internal/store/redis"
	"github.com/curator-sh/curator/internal/version"
)

type App struct {
	cfg          *config.Config
	logger       logger.Logger
	server       *httpserver.Server
	redisClient  *goredis.Client
	memIndex     *index.MemoryIndex
	seedReloader *scheduler.SeedReloader
	scanner      *scheduler.DedupScanner
}

func New() *App {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	// Initialize Redis early - fail fast if unavailable
	loggerClient.Infof("Connecting to Redis at %s", cfg.RedisAddr)
	redisClient, err := redis.New(redis.ConnectOptions{
		Addr:           cfg.RedisAddr,
		User:           cfg.RedisUser,
		Password:       cfg.RedisPassword,
		DB:             cfg.RedisDB,
		DialTimeout:    cfg.RedisDT,
		ReadTimeout:    cfg.RedisRT,
		WriteTimeout:   cfg.RedisWT,
		PoolSize:       cfg.RedisPoolSize,
		ConnectTimeout: cfg.RedisConnectTimeout,
		RetryInterval:  cfg.RedisRetryInterval,
		MaxWait:        cfg.RedisMaxWait,
		PingTimeout:    cfg.RedisPingTimeout,
	}, loggerClient)
	if err != nil {
		loggerClient.Errorf("Failed to connect to Redis: %v", err)
		os.Exit(1)
	}
	loggerClient.Info("Redis initialized successfully")

	memIndex := index.NewMemoryIndex()
	store := redisstore.NewStore(redisClient)

	// Load persisted records, tags and categories into memory on startup
	syncer := scheduler.NewRedisSyncer(store, memIndex, loggerClient)
	if err := syncer.Sync(context.Background()); err != nil {
		loggerClient.Warn("failed to sync from redis on startup, starting empty",
			logger.Error(err))
	}

	// Manual trigger channels for the admin endpoints
	seedReloadTrigger := make(chan struct{}, 1)
	scanTrigger := make(chan struct{}, 1)

	seedReloader := scheduler.NewSeedReloader(
		cfg.SeedFile,
		store,
		memIndex,
		loggerClient,
		cfg.SeedInterval,
		seedReloadTrigger,
	)

	scanner := scheduler.NewDedupScanner(
		store,
		memIndex,
		loggerClient,
		cfg.ScanInterval,
		scanTrigger,
	)

	d := deps.Deps{
		Logger:            loggerClient,
		StartTime:         time.Now(),
		Version:           version.Version,
		Commit:            version.Commit,
		BuildDate:         version.BuildDate,
		GoVersion:         version.GoVersion,
		TimeNow:           time.Now,
		RedisClient:       redisClient,
		Store:             store,
		MemoryIndex:       memIndex,
		Recategorizer:     bulk.NewRecategorizer(store, memIndex, loggerClient),
		TagMerger:         bulk.NewTagMerger(store, memIndex, loggerClient),
		Resolver:          bulk.NewResolver(store, memIndex, loggerClient),
		SeedReloadTrigger: seedReloadTrigger,
		ScanTrigger:       scanTrigger,
		AdminBurst:        cfg.AdminBurst,
		AdminRefillPerMin: cfg.AdminRefillPerMin,
		TrustProxy:        cfg.TrustProxy,
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:          cfg,
		logger:       loggerClient,
		server:       server,
		redisClient:  redisClient,
		memIndex:     memIndex,
		seedReloader: seedReloader,
		scanner:      scanner,
	}
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting Curator v%s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Infof("Curator %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Start seed reloader (loads categories and starts periodic refresh)
	if err := a.seedReloader.Start(ctx); err != nil {
		return fmt.Errorf("failed to start seed reloader: %w", err)
	}
	a.logger.Info("seed reloader started",
		logger.Duration("interval", a.cfg.SeedInterval))

	// Start duplicate scanner
	if err := a.scanner.Start(ctx); err != nil {
		return fmt.Errorf("failed to start duplicate scanner: %w", err)
	}
	a.logger.Info("duplicate scanner started",
		logger.Duration("interval", a.cfg.ScanInterval))

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	a.seedReloader.Stop()
	a.scanner.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warnf("failed to close redis: %v", err)
		} else {
			a.logger.Info("✅ Redis closed cleanly")
		}
	}

	a.logger.Info("✅ Curator stopped cleanly")
	return nil
}
