package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/curator-sh/curator/internal/index"
	"github.com/curator-sh/curator/internal/logger"
	"github.com/curator-sh/curator/internal/sources/seed"
	redisstore "github.com/curator-sh/curator/internal/store/redis"
)

// SeedReloader handles periodic reloading of the category seed file
type SeedReloader struct {
	seedFile      string
	loader        *seed.Loader
	mapper        *seed.Mapper
	store         *redisstore.Store
	index         *index.MemoryIndex
	logger        logger.Logger
	interval      time.Duration
	stopCh        chan struct{}
	manualTrigger chan struct{}
}

// NewSeedReloader creates a new seed reloader. An empty seedFile means the
// built-in default seed is used.
func NewSeedReloader(
	seedFile string,
	store *redisstore.Store,
	idx *index.MemoryIndex,
	log logger.Logger,
	interval time.Duration,
	manualTrigger chan struct{},
) *SeedReloader {
	var loader *seed.Loader
	if seedFile != "" {
		loader = seed.NewLoader(seedFile)
	}

	return &SeedReloader{
		seedFile:      seedFile,
		loader:        loader,
		mapper:        seed.NewMapper(),
		store:         store,
		index:         idx,
		logger:        log,
		interval:      interval,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Start begins the periodic reload process
func (sr *SeedReloader) Start(ctx context.Context) error {
	// Load immediately on start
	if err := sr.Reload(ctx); err != nil {
		return fmt.Errorf("initial seed reload failed: %w", err)
	}

	// Start periodic reload
	ticker := time.NewTicker(sr.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := sr.Reload(ctx); err != nil {
					sr.logger.Error("failed to reload seed categories",
						logger.Error(err))
				}
			case <-sr.manualTrigger:
				sr.logger.Info("manual seed reload triggered")
				if err := sr.Reload(ctx); err != nil {
					sr.logger.Error("failed to reload seed categories",
						logger.Error(err))
				}
			case <-sr.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the reloader
func (sr *SeedReloader) Stop() {
	close(sr.stopCh)
}

// Reload loads categories from the seed and updates store + index.
// User-defined (non-system) categories already in the index survive the
// reload; the seed only replaces its own entries.
func (sr *SeedReloader) Reload(ctx context.Context) error {
	config := seed.Default()
	if sr.loader != nil {
		loaded, err := sr.loader.Load()
		if err != nil {
			return fmt.Errorf("failed to load seed: %w", err)
		}
		config = loaded
	}

	seeded, err := sr.mapper.MapCategories(config)
	if err != nil {
		return fmt.Errorf("failed to map seed categories: %w", err)
	}

	sr.logger.Info("loaded seed categories",
		logger.Int("count", len(seeded)))

	seededIDs := make(map[string]bool, len(seeded))
	for _, cat := range seeded {
		seededIDs[cat.ID] = true
	}

	merged := seeded
	for _, existing := range sr.index.GetAllCategories() {
		if existing.IsSystem || seededIDs[existing.ID] {
			continue
		}
		merged = append(merged, existing)
	}

	// Update memory index first; it is the primary source
	sr.index.UpdateCategories(merged)

	if sr.store != nil {
		if err := sr.store.SaveCategoriesMany(ctx, merged); err != nil {
			sr.logger.Warn("failed to save categories to redis",
				logger.Error(err))
		} else {
			sr.logger.Info("categories saved to redis")
		}
	}

	return nil
}
