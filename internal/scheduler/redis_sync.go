package scheduler

import (
	"context"

	"github.com/curator-sh/curator/internal/index"
	"github.com/curator-sh/curator/internal/logger"
	redisstore "github.com/curator-sh/curator/internal/store/redis"
)

// RedisSyncer loads records, tags and categories from Redis into the
// memory index on startup
type RedisSyncer struct {
	store  *redisstore.Store
	index  *index.MemoryIndex
	logger logger.Logger
}

// NewRedisSyncer creates a new Redis syncer
func NewRedisSyncer(
	store *redisstore.Store,
	idx *index.MemoryIndex,
	log logger.Logger,
) *RedisSyncer {
	return &RedisSyncer{
		store:  store,
		index:  idx,
		logger: log,
	}
}

// Sync loads everything from Redis and updates the memory index
func (rs *RedisSyncer) Sync(ctx context.Context) error {
	rs.logger.Info("syncing data from redis to memory")

	records, err := rs.store.GetAllRecords(ctx)
	if err != nil {
		return err
	}
	rs.index.UpdateRecords(records)

	tags, err := rs.store.GetAllTags(ctx)
	if err != nil {
		return err
	}
	rs.index.UpdateTags(tags)

	categories, err := rs.store.GetAllCategories(ctx)
	if err != nil {
		return err
	}
	rs.index.UpdateCategories(categories)

	rs.logger.Info("synced data from redis",
		logger.Int("records", len(records)),
		logger.Int("tags", len(tags)),
		logger.Int("categories", len(categories)))

	return nil
}
