package bulk

import (
	"context"
	"fmt"
	"time"

	"github.com/curator-sh/curator/internal/domain"
	"github.com/curator-sh/curator/internal/index"
	"github.com/curator-sh/curator/internal/logger"
	redisstore "github.com/curator-sh/curator/internal/store/redis"
)

// Resolver applies a duplicate group's recommended resolution.
type Resolver struct {
	store  *redisstore.Store
	index  *index.MemoryIndex
	logger logger.Logger
}

// NewResolver creates a new resolver
func NewResolver(
	store *redisstore.Store,
	idx *index.MemoryIndex,
	log logger.Logger,
) *Resolver {
	return &Resolver{
		store:  store,
		index:  idx,
		logger: log,
	}
}

// ApplyResolution writes the group's merge payload onto the keeper and
// marks every other member as a duplicate of it. Losers are kept, not
// deleted, so the operation stays reversible by hand.
func (r *Resolver) ApplyResolution(ctx context.Context, group *domain.DuplicateGroup) error {
	if group == nil || group.Resolution == nil {
		return fmt.Errorf("group has no resolution")
	}

	res := group.Resolution
	keeper, ok := r.index.GetRecord(res.Keep)
	if !ok {
		return fmt.Errorf("keeper record not found: %s", res.Keep)
	}

	now := time.Now()

	if len(res.Merge.Title) > len(keeper.Title) {
		keeper.Title = res.Merge.Title
	}
	if res.Merge.Description != "" {
		keeper.Description = res.Merge.Description
	}
	if len(res.Merge.Tags) > 0 {
		keeper.Tags = res.Merge.Tags
	}
	if len(res.Merge.Metadata) > 0 {
		if keeper.Meta == nil {
			keeper.Meta = make(map[string]any, len(res.Merge.Metadata))
		}
		for key, val := range res.Merge.Metadata {
			keeper.Meta[key] = val
		}
	}
	keeper.IsDuplicate = false
	keeper.DuplicateOf = ""
	keeper.DateModified = now

	changed := []*domain.Record{keeper}

	for _, member := range group.Members {
		if member.ID == keeper.ID {
			continue
		}
		rec, ok := r.index.GetRecord(member.ID)
		if !ok {
			continue
		}
		rec.IsDuplicate = true
		rec.DuplicateOf = keeper.ID
		rec.DateModified = now
		changed = append(changed, rec)
	}

	for _, rec := range changed {
		r.index.AddRecord(rec)
	}

	if r.store != nil {
		if err := r.store.SaveRecordsMany(ctx, changed); err != nil {
			return err
		}
	}

	r.logger.Info("duplicate group resolved",
		logger.String("group_id", group.ID),
		logger.String("keeper", keeper.ID),
		logger.String("action", string(res.Action)),
		logger.Int("members", group.Count))

	return nil
}
