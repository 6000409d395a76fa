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

// TagMerger folds one tag into another across the whole record set.
type TagMerger struct {
	store  *redisstore.Store
	index  *index.MemoryIndex
	logger logger.Logger
}

// NewTagMerger creates a new tag merger
func NewTagMerger(
	store *redisstore.Store,
	idx *index.MemoryIndex,
	log logger.Logger,
) *TagMerger {
	return &TagMerger{
		store:  store,
		index:  idx,
		logger: log,
	}
}

// MergeTags replaces every use of the source tag with the target tag,
// folds the usage count into the target and deletes the source
// definition. Returns the number of records rewritten.
func (tm *TagMerger) MergeTags(ctx context.Context, fromID, toID string) (int, error) {
	if fromID == toID {
		return 0, fmt.Errorf("cannot merge tag %s into itself", fromID)
	}

	source, ok := tm.index.GetTag(fromID)
	if !ok {
		return 0, fmt.Errorf("source tag not found: %s", fromID)
	}
	target, ok := tm.index.GetTag(toID)
	if !ok {
		return 0, fmt.Errorf("target tag not found: %s", toID)
	}

	now := time.Now()
	changed := make([]*domain.Record, 0)

	for _, rec := range tm.index.GetAllRecords() {
		if !rec.HasTag(fromID) {
			continue
		}

		kept := make([]domain.Tag, 0, len(rec.Tags))
		for _, tag := range rec.Tags {
			if tag.ID == fromID {
				continue
			}
			kept = append(kept, tag)
		}
		if !rec.HasTag(toID) {
			kept = append(kept, *target)
		}

		rec.Tags = kept
		rec.DateModified = now
		changed = append(changed, rec)
	}

	target.UsageCount += source.UsageCount

	for _, rec := range changed {
		tm.index.AddRecord(rec)
	}
	tm.index.AddTag(target)
	tm.index.DeleteTag(fromID)

	if tm.store != nil {
		if len(changed) > 0 {
			if err := tm.store.SaveRecordsMany(ctx, changed); err != nil {
				return 0, err
			}
		}
		if err := tm.store.SaveTag(ctx, target); err != nil {
			return 0, err
		}
		if err := tm.store.DeleteTag(ctx, fromID); err != nil {
			tm.logger.Warn("failed to delete merged tag from redis",
				logger.String("tag_id", fromID),
				logger.Error(err))
		}
	}

	tm.logger.Info("tags merged",
		logger.String("from", source.Name),
		logger.String("to", target.Name),
		logger.Int("records_rewritten", len(changed)))

	return len(changed), nil
}
