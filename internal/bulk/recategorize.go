package bulk

import (
	"context"
	"time"

	"github.com/curator-sh/curator/internal/domain"
	"github.com/curator-sh/curator/internal/index"
	"github.com/curator-sh/curator/internal/logger"
	redisstore "github.com/curator-sh/curator/internal/store/redis"
)

// Recategorizer re-runs category selection over the whole record set.
type Recategorizer struct {
	store  *redisstore.Store
	index  *index.MemoryIndex
	logger logger.Logger
}

// NewRecategorizer creates a new recategorizer
func NewRecategorizer(
	store *redisstore.Store,
	idx *index.MemoryIndex,
	log logger.Logger,
) *Recategorizer {
	return &Recategorizer{
		store:  store,
		index:  idx,
		logger: log,
	}
}

// RecategorizeAll scores every record against the current category set and
// rewrites the stored snapshot where the selection changed. Records keep
// their metadata bag as the scoring input. Returns the number of records
// whose category changed.
func (rc *Recategorizer) RecategorizeAll(ctx context.Context) (int, error) {
	records := rc.index.GetAllRecords()
	categories := rc.index.GetAllCategories()
	now := time.Now()

	changed := make([]*domain.Record, 0)
	for _, rec := range records {
		meta := domain.MetadataFromMeta(rec.Meta)
		selected := domain.Categorize(rec, meta, categories)

		if sameCategory(rec.Category, selected) {
			continue
		}

		if selected == nil {
			rec.Category = nil
		} else {
			snapshot := *selected
			rec.Category = &snapshot
		}
		rec.DateModified = now
		changed = append(changed, rec)
	}

	for _, rec := range changed {
		rc.index.AddRecord(rec)
	}

	if len(changed) > 0 && rc.store != nil {
		if err := rc.store.SaveRecordsMany(ctx, changed); err != nil {
			return 0, err
		}
	}

	rc.logger.Info("recategorization completed",
		logger.Int("records", len(records)),
		logger.Int("changed", len(changed)))

	return len(changed), nil
}

func sameCategory(a, b *domain.Category) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.ID == b.ID
}
