package scheduler

import (
	"context"
	"time"

	"github.com/curator-sh/curator/internal/domain"
	"github.com/curator-sh/curator/internal/index"
	"github.com/curator-sh/curator/internal/logger"
	redisstore "github.com/curator-sh/curator/internal/store/redis"
)

// DedupScanner periodically groups records by normalized URL and marks
// the losers of each group as duplicates of the recommended keeper.
type DedupScanner struct {
	store         *redisstore.Store
	index         *index.MemoryIndex
	logger        logger.Logger
	interval      time.Duration
	stopCh        chan struct{}
	manualTrigger chan struct{}
}

// NewDedupScanner creates a new duplicate scanner
func NewDedupScanner(
	store *redisstore.Store,
	idx *index.MemoryIndex,
	log logger.Logger,
	interval time.Duration,
	manualTrigger chan struct{},
) *DedupScanner {
	return &DedupScanner{
		store:         store,
		index:         idx,
		logger:        log,
		interval:      interval,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Start begins the periodic scan process
func (ds *DedupScanner) Start(ctx context.Context) error {
	// Run immediately on start
	if _, err := ds.Scan(ctx); err != nil {
		ds.logger.Warn("initial duplicate scan failed",
			logger.Error(err))
	}

	ticker := time.NewTicker(ds.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if _, err := ds.Scan(ctx); err != nil {
					ds.logger.Error("duplicate scan failed",
						logger.Error(err))
				}
			case <-ds.manualTrigger:
				ds.logger.Info("manual duplicate scan triggered")
				if _, err := ds.Scan(ctx); err != nil {
					ds.logger.Error("duplicate scan failed",
						logger.Error(err))
				}
			case <-ds.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the scanner
func (ds *DedupScanner) Stop() {
	close(ds.stopCh)
}

// Scan groups all records, marks group members as duplicates of the
// recommended keeper, and repairs stale duplicate pointers. Returns the
// groups found. Marking is bookkeeping only; nothing is merged or
// deleted here, that is the resolve operation's job.
func (ds *DedupScanner) Scan(ctx context.Context) ([]*domain.DuplicateGroup, error) {
	records := ds.index.GetAllRecords()
	groups := domain.GroupDuplicates(records, time.Now())

	changed := make(map[string]*domain.Record)

	for _, group := range groups {
		if group.Resolution == nil {
			continue
		}
		keeperID := group.Resolution.Keep

		for _, member := range group.Members {
			if member.ID == keeperID {
				if member.IsDuplicate || member.DuplicateOf != "" {
					member.IsDuplicate = false
					member.DuplicateOf = ""
					changed[member.ID] = member
				}
				continue
			}
			if !member.IsDuplicate || member.DuplicateOf != keeperID {
				member.IsDuplicate = true
				member.DuplicateOf = keeperID
				changed[member.ID] = member
			}
		}
	}

	ds.repairPointers(records, changed)

	if len(changed) > 0 {
		ds.persistChanged(ctx, changed)
	}

	ds.logger.Info("duplicate scan completed",
		logger.Int("records", len(records)),
		logger.Int("groups", len(groups)),
		logger.Int("updated", len(changed)))

	return groups, nil
}

// repairPointers clears duplicate pointers that reference the record
// itself or a record that no longer exists, and shortens chains by one
// hop when a pointer targets another duplicate.
func (ds *DedupScanner) repairPointers(records []*domain.Record, changed map[string]*domain.Record) {
	byID := make(map[string]*domain.Record, len(records))
	for _, rec := range records {
		byID[rec.ID] = rec
	}

	for _, rec := range records {
		if !rec.IsDuplicate && rec.DuplicateOf == "" {
			continue
		}

		target, exists := byID[rec.DuplicateOf]
		switch {
		case rec.DuplicateOf == "" || rec.DuplicateOf == rec.ID || !exists:
			rec.IsDuplicate = false
			rec.DuplicateOf = ""
			changed[rec.ID] = rec

		case target.IsDuplicate && target.DuplicateOf != "" && target.DuplicateOf != rec.ID:
			// One hop only. A cycle longer than two settles over
			// successive scans instead of looping here.
			rec.DuplicateOf = target.DuplicateOf
			changed[rec.ID] = rec
		}
	}
}

func (ds *DedupScanner) persistChanged(ctx context.Context, changed map[string]*domain.Record) {
	updated := make([]*domain.Record, 0, len(changed))
	for _, rec := range changed {
		ds.index.AddRecord(rec)
		updated = append(updated, rec)
	}

	if ds.store == nil {
		return
	}
	if err := ds.store.SaveRecordsMany(ctx, updated); err != nil {
		ds.logger.Warn("failed to save scan results to redis",
			logger.Error(err))
	}
}
