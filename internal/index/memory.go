package index

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/curator-sh/curator/internal/domain"
)

// MemoryIndex provides in-memory storage and lookup for records, tags and
// categories. It is the working set for grouping and scoring; Redis is the
// durable copy behind it.
type MemoryIndex struct {
	mu             sync.RWMutex
	records        map[string]*domain.Record
	tags           map[string]*domain.Tag
	tagsByName     map[string]string // normalized name -> tag ID
	categories     map[string]*domain.Category
	categoryOrder  []string // insertion order, drives selection tie-breaks
	lastRecordSync time.Time
	lastSeedReload time.Time
}

// NewMemoryIndex creates an empty index.
func NewMemoryIndex() *MemoryIndex {
	return &MemoryIndex{
		records:    make(map[string]*domain.Record),
		tags:       make(map[string]*domain.Tag),
		tagsByName: make(map[string]string),
		categories: make(map[string]*domain.Category),
	}
}

// ─────────────────────────────────────────────────────────────────
// Record methods
// ─────────────────────────────────────────────────────────────────

// UpdateRecords replaces all records in the index.
func (idx *MemoryIndex) UpdateRecords(records []*domain.Record) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.records = make(map[string]*domain.Record, len(records))
	for _, rec := range records {
		idx.records[rec.ID] = rec
	}
	idx.lastRecordSync = time.Now()
}

// GetRecord retrieves a record by ID.
func (idx *MemoryIndex) GetRecord(id string) (*domain.Record, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	rec, ok := idx.records[id]
	return rec, ok
}

// GetAllRecords returns all records ordered by DateAdded, then ID. Map
// iteration order is randomized; grouping and keeper selection tie-break
// on encounter order, so enumeration must be deterministic or tied
// records would flip keepers between calls.
func (idx *MemoryIndex) GetAllRecords() []*domain.Record {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	records := make([]*domain.Record, 0, len(idx.records))
	for _, rec := range idx.records {
		records = append(records, rec)
	}
	sort.Slice(records, func(i, j int) bool {
		if !records[i].DateAdded.Equal(records[j].DateAdded) {
			return records[i].DateAdded.Before(records[j].DateAdded)
		}
		return records[i].ID < records[j].ID
	})
	return records
}

// AddRecord adds or updates a single record.
func (idx *MemoryIndex) AddRecord(rec *domain.Record) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.records[rec.ID] = rec
}

// DeleteRecord removes a record from the index.
func (idx *MemoryIndex) DeleteRecord(id string) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	delete(idx.records, id)
}

// RecordCount returns the number of records in the index.
func (idx *MemoryIndex) RecordCount() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return len(idx.records)
}

// GetLastRecordSync returns the timestamp of the last record sync.
func (idx *MemoryIndex) GetLastRecordSync() time.Time {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.lastRecordSync
}

// ─────────────────────────────────────────────────────────────────
// Tag methods
// ─────────────────────────────────────────────────────────────────

// UpdateTags replaces all tag definitions in the index.
func (idx *MemoryIndex) UpdateTags(tags []*domain.Tag) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.tags = make(map[string]*domain.Tag, len(tags))
	idx.tagsByName = make(map[string]string, len(tags))
	for _, tag := range tags {
		idx.tags[tag.ID] = tag
		idx.tagsByName[normalizeTagName(tag.Name)] = tag.ID
	}
}

// GetTag retrieves a tag definition by ID.
func (idx *MemoryIndex) GetTag(id string) (*domain.Tag, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	tag, ok := idx.tags[id]
	return tag, ok
}

// GetAllTags returns all tag definitions.
func (idx *MemoryIndex) GetAllTags() []*domain.Tag {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	tags := make([]*domain.Tag, 0, len(idx.tags))
	for _, tag := range idx.tags {
		tags = append(tags, tag)
	}
	return tags
}

// AddTag adds or updates a single tag definition.
func (idx *MemoryIndex) AddTag(tag *domain.Tag) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.tags[tag.ID] = tag
	idx.tagsByName[normalizeTagName(tag.Name)] = tag.ID
}

// DeleteTag removes a tag definition from the index.
func (idx *MemoryIndex) DeleteTag(id string) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	if tag, ok := idx.tags[id]; ok {
		delete(idx.tagsByName, normalizeTagName(tag.Name))
	}
	delete(idx.tags, id)
}

// TagCount returns the number of tag definitions in the index.
func (idx *MemoryIndex) TagCount() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return len(idx.tags)
}

// FindOrCreateTag returns the tag definition with the given name, minting
// a new one when none exists. Implements domain.TagSource for the tag
// suggestion engine. Newly minted tags live in the index only; callers
// persist them when they commit suggestions.
func (idx *MemoryIndex) FindOrCreateTag(name string, category domain.TagCategory, color string) domain.Tag {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	if id, ok := idx.tagsByName[normalizeTagName(name)]; ok {
		if tag, ok := idx.tags[id]; ok {
			return *tag
		}
	}

	tag := &domain.Tag{
		ID:       uuid.NewString(),
		Name:     name,
		Color:    color,
		Category: category,
	}
	idx.tags[tag.ID] = tag
	idx.tagsByName[normalizeTagName(name)] = tag.ID
	return *tag
}

func normalizeTagName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// ─────────────────────────────────────────────────────────────────
// Category methods
// ─────────────────────────────────────────────────────────────────

// UpdateCategories replaces all categories. Insertion order is preserved
// and drives enumeration order, so categorization tie-breaks stay stable.
func (idx *MemoryIndex) UpdateCategories(categories []*domain.Category) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.categories = make(map[string]*domain.Category, len(categories))
	idx.categoryOrder = make([]string, 0, len(categories))
	for _, cat := range categories {
		if _, seen := idx.categories[cat.ID]; !seen {
			idx.categoryOrder = append(idx.categoryOrder, cat.ID)
		}
		idx.categories[cat.ID] = cat
	}
	idx.lastSeedReload = time.Now()
}

// GetCategory retrieves a category by ID.
func (idx *MemoryIndex) GetCategory(id string) (*domain.Category, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	cat, ok := idx.categories[id]
	return cat, ok
}

// GetAllCategories returns all categories in stable enumeration order.
func (idx *MemoryIndex) GetAllCategories() []*domain.Category {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	categories := make([]*domain.Category, 0, len(idx.categoryOrder))
	for _, id := range idx.categoryOrder {
		if cat, ok := idx.categories[id]; ok {
			categories = append(categories, cat)
		}
	}
	return categories
}

// CategoryCount returns the number of categories in the index.
func (idx *MemoryIndex) CategoryCount() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return len(idx.categories)
}

// GetLastSeedReload returns the timestamp of the last category reload.
func (idx *MemoryIndex) GetLastSeedReload() time.Time {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.lastSeedReload
}
