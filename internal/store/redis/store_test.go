package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/curator-sh/curator/internal/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewStore(client)
}

func TestStoreRecordRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	visited := time.Now().Add(-time.Hour).Truncate(time.Second)
	rec := &domain.Record{
		ID:          "r1",
		URL:         "https://example.com/a",
		Title:       "Example",
		Description: "notes",
		DateAdded:   time.Now().Truncate(time.Second),
		DateVisited: &visited,
		VisitCount:  3,
		Tags:        []domain.Tag{{ID: "t1", Name: "go", Category: domain.TagKeyword}},
		Category:    &domain.Category{ID: "c1", Name: "Development"},
		Meta:        map[string]any{"domain": "example.com"},
	}

	require.NoError(t, store.SaveRecord(ctx, rec))

	got, err := store.GetRecord(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, rec.URL, got.URL)
	assert.Equal(t, rec.Title, got.Title)
	require.NotNil(t, got.DateVisited)
	assert.True(t, got.DateVisited.Equal(visited))
	require.Len(t, got.Tags, 1)
	assert.Equal(t, "t1", got.Tags[0].ID)
	require.NotNil(t, got.Category)
	assert.Equal(t, "c1", got.Category.ID)
	assert.Equal(t, "example.com", got.Meta["domain"])
}

func TestStoreGetRecordNotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.GetRecord(context.Background(), "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "record not found")
}

func TestStoreSaveRecordsMany(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	records := []*domain.Record{
		{ID: "r1", URL: "https://a.com"},
		{ID: "r2", URL: "https://b.com"},
		{ID: "r3", URL: "https://c.com"},
	}
	require.NoError(t, store.SaveRecordsMany(ctx, records))

	got, err := store.GetAllRecords(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestStoreDeleteRecord(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveRecord(ctx, &domain.Record{ID: "r1", URL: "https://a.com"}))
	require.NoError(t, store.DeleteRecord(ctx, "r1"))

	_, err := store.GetRecord(ctx, "r1")
	require.Error(t, err)

	all, err := store.GetAllRecords(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestStoreTagRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	tag := &domain.Tag{
		ID:         "t1",
		Name:       "github.com",
		Color:      "#3B82F6",
		Category:   domain.TagDomain,
		UsageCount: 4,
	}
	require.NoError(t, store.SaveTag(ctx, tag))

	got, err := store.GetTag(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, tag.Name, got.Name)
	assert.Equal(t, tag.Category, got.Category)
	assert.Equal(t, 4, got.UsageCount)

	require.NoError(t, store.DeleteTag(ctx, "t1"))
	all, err := store.GetAllTags(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestStoreCategoriesSortedByOrder(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	categories := []*domain.Category{
		{ID: "prod", Name: "Productivity", Order: 2},
		{ID: "nav", Name: "Navigation", Order: 0},
		{ID: "dev", Name: "Development", Order: 1, Rules: []domain.CategoryRule{
			{Kind: domain.RuleDomain, Pattern: "github", Weight: 3, IsActive: true},
		}},
	}
	require.NoError(t, store.SaveCategoriesMany(ctx, categories))

	got, err := store.GetAllCategories(ctx)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "nav", got[0].ID)
	assert.Equal(t, "dev", got[1].ID)
	assert.Equal(t, "prod", got[2].ID)

	require.Len(t, got[1].Rules, 1)
	assert.Equal(t, domain.RuleDomain, got[1].Rules[0].Kind)
}
