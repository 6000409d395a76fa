package index

import (
	"testing"
	"time"

	"github.com/curator-sh/curator/internal/domain"
)

func TestMemoryIndexRecords(t *testing.T) {
	idx := NewMemoryIndex()

	records := []*domain.Record{
		{ID: "r1", URL: "https://a.com"},
		{ID: "r2", URL: "https://b.com"},
	}
	idx.UpdateRecords(records)

	if idx.RecordCount() != 2 {
		t.Errorf("RecordCount() = %d, want 2", idx.RecordCount())
	}

	rec, ok := idx.GetRecord("r1")
	if !ok || rec.URL != "https://a.com" {
		t.Errorf("GetRecord(r1) = %+v, %v", rec, ok)
	}

	idx.AddRecord(&domain.Record{ID: "r3", URL: "https://c.com"})
	if idx.RecordCount() != 3 {
		t.Errorf("RecordCount() after add = %d, want 3", idx.RecordCount())
	}

	idx.DeleteRecord("r1")
	if _, ok := idx.GetRecord("r1"); ok {
		t.Error("GetRecord(r1) should fail after delete")
	}

	if idx.GetLastRecordSync().IsZero() {
		t.Error("GetLastRecordSync() should be set after UpdateRecords")
	}
}

func TestMemoryIndexGetAllRecordsOrder(t *testing.T) {
	idx := NewMemoryIndex()

	base := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	idx.UpdateRecords([]*domain.Record{
		{ID: "z-old", URL: "https://a.com", DateAdded: base},
		{ID: "b-tied", URL: "https://b.com", DateAdded: base.Add(time.Hour)},
		{ID: "a-tied", URL: "https://c.com", DateAdded: base.Add(time.Hour)},
		{ID: "newest", URL: "https://d.com", DateAdded: base.Add(2 * time.Hour)},
	})

	want := []string{"z-old", "a-tied", "b-tied", "newest"}
	for i := 0; i < 50; i++ {
		got := idx.GetAllRecords()
		if len(got) != len(want) {
			t.Fatalf("GetAllRecords() len = %d, want %d", len(got), len(want))
		}
		for i, rec := range got {
			if rec.ID != want[i] {
				t.Fatalf("GetAllRecords()[%d] = %s, want %s", i, rec.ID, want[i])
			}
		}
	}
}

func TestMemoryIndexGetAllRecordsStableKeeper(t *testing.T) {
	idx := NewMemoryIndex()

	// Two records that normalize to the same URL and score identically.
	// Keeper selection tie-breaks on encounter order, so repeated grouping
	// over the index must always pick the same one.
	added := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	idx.UpdateRecords([]*domain.Record{
		{ID: "twin-b", URL: "https://example.com/page", Title: "Same", DateAdded: added},
		{ID: "twin-a", URL: "https://www.example.com/page/", Title: "Same", DateAdded: added},
	})

	now := added.Add(24 * time.Hour)
	for i := 0; i < 200; i++ {
		groups := domain.GroupDuplicates(idx.GetAllRecords(), now)
		if len(groups) != 1 {
			t.Fatalf("GroupDuplicates() returned %d groups, want 1", len(groups))
		}
		if keep := groups[0].Resolution.Keep; keep != "twin-a" {
			t.Fatalf("Resolution.Keep = %s, want twin-a", keep)
		}
	}
}

func TestMemoryIndexFindOrCreateTag(t *testing.T) {
	idx := NewMemoryIndex()

	first := idx.FindOrCreateTag("github.com", domain.TagDomain, "#3B82F6")
	if first.ID == "" {
		t.Fatal("FindOrCreateTag should mint an ID")
	}
	if first.Category != domain.TagDomain {
		t.Errorf("Category = %s, want %s", first.Category, domain.TagDomain)
	}

	// Lookup is case-insensitive on the name, no second tag is minted.
	second := idx.FindOrCreateTag("GitHub.com", domain.TagDomain, "#000000")
	if second.ID != first.ID {
		t.Errorf("expected same tag on repeated lookup, got %s vs %s", second.ID, first.ID)
	}
	if idx.TagCount() != 1 {
		t.Errorf("TagCount() = %d, want 1", idx.TagCount())
	}
}

func TestMemoryIndexTagsByName(t *testing.T) {
	idx := NewMemoryIndex()
	idx.UpdateTags([]*domain.Tag{
		{ID: "t1", Name: "Go", Category: domain.TagKeyword},
	})

	got := idx.FindOrCreateTag("go", domain.TagKeyword, "#9CA3AF")
	if got.ID != "t1" {
		t.Errorf("FindOrCreateTag should resolve existing tag, got %s", got.ID)
	}

	idx.DeleteTag("t1")
	if _, ok := idx.GetTag("t1"); ok {
		t.Error("GetTag(t1) should fail after delete")
	}
	minted := idx.FindOrCreateTag("go", domain.TagKeyword, "#9CA3AF")
	if minted.ID == "t1" {
		t.Error("deleted tag name should not resolve to the old ID")
	}
}

func TestMemoryIndexCategoriesKeepOrder(t *testing.T) {
	idx := NewMemoryIndex()

	idx.UpdateCategories([]*domain.Category{
		{ID: "nav", Name: "Navigation", Order: 0},
		{ID: "dev", Name: "Development", Order: 1},
		{ID: "prod", Name: "Productivity", Order: 2},
	})

	got := idx.GetAllCategories()
	if len(got) != 3 {
		t.Fatalf("GetAllCategories() len = %d, want 3", len(got))
	}
	for i, want := range []string{"nav", "dev", "prod"} {
		if got[i].ID != want {
			t.Errorf("category[%d] = %s, want %s", i, got[i].ID, want)
		}
	}

	if _, ok := idx.GetCategory("dev"); !ok {
		t.Error("GetCategory(dev) should succeed")
	}
	if idx.CategoryCount() != 3 {
		t.Errorf("CategoryCount() = %d, want 3", idx.CategoryCount())
	}
}
