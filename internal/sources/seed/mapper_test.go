package seed

import (
	"testing"

	"github.com/curator-sh/curator/internal/domain"
)

func boolPtr(b bool) *bool { return &b }

func TestMapCategories(t *testing.T) {
	config := Config{
		Categories: []CategoryEntry{
			{
				Name:  "Development",
				Color: "#3B82F6",
				Rules: []RuleEntry{
					{Kind: "domain", Pattern: `github\.com`, Weight: 3},
					{Kind: "keyword", Pattern: "code, api", Weight: 1.5, Active: boolPtr(false)},
				},
			},
			{
				Name: "Navigation",
			},
		},
	}

	mapper := NewMapper()
	categories, err := mapper.MapCategories(config)
	if err != nil {
		t.Fatalf("MapCategories() error = %v", err)
	}

	if len(categories) != 2 {
		t.Fatalf("MapCategories() = %d categories, want 2", len(categories))
	}

	dev := categories[0]
	if dev.Name != "Development" {
		t.Errorf("name = %q, want Development", dev.Name)
	}
	if dev.Order != 0 {
		t.Errorf("order = %d, want 0", dev.Order)
	}
	if !dev.IsSystem {
		t.Error("seed categories should be marked as system")
	}
	if len(dev.Rules) != 2 {
		t.Fatalf("rules = %d, want 2", len(dev.Rules))
	}
	if dev.Rules[0].Kind != domain.RuleDomain {
		t.Errorf("rule kind = %q, want domain", dev.Rules[0].Kind)
	}
	if !dev.Rules[0].IsActive {
		t.Error("rule without explicit active flag should default to active")
	}
	if dev.Rules[1].IsActive {
		t.Error("explicitly inactive rule should stay inactive")
	}

	nav := categories[1]
	if nav.Order != 1 {
		t.Errorf("order = %d, want 1", nav.Order)
	}
	if nav.Color == "" {
		t.Error("category without color should get a default")
	}
}

func TestMapCategoriesStableIDs(t *testing.T) {
	mapper := NewMapper()

	config := Config{Categories: []CategoryEntry{{Name: "Development"}}}
	first, err := mapper.MapCategories(config)
	if err != nil {
		t.Fatalf("MapCategories() error = %v", err)
	}
	second, err := mapper.MapCategories(config)
	if err != nil {
		t.Fatalf("MapCategories() error = %v", err)
	}

	if first[0].ID != second[0].ID {
		t.Errorf("IDs differ across runs: %q vs %q", first[0].ID, second[0].ID)
	}
	if len(first[0].ID) != 16 {
		t.Errorf("ID length = %d, want 16", len(first[0].ID))
	}
}

func TestMapCategoriesDropsInvalid(t *testing.T) {
	config := Config{
		Categories: []CategoryEntry{
			{Name: ""},
			{
				Name: "Development",
				Rules: []RuleEntry{
					{Kind: "telepathy", Pattern: "x", Weight: 5},
					{Kind: "keyword", Pattern: "code", Weight: 1},
				},
			},
		},
	}

	mapper := NewMapper()
	categories, err := mapper.MapCategories(config)
	if err != nil {
		t.Fatalf("MapCategories() error = %v", err)
	}

	if len(categories) != 1 {
		t.Fatalf("MapCategories() = %d categories, want 1", len(categories))
	}
	if len(categories[0].Rules) != 1 {
		t.Errorf("rules = %d, want 1 (unknown kind dropped)", len(categories[0].Rules))
	}
}

func TestMapCategoriesEmpty(t *testing.T) {
	mapper := NewMapper()
	if _, err := mapper.MapCategories(Config{}); err == nil {
		t.Error("MapCategories() with no categories should return error")
	}
}

func TestMapDefaultSeed(t *testing.T) {
	mapper := NewMapper()
	categories, err := mapper.MapCategories(Default())
	if err != nil {
		t.Fatalf("MapCategories(Default()) error = %v", err)
	}
	if len(categories) != 5 {
		t.Fatalf("default seed = %d categories, want 5", len(categories))
	}
	for i, cat := range categories {
		if cat.Order != i {
			t.Errorf("category %q order = %d, want %d", cat.Name, cat.Order, i)
		}
	}
}
