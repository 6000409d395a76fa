package seed

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoaderLoad(t *testing.T) {
	tmpDir := t.TempDir()
	yamlPath := filepath.Join(tmpDir, "categories.yaml")

	yamlContent := `---
categories:
  - name: Development
    color: "#3B82F6"
    rules:
      - kind: domain
        pattern: github\.com
        weight: 3
      - kind: keyword
        pattern: code, api
        weight: 1.5
        active: false
`

	err := os.WriteFile(yamlPath, []byte(yamlContent), 0o644)
	if err != nil {
		t.Fatalf("Failed to create test YAML file: %v", err)
	}

	loader := NewLoader(yamlPath)
	config, err := loader.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(config.Categories) != 1 {
		t.Fatalf("Load() categories = %d, want 1", len(config.Categories))
	}

	cat := config.Categories[0]
	if cat.Name != "Development" {
		t.Errorf("category name = %q, want %q", cat.Name, "Development")
	}
	if len(cat.Rules) != 2 {
		t.Fatalf("rules = %d, want 2", len(cat.Rules))
	}
	if cat.Rules[0].Weight != 3 {
		t.Errorf("rule weight = %v, want 3", cat.Rules[0].Weight)
	}
	if cat.Rules[1].Active == nil || *cat.Rules[1].Active {
		t.Error("second rule should be explicitly inactive")
	}
}

func TestLoaderLoadFileNotFound(t *testing.T) {
	loader := NewLoader("/nonexistent/path/categories.yaml")
	_, err := loader.Load()
	if err == nil {
		t.Error("Load() with non-existent file should return error")
	}
}

func TestLoaderLoadInvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	yamlPath := filepath.Join(tmpDir, "categories.yaml")

	if err := os.WriteFile(yamlPath, []byte("categories: [unclosed"), 0o644); err != nil {
		t.Fatalf("Failed to create test YAML file: %v", err)
	}

	loader := NewLoader(yamlPath)
	if _, err := loader.Load(); err == nil {
		t.Error("Load() with invalid YAML should return error")
	}
}

func TestDefaultSeed(t *testing.T) {
	config := Default()

	if len(config.Categories) != 5 {
		t.Fatalf("Default() categories = %d, want 5", len(config.Categories))
	}
	if config.Categories[0].Name != "Navigation" {
		t.Errorf("first default category = %q, want Navigation", config.Categories[0].Name)
	}

	for _, cat := range config.Categories {
		if cat.Color == "" {
			t.Errorf("default category %q has no color", cat.Name)
		}
	}
}
