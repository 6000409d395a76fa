package seed

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Loader handles loading and parsing of the categories.yaml seed file
type Loader struct {
	filePath string
}

// NewLoader creates a new seed loader
func NewLoader(filePath string) *Loader {
	return &Loader{
		filePath: filePath,
	}
}

// Load reads and parses the categories.yaml file
func (l *Loader) Load() (Config, error) {
	data, err := os.ReadFile(l.filePath)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read seed file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return Config{}, fmt.Errorf("failed to parse seed yaml: %w", err)
	}

	return config, nil
}

// Default returns the built-in seed used when no seed file is configured.
// Domain affinity for these names already ships in the scorer; the entries
// here only need the keyword layer.
func Default() Config {
	return Config{
		Categories: []CategoryEntry{
			{
				Name:  "Navigation",
				Color: "#6B7280",
				Rules: []RuleEntry{
					{Kind: "keyword", Pattern: "search, portal, home", Weight: 1},
				},
			},
			{
				Name:  "Development",
				Color: "#3B82F6",
				Rules: []RuleEntry{
					{Kind: "keyword", Pattern: "code, programming, api, library, framework", Weight: 1.5},
				},
			},
			{
				Name:  "Productivity",
				Color: "#10B981",
				Rules: []RuleEntry{
					{Kind: "keyword", Pattern: "todo, notes, calendar, tasks", Weight: 1.5},
				},
			},
			{
				Name:  "Language",
				Color: "#F59E0B",
				Rules: []RuleEntry{
					{Kind: "keyword", Pattern: "dictionary, translate, grammar, vocabulary", Weight: 1.5},
				},
			},
			{
				Name:  "Automation",
				Color: "#8B5CF6",
				Rules: []RuleEntry{
					{Kind: "keyword", Pattern: "workflow, automation, webhook, pipeline", Weight: 1.5},
				},
			},
		},
	}
}
