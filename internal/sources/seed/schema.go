package seed

// Config is the root structure of categories.yaml
type Config struct {
	Categories []CategoryEntry `yaml:"categories"`
}

// CategoryEntry is one seed category with its scoring rules
type CategoryEntry struct {
	Name  string      `yaml:"name"`
	Color string      `yaml:"color,omitempty"`
	Rules []RuleEntry `yaml:"rules,omitempty"`
}

// RuleEntry is a weighted pattern rule inside a category entry.
// Active defaults to true when omitted.
type RuleEntry struct {
	Kind    string  `yaml:"kind"`
	Pattern string  `yaml:"pattern"`
	Weight  float64 `yaml:"weight"`
	Active  *bool   `yaml:"active,omitempty"`
}
