package domain

import "time"

// TagCategory classifies where a tag came from.
type TagCategory string

const (
	TagCustom   TagCategory = "custom"
	TagDomain   TagCategory = "domain"
	TagLanguage TagCategory = "language"
	TagType     TagCategory = "type"
	TagKeyword  TagCategory = "keyword"
	TagPlatform TagCategory = "platform"
	TagSystem   TagCategory = "system"
)

// Tag is a label attached to records. Records hold value copies of tags,
// not references: editing a tag definition does not rewrite stored records
// until a bulk merge/re-save pass runs.
type Tag struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	Color      string      `json:"color"` // hex RGB, ex: #3B82F6
	Category   TagCategory `json:"category"`
	UsageCount int         `json:"usageCount"`
	IsSystem   bool        `json:"isSystem"`
}

// RuleKind is the closed set of category rule types.
type RuleKind string

const (
	RuleDomain   RuleKind = "domain"   // pattern is a regex (fallback: substring) against the page domain
	RuleKeyword  RuleKind = "keyword"  // pattern is a comma-separated token list
	RuleContent  RuleKind = "content"  // pattern is a regex against title+description
	RuleLanguage RuleKind = "language" // pattern is an exact language code
)

// ValidRuleKind reports whether k is one of the known rule kinds.
// Unknown kinds are rejected at the seed/API boundary; the scorer itself
// still treats them as scoring zero so scoring stays total over stored data.
func ValidRuleKind(k RuleKind) bool {
	switch k {
	case RuleDomain, RuleKeyword, RuleContent, RuleLanguage:
		return true
	}
	return false
}

// CategoryRule is a weighted pattern predicate contributing to a category's
// affinity score for a record.
type CategoryRule struct {
	Kind     RuleKind `json:"kind"`
	Pattern  string   `json:"pattern"`
	Weight   float64  `json:"weight"` // 0-10
	IsActive bool     `json:"isActive"`
}

// Category groups records. Like tags, records hold a value snapshot.
type Category struct {
	ID       string         `json:"id"`
	Name     string         `json:"name"`
	Color    string         `json:"color"`
	Rules    []CategoryRule `json:"rules"`
	Order    int            `json:"order"` // stable display / tie-break order
	IsSystem bool           `json:"isSystem"`
}

// Record is a stored bookmark entry.
type Record struct {
	// ─────────────────────────────
	// Identity (immutable)
	// ─────────────────────────────

	// ID is an opaque stable identifier.
	ID string `json:"id"`

	// URL is the raw bookmarked URL. Required, never empty.
	// Grouping uses NormalizeURL(URL); the raw form stays canonical.
	URL string `json:"url"`

	// ─────────────────────────────
	// Content
	// ─────────────────────────────

	Title       string `json:"title"`
	Description string `json:"description,omitempty"`

	// ─────────────────────────────
	// Observation
	// ─────────────────────────────

	DateAdded    time.Time  `json:"dateAdded"`
	DateModified time.Time  `json:"dateModified"`
	DateVisited  *time.Time `json:"dateVisited,omitempty"`
	VisitCount   int        `json:"visitCount"`

	// ─────────────────────────────
	// Classification (value snapshots, see Tag/Category docs)
	// ─────────────────────────────

	Tags     []Tag     `json:"tags,omitempty"`
	Category *Category `json:"category,omitempty"`

	// ─────────────────────────────
	// Duplicate bookkeeping
	// ─────────────────────────────

	// IsDuplicate marks a record superseded by another one.
	IsDuplicate bool `json:"isDuplicate"`

	// DuplicateOf is the keeper's record ID. Meaningful only when
	// IsDuplicate is true. Must never reference the record itself;
	// chains are cleaned up best-effort by the scan, not enforced.
	DuplicateOf string `json:"duplicateOf,omitempty"`

	// IsBroken is set by an external reachability checker.
	IsBroken bool `json:"isBroken"`

	// Meta is an open bag of extracted metadata (domain, language, ...).
	Meta map[string]any `json:"meta,omitempty"`
}

// HasTag reports whether the record carries a tag with the given ID.
func (r *Record) HasTag(id string) bool {
	for _, t := range r.Tags {
		if t.ID == id {
			return true
		}
	}
	return false
}

// Metadata is the per-record extraction bag supplied by the caller
// (or recovered from Record.Meta) for categorization and tag suggestion.
type Metadata struct {
	Domain       string `json:"domain,omitempty"`
	PageLanguage string `json:"pageLanguage,omitempty"`
	ContentType  string `json:"contentType,omitempty"`
}

// MetadataFromMeta recovers a Metadata bag from a record's open meta map.
// Used when the caller does not supply fresh extraction results.
func MetadataFromMeta(meta map[string]any) Metadata {
	var m Metadata
	if v, ok := meta["domain"].(string); ok {
		m.Domain = v
	}
	if v, ok := meta["pageLanguage"].(string); ok {
		m.PageLanguage = v
	}
	if v, ok := meta["contentType"].(string); ok {
		m.ContentType = v
	}
	return m
}
