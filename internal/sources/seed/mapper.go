package seed

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/curator-sh/curator/internal/domain"
)

// Mapper converts seed config entries to domain.Category entities
type Mapper struct{}

// NewMapper creates a new mapper instance
func NewMapper() *Mapper {
	return &Mapper{}
}

// MapCategories converts a seed Config to []*domain.Category, preserving
// file order (Order is the entry index, which the selector uses to break
// score ties). Entries without a name and rules with an unknown kind are
// dropped rather than failing the whole reload.
func (m *Mapper) MapCategories(config Config) ([]*domain.Category, error) {
	categories := make([]*domain.Category, 0, len(config.Categories))

	for _, entry := range config.Categories {
		if entry.Name == "" {
			continue
		}

		color := entry.Color
		if color == "" {
			color = "#6B7280"
		}

		rules := make([]domain.CategoryRule, 0, len(entry.Rules))
		for _, r := range entry.Rules {
			kind := domain.RuleKind(r.Kind)
			if !domain.ValidRuleKind(kind) {
				continue
			}
			active := true
			if r.Active != nil {
				active = *r.Active
			}
			rules = append(rules, domain.CategoryRule{
				Kind:     kind,
				Pattern:  r.Pattern,
				Weight:   r.Weight,
				IsActive: active,
			})
		}

		categories = append(categories, &domain.Category{
			ID:       generateCategoryID(entry.Name),
			Name:     entry.Name,
			Color:    color,
			Rules:    rules,
			Order:    len(categories),
			IsSystem: true,
		})
	}

	if len(categories) == 0 {
		return nil, fmt.Errorf("no valid categories found in seed config")
	}

	return categories, nil
}

// generateCategoryID creates a stable ID from the category name using a
// SHA-256 hash, so reloading the seed file never reshuffles identities.
func generateCategoryID(name string) string {
	hash := sha256.Sum256([]byte(name))
	return hex.EncodeToString(hash[:])[:16]
}
