package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/curator-sh/curator/internal/domain"
	"github.com/redis/go-redis/v9"
)

// SaveCategory stores a category in Redis
func (s *Store) SaveCategory(ctx context.Context, cat *domain.Category) error {
	data, err := json.Marshal(cat)
	if err != nil {
		return fmt.Errorf("failed to marshal category: %w", err)
	}

	key := CategoryKey(cat.ID)

	if err := s.client.Set(ctx, key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save category: %w", err)
	}

	if err := s.client.SAdd(ctx, KeyAllCategories, cat.ID).Err(); err != nil {
		return fmt.Errorf("failed to add category to set: %w", err)
	}

	return nil
}

// GetCategory retrieves a category from Redis by ID
func (s *Store) GetCategory(ctx context.Context, id string) (*domain.Category, error) {
	key := CategoryKey(id)
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("category not found: %s", id)
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	var cat domain.Category
	if err := json.Unmarshal(data, &cat); err != nil {
		return nil, fmt.Errorf("failed to unmarshal category: %w", err)
	}

	return &cat, nil
}

// GetAllCategories retrieves all categories from Redis, sorted by their
// display order so enumeration stays stable across processes.
func (s *Store) GetAllCategories(ctx context.Context) ([]*domain.Category, error) {
	ids, err := s.client.SMembers(ctx, KeyAllCategories).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get category IDs: %w", err)
	}

	if len(ids) == 0 {
		return []*domain.Category{}, nil
	}

	categories := make([]*domain.Category, 0, len(ids))
	for _, id := range ids {
		cat, err := s.GetCategory(ctx, id)
		if err != nil {
			continue
		}
		categories = append(categories, cat)
	}

	// SMembers order is arbitrary; sort by Order then ID for a total order.
	sort.Slice(categories, func(i, j int) bool {
		if categories[i].Order != categories[j].Order {
			return categories[i].Order < categories[j].Order
		}
		return categories[i].ID < categories[j].ID
	})

	return categories, nil
}

// DeleteCategory removes a category from Redis
func (s *Store) DeleteCategory(ctx context.Context, id string) error {
	key := CategoryKey(id)

	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}

	if err := s.client.SRem(ctx, KeyAllCategories, id).Err(); err != nil {
		return fmt.Errorf("failed to remove category from set: %w", err)
	}

	return nil
}

// SaveCategoriesMany stores multiple categories in Redis (bulk operation)
func (s *Store) SaveCategoriesMany(ctx context.Context, categories []*domain.Category) error {
	pipe := s.client.Pipeline()

	for _, cat := range categories {
		data, err := json.Marshal(cat)
		if err != nil {
			return fmt.Errorf("failed to marshal category %s: %w", cat.ID, err)
		}

		key := CategoryKey(cat.ID)
		pipe.Set(ctx, key, data, 0)
		pipe.SAdd(ctx, KeyAllCategories, cat.ID)
	}

	_, err := pipe.Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to save categories: %w", err)
	}

	return nil
}
