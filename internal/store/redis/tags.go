package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/curator-sh/curator/internal/domain"
	"github.com/redis/go-redis/v9"
)

// SaveTag stores a tag definition in Redis
func (s *Store) SaveTag(ctx context.Context, tag *domain.Tag) error {
	data, err := json.Marshal(tag)
	if err != nil {
		return fmt.Errorf("failed to marshal tag: %w", err)
	}

	key := TagKey(tag.ID)

	if err := s.client.Set(ctx, key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save tag: %w", err)
	}

	if err := s.client.SAdd(ctx, KeyAllTags, tag.ID).Err(); err != nil {
		return fmt.Errorf("failed to add tag to set: %w", err)
	}

	return nil
}

// GetTag retrieves a tag definition from Redis by ID
func (s *Store) GetTag(ctx context.Context, id string) (*domain.Tag, error) {
	key := TagKey(id)
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("tag not found: %s", id)
		}
		return nil, fmt.Errorf("failed to get tag: %w", err)
	}

	var tag domain.Tag
	if err := json.Unmarshal(data, &tag); err != nil {
		return nil, fmt.Errorf("failed to unmarshal tag: %w", err)
	}

	return &tag, nil
}

// GetAllTags retrieves all tag definitions from Redis
func (s *Store) GetAllTags(ctx context.Context) ([]*domain.Tag, error) {
	ids, err := s.client.SMembers(ctx, KeyAllTags).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get tag IDs: %w", err)
	}

	if len(ids) == 0 {
		return []*domain.Tag{}, nil
	}

	tags := make([]*domain.Tag, 0, len(ids))
	for _, id := range ids {
		tag, err := s.GetTag(ctx, id)
		if err != nil {
			continue
		}
		tags = append(tags, tag)
	}

	return tags, nil
}

// DeleteTag removes a tag definition from Redis
func (s *Store) DeleteTag(ctx context.Context, id string) error {
	key := TagKey(id)

	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete tag: %w", err)
	}

	if err := s.client.SRem(ctx, KeyAllTags, id).Err(); err != nil {
		return fmt.Errorf("failed to remove tag from set: %w", err)
	}

	return nil
}

// SaveTagsMany stores multiple tag definitions in Redis (bulk operation)
func (s *Store) SaveTagsMany(ctx context.Context, tags []*domain.Tag) error {
	pipe := s.client.Pipeline()

	for _, tag := range tags {
		data, err := json.Marshal(tag)
		if err != nil {
			return fmt.Errorf("failed to marshal tag %s: %w", tag.ID, err)
		}

		key := TagKey(tag.ID)
		pipe.Set(ctx, key, data, 0)
		pipe.SAdd(ctx, KeyAllTags, tag.ID)
	}

	_, err := pipe.Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to save tags: %w", err)
	}

	return nil
}
