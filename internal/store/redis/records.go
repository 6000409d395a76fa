package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/curator-sh/curator/internal/domain"
	"github.com/redis/go-redis/v9"
)

// Store handles Redis persistence for records, tags and categories.
// Entries never expire: unlike a cache, losing a record loses user data.
type Store struct {
	client *redis.Client
}

// NewStore creates a new Redis store
func NewStore(client *redis.Client) *Store {
	return &Store{
		client: client,
	}
}

// SaveRecord stores a record in Redis
func (s *Store) SaveRecord(ctx context.Context, rec *domain.Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	key := RecordKey(rec.ID)

	if err := s.client.Set(ctx, key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save record: %w", err)
	}

	if err := s.client.SAdd(ctx, KeyAllRecords, rec.ID).Err(); err != nil {
		return fmt.Errorf("failed to add record to set: %w", err)
	}

	return nil
}

// GetRecord retrieves a record from Redis by ID
func (s *Store) GetRecord(ctx context.Context, id string) (*domain.Record, error) {
	key := RecordKey(id)
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("record not found: %s", id)
		}
		return nil, fmt.Errorf("failed to get record: %w", err)
	}

	var rec domain.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal record: %w", err)
	}

	return &rec, nil
}

// GetAllRecords retrieves all records from Redis
func (s *Store) GetAllRecords(ctx context.Context) ([]*domain.Record, error) {
	ids, err := s.client.SMembers(ctx, KeyAllRecords).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get record IDs: %w", err)
	}

	if len(ids) == 0 {
		return []*domain.Record{}, nil
	}

	records := make([]*domain.Record, 0, len(ids))
	for _, id := range ids {
		rec, err := s.GetRecord(ctx, id)
		if err != nil {
			// Skip records that couldn't be retrieved
			continue
		}
		records = append(records, rec)
	}

	return records, nil
}

// DeleteRecord removes a record from Redis
func (s *Store) DeleteRecord(ctx context.Context, id string) error {
	key := RecordKey(id)

	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete record: %w", err)
	}

	if err := s.client.SRem(ctx, KeyAllRecords, id).Err(); err != nil {
		return fmt.Errorf("failed to remove record from set: %w", err)
	}

	return nil
}

// SaveRecordsMany stores multiple records in Redis (bulk operation)
func (s *Store) SaveRecordsMany(ctx context.Context, records []*domain.Record) error {
	pipe := s.client.Pipeline()

	for _, rec := range records {
		data, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("failed to marshal record %s: %w", rec.ID, err)
		}

		key := RecordKey(rec.ID)
		pipe.Set(ctx, key, data, 0)
		pipe.SAdd(ctx, KeyAllRecords, rec.ID)
	}

	_, err := pipe.Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to save records: %w", err)
	}

	return nil
}
