package redis

import "fmt"

const (
	// KeyPrefixRecord is the prefix for record keys
	KeyPrefixRecord = "curator:record:"
	// KeyPrefixTag is the prefix for tag definition keys
	KeyPrefixTag = "curator:tag:"
	// KeyPrefixCategory is the prefix for category keys
	KeyPrefixCategory = "curator:category:"
	// KeyAllRecords is the key for the set of all record IDs
	KeyAllRecords = "curator:records:all"
	// KeyAllTags is the key for the set of all tag IDs
	KeyAllTags = "curator:tags:all"
	// KeyAllCategories is the key for the set of all category IDs
	KeyAllCategories = "curator:categories:all"
)

// RecordKey returns the Redis key for a record by ID
func RecordKey(id string) string {
	return KeyPrefixRecord + id
}

// TagKey returns the Redis key for a tag definition by ID
func TagKey(id string) string {
	return KeyPrefixTag + id
}

// CategoryKey returns the Redis key for a category by ID
func CategoryKey(id string) string {
	return KeyPrefixCategory + id
}

// ExtractRecordID extracts the record ID from a Redis key
func ExtractRecordID(key string) (string, error) {
	if len(key) <= len(KeyPrefixRecord) {
		return "", fmt.Errorf("invalid record key: %s", key)
	}
	return key[len(KeyPrefixRecord):], nil
}
