package domain

import (
	"regexp"
	"time"
)

// Severity grades a duplicate group by member count.
type Severity string

const (
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// DuplicateGroup is a set of two or more records sharing a normalized URL.
type DuplicateGroup struct {
	// ID is synthesized from the normalized URL with non-alphanumeric
	// characters replaced, so it is stable across scans.
	ID            string      `json:"id"`
	NormalizedURL string      `json:"normalizedUrl"`
	Members       []*Record   `json:"members"`
	Count         int         `json:"count"`
	Severity      Severity    `json:"severity"`
	Resolution    *Resolution `json:"resolution"`
}

var groupIDSanitizer = regexp.MustCompile(`[^a-zA-Z0-9]`)

// GroupDuplicates partitions records by normalized URL and returns the
// groups with at least two members, each carrying a resolution
// recommendation. Records without a URL are skipped entirely. Member order
// inside a group follows encounter order in the input.
func GroupDuplicates(records []*Record, now time.Time) []*DuplicateGroup {
	byURL := make(map[string][]*Record)
	keys := make([]string, 0)

	for _, rec := range records {
		if rec == nil || rec.URL == "" {
			continue
		}
		key := NormalizeURL(rec.URL)
		if _, seen := byURL[key]; !seen {
			keys = append(keys, key)
		}
		byURL[key] = append(byURL[key], rec)
	}

	groups := make([]*DuplicateGroup, 0)
	for _, key := range keys {
		members := byURL[key]
		if len(members) < 2 {
			continue
		}

		// Members is never empty here, so Recommend cannot fail.
		resolution, _ := Recommend(members, now)

		groups = append(groups, &DuplicateGroup{
			ID:            groupIDSanitizer.ReplaceAllString(key, "_"),
			NormalizedURL: key,
			Members:       members,
			Count:         len(members),
			Severity:      severityForCount(len(members)),
			Resolution:    resolution,
		})
	}

	return groups
}

func severityForCount(count int) Severity {
	switch {
	case count >= 5:
		return SeverityCritical
	case count >= 3:
		return SeverityHigh
	default:
		return SeverityMedium
	}
}
