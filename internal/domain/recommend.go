package domain

import (
	"errors"
	"sort"
	"strings"
	"time"
)

// ResolutionAction tells the caller how to resolve a duplicate group.
type ResolutionAction string

const (
	ActionMergeMetadata       ResolutionAction = "merge_metadata"
	ActionKeepMostDescriptive ResolutionAction = "keep_most_descriptive"
	ActionKeepMostRecent      ResolutionAction = "keep_most_recent"
	ActionKeepFirst           ResolutionAction = "keep_first"
)

// descriptiveTitleLength is the title length above which a record counts
// as descriptive for action and reason selection.
const descriptiveTitleLength = 20

// MergePayload carries the combined best metadata of a duplicate group,
// intended to be written onto the keeper.
type MergePayload struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Tags        []Tag          `json:"tags"`
	Metadata    map[string]any `json:"metadata"`
}

// Resolution is the recommender's verdict for one duplicate group.
type Resolution struct {
	Keep   string           `json:"keep"` // record ID of the keeper
	Action ResolutionAction `json:"action"`
	Reason string           `json:"reason"`
	Merge  MergePayload     `json:"merge"`
}

// ErrEmptyGroup is returned when Recommend is invoked on a zero-member
// group. The grouper never produces one; this is a caller contract
// violation, not a recoverable runtime condition.
var ErrEmptyGroup = errors.New("duplicate group has no members")

type rankedMember struct {
	rec   *Record
	score float64
}

// Recommend picks a keeper for a duplicate group, an action for the whole
// group and a merge payload combining the best of every member. Ranking is
// stable: equal scores keep encounter order, so the first-seen member wins.
func Recommend(members []*Record, now time.Time) (*Resolution, error) {
	if len(members) == 0 {
		return nil, ErrEmptyGroup
	}

	ranked := make([]rankedMember, 0, len(members))
	for _, rec := range members {
		ranked = append(ranked, rankedMember{rec: rec, score: QualityScore(rec, now)})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	keeper := ranked[0].rec

	return &Resolution{
		Keep:   keeper.ID,
		Action: recommendAction(members),
		Reason: recommendReason(keeper, now),
		Merge:  buildMergePayload(members),
	}, nil
}

// recommendAction applies a priority policy over the whole group, not just
// the keeper.
func recommendAction(members []*Record) ResolutionAction {
	for _, rec := range members {
		if rec.Title != "" && rec.Description != "" && len(rec.Tags) > 0 {
			return ActionMergeMetadata
		}
	}
	for _, rec := range members {
		if len(rec.Title) > descriptiveTitleLength {
			return ActionKeepMostDescriptive
		}
	}
	for _, rec := range members {
		if rec.DateVisited != nil {
			return ActionKeepMostRecent
		}
	}
	return ActionKeepFirst
}

// recommendReason builds a human-readable explanation from the keeper's
// strong points.
func recommendReason(keeper *Record, now time.Time) string {
	var reasons []string

	if len(keeper.Title) > descriptiveTitleLength {
		reasons = append(reasons, "Most descriptive title")
	}
	if keeper.Description != "" {
		reasons = append(reasons, "Has description")
	}
	if len(keeper.Tags) > 0 {
		reasons = append(reasons, "Most tagged")
	}
	if keeper.DateVisited != nil && daysSince(now, *keeper.DateVisited) <= RecentVisitWindowInDays {
		reasons = append(reasons, "Recently visited")
	}
	if keeper.Category != nil {
		reasons = append(reasons, "Categorized")
	}

	if len(reasons) == 0 {
		return "Highest overall quality"
	}
	return strings.Join(reasons, ", ")
}

// buildMergePayload combines the best metadata of all members:
// longest title, all distinct descriptions, the tag union and a
// left-to-right shallow merge of the meta maps.
func buildMergePayload(members []*Record) MergePayload {
	payload := MergePayload{
		Tags:     make([]Tag, 0),
		Metadata: make(map[string]any),
	}

	seenDescriptions := make(map[string]struct{})
	seenTags := make(map[string]struct{})
	descriptions := make([]string, 0)
	totalVisits := 0
	var lastVisited *time.Time

	for _, rec := range members {
		if len(rec.Title) > len(payload.Title) {
			payload.Title = rec.Title
		}

		if rec.Description != "" {
			if _, dup := seenDescriptions[rec.Description]; !dup {
				seenDescriptions[rec.Description] = struct{}{}
				descriptions = append(descriptions, rec.Description)
			}
		}

		for _, tag := range rec.Tags {
			if _, dup := seenTags[tag.ID]; dup {
				continue
			}
			seenTags[tag.ID] = struct{}{}
			payload.Tags = append(payload.Tags, tag)
		}

		// Later members overwrite earlier keys on conflict.
		for key, val := range rec.Meta {
			payload.Metadata[key] = val
		}

		totalVisits += rec.VisitCount
		if rec.DateVisited != nil {
			if lastVisited == nil || rec.DateVisited.After(*lastVisited) {
				lastVisited = rec.DateVisited
			}
		}
	}

	payload.Description = strings.Join(descriptions, " | ")
	payload.Metadata["totalVisits"] = totalVisits
	if lastVisited != nil {
		payload.Metadata["lastVisited"] = *lastVisited
	}

	return payload
}
