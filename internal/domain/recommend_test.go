package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecommendEmptyGroup(t *testing.T) {
	_, err := Recommend(nil, time.Now())
	require.ErrorIs(t, err, ErrEmptyGroup)
}

func TestRecommendKeeperSelection(t *testing.T) {
	now := time.Now()
	visited := now.Add(-2 * time.Hour)

	rich := &Record{
		ID:          "rich",
		URL:         "https://a.com/x",
		Title:       "A well described bookmark title",
		Description: "Detailed notes",
		Tags:        []Tag{{ID: "t1", Name: "go"}},
		DateVisited: &visited,
		VisitCount:  10,
	}
	poor := &Record{ID: "poor", URL: "http://a.com/x"}

	res, err := Recommend([]*Record{poor, rich}, now)
	require.NoError(t, err)
	assert.Equal(t, "rich", res.Keep)
}

func TestRecommendDeterministicAcrossOrderings(t *testing.T) {
	now := time.Now()
	visited := now.Add(-24 * time.Hour)

	members := []*Record{
		{ID: "a", URL: "https://a.com/x", Title: "Short"},
		{ID: "b", URL: "https://a.com/x", Title: "A much longer and descriptive title", Description: "d", Tags: []Tag{{ID: "t1"}}, DateVisited: &visited},
		{ID: "c", URL: "http://a.com/x", VisitCount: 2},
	}
	reversed := []*Record{members[2], members[1], members[0]}

	first, err := Recommend(members, now)
	require.NoError(t, err)
	second, err := Recommend(reversed, now)
	require.NoError(t, err)

	assert.Equal(t, first.Keep, second.Keep)
	assert.Equal(t, first.Action, second.Action)
}

func TestRecommendActionPriority(t *testing.T) {
	now := time.Now()
	visited := now.Add(-time.Hour)

	tests := []struct {
		name     string
		members  []*Record
		expected ResolutionAction
	}{
		{
			name: "full member triggers merge_metadata",
			members: []*Record{
				{ID: "a", URL: "u"},
				{ID: "b", URL: "u", Title: "t", Description: "d", Tags: []Tag{{ID: "t1"}}},
			},
			expected: ActionMergeMetadata,
		},
		{
			name: "long title triggers keep_most_descriptive",
			members: []*Record{
				{ID: "a", URL: "u", Title: "A title longer than twenty characters"},
				{ID: "b", URL: "u"},
			},
			expected: ActionKeepMostDescriptive,
		},
		{
			name: "visit triggers keep_most_recent",
			members: []*Record{
				{ID: "a", URL: "u", Title: "short"},
				{ID: "b", URL: "u", DateVisited: &visited},
			},
			expected: ActionKeepMostRecent,
		},
		{
			name: "bare members fall back to keep_first",
			members: []*Record{
				{ID: "a", URL: "u"},
				{ID: "b", URL: "u"},
			},
			expected: ActionKeepFirst,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Recommend(tt.members, now)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, res.Action)
		})
	}
}

func TestRecommendReason(t *testing.T) {
	now := time.Now()
	visited := now.Add(-time.Hour)

	t.Run("lists the keeper's strong points", func(t *testing.T) {
		keeper := &Record{
			ID:          "k",
			URL:         "https://a.com",
			Title:       strings.Repeat("T", 30),
			Description: "d",
			Tags:        []Tag{{ID: "t1"}},
			DateVisited: &visited,
			Category:    &Category{ID: "c1", Name: "Development"},
		}
		res, err := Recommend([]*Record{keeper, {ID: "o", URL: "http://a.com"}}, now)
		require.NoError(t, err)
		assert.Equal(t,
			"Most descriptive title, Has description, Most tagged, Recently visited, Categorized",
			res.Reason)
	})

	t.Run("falls back to a generic reason", func(t *testing.T) {
		res, err := Recommend([]*Record{
			{ID: "a", URL: "https://a.com", VisitCount: 3},
			{ID: "b", URL: "http://a.com"},
		}, now)
		require.NoError(t, err)
		assert.Equal(t, "Highest overall quality", res.Reason)
	})
}

func TestBuildMergePayload(t *testing.T) {
	now := time.Now()
	older := now.Add(-48 * time.Hour)
	newer := now.Add(-1 * time.Hour)

	members := []*Record{
		{
			ID: "a", URL: "u",
			Title:       "Short title",
			Description: "first",
			Tags:        []Tag{{ID: "t1", Name: "go"}, {ID: "t2", Name: "web"}},
			Meta:        map[string]any{"domain": "a.com", "shared": "from-a"},
			VisitCount:  2,
			DateVisited: &older,
		},
		{
			ID: "b", URL: "u",
			Title:       "A considerably longer title",
			Description: "second",
			Tags:        []Tag{{ID: "t2", Name: "web"}, {ID: "t3", Name: "news"}},
			Meta:        map[string]any{"shared": "from-b"},
			VisitCount:  3,
			DateVisited: &newer,
		},
		{
			ID: "c", URL: "u",
			Description: "first", // duplicate description, must not repeat
		},
	}

	res, err := Recommend(members, now)
	require.NoError(t, err)
	merge := res.Merge

	assert.Equal(t, "A considerably longer title", merge.Title)
	assert.Equal(t, "first | second", merge.Description)

	require.Len(t, merge.Tags, 3)
	assert.Equal(t, "t1", merge.Tags[0].ID)
	assert.Equal(t, "t2", merge.Tags[1].ID)
	assert.Equal(t, "t3", merge.Tags[2].ID)

	assert.Equal(t, "a.com", merge.Metadata["domain"])
	assert.Equal(t, "from-b", merge.Metadata["shared"], "later members overwrite earlier keys")
	assert.Equal(t, 5, merge.Metadata["totalVisits"])
	assert.Equal(t, newer, merge.Metadata["lastVisited"])
}

func TestBuildMergePayloadNoVisits(t *testing.T) {
	res, err := Recommend([]*Record{
		{ID: "a", URL: "u"},
		{ID: "b", URL: "u"},
	}, time.Now())
	require.NoError(t, err)

	assert.Equal(t, 0, res.Merge.Metadata["totalVisits"])
	_, present := res.Merge.Metadata["lastVisited"]
	assert.False(t, present, "lastVisited must be omitted when no member was visited")
}
