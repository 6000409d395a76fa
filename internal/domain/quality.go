package domain

import (
	"math"
	"strings"
	"time"
)

const (
	// Scoring weights
	ScoreTitlePresent       = 10.0
	ScoreTitleLengthCap     = 5.0 // + len(title)/10, capped
	ScoreDescription        = 8.0
	ScoreDescriptionLenCap  = 4.0 // + len(description)/20, capped
	ScorePerMetaKey         = 2.0
	ScorePerTag             = 3.0
	ScoreCategorized        = 5.0
	ScoreHTTPS              = 3.0
	ScoreVisitWeight        = 0.5
	ScoreVisitRecencyMax    = 20.0 // decays by 1 per 30 days since last visit
	ScoreAddedRecencyMax    = 15.0 // decays by 1 per 60 days since added
	PenaltyBroken           = 50.0
	RecentVisitWindowInDays = 30.0
)

// QualityScore rates a single record in isolation. Deterministic for a
// fixed now, additive, clamped at zero. Used to rank duplicate group
// members and reusable for general record ranking.
func QualityScore(rec *Record, now time.Time) float64 {
	if rec == nil {
		return 0.0
	}

	var score float64

	if rec.Title != "" {
		score += ScoreTitlePresent
		score += math.Min(float64(len(rec.Title))/10.0, ScoreTitleLengthCap)
	}

	if rec.Description != "" {
		score += ScoreDescription
		score += math.Min(float64(len(rec.Description))/20.0, ScoreDescriptionLenCap)
	}

	score += float64(len(rec.Meta)) * ScorePerMetaKey

	if rec.DateVisited != nil {
		score += math.Max(0, ScoreVisitRecencyMax-daysSince(now, *rec.DateVisited)/30.0)
	}

	score += float64(rec.VisitCount) * ScoreVisitWeight
	score += float64(len(rec.Tags)) * ScorePerTag

	if rec.Category != nil {
		score += ScoreCategorized
	}

	if !rec.DateAdded.IsZero() {
		score += math.Max(0, ScoreAddedRecencyMax-daysSince(now, rec.DateAdded)/60.0)
	}

	if strings.HasPrefix(rec.URL, "https://") {
		score += ScoreHTTPS
	}

	if rec.IsBroken {
		score -= PenaltyBroken
	}

	return math.Max(0, score)
}

func daysSince(now, t time.Time) float64 {
	return now.Sub(t).Hours() / 24.0
}
