package domain

import (
	"regexp"
	"strings"
)

// keywordRuleCap bounds how many keyword hits a single rule can score.
const keywordRuleCap = 3

// defaultDomainRules is a fixed bonus rule table keyed by category name.
// It gives the seed categories sensible affinity even before any
// user-defined rules exist. These contribute to the same additive score as
// regular rules, they are not a separate gate.
var defaultDomainRules = map[string][]CategoryRule{
	"Navigation": {
		{Kind: RuleDomain, Pattern: `google\.|bing\.com|duckduckgo\.com|maps\.`, Weight: 1, IsActive: true},
	},
	"Development": {
		{Kind: RuleDomain, Pattern: `github\.com|gitlab\.com|stackoverflow\.com|developer\.mozilla\.org|npmjs\.com|pkg\.go\.dev`, Weight: 2, IsActive: true},
	},
	"Productivity": {
		{Kind: RuleDomain, Pattern: `notion\.so|trello\.com|asana\.com|docs\.google\.com|calendar\.google\.com`, Weight: 2, IsActive: true},
	},
	"Language": {
		{Kind: RuleDomain, Pattern: `duolingo\.com|deepl\.com|wordreference\.com|linguee\.`, Weight: 2, IsActive: true},
	},
	"Automation": {
		{Kind: RuleDomain, Pattern: `zapier\.com|ifttt\.com|n8n\.io|make\.com`, Weight: 2, IsActive: true},
	},
}

// ScoreCategory computes the additive affinity of a record for one
// category: every active rule plus the built-in default domain bonus for
// the category name. Total over any input, never negative.
func ScoreCategory(rec *Record, meta Metadata, cat *Category) float64 {
	if rec == nil || cat == nil {
		return 0.0
	}

	var score float64
	for _, rule := range cat.Rules {
		if !rule.IsActive {
			continue
		}
		score += scoreRule(rec, meta, rule)
	}

	for _, rule := range defaultDomainRules[cat.Name] {
		score += scoreRule(rec, meta, rule)
	}

	return score
}

// scoreRule dispatches on the rule kind. Unknown kinds contribute zero so
// scoring stays total over data written by older versions.
func scoreRule(rec *Record, meta Metadata, rule CategoryRule) float64 {
	switch rule.Kind {
	case RuleDomain:
		return scoreDomainRule(meta.Domain, rule)
	case RuleKeyword:
		return scoreKeywordRule(rec, rule)
	case RuleContent:
		return scoreContentRule(rec, rule)
	case RuleLanguage:
		if meta.PageLanguage != "" && strings.EqualFold(meta.PageLanguage, rule.Pattern) {
			return rule.Weight
		}
		return 0.0
	}
	return 0.0
}

// scoreDomainRule tries the pattern as a case-insensitive regex against
// the lowercased domain. A pattern that does not compile falls back to a
// case-insensitive substring check instead of surfacing the error.
func scoreDomainRule(domain string, rule CategoryRule) float64 {
	if domain == "" {
		return 0.0
	}
	domain = strings.ToLower(domain)

	re, err := regexp.Compile("(?i)" + rule.Pattern)
	if err != nil {
		if strings.Contains(domain, strings.ToLower(rule.Pattern)) {
			return rule.Weight
		}
		return 0.0
	}

	if re.MatchString(domain) {
		return rule.Weight
	}
	return 0.0
}

// scoreKeywordRule counts how many of the comma-separated tokens appear in
// the record's title+description, capped, then weighted.
func scoreKeywordRule(rec *Record, rule CategoryRule) float64 {
	text := strings.ToLower(rec.Title + " " + rec.Description)

	hits := 0
	for _, token := range strings.Split(rule.Pattern, ",") {
		token = strings.ToLower(strings.TrimSpace(token))
		if token == "" {
			continue
		}
		if strings.Contains(text, token) {
			hits++
		}
	}
	if hits > keywordRuleCap {
		hits = keywordRuleCap
	}
	return float64(hits) * rule.Weight
}

// scoreContentRule matches a regex against title+description, which stands
// in for full page text when none is available.
func scoreContentRule(rec *Record, rule CategoryRule) float64 {
	re, err := regexp.Compile("(?i)" + rule.Pattern)
	if err != nil {
		return 0.0
	}
	if re.MatchString(rec.Title + " " + rec.Description) {
		return rule.Weight
	}
	return 0.0
}

// Categorize scores every category and returns the best positive match.
// Ties keep the first-encountered category, following the caller's
// enumeration order. With no positive match it falls back to a category
// named Navigation, then to the first category, then to nil.
func Categorize(rec *Record, meta Metadata, categories []*Category) *Category {
	var best *Category
	var bestScore float64

	for _, cat := range categories {
		score := ScoreCategory(rec, meta, cat)
		if score > 0 && score > bestScore {
			best = cat
			bestScore = score
		}
	}
	if best != nil {
		return best
	}

	for _, cat := range categories {
		if cat != nil && cat.Name == "Navigation" {
			return cat
		}
	}
	if len(categories) > 0 {
		return categories[0]
	}
	return nil
}
