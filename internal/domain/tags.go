package domain

import (
	"regexp"
	"sort"
	"strings"
)

// MaxSuggestedTags caps the suggestion output length.
const MaxSuggestedTags = 5

// maxKeywordTags caps how many keyword-derived tags enter the candidates.
const maxKeywordTags = 3

// TagSource resolves a tag name to an existing tag definition or mints a
// new one. Lookup-or-create semantics belong to tag storage; the
// suggestion engine stays pure.
type TagSource interface {
	FindOrCreateTag(name string, category TagCategory, color string) Tag
}

// Neutral palette shared by generated tags.
const (
	colorDomainTag  = "#3B82F6"
	colorKeywordTag = "#9CA3AF"
	colorTypeTag    = "#F59E0B"
	colorNeutralTag = "#6B7280"
)

type languageTag struct {
	name  string
	color string
}

// languageTags maps ISO-639-1 codes to display tags. Unknown codes fall
// back to the raw code with a neutral color.
var languageTags = map[string]languageTag{
	"en": {"English", "#1D4ED8"},
	"es": {"Spanish", "#D97706"},
	"fr": {"French", "#2563EB"},
	"de": {"German", "#374151"},
	"zh": {"Chinese", "#DC2626"},
	"ja": {"Japanese", "#DB2777"},
	"ko": {"Korean", "#7C3AED"},
	"ru": {"Russian", "#B91C1C"},
}

type contentTypeTag struct {
	prefix string
	name   string
}

// contentTypeTags is checked in order; the first matching prefix wins.
var contentTypeTags = []contentTypeTag{
	{"text/html", "Web Page"},
	{"application/pdf", "PDF"},
	{"image/", "Image"},
	{"video/", "Video"},
	{"audio/", "Audio"},
}

type platformPattern struct {
	re   *regexp.Regexp
	name string
}

// platformPatterns is checked in order against the raw URL; the first
// match wins and later patterns are not tried.
var platformPatterns = []platformPattern{
	{regexp.MustCompile(`github\.com`), "GitHub"},
	{regexp.MustCompile(`stackoverflow\.com`), "Stack Overflow"},
	{regexp.MustCompile(`medium\.com`), "Medium"},
	{regexp.MustCompile(`youtube\.com|youtu\.be`), "YouTube"},
	{regexp.MustCompile(`twitter\.com|x\.com`), "Twitter"},
	{regexp.MustCompile(`reddit\.com`), "Reddit"},
	{regexp.MustCompile(`news\.ycombinator\.com`), "Hacker News"},
}

// SuggestTags derives candidate tags for a record in a fixed priority
// order: domain, language, content type, up to three keywords, then one
// platform tag. The result is deduplicated by tag ID (first occurrence
// wins) and capped at MaxSuggestedTags.
func SuggestTags(rec *Record, meta Metadata, tags TagSource) []Tag {
	if rec == nil || tags == nil {
		return nil
	}

	candidates := make([]Tag, 0, MaxSuggestedTags+3)

	if meta.Domain != "" {
		candidates = append(candidates, tags.FindOrCreateTag(meta.Domain, TagDomain, colorDomainTag))
	}

	if meta.PageLanguage != "" {
		code := strings.ToLower(meta.PageLanguage)
		lang, known := languageTags[code]
		if !known {
			lang = languageTag{name: code, color: colorNeutralTag}
		}
		candidates = append(candidates, tags.FindOrCreateTag(lang.name, TagLanguage, lang.color))
	}

	if meta.ContentType != "" {
		for _, ct := range contentTypeTags {
			if strings.HasPrefix(meta.ContentType, ct.prefix) {
				candidates = append(candidates, tags.FindOrCreateTag(ct.name, TagType, colorTypeTag))
				break
			}
		}
	}

	keywords := ExtractKeywords(rec.Title + " " + rec.Description)
	if len(keywords) > maxKeywordTags {
		keywords = keywords[:maxKeywordTags]
	}
	for _, keyword := range keywords {
		candidates = append(candidates, tags.FindOrCreateTag(keyword, TagKeyword, colorKeywordTag))
	}

	for _, platform := range platformPatterns {
		if platform.re.MatchString(rec.URL) {
			candidates = append(candidates, tags.FindOrCreateTag(platform.name, TagPlatform, colorNeutralTag))
			break
		}
	}

	suggestions := make([]Tag, 0, MaxSuggestedTags)
	seen := make(map[string]struct{}, len(candidates))
	for _, tag := range candidates {
		if _, dup := seen[tag.ID]; dup {
			continue
		}
		seen[tag.ID] = struct{}{}
		suggestions = append(suggestions, tag)
		if len(suggestions) == MaxSuggestedTags {
			break
		}
	}

	return suggestions
}

var nonWordChars = regexp.MustCompile(`\W+`)

// stopWords is a fixed set of common English function words ignored by
// keyword extraction.
var stopWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "but": {},
	"in": {}, "on": {}, "at": {}, "to": {}, "for": {}, "of": {},
	"with": {}, "by": {}, "from": {}, "as": {}, "is": {}, "are": {},
	"was": {}, "were": {}, "be": {}, "been": {}, "this": {}, "that": {},
	"these": {}, "those": {}, "it": {}, "its": {}, "not": {}, "you": {},
	"your": {}, "how": {},
}

// ExtractKeywords tokenizes text and returns candidate keywords ranked by
// descending frequency, ties keeping first-seen order. Tokens of length
// two or less, pure digits and stop words are discarded.
func ExtractKeywords(text string) []string {
	text = nonWordChars.ReplaceAllString(strings.ToLower(text), " ")

	freq := make(map[string]int)
	order := make([]string, 0)

	for _, token := range strings.Fields(text) {
		if len(token) <= 2 {
			continue
		}
		if isAllDigits(token) {
			continue
		}
		if _, stop := stopWords[token]; stop {
			continue
		}
		if freq[token] == 0 {
			order = append(order, token)
		}
		freq[token]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return freq[order[i]] > freq[order[j]]
	})

	return order
}

func isAllDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
