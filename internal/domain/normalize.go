package domain

import (
	"net/url"
	"sort"
	"strings"
)

// trackingParams are query parameters dropped before comparison.
var trackingParams = map[string]struct{}{
	"utm_source":   {},
	"utm_medium":   {},
	"utm_campaign": {},
	"utm_term":     {},
	"utm_content":  {},
	"fbclid":       {},
	"gclid":        {},
}

// NormalizeURL canonicalizes a URL string for equality comparison.
// The result is only a grouping key; the raw URL stays canonical on the
// record. Never fails: unparseable input degrades to a best-effort
// lowercased form with scheme/www/trailing-slash stripped.
func NormalizeURL(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Hostname() == "" {
		return normalizeFallback(raw)
	}

	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")

	// A trailing slash never distinguishes content; a bare "/" must also
	// go so that re-normalizing the output is a no-op.
	path := u.EscapedPath()
	if strings.HasSuffix(path, "/") {
		path = path[:len(path)-1]
	}

	normalized := host + strings.ToLower(path)

	// Fragments distinguish content (ex: #section anchors).
	if u.Fragment != "" {
		normalized += "#" + strings.ToLower(u.Fragment)
	}

	if query := normalizeQuery(u.Query()); query != "" {
		normalized += "?" + query
	}

	return normalized
}

// normalizeQuery drops tracking parameters and re-serializes the rest as
// lexicographically sorted key=value pairs. Pairs are lowercased: the
// result is only a grouping key, and re-normalizing it takes the fallback
// path, which lowercases everything. Keeping case here would break the
// fixpoint.
func normalizeQuery(values url.Values) string {
	pairs := make([]string, 0, len(values))
	for key, vals := range values {
		if _, tracked := trackingParams[strings.ToLower(key)]; tracked {
			continue
		}
		for _, val := range vals {
			pairs = append(pairs, strings.ToLower(key+"="+val))
		}
	}
	if len(pairs) == 0 {
		return ""
	}
	sort.Strings(pairs)
	return strings.Join(pairs, "&")
}

// normalizeFallback is the degraded path for strings net/url cannot parse
// as absolute URLs. It is a fixpoint of itself, which keeps NormalizeURL
// idempotent.
func normalizeFallback(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.TrimPrefix(s, "https://")
	s = strings.TrimPrefix(s, "http://")
	s = strings.TrimPrefix(s, "www.")
	s = strings.TrimSuffix(s, "/")
	return s
}
