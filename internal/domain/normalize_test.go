package domain

import "testing"

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "strips scheme and www",
			input:    "https://www.EXAMPLE.com/a/",
			expected: "example.com/a",
		},
		{
			name:     "http and https collapse",
			input:    "http://example.com/a",
			expected: "example.com/a",
		},
		{
			name:     "keeps fragment",
			input:    "https://example.com/docs#Section",
			expected: "example.com/docs#section",
		},
		{
			name:     "root slash is kept as empty path",
			input:    "https://example.com/",
			expected: "example.com",
		},
		{
			name:     "sorts query parameters",
			input:    "https://x.com/a?z=1&b=2",
			expected: "x.com/a?b=2&z=1",
		},
		{
			name:     "lowercases query keys and values",
			input:    "https://x.com/a?Key=2&b=Value",
			expected: "x.com/a?b=value&key=2",
		},
		{
			name:     "drops tracking parameters",
			input:    "https://x.com/a?utm_source=x&b=2",
			expected: "x.com/a?b=2",
		},
		{
			name:     "drops query entirely when only tracking params remain",
			input:    "https://x.com/a?utm_source=x&fbclid=abc",
			expected: "x.com/a",
		},
		{
			name:     "unparseable input degrades",
			input:    "HTTP://WWW.Weird host/",
			expected: "weird host",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeURL(tt.input)
			if got != tt.expected {
				t.Errorf("NormalizeURL(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNormalizeURLIdempotent(t *testing.T) {
	inputs := []string{
		"https://www.EXAMPLE.com/a/",
		"http://example.com/a?b=2&a=1",
		"https://x.com/a?b=Value",
		"https://x.com/a?Key=2",
		"https://x.com/a?utm_source=x&b=2",
		"https://example.com/docs#Section",
		"not a url at all",
		"",
	}

	for _, input := range inputs {
		once := NormalizeURL(input)
		twice := NormalizeURL(once)
		if once != twice {
			t.Errorf("NormalizeURL not idempotent for %q: first=%q second=%q", input, once, twice)
		}
	}
}

func TestNormalizeURLEquivalence(t *testing.T) {
	pairs := [][2]string{
		{"https://www.EXAMPLE.com/a/", "http://example.com/a"},
		{"https://x.com/a?utm_source=x&b=2", "https://x.com/a?b=2"},
		{"https://x.com/a?b=2&z=1", "https://x.com/a?z=1&b=2"},
	}

	for _, pair := range pairs {
		left := NormalizeURL(pair[0])
		right := NormalizeURL(pair[1])
		if left != right {
			t.Errorf("expected %q and %q to normalize equally, got %q vs %q",
				pair[0], pair[1], left, right)
		}
	}
}
