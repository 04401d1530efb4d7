package util

import "testing"

func TestTruncateForLog(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		input    string
		limit    int
		expected string
	}{
		{name: "shorter than limit", input: "hello", limit: 10, expected: "hello"},
		{name: "exactly at limit", input: "hello", limit: 5, expected: "hello"},
		{name: "truncated", input: "hello world", limit: 5, expected: "hello..."},
		{name: "zero limit", input: "hello", limit: 0, expected: ""},
		{name: "negative limit", input: "hello", limit: -1, expected: ""},
		{name: "trims whitespace", input: "  hello  ", limit: 10, expected: "hello"},
		{name: "multibyte runes", input: "héllo wörld", limit: 6, expected: "héllo ..."},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := TruncateForLog(tt.input, tt.limit); got != tt.expected {
				t.Fatalf("TruncateForLog(%q, %d) = %q, expected %q", tt.input, tt.limit, got, tt.expected)
			}
		})
	}
}
