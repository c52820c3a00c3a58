package synthesis

import (
	"strings"
	"testing"
)

func TestIsEmploymentQuery(t *testing.T) {
	tests := []struct {
		query string
		want  bool
	}{
		{"What salary can I expect?", true},
		{"How do I JOIN the company?", true},
		{"Tell me about career growth", true},
		{"What is the loyalty package pricing?", true}, // "package" matches
		{"What is a path parameter?", false},
		{"", false},
	}
	for _, tc := range tests {
		if got := IsEmploymentQuery(tc.query); got != tc.want {
			t.Errorf("IsEmploymentQuery(%q) = %v, want %v", tc.query, got, tc.want)
		}
	}
}

func TestIsRelevantContext(t *testing.T) {
	tests := []struct {
		context string
		want    bool
	}{
		{"", false},
		{"random unrelated text", false},
		{"Customers API: send a request with the id parameter", true},
		{"LOYALTY program overview", true},
		{"See the documentation for details", true},
	}
	for _, tc := range tests {
		if got := IsRelevantContext(tc.context); got != tc.want {
			t.Errorf("IsRelevantContext(%q) = %v, want %v", tc.context, got, tc.want)
		}
	}
}

func TestTruncateContext(t *testing.T) {
	short := "api docs"
	if got := TruncateContext(short); got != short {
		t.Errorf("short context modified: %q", got)
	}

	long := strings.Repeat("x", ContextChunkSize+500)
	got := TruncateContext(long)
	if len(got) != ContextChunkSize {
		t.Errorf("len = %d, want %d", len(got), ContextChunkSize)
	}
}
