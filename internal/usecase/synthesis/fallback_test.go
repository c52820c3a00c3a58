package synthesis

import (
	"strings"
	"testing"
)

func TestFallbackAnswer_ThreeNumberedLines(t *testing.T) {
	got := FallbackAnswer("how does it work", "alpha beta gamma delta")

	if !strings.HasPrefix(got, fallbackHeader) {
		t.Fatalf("missing header: %q", got)
	}
	body := strings.TrimPrefix(got, fallbackHeader)
	lines := strings.Split(body, "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3: %q", len(lines), body)
	}

	want := []string{"1. alpha...", "2. beta...", "3. gamma..."}
	for i, w := range want {
		if lines[i] != w {
			t.Errorf("line %d = %q, want %q", i, lines[i], w)
		}
	}
	if strings.Contains(got, "delta") {
		t.Errorf("fourth token leaked into fallback: %q", got)
	}
}

func TestFallbackAnswer_CapsLongTokens(t *testing.T) {
	long := strings.Repeat("a", 80)
	got := FallbackAnswer("q", long)

	want := "1. " + strings.Repeat("a", 50) + "..."
	if !strings.Contains(got, want) {
		t.Errorf("token not capped at 50 chars: %q", got)
	}
}

func TestFallbackAnswer_SkipsExtraWhitespace(t *testing.T) {
	got := FallbackAnswer("q", "  one \t two \n three ")
	for _, w := range []string{"1. one...", "2. two...", "3. three..."} {
		if !strings.Contains(got, w) {
			t.Errorf("missing %q in %q", w, got)
		}
	}
}

func TestFallbackAnswer_PathParameterNote(t *testing.T) {
	got := FallbackAnswer("What is a path parameter?", "the parameter docs text")
	if !strings.Contains(got, "path parameters are variables in the URL path") {
		t.Errorf("missing path parameter note: %q", got)
	}
	if !strings.Contains(got, fallbackHeader) {
		t.Errorf("note should be appended to the token summary: %q", got)
	}
}

func TestFallbackAnswer_RequestPathTriggersNote(t *testing.T) {
	got := FallbackAnswer("explain the request path", "")
	if !strings.Contains(got, "path parameters are variables") {
		t.Errorf("missing note for request path query: %q", got)
	}
}

func TestFallbackAnswer_AuthenticationNote(t *testing.T) {
	got := FallbackAnswer("How does authentication work?", "")
	if !strings.Contains(got, "API keys or OAuth tokens") {
		t.Errorf("missing authentication note: %q", got)
	}
}

func TestFallbackAnswer_NoTokensNoTopic(t *testing.T) {
	got := FallbackAnswer("anything else", "")
	if got != AnswerNoDetails {
		t.Errorf("got %q, want %q", got, AnswerNoDetails)
	}
}

func TestFallbackAnswer_NeverEmpty(t *testing.T) {
	queries := []string{"", "path parameter", "authentication", "other"}
	contexts := []string{"", " ", "alpha", "alpha beta gamma delta"}
	for _, q := range queries {
		for _, c := range contexts {
			if got := FallbackAnswer(q, c); got == "" {
				t.Errorf("empty fallback for query=%q context=%q", q, c)
			}
		}
	}
}
