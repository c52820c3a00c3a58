package textutil

import (
	"strings"
	"testing"
)

func TestClean_CollapsesWhitespace(t *testing.T) {
	got := Clean("  a\t\tb\n\nc   d ")
	if got != "a b c d" {
		t.Errorf("Clean = %q, want %q", got, "a b c d")
	}
}

func TestClean_RemovesBoilerplate(t *testing.T) {
	got := Clean("skip to content Path parameters identify resources. back to top")
	if got != "Path parameters identify resources." {
		t.Errorf("Clean = %q", got)
	}
}

func TestClean_RemovesBoilerplateSplitAcrossWhitespace(t *testing.T) {
	got := Clean("skip\nto content Path parameters identify resources.")
	if got != "Path parameters identify resources." {
		t.Errorf("Clean = %q", got)
	}
}

func TestClean_NoDoubledSpaceAfterBoilerplate(t *testing.T) {
	got := Clean("before skip to content after")
	if got != "before after" {
		t.Errorf("Clean = %q, want %q", got, "before after")
	}
}

func TestClean_BoilerplateIsCaseSensitive(t *testing.T) {
	got := Clean("Skip To Content is a link label")
	if !strings.Contains(got, "Skip To Content") {
		t.Errorf("uppercase phrase should survive, got %q", got)
	}
}

func TestClean_Truncates(t *testing.T) {
	in := strings.Repeat("x", 5000)
	got := Clean(in)
	if len(got) != MaxCleanLen {
		t.Errorf("len = %d, want %d", len(got), MaxCleanLen)
	}
}

func TestClean_Empty(t *testing.T) {
	if got := Clean(""); got != "" {
		t.Errorf("Clean(\"\") = %q, want empty", got)
	}
	if got := Clean("   \n\t "); got != "" {
		t.Errorf("Clean(whitespace) = %q, want empty", got)
	}
}

func TestClean_Idempotent(t *testing.T) {
	inputs := []string{
		"",
		"plain text",
		"  a\t\tb\n\nc ",
		"skip to content mixed back to top tail",
		"skip\nto content x",
		"a back\t\nto top b",
		strings.Repeat("word ", 400),
		strings.Repeat("a", 999) + "  b",
	}
	for _, in := range inputs {
		once := Clean(in)
		twice := Clean(once)
		if once != twice {
			t.Errorf("Clean not idempotent for %q:\nonce:  %q\ntwice: %q", in, once, twice)
		}
		if len(once) > MaxCleanLen {
			t.Errorf("Clean exceeded max length: %d", len(once))
		}
	}
}
