// Package textutil normalizes raw page text before it enters the pipeline.
package textutil

import (
	"regexp"
	"strings"
)

// MaxCleanLen caps cleaned text so a single document cannot dominate the
// synthesis context.
const MaxCleanLen = 1000

// boilerplate phrases stripped from fetched pages. Matched case-sensitively
// against the raw text, so only lowercase occurrences are removed.
var boilerplate = []string{
	"skip to content",
	"back to top",
	"all rights reserved",
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// Clean collapses whitespace runs to single spaces, strips boilerplate
// phrases, trims the ends, and truncates to MaxCleanLen bytes. Pure and total:
// never fails, and Clean(Clean(x)) == Clean(x) for any input.
func Clean(text string) string {
	if text == "" {
		return ""
	}

	// Collapse first so a phrase split across newlines or tabs still matches.
	text = whitespaceRun.ReplaceAllString(text, " ")

	for _, phrase := range boilerplate {
		text = strings.ReplaceAll(text, phrase, "")
	}

	// Phrase removal leaves a doubled space behind.
	text = whitespaceRun.ReplaceAllString(text, " ")
	text = strings.TrimSpace(text)

	if len(text) > MaxCleanLen {
		text = text[:MaxCleanLen]
		// Keep idempotence: a cut mid-run could expose trailing whitespace.
		text = strings.TrimRight(text, " ")
	}
	return text
}
