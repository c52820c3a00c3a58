// Package synthesis turns a query and assembled context into the final
// answer through an ordered chain of strategies: canned policy exits, the
// external provider chain, then a deterministic fallback. The chain never
// returns an empty answer.
package synthesis

import "strings"

// ContextChunkSize bounds how much assembled context reaches a provider.
// Only the first chunk is used; the rest is discarded for brevity.
const ContextChunkSize = 1500

// employmentTerms route hiring and compensation queries away from the
// documentation pipeline entirely.
var employmentTerms = []string{"join", "package", "salary", "hire", "career"}

// relevanceTerms must appear in the context for it to count as
// documentation material.
var relevanceTerms = []string{"api", "request", "parameter", "loyalty", "documentation"}

// IsEmploymentQuery reports whether the query is about employment rather
// than product documentation. Matching is on the lowercase query.
func IsEmploymentQuery(query string) bool {
	q := strings.ToLower(query)
	for _, term := range employmentTerms {
		if strings.Contains(q, term) {
			return true
		}
	}
	return false
}

// IsRelevantContext reports whether the assembled context looks like
// documentation content. An empty context is never relevant.
func IsRelevantContext(context string) bool {
	if context == "" {
		return false
	}
	c := strings.ToLower(context)
	for _, term := range relevanceTerms {
		if strings.Contains(c, term) {
			return true
		}
	}
	return false
}

// TruncateContext keeps only the first ContextChunkSize characters. The
// upstream system chunked the context and used chunk zero only; that literal
// behavior is preserved.
func TruncateContext(context string) string {
	if len(context) > ContextChunkSize {
		return context[:ContextChunkSize]
	}
	return context
}
