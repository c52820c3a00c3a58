package synthesis

import (
	"fmt"
	"strings"
)

const (
	fallbackTokenCount = 3
	fallbackTokenCap   = 50
)

const fallbackHeader = "Based on CapillaryTech documentation:\n"

// AnswerNoDetails is the terminal fallback when no tokens and no topic match.
const AnswerNoDetails = "No specific details found in the documentation."

const pathParameterNote = "\n\nIn CapillaryTech APIs, path parameters are variables in the URL path " +
	"(e.g., /v2/customers/{userId}) that identify specific resources. " +
	"They are required and must match the expected format (e.g., numeric ID)."

const authenticationNote = "\n\nCapillaryTech APIs typically use API keys or OAuth tokens for authentication. " +
	"Include the key in the Authorization header (e.g., Bearer <token>). " +
	"Check the specific API documentation for setup details."

// FallbackAnswer builds an answer without any external call: the first three
// whitespace tokens of the truncated context as a numbered list, plus a topic
// note when the query mentions a recognized technical subject. Every branch
// produces non-empty text.
func FallbackAnswer(query, context string) string {
	var lines []string
	for _, token := range strings.Fields(context) {
		if len(lines) == fallbackTokenCount {
			break
		}
		if len(token) > fallbackTokenCap {
			token = token[:fallbackTokenCap]
		}
		lines = append(lines, fmt.Sprintf("%d. %s...", len(lines)+1, token))
	}

	var answer string
	if len(lines) > 0 {
		answer = fallbackHeader + strings.Join(lines, "\n")
	}

	q := strings.ToLower(query)
	switch {
	case strings.Contains(q, "path parameter") || strings.Contains(q, "request path"):
		answer += pathParameterNote
	case strings.Contains(q, "authentication"):
		answer += authenticationNote
	}

	if answer == "" {
		return AnswerNoDetails
	}
	return answer
}
