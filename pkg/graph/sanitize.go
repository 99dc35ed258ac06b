package graph

import (
	"regexp"
	"strings"
)

var invalidRelationCharRe = regexp.MustCompile(`[^A-Za-z0-9_]`)

// SanitizeRelation maps a free-text relation onto a valid graph
// relationship type. Whitespace is trimmed, every character outside
// [A-Za-z0-9_] becomes an underscore, and an empty result falls back
// to RELATED. The function is idempotent.
func SanitizeRelation(relation string) string {
	relation = strings.TrimSpace(relation)
	if relation == "" {
		return "RELATED"
	}
	return invalidRelationCharRe.ReplaceAllString(relation, "_")
}
