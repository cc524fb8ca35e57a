package parser

import (
	"regexp"
	"sort"
)

var (
	// reTrailing strips separator debris left at the end of a buffer after
	// a trailing segment was cut off.
	reTrailing = regexp.MustCompile(`(\s*,\s*|,?\s+)$`)

	// reTrailSep strips the separator the matcher captured at the end of a
	// winning prefix.
	reTrailSep = regexp.MustCompile(`(,\s*|\s+)$`)

	// reLeadSep strips the separator at the head of a captured suffix.
	reLeadSep = regexp.MustCompile(`^(,\s*|\s+)`)

	reCommaSplit = regexp.MustCompile(`\s*,\s*`)
)

func trimTrailing(s string) string {
	return reTrailing.ReplaceAllString(s, "")
}

func trimSep(s string) string {
	return reTrailSep.ReplaceAllString(s, "")
}

func trimLead(s string) string {
	return reLeadSep.ReplaceAllString(s, "")
}

func splitCommaList(s string) []string {
	return reCommaSplit.Split(s, -1)
}

// sortedKeys returns map keys in lexical order so candidate lists are
// deterministic.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
