// Package match implements keyword relevance for collected entries.
// Both source adapters go through these functions so RSS and arXiv results
// are filtered with identical semantics.
package match

import "strings"

// Relevant reports whether any keyword occurs in the entry text.
// Matching is case-insensitive substring containment over
// title + " " + summary.
func Relevant(title, summary string, keywords []string) bool {
	text := strings.ToLower(title + " " + summary)
	for _, kw := range keywords {
		if strings.Contains(text, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

// Matched returns the keywords occurring in the entry text, preserving the
// input ordering and dropping duplicates. Returns nil when nothing matches.
func Matched(title, summary string, keywords []string) []string {
	text := strings.ToLower(title + " " + summary)

	var matched []string
	seen := make(map[string]struct{}, len(keywords))
	for _, kw := range keywords {
		folded := strings.ToLower(kw)
		if _, dup := seen[folded]; dup {
			continue
		}
		if strings.Contains(text, folded) {
			matched = append(matched, kw)
			seen[folded] = struct{}{}
		}
	}
	return matched
}
