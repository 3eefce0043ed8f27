package analytics

import "strings"

// DefaultSuggestionLimit caps autocomplete results.
const DefaultSuggestionLimit = 10

// Suggest filters known canonical registration numbers against a query. A
// candidate matches when it contains the uppercased, trimmed query as a
// substring, or when its trailing four characters do. Results keep the
// rollups' first-appearance order; there is no relevance ranking. An empty or
// whitespace query returns nothing.
func Suggest(query string, rollups *Rollups, limit int) []string {
	q := strings.ToUpper(strings.TrimSpace(query))
	if q == "" {
		return nil
	}
	if limit <= 0 {
		limit = DefaultSuggestionLimit
	}

	var matches []string
	for _, key := range rollups.Keys() {
		last4 := key
		if len(key) > 4 {
			last4 = key[len(key)-4:]
		}
		if strings.Contains(key, q) || strings.Contains(last4, q) {
			matches = append(matches, key)
			if len(matches) >= limit {
				break
			}
		}
	}
	return matches
}

// SuggestRecords resolves suggestions back to their rollups, for responses
// that show totals alongside each registration number.
func SuggestRecords(query string, rollups *Rollups, limit int) []*PatientRollup {
	keys := Suggest(query, rollups, limit)
	out := make([]*PatientRollup, 0, len(keys))
	for _, key := range keys {
		if rollup, ok := rollups.Get(key); ok {
			out = append(out, rollup)
		}
	}
	return out
}