// Package dedup splits collected entries into new and already-sent sets.
package dedup

import "paper_digest/internal/domain"

// Partition first deduplicates candidates by URL within the run (stable,
// first occurrence wins), then splits the survivors against the ledger
// snapshot: URLs present in alreadySent go to seenAgain, the rest to fresh.
// Every URL appears at most once across both outputs.
func Partition(candidates []domain.Entry, alreadySent map[string]struct{}) (fresh, seenAgain []domain.Entry) {
	seenThisRun := make(map[string]struct{}, len(candidates))

	for _, e := range candidates {
		if _, dup := seenThisRun[e.URL]; dup {
			continue
		}
		seenThisRun[e.URL] = struct{}{}

		if _, sent := alreadySent[e.URL]; sent {
			seenAgain = append(seenAgain, e)
		} else {
			fresh = append(fresh, e)
		}
	}

	return fresh, seenAgain
}
