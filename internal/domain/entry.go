package domain

import "time"

// ArxivSourceName is the SourceName assigned to entries coming from the
// arXiv query API. The digest sort prefers it over feed sources on ties.
const ArxivSourceName = "arXiv"

// Entry is one paper record collected from a source. Identity is the URL;
// an Entry is never mutated after the fetcher builds it.
type Entry struct {
	Title           string   `json:"title"`
	Summary         *string  `json:"summary,omitempty"`
	URL             string   `json:"url"`
	SourceName      string   `json:"source_name"`
	MatchedKeywords []string `json:"matched_keywords"`
}

// SentPaper is one row of the append-only ledger of papers already mailed
// to a subscriber. Rows are created once and never updated.
type SentPaper struct {
	ID           int64     `db:"id"`
	SubscriberID int64     `db:"subscriber_id"`
	URL          string    `db:"url"`
	Title        string    `db:"title"`
	SentAt       time.Time `db:"sent_at"`
}

// CollectionResult is the per-run output handed to the notifier.
// All is deduplicated by URL within the run, New is the subsequence absent
// from the ledger, Recent is a bounded sample of already-sent entries kept
// for context in the digest.
type CollectionResult struct {
	All    []Entry
	New    []Entry
	Recent []Entry
}
