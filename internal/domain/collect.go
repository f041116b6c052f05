package domain

import "time"

// CollectStats holds the outcome of a single subscriber's collection run.
type CollectStats struct {
	SubscriberID int64
	Fetched      int
	New          int
	Notified     bool
	// Skipped is true when notification was not attempted because the
	// subscriber has no usable contact address. Distinct from a failure.
	Skipped  bool
	Message  string
	Duration time.Duration
}

// BatchStats aggregates a multi-subscriber collection pass. One subscriber
// failing adds an entry to Errors and never aborts the batch.
type BatchStats struct {
	Succeeded int
	Total     int
	Errors    []string
	Duration  time.Duration
}
