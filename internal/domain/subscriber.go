package domain

import "time"

// Subscriber owns a keyword set, a feed list, and a contact address for
// digests. SendTime is the "HH:MM" wall-clock slot the subscriber chose.
type Subscriber struct {
	ID        int64     `db:"id"`
	Email     string    `db:"email"`
	Username  string    `db:"username"`
	SendTime  string    `db:"send_time"`
	Active    bool      `db:"is_active"`
	CreatedAt time.Time `db:"created_at"`

	Keywords []string
	FeedURLs []string
}
