package postgres

import (
	"context"
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx"

	"paper_digest/internal/domain"
)

// SentPaperStore is the append-only ledger of papers already mailed to a
// subscriber. Rows are only ever inserted; the (subscriber_id, url) unique
// constraint guarantees one row per paper per subscriber.
type SentPaperStore struct {
	db *sqlx.DB
}

func NewSentPaperStore(db *sqlx.DB) *SentPaperStore {
	return &SentPaperStore{db: db}
}

// AlreadySent returns the set of URLs recorded for a subscriber.
func (s *SentPaperStore) AlreadySent(ctx context.Context, subscriberID int64) (map[string]struct{}, error) {
	query := `SELECT url FROM sent_papers WHERE subscriber_id = $1`

	rows, err := s.db.QueryContext(ctx, query, subscriberID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	urls := make(map[string]struct{})
	for rows.Next() {
		var url string
		if err := rows.Scan(&url); err != nil {
			return nil, err
		}
		urls[url] = struct{}{}
	}

	return urls, rows.Err()
}

// RecordBatch inserts one ledger row per entry in a single statement.
// Runs on the transaction bound to ctx when there is one, so a caller
// wrapping it in WithTransaction gets an all-or-nothing write.
func (s *SentPaperStore) RecordBatch(ctx context.Context, subscriberID int64, entries []domain.Entry) error {
	if len(entries) == 0 {
		return nil
	}

	var sb strings.Builder
	sb.WriteString("INSERT INTO sent_papers (subscriber_id, url, title) VALUES ")
	valueArgs := make([]interface{}, 0, len(entries)*2+1)
	valueArgs = append(valueArgs, subscriberID)

	for i, entry := range entries {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString("($1, $")
		sb.WriteString(strconv.Itoa(i*2 + 2))
		sb.WriteString(", $")
		sb.WriteString(strconv.Itoa(i*2 + 3))
		sb.WriteString(")")
		valueArgs = append(valueArgs, entry.URL, entry.Title)
	}
	sb.WriteString(" ON CONFLICT (subscriber_id, url) DO NOTHING")

	exec := GetExecutor(ctx, s.db)
	_, err := exec.ExecContext(ctx, sb.String(), valueArgs...)
	return err
}

// CountBySubscriber returns the total ledger size for a subscriber.
func (s *SentPaperStore) CountBySubscriber(ctx context.Context, subscriberID int64) (int64, error) {
	var count int64
	err := s.db.GetContext(ctx, &count,
		"SELECT COUNT(*) FROM sent_papers WHERE subscriber_id = $1", subscriberID)
	return count, err
}
