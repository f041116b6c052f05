package postgres

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"paper_digest/internal/domain"
)

type SubscriberStore struct {
	db *sqlx.DB
}

func NewSubscriberStore(db *sqlx.DB) *SubscriberStore {
	return &SubscriberStore{db: db}
}

// EligibleAt returns the active subscribers whose configured send time
// matches the wall-clock minute of t, with their keywords and feed URLs
// loaded. Keyword and feed ordering follows insertion order.
func (s *SubscriberStore) EligibleAt(ctx context.Context, t time.Time) ([]domain.Subscriber, error) {
	query := `
		SELECT id, email, username, send_time, is_active, created_at
		FROM subscribers
		WHERE is_active = TRUE AND send_time = $1
		ORDER BY id`

	var subscribers []domain.Subscriber
	if err := s.db.SelectContext(ctx, &subscribers, query, t.Format("15:04")); err != nil {
		return nil, err
	}
	if len(subscribers) == 0 {
		return nil, nil
	}

	ids := make([]int64, len(subscribers))
	index := make(map[int64]*domain.Subscriber, len(subscribers))
	for i := range subscribers {
		ids[i] = subscribers[i].ID
		index[subscribers[i].ID] = &subscribers[i]
	}

	if err := s.loadKeywords(ctx, ids, index); err != nil {
		return nil, err
	}
	if err := s.loadFeeds(ctx, ids, index); err != nil {
		return nil, err
	}

	return subscribers, nil
}

func (s *SubscriberStore) loadKeywords(ctx context.Context, ids []int64, index map[int64]*domain.Subscriber) error {
	query := `
		SELECT subscriber_id, text
		FROM keywords
		WHERE subscriber_id = ANY($1)
		ORDER BY id`

	rows, err := s.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var subID int64
		var text string
		if err := rows.Scan(&subID, &text); err != nil {
			return err
		}
		if sub := index[subID]; sub != nil {
			sub.Keywords = append(sub.Keywords, text)
		}
	}

	return rows.Err()
}

func (s *SubscriberStore) loadFeeds(ctx context.Context, ids []int64, index map[int64]*domain.Subscriber) error {
	query := `
		SELECT subscriber_id, url
		FROM rss_feeds
		WHERE subscriber_id = ANY($1)
		ORDER BY id`

	rows, err := s.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var subID int64
		var url string
		if err := rows.Scan(&subID, &url); err != nil {
			return err
		}
		if sub := index[subID]; sub != nil {
			sub.FeedURLs = append(sub.FeedURLs, url)
		}
	}

	return rows.Err()
}
