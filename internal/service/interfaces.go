package service

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"time"

	"paper_digest/internal/domain"
)

type SubscriberStore interface {
	EligibleAt(ctx context.Context, t time.Time) ([]domain.Subscriber, error)
}

type SentPaperStore interface {
	AlreadySent(ctx context.Context, subscriberID int64) (map[string]struct{}, error)
	RecordBatch(ctx context.Context, subscriberID int64, entries []domain.Entry) error
	CountBySubscriber(ctx context.Context, subscriberID int64) (int64, error)
}

type FeedSource interface {
	FetchFeed(ctx context.Context, feedURL string, keywords []string) ([]domain.Entry, error)
}

type PaperSearch interface {
	Search(ctx context.Context, keyword string, keywords []string) ([]domain.Entry, error)
}

type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type Notifier interface {
	Send(ctx context.Context, sub domain.Subscriber, subject string, newEntries, recent []domain.Entry) error
}
