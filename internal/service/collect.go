package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"paper_digest/internal/config"
	"paper_digest/internal/dedup"
	"paper_digest/internal/domain"
)

// Collector runs the collection pipeline: fan out over a subscriber's feeds
// and arXiv keywords, deduplicate against the sent-paper ledger, persist the
// new entries and hand the digest to the notifier.
type Collector struct {
	subscribers SubscriberStore
	history     SentPaperStore
	feeds       FeedSource
	papers      PaperSearch
	txManager   TransactionManager
	notifier    Notifier
	logger      *slog.Logger
	config      config.CollectConfig
}

func NewCollector(
	subscribers SubscriberStore,
	history SentPaperStore,
	feeds FeedSource,
	papers PaperSearch,
	txManager TransactionManager,
	notifier Notifier,
	logger *slog.Logger,
	cfg config.CollectConfig,
) *Collector {
	return &Collector{
		subscribers: subscribers,
		history:     history,
		feeds:       feeds,
		papers:      papers,
		txManager:   txManager,
		notifier:    notifier,
		logger:      logger,
		config:      cfg,
	}
}

// CollectForSubscriber runs one subscriber's pipeline. The returned stats
// carry the notification outcome separately from collection success: a
// failed or skipped digest still leaves the run successful as long as the
// new entries made it into the ledger. Concurrent calls for the same
// subscriber must be serialized by the caller.
func (c *Collector) CollectForSubscriber(ctx context.Context, sub domain.Subscriber) (*domain.CollectStats, error) {
	startTime := time.Now()
	logger := c.logger.With("subscriber_id", sub.ID)

	logger.Info("starting collection",
		"keywords", len(sub.Keywords),
		"feeds", len(sub.FeedURLs),
	)

	// Ledger snapshot taken once; fetches race only against each other.
	alreadySent, err := c.history.AlreadySent(ctx, sub.ID)
	if err != nil {
		return nil, fmt.Errorf("load sent history: %w", err)
	}

	candidates := c.fetchAll(ctx, sub)

	fresh, seenAgain := dedup.Partition(candidates, alreadySent)

	stats := &domain.CollectStats{
		SubscriberID: sub.ID,
		Fetched:      len(fresh) + len(seenAgain),
		New:          len(fresh),
	}

	// Persist before notifying: an entry reported as new must already be in
	// the ledger, otherwise a later notifier failure would resend it as new.
	if len(fresh) > 0 {
		err := c.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
			return c.history.RecordBatch(txCtx, sub.ID, fresh)
		})
		if err != nil {
			return nil, fmt.Errorf("record sent papers: %w", err)
		}
	}

	if total, err := c.history.CountBySubscriber(ctx, sub.ID); err == nil {
		logger.Debug("ledger size", "total", total)
	}

	stats.Duration = time.Since(startTime)

	if sub.Email == "" {
		stats.Skipped = true
		stats.Message = "no contact address"
		logger.Info("notification skipped, no contact address", "new", stats.New)
		return stats, nil
	}

	recent := recentSample(seenAgain, c.config.RecentLimit)
	subject := fmt.Sprintf("[Paper Digest] %s - %d new papers",
		time.Now().Format("2006-01-02"), len(fresh))

	if err := c.notifier.Send(ctx, sub, subject, fresh, recent); err != nil {
		stats.Message = err.Error()
		logger.Error("digest delivery failed",
			"new", stats.New,
			"error", err,
		)
		return stats, nil
	}
	stats.Notified = true

	logger.Info("collection completed",
		"fetched", stats.Fetched,
		"new", stats.New,
		"recent", len(recent),
		"duration", stats.Duration,
	)

	return stats, nil
}

// CollectAll runs the pipeline for every subscriber eligible at now. One
// subscriber's failure (including a panic) is recorded against their
// identity and never stops the rest of the batch.
func (c *Collector) CollectAll(ctx context.Context, now time.Time) (*domain.BatchStats, error) {
	startTime := time.Now()

	subs, err := c.subscribers.EligibleAt(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("load eligible subscribers: %w", err)
	}

	stats := &domain.BatchStats{Total: len(subs)}

	for _, sub := range subs {
		if err := c.collectOne(ctx, sub); err != nil {
			stats.Errors = append(stats.Errors,
				fmt.Sprintf("subscriber %d (%s): %v", sub.ID, sub.Email, err))
			continue
		}
		stats.Succeeded++
	}

	stats.Duration = time.Since(startTime)

	c.logger.Info("batch collection completed",
		"slot", now.Format("15:04"),
		"succeeded", stats.Succeeded,
		"total", stats.Total,
		"errors", len(stats.Errors),
		"duration", stats.Duration,
	)

	return stats, nil
}

func (c *Collector) collectOne(ctx context.Context, sub domain.Subscriber) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()

	_, err = c.CollectForSubscriber(ctx, sub)
	return err
}

// fetchAll launches one task per feed and one arXiv query per keyword on a
// bounded pool. Tasks never return an error: a failed source is logged and
// contributes zero entries, and its siblings keep running.
func (c *Collector) fetchAll(ctx context.Context, sub domain.Subscriber) []domain.Entry {
	var (
		mu      sync.Mutex
		entries []domain.Entry
	)

	g := &errgroup.Group{}
	g.SetLimit(c.config.MaxConcurrentFetches)

	for _, feedURL := range sub.FeedURLs {
		feedURL := feedURL
		g.Go(func() error {
			got, err := c.feeds.FetchFeed(ctx, feedURL, sub.Keywords)
			if err != nil {
				c.logger.Error("feed fetch failed",
					"subscriber_id", sub.ID,
					"feed_url", feedURL,
					"error", err,
				)
				return nil
			}
			mu.Lock()
			entries = append(entries, got...)
			mu.Unlock()
			return nil
		})
	}

	for _, keyword := range sub.Keywords {
		keyword := keyword
		g.Go(func() error {
			got, err := c.papers.Search(ctx, keyword, sub.Keywords)
			if err != nil {
				c.logger.Error("arxiv search failed",
					"subscriber_id", sub.ID,
					"keyword", keyword,
					"error", err,
				)
				return nil
			}
			mu.Lock()
			entries = append(entries, got...)
			mu.Unlock()
			return nil
		})
	}

	_ = g.Wait()

	return entries
}

// recentSample picks up to limit already-sent entries for the digest's
// context section, preferring arXiv results and then entries matching more
// keywords.
func recentSample(entries []domain.Entry, limit int) []domain.Entry {
	if len(entries) == 0 {
		return nil
	}

	sorted := make([]domain.Entry, len(entries))
	copy(sorted, entries)

	sort.SliceStable(sorted, func(i, j int) bool {
		iArxiv := sorted[i].SourceName == domain.ArxivSourceName
		jArxiv := sorted[j].SourceName == domain.ArxivSourceName
		if iArxiv != jArxiv {
			return iArxiv
		}
		return len(sorted[i].MatchedKeywords) > len(sorted[j].MatchedKeywords)
	})

	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}
