package service

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"paper_digest/internal/config"
	"paper_digest/internal/domain"
	"paper_digest/internal/service/mocks"
	"paper_digest/testdata/utils"
)

type CollectorTestSuite struct {
	suite.Suite
	ctrl *gomock.Controller

	subscribers *mocks.MockSubscriberStore
	history     *mocks.MockSentPaperStore
	feeds       *mocks.MockFeedSource
	papers      *mocks.MockPaperSearch
	txManager   *mocks.MockTransactionManager
	notifier    *mocks.MockNotifier

	collector *Collector
	cfg       config.CollectConfig
	logger    *slog.Logger
}

func (s *CollectorTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())

	s.subscribers = mocks.NewMockSubscriberStore(s.ctrl)
	s.history = mocks.NewMockSentPaperStore(s.ctrl)
	s.feeds = mocks.NewMockFeedSource(s.ctrl)
	s.papers = mocks.NewMockPaperSearch(s.ctrl)
	s.txManager = mocks.NewMockTransactionManager(s.ctrl)
	s.notifier = mocks.NewMockNotifier(s.ctrl)

	s.cfg = config.CollectConfig{
		MaxConcurrentFetches: 4,
		RecentLimit:          20,
		RunTimeout:           time.Minute,
	}

	s.logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

	s.collector = NewCollector(
		s.subscribers,
		s.history,
		s.feeds,
		s.papers,
		s.txManager,
		s.notifier,
		s.logger,
		s.cfg,
	)
}

func (s *CollectorTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestCollectorTestSuite(t *testing.T) {
	suite.Run(t, new(CollectorTestSuite))
}

func (s *CollectorTestSuite) subscriber() domain.Subscriber {
	return domain.Subscriber{
		ID:       7,
		Email:    "researcher@example.com",
		Username: "researcher",
		SendTime: "08:00",
		Active:   true,
		Keywords: []string{"drone", "swarm"},
		FeedURLs: []string{"https://journal.example.com/rss"},
	}
}

func (s *CollectorTestSuite) expectTxPassthrough() {
	s.txManager.EXPECT().WithTransaction(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		},
	)
}

func (s *CollectorTestSuite) TestCollect_NewEntriesFromBothSources() {
	ctx := context.Background()
	sub := s.subscriber()

	feedEntry := domain.Entry{
		Title:           "Swarm Robotics Review",
		URL:             "https://journal.example.com/a",
		SourceName:      "Example Journal",
		MatchedKeywords: []string{"swarm"},
	}
	arxivEntry := domain.Entry{
		Title:           "Drone Control",
		Summary:         utils.Ptr("Control schemes for small drones."),
		URL:             "https://arxiv.org/abs/2408.00001",
		SourceName:      domain.ArxivSourceName,
		MatchedKeywords: []string{"drone"},
	}

	s.history.EXPECT().AlreadySent(ctx, sub.ID).Return(map[string]struct{}{}, nil)
	s.feeds.EXPECT().FetchFeed(gomock.Any(), "https://journal.example.com/rss", sub.Keywords).
		Return([]domain.Entry{feedEntry}, nil)
	s.papers.EXPECT().Search(gomock.Any(), "drone", sub.Keywords).
		Return([]domain.Entry{arxivEntry}, nil)
	s.papers.EXPECT().Search(gomock.Any(), "swarm", sub.Keywords).Return(nil, nil)

	s.expectTxPassthrough()
	s.history.EXPECT().RecordBatch(gomock.Any(), sub.ID, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ int64, entries []domain.Entry) error {
			urls := make([]string, len(entries))
			for i, e := range entries {
				urls[i] = e.URL
			}
			s.ElementsMatch([]string{feedEntry.URL, arxivEntry.URL}, urls)
			return nil
		},
	)
	s.history.EXPECT().CountBySubscriber(gomock.Any(), sub.ID).Return(int64(2), nil)

	s.notifier.EXPECT().Send(gomock.Any(), sub, gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ domain.Subscriber, subject string, newEntries, recent []domain.Entry) error {
			s.Contains(subject, "2 new papers")
			s.Len(newEntries, 2)
			s.Empty(recent)
			return nil
		},
	)

	stats, err := s.collector.CollectForSubscriber(ctx, sub)

	s.NoError(err)
	s.Equal(2, stats.Fetched)
	s.Equal(2, stats.New)
	s.True(stats.Notified)
	s.False(stats.Skipped)
}

func (s *CollectorTestSuite) TestCollect_AlreadySentGoesToRecent() {
	ctx := context.Background()
	sub := s.subscriber()

	feedEntry := domain.Entry{
		Title:           "Swarm Robotics Review",
		URL:             "https://journal.example.com/a",
		SourceName:      "Example Journal",
		MatchedKeywords: []string{"swarm"},
	}
	arxivEntry := domain.Entry{
		Title:           "Drone Control",
		URL:             "https://arxiv.org/abs/2408.00001",
		SourceName:      domain.ArxivSourceName,
		MatchedKeywords: []string{"drone"},
	}

	s.history.EXPECT().AlreadySent(ctx, sub.ID).
		Return(map[string]struct{}{feedEntry.URL: {}}, nil)
	s.feeds.EXPECT().FetchFeed(gomock.Any(), gomock.Any(), sub.Keywords).
		Return([]domain.Entry{feedEntry}, nil)
	s.papers.EXPECT().Search(gomock.Any(), "drone", sub.Keywords).
		Return([]domain.Entry{arxivEntry}, nil)
	s.papers.EXPECT().Search(gomock.Any(), "swarm", sub.Keywords).Return(nil, nil)

	s.expectTxPassthrough()
	s.history.EXPECT().RecordBatch(gomock.Any(), sub.ID, []domain.Entry{arxivEntry}).Return(nil)
	s.history.EXPECT().CountBySubscriber(gomock.Any(), sub.ID).Return(int64(2), nil)

	s.notifier.EXPECT().Send(gomock.Any(), sub, gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ domain.Subscriber, subject string, newEntries, recent []domain.Entry) error {
			s.Contains(subject, "1 new papers")
			s.Equal([]domain.Entry{arxivEntry}, newEntries)
			s.Equal([]domain.Entry{feedEntry}, recent)
			return nil
		},
	)

	stats, err := s.collector.CollectForSubscriber(ctx, sub)

	s.NoError(err)
	s.Equal(2, stats.Fetched)
	s.Equal(1, stats.New)
	s.True(stats.Notified)
}

func (s *CollectorTestSuite) TestCollect_FeedFailureIsFailOpen() {
	ctx := context.Background()
	sub := s.subscriber()

	arxivEntry := domain.Entry{
		Title:           "Drone Control",
		URL:             "https://arxiv.org/abs/2408.00001",
		SourceName:      domain.ArxivSourceName,
		MatchedKeywords: []string{"drone"},
	}

	s.history.EXPECT().AlreadySent(ctx, sub.ID).Return(map[string]struct{}{}, nil)
	s.feeds.EXPECT().FetchFeed(gomock.Any(), gomock.Any(), sub.Keywords).
		Return(nil, errors.New("connection refused"))
	s.papers.EXPECT().Search(gomock.Any(), "drone", sub.Keywords).
		Return([]domain.Entry{arxivEntry}, nil)
	s.papers.EXPECT().Search(gomock.Any(), "swarm", sub.Keywords).Return(nil, nil)

	s.expectTxPassthrough()
	s.history.EXPECT().RecordBatch(gomock.Any(), sub.ID, []domain.Entry{arxivEntry}).Return(nil)
	s.history.EXPECT().CountBySubscriber(gomock.Any(), sub.ID).Return(int64(1), nil)

	s.notifier.EXPECT().Send(gomock.Any(), sub, gomock.Any(), []domain.Entry{arxivEntry}, gomock.Nil()).Return(nil)

	stats, err := s.collector.CollectForSubscriber(ctx, sub)

	s.NoError(err)
	s.Equal(1, stats.Fetched)
	s.Equal(1, stats.New)
	s.True(stats.Notified)
}

func (s *CollectorTestSuite) TestCollect_DuplicateURLAcrossSourcesKeptOnce() {
	ctx := context.Background()
	sub := s.subscriber()

	url := "https://arxiv.org/abs/2408.00001"
	first := domain.Entry{Title: "Drone Control", URL: url, SourceName: domain.ArxivSourceName, MatchedKeywords: []string{"drone"}}
	second := domain.Entry{Title: "Drone Control", URL: url, SourceName: domain.ArxivSourceName, MatchedKeywords: []string{"swarm"}}

	s.history.EXPECT().AlreadySent(ctx, sub.ID).Return(map[string]struct{}{}, nil)
	s.feeds.EXPECT().FetchFeed(gomock.Any(), gomock.Any(), sub.Keywords).Return(nil, nil)
	s.papers.EXPECT().Search(gomock.Any(), "drone", sub.Keywords).Return([]domain.Entry{first}, nil)
	s.papers.EXPECT().Search(gomock.Any(), "swarm", sub.Keywords).Return([]domain.Entry{second}, nil)

	s.expectTxPassthrough()
	s.history.EXPECT().RecordBatch(gomock.Any(), sub.ID, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ int64, entries []domain.Entry) error {
			s.Len(entries, 1)
			s.Equal(url, entries[0].URL)
			return nil
		},
	)
	s.history.EXPECT().CountBySubscriber(gomock.Any(), sub.ID).Return(int64(1), nil)

	s.notifier.EXPECT().Send(gomock.Any(), sub, gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	stats, err := s.collector.CollectForSubscriber(ctx, sub)

	s.NoError(err)
	s.Equal(1, stats.Fetched)
	s.Equal(1, stats.New)
}

func (s *CollectorTestSuite) TestCollect_PersistFailureSkipsNotification() {
	ctx := context.Background()
	sub := s.subscriber()

	arxivEntry := domain.Entry{
		Title:           "Drone Control",
		URL:             "https://arxiv.org/abs/2408.00001",
		SourceName:      domain.ArxivSourceName,
		MatchedKeywords: []string{"drone"},
	}

	s.history.EXPECT().AlreadySent(ctx, sub.ID).Return(map[string]struct{}{}, nil)
	s.feeds.EXPECT().FetchFeed(gomock.Any(), gomock.Any(), sub.Keywords).Return(nil, nil)
	s.papers.EXPECT().Search(gomock.Any(), "drone", sub.Keywords).
		Return([]domain.Entry{arxivEntry}, nil)
	s.papers.EXPECT().Search(gomock.Any(), "swarm", sub.Keywords).Return(nil, nil)

	s.txManager.EXPECT().WithTransaction(gomock.Any(), gomock.Any()).
		Return(errors.New("connection lost"))

	stats, err := s.collector.CollectForSubscriber(ctx, sub)

	s.Error(err)
	s.Nil(stats)
	s.Contains(err.Error(), "record sent papers")
}

func (s *CollectorTestSuite) TestCollect_NotifyFailureStillSucceeds() {
	ctx := context.Background()
	sub := s.subscriber()

	arxivEntry := domain.Entry{
		Title:           "Drone Control",
		URL:             "https://arxiv.org/abs/2408.00001",
		SourceName:      domain.ArxivSourceName,
		MatchedKeywords: []string{"drone"},
	}

	s.history.EXPECT().AlreadySent(ctx, sub.ID).Return(map[string]struct{}{}, nil)
	s.feeds.EXPECT().FetchFeed(gomock.Any(), gomock.Any(), sub.Keywords).Return(nil, nil)
	s.papers.EXPECT().Search(gomock.Any(), "drone", sub.Keywords).
		Return([]domain.Entry{arxivEntry}, nil)
	s.papers.EXPECT().Search(gomock.Any(), "swarm", sub.Keywords).Return(nil, nil)

	s.expectTxPassthrough()
	s.history.EXPECT().RecordBatch(gomock.Any(), sub.ID, []domain.Entry{arxivEntry}).Return(nil)
	s.history.EXPECT().CountBySubscriber(gomock.Any(), sub.ID).Return(int64(1), nil)

	s.notifier.EXPECT().Send(gomock.Any(), sub, gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errors.New("queue unavailable"))

	stats, err := s.collector.CollectForSubscriber(ctx, sub)

	s.NoError(err)
	s.Equal(1, stats.New)
	s.False(stats.Notified)
	s.Contains(stats.Message, "queue unavailable")
}

func (s *CollectorTestSuite) TestCollect_NoContactAddressSkipsNotification() {
	ctx := context.Background()
	sub := s.subscriber()
	sub.Email = ""

	arxivEntry := domain.Entry{
		Title:           "Drone Control",
		URL:             "https://arxiv.org/abs/2408.00001",
		SourceName:      domain.ArxivSourceName,
		MatchedKeywords: []string{"drone"},
	}

	s.history.EXPECT().AlreadySent(ctx, sub.ID).Return(map[string]struct{}{}, nil)
	s.feeds.EXPECT().FetchFeed(gomock.Any(), gomock.Any(), sub.Keywords).Return(nil, nil)
	s.papers.EXPECT().Search(gomock.Any(), "drone", sub.Keywords).
		Return([]domain.Entry{arxivEntry}, nil)
	s.papers.EXPECT().Search(gomock.Any(), "swarm", sub.Keywords).Return(nil, nil)

	s.expectTxPassthrough()
	s.history.EXPECT().RecordBatch(gomock.Any(), sub.ID, []domain.Entry{arxivEntry}).Return(nil)
	s.history.EXPECT().CountBySubscriber(gomock.Any(), sub.ID).Return(int64(1), nil)

	stats, err := s.collector.CollectForSubscriber(ctx, sub)

	s.NoError(err)
	s.Equal(1, stats.New)
	s.True(stats.Skipped)
	s.False(stats.Notified)
}

func (s *CollectorTestSuite) TestCollect_EmptyRunStillSendsDigest() {
	ctx := context.Background()
	sub := s.subscriber()

	s.history.EXPECT().AlreadySent(ctx, sub.ID).Return(map[string]struct{}{}, nil)
	s.feeds.EXPECT().FetchFeed(gomock.Any(), gomock.Any(), sub.Keywords).Return(nil, nil)
	s.papers.EXPECT().Search(gomock.Any(), "drone", sub.Keywords).Return(nil, nil)
	s.papers.EXPECT().Search(gomock.Any(), "swarm", sub.Keywords).Return(nil, nil)

	s.history.EXPECT().CountBySubscriber(gomock.Any(), sub.ID).Return(int64(0), nil)

	s.notifier.EXPECT().Send(gomock.Any(), sub, gomock.Any(), gomock.Nil(), gomock.Nil()).DoAndReturn(
		func(_ context.Context, _ domain.Subscriber, subject string, _, _ []domain.Entry) error {
			s.Contains(subject, "0 new papers")
			return nil
		},
	)

	stats, err := s.collector.CollectForSubscriber(ctx, sub)

	s.NoError(err)
	s.Equal(0, stats.Fetched)
	s.Equal(0, stats.New)
	s.True(stats.Notified)
}

func (s *CollectorTestSuite) TestCollect_RecentSampleSortedAndCapped() {
	ctx := context.Background()
	sub := s.subscriber()
	s.collector.config.RecentLimit = 2

	alreadySent := map[string]struct{}{
		"https://a.example.com/1":        {},
		"https://a.example.com/2":        {},
		"https://arxiv.org/abs/24.00001": {},
	}

	feedOne := domain.Entry{Title: "One", URL: "https://a.example.com/1", SourceName: "Journal", MatchedKeywords: []string{"drone"}}
	feedTwo := domain.Entry{Title: "Two", URL: "https://a.example.com/2", SourceName: "Journal", MatchedKeywords: []string{"drone", "swarm"}}
	arxivOld := domain.Entry{Title: "Old", URL: "https://arxiv.org/abs/24.00001", SourceName: domain.ArxivSourceName, MatchedKeywords: []string{"drone"}}

	s.history.EXPECT().AlreadySent(ctx, sub.ID).Return(alreadySent, nil)
	s.feeds.EXPECT().FetchFeed(gomock.Any(), gomock.Any(), sub.Keywords).
		Return([]domain.Entry{feedOne, feedTwo}, nil)
	s.papers.EXPECT().Search(gomock.Any(), "drone", sub.Keywords).
		Return([]domain.Entry{arxivOld}, nil)
	s.papers.EXPECT().Search(gomock.Any(), "swarm", sub.Keywords).Return(nil, nil)

	s.history.EXPECT().CountBySubscriber(gomock.Any(), sub.ID).Return(int64(3), nil)

	s.notifier.EXPECT().Send(gomock.Any(), sub, gomock.Any(), gomock.Nil(), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ domain.Subscriber, _ string, _, recent []domain.Entry) error {
			s.Len(recent, 2)
			// arXiv first, then the feed entry with more matched keywords.
			s.Equal(arxivOld.URL, recent[0].URL)
			s.Equal(feedTwo.URL, recent[1].URL)
			return nil
		},
	)

	stats, err := s.collector.CollectForSubscriber(ctx, sub)

	s.NoError(err)
	s.Equal(3, stats.Fetched)
	s.Equal(0, stats.New)
}

func (s *CollectorTestSuite) TestCollectAll_SubscriberFailureIsIsolated() {
	ctx := context.Background()
	now := time.Date(2026, 8, 29, 8, 0, 0, 0, time.UTC)

	broken := s.subscriber()
	broken.ID = 1
	broken.Email = "broken@example.com"
	broken.FeedURLs = nil

	healthy := s.subscriber()
	healthy.ID = 2
	healthy.FeedURLs = nil

	s.subscribers.EXPECT().EligibleAt(ctx, now).
		Return([]domain.Subscriber{broken, healthy}, nil)

	s.history.EXPECT().AlreadySent(ctx, broken.ID).
		Return(nil, errors.New("database gone"))

	s.history.EXPECT().AlreadySent(ctx, healthy.ID).Return(map[string]struct{}{}, nil)
	s.papers.EXPECT().Search(gomock.Any(), "drone", healthy.Keywords).Return(nil, nil)
	s.papers.EXPECT().Search(gomock.Any(), "swarm", healthy.Keywords).Return(nil, nil)
	s.history.EXPECT().CountBySubscriber(gomock.Any(), healthy.ID).Return(int64(0), nil)
	s.notifier.EXPECT().Send(gomock.Any(), healthy, gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	stats, err := s.collector.CollectAll(ctx, now)

	s.NoError(err)
	s.Equal(1, stats.Succeeded)
	s.Equal(2, stats.Total)
	s.Len(stats.Errors, 1)
	s.Contains(stats.Errors[0], "subscriber 1 (broken@example.com)")
	s.Contains(stats.Errors[0], "database gone")
}

func (s *CollectorTestSuite) TestCollectAll_NoEligibleSubscribers() {
	ctx := context.Background()
	now := time.Date(2026, 8, 29, 3, 30, 0, 0, time.UTC)

	s.subscribers.EXPECT().EligibleAt(ctx, now).Return(nil, nil)

	stats, err := s.collector.CollectAll(ctx, now)

	s.NoError(err)
	s.Equal(0, stats.Total)
	s.Equal(0, stats.Succeeded)
	s.Empty(stats.Errors)
}

func (s *CollectorTestSuite) TestCollectAll_StoreError() {
	ctx := context.Background()
	now := time.Now()

	s.subscribers.EXPECT().EligibleAt(ctx, now).Return(nil, errors.New("query failed"))

	stats, err := s.collector.CollectAll(ctx, now)

	s.Error(err)
	s.Nil(stats)
	s.Contains(err.Error(), "load eligible subscribers")
}
