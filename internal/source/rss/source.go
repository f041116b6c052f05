// Package rss fetches journal RSS/Atom feeds and filters their items
// against a subscriber's keyword set.
package rss

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/mmcdole/gofeed"

	"paper_digest/internal/domain"
	"paper_digest/internal/match"
)

// Feed titles longer than this are assumed to be boilerplate and replaced
// by the feed URL's host in SourceName.
const maxSourceNameLen = 80

// Config holds RSS client configuration.
type Config struct {
	Timeout   time.Duration
	UserAgent string
}

// Client fetches and filters RSS/Atom feeds. Safe for concurrent use.
type Client struct {
	httpClient *http.Client
	userAgent  string
	logger     *slog.Logger
}

// New creates a new RSS client.
func New(cfg Config, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		userAgent: cfg.UserAgent,
		logger:    logger.With("source", "rss"),
	}
}

// FetchFeed retrieves one feed and returns the items matching at least one
// keyword. Items without a link are dropped. The error is informational for
// the caller's log; a failed feed simply contributes zero entries.
func (c *Client) FetchFeed(ctx context.Context, feedURL string, keywords []string) ([]domain.Entry, error) {
	parser := gofeed.NewParser()
	parser.Client = c.httpClient
	parser.UserAgent = c.userAgent

	feed, err := parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("parse feed %s: %w", feedURL, err)
	}

	name := sourceName(feed.Title, feedURL)

	var entries []domain.Entry
	for _, item := range feed.Items {
		if item.Link == "" {
			continue
		}

		matched := match.Matched(item.Title, item.Description, keywords)
		if len(matched) == 0 {
			continue
		}

		entry := domain.Entry{
			Title:           item.Title,
			URL:             item.Link,
			SourceName:      name,
			MatchedKeywords: matched,
		}
		if item.Description != "" {
			summary := item.Description
			entry.Summary = &summary
		}

		entries = append(entries, entry)
	}

	c.logger.Debug("fetched feed",
		"feed_url", feedURL,
		"items", len(feed.Items),
		"matched", len(entries),
	)

	return entries, nil
}

// sourceName derives a display name for entries of one feed: the feed title
// when usable, otherwise the host component of the feed URL.
func sourceName(title, feedURL string) string {
	title = strings.TrimSpace(title)
	if title != "" && utf8.RuneCountInString(title) <= maxSourceNameLen {
		return title
	}

	if u, err := url.Parse(feedURL); err == nil && u.Host != "" {
		return u.Host
	}
	return feedURL
}
