// Package arxiv queries the arXiv search API for recent submissions
// matching a keyword.
package arxiv

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"paper_digest/internal/domain"
	"paper_digest/internal/match"
)

// Config holds arXiv client configuration.
type Config struct {
	BaseURL        string
	MaxResults     int
	LookbackDays   int
	Timeout        time.Duration
	MaxAttempts    int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
}

// Client queries the arXiv API. Safe for concurrent use.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	maxResults     int
	lookbackDays   int
	maxAttempts    int
	initialBackoff time.Duration
	maxBackoff     time.Duration
	logger         *slog.Logger
}

// New creates a new arXiv client.
func New(cfg Config, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL:        cfg.BaseURL,
		maxResults:     cfg.MaxResults,
		lookbackDays:   cfg.LookbackDays,
		maxAttempts:    cfg.MaxAttempts,
		initialBackoff: cfg.InitialBackoff,
		maxBackoff:     cfg.MaxBackoff,
		logger:         logger.With("source", "arxiv"),
	}
}

// Search runs one arXiv query for keyword, restricted to submissions within
// the lookback window, newest first, capped at MaxResults. The query keyword
// counts as an implicit match; every result is additionally scanned against
// the full keyword set so one query can surface matches for several keywords.
func (c *Client) Search(ctx context.Context, keyword string, keywords []string) ([]domain.Entry, error) {
	feed, err := c.query(ctx, keyword)
	if err != nil {
		return nil, err
	}

	var entries []domain.Entry
	for _, item := range feed.Items {
		if item.Link == "" {
			continue
		}

		matched := match.Matched(item.Title, item.Description, keywords)
		if !containsFold(matched, keyword) {
			matched = append([]string{keyword}, matched...)
		}

		entry := domain.Entry{
			Title:           item.Title,
			URL:             item.Link,
			SourceName:      domain.ArxivSourceName,
			MatchedKeywords: matched,
		}
		if item.Description != "" {
			summary := item.Description
			entry.Summary = &summary
		}

		entries = append(entries, entry)
	}

	c.logger.Debug("searched arxiv",
		"keyword", keyword,
		"results", len(feed.Items),
		"kept", len(entries),
	)

	return entries, nil
}

func (c *Client) query(ctx context.Context, keyword string) (*gofeed.Feed, error) {
	cutoff := time.Now().AddDate(0, 0, -c.lookbackDays)

	params := url.Values{}
	params.Set("search_query", fmt.Sprintf(
		"all:%s AND submittedDate:[%s TO *]",
		keyword, cutoff.Format("200601021504"),
	))
	params.Set("start", "0")
	params.Set("max_results", strconv.Itoa(c.maxResults))
	params.Set("sortBy", "submittedDate")
	params.Set("sortOrder", "descending")

	queryURL := c.baseURL + "?" + params.Encode()

	var feed *gofeed.Feed
	var err error

	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		feed, err = c.doRequest(ctx, queryURL)
		if err == nil {
			return feed, nil
		}

		if attempt == c.maxAttempts {
			break
		}

		backoff := c.calculateBackoff(attempt)
		c.logger.Warn("arxiv request failed, retrying",
			"keyword", keyword,
			"attempt", attempt,
			"backoff", backoff,
			"error", err,
		)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
	}

	return nil, fmt.Errorf("after %d attempts: %w", c.maxAttempts, err)
}

func (c *Client) doRequest(ctx context.Context, queryURL string) (*gofeed.Feed, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, queryURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/atom+xml")
	req.Header.Set("User-Agent", "PaperDigest/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	feed, err := gofeed.NewParser().Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	return feed, nil
}

func (c *Client) calculateBackoff(attempt int) time.Duration {
	backoff := c.initialBackoff
	for i := 1; i < attempt; i++ {
		backoff *= 2
	}
	if backoff > c.maxBackoff {
		backoff = c.maxBackoff
	}
	return backoff
}

func containsFold(haystack []string, needle string) bool {
	for _, s := range haystack {
		if strings.EqualFold(s, needle) {
			return true
		}
	}
	return false
}
