package parser

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/mmcdole/gofeed/atom"

	"FintechNews/internal/domain"
	"FintechNews/internal/scanner"
)

const (
	feedScannerName  = "rss"
	defaultUserAgent = "FintechNews/1.0"
	feedAccept       = "application/rss+xml, application/atom+xml, application/feed+json, application/xml;q=0.9, text/xml;q=0.8"
)

var (
	errMissingTitle = errors.New("entry has no title")
	errMissingLink  = errors.New("entry has no link")
	errBadTimestamp = errors.New("unparseable publish timestamp")
)

// FeedScanner reads RSS, Atom and JSON feeds through gofeed.
type FeedScanner struct {
	client    *http.Client
	userAgent string
}

var _ scanner.Scanner = (*FeedScanner)(nil)

// NewFeedScanner wires an HTTP client; a nil client gets a 20s timeout.
func NewFeedScanner(client *http.Client, userAgent string) *FeedScanner {
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	return &FeedScanner{client: client, userAgent: userAgent}
}

// Name identifies the strategy inside the registry.
func (f *FeedScanner) Name() string {
	return feedScannerName
}

// Scan fetches the feed, keeps the first req.Limit entries in feed order and
// drops those published before req.Cutoff.
func (f *FeedScanner) Scan(ctx context.Context, req scanner.Request) (scanner.Batch, error) {
	feed, err := f.fetchFeed(ctx, req.URL)
	if err != nil {
		return scanner.Batch{}, err
	}

	items := feed.Items
	if req.Limit > 0 && len(items) > req.Limit {
		items = items[:req.Limit]
	}

	var batch scanner.Batch
	for i, item := range items {
		article, published, err := normalizeItem(item, req)
		if err != nil {
			batch.Skipped = append(batch.Skipped, &domain.EntryNormalizationError{
				Source: req.SourceName,
				Index:  i,
				Err:    err,
			})
			continue
		}
		if published.Before(req.Cutoff) {
			continue
		}
		batch.Articles = append(batch.Articles, article)
	}

	return batch, nil
}

func (f *FeedScanner) fetchFeed(ctx context.Context, feedURL string) (*gofeed.Feed, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", feedAccept)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, fmt.Errorf("feed returned %s", resp.Status)
	}

	feed, err := newFeedParser().Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}
	return feed, nil
}

func newFeedParser() *gofeed.Parser {
	fp := gofeed.NewParser()
	fp.AtomTranslator = &atomPublishedTranslator{}
	return fp
}

// atomPublishedTranslator stops gofeed from using <updated> as the publish
// date of Atom entries that carry no <published>; those entries are undated.
type atomPublishedTranslator struct {
	gofeed.DefaultAtomTranslator
}

func (t *atomPublishedTranslator) Translate(feed interface{}) (*gofeed.Feed, error) {
	out, err := t.DefaultAtomTranslator.Translate(feed)
	if err != nil {
		return nil, err
	}
	atomFeed, ok := feed.(*atom.Feed)
	if !ok {
		return out, nil
	}
	for i, entry := range atomFeed.Entries {
		if i >= len(out.Items) {
			break
		}
		if strings.TrimSpace(entry.Published) == "" {
			out.Items[i].Published = ""
			out.Items[i].PublishedParsed = nil
		}
	}
	return out, nil
}

// normalizeItem also returns the full publish timestamp used for the recency check.
func normalizeItem(item *gofeed.Item, req scanner.Request) (domain.Article, time.Time, error) {
	if item == nil {
		return domain.Article{}, time.Time{}, errMissingTitle
	}

	title := strings.TrimSpace(item.Title)
	if title == "" {
		return domain.Article{}, time.Time{}, errMissingTitle
	}
	link := strings.TrimSpace(item.Link)
	if link == "" {
		return domain.Article{}, time.Time{}, errMissingLink
	}

	published, err := publishedAt(item, req.Now)
	if err != nil {
		return domain.Article{}, time.Time{}, err
	}

	article := domain.Article{
		Title:       title,
		Description: item.Description,
		URL:         link,
		PublishedAt: calendarDate(published, req.Location),
		Source:      req.SourceName,
	}
	return article, published, nil
}

// Entries without a timestamp count as published now.
func publishedAt(item *gofeed.Item, now time.Time) (time.Time, error) {
	if item.PublishedParsed != nil {
		return *item.PublishedParsed, nil
	}
	if raw := strings.TrimSpace(item.Published); raw != "" {
		return time.Time{}, fmt.Errorf("%w: %q", errBadTimestamp, raw)
	}
	return now, nil
}

func calendarDate(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	t = t.In(loc)
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}
