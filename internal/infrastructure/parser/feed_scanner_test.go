package parser

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/stretchr/testify/require"

	"FintechNews/internal/scanner"
)

var fixedNow = time.Date(2026, time.October, 16, 12, 0, 0, 0, time.UTC)

func rssItem(title, link, pubDate, description string) string {
	var b strings.Builder
	b.WriteString("<item>")
	if title != "" {
		fmt.Fprintf(&b, "<title>%s</title>", title)
	}
	if link != "" {
		fmt.Fprintf(&b, "<link>%s</link>", link)
	}
	if description != "" {
		fmt.Fprintf(&b, "<description>%s</description>", description)
	}
	if pubDate != "" {
		fmt.Fprintf(&b, "<pubDate>%s</pubDate>", pubDate)
	}
	b.WriteString("</item>")
	return b.String()
}

func rssFeed(items ...string) string {
	return `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0"><channel><title>Test</title><link>https://example.com</link><description>d</description>` +
		strings.Join(items, "") + `</channel></rss>`
}

func sampleFeed() string {
	items := []string{
		rssItem("Fresh fintech", "https://example.com/0", "Thu, 15 Oct 2026 09:30:00 GMT", "open banking"),
		rssItem("Undated crypto", "https://example.com/1", "", ""),
		rssItem("Old news", "https://example.com/2", "Thu, 01 Oct 2026 09:30:00 GMT", ""),
		rssItem("Broken date", "https://example.com/3", "not a date", ""),
		rssItem("No link", "", "Thu, 15 Oct 2026 09:30:00 GMT", ""),
	}
	for i := 5; i < 12; i++ {
		items = append(items, rssItem(fmt.Sprintf("Filler %d", i), fmt.Sprintf("https://example.com/%d", i), "Wed, 14 Oct 2026 18:00:00 GMT", ""))
	}
	return rssFeed(items...)
}

func serveFeed(t *testing.T, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func request(url string, daysBack int) scanner.Request {
	return scanner.Request{
		SourceName: "Finextra",
		URL:        url,
		Limit:      10,
		Now:        fixedNow,
		Cutoff:     fixedNow.AddDate(0, 0, -daysBack),
		Location:   time.UTC,
	}
}

func TestFeedScannerScan(t *testing.T) {
	t.Parallel()

	server := serveFeed(t, sampleFeed())
	sc := NewFeedScanner(server.Client(), "")

	batch, err := sc.Scan(context.Background(), request(server.URL, 3))
	require.NoError(t, err)

	titles := make([]string, 0, len(batch.Articles))
	for _, a := range batch.Articles {
		titles = append(titles, a.Title)
		require.Equal(t, "Finextra", a.Source)
		require.Empty(t, a.Classification)
	}
	require.Equal(t, []string{
		"Fresh fintech", "Undated crypto",
		"Filler 5", "Filler 6", "Filler 7", "Filler 8", "Filler 9",
	}, titles)

	first := batch.Articles[0]
	require.Equal(t, "open banking", first.Description)
	require.Equal(t, "https://example.com/0", first.URL)
	require.Equal(t, time.Date(2026, time.October, 15, 0, 0, 0, 0, time.UTC), first.PublishedAt)

	undated := batch.Articles[1]
	require.Equal(t, "", undated.Description)
	require.Equal(t, time.Date(2026, time.October, 16, 0, 0, 0, 0, time.UTC), undated.PublishedAt)

	require.Len(t, batch.Skipped, 2)
	require.Equal(t, 3, batch.Skipped[0].Index)
	require.ErrorIs(t, batch.Skipped[0], errBadTimestamp)
	require.Equal(t, 4, batch.Skipped[1].Index)
	require.ErrorIs(t, batch.Skipped[1], errMissingLink)
}

func TestFeedScannerUndatedAlwaysKept(t *testing.T) {
	t.Parallel()

	server := serveFeed(t, rssFeed(
		rssItem("Undated", "https://example.com/u", "", ""),
		rssItem("Yesterday", "https://example.com/y", "Thu, 15 Oct 2026 06:00:00 GMT", ""),
	))
	sc := NewFeedScanner(server.Client(), "")

	batch, err := sc.Scan(context.Background(), request(server.URL, 1))
	require.NoError(t, err)
	require.Len(t, batch.Articles, 1)
	require.Equal(t, "Undated", batch.Articles[0].Title)
}

func TestFeedScannerAtomUpdatedIsNotPublished(t *testing.T) {
	t.Parallel()

	body := `<?xml version="1.0" encoding="utf-8"?>
<feed xmlns="http://www.w3.org/2005/Atom"><title>Test</title><id>urn:test</id><updated>2026-10-15T00:00:00Z</updated>
<entry><title>Open banking explainer</title><link href="https://example.com/a"/><id>urn:a</id><updated>2020-01-01T00:00:00Z</updated><summary>open banking</summary></entry>
<entry><title>Old published</title><link href="https://example.com/b"/><id>urn:b</id><published>2020-01-01T00:00:00Z</published><updated>2026-10-15T00:00:00Z</updated></entry>
<entry><title>Fresh published</title><link href="https://example.com/c"/><id>urn:c</id><published>2026-10-15T08:00:00Z</published></entry>
</feed>`
	server := serveFeed(t, body)

	batch, err := NewFeedScanner(server.Client(), "").Scan(context.Background(), request(server.URL, 30))
	require.NoError(t, err)
	require.Empty(t, batch.Skipped)
	require.Len(t, batch.Articles, 2)

	require.Equal(t, "Open banking explainer", batch.Articles[0].Title)
	require.Equal(t, time.Date(2026, time.October, 16, 0, 0, 0, 0, time.UTC), batch.Articles[0].PublishedAt)
	require.Equal(t, "Fresh published", batch.Articles[1].Title)
	require.Equal(t, time.Date(2026, time.October, 15, 0, 0, 0, 0, time.UTC), batch.Articles[1].PublishedAt)
}

func TestFeedScannerHTTPFailure(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") != "FintechNews/1.0" {
			http.Error(w, "unexpected agent", http.StatusTeapot)
			return
		}
		http.Error(w, "nope", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	_, err := NewFeedScanner(server.Client(), "").Scan(context.Background(), request(server.URL, 3))
	require.Error(t, err)
	require.Contains(t, err.Error(), "503")
}

func TestFeedScannerMalformedFeed(t *testing.T) {
	t.Parallel()

	server := serveFeed(t, "this is not a feed")
	_, err := NewFeedScanner(server.Client(), "").Scan(context.Background(), request(server.URL, 3))
	require.Error(t, err)
	require.Contains(t, err.Error(), "parse feed")
}

func TestPublishedAtLocalDate(t *testing.T) {
	t.Parallel()

	tokyo := time.FixedZone("JST", 9*60*60)
	stamp := time.Date(2026, time.October, 15, 20, 0, 0, 0, time.UTC)
	got := calendarDate(stamp, tokyo)
	require.Equal(t, 16, got.Day())
	require.Equal(t, 0, got.Hour())

	_, err := publishedAt(&gofeed.Item{Published: "garbage"}, fixedNow)
	require.True(t, errors.Is(err, errBadTimestamp))

	now, err := publishedAt(&gofeed.Item{}, fixedNow)
	require.NoError(t, err)
	require.Equal(t, fixedNow, now)
}
