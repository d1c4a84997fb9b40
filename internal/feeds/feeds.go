// Package feeds fetches RSS/Atom sources and aggregates their newest
// entries for the dashboard.
package feeds

import (
	"context"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/mmcdole/gofeed"
	"golang.org/x/sync/errgroup"

	"github.com/mightywomble/linksdashboard/internal/store"
)

const (
	// entriesPerFeed caps the detail view at the newest entries.
	entriesPerFeed = 3
	// summaryLimit is the character budget for entry summaries.
	summaryLimit = 150
	// latestLimit caps the cross-feed latest-articles view.
	latestLimit = 5
)

// Entry is one normalized feed item.
type Entry struct {
	Title     string `json:"title"`
	Link      string `json:"link"`
	Summary   string `json:"summary"`
	Published string `json:"published"`
}

// Feed is the normalized result of fetching one subscription.
type Feed struct {
	Name        string  `json:"name,omitempty"`
	Title       string  `json:"title"`
	Link        string  `json:"link"`
	Description string  `json:"description"`
	Entries     []Entry `json:"entries"`
}

// Article is one entry in the cross-feed latest view. The sort timestamp is
// unexported so it never reaches the caller.
type Article struct {
	Title     string `json:"title"`
	Link      string `json:"link"`
	Summary   string `json:"summary"`
	Published string `json:"published"`
	FeedName  string `json:"feed_name"`
	FeedLink  string `json:"feed_link"`

	sortTime time.Time
}

// Fetcher fetches and normalizes feeds with a bounded per-feed timeout and
// a fan-out limit for the aggregated views.
type Fetcher struct {
	client        *http.Client
	timeout       time.Duration
	maxConcurrent int
}

// NewFetcher creates a fetcher. timeout bounds each feed fetch;
// maxConcurrent bounds the aggregation fan-out.
func NewFetcher(timeout time.Duration, maxConcurrent int) *Fetcher {
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	return &Fetcher{
		client:        &http.Client{Timeout: timeout},
		timeout:       timeout,
		maxConcurrent: maxConcurrent,
	}
}

// Fetch retrieves one feed and returns its metadata plus the newest entries.
// A feed that cannot be fetched or parsed yields an error; the caller treats
// that as "feed unavailable".
func (f *Fetcher) Fetch(ctx context.Context, url string) (*Feed, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	parser := gofeed.NewParser()
	parser.Client = f.client

	parsed, err := parser.ParseURLWithContext(url, ctx)
	if err != nil {
		return nil, err
	}

	feed := &Feed{
		Title:       parsed.Title,
		Link:        parsed.Link,
		Description: parsed.Description,
		Entries:     []Entry{},
	}
	if feed.Title == "" {
		feed.Title = "Unknown Feed"
	}
	if feed.Link == "" {
		feed.Link = url
	}

	for i, item := range parsed.Items {
		if i == entriesPerFeed {
			break
		}
		feed.Entries = append(feed.Entries, Entry{
			Title:     itemTitle(item),
			Link:      item.Link,
			Summary:   summarize(item),
			Published: item.Published,
		})
	}
	return feed, nil
}

// Latest fetches the newest entry of every subscription concurrently and
// returns the most recent articles across all feeds, newest first, capped
// at five. A failing feed is skipped without affecting the others.
func (f *Fetcher) Latest(ctx context.Context, subs []store.FeedSubscription) []Article {
	slots := make([]*Article, len(subs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(f.maxConcurrent)
	for i, sub := range subs {
		g.Go(func() error {
			article, err := f.latestFrom(ctx, sub)
			if err != nil {
				slog.Warn("Skipping unavailable feed", "feed", sub.Name, "error", err)
				return nil
			}
			slots[i] = article
			return nil
		})
	}
	g.Wait() // goroutines never return errors; failures are per-slot

	articles := make([]Article, 0, len(subs))
	for _, a := range slots {
		if a != nil {
			articles = append(articles, *a)
		}
	}

	sort.SliceStable(articles, func(i, j int) bool {
		return articles[i].sortTime.After(articles[j].sortTime)
	})
	if len(articles) > latestLimit {
		articles = articles[:latestLimit]
	}
	return articles
}

func (f *Fetcher) latestFrom(ctx context.Context, sub store.FeedSubscription) (*Article, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	parser := gofeed.NewParser()
	parser.Client = f.client

	parsed, err := parser.ParseURLWithContext(sub.URL, ctx)
	if err != nil {
		return nil, err
	}
	if len(parsed.Items) == 0 {
		return nil, nil
	}

	item := parsed.Items[0]
	feedLink := parsed.Link
	if feedLink == "" {
		feedLink = sub.URL
	}

	return &Article{
		Title:     itemTitle(item),
		Link:      item.Link,
		Summary:   summarize(item),
		Published: item.Published,
		FeedName:  sub.Name,
		FeedLink:  feedLink,
		sortTime:  publicationTime(item),
	}, nil
}

// publicationTime derives the sort timestamp: published date, then updated
// date, then the current time when neither parses.
func publicationTime(item *gofeed.Item) time.Time {
	if item.PublishedParsed != nil {
		return *item.PublishedParsed
	}
	if item.UpdatedParsed != nil {
		return *item.UpdatedParsed
	}
	return time.Now()
}

func itemTitle(item *gofeed.Item) string {
	if item.Title == "" {
		return "Untitled"
	}
	return item.Title
}

// summarize truncates the item summary to the character budget. Non-empty
// summaries always get the trailing ellipsis, matching the legacy view.
func summarize(item *gofeed.Item) string {
	s := item.Description
	if s == "" {
		s = item.Content
	}
	if s == "" {
		return ""
	}
	runes := []rune(s)
	if len(runes) > summaryLimit {
		runes = runes[:summaryLimit]
	}
	return string(runes) + "..."
}
