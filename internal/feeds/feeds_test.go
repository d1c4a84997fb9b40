package feeds

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/mightywomble/linksdashboard/internal/store"
)

func rssServer(t *testing.T, title string, items ...string) *httptest.Server {
	t.Helper()
	body := fmt.Sprintf(`<?xml version="1.0"?>
<rss version="2.0"><channel>
<title>%s</title>
<link>http://example.com</link>
<description>test feed</description>
%s
</channel></rss>`, title, strings.Join(items, "\n"))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		fmt.Fprint(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func rssItem(title, pubDate, description string) string {
	return fmt.Sprintf(`<item><title>%s</title><link>http://example.com/%s</link><pubDate>%s</pubDate><description>%s</description></item>`,
		title, title, pubDate, description)
}

func TestFetchCapsEntriesAtThree(t *testing.T) {
	srv := rssServer(t, "Busy Feed",
		rssItem("one", "Mon, 02 Jan 2023 15:04:05 GMT", "first"),
		rssItem("two", "Sun, 01 Jan 2023 15:04:05 GMT", "second"),
		rssItem("three", "Sat, 31 Dec 2022 15:04:05 GMT", "third"),
		rssItem("four", "Fri, 30 Dec 2022 15:04:05 GMT", "fourth"),
	)

	f := NewFetcher(5*time.Second, 4)
	feed, err := f.Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if feed.Title != "Busy Feed" {
		t.Errorf("title = %q", feed.Title)
	}
	if len(feed.Entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(feed.Entries))
	}
	if feed.Entries[0].Title != "one" {
		t.Errorf("entry order changed: %+v", feed.Entries)
	}
}

func TestFetchTruncatesSummaries(t *testing.T) {
	long := strings.Repeat("x", 400)
	srv := rssServer(t, "Feed", rssItem("long", "Mon, 02 Jan 2023 15:04:05 GMT", long))

	f := NewFetcher(5*time.Second, 4)
	feed, err := f.Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	got := feed.Entries[0].Summary
	if len([]rune(got)) != summaryLimit+3 {
		t.Errorf("summary length = %d, want %d", len([]rune(got)), summaryLimit+3)
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("summary missing ellipsis: %q", got)
	}
}

func TestFetchUnavailableFeed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	f := NewFetcher(5*time.Second, 4)
	if _, err := f.Fetch(context.Background(), srv.URL); err == nil {
		t.Error("expected error for failing feed")
	}
}

func TestLatestSortsNewestFirst(t *testing.T) {
	oldSrv := rssServer(t, "Old", rssItem("t1", "Mon, 02 Jan 2023 10:00:00 GMT", "a"))
	midSrv := rssServer(t, "Mid", rssItem("t2", "Mon, 02 Jan 2023 11:00:00 GMT", "b"))
	newSrv := rssServer(t, "New", rssItem("t3", "Mon, 02 Jan 2023 12:00:00 GMT", "c"))

	subs := []store.FeedSubscription{
		{Name: "old", URL: oldSrv.URL},
		{Name: "new", URL: newSrv.URL},
		{Name: "mid", URL: midSrv.URL},
	}

	f := NewFetcher(5*time.Second, 2)
	articles := f.Latest(context.Background(), subs)
	if len(articles) != 3 {
		t.Fatalf("expected 3 articles, got %d", len(articles))
	}
	want := []string{"t3", "t2", "t1"}
	for i, a := range articles {
		if a.Title != want[i] {
			t.Errorf("position %d: got %q, want %q", i, a.Title, want[i])
		}
	}
	if articles[0].FeedName != "new" {
		t.Errorf("feed name not attached: %+v", articles[0])
	}
}

func TestLatestSkipsFailingFeed(t *testing.T) {
	good := rssServer(t, "Good", rssItem("ok", "Mon, 02 Jan 2023 10:00:00 GMT", "a"))
	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	t.Cleanup(bad.Close)

	subs := []store.FeedSubscription{
		{Name: "bad", URL: bad.URL},
		{Name: "good", URL: good.URL},
	}

	f := NewFetcher(5*time.Second, 2)
	articles := f.Latest(context.Background(), subs)
	if len(articles) != 1 || articles[0].FeedName != "good" {
		t.Fatalf("failing feed not isolated: %+v", articles)
	}
}

func TestLatestCapsAtFive(t *testing.T) {
	subs := make([]store.FeedSubscription, 7)
	for i := range subs {
		srv := rssServer(t, fmt.Sprintf("F%d", i),
			rssItem(fmt.Sprintf("a%d", i), fmt.Sprintf("Mon, 02 Jan 2023 %02d:00:00 GMT", 10+i), "x"))
		subs[i] = store.FeedSubscription{Name: fmt.Sprintf("f%d", i), URL: srv.URL}
	}

	f := NewFetcher(5*time.Second, 4)
	articles := f.Latest(context.Background(), subs)
	if len(articles) != 5 {
		t.Fatalf("expected cap of 5, got %d", len(articles))
	}
	if articles[0].Title != "a6" {
		t.Errorf("newest article first, got %q", articles[0].Title)
	}
}

func TestLatestFallsBackToNowWithoutDates(t *testing.T) {
	srv := rssServer(t, "NoDates",
		`<item><title>undated</title><link>http://example.com/u</link><description>d</description></item>`)

	f := NewFetcher(5*time.Second, 1)
	before := time.Now()
	articles := f.Latest(context.Background(), []store.FeedSubscription{{Name: "nd", URL: srv.URL}})
	if len(articles) != 1 {
		t.Fatalf("expected 1 article, got %d", len(articles))
	}
	if articles[0].sortTime.Before(before) {
		t.Errorf("fallback timestamp not current: %v", articles[0].sortTime)
	}
}
