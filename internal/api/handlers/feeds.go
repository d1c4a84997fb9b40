package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mightywomble/linksdashboard/internal/feeds"
	"github.com/mightywomble/linksdashboard/internal/store"
)

// FeedsHandler manages feed subscriptions and serves the aggregated views.
// The read-only views are public; subscription changes are admin-gated at
// the router.
type FeedsHandler struct {
	store   *store.Store
	fetcher *feeds.Fetcher
}

func NewFeedsHandler(st *store.Store, fetcher *feeds.Fetcher) *FeedsHandler {
	return &FeedsHandler{store: st, fetcher: fetcher}
}

// Add subscribes to a feed after verifying the URL actually serves one.
func (h *FeedsHandler) Add(c *gin.Context) {
	name := c.PostForm("feed_name")
	url := c.PostForm("feed_url")

	if name == "" || url == "" {
		setFlash(c, "danger", "Feed Name and URL are required fields.")
		redirectSettings(c)
		return
	}

	doc, err := h.store.Load()
	if err != nil {
		webError(c, err)
		return
	}
	for _, f := range doc.RSSFeeds {
		if strings.EqualFold(f.Name, name) {
			setFlash(c, "danger", "A feed with this name already exists.")
			redirectSettings(c)
			return
		}
	}

	if _, err := h.fetcher.Fetch(c.Request.Context(), url); err != nil {
		setFlash(c, "danger", "Unable to fetch RSS feed. Please check the URL.")
		redirectSettings(c)
		return
	}

	err = h.store.Update(func(doc *store.Document) error {
		return doc.AddFeed(name, url)
	})
	switch {
	case errors.Is(err, store.ErrDuplicateName):
		setFlash(c, "danger", "A feed with this name already exists.")
	case err != nil:
		webError(c, err)
		return
	default:
		setFlash(c, "success", fmt.Sprintf("RSS Feed %q has been added.", name))
	}
	redirectSettings(c)
}

// Delete unsubscribes every feed matching the name exactly.
func (h *FeedsHandler) Delete(c *gin.Context) {
	name := c.PostForm("feed_name")

	var removed bool
	err := h.store.Update(func(doc *store.Document) error {
		removed = doc.DeleteFeed(name)
		return nil
	})
	if err != nil {
		webError(c, err)
		return
	}

	if removed {
		setFlash(c, "success", fmt.Sprintf("RSS Feed %q has been deleted.", name))
	} else {
		setFlash(c, "danger", fmt.Sprintf("RSS Feed %q not found.", name))
	}
	redirectSettings(c)
}

// GetFeeds returns every subscribed feed with its newest entries. A feed
// that cannot be fetched is skipped rather than failing the whole view.
func (h *FeedsHandler) GetFeeds(c *gin.Context) {
	doc, err := h.store.Load()
	if err != nil {
		apiError(c, err)
		return
	}

	results := make([]feeds.Feed, 0, len(doc.RSSFeeds))
	for _, sub := range doc.RSSFeeds {
		feed, err := h.fetcher.Fetch(c.Request.Context(), sub.URL)
		if err != nil {
			continue
		}
		feed.Name = sub.Name
		results = append(results, *feed)
	}
	c.JSON(http.StatusOK, gin.H{"feeds": results})
}

// GetFeedPage returns one subscribed feed by its position, for the paginated
// detail view.
func (h *FeedsHandler) GetFeedPage(c *gin.Context) {
	page, err := strconv.Atoi(c.Param("page"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid page number"})
		return
	}

	doc, err := h.store.Load()
	if err != nil {
		apiError(c, err)
		return
	}
	if page < 0 || page >= len(doc.RSSFeeds) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid page number"})
		return
	}

	sub := doc.RSSFeeds[page]
	feed, err := h.fetcher.Fetch(c.Request.Context(), sub.URL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch feed"})
		return
	}
	feed.Name = sub.Name

	c.JSON(http.StatusOK, gin.H{
		"feed":         feed,
		"total_feeds":  len(doc.RSSFeeds),
		"current_page": page,
	})
}

// GetLatestArticles returns the newest article from each subscription,
// newest first, capped at five.
func (h *FeedsHandler) GetLatestArticles(c *gin.Context) {
	doc, err := h.store.Load()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch latest articles", "articles": []feeds.Article{}})
		return
	}

	articles := h.fetcher.Latest(c.Request.Context(), doc.RSSFeeds)
	c.JSON(http.StatusOK, gin.H{"articles": articles})
}
