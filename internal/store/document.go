package store

import "time"

// Document is the single persisted configuration document. The JSON field
// names match the legacy config.json layout, so existing files load as-is.
type Document struct {
	Admin          AdminCredentials   `json:"admin"`
	Groups         []Group            `json:"groups"`
	APIKeys        APIKeys            `json:"api_keys"`
	DashboardTitle string             `json:"dashboard_title"`
	RSSFeeds       []FeedSubscription `json:"rss_feeds"`
}

// AdminCredentials holds the single admin account. The password is stored in
// plaintext; the document format predates this implementation and is kept
// compatible.
type AdminCredentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// APIKeys holds the AI provider keys used by the chat proxy.
type APIKeys struct {
	OpenAI string `json:"openai_api_key"`
	Gemini string `json:"gemini_api_key"`
}

// Group is a named, ordered collection of links. Slice order is display
// order.
type Group struct {
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Links []Link `json:"links"`
}

// Link is a single dashboard entry. Icon is nil when no icon was uploaded.
type Link struct {
	Name        string  `json:"name"`
	URL         string  `json:"url"`
	Description string  `json:"description"`
	Icon        *string `json:"icon"`
}

// FeedSubscription is a tracked RSS/Atom source. LastFetched is persisted
// for compatibility but never updated.
type FeedSubscription struct {
	Name        string     `json:"name"`
	URL         string     `json:"url"`
	LastFetched *time.Time `json:"last_fetched"`
}

// Default returns the document written when no config file exists or the
// existing one cannot be parsed.
func Default() *Document {
	return &Document{
		Admin:          AdminCredentials{Username: "admin", Password: "admin"},
		Groups:         []Group{},
		APIKeys:        APIKeys{},
		DashboardTitle: "My Dashboard",
		RSSFeeds:       []FeedSubscription{},
	}
}

// normalize replaces nil slices left by partial documents so that saves
// serialize them as empty arrays, not null.
func (d *Document) normalize() {
	if d.Groups == nil {
		d.Groups = []Group{}
	}
	for i := range d.Groups {
		if d.Groups[i].Links == nil {
			d.Groups[i].Links = []Link{}
		}
	}
	if d.RSSFeeds == nil {
		d.RSSFeeds = []FeedSubscription{}
	}
}
