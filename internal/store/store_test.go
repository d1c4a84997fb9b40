package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return New(filepath.Join(t.TempDir(), "config.json"))
}

func TestLoadCreatesDefaultDocument(t *testing.T) {
	s := newTestStore(t)

	doc, err := s.Load()
	if err != nil {
		t.Fatalf("Load on missing file: %v", err)
	}
	if doc.Admin.Username != "admin" || doc.Admin.Password != "admin" {
		t.Errorf("unexpected default admin: %+v", doc.Admin)
	}
	if doc.DashboardTitle != "My Dashboard" {
		t.Errorf("unexpected default title: %q", doc.DashboardTitle)
	}
	if len(doc.Groups) != 0 || len(doc.RSSFeeds) != 0 {
		t.Errorf("default document not empty: %+v", doc)
	}

	// The default must have been persisted immediately.
	if _, err := os.Stat(s.Path()); err != nil {
		t.Fatalf("default document not written: %v", err)
	}
}

func TestLoadSelfHealsCorruptDocument(t *testing.T) {
	s := newTestStore(t)
	if err := os.WriteFile(s.Path(), []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	doc, err := s.Load()
	if err != nil {
		t.Fatalf("Load on corrupt file: %v", err)
	}
	if doc.Admin.Username != "admin" {
		t.Errorf("expected default document, got %+v", doc)
	}

	// The healed file must parse on the next read.
	data, err := os.ReadFile(s.Path())
	if err != nil {
		t.Fatal(err)
	}
	var reread Document
	if err := json.Unmarshal(data, &reread); err != nil {
		t.Fatalf("healed document unparsable: %v", err)
	}
}

func TestRoundTripPreservesOrderAndFields(t *testing.T) {
	s := newTestStore(t)
	icon := "wiki.png"
	doc := Default()
	doc.DashboardTitle = "Homelab"
	doc.APIKeys = APIKeys{OpenAI: "sk-1", Gemini: "gm-2"}
	doc.Groups = []Group{
		{Name: "Tools", Icon: "wrench", Links: []Link{
			{Name: "Wiki", URL: "http://wiki", Description: "docs", Icon: &icon},
			{Name: "Docs", URL: "http://docs"},
		}},
		{Name: "Media", Links: []Link{}},
	}
	doc.RSSFeeds = []FeedSubscription{
		{Name: "HN", URL: "http://hn/rss"},
		{Name: "Lobsters", URL: "http://lob/rss"},
	}

	if err := s.Save(doc); err != nil {
		t.Fatalf("Save: %v", err)
	}
	loaded, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(doc, loaded) {
		t.Errorf("round trip mismatch:\nsaved:  %+v\nloaded: %+v", doc, loaded)
	}

	// Saving the loaded document with no mutation must not change it.
	if err := s.Save(loaded); err != nil {
		t.Fatalf("second Save: %v", err)
	}
	again, err := s.Load()
	if err != nil {
		t.Fatalf("second Load: %v", err)
	}
	if !reflect.DeepEqual(loaded, again) {
		t.Errorf("save(load()) not stable")
	}
}

func TestUpdateAbortsWithoutSaving(t *testing.T) {
	s := newTestStore(t)
	if err := s.Update(func(doc *Document) error {
		return doc.AddGroup("Tools", "")
	}); err != nil {
		t.Fatalf("Update: %v", err)
	}

	err := s.Update(func(doc *Document) error {
		return doc.AddGroup("tools", "") // duplicate, must abort
	})
	if err == nil {
		t.Fatal("expected duplicate error")
	}

	doc, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(doc.Groups) != 1 {
		t.Errorf("failed update was persisted: %d groups", len(doc.Groups))
	}
}

func TestNilSlicesSerializeAsArrays(t *testing.T) {
	s := newTestStore(t)
	doc := &Document{Admin: AdminCredentials{Username: "admin", Password: "admin"}}
	if err := s.Save(doc); err != nil {
		t.Fatalf("Save: %v", err)
	}

	data, err := os.ReadFile(s.Path())
	if err != nil {
		t.Fatal(err)
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"groups", "rss_feeds"} {
		if string(raw[key]) == "null" {
			t.Errorf("%s serialized as null, want []", key)
		}
	}
}
