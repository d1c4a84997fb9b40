// Package store owns the persisted configuration document and the
// operations on its groups, links and feed subscriptions.
package store

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sync"
)

// Store reads and writes the configuration document at a fixed path.
// All writes go through the mutex, so concurrent requests within one
// process cannot interleave a read-modify-write cycle. There is no
// cross-process locking; the last writer wins.
type Store struct {
	path string
	mu   sync.Mutex
}

// New creates a store for the document at path. The file is created on
// first Load if it does not exist.
func New(path string) *Store {
	return &Store{path: path}
}

// Path returns the location of the persisted document.
func (s *Store) Path() string {
	return s.path
}

// Load reads the document. A missing or unparsable file is replaced with
// the default document, which is persisted immediately so the next reader
// sees consistent state.
func (s *Store) Load() (*Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Save overwrites the persisted document in full.
func (s *Store) Save(doc *Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(doc)
}

// Update runs fn against a freshly loaded document and persists the result,
// all under the store lock. If fn returns an error nothing is written.
func (s *Store) Update(fn func(*Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}
	if err := fn(doc); err != nil {
		return err
	}
	return s.save(doc)
}

func (s *Store) load() (*Document, error) {
	data, err := os.ReadFile(s.path)
	if err == nil {
		var doc Document
		if jsonErr := json.Unmarshal(data, &doc); jsonErr == nil {
			doc.normalize()
			return &doc, nil
		}
		slog.Warn("Config document unparsable, regenerating defaults", "path", s.path)
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading config document: %w", err)
	}

	doc := Default()
	if err := s.save(doc); err != nil {
		return nil, fmt.Errorf("writing default config document: %w", err)
	}
	return doc, nil
}

func (s *Store) save(doc *Document) error {
	doc.normalize()
	data, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return fmt.Errorf("marshaling config document: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("writing config document: %w", err)
	}
	return nil
}
