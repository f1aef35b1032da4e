// Package manifest records what each static build wrote, so unchanged pages
// can be skipped and the sitemap can report when a page last changed.
package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tidwall/buntdb"
)

const pagePrefix = "pages:"

// Entry is the manifest record of one route.
type Entry struct {
	Route     string    `json:"route"`
	Hash      string    `json:"hash"`
	Bytes     int       `json:"bytes"`
	BuiltAt   time.Time `json:"built_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Store is a buntdb-backed manifest. Use ":memory:" for a throwaway store.
type Store struct {
	db  *buntdb.DB
	now func() time.Time
}

type Option func(*Store)

// WithClock overrides the time source used for BuiltAt and UpdatedAt.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// Open opens or creates the manifest at path.
func Open(path string, opts ...Option) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		path = ":memory:"
	}
	db, err := buntdb.Open(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: open %s: %w", path, err)
	}
	s := &Store{db: db, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Close flushes and closes the store.
func (s *Store) Close() error {
	return s.db.Close()
}

func key(route string) string { return pagePrefix + route }

// Get returns the entry for route. ok is false when the route was never built.
func (s *Store) Get(route string) (Entry, bool, error) {
	var (
		e  Entry
		ok bool
	)
	err := s.db.View(func(tx *buntdb.Tx) error {
		val, err := tx.Get(key(route))
		if errors.Is(err, buntdb.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		ok = true
		return json.Unmarshal([]byte(val), &e)
	})
	if err != nil {
		return Entry{}, false, fmt.Errorf("manifest: get %s: %w", route, err)
	}
	return e, ok, nil
}

// Put records a build of route with the given content hash. UpdatedAt only
// advances when the hash differs from the stored one. It reports whether the
// content changed.
func (s *Store) Put(route, hash string, size int) (Entry, bool, error) {
	now := s.now().UTC()
	var (
		e       Entry
		changed bool
	)
	err := s.db.Update(func(tx *buntdb.Tx) error {
		e = Entry{Route: route, Hash: hash, Bytes: size, BuiltAt: now, UpdatedAt: now}
		changed = true
		if val, err := tx.Get(key(route)); err == nil {
			var prev Entry
			if err := json.Unmarshal([]byte(val), &prev); err == nil && prev.Hash == hash {
				e.UpdatedAt = prev.UpdatedAt
				changed = false
			}
		} else if !errors.Is(err, buntdb.ErrNotFound) {
			return err
		}
		raw, err := json.Marshal(e)
		if err != nil {
			return err
		}
		_, _, err = tx.Set(key(route), string(raw), nil)
		return err
	})
	if err != nil {
		return Entry{}, false, fmt.Errorf("manifest: put %s: %w", route, err)
	}
	return e, changed, nil
}

// List returns every entry ordered by route.
func (s *Store) List() ([]Entry, error) {
	var out []Entry
	err := s.db.View(func(tx *buntdb.Tx) error {
		var decodeErr error
		err := tx.AscendKeys(pagePrefix+"*", func(_, val string) bool {
			var e Entry
			if decodeErr = json.Unmarshal([]byte(val), &e); decodeErr != nil {
				return false
			}
			out = append(out, e)
			return true
		})
		if err != nil {
			return err
		}
		return decodeErr
	})
	if err != nil {
		return nil, fmt.Errorf("manifest: list: %w", err)
	}
	return out, nil
}

// Prune deletes entries for routes not in keep and returns the removed routes.
func (s *Store) Prune(keep []string) ([]string, error) {
	live := make(map[string]struct{}, len(keep))
	for _, r := range keep {
		live[r] = struct{}{}
	}
	var removed []string
	err := s.db.Update(func(tx *buntdb.Tx) error {
		var stale []string
		err := tx.AscendKeys(pagePrefix+"*", func(k, _ string) bool {
			if _, ok := live[strings.TrimPrefix(k, pagePrefix)]; !ok {
				stale = append(stale, k)
			}
			return true
		})
		if err != nil {
			return err
		}
		for _, k := range stale {
			if _, err := tx.Delete(k); err != nil {
				return err
			}
			removed = append(removed, strings.TrimPrefix(k, pagePrefix))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("manifest: prune: %w", err)
	}
	return removed, nil
}
