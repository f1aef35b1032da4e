package manifest

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func openMemory(t *testing.T, clock *fakeClock) *Store {
	t.Helper()
	s, err := Open(":memory:", WithClock(clock.now))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestPutAdvancesUpdatedAtOnlyOnChange(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{t: time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)}
	s := openMemory(t, clock)

	e, changed, err := s.Put("/a/", "h1", 100)
	require.NoError(t, err)
	assert.True(t, changed)
	first := e.UpdatedAt

	clock.t = clock.t.Add(time.Hour)
	e, changed, err = s.Put("/a/", "h1", 100)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.True(t, first.Equal(e.UpdatedAt))
	assert.True(t, clock.t.Equal(e.BuiltAt))

	clock.t = clock.t.Add(time.Hour)
	e, changed, err = s.Put("/a/", "h2", 120)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.True(t, clock.t.Equal(e.UpdatedAt))

	got, ok, err := s.Get("/a/")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "h2", got.Hash)
	assert.Equal(t, 120, got.Bytes)
}

func TestGetMissing(t *testing.T) {
	t.Parallel()

	s := openMemory(t, &fakeClock{t: time.Unix(0, 0)})
	_, ok, err := s.Get("/missing/")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestListAndPrune(t *testing.T) {
	t.Parallel()

	s := openMemory(t, &fakeClock{t: time.Unix(1700000000, 0)})
	for _, r := range []string{"/b/", "/", "/a/"} {
		_, _, err := s.Put(r, "same", 1)
		require.NoError(t, err)
	}
	_, _, err := s.Put("/c/", "other", 1)
	require.NoError(t, err)

	entries, err := s.List()
	require.NoError(t, err)
	routes := make([]string, 0, len(entries))
	for _, e := range entries {
		routes = append(routes, e.Route)
	}
	assert.Equal(t, []string{"/", "/a/", "/b/", "/c/"}, routes)

	removed, err := s.Prune([]string{"/", "/a/"})
	require.NoError(t, err)
	assert.Equal(t, []string{"/b/", "/c/"}, removed)
	entries, err = s.List()
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestStorePersistsToFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "manifest.db")
	s, err := Open(path)
	require.NoError(t, err)
	_, _, err = s.Put("/a/", "h", 3)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()
	e, ok, err := s.Get("/a/")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "h", e.Hash)
}
