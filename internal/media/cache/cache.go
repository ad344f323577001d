// Package cache holds media files loaded at configuration time.
package cache

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	gocache "github.com/patrickmn/go-cache"

	"firestige.xyz/callscript/internal/metrics"
)

const (
	filePrefix   = "file:"
	parsedPrefix = "parsed:"
)

// Store caches media file contents and parsed media descriptors by path.
// Entries never expire; a store lives as long as the loaded action set.
type Store struct {
	items *gocache.Cache
}

// New creates an empty store.
func New() *Store {
	return &Store{
		items: gocache.New(gocache.NoExpiration, 0),
	}
}

// Cache reads filename once and keeps its bytes. Files already cached are
// not read again. Empty files are rejected.
func (s *Store) Cache(filename string) error {
	if _, ok := s.items.Get(filePrefix + filename); ok {
		return nil
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return err
	}
	if len(data) == 0 {
		return fmt.Errorf("bad format: %s is empty", filename)
	}

	s.items.Set(filePrefix+filename, data, gocache.NoExpiration)
	metrics.MediaCachedFiles.Inc()
	slog.Debug("media file cached", "file", filename, "bytes", len(data))
	return nil
}

// Get returns the cached contents of filename.
func (s *Store) Get(filename string) ([]byte, bool) {
	v, ok := s.items.Get(filePrefix + filename)
	if !ok {
		return nil, false
	}
	return v.([]byte), true
}

// Len returns the number of cached files.
func (s *Store) Len() int {
	n := 0
	for k := range s.items.Items() {
		if strings.HasPrefix(k, filePrefix) {
			n++
		}
	}
	return n
}

// SetParsed memoises a parsed representation of filename.
func (s *Store) SetParsed(filename string, v any) {
	s.items.Set(parsedPrefix+filename, v, gocache.NoExpiration)
}

// Parsed returns the memoised representation of filename.
func (s *Store) Parsed(filename string) (any, bool) {
	return s.items.Get(parsedPrefix + filename)
}

// Flush drops every entry.
func (s *Store) Flush() {
	metrics.MediaCachedFiles.Sub(float64(s.Len()))
	s.items.Flush()
}
