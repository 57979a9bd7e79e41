// Package indexcache memoizes relationship indexes by the content of the uploaded file.
//
// The key is the SHA-256 of the raw bytes plus the declared file type, so the same
// upload always maps to the same dataset ID and is decoded and indexed only once per
// process. Entries live for the lifetime of the process; there is no eviction.
package indexcache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/JustUsingaWebsite/carrier-relations/backend/internal/relindex"
	"github.com/JustUsingaWebsite/carrier-relations/backend/internal/tableio"
)

// ErrDatasetNotFound is returned by Get for unknown IDs.
var ErrDatasetNotFound = errors.New("dataset not found")

// Dataset is one indexed upload. Index is shared and must not be mutated.
type Dataset struct {
	ID       string           `json:"id"`
	Type     tableio.FileType `json:"type"`
	Size     int              `json:"size"`
	LoadedAt time.Time        `json:"loaded_at"`
	Index    *relindex.Index  `json:"-"`
}

// BuildFunc decodes and indexes raw bytes.
type BuildFunc func(raw []byte, ft tableio.FileType) (*relindex.Index, error)

// DefaultBuild decodes with tableio and indexes with relindex.
func DefaultBuild(raw []byte, ft tableio.FileType) (*relindex.Index, error) {
	tbl, err := tableio.Decode(raw, ft)
	if err != nil {
		return nil, err
	}
	return relindex.BuildIndex(tbl)
}

// Observer receives cache events, e.g. for metrics.
type Observer interface {
	ObserveLookup(hit bool)
	ObserveBuild(ft tableio.FileType, d time.Duration, ix *relindex.Index, err error)
}

// Option configures a Cache.
type Option func(*Cache)

// WithBuilder replaces DefaultBuild.
func WithBuilder(b BuildFunc) Option {
	return func(c *Cache) { c.build = b }
}

// WithObserver registers an Observer.
func WithObserver(o Observer) Option {
	return func(c *Cache) { c.observer = o }
}

// Stats is a snapshot of cache counters.
type Stats struct {
	Entries int   `json:"entries"`
	Hits    int64 `json:"hits"`
	Misses  int64 `json:"misses"`
	Builds  int64 `json:"builds"`
	Errors  int64 `json:"errors"`
}

// Cache is safe for concurrent use.
type Cache struct {
	mu       sync.RWMutex
	entries  map[string]*Dataset
	aliases  map[string]string
	flight   singleflight.Group
	build    BuildFunc
	observer Observer

	hits   int64
	misses int64
	builds int64
	errors int64
}

// New creates an empty cache.
func New(opts ...Option) *Cache {
	c := &Cache{
		entries: make(map[string]*Dataset),
		aliases: make(map[string]string),
		build:   DefaultBuild,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Key returns the dataset ID for raw bytes of type ft.
func Key(raw []byte, ft tableio.FileType) string {
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:]) + "-" + string(ft)
}

// Load returns the dataset for raw, building it on first sight. Concurrent loads of
// the same content share a single build. Failed builds are not cached.
// The bool result reports whether the dataset was already cached.
func (c *Cache) Load(ctx context.Context, raw []byte, ft tableio.FileType) (*Dataset, bool, error) {
	id := Key(raw, ft)

	c.mu.RLock()
	ds, ok := c.entries[id]
	c.mu.RUnlock()
	if ok {
		atomic.AddInt64(&c.hits, 1)
		c.observeLookup(true)
		return ds, true, nil
	}
	atomic.AddInt64(&c.misses, 1)
	c.observeLookup(false)

	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	v, err, _ := c.flight.Do(id, func() (interface{}, error) {
		c.mu.RLock()
		existing, ok := c.entries[id]
		c.mu.RUnlock()
		if ok {
			return existing, nil
		}

		start := time.Now()
		ix, err := c.build(raw, ft)
		atomic.AddInt64(&c.builds, 1)
		if c.observer != nil {
			c.observer.ObserveBuild(ft, time.Since(start), ix, err)
		}
		if err != nil {
			atomic.AddInt64(&c.errors, 1)
			return nil, err
		}

		ds := &Dataset{
			ID:       id,
			Type:     ft,
			Size:     len(raw),
			LoadedAt: time.Now().UTC(),
			Index:    ix,
		}
		c.mu.Lock()
		c.entries[id] = ds
		c.mu.Unlock()
		return ds, nil
	})
	if err != nil {
		return nil, false, err
	}
	return v.(*Dataset), false, nil
}

// Get returns a cached dataset by ID or alias.
func (c *Cache) Get(id string) (*Dataset, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if target, ok := c.aliases[id]; ok {
		id = target
	}
	ds, ok := c.entries[id]
	if !ok {
		return nil, ErrDatasetNotFound
	}
	return ds, nil
}

// Alias makes name resolve to the dataset id in Get.
func (c *Cache) Alias(name, id string) {
	c.mu.Lock()
	c.aliases[name] = id
	c.mu.Unlock()
}

// Stats returns current counters.
func (c *Cache) Stats() Stats {
	c.mu.RLock()
	n := len(c.entries)
	c.mu.RUnlock()
	return Stats{
		Entries: n,
		Hits:    atomic.LoadInt64(&c.hits),
		Misses:  atomic.LoadInt64(&c.misses),
		Builds:  atomic.LoadInt64(&c.builds),
		Errors:  atomic.LoadInt64(&c.errors),
	}
}

func (c *Cache) observeLookup(hit bool) {
	if c.observer != nil {
		c.observer.ObserveLookup(hit)
	}
}
