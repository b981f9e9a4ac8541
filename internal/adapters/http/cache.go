package web

import (
	"bytes"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"fringe/internal/adapters/metrics"
)

// responseCache is an in-memory TTL cache for expensive GET responses.
// Concurrent identical requests share one computation via singleflight.
type responseCache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
	group   singleflight.Group
	ttl     time.Duration
	now     func() time.Time
}

type cacheEntry struct {
	status    int
	body      []byte
	expiresAt time.Time
}

// newResponseCache creates a cache with the given TTL.
func newResponseCache(ttl time.Duration) *responseCache {
	return &responseCache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// cacheKey canonicalises the request URL so query-order variants share an entry.
func cacheKey(r *http.Request) string {
	q := r.URL.Query()
	keys := make([]string, 0, len(q))
	for k := range q {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(r.URL.Path)
	for _, k := range keys {
		vals := q[k]
		sort.Strings(vals)
		for _, v := range vals {
			b.WriteByte('&')
			b.WriteString(k)
			b.WriteByte('=')
			b.WriteString(v)
		}
	}
	return b.String()
}

// Wrap serves GETs from cache, computing a miss at most once per key.
// PRE: next writes a complete response
// POST: Responses are cached for the TTL; only 200s are stored
// INVARIANT: Concurrent identical misses run next exactly once
func (c *responseCache) Wrap(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := cacheKey(r)

		c.mu.RLock()
		entry, ok := c.entries[key]
		c.mu.RUnlock()
		if ok && c.now().Before(entry.expiresAt) {
			metrics.CacheRequests.WithLabelValues("hit").Inc()
			writeCached(w, entry)
			return
		}
		metrics.CacheRequests.WithLabelValues("miss").Inc()

		result, err, _ := c.group.Do(key, func() (any, error) {
			rec := &responseRecorder{status: http.StatusOK}
			next(rec, r)
			entry := cacheEntry{
				status:    rec.status,
				body:      rec.body.Bytes(),
				expiresAt: c.now().Add(c.ttl),
			}
			if rec.status == http.StatusOK {
				c.mu.Lock()
				c.entries[key] = entry
				c.mu.Unlock()
			}
			return entry, nil
		})
		if err != nil {
			internalError(w, err)
			return
		}
		writeCached(w, result.(cacheEntry))
	}
}

// Invalidate drops every cached entry. Mutation handlers can call this
// when bounded staleness is not acceptable.
func (c *responseCache) Invalidate() {
	c.mu.Lock()
	c.entries = make(map[string]cacheEntry)
	c.mu.Unlock()
}

func writeCached(w http.ResponseWriter, entry cacheEntry) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(entry.status)
	_, _ = w.Write(entry.body)
}

// responseRecorder captures a handler's response for caching.
type responseRecorder struct {
	status int
	body   bytes.Buffer
	header http.Header
}

func (r *responseRecorder) Header() http.Header {
	if r.header == nil {
		r.header = make(http.Header)
	}
	return r.header
}

func (r *responseRecorder) WriteHeader(status int) {
	r.status = status
}

func (r *responseRecorder) Write(b []byte) (int, error) {
	return r.body.Write(b)
}
