// Package cache keeps fetched pages in memory for the lifetime of a run.
// Team resolution can touch the same squad page more than once; the cache
// makes the second look free instead of costing another rate-limited
// request.
package cache

import (
	"container/list"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/fieldstats/matchlog/pkg/models"
)

// Cache stores fetched pages keyed by URL.
type Cache interface {
	// Get returns the cached page for the URL and whether it was found.
	Get(url string) (*models.Page, bool)

	// Set stores a page with the given TTL, evicting old entries if the
	// size budget is exceeded.
	Set(url string, page *models.Page, ttl time.Duration)

	// Close releases any resources held by the cache.
	Close()
}

type entry struct {
	page      *models.Page
	expiresAt time.Time
	url       string
}

// PageCache is an in-memory LRU cache bounded by total HTML size.
type PageCache struct {
	mu      sync.Mutex
	store   map[string]*list.Element
	lru     *list.List
	maxSize int64
	size    int64
}

// NewPageCache creates a cache holding up to maxSizeBytes of page HTML.
func NewPageCache(maxSizeBytes int64) *PageCache {
	if maxSizeBytes <= 0 {
		maxSizeBytes = 16 * 1024 * 1024
	}
	return &PageCache{
		store:   make(map[string]*list.Element),
		lru:     list.New(),
		maxSize: maxSizeBytes,
	}
}

func (pc *PageCache) Get(url string) (*models.Page, bool) {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	elem, ok := pc.store[url]
	if !ok {
		return nil, false
	}

	ent := elem.Value.(*entry)
	if time.Now().After(ent.expiresAt) {
		pc.remove(elem)
		return nil, false
	}

	pc.lru.MoveToFront(elem)
	log.Debug().Str("url", url).Msg("Page cache hit")
	return ent.page, true
}

func (pc *PageCache) Set(url string, page *models.Page, ttl time.Duration) {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}

	pc.mu.Lock()
	defer pc.mu.Unlock()

	if elem, ok := pc.store[url]; ok {
		pc.remove(elem)
	}

	size := pageSize(page)
	for pc.size+size > pc.maxSize && pc.lru.Len() > 0 {
		pc.remove(pc.lru.Back())
	}

	elem := pc.lru.PushFront(&entry{
		page:      page,
		expiresAt: time.Now().Add(ttl),
		url:       url,
	})
	pc.store[url] = elem
	pc.size += size
}

func (pc *PageCache) Close() {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	pc.store = make(map[string]*list.Element)
	pc.lru = list.New()
	pc.size = 0
}

// remove must be called with the lock held.
func (pc *PageCache) remove(elem *list.Element) {
	ent := elem.Value.(*entry)
	pc.lru.Remove(elem)
	delete(pc.store, ent.url)
	pc.size -= pageSize(ent.page)
}

func pageSize(page *models.Page) int64 {
	// HTML dominates; struct overhead is rounded up to 1KB.
	return int64(len(page.HTML)) + 1024
}
