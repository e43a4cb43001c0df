package sqlite

import (
	"net/http"
	"time"
)

// Item is a single key/value pair of the local store
type Item struct {
	Key       string
	Value     string
	UpdatedAt time.Time
}

// Cache is a named response cache
type Cache struct {
	Name      string
	CreatedAt time.Time
}

// CacheEntry is a stored response keyed by request URL within one cache
type CacheEntry struct {
	CacheName  string
	RequestKey string
	Status     int
	Header     http.Header
	Body       []byte
	StoredAt   time.Time
}
