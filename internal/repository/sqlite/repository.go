package sqlite

import (
	"context"
	"database/sql"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"futurtask/internal/errors"
	"futurtask/internal/repository/sqlite/migrations"

	_ "modernc.org/sqlite"
)

// KeyValueStore is the local key/value store holding JSON blobs
type KeyValueStore interface {
	GetItem(ctx context.Context, key string) (*Item, error)
	SetItem(ctx context.Context, key, value string) error
	RemoveItem(ctx context.Context, key string) error
	ListKeys(ctx context.Context, prefix string) ([]string, error)
}

// CacheStorage stores named caches of HTTP responses
type CacheStorage interface {
	ListCaches(ctx context.Context) ([]*Cache, error)
	DeleteCache(ctx context.Context, name string) (bool, error)
	MatchAny(ctx context.Context, requestKey string) (*CacheEntry, error)
	Put(ctx context.Context, entry *CacheEntry) error
	PutAll(ctx context.Context, cacheName string, entries []*CacheEntry) error
	Keys(ctx context.Context, cacheName string) ([]string, error)
}

// Repository defines the interface for database operations
type Repository interface {
	KeyValueStore
	CacheStorage

	// Utility
	Close() error
}

// Options tunes a repository opened with NewWithOptions
type Options struct {
	QueryTimeout   time.Duration
	WriteTimeout   time.Duration
	DirPermissions os.FileMode
}

// SQLiteRepository implements the Repository interface
type SQLiteRepository struct {
	db   *sql.DB
	opts Options
}

// timeNow is replaceable in tests
var timeNow = time.Now

// New creates a new SQLite repository instance
func New(dbPath string) (*SQLiteRepository, error) {
	return NewWithOptions(dbPath, Options{})
}

// NewWithOptions creates a repository, creating the parent directory of
// dbPath when needed, and runs pending migrations.
func NewWithOptions(dbPath string, opts Options) (*SQLiteRepository, error) {
	if dbPath != ":memory:" {
		perms := opts.DirPermissions
		if perms == 0 {
			perms = 0o755
		}
		if err := os.MkdirAll(filepath.Dir(dbPath), perms); err != nil {
			return nil, errors.NewStorageError("create database directory", err)
		}
	}

	db, err := sql.Open("sqlite", sqliteDSN(dbPath))
	if err != nil {
		return nil, errors.NewStorageError("open database", err)
	}
	// One connection keeps :memory: databases shared and serialises writers.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, errors.NewStorageError("enable foreign keys", err)
	}

	if err := migrations.RunMigrations(db); err != nil {
		db.Close()
		return nil, errors.NewStorageError("run migrations", err)
	}

	return &SQLiteRepository{db: db, opts: opts}, nil
}

func sqliteDSN(path string) string {
	if path == ":memory:" || strings.HasPrefix(path, "file:") {
		return path
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	u := url.URL{Scheme: "file", Path: path}
	q := u.Query()
	q.Set("mode", "rwc")
	q.Set("_pragma", "busy_timeout(5000)")
	u.RawQuery = q.Encode()
	return u.String()
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepository) readCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.opts.QueryTimeout > 0 {
		return context.WithTimeout(ctx, r.opts.QueryTimeout)
	}
	return ctx, func() {}
}

func (r *SQLiteRepository) writeCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.opts.WriteTimeout > 0 {
		return context.WithTimeout(ctx, r.opts.WriteTimeout)
	}
	return ctx, func() {}
}

// GetItem retrieves a value by key. A missing key is a not-found error.
func (r *SQLiteRepository) GetItem(ctx context.Context, key string) (*Item, error) {
	ctx, cancel := r.readCtx(ctx)
	defer cancel()

	query := `SELECT key, value, updated_at FROM kv_store WHERE key = ?`
	return QuerySingle(ctx, r.db, query, ScanItem, "item", key, key)
}

// SetItem stores value under key, replacing any previous value
func (r *SQLiteRepository) SetItem(ctx context.Context, key, value string) error {
	ctx, cancel := r.writeCtx(ctx)
	defer cancel()

	query := `
	INSERT INTO kv_store (key, value, updated_at) VALUES (?, ?, ?)
	ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`
	return Execute(ctx, r.db, query, key, value, FormatTimeForDB(timeNow()))
}

// RemoveItem deletes key. Removing an absent key is not an error.
func (r *SQLiteRepository) RemoveItem(ctx context.Context, key string) error {
	ctx, cancel := r.writeCtx(ctx)
	defer cancel()

	return Execute(ctx, r.db, `DELETE FROM kv_store WHERE key = ?`, key)
}

// ListKeys returns the stored keys starting with prefix, in key order
func (r *SQLiteRepository) ListKeys(ctx context.Context, prefix string) ([]string, error) {
	ctx, cancel := r.readCtx(ctx)
	defer cancel()

	query := `SELECT key, value, updated_at FROM kv_store WHERE substr(key, 1, ?) = ? ORDER BY key ASC`
	items, err := QueryMultiple(ctx, r.db, query, ScanItems, "items", len(prefix), prefix)
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(items))
	for _, item := range items {
		keys = append(keys, item.Key)
	}
	return keys, nil
}

// ListCaches returns every cache in the order it was opened
func (r *SQLiteRepository) ListCaches(ctx context.Context) ([]*Cache, error) {
	ctx, cancel := r.readCtx(ctx)
	defer cancel()

	query := `SELECT name, created_at FROM caches ORDER BY rowid ASC`
	return QueryMultiple(ctx, r.db, query, ScanCaches, "caches")
}

// openCache creates the named cache if it does not exist
func openCache(ctx context.Context, db execer, name string) error {
	query := `INSERT OR IGNORE INTO caches (name, created_at) VALUES (?, ?)`
	return Execute(ctx, db, query, name, FormatTimeForDB(timeNow()))
}

// DeleteCache removes the named cache and its entries. It reports whether the cache existed.
func (r *SQLiteRepository) DeleteCache(ctx context.Context, name string) (bool, error) {
	ctx, cancel := r.writeCtx(ctx)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, HandleDatabaseError("begin transaction", err)
	}
	defer tx.Rollback()

	if err := Execute(ctx, tx, `DELETE FROM cache_entries WHERE cache_name = ?`, name); err != nil {
		return false, err
	}

	err = ExecuteWithRowsAffected(ctx, tx, `DELETE FROM caches WHERE name = ?`, "cache", name, name)
	if IsNotFound(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if err := tx.Commit(); err != nil {
		return false, HandleDatabaseError("commit transaction", err)
	}
	return true, nil
}

// MatchAny looks up a response across all caches, oldest cache first
func (r *SQLiteRepository) MatchAny(ctx context.Context, requestKey string) (*CacheEntry, error) {
	ctx, cancel := r.readCtx(ctx)
	defer cancel()

	query := `
	SELECT e.cache_name, e.request_key, e.status, e.header_json, e.body, e.stored_at
	FROM cache_entries e
	JOIN caches c ON c.name = e.cache_name
	WHERE e.request_key = ?
	ORDER BY c.rowid ASC
	LIMIT 1`
	return QuerySingle(ctx, r.db, query, ScanCacheEntry, "cache entry", requestKey, requestKey)
}

// Put stores one response, creating its cache when needed
func (r *SQLiteRepository) Put(ctx context.Context, entry *CacheEntry) error {
	return r.PutAll(ctx, entry.CacheName, []*CacheEntry{entry})
}

// PutAll stores every entry in cacheName in a single transaction; either all
// entries are stored or none are.
func (r *SQLiteRepository) PutAll(ctx context.Context, cacheName string, entries []*CacheEntry) error {
	ctx, cancel := r.writeCtx(ctx)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return HandleDatabaseError("begin transaction", err)
	}
	defer tx.Rollback()

	if err := openCache(ctx, tx, cacheName); err != nil {
		return err
	}

	query := `
	INSERT INTO cache_entries (cache_name, request_key, status, header_json, body, stored_at)
	VALUES (?, ?, ?, ?, ?, ?)
	ON CONFLICT(cache_name, request_key) DO UPDATE SET
		status = excluded.status,
		header_json = excluded.header_json,
		body = excluded.body,
		stored_at = excluded.stored_at`

	now := timeNow()
	for _, entry := range entries {
		header, err := EncodeHeader(entry.Header)
		if err != nil {
			return HandleDatabaseError("encode headers", err)
		}
		body := entry.Body
		if body == nil {
			body = []byte{}
		}
		if err := Execute(ctx, tx, query, cacheName, entry.RequestKey, entry.Status, header, body, FormatTimeForDB(now)); err != nil {
			return err
		}
		entry.CacheName = cacheName
		entry.StoredAt = now
	}

	if err := tx.Commit(); err != nil {
		return HandleDatabaseError("commit transaction", err)
	}
	return nil
}

// Keys returns the request keys stored in cacheName
func (r *SQLiteRepository) Keys(ctx context.Context, cacheName string) ([]string, error) {
	ctx, cancel := r.readCtx(ctx)
	defer cancel()

	query := `
	SELECT cache_name, request_key, status, header_json, body, stored_at
	FROM cache_entries
	WHERE cache_name = ?
	ORDER BY request_key ASC`
	entries, err := QueryMultiple(ctx, r.db, query, ScanCacheEntries, "cache entries", cacheName)
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(entries))
	for _, e := range entries {
		keys = append(keys, e.RequestKey)
	}
	return keys, nil
}
