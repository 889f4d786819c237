// Package storage persists resolution results: a SQLite cache keyed by
// normalized query text and an append-only JSONL log of processed
// citations.
package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/mhutchens/citator/internal/citation"
	_ "modernc.org/sqlite"
)

// DefaultTTL is how long a cached resolution stays valid.
const DefaultTTL = 14 * 24 * time.Hour

// Cache stores resolved citation metadata in SQLite so repeated
// queries skip the engines entirely.
type Cache struct {
	db  *sql.DB
	ttl time.Duration
}

// OpenCache opens or creates the cache database at path.
func OpenCache(path string) (*Cache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening cache database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes

	if err := createCacheSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating cache schema: %w", err)
	}

	return &Cache{db: db, ttl: DefaultTTL}, nil
}

// Close closes the database connection.
func (c *Cache) Close() error {
	return c.db.Close()
}

func createCacheSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS resolutions (
			query_key TEXT PRIMARY KEY,
			engine TEXT,
			metadata TEXT NOT NULL,
			created_at INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_resolutions_created ON resolutions(created_at);
	`

	_, err := db.Exec(schema)
	return err
}

// CacheKey normalizes a query for cache lookups: lowercased, interior
// whitespace collapsed to single spaces.
func CacheKey(query string) string {
	return strings.Join(strings.Fields(strings.ToLower(query)), " ")
}

// Get returns the cached metadata for a query, or nil when the query
// has never been resolved or the entry is older than the TTL.
func (c *Cache) Get(query string) (*citation.Metadata, error) {
	var (
		engine    sql.NullString
		metadata  string
		createdAt int64
	)
	err := c.db.QueryRow(`
		SELECT engine, metadata, created_at FROM resolutions WHERE query_key = ?
	`, CacheKey(query)).Scan(&engine, &metadata, &createdAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading cache: %w", err)
	}
	if time.Since(time.Unix(createdAt, 0)) > c.ttl {
		return nil, nil
	}

	var m citation.Metadata
	if err := json.Unmarshal([]byte(metadata), &m); err != nil {
		return nil, fmt.Errorf("parsing cached metadata: %w", err)
	}
	if m.SourceEngine == "" {
		m.SourceEngine = engine.String
	}
	return &m, nil
}

// Put upserts a resolution. A nil record is ignored.
func (c *Cache) Put(query string, m *citation.Metadata) error {
	if m == nil {
		return nil
	}
	data, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("encoding metadata: %w", err)
	}
	_, err = c.db.Exec(`
		INSERT OR REPLACE INTO resolutions (query_key, engine, metadata, created_at)
		VALUES (?, ?, ?, ?)
	`, CacheKey(query), m.SourceEngine, string(data), time.Now().Unix())
	if err != nil {
		return fmt.Errorf("writing cache: %w", err)
	}
	return nil
}

// Purge deletes entries older than the TTL and reports how many were
// removed.
func (c *Cache) Purge() (int, error) {
	res, err := c.db.Exec(`
		DELETE FROM resolutions WHERE created_at < ?
	`, time.Now().Add(-c.ttl).Unix())
	if err != nil {
		return 0, fmt.Errorf("purging cache: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

// CacheStats summarizes cache contents.
type CacheStats struct {
	Total   int
	Expired int
}

// Stats counts total and expired entries.
func (c *Cache) Stats() (CacheStats, error) {
	var s CacheStats
	if err := c.db.QueryRow(`SELECT COUNT(*) FROM resolutions`).Scan(&s.Total); err != nil {
		return s, fmt.Errorf("counting cache entries: %w", err)
	}
	err := c.db.QueryRow(`
		SELECT COUNT(*) FROM resolutions WHERE created_at < ?
	`, time.Now().Add(-c.ttl).Unix()).Scan(&s.Expired)
	if err != nil {
		return s, fmt.Errorf("counting expired entries: %w", err)
	}
	return s, nil
}
