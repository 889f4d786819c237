package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mhutchens/citator/internal/citation"
)

func setupCache(t *testing.T) *Cache {
	t.Helper()

	cache, err := OpenCache(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("OpenCache() error = %v", err)
	}
	t.Cleanup(func() { cache.Close() })
	return cache
}

func TestOpenCacheCreatesFile(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "cache.db")

	cache, err := OpenCache(dbPath)
	if err != nil {
		t.Fatalf("OpenCache() error = %v", err)
	}
	defer cache.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("OpenCache() did not create database file")
	}
}

func TestCachePutGet(t *testing.T) {
	cache := setupCache(t)

	m := &citation.Metadata{
		Type:         citation.Journal,
		Title:        "Undoing a Weak Quantum Measurement",
		Authors:      []string{"Andrew Jordan"},
		DOI:          "10.1038/nphys1170",
		Year:         "2009",
		SourceEngine: "crossref",
		Confidence:   0.95,
	}
	if err := cache.Put("undoing a weak quantum measurement", m); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	got, err := cache.Get("undoing a weak quantum measurement")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got == nil {
		t.Fatal("Get() = nil, want cached metadata")
	}
	if got.Title != m.Title || got.DOI != m.DOI || got.SourceEngine != "crossref" {
		t.Errorf("Get() = %+v, want %+v", got, m)
	}
	if len(got.Authors) != 1 || got.Authors[0] != "Andrew Jordan" {
		t.Errorf("Get() authors = %v, want %v", got.Authors, m.Authors)
	}
}

func TestCacheMiss(t *testing.T) {
	cache := setupCache(t)

	got, err := cache.Get("never resolved")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != nil {
		t.Errorf("Get() = %+v, want nil for a miss", got)
	}
}

func TestCacheKeyNormalization(t *testing.T) {
	cache := setupCache(t)

	m := &citation.Metadata{Type: citation.Book, Title: "The Selfish Gene"}
	if err := cache.Put("  The   Selfish  GENE ", m); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	got, err := cache.Get("the selfish gene")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got == nil || got.Title != "The Selfish Gene" {
		t.Errorf("Get() with normalized key = %+v, want the cached record", got)
	}

	if key := CacheKey("  A\tB   C  "); key != "a b c" {
		t.Errorf("CacheKey() = %q, want %q", key, "a b c")
	}
}

func TestCacheUpsert(t *testing.T) {
	cache := setupCache(t)

	if err := cache.Put("q", &citation.Metadata{Title: "First", SourceEngine: "openalex"}); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if err := cache.Put("q", &citation.Metadata{Title: "Second", SourceEngine: "crossref"}); err != nil {
		t.Fatalf("Put() second error = %v", err)
	}

	got, err := cache.Get("q")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got == nil || got.Title != "Second" || got.SourceEngine != "crossref" {
		t.Errorf("Get() after upsert = %+v, want the second record", got)
	}

	stats, err := cache.Stats()
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if stats.Total != 1 {
		t.Errorf("Stats().Total = %d, want 1 after upsert", stats.Total)
	}
}

func TestCacheTTLExpiry(t *testing.T) {
	cache := setupCache(t)

	if err := cache.Put("old query", &citation.Metadata{Title: "Stale"}); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	// Age the row past the TTL.
	stale := time.Now().Add(-DefaultTTL - time.Hour).Unix()
	if _, err := cache.db.Exec(`UPDATE resolutions SET created_at = ?`, stale); err != nil {
		t.Fatalf("aging cache row: %v", err)
	}

	got, err := cache.Get("old query")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != nil {
		t.Errorf("Get() = %+v, want nil for an expired entry", got)
	}

	stats, err := cache.Stats()
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if stats.Total != 1 || stats.Expired != 1 {
		t.Errorf("Stats() = %+v, want 1 total, 1 expired", stats)
	}

	removed, err := cache.Purge()
	if err != nil {
		t.Fatalf("Purge() error = %v", err)
	}
	if removed != 1 {
		t.Errorf("Purge() = %d, want 1", removed)
	}

	stats, err = cache.Stats()
	if err != nil {
		t.Fatalf("Stats() after purge error = %v", err)
	}
	if stats.Total != 0 {
		t.Errorf("Stats().Total = %d after purge, want 0", stats.Total)
	}
}

func TestCachePutNil(t *testing.T) {
	cache := setupCache(t)

	if err := cache.Put("q", nil); err != nil {
		t.Fatalf("Put(nil) error = %v", err)
	}
	stats, err := cache.Stats()
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if stats.Total != 0 {
		t.Errorf("Stats().Total = %d, want 0 after nil Put", stats.Total)
	}
}
