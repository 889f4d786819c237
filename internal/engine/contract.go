// Package engine defines the contract citation engines implement and
// the race combinator the router uses to query several of them at
// once.
package engine

import (
	"context"

	"github.com/mhutchens/citator/internal/citation"
)

// Searcher resolves a free-text query to citation metadata.
// Implementations translate their own transport and parse failures
// into errors; (nil, nil) is a clean miss.
type Searcher interface {
	Search(ctx context.Context, query string) (*citation.Metadata, error)
}

// Getter resolves an unambiguous identifier (DOI, ISBN, PMID). Direct
// lookups are authoritative: the router prefers them over any search.
type Getter interface {
	GetByID(ctx context.Context, id string) (*citation.Metadata, error)
}

// MultiSearcher returns several candidate records for one query, best
// first.
type MultiSearcher interface {
	SearchMultiple(ctx context.Context, query string, limit int) ([]*citation.Metadata, error)
}
