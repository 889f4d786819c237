package legal

import (
	"context"
	"net/url"
	"regexp"
	"strings"
	"unicode"

	"github.com/mhutchens/citator/internal/citation"
)

// CourtSearcher is the remote case-law lookup the composite engine
// falls back to when local tables miss. *courtlistener.Client
// satisfies it; it may be nil for offline use.
type CourtSearcher interface {
	Search(ctx context.Context, query string) (*citation.Metadata, error)
	SearchMultiple(ctx context.Context, query string, limit int) ([]*citation.Metadata, error)
}

// Engine resolves legal citations by trying sources in priority order:
// UK neutral-citation parse, landmark-case table, remote search.
type Engine struct {
	courts CourtSearcher
}

func NewEngine(courts CourtSearcher) *Engine {
	return &Engine{courts: courts}
}

// Search tries each legal source in order and returns the first hit,
// or (nil, nil) when every source misses.
func (e *Engine) Search(ctx context.Context, query string) (*citation.Metadata, error) {
	if strings.Contains(query, "[") && strings.Contains(query, "]") {
		if meta := ParseNeutral(query); meta != nil {
			return meta, nil
		}
	}
	if c, ok := LookupCase(query); ok {
		return c.metadata(query), nil
	}
	if e.courts == nil {
		return nil, nil
	}
	return e.courts.Search(ctx, query)
}

// SearchMultiple collects up to limit distinct candidates across all
// sources, deduplicated by case name.
func (e *Engine) SearchMultiple(ctx context.Context, query string, limit int) ([]*citation.Metadata, error) {
	var out []*citation.Metadata
	seen := make(map[string]bool)
	add := func(m *citation.Metadata) bool {
		key := nameKey(m.CaseName)
		if key == "" || seen[key] {
			return false
		}
		seen[key] = true
		out = append(out, m)
		return len(out) >= limit
	}

	if strings.Contains(query, "[") && strings.Contains(query, "]") {
		if meta := ParseNeutral(query); meta != nil {
			if add(meta) {
				return out, nil
			}
		}
	}
	for _, c := range LookupCases(query, limit) {
		if add(c.metadata(query)) {
			return out, nil
		}
	}
	if e.courts != nil && len(out) < limit {
		more, err := e.courts.SearchMultiple(ctx, query, limit-len(out))
		if err == nil {
			for _, m := range more {
				if add(m) {
					break
				}
			}
		}
	}
	return out, nil
}

// Resolve searches all legal sources and always produces a usable
// record: when every source misses, the query itself becomes the case
// name so the marker still renders as a bare case reference. URL
// queries are reduced to a searchable slug first; the original URL is
// preserved on the result.
func (e *Engine) Resolve(ctx context.Context, text string) *citation.Metadata {
	clean := strings.TrimSpace(text)
	searchQuery, rawURL := clean, ""
	if strings.Contains(clean, "http") {
		rawURL = clean
		if q := QueryFromURL(clean); q != "" {
			searchQuery = q
		}
	}

	meta, err := e.Search(ctx, searchQuery)
	if err == nil && meta != nil {
		if rawURL != "" {
			meta.URL = rawURL
		}
		meta.RawSource = text
		return meta
	}

	return &citation.Metadata{
		Type:         citation.Legal,
		CaseName:     searchQuery,
		Jurisdiction: "US",
		URL:          rawURL,
		RawSource:    text,
	}
}

func (c Case) metadata(query string) *citation.Metadata {
	return &citation.Metadata{
		Type:         citation.Legal,
		CaseName:     c.Name,
		Citation:     c.Citation,
		Court:        c.Court,
		Year:         c.Year,
		Jurisdiction: c.Jurisdiction,
		RawSource:    query,
	}
}

// nameKey is the dedup key for a case name: lowercased, trimmed, and
// capped so near-identical long names collapse.
func nameKey(name string) string {
	key := strings.ToLower(strings.TrimSpace(name))
	if len(key) > 50 {
		key = key[:50]
	}
	return key
}

var slugExtension = regexp.MustCompile(`(?i)\.(htm|html|pdf|aspx|php|jsp)$`)

// QueryFromURL turns a case-law URL into a search query using its last
// path segment: extension stripped, separators to spaces, camelCase
// split apart.
func QueryFromURL(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return ""
	}
	var slug string
	for _, part := range strings.Split(u.Path, "/") {
		if part != "" {
			slug = part
		}
	}
	if slug == "" {
		return ""
	}
	if dec, err := url.PathUnescape(slug); err == nil {
		slug = dec
	}
	slug = slugExtension.ReplaceAllString(slug, "")
	slug = strings.NewReplacer("_", " ", "-", " ", "+", " ").Replace(slug)
	slug = splitCamel(slug)
	return strings.TrimSpace(slug)
}

// splitCamel inserts spaces before interior uppercase letters, so
// "BrownVBoard" becomes "Brown V Board".
func splitCamel(s string) string {
	var b strings.Builder
	for i, r := range s {
		if i > 0 && unicode.IsUpper(r) {
			b.WriteRune(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}
