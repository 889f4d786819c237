package books

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"

	"github.com/mhutchens/citator/internal/citation"
)

const (
	// LOCName identifies the engine in provenance fields.
	LOCName = "Library of Congress"

	// LOCBaseURL is the Library of Congress books search endpoint.
	LOCBaseURL = "https://www.loc.gov/books/"

	locRateLimit = 2.0
	locMaxHits   = 3
)

// LOC is a client for the Library of Congress catalog, the backstop
// for US publications and historical works. No key required.
type LOC struct {
	core
}

// NewLOC creates a Library of Congress client.
func NewLOC(opts ...ClientOption) *LOC {
	return &LOC{core: newCore(LOCBaseURL, locRateLimit, opts)}
}

type locResponse struct {
	Results []locItem `json:"results"`
}

// locItem tolerates the catalog's loose typing: several fields arrive
// as either a string or a list of strings depending on the record.
type locItem struct {
	Title       json.RawMessage `json:"title"`
	Contributor json.RawMessage `json:"contributor"`
	Date        json.RawMessage `json:"date"`
	Item        struct {
		CreatedPublished json.RawMessage `json:"created_published"`
	} `json:"item"`
}

// Search finds the best-matching catalog record for a query.
func (l *LOC) Search(ctx context.Context, query string) (*citation.Metadata, error) {
	hits, err := l.SearchMultiple(ctx, query, 1)
	if err != nil {
		return nil, err
	}
	if len(hits) == 0 {
		return nil, nil
	}
	return hits[0], nil
}

// SearchMultiple returns up to limit candidate records, best first.
// Records without a title are skipped.
func (l *LOC) SearchMultiple(ctx context.Context, query string, limit int) ([]*citation.Metadata, error) {
	if limit <= 0 || limit > locMaxHits {
		limit = locMaxHits
	}
	params := url.Values{
		"q":  {query},
		"fo": {"json"},
		"c":  {"3"},
	}

	var resp locResponse
	if err := l.getJSON(ctx, LOCName, l.baseURL+"?"+params.Encode(), &resp); err != nil {
		return nil, err
	}

	var results []*citation.Metadata
	for i := range resp.Results {
		if len(results) >= limit {
			break
		}
		if m := mapLOCItem(&resp.Results[i], query); m != nil {
			results = append(results, m)
		}
	}
	return results, nil
}

// mapLOCItem converts a catalog record to citation metadata, or nil
// when the record has no title.
func mapLOCItem(item *locItem, query string) *citation.Metadata {
	title := strings.TrimRight(firstString(item.Title), ".")
	if title == "" {
		return nil
	}

	m := &citation.Metadata{
		Type:         citation.Book,
		Title:        title,
		Authors:      stringList(item.Contributor),
		SourceEngine: LOCName,
		RawSource:    query,
	}

	if date := firstString(item.Date); date != "" {
		m.Year = yearDigits.FindString(date)
	}

	place, publisher := parseCreatedPublished(firstString(item.Item.CreatedPublished))
	m.Publisher = publisher
	m.Place = ResolvePlace(publisher, place)

	return m
}

// parseCreatedPublished splits the catalog's imprint string, which
// usually reads "Place : Publisher, Year".
func parseCreatedPublished(s string) (place, publisher string) {
	if s == "" || !strings.Contains(s, ":") {
		return "", ""
	}
	parts := strings.SplitN(s, ":", 2)
	place = strings.TrimSpace(parts[0])
	if rest := parts[1]; strings.Contains(rest, ",") {
		publisher = strings.TrimSpace(strings.SplitN(rest, ",", 2)[0])
	}
	return place, publisher
}

// firstString reads a field that may be a string or a list of strings.
func firstString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil && len(list) > 0 {
		return list[0]
	}
	return ""
}

// stringList reads a field that may be a list of strings or a single
// string. Empty entries are dropped.
func stringList(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err != nil {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil || s == "" {
			return nil
		}
		list = []string{s}
	}

	out := list[:0]
	for _, s := range list {
		if s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
