package books

import (
	"context"
	"net/url"
	"regexp"
	"strings"

	"github.com/mhutchens/citator/internal/citation"
)

const (
	// GoogleName identifies the engine in provenance fields.
	GoogleName = "Google Books"

	// GoogleBaseURL is the Google Books volumes endpoint.
	GoogleBaseURL = "https://www.googleapis.com/books/v1/volumes"

	googleRateLimit = 5.0
	googleMaxHits   = 3
)

// Footnote droppings that poison a title search: a leading note
// number and trailing page references.
var (
	leadingFootnote = regexp.MustCompile(`^\s*\d+\.?\s*`)
	trailingPages   = regexp.MustCompile(`,?\s*pp?\.?\s*\d+(-\d+)?\.?$`)
	trailingNumber  = regexp.MustCompile(`,?\s*\d+\.?$`)
)

// Google is a client for the Google Books API, the first stop for
// fuzzy title-and-author searches.
type Google struct {
	core
}

// NewGoogle creates a Google Books client.
func NewGoogle(opts ...ClientOption) *Google {
	return &Google{core: newCore(GoogleBaseURL, googleRateLimit, opts)}
}

type googleResponse struct {
	Items []struct {
		VolumeInfo googleVolume `json:"volumeInfo"`
	} `json:"items"`
}

type googleVolume struct {
	Title         string   `json:"title"`
	Subtitle      string   `json:"subtitle"`
	Authors       []string `json:"authors"`
	Publisher     string   `json:"publisher"`
	PublishedDate string   `json:"publishedDate"`
	IndustryIDs   []struct {
		Type       string `json:"type"`
		Identifier string `json:"identifier"`
	} `json:"industryIdentifiers"`
}

// CleanSearchTerm strips footnote numbering and page references that
// would otherwise skew relevance ranking. URLs pass through untouched.
func CleanSearchTerm(text string) string {
	if strings.HasPrefix(text, "http://") || strings.HasPrefix(text, "https://") || strings.HasPrefix(text, "www.") {
		return text
	}
	text = leadingFootnote.ReplaceAllString(text, "")
	text = trailingPages.ReplaceAllString(text, "")
	text = trailingNumber.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

// Search finds the best-matching volume for a free-text query.
func (g *Google) Search(ctx context.Context, query string) (*citation.Metadata, error) {
	hits, err := g.searchVolumes(ctx, CleanSearchTerm(query), query)
	if err != nil {
		return nil, err
	}
	if len(hits) == 0 {
		return nil, nil
	}
	return hits[0], nil
}

// SearchMultiple returns up to limit candidate volumes, best first.
func (g *Google) SearchMultiple(ctx context.Context, query string, limit int) ([]*citation.Metadata, error) {
	hits, err := g.searchVolumes(ctx, CleanSearchTerm(query), query)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(hits) > limit {
		hits = hits[:limit]
	}
	return hits, nil
}

// GetByID fetches a volume by ISBN. An unknown ISBN is a clean miss.
func (g *Google) GetByID(ctx context.Context, isbn string) (*citation.Metadata, error) {
	clean := cleanISBN(isbn)
	if clean == "" {
		return nil, nil
	}

	hits, err := g.searchVolumes(ctx, "isbn:"+clean, isbn)
	if err != nil {
		return nil, err
	}
	if len(hits) == 0 {
		return nil, nil
	}
	if hits[0].ISBN == "" {
		hits[0].ISBN = clean
	}
	return hits[0], nil
}

func (g *Google) searchVolumes(ctx context.Context, q, raw string) ([]*citation.Metadata, error) {
	if q == "" {
		return nil, nil
	}
	params := url.Values{
		"q":          {q},
		"maxResults": {"3"},
		"printType":  {"books"},
		"orderBy":    {"relevance"},
	}

	var resp googleResponse
	if err := g.getJSON(ctx, GoogleName, g.baseURL+"?"+params.Encode(), &resp); err != nil {
		return nil, err
	}

	results := make([]*citation.Metadata, 0, len(resp.Items))
	for i := range resp.Items {
		if i >= googleMaxHits {
			break
		}
		results = append(results, mapVolume(&resp.Items[i].VolumeInfo, raw))
	}
	return results, nil
}

// mapVolume converts a Google Books volume to citation metadata.
func mapVolume(v *googleVolume, query string) *citation.Metadata {
	m := &citation.Metadata{
		Type:         citation.Book,
		Title:        v.Title,
		Authors:      v.Authors,
		Publisher:    v.Publisher,
		Place:        ResolvePlace(v.Publisher, ""),
		SourceEngine: GoogleName,
		RawSource:    query,
	}

	if v.Subtitle != "" {
		m.Title = v.Title + ": " + v.Subtitle
	}
	if v.PublishedDate != "" {
		m.Year = strings.SplitN(v.PublishedDate, "-", 2)[0]
	}

	// Prefer the 13-digit identifier when both forms are present.
	for _, id := range v.IndustryIDs {
		if id.Type == "ISBN_13" {
			m.ISBN = id.Identifier
			break
		}
		if id.Type == "ISBN_10" && m.ISBN == "" {
			m.ISBN = id.Identifier
		}
	}

	return m
}
