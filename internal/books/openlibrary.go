package books

import (
	"context"
	"net/url"
	"regexp"
	"strconv"

	"github.com/mhutchens/citator/internal/citation"
)

const (
	// OpenLibraryName identifies the engine in provenance fields.
	OpenLibraryName = "Open Library"

	// OpenLibraryBaseURL is the Open Library host.
	OpenLibraryBaseURL = "https://openlibrary.org"

	openLibraryRateLimit = 2.0
	openLibraryMaxHits   = 3
)

var yearDigits = regexp.MustCompile(`\d{4}`)

// OpenLibrary is a client for the Open Library books and search APIs.
// ISBN lookups go to the books endpoint, which carries publish places;
// text queries fall back to search.json.
type OpenLibrary struct {
	core
}

// NewOpenLibrary creates an Open Library client.
func NewOpenLibrary(opts ...ClientOption) *OpenLibrary {
	return &OpenLibrary{core: newCore(OpenLibraryBaseURL, openLibraryRateLimit, opts)}
}

// olBook is a record from the books endpoint (jscmd=data).
type olBook struct {
	Title   string `json:"title"`
	Authors []struct {
		Name string `json:"name"`
	} `json:"authors"`
	Publishers []struct {
		Name string `json:"name"`
	} `json:"publishers"`
	PublishPlaces []struct {
		Name string `json:"name"`
	} `json:"publish_places"`
	PublishDate string `json:"publish_date"`
}

// olDoc is a record from the search endpoint.
type olDoc struct {
	Title       string   `json:"title"`
	AuthorName  []string `json:"author_name"`
	Publisher   []string `json:"publisher"`
	PublishYear []int    `json:"publish_year"`
	ISBN        []string `json:"isbn"`
}

type olSearchResponse struct {
	Docs []olDoc `json:"docs"`
}

// GetByID fetches a book by ISBN. An unknown ISBN is a clean miss.
func (o *OpenLibrary) GetByID(ctx context.Context, isbn string) (*citation.Metadata, error) {
	clean := cleanISBN(isbn)
	if clean == "" {
		return nil, nil
	}
	key := "ISBN:" + clean

	params := url.Values{
		"bibkeys": {key},
		"format":  {"json"},
		"jscmd":   {"data"},
	}

	books := make(map[string]olBook)
	if err := o.getJSON(ctx, OpenLibraryName, o.baseURL+"/api/books?"+params.Encode(), &books); err != nil {
		return nil, err
	}

	book, ok := books[key]
	if !ok {
		return nil, nil
	}
	return mapOLBook(&book, clean), nil
}

// Search finds the best-matching book for a free-text query.
func (o *OpenLibrary) Search(ctx context.Context, query string) (*citation.Metadata, error) {
	hits, err := o.SearchMultiple(ctx, query, 1)
	if err != nil {
		return nil, err
	}
	if len(hits) == 0 {
		return nil, nil
	}
	return hits[0], nil
}

// SearchMultiple returns up to limit candidate books, best first.
func (o *OpenLibrary) SearchMultiple(ctx context.Context, query string, limit int) ([]*citation.Metadata, error) {
	if limit <= 0 || limit > openLibraryMaxHits {
		limit = openLibraryMaxHits
	}
	params := url.Values{
		"q":      {query},
		"limit":  {strconv.Itoa(openLibraryMaxHits)},
		"fields": {"title,author_name,publisher,publish_year,isbn"},
	}

	var resp olSearchResponse
	if err := o.getJSON(ctx, OpenLibraryName, o.baseURL+"/search.json?"+params.Encode(), &resp); err != nil {
		return nil, err
	}

	var results []*citation.Metadata
	for i := range resp.Docs {
		if len(results) >= limit {
			break
		}
		results = append(results, mapOLDoc(&resp.Docs[i], query))
	}
	return results, nil
}

// mapOLBook converts a books-endpoint record to citation metadata.
func mapOLBook(b *olBook, isbn string) *citation.Metadata {
	m := &citation.Metadata{
		Type:         citation.Book,
		Title:        b.Title,
		ISBN:         isbn,
		SourceEngine: OpenLibraryName,
		RawSource:    "ISBN: " + isbn,
	}

	for _, a := range b.Authors {
		if a.Name != "" {
			m.Authors = append(m.Authors, a.Name)
		}
	}
	if len(b.Publishers) > 0 {
		m.Publisher = b.Publishers[0].Name
	}
	var place string
	if len(b.PublishPlaces) > 0 {
		place = b.PublishPlaces[0].Name
	}
	m.Place = ResolvePlace(m.Publisher, place)

	m.Year = b.PublishDate
	if y := yearDigits.FindString(b.PublishDate); y != "" {
		m.Year = y
	}

	return m
}

// mapOLDoc converts a search-endpoint record to citation metadata.
// Search docs list every printing year; the most recent one wins.
func mapOLDoc(d *olDoc, query string) *citation.Metadata {
	m := &citation.Metadata{
		Type:         citation.Book,
		Title:        d.Title,
		Authors:      d.AuthorName,
		SourceEngine: OpenLibraryName,
		RawSource:    query,
	}

	if len(d.Publisher) > 0 {
		m.Publisher = d.Publisher[0]
	}
	m.Place = ResolvePlace(m.Publisher, "")
	if len(d.ISBN) > 0 {
		m.ISBN = d.ISBN[0]
	}

	if len(d.PublishYear) > 0 {
		latest := d.PublishYear[0]
		for _, y := range d.PublishYear[1:] {
			latest = max(latest, y)
		}
		m.Year = strconv.Itoa(latest)
	}

	return m
}
