package crossref

import (
	"strconv"

	"github.com/mhutchens/citator/internal/citation"
)

// bookTypes are the Crossref work types mapped to Book rather than
// Journal.
var bookTypes = map[string]bool{
	"book":           true,
	"monograph":      true,
	"edited-book":    true,
	"reference-book": true,
	"book-chapter":   true,
	"book-section":   true,
	"book-part":      true,
}

// mapWork converts a Crossref work record to citation metadata.
func mapWork(w *Work, query string) *citation.Metadata {
	m := &citation.Metadata{
		Type:         citation.Journal,
		DOI:          w.DOI,
		Authors:      mapAuthors(w.Author),
		Volume:       w.Volume,
		Issue:        w.Issue,
		Pages:        w.Page,
		Publisher:    w.Publisher,
		URL:          w.URL,
		SourceEngine: Name,
		RawSource:    query,
	}

	if bookTypes[w.Type] {
		m.Type = citation.Book
		if len(w.ISBN) > 0 {
			m.ISBN = w.ISBN[0]
		}
	}

	if len(w.Title) > 0 {
		m.Title = w.Title[0]
	}
	if len(w.ContainerTitle) > 0 {
		m.Journal = w.ContainerTitle[0]
	}
	if y := w.Issued.Year(); y != 0 {
		m.Year = strconv.Itoa(y)
	}
	if m.URL == "" && w.DOI != "" {
		m.URL = "https://doi.org/" + w.DOI
	}

	return m
}

// mapAuthors renders contributor records as display names in order.
func mapAuthors(authors []workAuthor) []string {
	if len(authors) == 0 {
		return nil
	}
	names := make([]string, 0, len(authors))
	for _, a := range authors {
		switch {
		case a.Given != "" && a.Family != "":
			names = append(names, a.Given+" "+a.Family)
		case a.Family != "":
			names = append(names, a.Family)
		case a.Name != "":
			names = append(names, a.Name)
		}
	}
	return names
}
