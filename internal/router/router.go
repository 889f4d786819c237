// Package router dispatches citation queries to the engines suited to
// their detected type: direct identifier lookups when the query
// carries a DOI, PMID, or ISBN, engine races otherwise, offline
// extraction for source types no API serves.
package router

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mhutchens/citator/internal/books"
	"github.com/mhutchens/citator/internal/citation"
	"github.com/mhutchens/citator/internal/classify"
	"github.com/mhutchens/citator/internal/courtlistener"
	"github.com/mhutchens/citator/internal/crossref"
	"github.com/mhutchens/citator/internal/detect"
	"github.com/mhutchens/citator/internal/engine"
	"github.com/mhutchens/citator/internal/format"
	"github.com/mhutchens/citator/internal/legal"
	"github.com/mhutchens/citator/internal/openalex"
	"github.com/mhutchens/citator/internal/pubmed"
	"github.com/mhutchens/citator/internal/scholar"
	"github.com/mhutchens/citator/internal/storage"
	"github.com/mhutchens/citator/internal/weburl"
)

const (
	// isbnRaceTimeout bounds the ISBN direct-lookup race; a miss
	// falls through to the full book race.
	isbnRaceTimeout = 5 * time.Second

	// multiFanout caps concurrent engine calls in ResolveMultiple.
	multiFanout = 6
)

// idEngine is an engine addressable by identifier as well as by
// search.
type idEngine interface {
	engine.Searcher
	engine.Getter
	engine.MultiSearcher
}

// searchEngine is a search-only engine.
type searchEngine interface {
	engine.Searcher
	engine.MultiSearcher
}

// legalEngine is the composite legal resolver.
type legalEngine interface {
	Resolve(ctx context.Context, text string) *citation.Metadata
	SearchMultiple(ctx context.Context, query string, limit int) ([]*citation.Metadata, error)
}

// Config wires a Router. Any nil engine drops out of the dispatches
// that would use it; Cache and Classifier are optional.
type Config struct {
	Crossref    idEngine
	OpenAlex    searchEngine
	Scholar     idEngine
	PubMed      idEngine
	Google      idEngine
	OpenLibrary idEngine
	LOC         searchEngine
	Legal       legalEngine
	Classifier  classify.Classifier
	Cache       *storage.Cache
	RaceTimeout time.Duration
}

// Router resolves citation queries into metadata records.
type Router struct {
	crossref    idEngine
	openalex    searchEngine
	scholar     idEngine
	pubmed      idEngine
	google      idEngine
	openlibrary idEngine
	loc         searchEngine
	legal       legalEngine
	classifier  classify.Classifier
	cache       *storage.Cache
	timeout     time.Duration
}

// New builds a Router from explicit engines.
func New(cfg Config) *Router {
	timeout := cfg.RaceTimeout
	if timeout <= 0 {
		timeout = engine.DefaultRaceTimeout
	}
	return &Router{
		crossref:    cfg.Crossref,
		openalex:    cfg.OpenAlex,
		scholar:     cfg.Scholar,
		pubmed:      cfg.PubMed,
		google:      cfg.Google,
		openlibrary: cfg.OpenLibrary,
		loc:         cfg.LOC,
		legal:       cfg.Legal,
		classifier:  cfg.Classifier,
		cache:       cfg.Cache,
		timeout:     timeout,
	}
}

// NewDefault builds a Router over the real engine clients. API keys
// come from the environment; no cache and no classifier are attached.
func NewDefault() *Router {
	return New(Config{
		Crossref:    crossref.NewClient(),
		OpenAlex:    openalex.NewClient(),
		Scholar:     scholar.NewClient(),
		PubMed:      pubmed.NewClient(),
		Google:      books.NewGoogle(),
		OpenLibrary: books.NewOpenLibrary(),
		LOC:         books.NewLOC(),
		Legal:       legal.NewEngine(courtlistener.NewClient()),
	})
}

// Resolve classifies the query and routes it to the matching engines.
// It returns the best record, or nil when everything misses, together
// with the detection that drove the dispatch. Results failing the
// minimum-data gate are discarded.
func (r *Router) Resolve(ctx context.Context, query string) (*citation.Metadata, citation.DetectionResult) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, citation.DetectionResult{Type: citation.Unknown}
	}

	if r.cache != nil {
		if m, err := r.cache.Get(query); err == nil && m != nil {
			return m, citation.DetectionResult{Type: m.Type, Confidence: m.Confidence, CleanedQuery: query}
		}
	}

	// Case citations carry digit runs that pass for identifiers, so
	// the legal check runs before pattern detection.
	if r.legal != nil && legal.IsCitation(query) {
		if m := r.legal.Resolve(ctx, query); m != nil && m.HasMinimumData() {
			r.store(query, m)
			return m, citation.DetectionResult{Type: citation.Legal, Confidence: 0.95, CleanedQuery: query}
		}
	}

	det := detect.Detect(query)
	m := r.dispatch(ctx, det.Type, det.CleanedQuery, true)
	if m != nil && !m.HasMinimumData() {
		m = nil
	}
	if m != nil {
		r.store(query, m)
	}
	return m, det
}

// Formatted resolves the query and renders it in the named style.
func (r *Router) Formatted(ctx context.Context, query, style string) (*citation.Metadata, string) {
	m, _ := r.Resolve(ctx, query)
	if m == nil {
		return nil, ""
	}
	return m, format.ForStyle(style).Format(m)
}

func (r *Router) store(query string, m *citation.Metadata) {
	if r.cache == nil {
		return
	}
	// Cache failures never fail a resolution.
	_ = r.cache.Put(query, m)
}

func (r *Router) dispatch(ctx context.Context, typ citation.Type, q string, allowClassify bool) *citation.Metadata {
	switch typ {
	case citation.Legal:
		if r.legal == nil {
			return nil
		}
		return r.legal.Resolve(ctx, q)
	case citation.Journal:
		return r.resolveJournal(ctx, q)
	case citation.Medical:
		return r.resolveMedical(ctx, q)
	case citation.Book:
		return r.resolveBook(ctx, q)
	case citation.URL:
		return r.resolveWebURL(ctx, q)
	case citation.Government, citation.Newspaper, citation.Interview, citation.Letter:
		return weburl.Extract(q, typ)
	default:
		return r.resolveUnknown(ctx, q, allowClassify)
	}
}

// resolveJournal looks the DOI up directly when the query carries one;
// a direct hit is authoritative and skips the race.
func (r *Router) resolveJournal(ctx context.Context, q string) *citation.Metadata {
	if doi := ExtractDOI(q); doi != "" && r.crossref != nil {
		if m, err := r.crossref.GetByID(ctx, doi); err == nil && m != nil {
			return m
		}
	}
	m, _ := engine.First(ctx, r.timeout, q, r.journalCandidates()...)
	return m
}

func (r *Router) resolveMedical(ctx context.Context, q string) *citation.Metadata {
	if pmid := ExtractPMID(q); pmid != "" && r.pubmed != nil {
		if m, err := r.pubmed.GetByID(ctx, pmid); err == nil && m != nil {
			return m
		}
	}
	m, _ := engine.First(ctx, r.timeout, q, r.medicalCandidates()...)
	return m
}

func (r *Router) resolveBook(ctx context.Context, q string) *citation.Metadata {
	if isbn := ExtractISBN(q); isbn != "" {
		var cands []engine.Candidate
		if r.google != nil {
			cands = append(cands, getCandidate(books.GoogleName, r.google))
		}
		if r.openlibrary != nil {
			cands = append(cands, getCandidate(books.OpenLibraryName, r.openlibrary))
		}
		if m, _ := engine.First(ctx, isbnRaceTimeout, isbn, cands...); m != nil {
			return m
		}
	}
	m, _ := engine.First(ctx, r.timeout, q, r.bookCandidates()...)
	return m
}

// resolveWebURL routes URLs by what their host and path reveal:
// medical domains via PubMed, publisher pages via their embedded DOI,
// arXiv pages via the academic race, everything else via the offline
// extractor.
func (r *Router) resolveWebURL(ctx context.Context, rawURL string) *citation.Metadata {
	if weburl.IsMedical(rawURL) {
		if pmid := weburl.ExtractPMIDFromURL(rawURL); pmid != "" && r.pubmed != nil {
			if m, err := r.pubmed.GetByID(ctx, pmid); err == nil && m != nil {
				if m.URL == "" {
					m.URL = rawURL
				}
				return m
			}
		}
		if m, _ := engine.First(ctx, r.timeout, rawURL, r.medicalCandidates()...); m != nil {
			return m
		}
	}
	if doi := weburl.ExtractDOIFromURL(rawURL); doi != "" && r.crossref != nil {
		if m, err := r.crossref.GetByID(ctx, doi); err == nil && m != nil {
			m.URL = rawURL
			return m
		}
	}
	if id := weburl.ExtractArxivID(rawURL); id != "" {
		if m, _ := engine.First(ctx, r.timeout, id, r.journalCandidates()...); m != nil {
			if m.URL == "" {
				m.URL = rawURL
			}
			return m
		}
	}
	if weburl.IsGovernment(rawURL) {
		return weburl.Extract(rawURL, citation.Government)
	}
	if weburl.IsNewspaper(rawURL) {
		return weburl.Extract(rawURL, citation.Newspaper)
	}
	return weburl.Extract(rawURL, citation.URL)
}

// resolveUnknown tries the book route, then the journal route, then a
// configured classifier. A classifier answer carrying usable metadata
// wins outright; a bare type re-enters the dispatch once. Classifier
// absence or failure degrades silently.
func (r *Router) resolveUnknown(ctx context.Context, q string, allowClassify bool) *citation.Metadata {
	if m := r.resolveBook(ctx, q); m != nil && m.HasMinimumData() {
		return m
	}
	if m := r.resolveJournal(ctx, q); m != nil && m.HasMinimumData() {
		return m
	}
	if !allowClassify || r.classifier == nil {
		return nil
	}
	typ, m, err := r.classifier.Classify(ctx, q)
	if err != nil {
		return nil
	}
	if m != nil && m.HasMinimumData() {
		return m
	}
	if typ != "" && typ != citation.Unknown {
		return r.dispatch(ctx, typ, q, false)
	}
	return nil
}

func (r *Router) journalCandidates() []engine.Candidate {
	var cands []engine.Candidate
	if r.crossref != nil {
		cands = append(cands, engine.SearchCandidate(crossref.Name, r.crossref))
	}
	if r.openalex != nil {
		cands = append(cands, engine.SearchCandidate(openalex.Name, r.openalex))
	}
	if r.scholar != nil {
		cands = append(cands, engine.SearchCandidate(scholar.Name, r.scholar))
	}
	return cands
}

func (r *Router) medicalCandidates() []engine.Candidate {
	var cands []engine.Candidate
	if r.pubmed != nil {
		cands = append(cands, engine.SearchCandidate(pubmed.Name, r.pubmed))
	}
	if r.crossref != nil {
		cands = append(cands, engine.SearchCandidate(crossref.Name, r.crossref))
	}
	if r.scholar != nil {
		cands = append(cands, engine.SearchCandidate(scholar.Name, r.scholar))
	}
	return cands
}

func (r *Router) bookCandidates() []engine.Candidate {
	var cands []engine.Candidate
	if r.google != nil {
		cands = append(cands, engine.SearchCandidate(books.GoogleName, r.google))
	}
	if r.openlibrary != nil {
		cands = append(cands, engine.SearchCandidate(books.OpenLibraryName, r.openlibrary))
	}
	if r.crossref != nil {
		cands = append(cands, engine.SearchCandidate(crossref.Name, r.crossref))
	}
	if r.loc != nil {
		cands = append(cands, engine.SearchCandidate(books.LOCName, r.loc))
	}
	return cands
}

func getCandidate(name string, g engine.Getter) engine.Candidate {
	return engine.Candidate{Name: name, Search: g.GetByID}
}

// ResolveMultiple gathers up to limit candidate records for a query so
// a caller can offer a choice. URL-with-DOI and landmark-case queries
// short-circuit to a single authoritative option.
func (r *Router) ResolveMultiple(ctx context.Context, query string, limit int) []*citation.Metadata {
	query = strings.TrimSpace(query)
	if query == "" || limit <= 0 {
		return nil
	}

	if weburl.IsURL(query) {
		if doi := weburl.ExtractDOIFromURL(query); doi != "" && r.crossref != nil {
			if m, err := r.crossref.GetByID(ctx, doi); err == nil && m != nil {
				m.URL = query
				return []*citation.Metadata{m}
			}
		}
	}
	if r.legal != nil {
		if _, ok := legal.LookupCase(query); ok {
			if ms, err := r.legal.SearchMultiple(ctx, query, 1); err == nil && len(ms) > 0 {
				return ms[:1]
			}
		}
	}

	det := detect.Detect(query)
	q := det.CleanedQuery

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(multiFanout)
	var (
		mu      sync.Mutex
		options []*citation.Metadata
	)
	collect := func(fetch func(context.Context) ([]*citation.Metadata, error)) {
		g.Go(func() error {
			ms, err := fetch(gctx)
			if err != nil {
				return nil // a failed engine contributes nothing
			}
			mu.Lock()
			options = append(options, ms...)
			mu.Unlock()
			return nil
		})
	}
	multi := func(e engine.MultiSearcher) {
		collect(func(ctx context.Context) ([]*citation.Metadata, error) {
			return e.SearchMultiple(ctx, q, limit)
		})
	}

	switch det.Type {
	case citation.Legal:
		if r.legal != nil {
			multi(r.legal)
		}
	case citation.Journal, citation.Medical:
		if r.crossref != nil {
			multi(r.crossref)
		}
	default:
		if r.google != nil {
			multi(r.google)
		}
		if r.openlibrary != nil {
			multi(r.openlibrary)
		}
		if r.loc != nil {
			multi(r.loc)
		}
		if r.crossref != nil {
			multi(r.crossref)
		}
	}
	// Workers never return errors; Wait only fences the appends.
	_ = g.Wait()

	sort.SliceStable(options, func(i, j int) bool {
		return options[i].Confidence > options[j].Confidence
	})
	return dedupeOptions(options, limit)
}

// dedupeOptions keeps the first record per source identity, gates out
// sub-minimum records, and caps the list.
func dedupeOptions(options []*citation.Metadata, limit int) []*citation.Metadata {
	seen := make(map[string]bool)
	var out []*citation.Metadata
	for _, m := range options {
		if m == nil || !m.HasMinimumData() {
			continue
		}
		key := optionKey(m)
		if key != "" {
			if seen[key] {
				continue
			}
			seen[key] = true
		}
		out = append(out, m)
		if len(out) >= limit {
			break
		}
	}
	return out
}

// optionKey identifies an option for dedup: the case name for legal
// records, the first 40 characters of the title otherwise.
func optionKey(m *citation.Metadata) string {
	if m.CaseName != "" {
		return strings.ToLower(strings.TrimSpace(m.CaseName))
	}
	t := []rune(strings.ToLower(strings.TrimSpace(m.Title)))
	if len(t) > 40 {
		t = t[:40]
	}
	return string(t)
}
