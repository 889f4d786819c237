// Package pipeline rewrites the endnotes and footnotes of a Word
// document into formatted citations. Markers are processed strictly in
// traversal order against a single citation history, so ibid and
// short-form decisions depend only on document position; concurrency
// lives inside each marker's engine race, never across markers.
package pipeline

import (
	"context"
	"fmt"
	"sort"

	"github.com/mhutchens/citator/internal/citation"
	"github.com/mhutchens/citator/internal/docx"
	"github.com/mhutchens/citator/internal/format"
	"github.com/mhutchens/citator/internal/history"
	"github.com/mhutchens/citator/internal/storage"
)

// Note kinds in traversal order: all endnotes, then all footnotes.
const (
	KindEndnote  = "endnote"
	KindFootnote = "footnote"
)

// Resolver turns raw marker text into citation metadata. *router.Router
// satisfies it.
type Resolver interface {
	Resolve(ctx context.Context, query string) (*citation.Metadata, citation.DetectionResult)
}

// ProcessedCitation is the per-marker outcome of a run. Kind and
// NoteID address the note that produced it, so callers can re-render
// one marker later.
type ProcessedCitation struct {
	Kind      string             `json:"kind,omitempty"`
	NoteID    int                `json:"note_id,omitempty"`
	Original  string             `json:"original"`
	Formatted string             `json:"formatted,omitempty"`
	Metadata  *citation.Metadata `json:"metadata,omitempty"`
	URL       string             `json:"url,omitempty"`
	Success   bool               `json:"success"`
	Error     string             `json:"error,omitempty"`
	Form      history.Form       `json:"form"`
}

// Marker is one citation marker in traversal order.
type Marker struct {
	Kind string `json:"kind"`
	ID   int    `json:"id"`
	Text string `json:"text"`
}

// Pipeline rewrites documents through a resolver and a style
// formatter.
type Pipeline struct {
	resolver Resolver
	log      *storage.ResultsLog
	links    bool
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithResultsLog appends one JSONL record per processed marker after
// each run.
func WithResultsLog(l *storage.ResultsLog) Option {
	return func(p *Pipeline) { p.log = l }
}

// WithLinkStyling styles URL runs blue and underlined in rewritten
// documents.
func WithLinkStyling() Option {
	return func(p *Pipeline) { p.links = true }
}

// New builds a Pipeline over the given resolver.
func New(r Resolver, opts ...Option) *Pipeline {
	p := &Pipeline{resolver: r}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Markers lists the document's citation markers in traversal order:
// endnotes ascending by ID, then footnotes ascending by ID.
func Markers(doc *docx.Document) ([]Marker, error) {
	endnotes, err := doc.Endnotes()
	if err != nil {
		return nil, err
	}
	footnotes, err := doc.Footnotes()
	if err != nil {
		return nil, err
	}
	sort.Slice(endnotes, func(i, j int) bool { return endnotes[i].ID < endnotes[j].ID })
	sort.Slice(footnotes, func(i, j int) bool { return footnotes[i].ID < footnotes[j].ID })

	markers := make([]Marker, 0, len(endnotes)+len(footnotes))
	for _, n := range endnotes {
		markers = append(markers, Marker{Kind: KindEndnote, ID: n.ID, Text: n.Text})
	}
	for _, n := range footnotes {
		markers = append(markers, Marker{Kind: KindFootnote, ID: n.ID, Text: n.Text})
	}
	return markers, nil
}

// Process resolves and rewrites every marker in the document, returning
// the rewritten archive and one record per marker. A fresh History
// backs each run. Markers that fail to resolve keep their original
// text; only document-level failures return an error.
func (p *Pipeline) Process(ctx context.Context, docBytes []byte, style string) ([]byte, []ProcessedCitation, error) {
	doc, err := docx.Open(docBytes, p.docOptions()...)
	if err != nil {
		return nil, nil, fmt.Errorf("opening document: %w", err)
	}
	markers, err := Markers(doc)
	if err != nil {
		return nil, nil, err
	}

	hist := history.New(format.ForStyle(style))
	results := make([]ProcessedCitation, 0, len(markers))
	for _, mk := range markers {
		if err := ctx.Err(); err != nil {
			return nil, results, err
		}
		results = append(results, p.processMarker(ctx, doc, hist, mk))
	}

	out, err := doc.Bytes()
	if err != nil {
		return nil, results, fmt.Errorf("saving document: %w", err)
	}
	if p.log != nil {
		records := make([]any, len(results))
		for i := range results {
			records[i] = results[i]
		}
		// A logging failure doesn't void a finished rewrite.
		_ = p.log.Append(records...)
	}
	return out, results, nil
}

func (p *Pipeline) processMarker(ctx context.Context, doc *docx.Document, hist *history.History, mk Marker) ProcessedCitation {
	rec := ProcessedCitation{Kind: mk.Kind, NoteID: mk.ID, Original: mk.Text, Form: history.FormFull}

	var meta *citation.Metadata
	if !history.IsIbid(mk.Text) {
		// Resolution failure leaves meta nil; the history decision
		// turns that into a per-marker failure, never a run abort.
		meta, _ = p.resolver.Resolve(ctx, mk.Text)
	}

	d := hist.Decide(mk.Text, meta)
	rec.Form = d.Form
	if d.Err != nil {
		rec.Error = d.Err.Error()
		return rec
	}

	if err := writeNote(doc, mk.Kind, mk.ID, d.Formatted); err != nil {
		rec.Error = err.Error()
		return rec
	}
	rec.Formatted = d.Formatted
	rec.Metadata = d.Metadata
	rec.URL = d.URL
	rec.Success = true
	return rec
}

// UpdateNote re-renders a single note from the given query, without
// history: the result is always a full form and no other note is
// touched.
func (p *Pipeline) UpdateNote(ctx context.Context, docBytes []byte, kind string, id int, query, style string) ([]byte, ProcessedCitation, error) {
	rec := ProcessedCitation{Kind: kind, NoteID: id, Original: query, Form: history.FormFull}

	doc, err := docx.Open(docBytes, p.docOptions()...)
	if err != nil {
		return nil, rec, fmt.Errorf("opening document: %w", err)
	}

	meta, _ := p.resolver.Resolve(ctx, query)
	if meta == nil {
		rec.Error = history.ErrNoMetadata.Error()
		return nil, rec, history.ErrNoMetadata
	}

	rendered := format.ForStyle(style).Format(meta)
	if err := writeNote(doc, kind, id, rendered); err != nil {
		rec.Error = err.Error()
		return nil, rec, err
	}

	out, err := doc.Bytes()
	if err != nil {
		return nil, rec, fmt.Errorf("saving document: %w", err)
	}
	rec.Formatted = rendered
	rec.Metadata = meta
	rec.URL = meta.URL
	rec.Success = true
	return out, rec, nil
}

func (p *Pipeline) docOptions() []docx.Option {
	if p.links {
		return []docx.Option{docx.WithLinkStyling()}
	}
	return nil
}

func writeNote(doc *docx.Document, kind string, id int, text string) error {
	switch kind {
	case KindEndnote:
		return doc.WriteEndnote(id, text)
	case KindFootnote:
		return doc.WriteFootnote(id, text)
	default:
		return fmt.Errorf("unknown note kind %q", kind)
	}
}

// Stats summarizes a run's results.
type Stats struct {
	Total   int `json:"total"`
	Success int `json:"success"`
	Failed  int `json:"failed"`
	Full    int `json:"full"`
	Ibid    int `json:"ibid"`
	Short   int `json:"short"`
}

// Summarize tallies results by outcome and decided form.
func Summarize(results []ProcessedCitation) Stats {
	s := Stats{Total: len(results)}
	for _, r := range results {
		if r.Success {
			s.Success++
		} else {
			s.Failed++
		}
		switch r.Form {
		case history.FormIbid:
			s.Ibid++
		case history.FormShort:
			s.Short++
		default:
			s.Full++
		}
	}
	return s
}
