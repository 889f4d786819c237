// Package history tracks the sources cited so far in one document run
// and decides, marker by marker, whether a citation renders in full,
// as "Ibid.", or in a style's short form. A History is single-writer
// and lives exactly as long as the run; it is never persisted.
package history

import (
	"errors"
	"strings"

	"github.com/mhutchens/citator/internal/citation"
	"github.com/mhutchens/citator/internal/format"
)

// Form is the rendering form a marker was decided into.
type Form string

const (
	FormFull  Form = "full"
	FormIbid  Form = "ibid"
	FormShort Form = "short"
)

var (
	// ErrNoPrevious is returned for an explicit ibid marker with no
	// citation before it to refer back to.
	ErrNoPrevious = errors.New("ibid reference but no previous citation found")
	// ErrNoMetadata is returned when a non-marker note arrives without
	// a resolved record.
	ErrNoMetadata = errors.New("no metadata found")
)

// Entry is one decided citation in document order.
type Entry struct {
	Metadata  *citation.Metadata
	Formatted string
	SourceKey string
	Seq       int
}

// Decision is the outcome of classifying one note.
type Decision struct {
	Form Form
	// Formatted is the rendered string to write into the note. Empty
	// when Err is set.
	Formatted string
	// Page is the pinpoint page parsed from an explicit ibid marker.
	Page string
	// Metadata backs this marker: the previous entry's record for an
	// explicit-marker or URL-match ibid, the freshly resolved record
	// otherwise.
	Metadata *citation.Metadata
	// URL is the address associated with the marker, when any.
	URL string
	Err error
}

// History carries the state of one document run: the immediately
// preceding citation (for ibid) and the first occurrence of every
// keyed source (for short forms).
type History struct {
	formatter  format.Formatter
	previous   *Entry
	allSources map[string]*Entry
	seq        int
}

// New returns an empty history rendering with f. A nil formatter falls
// back to Chicago.
func New(f format.Formatter) *History {
	if f == nil {
		f = format.Chicago{}
	}
	return &History{
		formatter:  f,
		allSources: make(map[string]*Entry),
	}
}

// Decide classifies one note against the history, advances the
// history, and returns the rendering. Cases are tried in order:
//
//  1. Explicit ibid marker: reuse the previous record, with the
//     marker's page if it names one.
//  2. Resolved URL matches the previous citation's URL: ibid.
//  3. Source key matches the previous citation's key: ibid.
//  4. Source key seen earlier in the document: short form.
//  5. Otherwise: full citation, and the source is recorded.
//
// The previous-citation slot advances on every successful decision,
// ibid included; the first-occurrence table only grows, and only on
// short and full forms.
func (h *History) Decide(raw string, meta *citation.Metadata) Decision {
	if IsIbid(raw) {
		if h.previous == nil {
			return Decision{Form: FormIbid, Err: ErrNoPrevious}
		}
		prev := h.previous.Metadata
		page := IbidPage(raw)
		formatted := format.FormatIbid(page)
		url := ""
		if prev != nil {
			url = prev.URL
		}
		h.advance(prev, formatted, false)
		return Decision{Form: FormIbid, Formatted: formatted, Page: page, Metadata: prev, URL: url}
	}

	if meta == nil {
		return Decision{Form: FormFull, Err: ErrNoMetadata}
	}

	// A bare pasted URL identifies itself even when resolution found
	// no address for it.
	url := meta.URL
	if url == "" {
		if t := strings.TrimSpace(raw); strings.HasPrefix(t, "http") {
			url = t
		}
	}

	if h.previous != nil && h.previous.Metadata != nil && citation.URLsMatch(url, h.previous.Metadata.URL) {
		prev := h.previous.Metadata
		formatted := format.FormatIbid("")
		h.advance(prev, formatted, false)
		return Decision{Form: FormIbid, Formatted: formatted, Metadata: prev, URL: url}
	}

	key := citation.SourceKey(meta)
	if h.previous != nil && key != "" && key == h.previous.SourceKey {
		formatted := format.FormatIbid("")
		h.advance(meta, formatted, false)
		return Decision{Form: FormIbid, Formatted: formatted, Metadata: meta, URL: url}
	}

	if _, cited := h.allSources[key]; cited && key != "" {
		formatted := h.formatter.FormatShort(meta)
		h.advance(meta, formatted, true)
		return Decision{Form: FormShort, Formatted: formatted, Metadata: meta, URL: url}
	}

	formatted := h.formatter.Format(meta)
	h.advance(meta, formatted, true)
	return Decision{Form: FormFull, Formatted: formatted, Metadata: meta, URL: url}
}

// Previous returns the most recently decided entry, or nil before the
// first decision.
func (h *History) Previous() *Entry {
	return h.previous
}

// advance moves the previous-citation slot to a fresh entry. The
// first-occurrence table is only written on short and full decisions,
// and an existing first occurrence is never replaced.
func (h *History) advance(meta *citation.Metadata, formatted string, recordSource bool) {
	h.seq++
	e := &Entry{
		Metadata:  meta,
		Formatted: formatted,
		SourceKey: citation.SourceKey(meta),
		Seq:       h.seq,
	}
	h.previous = e
	if !recordSource || e.SourceKey == "" {
		return
	}
	if _, ok := h.allSources[e.SourceKey]; !ok {
		h.allSources[e.SourceKey] = e
	}
}
