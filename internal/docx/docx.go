// Package docx reads and rewrites endnotes and footnotes inside Word
// (.docx) archives. A Document keeps every zip part as raw bytes and
// only rewrites the note parts it is asked to touch, so repacking
// leaves everything else byte-for-byte intact. Formatted citation text
// may carry <i>...</i> spans; WriteEndnote and WriteFootnote turn those
// into italic runs.
package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const (
	documentPart  = "word/document.xml"
	endnotesPart  = "word/endnotes.xml"
	footnotesPart = "word/footnotes.xml"
)

var (
	// ErrNotDocx reports an archive without the main document part.
	ErrNotDocx = errors.New("missing word/document.xml part")

	// ErrNoteNotFound reports a write against an absent note ID.
	ErrNoteNotFound = errors.New("note not found")
)

// Note is one endnote or footnote: its w:id and the concatenated text
// of its w:t runs. System separator notes (ID < 1) are never returned.
type Note struct {
	ID   int
	Text string
}

// Document is an opened .docx archive. It is not safe for concurrent
// use.
type Document struct {
	parts map[string][]byte
	order []string

	linkStyling bool
}

// Option configures a Document.
type Option func(*Document)

// WithLinkStyling turns on the save-time pass that colors and
// underlines runs containing absolute URLs.
func WithLinkStyling() Option {
	return func(d *Document) { d.linkStyling = true }
}

// Open parses a .docx archive from memory.
func Open(data []byte, opts ...Option) (*Document, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("opening docx: %w", err)
	}
	d := &Document{parts: make(map[string][]byte, len(zr.File))}
	for _, f := range zr.File {
		if strings.HasSuffix(f.Name, "/") {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("opening docx part %s: %w", f.Name, err)
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("reading docx part %s: %w", f.Name, err)
		}
		d.parts[f.Name] = content
		d.order = append(d.order, f.Name)
	}
	if _, ok := d.parts[documentPart]; !ok {
		return nil, ErrNotDocx
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// Endnotes returns the document's endnotes in file order.
func (d *Document) Endnotes() ([]Note, error) {
	return d.notes(endnotesPart, "endnote")
}

// Footnotes returns the document's footnotes in file order.
func (d *Document) Footnotes() ([]Note, error) {
	return d.notes(footnotesPart, "footnote")
}

func (d *Document) notes(path, local string) ([]Note, error) {
	data, ok := d.parts[path]
	if !ok {
		return nil, nil
	}
	notes, err := parseNotes(data, local)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return notes, nil
}

// parseNotes walks the note part's tokens, collecting the text of every
// w:t run inside each note element. Notes with w:id < 1 are Word's
// separator machinery and are skipped, as are notes whose text is
// empty after trimming.
func parseNotes(data []byte, local string) ([]Note, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	var (
		notes  []Note
		id     int
		inNote bool
		inText bool
		buf    strings.Builder
	)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case local:
				id = noteID(t)
				inNote = id >= 1
				buf.Reset()
			case "t":
				inText = inNote
			}
		case xml.EndElement:
			switch t.Name.Local {
			case local:
				if inNote {
					if text := strings.TrimSpace(buf.String()); text != "" {
						notes = append(notes, Note{ID: id, Text: text})
					}
				}
				inNote = false
			case "t":
				inText = false
			}
		case xml.CharData:
			if inText {
				buf.Write(t)
			}
		}
	}
	return notes, nil
}

func noteID(el xml.StartElement) int {
	for _, a := range el.Attr {
		if a.Name.Local != "id" {
			continue
		}
		id, err := strconv.Atoi(strings.TrimSpace(a.Value))
		if err != nil {
			return 0
		}
		return id
	}
	return 0
}

// WriteEndnote replaces endnote id's paragraph runs with text.
func (d *Document) WriteEndnote(id int, text string) error {
	return d.writeNote(endnotesPart, "endnote", "endnoteRef", "EndnoteReference", id, text)
}

// WriteFootnote replaces footnote id's paragraph runs with text.
func (d *Document) WriteFootnote(id int, text string) error {
	return d.writeNote(footnotesPart, "footnote", "footnoteRef", "FootnoteReference", id, text)
}

// Bytes repacks the archive. Parts that were never written come back
// byte-for-byte identical. When link styling is enabled the URL pass
// runs first; it never fails the save.
func (d *Document) Bytes() ([]byte, error) {
	if d.linkStyling {
		d.styleLinks()
	}
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range d.order {
		w, err := zw.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Deflate})
		if err != nil {
			zw.Close()
			return nil, fmt.Errorf("repacking %s: %w", name, err)
		}
		if _, err := w.Write(d.parts[name]); err != nil {
			zw.Close()
			return nil, fmt.Errorf("repacking %s: %w", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("closing docx archive: %w", err)
	}
	return buf.Bytes(), nil
}
