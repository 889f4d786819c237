package docx

import (
	"archive/zip"
	"bytes"
	"errors"
	"io"
	"sort"
	"strings"
	"testing"
)

const contentTypesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"><Default Extension="xml" ContentType="application/xml"/></Types>`

const documentXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body><w:p><w:r><w:t>See https://example.com/paper for details</w:t></w:r></w:p><w:p><w:r><w:rPr><w:b/></w:rPr><w:t>No link here</w:t></w:r></w:p><w:p><w:r><w:rPr><w:b/></w:rPr><w:t>https://doi.org/10.1000/x</w:t></w:r></w:p></w:body></w:document>`

const endnotesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:endnotes xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:endnote w:type="separator" w:id="-1"><w:p><w:r><w:separator/></w:r></w:p></w:endnote><w:endnote w:type="continuationSeparator" w:id="0"><w:p><w:r><w:continuationSeparator/></w:r></w:p></w:endnote><w:endnote w:id="1"><w:p><w:pPr><w:pStyle w:val="EndnoteText"/></w:pPr><w:r><w:rPr><w:rStyle w:val="EndnoteReference"/></w:rPr><w:endnoteRef/></w:r><w:r><w:t xml:space="preserve"> The Selfish Gene by Dawkins</w:t></w:r></w:p></w:endnote><w:endnote w:id="2"><w:p><w:r><w:t>ibid., 45</w:t></w:r></w:p></w:endnote></w:endnotes>`

const footnotesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:footnotes xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:footnote w:type="separator" w:id="-1"><w:p><w:r><w:separator/></w:r></w:p></w:footnote><w:footnote w:id="1"><w:p><w:r><w:t>Brown v. Board of Education, 347 U.S. 483</w:t></w:r></w:p></w:footnote></w:footnotes>`

func fixtureParts() map[string]string {
	return map[string]string{
		"[Content_Types].xml": contentTypesXML,
		"word/document.xml":   documentXML,
		"word/endnotes.xml":   endnotesXML,
		"word/footnotes.xml":  footnotesXML,
	}
}

func buildDocx(t *testing.T, parts map[string]string) []byte {
	t.Helper()
	names := make([]string, 0, len(parts))
	for name := range parts {
		names = append(names, name)
	}
	sort.Strings(names)
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range names {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("creating %s: %v", name, err)
		}
		if _, err := w.Write([]byte(parts[name])); err != nil {
			t.Fatalf("writing %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("closing fixture zip: %v", err)
	}
	return buf.Bytes()
}

func readPart(t *testing.T, data []byte, name string) string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("reopening archive: %v", err)
	}
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("opening part %s: %v", name, err)
		}
		defer rc.Close()
		content, err := io.ReadAll(rc)
		if err != nil {
			t.Fatalf("reading part %s: %v", name, err)
		}
		return string(content)
	}
	t.Fatalf("part %s not in archive", name)
	return ""
}

func TestOpenRejectsGarbage(t *testing.T) {
	if _, err := Open([]byte("not a zip archive")); err == nil {
		t.Fatal("Open accepted non-zip input")
	}
}

func TestOpenRejectsNonWordArchive(t *testing.T) {
	data := buildDocx(t, map[string]string{"README.txt": "hello"})
	_, err := Open(data)
	if !errors.Is(err, ErrNotDocx) {
		t.Fatalf("Open error = %v, want ErrNotDocx", err)
	}
}

func TestEndnotesSkipSystemNotes(t *testing.T) {
	doc, err := Open(buildDocx(t, fixtureParts()))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	notes, err := doc.Endnotes()
	if err != nil {
		t.Fatalf("Endnotes: %v", err)
	}
	want := []Note{
		{ID: 1, Text: "The Selfish Gene by Dawkins"},
		{ID: 2, Text: "ibid., 45"},
	}
	if len(notes) != len(want) {
		t.Fatalf("Endnotes returned %d notes, want %d: %+v", len(notes), len(want), notes)
	}
	for i, n := range notes {
		if n != want[i] {
			t.Errorf("note %d = %+v, want %+v", i, n, want[i])
		}
	}
}

func TestFootnotes(t *testing.T) {
	doc, err := Open(buildDocx(t, fixtureParts()))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	notes, err := doc.Footnotes()
	if err != nil {
		t.Fatalf("Footnotes: %v", err)
	}
	if len(notes) != 1 || notes[0].ID != 1 {
		t.Fatalf("Footnotes = %+v, want one note with ID 1", notes)
	}
	if want := "Brown v. Board of Education, 347 U.S. 483"; notes[0].Text != want {
		t.Errorf("footnote text = %q, want %q", notes[0].Text, want)
	}
}

func TestNotesWithoutPart(t *testing.T) {
	parts := fixtureParts()
	delete(parts, "word/endnotes.xml")
	doc, err := Open(buildDocx(t, parts))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	notes, err := doc.Endnotes()
	if err != nil {
		t.Fatalf("Endnotes: %v", err)
	}
	if notes != nil {
		t.Errorf("Endnotes = %+v, want nil for missing part", notes)
	}
}

func TestWriteEndnoteRoundTrip(t *testing.T) {
	doc, err := Open(buildDocx(t, fixtureParts()))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	formatted := `Richard Dawkins, <i>The Selfish Gene</i> (Oxford: Oxford University Press, 1976).`
	if err := doc.WriteEndnote(1, formatted); err != nil {
		t.Fatalf("WriteEndnote: %v", err)
	}
	out, err := doc.Bytes()
	if err != nil {
		t.Fatalf("Bytes: %v", err)
	}

	reopened, err := Open(out)
	if err != nil {
		t.Fatalf("reopening output: %v", err)
	}
	notes, err := reopened.Endnotes()
	if err != nil {
		t.Fatalf("Endnotes after write: %v", err)
	}
	want := "Richard Dawkins, The Selfish Gene (Oxford: Oxford University Press, 1976)."
	if len(notes) != 2 || notes[0].Text != want {
		t.Fatalf("rewritten note = %+v, want text %q", notes, want)
	}
	if notes[1].Text != "ibid., 45" {
		t.Errorf("untouched note changed: %q", notes[1].Text)
	}

	part := readPart(t, out, "word/endnotes.xml")
	if want := `<w:r><w:rPr><w:i/></w:rPr><w:t xml:space="preserve">The Selfish Gene</w:t></w:r>`; !strings.Contains(part, want) {
		t.Errorf("italic run missing from part:\n%s", part)
	}
	if !strings.Contains(part, `<w:pStyle w:val="EndnoteText"/>`) {
		t.Error("paragraph properties were not preserved")
	}
	if !strings.Contains(part, "<w:endnoteRef/>") {
		t.Error("endnote reference run was not preserved")
	}
	if strings.Contains(part, "by Dawkins") {
		t.Error("old note text survived the rewrite")
	}
}

func TestWriteLeavesOtherPartsIntact(t *testing.T) {
	parts := fixtureParts()
	doc, err := Open(buildDocx(t, parts))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := doc.WriteEndnote(2, "Ibid., 45."); err != nil {
		t.Fatalf("WriteEndnote: %v", err)
	}
	out, err := doc.Bytes()
	if err != nil {
		t.Fatalf("Bytes: %v", err)
	}
	for _, name := range []string{"[Content_Types].xml", "word/document.xml", "word/footnotes.xml"} {
		if got := readPart(t, out, name); got != parts[name] {
			t.Errorf("untouched part %s changed:\n%s", name, got)
		}
	}
}

func TestWriteFootnoteCreatesRefRun(t *testing.T) {
	doc, err := Open(buildDocx(t, fixtureParts()))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := doc.WriteFootnote(1, `<i>Brown v. Board of Education</i>, 347 U.S. 483 (1954).`); err != nil {
		t.Fatalf("WriteFootnote: %v", err)
	}
	out, err := doc.Bytes()
	if err != nil {
		t.Fatalf("Bytes: %v", err)
	}
	part := readPart(t, out, "word/footnotes.xml")
	if !strings.Contains(part, `<w:rStyle w:val="FootnoteReference"/>`) {
		t.Error("created reference run is missing its style")
	}
	if !strings.Contains(part, "<w:footnoteRef/>") {
		t.Error("footnote reference run was not created")
	}
}

func TestWriteUnknownNote(t *testing.T) {
	doc, err := Open(buildDocx(t, fixtureParts()))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := doc.WriteEndnote(99, "text"); !errors.Is(err, ErrNoteNotFound) {
		t.Errorf("WriteEndnote(99) error = %v, want ErrNoteNotFound", err)
	}
	parts := fixtureParts()
	delete(parts, "word/footnotes.xml")
	doc, err = Open(buildDocx(t, parts))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := doc.WriteFootnote(1, "text"); !errors.Is(err, ErrNoteNotFound) {
		t.Errorf("WriteFootnote without part error = %v, want ErrNoteNotFound", err)
	}
}

func TestWriteEscapesMarkup(t *testing.T) {
	doc, err := Open(buildDocx(t, fixtureParts()))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	text := `Smith & Jones, "Q < R," 2020.`
	if err := doc.WriteEndnote(2, text); err != nil {
		t.Fatalf("WriteEndnote: %v", err)
	}
	out, err := doc.Bytes()
	if err != nil {
		t.Fatalf("Bytes: %v", err)
	}
	part := readPart(t, out, "word/endnotes.xml")
	if !strings.Contains(part, "Smith &amp; Jones") || !strings.Contains(part, "Q &lt; R") {
		t.Errorf("markup not escaped in part:\n%s", part)
	}
	reopened, err := Open(out)
	if err != nil {
		t.Fatalf("reopening output: %v", err)
	}
	notes, err := reopened.Endnotes()
	if err != nil {
		t.Fatalf("Endnotes: %v", err)
	}
	if notes[1].Text != text {
		t.Errorf("round-tripped text = %q, want %q", notes[1].Text, text)
	}
}

func TestLinkStyling(t *testing.T) {
	doc, err := Open(buildDocx(t, fixtureParts()), WithLinkStyling())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	out, err := doc.Bytes()
	if err != nil {
		t.Fatalf("Bytes: %v", err)
	}
	part := readPart(t, out, "word/document.xml")
	if want := `<w:rPr><w:color w:val="0000FF"/><w:u w:val="single"/></w:rPr><w:t>See https://example.com/paper for details</w:t>`; !strings.Contains(part, want) {
		t.Errorf("bare URL run not styled:\n%s", part)
	}
	if want := `<w:rPr><w:color w:val="0000FF"/><w:u w:val="single"/><w:b/></w:rPr><w:t>https://doi.org/10.1000/x</w:t>`; !strings.Contains(part, want) {
		t.Errorf("styled URL run did not keep existing properties:\n%s", part)
	}
	if !strings.Contains(part, `<w:r><w:rPr><w:b/></w:rPr><w:t>No link here</w:t></w:r>`) {
		t.Error("run without URL was restyled")
	}
	if got := readPart(t, out, "word/endnotes.xml"); got != endnotesXML {
		t.Error("endnotes without URLs were rewritten by the styling pass")
	}
}

func TestLinkStylingDisabledByDefault(t *testing.T) {
	doc, err := Open(buildDocx(t, fixtureParts()))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	out, err := doc.Bytes()
	if err != nil {
		t.Fatalf("Bytes: %v", err)
	}
	if got := readPart(t, out, "word/document.xml"); got != documentXML {
		t.Error("document part changed without link styling enabled")
	}
}

func TestRunsForSplitsItalics(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "plain",
			text: "Plain text.",
			want: `<w:r><w:t xml:space="preserve">Plain text.</w:t></w:r>`,
		},
		{
			name: "italic only",
			text: "<i>All Italic</i>",
			want: `<w:r><w:rPr><w:i/></w:rPr><w:t xml:space="preserve">All Italic</w:t></w:r>`,
		},
		{
			name: "mixed",
			text: "a <i>b</i> c",
			want: `<w:r><w:t xml:space="preserve">a </w:t></w:r><w:r><w:rPr><w:i/></w:rPr><w:t xml:space="preserve">b</w:t></w:r><w:r><w:t xml:space="preserve"> c</w:t></w:r>`,
		},
		{
			name: "empty",
			text: "",
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := runsFor(tt.text); got != tt.want {
				t.Errorf("runsFor(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}
