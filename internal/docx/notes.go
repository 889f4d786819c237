package docx

import (
	"fmt"
	"regexp"
	"strings"
)

// The write path edits the note XML as text rather than re-serializing
// the whole part, so everything outside the rewritten paragraph keeps
// its original bytes. OOXML runs and paragraphs never nest, which is
// what makes the non-greedy patterns below safe.
var (
	paraRe     = regexp.MustCompile(`(?s)<w:p(?: [^>]*)?>.*?</w:p>`)
	paraOpenRe = regexp.MustCompile(`^<w:p(?: [^>]*)?>`)
	paraPrRe   = regexp.MustCompile(`(?s)<w:pPr(?: [^>]*)?>.*?</w:pPr>|<w:pPr(?: [^>]*)?/>`)
	runRe      = regexp.MustCompile(`(?s)<w:r(?: [^>]*)?>.*?</w:r>`)
	italicRe   = regexp.MustCompile(`(?s)<i>.*?</i>`)
)

func (d *Document) writeNote(path, local, refTag, refStyle string, id int, text string) error {
	data, ok := d.parts[path]
	if !ok {
		return fmt.Errorf("%w: no %s part", ErrNoteNotFound, path)
	}
	s := string(data)
	notePattern := regexp.MustCompile(fmt.Sprintf(
		`(?s)(<w:%s [^>]*\bw:id="%d"[^>]*>)(.*?)(</w:%s>)`, local, id, local))
	m := notePattern.FindStringSubmatchIndex(s)
	if m == nil {
		return fmt.Errorf("%w: %s %d", ErrNoteNotFound, local, id)
	}
	inner := s[m[4]:m[5]]
	d.parts[path] = []byte(s[:m[4]] + rewriteNoteBody(inner, refTag, refStyle, text) + s[m[5]:])
	return nil
}

// rewriteNoteBody replaces the first paragraph's runs with runs built
// from text, keeping the paragraph's open tag, its properties, and the
// note-reference run. Word drops the superscript number without the
// reference run, so a styled one is created when the paragraph lacks
// it. Notes without any paragraph get a fresh one appended.
func rewriteNoteBody(inner, refTag, refStyle, text string) string {
	runs := runsFor(text)
	pm := paraRe.FindStringIndex(inner)
	if pm == nil {
		return inner + "<w:p>" + refRun(refTag, refStyle) + runs + "</w:p>"
	}
	para := inner[pm[0]:pm[1]]
	open := paraOpenRe.FindString(para)
	props := paraPrRe.FindString(para)
	ref := ""
	for _, r := range runRe.FindAllString(para, -1) {
		if strings.Contains(r, "<w:"+refTag) {
			ref = r
			break
		}
	}
	if ref == "" {
		ref = refRun(refTag, refStyle)
	}
	return inner[:pm[0]] + open + props + ref + runs + "</w:p>" + inner[pm[1]:]
}

func refRun(refTag, refStyle string) string {
	return `<w:r><w:rPr><w:rStyle w:val="` + refStyle + `"/></w:rPr><w:` + refTag + `/></w:r>`
}

// runsFor splits formatted text on <i>...</i> spans and emits one run
// per segment, italic segments carrying <w:i/>. Every w:t is marked
// xml:space="preserve" so leading and trailing spaces survive Word.
func runsFor(text string) string {
	var b strings.Builder
	last := 0
	for _, loc := range italicRe.FindAllStringIndex(text, -1) {
		writeRun(&b, text[last:loc[0]], false)
		writeRun(&b, text[loc[0]+len("<i>"):loc[1]-len("</i>")], true)
		last = loc[1]
	}
	writeRun(&b, text[last:], false)
	return b.String()
}

func writeRun(b *strings.Builder, text string, italic bool) {
	if text == "" {
		return
	}
	b.WriteString("<w:r>")
	if italic {
		b.WriteString("<w:rPr><w:i/></w:rPr>")
	}
	b.WriteString(`<w:t xml:space="preserve">`)
	b.WriteString(escapeXML(text))
	b.WriteString("</w:t></w:r>")
}

var xmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

func escapeXML(s string) string { return xmlEscaper.Replace(s) }
