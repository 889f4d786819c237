package docx

import (
	"regexp"
	"strings"
)

var (
	urlRe     = regexp.MustCompile(`https?://[^\s<>"]+`)
	runTextRe = regexp.MustCompile(`(?s)<w:t(?: [^>]*)?>(.*?)</w:t>`)
	runOpenRe = regexp.MustCompile(`^<w:r(?: [^>]*)?>`)
)

// styleLinks colors and underlines every run whose text contains an
// absolute URL, across the document body and both note parts. Word
// renders the text clickable once AutoFormat sees the styling. The
// pass is best-effort: existing color or underline properties are left
// alone, and a part that cannot be styled is simply skipped.
func (d *Document) styleLinks() {
	for _, path := range []string{documentPart, endnotesPart, footnotesPart} {
		part, ok := d.parts[path]
		if !ok {
			continue
		}
		d.parts[path] = []byte(styleURLRuns(string(part)))
	}
}

func styleURLRuns(s string) string {
	return runRe.ReplaceAllStringFunc(s, func(run string) string {
		if !runHasURL(run) {
			return run
		}
		return styleRun(run)
	})
}

func runHasURL(run string) bool {
	for _, m := range runTextRe.FindAllStringSubmatch(run, -1) {
		if urlRe.MatchString(m[1]) {
			return true
		}
	}
	return false
}

func styleRun(run string) string {
	const (
		color     = `<w:color w:val="0000FF"/>`
		underline = `<w:u w:val="single"/>`
	)
	if i := strings.Index(run, "<w:rPr>"); i >= 0 {
		inject := ""
		if !strings.Contains(run, "<w:color") {
			inject += color
		}
		if !strings.Contains(run, "<w:u ") && !strings.Contains(run, "<w:u/") {
			inject += underline
		}
		return run[:i+len("<w:rPr>")] + inject + run[i+len("<w:rPr>"):]
	}
	open := runOpenRe.FindString(run)
	if open == "" {
		return run
	}
	return open + "<w:rPr>" + color + underline + "</w:rPr>" + run[len(open):]
}
