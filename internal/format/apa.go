package format

import (
	"strings"
	"unicode/utf8"

	"github.com/mhutchens/citator/internal/citation"
)

// APA renders APA (7th ed.) citations. Author names are inverted with
// initials ("Last, F. M."), the year follows the authors in
// parentheses, and article titles carry no quotation marks.
type APA struct{}

func (f APA) Format(m *citation.Metadata) string {
	if m == nil {
		return ""
	}
	switch m.Type {
	case citation.Legal:
		return f.legal(m)
	case citation.Interview:
		return f.interview(m)
	case citation.Letter:
		return f.letter(m)
	case citation.Newspaper:
		return f.newspaper(m)
	case citation.Government:
		return f.government(m)
	case citation.Book:
		return f.book(m)
	case citation.URL:
		return f.webpage(m)
	}
	return f.journal(m)
}

// FormatShort renders the parenthetical author-year form:
// "Last (Year).", "Last & Last (Year).", or "Last et al. (Year)."
func (APA) FormatShort(m *citation.Metadata) string {
	if m == nil {
		return ""
	}
	var parts []string
	if len(m.Authors) > 0 {
		last := lastName(m.Authors[0])
		switch {
		case len(m.Authors) == 2:
			parts = append(parts, last+" & "+lastName(m.Authors[1]))
		case len(m.Authors) > 2:
			parts = append(parts, last+" et al.")
		default:
			parts = append(parts, last)
		}
	}
	if m.Year != "" {
		parts = append(parts, "("+m.Year+")")
	}
	return EnsurePeriod(strings.Join(parts, " "))
}

// apaAuthors renders an author list in APA form. Up to twenty authors
// are all listed; from twenty-one the first nineteen are followed by
// an ellipsis and the final author.
func apaAuthors(authors []string) string {
	if len(authors) == 0 {
		return ""
	}
	formatted := make([]string, len(authors))
	for i, a := range authors {
		formatted[i] = apaName(a)
	}
	n := len(formatted)
	switch {
	case n == 1:
		return formatted[0]
	case n == 2:
		return formatted[0] + ", & " + formatted[1]
	case n <= 20:
		return strings.Join(formatted[:n-1], ", ") + ", & " + formatted[n-1]
	}
	return strings.Join(formatted[:19], ", ") + ", ... " + formatted[n-1]
}

// apaName converts "First Middle Last" to "Last, F. M." Names already
// in "Last, First" form pass through unchanged.
func apaName(name string) string {
	if strings.Contains(name, ",") {
		return name
	}
	parts := strings.Fields(name)
	switch len(parts) {
	case 0:
		return ""
	case 1:
		return parts[0]
	}
	initials := make([]string, len(parts)-1)
	for i, p := range parts[:len(parts)-1] {
		r, _ := utf8.DecodeRuneInString(p)
		initials[i] = strings.ToUpper(string(r)) + "."
	}
	return parts[len(parts)-1] + ", " + strings.Join(initials, " ")
}

// journal renders: Author, A. A. (Year). Title. <i>Journal</i>,
// <i>Vol</i>(Issue), Pages. DOI
func (APA) journal(m *citation.Metadata) string {
	var parts []string
	if a := apaAuthors(m.Authors); a != "" {
		parts = append(parts, a)
	}
	if m.Year != "" {
		parts = append(parts, "("+m.Year+").")
	}
	if m.Title != "" {
		parts = append(parts, m.Title+".")
	}

	var ref []string
	if m.Journal != "" {
		ref = append(ref, "<i>"+m.Journal+"</i>")
	}
	if m.Volume != "" {
		vol := "<i>" + m.Volume + "</i>"
		if m.Issue != "" {
			vol += "(" + m.Issue + ")"
		}
		ref = append(ref, vol)
	}
	if m.Pages != "" {
		ref = append(ref, m.Pages)
	}
	if len(ref) > 0 {
		parts = append(parts, strings.Join(ref, ", ")+".")
	}

	if link := doiOrURL(m); link != "" {
		parts = append(parts, link)
	}
	return finish(parts)
}

// book renders: Author, A. A. (Year). <i>Title</i> (Edition).
// Publisher. DOI
func (APA) book(m *citation.Metadata) string {
	var parts []string
	if a := apaAuthors(m.Authors); a != "" {
		parts = append(parts, a)
	}
	if m.Year != "" {
		parts = append(parts, "("+m.Year+").")
	}
	title := ""
	if m.Title != "" {
		title = "<i>" + m.Title + "</i>"
	}
	if m.Edition != "" {
		title += " (" + m.Edition + ")"
	}
	if title != "" {
		parts = append(parts, title+".")
	}
	if m.Publisher != "" {
		parts = append(parts, m.Publisher+".")
	}
	if link := doiOrURL(m); link != "" {
		parts = append(parts, link)
	}
	return finish(parts)
}

// legal renders: <i>Case Name</i>, Citation (Court Year).
func (APA) legal(m *citation.Metadata) string {
	var parts []string
	if m.CaseName != "" {
		parts = append(parts, "<i>"+m.CaseName+"</i>,")
	}
	if m.Citation != "" {
		parts = append(parts, m.Citation)
	} else if m.NeutralCitation != "" {
		parts = append(parts, m.NeutralCitation)
	}
	if cy := strings.TrimSpace(m.Court + " " + m.Year); cy != "" {
		parts = append(parts, "("+cy+")")
	}
	return finish(parts)
}

// interview renders a reference-list entry for what APA treats as a
// personal communication: Interviewee, I. (Year). [Personal
// interview].
func (APA) interview(m *citation.Metadata) string {
	var parts []string
	if m.Interviewee != "" {
		parts = append(parts, apaName(m.Interviewee))
	}
	if m.Year != "" {
		parts = append(parts, "("+m.Year+").")
	} else if m.Date != "" {
		parts = append(parts, "("+m.Date+").")
	}
	parts = append(parts, "[Personal interview].")
	return finish(parts)
}

// letter renders: Sender, S. (Date). [Letter to Recipient]. "Subject."
// Collection. URL
func (APA) letter(m *citation.Metadata) string {
	var parts []string
	if m.Sender != "" {
		parts = append(parts, apaName(m.Sender))
	}
	if m.Date != "" {
		parts = append(parts, "("+m.Date+").")
	} else if m.Year != "" {
		parts = append(parts, "("+m.Year+").")
	}
	if m.Recipient != "" {
		parts = append(parts, "[Letter to "+m.Recipient+"].")
	} else {
		parts = append(parts, "[Personal correspondence].")
	}
	if m.Title != "" {
		parts = append(parts, "\""+m.Title+".\"")
	}
	if m.Location != "" {
		parts = append(parts, m.Location+".")
	}
	if m.URL != "" {
		parts = append(parts, m.URL)
	}
	return finish(parts)
}

// newspaper renders: Author, A. A. (Date). Title. <i>Paper</i>. URL
func (APA) newspaper(m *citation.Metadata) string {
	var parts []string
	if a := apaAuthors(m.Authors); a != "" {
		parts = append(parts, a)
	}
	if m.Date != "" {
		parts = append(parts, "("+m.Date+").")
	} else if m.Year != "" {
		parts = append(parts, "("+m.Year+").")
	}
	if m.Title != "" {
		parts = append(parts, m.Title+".")
	}
	if m.Newspaper != "" {
		parts = append(parts, "<i>"+m.Newspaper+"</i>.")
	}
	if m.URL != "" {
		parts = append(parts, m.URL)
	}
	return finish(parts)
}

// government renders: Agency. (Year). <i>Title</i> (Document No.). URL
func (APA) government(m *citation.Metadata) string {
	var parts []string
	if m.Agency != "" {
		parts = append(parts, m.Agency+".")
	}
	if m.Year != "" {
		parts = append(parts, "("+m.Year+").")
	}
	if m.Title != "" {
		title := "<i>" + m.Title + "</i>"
		if m.DocumentNumber != "" {
			title += " (" + m.DocumentNumber + ")"
		}
		parts = append(parts, title+".")
	}
	if m.URL != "" {
		parts = append(parts, m.URL)
	}
	return finish(parts)
}

// webpage renders: Author. (Year). <i>Title</i>. URL, with "(n.d.)"
// standing in for a missing year.
func (APA) webpage(m *citation.Metadata) string {
	var parts []string
	if a := apaAuthors(m.Authors); a != "" {
		parts = append(parts, a)
	}
	if m.Year != "" {
		parts = append(parts, "("+m.Year+").")
	} else {
		parts = append(parts, "(n.d.).")
	}
	if m.Title != "" {
		parts = append(parts, "<i>"+m.Title+"</i>.")
	}
	if m.URL != "" {
		parts = append(parts, m.URL)
	}
	return finish(parts)
}
