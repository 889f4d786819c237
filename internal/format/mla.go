package format

import (
	"strings"

	"github.com/mhutchens/citator/internal/citation"
)

// MLA renders MLA (9th ed.) citations. The first author is inverted
// ("Last, First"), later authors are not, and sources follow the
// container model with the journal or site as container.
type MLA struct{}

func (f MLA) Format(m *citation.Metadata) string {
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

// FormatShort renders the in-text form: "(Last).", "(Last and
// Last2).", or "(Last et al.)."
func (MLA) FormatShort(m *citation.Metadata) string {
	if m == nil {
		return ""
	}
	var parts []string
	if len(m.Authors) > 0 {
		last := lastName(m.Authors[0])
		switch {
		case len(m.Authors) > 2:
			parts = append(parts, last+" et al.")
		case len(m.Authors) == 2:
			parts = append(parts, last+" and "+lastName(m.Authors[1]))
		default:
			parts = append(parts, last)
		}
	}
	return EnsurePeriod("(" + strings.Join(parts, " ") + ")")
}

// mlaAuthors renders an author list in MLA form: the first author
// inverted, a second author in natural order, three or more shortened
// to "et al."
func mlaAuthors(authors []string) string {
	switch len(authors) {
	case 0:
		return ""
	case 1:
		return mlaFirstAuthor(authors[0])
	case 2:
		return mlaFirstAuthor(authors[0]) + ", and " + mlaOtherAuthor(authors[1])
	}
	return mlaFirstAuthor(authors[0]) + ", et al."
}

// mlaFirstAuthor inverts "First Middle Last" to "Last, First Middle".
// Names already containing a comma pass through unchanged.
func mlaFirstAuthor(name string) string {
	parts := strings.Fields(name)
	switch len(parts) {
	case 0:
		return ""
	case 1:
		return parts[0]
	}
	if strings.Contains(name, ",") {
		return name
	}
	return parts[len(parts)-1] + ", " + strings.Join(parts[:len(parts)-1], " ")
}

// mlaOtherAuthor restores natural order for a non-first author that
// arrived as "Last, First".
func mlaOtherAuthor(name string) string {
	parts := strings.Split(name, ",")
	if len(parts) >= 2 {
		return strings.TrimSpace(parts[1]) + " " + strings.TrimSpace(parts[0])
	}
	return name
}

// journal renders: Author. "Title." <i>Journal</i>, vol. V, no. N,
// Year, pp. Pages. DOI.
func (MLA) journal(m *citation.Metadata) string {
	var parts []string
	if a := mlaAuthors(m.Authors); a != "" {
		parts = append(parts, a+".")
	}
	if m.Title != "" {
		parts = append(parts, "\""+m.Title+".\"")
	}

	var container []string
	if m.Journal != "" {
		container = append(container, "<i>"+m.Journal+"</i>")
	}
	if m.Volume != "" {
		container = append(container, "vol. "+m.Volume)
	}
	if m.Issue != "" {
		container = append(container, "no. "+m.Issue)
	}
	if m.Year != "" {
		container = append(container, m.Year)
	}
	if m.Pages != "" {
		container = append(container, "pp. "+m.Pages)
	}
	if len(container) > 0 {
		parts = append(parts, strings.Join(container, ", ")+".")
	}

	if link := doiOrURL(m); link != "" {
		parts = append(parts, link+".")
	}
	return finish(parts)
}

// book renders: Author. <i>Title</i>. Edition, Publisher, Year.
func (MLA) book(m *citation.Metadata) string {
	var parts []string
	if a := mlaAuthors(m.Authors); a != "" {
		parts = append(parts, a+".")
	}
	if m.Title != "" {
		parts = append(parts, "<i>"+m.Title+"</i>.")
	}
	if m.Edition != "" {
		parts = append(parts, m.Edition+",")
	}
	if m.Publisher != "" {
		parts = append(parts, m.Publisher+",")
	}
	if m.Year != "" {
		parts = append(parts, m.Year+".")
	}
	return finish(parts)
}

// legal renders: <i>Case Name</i>. Citation. Court, Year.
func (MLA) legal(m *citation.Metadata) string {
	var parts []string
	if m.CaseName != "" {
		parts = append(parts, "<i>"+m.CaseName+"</i>.")
	}
	if m.Citation != "" {
		parts = append(parts, m.Citation+".")
	} else if m.NeutralCitation != "" {
		parts = append(parts, m.NeutralCitation+".")
	}
	if m.Court != "" {
		parts = append(parts, m.Court+",")
	}
	if m.Year != "" {
		parts = append(parts, m.Year+".")
	}
	return finish(parts)
}

// interview renders: Interviewee. Interview. By Interviewer. Date.
func (MLA) interview(m *citation.Metadata) string {
	var parts []string
	if m.Interviewee != "" {
		parts = append(parts, mlaFirstAuthor(m.Interviewee)+".")
	}
	parts = append(parts, "Interview.")
	if m.Interviewer != "" {
		parts = append(parts, "By "+m.Interviewer+".")
	}
	if m.Date != "" {
		parts = append(parts, m.Date+".")
	}
	return finish(parts)
}

// letter renders: Sender. "Subject." Letter to Recipient. Date.
// Collection. URL.
func (MLA) letter(m *citation.Metadata) string {
	var parts []string
	if m.Sender != "" {
		parts = append(parts, mlaFirstAuthor(m.Sender)+".")
	}
	if m.Title != "" {
		parts = append(parts, "\""+m.Title+".\"")
	}
	if m.Recipient != "" {
		parts = append(parts, "Letter to "+m.Recipient+".")
	} else {
		parts = append(parts, "Letter.")
	}
	if m.Date != "" {
		parts = append(parts, m.Date+".")
	}
	if m.Location != "" {
		parts = append(parts, m.Location+".")
	}
	if m.URL != "" {
		parts = append(parts, m.URL+".")
	}
	return finish(parts)
}

// newspaper renders: Author. "Title." <i>Paper</i>, Date, URL.
func (MLA) newspaper(m *citation.Metadata) string {
	var parts []string
	if a := mlaAuthors(m.Authors); a != "" {
		parts = append(parts, a+".")
	}
	if m.Title != "" {
		parts = append(parts, "\""+m.Title+".\"")
	}
	if m.Newspaper != "" {
		parts = append(parts, "<i>"+m.Newspaper+"</i>,")
	}
	if m.Date != "" {
		parts = append(parts, m.Date+",")
	}
	if m.URL != "" {
		parts = append(parts, m.URL+".")
	}
	return finish(parts)
}

// government renders: Agency. <i>Title</i>. Publisher, Year. URL. The
// publisher is skipped when it repeats the agency.
func (MLA) government(m *citation.Metadata) string {
	var parts []string
	if m.Agency != "" {
		parts = append(parts, m.Agency+".")
	}
	if m.Title != "" {
		parts = append(parts, "<i>"+m.Title+"</i>.")
	}
	if m.Publisher != "" && m.Publisher != m.Agency {
		parts = append(parts, m.Publisher+",")
	}
	if m.Year != "" {
		parts = append(parts, m.Year+".")
	}
	if m.URL != "" {
		parts = append(parts, m.URL+".")
	}
	return finish(parts)
}

// webpage renders: Author. "Title." Date, URL.
func (MLA) webpage(m *citation.Metadata) string {
	var parts []string
	if a := mlaAuthors(m.Authors); a != "" {
		parts = append(parts, a+".")
	}
	if m.Title != "" {
		parts = append(parts, "\""+m.Title+".\"")
	}
	if m.Date != "" {
		parts = append(parts, m.Date+",")
	} else if m.Year != "" {
		parts = append(parts, m.Year+",")
	}
	if m.URL != "" {
		parts = append(parts, m.URL+".")
	}
	return finish(parts)
}
