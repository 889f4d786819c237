package format

import (
	"strings"

	"github.com/mhutchens/citator/internal/citation"
)

// proceduralPhrases are lead-ins stripped from a case name before the
// Bluebook short form is taken.
var proceduralPhrases = []string{"In re ", "Ex parte ", "United States v. ", "State v. "}

// Bluebook renders US legal citations per the Bluebook (21st ed.),
// with the Chicago-like fallback it prescribes for non-case sources.
type Bluebook struct{}

func (f Bluebook) Format(m *citation.Metadata) string {
	if m == nil {
		return ""
	}
	if m.Type == citation.Legal {
		return f.formatCase(m)
	}
	return f.other(m)
}

func (f Bluebook) FormatShort(m *citation.Metadata) string {
	if m == nil {
		return ""
	}
	if m.Type == citation.Legal {
		return f.caseShort(m)
	}
	return f.generalShort(m)
}

// formatCase renders: <i>Case Name</i>, Volume Reporter Page (Court
// Year). The court is omitted for Supreme Court decisions reported in
// U.S. Reports, where the reporter already implies it.
func (Bluebook) formatCase(m *citation.Metadata) string {
	var parts []string
	if m.CaseName != "" {
		parts = append(parts, "<i>"+m.CaseName+"</i>,")
	}
	if m.Citation != "" {
		parts = append(parts, m.Citation)
	} else if m.NeutralCitation != "" {
		parts = append(parts, m.NeutralCitation)
	}

	var paren []string
	if m.Court != "" && m.Citation != "" {
		if !strings.Contains(m.Citation, "U.S.") || !strings.Contains(m.Court, "Supreme Court") {
			paren = append(paren, m.Court)
		}
	}
	if m.Year != "" {
		paren = append(paren, m.Year)
	}
	if len(paren) > 0 {
		parts = append(parts, "("+strings.Join(paren, " ")+")")
	}
	return finish(parts)
}

// caseShort renders: <i>ShortName</i>, Volume Reporter at Page.
func (Bluebook) caseShort(m *citation.Metadata) string {
	var parts []string
	if m.CaseName != "" {
		short := firstParty(m.CaseName)
		for _, phrase := range proceduralPhrases {
			if strings.HasPrefix(m.CaseName, phrase) {
				short = firstParty(m.CaseName[len(phrase):])
				break
			}
		}
		parts = append(parts, "<i>"+short+"</i>,")
	}
	if fields := strings.Fields(m.Citation); len(fields) >= 2 {
		parts = append(parts, fields[0]+" "+fields[1]+" at "+fields[len(fields)-1])
	}
	return finish(parts)
}

// other renders non-case sources: Author, <i>Title</i>, Vol Journal
// Pages (Year).
func (Bluebook) other(m *citation.Metadata) string {
	var parts []string
	if a := formatAuthors(m.Authors); a != "" {
		parts = append(parts, a+",")
	}
	if m.Title != "" {
		if m.Type == citation.Book {
			parts = append(parts, "<i>"+m.Title+"</i>")
		} else {
			parts = append(parts, "<i>"+m.Title+"</i>,")
		}
	}
	if m.Journal != "" {
		if m.Volume != "" {
			parts = append(parts, strings.TrimSpace(m.Volume+" "+m.Journal+" "+m.Pages))
		} else {
			parts = append(parts, m.Journal)
		}
	}
	if m.Year != "" {
		parts = append(parts, "("+m.Year+")")
	}
	return finish(parts)
}

// generalShort renders: Last, <i>First Three Words</i>.
func (Bluebook) generalShort(m *citation.Metadata) string {
	var parts []string
	if last := lastName(m.FirstAuthor()); last != "" {
		parts = append(parts, last+",")
	}
	if m.Title != "" {
		words := strings.Fields(m.Title)
		short := strings.Join(words[:min(3, len(words))], " ")
		parts = append(parts, "<i>"+short+"</i>")
	}
	return finish(parts)
}

// OSCOLA renders UK legal citations per OSCOLA (4th ed.). Neutral
// citations are preferred and already carry the year in brackets; a
// US-style reporter citation gets the year appended in parentheses.
type OSCOLA struct{}

func (f OSCOLA) Format(m *citation.Metadata) string {
	if m == nil {
		return ""
	}
	if m.Type == citation.Legal {
		return f.formatCase(m)
	}
	return f.other(m)
}

func (f OSCOLA) FormatShort(m *citation.Metadata) string {
	if m == nil {
		return ""
	}
	if m.Type == citation.Legal {
		return f.caseShort(m)
	}
	return f.generalShort(m)
}

// formatCase renders: <i>Case Name</i> [Year] Court N, or, for a
// US-style citation, <i>Case Name</i> Citation (Year).
func (OSCOLA) formatCase(m *citation.Metadata) string {
	var parts []string
	if m.CaseName != "" {
		parts = append(parts, "<i>"+m.CaseName+"</i>")
	}
	if m.NeutralCitation != "" {
		parts = append(parts, m.NeutralCitation)
	} else if m.Citation != "" {
		parts = append(parts, m.Citation)
		if m.Year != "" {
			parts = append(parts, "("+m.Year+")")
		}
	}
	return finish(parts)
}

// caseShort renders: <i>ShortName</i> (n above). Crown prosecutions
// ("R v X") shorten to the defendant's first word rather than to "R".
func (OSCOLA) caseShort(m *citation.Metadata) string {
	var parts []string
	if m.CaseName != "" {
		short := strings.TrimSpace(strings.SplitN(m.CaseName, " v ", 2)[0])
		if rest, ok := strings.CutPrefix(m.CaseName, "R v "); ok {
			if fields := strings.Fields(rest); len(fields) > 0 {
				short = fields[0]
			}
		}
		parts = append(parts, "<i>"+short+"</i>")
	}
	parts = append(parts, "(n above)")
	return finish(parts)
}

// other renders non-case sources: books as Author, <i>Title</i>
// (Publisher, Year); articles as Author, 'Title' [Year] Vol Journal
// FirstPage.
func (OSCOLA) other(m *citation.Metadata) string {
	var parts []string
	if a := formatAuthors(m.Authors); a != "" {
		parts = append(parts, a+",")
	}
	if m.Title != "" {
		if m.Type == citation.Book {
			parts = append(parts, "<i>"+m.Title+"</i>")
		} else {
			parts = append(parts, "'"+m.Title+"'")
		}
	}
	if m.Type == citation.Book {
		if pub := joinClauses(m.Publisher, m.Year); pub != "" {
			parts = append(parts, "("+pub+")")
		}
	} else if m.Journal != "" {
		var cite []string
		if m.Year != "" {
			cite = append(cite, "["+m.Year+"]")
		}
		if m.Volume != "" {
			cite = append(cite, m.Volume)
		}
		cite = append(cite, m.Journal)
		if m.Pages != "" {
			cite = append(cite, firstPage(m.Pages))
		}
		parts = append(parts, strings.Join(cite, " "))
	}
	return finish(parts)
}

// generalShort renders: Last (n above).
func (OSCOLA) generalShort(m *citation.Metadata) string {
	var parts []string
	if last := lastName(m.FirstAuthor()); last != "" {
		parts = append(parts, last)
	}
	parts = append(parts, "(n above)")
	return finish(parts)
}

// firstPage returns the opening page of a page range, accepting either
// a hyphen or an en dash as separator.
func firstPage(pages string) string {
	first := strings.SplitN(pages, "-", 2)[0]
	return strings.SplitN(first, "–", 2)[0]
}
