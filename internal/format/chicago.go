package format

import (
	"strings"

	"github.com/mhutchens/citator/internal/citation"
)

// Chicago renders Chicago Manual of Style (17th ed.) citations in the
// notes-bibliography form used across the humanities. Titles of
// articles sit in quotation marks with the comma tucked inside;
// container titles are italicized.
type Chicago struct{}

func (f Chicago) Format(m *citation.Metadata) string {
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

func (f Chicago) FormatShort(m *citation.Metadata) string {
	if m == nil {
		return ""
	}
	switch m.Type {
	case citation.Legal:
		return f.legalShort(m)
	case citation.Interview:
		return f.interviewShort(m)
	case citation.Letter:
		return f.letterShort(m)
	}
	return f.generalShort(m)
}

// journal renders: Author, "Title," <i>Journal</i> Vol, no. N (Year):
// Pages, URL. Medical articles use the same pattern.
func (Chicago) journal(m *citation.Metadata) string {
	var parts []string
	if a := formatAuthors(m.Authors); a != "" {
		parts = append(parts, a+",")
	}
	if m.Title != "" {
		parts = append(parts, "\""+m.Title+",\"")
	}

	ref := ""
	if m.Journal != "" {
		ref = "<i>" + m.Journal + "</i>"
	}
	if m.Volume != "" {
		if ref != "" {
			ref += " "
		}
		ref += m.Volume
	}
	if m.Issue != "" {
		if ref != "" {
			ref += ", "
		}
		ref += "no. " + m.Issue
	}
	if m.Year != "" {
		if ref != "" {
			ref += " "
		}
		ref += "(" + m.Year + ")"
	}
	if m.Pages != "" {
		if ref != "" {
			ref += ": "
		}
		ref += m.Pages
	}

	link := doiOrURL(m)
	if ref != "" {
		if link != "" {
			ref += ","
		}
		parts = append(parts, ref)
	}
	if link != "" {
		parts = append(parts, link)
	}
	return finish(parts)
}

// book renders: Author, <i>Title</i> (Place: Publisher, Year).
func (Chicago) book(m *citation.Metadata) string {
	var parts []string
	if a := formatAuthors(m.Authors); a != "" {
		parts = append(parts, a+",")
	}
	if m.Title != "" {
		parts = append(parts, "<i>"+m.Title+"</i>")
	}
	if pub := pubInfo(m.Place, m.Publisher, m.Year); pub != "" {
		parts = append(parts, "("+pub+")")
	}
	return finish(parts)
}

// pubInfo builds the parenthetical imprint. With both a place and a
// publisher the form is "Place: Publisher, Year"; otherwise whatever
// fields exist are comma-joined.
func pubInfo(place, publisher, year string) string {
	if place != "" && publisher != "" {
		s := place + ": " + publisher
		if year != "" {
			s += ", " + year
		}
		return s
	}
	return joinClauses(place, publisher, year)
}

// legal renders: <i>Case Name</i>, Citation (Court, Year).
func (Chicago) legal(m *citation.Metadata) string {
	var parts []string
	if m.CaseName != "" {
		parts = append(parts, "<i>"+m.CaseName+"</i>,")
	}
	if m.Citation != "" {
		parts = append(parts, m.Citation)
	} else if m.NeutralCitation != "" {
		parts = append(parts, m.NeutralCitation)
	}
	if cy := joinClauses(m.Court, m.Year); cy != "" {
		parts = append(parts, "("+cy+")")
	}
	return finish(parts)
}

// legalShort renders: <i>FirstParty</i>, at Page. The page is the last
// token of the reporter citation.
func (Chicago) legalShort(m *citation.Metadata) string {
	var parts []string
	if m.CaseName != "" {
		parts = append(parts, "<i>"+firstParty(m.CaseName)+"</i>")
	}
	if fields := strings.Fields(m.Citation); len(fields) > 0 {
		parts = append(parts, "at "+fields[len(fields)-1])
	}
	return EnsurePeriod(strings.Join(parts, ", "))
}

// interview renders: Interviewee, interview, by Interviewer, Date,
// Location.
func (Chicago) interview(m *citation.Metadata) string {
	var parts []string
	switch {
	case m.Interviewee != "":
		parts = append(parts, m.Interviewee, "interview")
	case m.Interviewer != "":
		parts = append(parts, "Interview")
	}
	if m.Interviewer != "" {
		parts = append(parts, "by "+m.Interviewer)
	}
	if m.Date != "" {
		parts = append(parts, m.Date)
	}
	if m.Location != "" {
		parts = append(parts, m.Location)
	}
	return EnsurePeriod(strings.Join(parts, ", "))
}

func (Chicago) interviewShort(m *citation.Metadata) string {
	if m.Interviewee != "" {
		return EnsurePeriod(m.Interviewee + " interview")
	}
	return EnsurePeriod("Interview")
}

// letter renders: Sender to Recipient, "Subject", Date, Collection,
// URL.
func (Chicago) letter(m *citation.Metadata) string {
	var parts []string
	switch {
	case m.Sender != "" && m.Recipient != "":
		parts = append(parts, m.Sender+" to "+m.Recipient)
	case m.Sender != "":
		parts = append(parts, m.Sender)
	case m.Recipient != "":
		parts = append(parts, "Letter to "+m.Recipient)
	}
	if m.Title != "" {
		parts = append(parts, "\""+m.Title+"\"")
	}
	if m.Date != "" {
		parts = append(parts, m.Date)
	}
	if m.Location != "" {
		parts = append(parts, m.Location)
	}
	if m.URL != "" {
		parts = append(parts, m.URL)
	}
	return EnsurePeriod(strings.Join(parts, ", "))
}

// letterShort renders: SenderLast to RecipientLast, Date.
func (Chicago) letterShort(m *citation.Metadata) string {
	var parts []string
	switch {
	case m.Sender != "" && m.Recipient != "":
		parts = append(parts, lastName(m.Sender)+" to "+lastName(m.Recipient))
	case m.Sender != "":
		parts = append(parts, lastName(m.Sender))
	}
	if m.Date != "" {
		parts = append(parts, m.Date)
	}
	return EnsurePeriod(strings.Join(parts, ", "))
}

// newspaper renders: Author, "Title," <i>Paper</i>, Date, URL.
func (Chicago) newspaper(m *citation.Metadata) string {
	var parts []string
	if a := formatAuthors(m.Authors); a != "" {
		parts = append(parts, a+",")
	}
	if m.Title != "" {
		parts = append(parts, "\""+m.Title+",\"")
	}
	if m.Newspaper != "" {
		parts = append(parts, "<i>"+m.Newspaper+"</i>,")
	}
	if m.Date != "" {
		parts = append(parts, m.Date+",")
	}
	if m.URL != "" {
		parts = append(parts, m.URL)
	}
	return finish(parts)
}

// government renders: Agency, "Title," Document No., URL.
func (Chicago) government(m *citation.Metadata) string {
	var parts []string
	if m.Agency != "" {
		parts = append(parts, m.Agency+",")
	}
	if m.Title != "" {
		parts = append(parts, "\""+m.Title+",\"")
	}
	if m.DocumentNumber != "" {
		parts = append(parts, m.DocumentNumber+",")
	}
	if m.URL != "" {
		parts = append(parts, m.URL)
	}
	return finish(parts)
}

// webpage renders: "Title," URL.
func (Chicago) webpage(m *citation.Metadata) string {
	var parts []string
	if m.Title != "" {
		parts = append(parts, "\""+m.Title+",\"")
	}
	if m.URL != "" {
		parts = append(parts, m.URL)
	}
	return finish(parts)
}

// generalShort renders: Last, "First Four Words...". The short title is
// italicized instead of quoted for books.
func (Chicago) generalShort(m *citation.Metadata) string {
	var parts []string
	if last := lastName(m.FirstAuthor()); last != "" {
		parts = append(parts, last+",")
	}
	if m.Title != "" {
		words := strings.Fields(m.Title)
		short := strings.Join(words[:min(4, len(words))], " ")
		if len(words) > 4 {
			short += "..."
		}
		if m.Type == citation.Book {
			parts = append(parts, "<i>"+short+"</i>")
		} else {
			parts = append(parts, "\""+short+"\"")
		}
	}
	return finish(parts)
}
