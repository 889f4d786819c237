package format

import (
	"fmt"
	"strings"
	"testing"

	"github.com/mhutchens/citator/internal/citation"
)

func TestAPAName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Alexander Korotkov", "Korotkov, A."},
		{"John Ronald Reuel Tolkien", "Tolkien, J. R. R."},
		{"Dawkins, Richard", "Dawkins, Richard"},
		{"Cher", "Cher"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := apaName(tt.in); got != tt.want {
			t.Errorf("apaName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestAPAAuthors(t *testing.T) {
	two := apaAuthors([]string{"Alexander Korotkov", "Andrew Jordan"})
	if want := "Korotkov, A., & Jordan, A."; two != want {
		t.Errorf("apaAuthors(two) = %q, want %q", two, want)
	}

	three := apaAuthors([]string{"Ann Smith", "Bob Jones", "Carol Brown"})
	if want := "Smith, A., Jones, B., & Brown, C."; three != want {
		t.Errorf("apaAuthors(three) = %q, want %q", three, want)
	}
}

func TestAPAAuthorsTwenty(t *testing.T) {
	authors := make([]string, 20)
	for i := range authors {
		authors[i] = fmt.Sprintf("A%02d", i+1)
	}
	got := apaAuthors(authors)
	want := strings.Join(authors[:19], ", ") + ", & A20"
	if got != want {
		t.Errorf("apaAuthors(20) = %q, want %q", got, want)
	}
}

func TestAPAAuthorsTwentyOne(t *testing.T) {
	authors := make([]string, 21)
	for i := range authors {
		authors[i] = fmt.Sprintf("A%02d", i+1)
	}
	got := apaAuthors(authors)
	want := strings.Join(authors[:19], ", ") + ", ... A21"
	if got != want {
		t.Errorf("apaAuthors(21) = %q, want %q", got, want)
	}
}

func TestAPAFormat(t *testing.T) {
	tests := []struct {
		name string
		m    *citation.Metadata
		want string
	}{
		{
			name: "journal with doi",
			m: &citation.Metadata{
				Type:    citation.Journal,
				Authors: []string{"Alexander Korotkov", "Andrew Jordan"},
				Title:   "Undoing a weak measurement of a solid-state qubit",
				Journal: "Nature Physics",
				Volume:  "5",
				Issue:   "5",
				Year:    "2009",
				Pages:   "311-312",
				DOI:     "10.1038/nphys1170",
			},
			want: `Korotkov, A., & Jordan, A. (2009). Undoing a weak measurement of a solid-state qubit. <i>Nature Physics</i>, <i>5</i>(5), 311-312. https://doi.org/10.1038/nphys1170.`,
		},
		{
			name: "book with edition",
			m: &citation.Metadata{
				Type:      citation.Book,
				Authors:   []string{"Richard Dawkins"},
				Title:     "The Selfish Gene",
				Edition:   "4th ed.",
				Publisher: "Oxford University Press",
				Year:      "1976",
			},
			want: `Dawkins, R. (1976). <i>The Selfish Gene</i> (4th ed.). Oxford University Press.`,
		},
		{
			name: "legal joins court and year with space",
			m: &citation.Metadata{
				Type:     citation.Legal,
				CaseName: "Brown v. Board of Education",
				Citation: "347 U.S. 483",
				Court:    "Supreme Court of the United States",
				Year:     "1954",
			},
			want: `<i>Brown v. Board of Education</i>, 347 U.S. 483 (Supreme Court of the United States 1954).`,
		},
		{
			name: "interview",
			m: &citation.Metadata{
				Type:        citation.Interview,
				Interviewee: "Jane Goodall",
				Year:        "1997",
			},
			want: `Goodall, J. (1997). [Personal interview].`,
		},
		{
			name: "letter with recipient",
			m: &citation.Metadata{
				Type:      citation.Letter,
				Sender:    "Abigail Adams",
				Recipient: "John Adams",
				Date:      "March 31, 1776",
			},
			want: `Adams, A. (March 31, 1776). [Letter to John Adams].`,
		},
		{
			name: "newspaper",
			m: &citation.Metadata{
				Type:      citation.Newspaper,
				Authors:   []string{"Dan Bilefsky"},
				Title:     "Notre-Dame Fire Investigators Focus on Electrical Short",
				Newspaper: "The New York Times",
				Date:      "April 17, 2019",
				URL:       "https://www.nytimes.com/notre-dame.html",
			},
			want: `Bilefsky, D. (April 17, 2019). Notre-Dame Fire Investigators Focus on Electrical Short. <i>The New York Times</i>. https://www.nytimes.com/notre-dame.html.`,
		},
		{
			name: "government",
			m: &citation.Metadata{
				Type:           citation.Government,
				Agency:         "Environmental Protection Agency",
				Title:          "Inventory of U.S. Greenhouse Gas Emissions and Sinks",
				DocumentNumber: "EPA 430-R-24-004",
				Year:           "2024",
				URL:            "https://www.epa.gov/ghgemissions",
			},
			want: `Environmental Protection Agency. (2024). <i>Inventory of U.S. Greenhouse Gas Emissions and Sinks</i> (EPA 430-R-24-004). https://www.epa.gov/ghgemissions.`,
		},
		{
			name: "webpage without year",
			m: &citation.Metadata{
				Type:  citation.URL,
				Title: "The Go Memory Model",
				URL:   "https://go.dev/ref/mem",
			},
			want: `(n.d.). <i>The Go Memory Model</i>. https://go.dev/ref/mem.`,
		},
	}
	f := APA{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.Format(tt.m); got != tt.want {
				t.Errorf("Format() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAPAFormatShort(t *testing.T) {
	tests := []struct {
		name string
		m    *citation.Metadata
		want string
	}{
		{
			name: "one author",
			m:    &citation.Metadata{Authors: []string{"Richard Dawkins"}, Year: "1976"},
			want: "Dawkins (1976).",
		},
		{
			name: "two authors",
			m:    &citation.Metadata{Authors: []string{"Alexander Korotkov", "Andrew Jordan"}, Year: "2009"},
			want: "Korotkov & Jordan (2009).",
		},
		{
			name: "three authors",
			m:    &citation.Metadata{Authors: []string{"Ann Smith", "Bob Jones", "Carol Brown"}, Year: "2020"},
			want: "Smith et al. (2020).",
		},
		{
			name: "year only",
			m:    &citation.Metadata{Year: "2020"},
			want: "(2020).",
		},
	}
	f := APA{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.FormatShort(tt.m); got != tt.want {
				t.Errorf("FormatShort() = %q, want %q", got, tt.want)
			}
		})
	}
}
