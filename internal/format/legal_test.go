package format

import (
	"testing"

	"github.com/mhutchens/citator/internal/citation"
)

func TestBluebookFormat(t *testing.T) {
	tests := []struct {
		name string
		m    *citation.Metadata
		want string
	}{
		{
			name: "supreme court in US reports omits court",
			m: &citation.Metadata{
				Type:     citation.Legal,
				CaseName: "Brown v. Board of Education",
				Citation: "347 U.S. 483",
				Court:    "Supreme Court of the United States",
				Year:     "1954",
			},
			want: `<i>Brown v. Board of Education</i>, 347 U.S. 483 (1954).`,
		},
		{
			name: "circuit court kept",
			m: &citation.Metadata{
				Type:     citation.Legal,
				CaseName: "Smith v. Jones",
				Citation: "123 F.3d 456",
				Court:    "9th Cir.",
				Year:     "1997",
			},
			want: `<i>Smith v. Jones</i>, 123 F.3d 456 (9th Cir. 1997).`,
		},
		{
			name: "neutral citation fallback",
			m: &citation.Metadata{
				Type:            citation.Legal,
				CaseName:        "Reference re Secession of Quebec",
				NeutralCitation: "[1998] 2 SCR 217",
				Year:            "1998",
			},
			want: `<i>Reference re Secession of Quebec</i>, [1998] 2 SCR 217 (1998).`,
		},
		{
			name: "journal article",
			m: &citation.Metadata{
				Type:    citation.Journal,
				Authors: []string{"Charles Reich"},
				Title:   "The New Property",
				Journal: "Yale L.J.",
				Volume:  "73",
				Pages:   "733",
				Year:    "1964",
			},
			want: `Charles Reich, <i>The New Property</i>, 73 Yale L.J. 733 (1964).`,
		},
		{
			name: "book",
			m: &citation.Metadata{
				Type:    citation.Book,
				Authors: []string{"Laurence Tribe"},
				Title:   "American Constitutional Law",
				Year:    "1978",
			},
			want: `Laurence Tribe, <i>American Constitutional Law</i> (1978).`,
		},
	}
	f := Bluebook{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.Format(tt.m); got != tt.want {
				t.Errorf("Format() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBluebookFormatShort(t *testing.T) {
	tests := []struct {
		name string
		m    *citation.Metadata
		want string
	}{
		{
			name: "first party with pinpoint",
			m: &citation.Metadata{
				Type:     citation.Legal,
				CaseName: "Brown v. Board of Education",
				Citation: "347 U.S. 483",
			},
			want: `<i>Brown</i>, 347 U.S. at 483.`,
		},
		{
			name: "strips united states prefix",
			m: &citation.Metadata{
				Type:     citation.Legal,
				CaseName: "United States v. Nixon",
				Citation: "418 U.S. 683",
			},
			want: `<i>Nixon</i>, 418 U.S. at 683.`,
		},
		{
			name: "strips in re prefix",
			m: &citation.Metadata{
				Type:     citation.Legal,
				CaseName: "In re Gault",
				Citation: "387 U.S. 1",
			},
			want: `<i>Gault</i>, 387 U.S. at 1.`,
		},
		{
			name: "case name only",
			m: &citation.Metadata{
				Type:     citation.Legal,
				CaseName: "Marbury v. Madison",
			},
			want: `<i>Marbury</i>.`,
		},
		{
			name: "non-case uses three word title",
			m: &citation.Metadata{
				Type:    citation.Journal,
				Authors: []string{"Charles Reich"},
				Title:   "The New Property and Beyond",
			},
			want: `Reich, <i>The New Property</i>.`,
		},
	}
	f := Bluebook{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.FormatShort(tt.m); got != tt.want {
				t.Errorf("FormatShort() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestOSCOLAFormat(t *testing.T) {
	tests := []struct {
		name string
		m    *citation.Metadata
		want string
	}{
		{
			name: "uk neutral citation",
			m: &citation.Metadata{
				Type:            citation.Legal,
				CaseName:        "R v Jogee",
				NeutralCitation: "[2016] UKSC 8",
				Year:            "2016",
			},
			want: `<i>R v Jogee</i> [2016] UKSC 8.`,
		},
		{
			name: "us citation gets year",
			m: &citation.Metadata{
				Type:     citation.Legal,
				CaseName: "Loving v Virginia",
				Citation: "388 U.S. 1",
				Year:     "1967",
			},
			want: `<i>Loving v Virginia</i> 388 U.S. 1 (1967).`,
		},
		{
			name: "book",
			m: &citation.Metadata{
				Type:      citation.Book,
				Authors:   []string{"Timothy Endicott"},
				Title:     "Administrative Law",
				Publisher: "Oxford University Press",
				Year:      "2021",
			},
			want: `Timothy Endicott, <i>Administrative Law</i> (Oxford University Press, 2021).`,
		},
		{
			name: "journal article cites first page",
			m: &citation.Metadata{
				Type:    citation.Journal,
				Authors: []string{"Herbert Hart"},
				Title:   "Positivism and the Separation of Law and Morals",
				Journal: "Harvard Law Review",
				Volume:  "71",
				Year:    "1958",
				Pages:   "593-629",
			},
			want: `Herbert Hart, 'Positivism and the Separation of Law and Morals' [1958] 71 Harvard Law Review 593.`,
		},
	}
	f := OSCOLA{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.Format(tt.m); got != tt.want {
				t.Errorf("Format() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestOSCOLAFormatShort(t *testing.T) {
	tests := []struct {
		name string
		m    *citation.Metadata
		want string
	}{
		{
			name: "first party",
			m:    &citation.Metadata{Type: citation.Legal, CaseName: "Donoghue v Stevenson"},
			want: `<i>Donoghue</i> (n above).`,
		},
		{
			name: "crown case uses defendant",
			m:    &citation.Metadata{Type: citation.Legal, CaseName: "R v Jogee"},
			want: `<i>Jogee</i> (n above).`,
		},
		{
			name: "non-case uses author",
			m:    &citation.Metadata{Type: citation.Journal, Authors: []string{"Herbert Hart"}},
			want: `Hart (n above).`,
		},
	}
	f := OSCOLA{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.FormatShort(tt.m); got != tt.want {
				t.Errorf("FormatShort() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFirstPage(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"593-629", "593"},
		{"593–629", "593"},
		{"593", "593"},
	}
	for _, tt := range tests {
		if got := firstPage(tt.in); got != tt.want {
			t.Errorf("firstPage(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
