package format

import (
	"fmt"
	"testing"
)

func TestEnsurePeriod(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"adds period", "Smith, Title", "Smith, Title."},
		{"keeps period", "Smith, Title.", "Smith, Title."},
		{"keeps question mark", "Who Governs?", "Who Governs?"},
		{"keeps exclamation", "Oklahoma!", "Oklahoma!"},
		{"trims trailing space", "Smith, Title  ", "Smith, Title."},
		{"empty", "", ""},
		{"whitespace only", "   ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EnsurePeriod(tt.in); got != tt.want {
				t.Errorf("EnsurePeriod(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFormatIbid(t *testing.T) {
	if got := FormatIbid(""); got != "Ibid." {
		t.Errorf("FormatIbid(%q) = %q, want %q", "", got, "Ibid.")
	}
	if got := FormatIbid("245"); got != "Ibid., 245." {
		t.Errorf("FormatIbid(%q) = %q, want %q", "245", got, "Ibid., 245.")
	}
}

func TestFormatAuthors(t *testing.T) {
	tests := []struct {
		name    string
		authors []string
		want    string
	}{
		{"none", nil, ""},
		{"one", []string{"Jane Goodall"}, "Jane Goodall"},
		{"two", []string{"Alexander Korotkov", "Andrew Jordan"}, "Alexander Korotkov and Andrew Jordan"},
		{"three", []string{"A Smith", "B Jones", "C Brown"}, "A Smith et al."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatAuthors(tt.authors); got != tt.want {
				t.Errorf("formatAuthors(%v) = %q, want %q", tt.authors, got, tt.want)
			}
		})
	}
}

func TestLastName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Jane Goodall", "Goodall"},
		{"John Ronald Reuel Tolkien", "Tolkien"},
		{"Dawkins, Richard", "Dawkins"},
		{"Cher", "Cher"},
		{"  Ursula K. Le Guin  ", "Guin"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := lastName(tt.in); got != tt.want {
			t.Errorf("lastName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFirstParty(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Brown v. Board of Education", "Brown"},
		{"Marbury v. Madison", "Marbury"},
		{"Donoghue v Stevenson", "Donoghue"},
		{"In re Gault", "In re Gault"},
	}
	for _, tt := range tests {
		if got := firstParty(tt.in); got != tt.want {
			t.Errorf("firstParty(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestForStyle(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Chicago Manual of Style (17th ed.)", "format.Chicago"},
		{"chicago", "format.Chicago"},
		{"APA 7th edition", "format.APA"},
		{"mla", "format.MLA"},
		{"Bluebook (21st ed.)", "format.Bluebook"},
		{"OSCOLA 4th", "format.OSCOLA"},
		{"vancouver", "format.Chicago"},
		{"", "format.Chicago"},
	}
	for _, tt := range tests {
		if got := fmt.Sprintf("%T", ForStyle(tt.in)); got != tt.want {
			t.Errorf("ForStyle(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}
