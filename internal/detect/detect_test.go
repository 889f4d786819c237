package detect

import (
	"testing"

	"github.com/mhutchens/citator/internal/citation"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantType citation.Type
	}{
		{
			name:     "UK neutral citation",
			input:    "[2017] UKSC 5",
			wantType: citation.Legal,
		},
		{
			name:     "landmark case",
			input:    "Roe v. Wade",
			wantType: citation.Legal,
		},
		{
			name:     "case-law URL",
			input:    "https://www.courtlistener.com/opinion/12345/smith-v-jones/",
			wantType: citation.Legal,
		},
		{
			name:     "unknown case name",
			input:    "Acme Corp. v. Widget Co.",
			wantType: citation.Legal,
		},
		{
			name:     "US reporter",
			input:    "347 U.S. 483",
			wantType: citation.Legal,
		},
		{
			name:     "ISBN-13 with hyphens",
			input:    "978-0-13-468599-1",
			wantType: citation.Book,
		},
		{
			name:     "ISBN-10",
			input:    "0-306-40615-2",
			wantType: citation.Book,
		},
		{
			name:     "bare ISBN-13",
			input:    "9780306406157",
			wantType: citation.Book,
		},
		{
			name:     "DOI",
			input:    "10.1093/mind/LIX.236.433",
			wantType: citation.Journal,
		},
		{
			name:     "PMID marker",
			input:    "PMID: 31978945",
			wantType: citation.Medical,
		},
		{
			name:     "pubmed URL",
			input:    "https://pubmed.ncbi.nlm.nih.gov/31978945/",
			wantType: citation.Medical,
		},
		{
			name:     "newspaper URL",
			input:    "https://www.theguardian.com/world/2023/may/01/article",
			wantType: citation.Newspaper,
		},
		{
			name:     "government URL",
			input:    "https://www.epa.gov/climate-report",
			wantType: citation.Government,
		},
		{
			name:     "generic URL",
			input:    "https://blog.example.com/essay",
			wantType: citation.URL,
		},
		{
			name:     "plain title",
			input:    "The Master and Margarita",
			wantType: citation.Unknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Detect(tt.input)
			if got.Type != tt.wantType {
				t.Errorf("Detect(%q).Type = %q, want %q", tt.input, got.Type, tt.wantType)
			}
		})
	}
}

// Legal rules run before identifier rules: a case citation carrying a
// digit run or DOI-shaped token must stay legal.
func TestDetectPrecedence(t *testing.T) {
	tests := []struct {
		input    string
		wantType citation.Type
	}{
		{"Acme Corp. v. Widget Co., 550 U.S. 544", citation.Legal},
		{"Smith v. Jones 10.1234/abc", citation.Legal},
		{"Smith v. Jones 978-0-13-468599-1", citation.Legal},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := Detect(tt.input)
			if got.Type != tt.wantType {
				t.Errorf("Detect(%q).Type = %q, want %q", tt.input, got.Type, tt.wantType)
			}
		})
	}
}

func TestDetectEmpty(t *testing.T) {
	for _, input := range []string{"", "   ", "\t\n"} {
		got := Detect(input)
		if got.Type != citation.Unknown {
			t.Errorf("Detect(%q).Type = %q, want unknown", input, got.Type)
		}
		if got.Confidence != 0 {
			t.Errorf("Detect(%q).Confidence = %v, want 0", input, got.Confidence)
		}
	}
}

func TestDetectConfidences(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"Miranda v. Arizona", 0.95},         // landmark table hit
		{"[2017] UKSC 5", 0.9},               // pattern
		{"978-0-13-468599-1", 0.9},           // pattern
		{"https://www.justia.com/cases/x", 0.85}, // domain
		{"https://blog.example.com/essay", 0.6},  // bare URL
		{"The Master and Margarita", 0.3},        // unknown
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := Detect(tt.input)
			if got.Confidence != tt.want {
				t.Errorf("Detect(%q).Confidence = %v, want %v", tt.input, got.Confidence, tt.want)
			}
		})
	}
}

func TestDetectCleanedQuery(t *testing.T) {
	got := Detect("  Roe v. Wade  ")
	if got.CleanedQuery != "Roe v. Wade" {
		t.Errorf("CleanedQuery = %q, want trimmed", got.CleanedQuery)
	}
}
