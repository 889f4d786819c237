package legal

import "testing"

func TestNormalizeKey(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "lowercase and strip punctuation",
			input: "Brown v. Board of Education",
			want:  "brown v board of education",
		},
		{
			name:  "vs collapses to v",
			input: "Roe vs Wade",
			want:  "roe v wade",
		},
		{
			name:  "versus collapses to v",
			input: "Roe versus Wade",
			want:  "roe v wade",
		},
		{
			name:  "spaces collapse",
			input: "  Miranda   v.   Arizona  ",
			want:  "miranda v arizona",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalizeKey(tt.input)
			if got != tt.want {
				t.Errorf("normalizeKey(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestLookupCase(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantName string
		wantOK   bool
	}{
		{
			name:     "exact normalized key",
			input:    "Brown v. Board of Education",
			wantName: "Brown v. Board of Education",
			wantOK:   true,
		},
		{
			name:     "shorthand alias",
			input:    "NYT v Sullivan",
			wantName: "New York Times Co. v. Sullivan",
			wantOK:   true,
		},
		{
			name:     "fuzzy match survives a typo",
			input:    "brown v bord of education",
			wantName: "Brown v. Board of Education",
			wantOK:   true,
		},
		{
			name:     "UK case",
			input:    "Donoghue v Stevenson",
			wantName: "Donoghue v Stevenson",
			wantOK:   true,
		},
		{
			name:   "unrelated title misses",
			input:  "A Brief History of Time",
			wantOK: false,
		},
		{
			name:   "empty misses",
			input:  "",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := LookupCase(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("LookupCase(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if ok && got.Name != tt.wantName {
				t.Errorf("LookupCase(%q).Name = %q, want %q", tt.input, got.Name, tt.wantName)
			}
		})
	}
}

func TestLookupCasesDedupes(t *testing.T) {
	// "brown v board" and "brown v board of education" share one case;
	// the result list must carry it once.
	got := LookupCases("brown v board", 5)
	if len(got) == 0 {
		t.Fatal("LookupCases returned nothing")
	}
	if got[0].Name != "Brown v. Board of Education" {
		t.Errorf("first match = %q, want Brown v. Board of Education", got[0].Name)
	}
	seen := make(map[string]bool)
	for _, c := range got {
		if seen[c.Name] {
			t.Errorf("duplicate case %q in results", c.Name)
		}
		seen[c.Name] = true
	}
}

func TestLookupCasesLimit(t *testing.T) {
	got := LookupCases("r v brown", 2)
	if len(got) > 2 {
		t.Errorf("got %d results, want at most 2", len(got))
	}
	if got := LookupCases("r v brown", 0); got != nil {
		t.Errorf("limit 0 returned %d results, want none", len(got))
	}
}

func TestSimilarity(t *testing.T) {
	tests := []struct {
		a, b string
		min  float64
		max  float64
	}{
		{"roe v wade", "roe v wade", 1, 1},
		{"", "", 1, 1},
		{"roe v wade", "roe v wad", 0.9, 0.95},
		{"abc", "xyz", 0, 0},
	}

	for _, tt := range tests {
		got := similarity(tt.a, tt.b)
		if got < tt.min || got > tt.max {
			t.Errorf("similarity(%q, %q) = %v, want in [%v, %v]", tt.a, tt.b, got, tt.min, tt.max)
		}
	}
}

func TestIsCitation(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{
			name:  "UK neutral citation",
			input: "[2017] UKSC 5",
			want:  true,
		},
		{
			name:  "famous case",
			input: "Miranda v. Arizona",
			want:  true,
		},
		{
			name:  "case-law URL",
			input: "https://www.oyez.org/cases/1971/70-18",
			want:  true,
		},
		{
			name:  "v token",
			input: "Smith v. Jones",
			want:  true,
		},
		{
			name:  "versus token",
			input: "Kramer versus Kramer estate dispute",
			want:  true,
		},
		{
			name:  "Westlaw reporter",
			input: "2024 WL 123456",
			want:  true,
		},
		{
			name:  "Federal Reporter",
			input: "253 F.3d 34",
			want:  true,
		},
		{
			name:  "US Reports",
			input: "388 U.S. 1",
			want:  true,
		},
		{
			name:  "Atlantic reporter",
			input: "355 A.2d 647",
			want:  true,
		},
		{
			name:  "book title",
			input: "The Structure of Scientific Revolutions",
			want:  false,
		},
		{
			name:  "plain URL",
			input: "https://example.com/some-article",
			want:  false,
		},
		{
			name:  "empty",
			input: "",
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsCitation(tt.input)
			if got != tt.want {
				t.Errorf("IsCitation(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
