package pdfref

import "testing"

func TestFindDOI(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "plain DOI",
			text: "Some paper text\ndoi: 10.1038/nature12373\nmore text",
			want: "10.1038/nature12373",
		},
		{
			name: "DOI with trailing period",
			text: "See https://doi.org/10.1126/science.1260419. for details",
			want: "10.1126/science.1260419",
		},
		{
			name: "DOI in parentheses",
			text: "(10.1000/journal.pone.0000001)",
			want: "10.1000/journal.pone.0000001",
		},
		{
			name: "no DOI",
			text: "This text mentions version 10.5 but has no identifier",
			want: "",
		},
		{
			name: "too short after slash",
			text: "10.1234/",
			want: "",
		},
		{
			name: "first of several",
			text: "10.1093/aob/mcq010 then 10.1093/aob/mcq999",
			want: "10.1093/aob/mcq010",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := findDOI(tt.text); got != tt.want {
				t.Errorf("findDOI() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFindISBN(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "hyphenated ISBN-13",
			text: "ISBN 978-0-19-512345-3\nPrinted in the United States",
			want: "9780195123453",
		},
		{
			name: "labeled ISBN-10",
			text: "ISBN-10: 0-19-512345-X",
			want: "019512345X",
		},
		{
			name: "colon separated",
			text: "ISBN: 9780306406157",
			want: "9780306406157",
		},
		{
			name: "no ISBN",
			text: "A book without its number printed",
			want: "",
		},
		{
			name: "wrong digit count ignored",
			text: "ISBN 978-0-19-51",
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := findISBN(tt.text); got != tt.want {
				t.Errorf("findISBN() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsValidDOI(t *testing.T) {
	valid := []string{"10.1038/nature12373", "10.48550/arXiv.2201.00001"}
	invalid := []string{"10.1/x", "11.1038/nature", "10.1038", "10.1038/"}

	for _, doi := range valid {
		if !isValidDOI(doi) {
			t.Errorf("isValidDOI(%q) = false, want true", doi)
		}
	}
	for _, doi := range invalid {
		if isValidDOI(doi) {
			t.Errorf("isValidDOI(%q) = true, want false", doi)
		}
	}
}

func TestIsHeaderLine(t *testing.T) {
	headers := []string{
		"Journal of Theoretical Biology",
		"Volume 12, Issue 3",
		"Copyright 2019 The Authors",
		"Research Article — Published 3 May 2020",
	}
	for _, line := range headers {
		if !isHeaderLine(line) {
			t.Errorf("isHeaderLine(%q) = false, want true", line)
		}
	}

	if isHeaderLine("The Evolution of Cooperation in Finite Populations") {
		t.Error("title line misidentified as header")
	}
}
