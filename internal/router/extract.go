package router

import (
	"regexp"
	"strings"
)

var (
	doiInText  = regexp.MustCompile(`\b10\.\d{4,9}/[^\s"<>]+`)
	pmidInText = regexp.MustCompile(`(?i)\b(?:pmid|pubmed):?\s*(\d{7,8})\b`)
	isbnRun    = regexp.MustCompile(`\b[0-9][0-9Xx\-]{8,16}[0-9Xx]\b`)
)

// ExtractDOI pulls the first DOI out of free text, with trailing
// sentence punctuation stripped.
func ExtractDOI(text string) string {
	return strings.TrimRight(doiInText.FindString(text), ".,;")
}

// ExtractPMID pulls a PubMed ID out of free text: either a labeled
// "PMID: 12345678" or the whole query being a bare 7-8 digit number.
func ExtractPMID(text string) string {
	if m := pmidInText.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	t := strings.TrimSpace(text)
	if len(t) >= 7 && len(t) <= 8 && allDigits(t) {
		return t
	}
	return ""
}

// ExtractISBN pulls an ISBN out of free text, hyphens removed: 13
// digits starting 978/979, or 10 digits with an optional trailing X.
func ExtractISBN(text string) string {
	for _, run := range isbnRun.FindAllString(text, -1) {
		digits := strings.ReplaceAll(run, "-", "")
		switch len(digits) {
		case 13:
			if (strings.HasPrefix(digits, "978") || strings.HasPrefix(digits, "979")) && allDigits(digits) {
				return digits
			}
		case 10:
			if allDigits(digits[:9]) && isDigitOrX(digits[9]) {
				return digits
			}
		}
	}
	return ""
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return s != ""
}

func isDigitOrX(b byte) bool {
	return (b >= '0' && b <= '9') || b == 'X' || b == 'x'
}
