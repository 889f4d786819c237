// Package detect classifies raw citation queries into citation types
// using precedence-ordered pattern rules. Detection is pure: static
// tables only, no network, no state.
package detect

import (
	"regexp"
	"strings"

	"github.com/mhutchens/citator/internal/citation"
	"github.com/mhutchens/citator/internal/legal"
	"github.com/mhutchens/citator/internal/weburl"
)

// Per-rule confidence levels. Advisory only; control flow downstream
// distinguishes Unknown from everything else.
const (
	confCache   = 0.95
	confPattern = 0.9
	confDomain  = 0.85
	confURL     = 0.6
	confUnknown = 0.3
)

var (
	doiShape  = regexp.MustCompile(`10\.\d{4,}/\S+`)
	pmidShape = regexp.MustCompile(`(?i)(?:pmid:?\s*|pubmed:?\s*)\d+`)
	isbnRun   = regexp.MustCompile(`\b[0-9][0-9Xx\-]{8,16}[0-9Xx]\b`)
)

// Detect classifies raw. Rules apply in order, first match wins; legal
// rules deliberately run before ISBN and DOI because case citations
// carry digit runs that look identifier-shaped.
func Detect(raw string) citation.DetectionResult {
	query := strings.TrimSpace(raw)
	if query == "" {
		return citation.DetectionResult{Type: citation.Unknown, Confidence: 0, CleanedQuery: ""}
	}

	result := func(t citation.Type, conf float64) citation.DetectionResult {
		return citation.DetectionResult{Type: t, Confidence: conf, CleanedQuery: query}
	}

	// Legal: UK neutral shape, landmark table, case-law domain,
	// party separator, US reporters.
	if legal.HasNeutralShape(query) {
		return result(citation.Legal, confPattern)
	}
	if _, ok := legal.LookupCase(query); ok {
		return result(citation.Legal, confCache)
	}
	if strings.Contains(query, "http") && legal.IsLegalURL(query) {
		return result(citation.Legal, confDomain)
	}
	if legal.HasCaseToken(query) {
		return result(citation.Legal, confPattern)
	}
	if legal.HasReporterPattern(query) {
		return result(citation.Legal, confPattern)
	}

	if hasISBNShape(query) {
		return result(citation.Book, confPattern)
	}
	if doiShape.MatchString(query) {
		return result(citation.Journal, confPattern)
	}
	if pmidShape.MatchString(query) {
		return result(citation.Medical, confPattern)
	}
	if weburl.IsMedical(query) {
		return result(citation.Medical, confDomain)
	}
	if weburl.IsNewspaper(query) {
		return result(citation.Newspaper, confDomain)
	}
	if weburl.IsGovernment(query) {
		return result(citation.Government, confDomain)
	}
	if weburl.IsURL(query) {
		return result(citation.URL, confURL)
	}
	return result(citation.Unknown, confUnknown)
}

// hasISBNShape reports whether query contains an ISBN-shaped digit
// run: 13 digits starting 978/979, or 10 digits with an optional
// trailing X, hyphens allowed throughout.
func hasISBNShape(query string) bool {
	for _, run := range isbnRun.FindAllString(query, -1) {
		digits := strings.ReplaceAll(run, "-", "")
		switch len(digits) {
		case 13:
			if (strings.HasPrefix(digits, "978") || strings.HasPrefix(digits, "979")) && allDigits(digits) {
				return true
			}
		case 10:
			if allDigits(digits[:9]) && isDigitOrX(digits[9]) {
				return true
			}
		}
	}
	return false
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func isDigitOrX(b byte) bool {
	return (b >= '0' && b <= '9') || b == 'X' || b == 'x'
}
