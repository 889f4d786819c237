package legal

import (
	"regexp"
	"strings"
)

// KnownDomains lists hosts that serve case law. A URL containing any of
// these is treated as a legal citation before other URL routing.
var KnownDomains = []string{
	"courtlistener.com", "oyez.org", "case.law", "justia.com",
	"supremecourt.gov", "law.cornell.edu", "findlaw.com",
}

var (
	bracketYear = regexp.MustCompile(`\[\d{4}\]`)
	caseToken   = regexp.MustCompile(`(?i)\s(v|vs|versus)\.?\s`)

	// US reporter shapes: Westlaw, Federal Reporter, U.S. Reports, and
	// regional reporters like A.2d and P.3d.
	reporterPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\d{4}\s+WL\s+\d+`),
		regexp.MustCompile(`\d+\s+F\.\d+[a-z]*\s+\d+`),
		regexp.MustCompile(`\d+\s+U\.S\.\s+\d+`),
		regexp.MustCompile(`\d+\s+[A-Z]\.\d+[a-z]*\s+\d+`),
	}
)

// IsCitation reports whether text looks like a legal citation: a UK
// neutral citation, a landmark case, a case-law URL, an "X v Y" name,
// or a US reporter reference.
func IsCitation(text string) bool {
	clean := strings.TrimSpace(text)
	if clean == "" {
		return false
	}
	if strings.Contains(clean, "[") && strings.Contains(clean, "]") && bracketYear.MatchString(clean) {
		return true
	}
	if _, ok := LookupCase(clean); ok {
		return true
	}
	if strings.Contains(clean, "http") && IsLegalURL(clean) {
		return true
	}
	if caseToken.MatchString(clean) {
		return true
	}
	for _, re := range reporterPatterns {
		if re.MatchString(clean) {
			return true
		}
	}
	return false
}

// IsLegalURL reports whether s mentions a known case-law domain.
func IsLegalURL(s string) bool {
	for _, d := range KnownDomains {
		if strings.Contains(s, d) {
			return true
		}
	}
	return false
}

var neutralShape = regexp.MustCompile(`\[\d{4}\]\s+[A-Za-z]+`)

// HasNeutralShape reports whether text carries a bracketed year
// followed by a court code, the skeleton of a UK neutral citation.
func HasNeutralShape(text string) bool {
	return neutralShape.MatchString(text)
}

// HasCaseToken reports whether text contains a " v "-style party
// separator.
func HasCaseToken(text string) bool {
	return caseToken.MatchString(text)
}

// HasReporterPattern reports whether text matches a US reporter shape.
func HasReporterPattern(text string) bool {
	for _, re := range reporterPatterns {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}
