// Package weburl classifies URLs by domain and extracts citation
// metadata from them without network access: identifier extraction
// (DOI, arXiv, PMID) plus table-driven newspaper, government, and
// academic-publisher handling.
package weburl

import "strings"

// medicalDomains route to PubMed rather than the government extractor,
// even though some sit under .gov.
var medicalDomains = []string{
	"pubmed", "ncbi.nlm.nih.gov", "nih.gov/health", "medlineplus",
}

// newspaperDomains maps news sites to their mastheads.
var newspaperDomains = map[string]string{
	"nytimes.com":        "The New York Times",
	"washingtonpost.com": "The Washington Post",
	"wsj.com":            "The Wall Street Journal",
	"theguardian.com":    "The Guardian",
	"ft.com":             "Financial Times",
	"economist.com":      "The Economist",
	"latimes.com":        "Los Angeles Times",
	"chicagotribune.com": "Chicago Tribune",
	"usatoday.com":       "USA Today",
	"bostonglobe.com":    "The Boston Globe",
	"thetimes.co.uk":     "The Times",
	"telegraph.co.uk":    "The Daily Telegraph",
	"independent.co.uk":  "The Independent",
	"bbc.co.uk":          "BBC News",
	"bbc.com":            "BBC News",
	"reuters.com":        "Reuters",
	"apnews.com":         "Associated Press",
	"bloomberg.com":      "Bloomberg",
	"npr.org":            "NPR",
	"cnn.com":            "CNN",
	"theatlantic.com":    "The Atlantic",
	"newyorker.com":      "The New Yorker",
	"politico.com":       "Politico",
}

// govAgencies maps government domains to issuing agencies.
var govAgencies = map[string]string{
	"whitehouse.gov": "The White House",
	"congress.gov":   "U.S. Congress",
	"senate.gov":     "U.S. Senate",
	"house.gov":      "U.S. House of Representatives",
	"state.gov":      "U.S. Department of State",
	"justice.gov":    "U.S. Department of Justice",
	"treasury.gov":   "U.S. Department of the Treasury",
	"defense.gov":    "U.S. Department of Defense",
	"ed.gov":         "U.S. Department of Education",
	"energy.gov":     "U.S. Department of Energy",
	"epa.gov":        "Environmental Protection Agency",
	"fda.gov":        "Food and Drug Administration",
	"cdc.gov":        "Centers for Disease Control and Prevention",
	"nasa.gov":       "NASA",
	"nih.gov":        "National Institutes of Health",
	"irs.gov":        "Internal Revenue Service",
	"sec.gov":        "Securities and Exchange Commission",
	"ftc.gov":        "Federal Trade Commission",
	"fcc.gov":        "Federal Communications Commission",
	"gao.gov":        "Government Accountability Office",
	"cbo.gov":        "Congressional Budget Office",
	"census.gov":     "U.S. Census Bureau",
	"bls.gov":        "Bureau of Labor Statistics",
	"loc.gov":        "Library of Congress",
	"archives.gov":   "National Archives",
	"gov.uk":         "UK Government",
}

// IsMedical reports whether text mentions a medical domain. Substring
// match, so it also catches "pubmed 12345678"-style queries.
func IsMedical(text string) bool {
	lower := strings.ToLower(text)
	for _, d := range medicalDomains {
		if strings.Contains(lower, d) {
			return true
		}
	}
	return false
}

// IsNewspaper reports whether text mentions a known news domain.
func IsNewspaper(text string) bool {
	lower := strings.ToLower(text)
	for d := range newspaperDomains {
		if strings.Contains(lower, d) {
			return true
		}
	}
	return false
}

// IsGovernment reports whether text points at a .gov site that is not
// a medical one. Medical .gov domains route to PubMed instead.
func IsGovernment(text string) bool {
	return strings.Contains(strings.ToLower(text), ".gov") && !IsMedical(text)
}

// Masthead returns the publication name for a news URL.
func Masthead(rawURL string) (string, bool) {
	lower := strings.ToLower(rawURL)
	for d, name := range newspaperDomains {
		if strings.Contains(lower, d) {
			return name, true
		}
	}
	return "", false
}

// Agency returns the issuing agency for a government URL.
func Agency(rawURL string) (string, bool) {
	lower := strings.ToLower(rawURL)
	for d, name := range govAgencies {
		if strings.Contains(lower, d) {
			return name, true
		}
	}
	return "", false
}
