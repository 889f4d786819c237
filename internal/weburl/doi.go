package weburl

import (
	"net/url"
	"regexp"
	"strings"
)

// academicPublishers maps publisher domains to the pattern locating
// the DOI (or a publisher-specific ID) in their article URLs. Domains
// sharing a suffix carry the same pattern, so substring matching stays
// order-independent.
var academicPublishers = map[string]*regexp.Regexp{
	"jstor.org":                regexp.MustCompile(`(?i)/stable/(\d+)`),
	"academic.oup.com":         regexp.MustCompile(`(?i)/doi/(\d+\.\d+/[^?]+)`),
	"oup.com":                  regexp.MustCompile(`(?i)/doi/(\d+\.\d+/[^?]+)`),
	"cambridge.org":            regexp.MustCompile(`(?i)/doi/(\d+\.\d+/[^?]+)`),
	"tandfonline.com":          regexp.MustCompile(`(?i)/doi/(?:abs|full)/(\d+\.\d+/[^?]+)`),
	"springer.com":             regexp.MustCompile(`(?i)/article/(\d+\.\d+/[^?]+)`),
	"link.springer.com":        regexp.MustCompile(`(?i)/article/(\d+\.\d+/[^?]+)`),
	"wiley.com":                regexp.MustCompile(`(?i)/doi/(?:abs|full|pdf)/(\d+\.\d+/[^?]+)`),
	"onlinelibrary.wiley.com":  regexp.MustCompile(`(?i)/doi/(?:abs|full|pdf)/(\d+\.\d+/[^?]+)`),
	"sagepub.com":              regexp.MustCompile(`(?i)/doi/(\d+\.\d+/[^?]+)`),
	"sciencedirect.com":        regexp.MustCompile(`(?i)/pii/([A-Z0-9]+)`), // PII, not a DOI
	"nature.com":               regexp.MustCompile(`(?i)/articles/([^?/]+)`),
	"science.org":              regexp.MustCompile(`(?i)/doi/(\d+\.\d+/[^?]+)`),
	"pnas.org":                 regexp.MustCompile(`(?i)/doi/(\d+\.\d+/[^?]+)`),
	"cell.com":                 regexp.MustCompile(`(?i)/doi/(\d+\.\d+/[^?]+)`),
	"biorxiv.org":              regexp.MustCompile(`(?i)/content/(\d+\.\d+/[^?]+)`),
	"medrxiv.org":              regexp.MustCompile(`(?i)/content/(\d+\.\d+/[^?]+)`),
	"arxiv.org":                regexp.MustCompile(`(?i)/abs/(\d+\.\d+)`), // arXiv ID, not a DOI
	"doi.org":                  regexp.MustCompile(`(?i)/(\d+\.\d+/.+)$`),
	"dx.doi.org":               regexp.MustCompile(`(?i)/(\d+\.\d+/.+)$`),
}

var (
	genericDOI = regexp.MustCompile(`(10\.\d{4,}/[^\s&?#]+)`)

	arxivModern = regexp.MustCompile(`(?i)arxiv\.org/(?:abs|pdf)/(\d+\.\d+)`)
	arxivOld    = regexp.MustCompile(`(?i)arxiv\.org/(?:abs|pdf)/([a-z-]+/\d+)`)

	pmidPath    = regexp.MustCompile(`(?i)pubmed\.ncbi\.nlm\.nih\.gov/(\d+)`)
	pmidLegacy  = regexp.MustCompile(`(?i)ncbi\.nlm\.nih\.gov/pubmed/(\d+)`)
)

// ExtractDOIFromURL pulls a DOI out of an academic publisher URL.
// Publisher IDs that are not DOIs (JSTOR stable IDs, ScienceDirect
// PIIs, arXiv IDs) yield "". A DOI anywhere in the URL is the last
// resort.
func ExtractDOIFromURL(rawURL string) string {
	if rawURL == "" {
		return ""
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")

	if strings.Contains(host, "doi.org") {
		if p := strings.TrimPrefix(u.Path, "/"); strings.HasPrefix(p, "10.") {
			return p
		}
	}

	for domain, pattern := range academicPublishers {
		if !strings.Contains(host, domain) {
			continue
		}
		m := pattern.FindStringSubmatch(rawURL)
		if m == nil {
			continue
		}
		if strings.Contains(host, "sciencedirect") {
			return ""
		}
		if strings.HasPrefix(m[1], "10.") {
			return m[1]
		}
		return ""
	}

	if m := genericDOI.FindStringSubmatch(rawURL); m != nil {
		return strings.TrimRight(m[1], ".")
	}
	return ""
}

// IsAcademicPublisherURL reports whether the URL's host belongs to a
// known academic publisher.
func IsAcademicPublisherURL(rawURL string) bool {
	if rawURL == "" {
		return false
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	for domain := range academicPublishers {
		if strings.Contains(host, domain) {
			return true
		}
	}
	return false
}

// ExtractArxivID pulls an arXiv identifier from an arxiv.org URL,
// handling both modern (2301.12345) and legacy (hep-th/9901001) forms.
func ExtractArxivID(rawURL string) string {
	if rawURL == "" || !strings.Contains(strings.ToLower(rawURL), "arxiv") {
		return ""
	}
	if m := arxivModern.FindStringSubmatch(rawURL); m != nil {
		return m[1]
	}
	if m := arxivOld.FindStringSubmatch(rawURL); m != nil {
		return m[1]
	}
	return ""
}

// ExtractPMIDFromURL pulls a PubMed ID from either the current
// pubmed.ncbi.nlm.nih.gov form or the legacy /pubmed/ path.
func ExtractPMIDFromURL(rawURL string) string {
	if rawURL == "" {
		return ""
	}
	if m := pmidPath.FindStringSubmatch(rawURL); m != nil {
		return m[1]
	}
	if m := pmidLegacy.FindStringSubmatch(rawURL); m != nil {
		return m[1]
	}
	return ""
}
