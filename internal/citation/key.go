package citation

import "strings"

// NormalizeDOI strips common DOI URL prefixes and lowercases the rest,
// so "https://doi.org/10.1234/ABC" and "10.1234/abc" compare equal.
func NormalizeDOI(doi string) string {
	doi = strings.ToLower(strings.TrimSpace(doi))
	doi = strings.TrimPrefix(doi, "https://doi.org/")
	doi = strings.TrimPrefix(doi, "http://doi.org/")
	doi = strings.TrimPrefix(doi, "doi.org/")
	doi = strings.TrimPrefix(doi, "doi:")
	return strings.TrimSpace(doi)
}

// NormalizeURL canonicalizes a URL for equality checks: lowercase,
// trailing slashes removed, query string dropped. Fragments survive;
// in practice note URLs do not carry them.
func NormalizeURL(raw string) string {
	u := strings.ToLower(strings.TrimSpace(raw))
	u = strings.TrimRight(u, "/")
	if i := strings.Index(u, "?"); i >= 0 {
		u = u[:i]
	}
	return u
}

// SourceKey derives the canonical identity key for a record. Strongest
// identifier wins: DOI, then URL, then the legal case+citation pair,
// then title (optionally qualified by first author), then bare case
// name. Returns "" when the record has no usable identity; an empty
// key never matches anything, including another empty key.
func SourceKey(m *Metadata) string {
	if m == nil {
		return ""
	}
	if m.DOI != "" {
		return "doi:" + NormalizeDOI(m.DOI)
	}
	if m.URL != "" {
		return "url:" + NormalizeURL(m.URL)
	}
	if m.CaseName != "" && m.Citation != "" {
		return "legal:" + lowerTrim(m.CaseName) + "|" + lowerTrim(m.Citation)
	}
	if m.Title != "" {
		key := "title:" + lowerTrim(m.Title)
		if a := m.FirstAuthor(); a != "" {
			key += "|author:" + lowerTrim(a)
		}
		return key
	}
	if m.CaseName != "" {
		return "case:" + lowerTrim(m.CaseName)
	}
	return ""
}

// URLsMatch reports whether two raw URLs are the same after
// normalization. Empty URLs never match.
func URLsMatch(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return NormalizeURL(a) == NormalizeURL(b)
}

// SourcesMatch reports whether two records share an identity key.
// Records without a key never match.
func SourcesMatch(a, b *Metadata) bool {
	ka, kb := SourceKey(a), SourceKey(b)
	if ka == "" || kb == "" {
		return false
	}
	return ka == kb
}

func lowerTrim(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
