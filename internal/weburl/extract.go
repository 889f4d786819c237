package weburl

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/mhutchens/citator/internal/citation"
)

// IsURL reports whether s is a well-formed absolute http(s) URL.
func IsURL(s string) bool {
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

var (
	slugExt = regexp.MustCompile(`(?i)\.(htm|html|pdf|aspx|php|jsp)$`)

	interviewPattern = regexp.MustCompile(`(?i)^(?:an?\s+)?interview\s+with\s+([^,]+?)(?:\s+by\s+([^,]+))?(?:,\s*(.*))?$`)
	letterPrefix     = regexp.MustCompile(`(?i)^letter\s+(?:from\s+)?`)
	letterPattern    = regexp.MustCompile(`^(.+?)\s+to\s+([^,]+)(?:,\s*(.*))?$`)
)

// Extract builds best-effort metadata for markers no network engine
// resolves: government and newspaper URLs from the domain tables,
// generic URLs from their slug, and interview/letter descriptions from
// their conventional phrasing.
func Extract(text string, typ citation.Type) *citation.Metadata {
	text = strings.TrimSpace(text)
	switch typ {
	case citation.Interview:
		return parseInterview(text)
	case citation.Letter:
		return parseLetter(text)
	case citation.Government:
		return extractGovernment(text)
	case citation.Newspaper:
		return extractNewspaper(text)
	default:
		return extractGeneric(text)
	}
}

func extractGovernment(text string) *citation.Metadata {
	meta := &citation.Metadata{
		Type:      citation.Government,
		RawSource: text,
	}
	if IsURL(text) {
		meta.URL = text
		meta.Title = slugTitle(text)
		if a, ok := Agency(text); ok {
			meta.Agency = a
		} else {
			meta.Agency = hostOf(text)
		}
		if meta.Title == "" {
			meta.Title = meta.Agency
		}
	} else {
		meta.Title = text
	}
	return meta
}

func extractNewspaper(text string) *citation.Metadata {
	meta := &citation.Metadata{
		Type:      citation.Newspaper,
		RawSource: text,
	}
	if IsURL(text) {
		meta.URL = text
		meta.Title = slugTitle(text)
		if m, ok := Masthead(text); ok {
			meta.Newspaper = m
		} else {
			meta.Newspaper = hostOf(text)
		}
		if meta.Title == "" {
			meta.Title = meta.Newspaper
		}
	} else {
		meta.Title = text
	}
	return meta
}

func extractGeneric(text string) *citation.Metadata {
	meta := &citation.Metadata{
		Type:      citation.URL,
		RawSource: text,
	}
	if IsURL(text) {
		meta.URL = text
		meta.Title = slugTitle(text)
		if meta.Title == "" {
			meta.Title = hostOf(text)
		}
	} else {
		meta.Title = text
	}
	return meta
}

// parseInterview reads "Interview with X by Y, Date" phrasing. Anything
// unparseable keeps the whole text as title.
func parseInterview(text string) *citation.Metadata {
	meta := &citation.Metadata{
		Type:      citation.Interview,
		RawSource: text,
	}
	m := interviewPattern.FindStringSubmatch(text)
	if m == nil {
		meta.Title = text
		return meta
	}
	meta.Interviewee = strings.TrimSpace(m[1])
	meta.Interviewer = strings.TrimSpace(m[2])
	meta.Date = strings.TrimSpace(m[3])
	return meta
}

// parseLetter reads "Letter from X to Y, Date" phrasing, with the
// leading "Letter from" optional.
func parseLetter(text string) *citation.Metadata {
	meta := &citation.Metadata{
		Type:      citation.Letter,
		RawSource: text,
	}
	body := letterPrefix.ReplaceAllString(text, "")
	m := letterPattern.FindStringSubmatch(body)
	if m == nil {
		meta.Title = text
		return meta
	}
	meta.Sender = strings.TrimSpace(m[1])
	meta.Recipient = strings.TrimSpace(m[2])
	meta.Date = strings.TrimSpace(m[3])
	return meta
}

// slugTitle reads a human-ish title from the last path segment of a
// URL. Empty when the URL has no path.
func slugTitle(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	var seg string
	for _, part := range strings.Split(u.Path, "/") {
		if part != "" {
			seg = part
		}
	}
	if seg == "" {
		return ""
	}
	if dec, err := url.PathUnescape(seg); err == nil {
		seg = dec
	}
	seg = slugExt.ReplaceAllString(seg, "")
	seg = strings.NewReplacer("_", " ", "-", " ", "+", " ").Replace(seg)
	return strings.Join(strings.Fields(seg), " ")
}

func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(u.Hostname(), "www.")
}
