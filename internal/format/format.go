// Package format renders resolved citation metadata as citation
// strings in five styles: Chicago, APA, MLA, Bluebook, and OSCOLA.
// Italic spans are marked with <i> tags; the docx writer converts them
// to italic runs when notes are rewritten.
package format

import (
	"strings"
	"unicode"

	"github.com/mhutchens/citator/internal/citation"
)

// Formatter renders one citation style. Format produces the full
// first-reference form, FormatShort the form used for subsequent
// references to the same source.
type Formatter interface {
	Format(m *citation.Metadata) string
	FormatShort(m *citation.Metadata) string
}

// ForStyle returns the formatter for a style name. Matching is by
// case-insensitive substring, so "Chicago Manual of Style (17th ed.)"
// and "chicago" select the same formatter. Unrecognized names fall
// back to Chicago.
func ForStyle(name string) Formatter {
	s := strings.ToLower(name)
	switch {
	case strings.Contains(s, "chicago"):
		return Chicago{}
	case strings.Contains(s, "apa"):
		return APA{}
	case strings.Contains(s, "mla"):
		return MLA{}
	case strings.Contains(s, "bluebook"):
		return Bluebook{}
	case strings.Contains(s, "oscola"):
		return OSCOLA{}
	}
	return Chicago{}
}

// FormatIbid renders a repeated-source reference. It is identical
// across styles: "Ibid." bare, "Ibid., 245." with a page.
func FormatIbid(page string) string {
	if page != "" {
		return "Ibid., " + page + "."
	}
	return "Ibid."
}

// EnsurePeriod trims trailing whitespace and appends a period unless
// the text already ends with terminal punctuation.
func EnsurePeriod(text string) string {
	text = strings.TrimRightFunc(text, unicode.IsSpace)
	if text == "" {
		return ""
	}
	switch text[len(text)-1] {
	case '.', '?', '!':
		return text
	}
	return text + "."
}

// formatAuthors renders a display-name list the way Chicago notes do:
// one name verbatim, two joined with "and", three or more as
// "First et al."
func formatAuthors(authors []string) string {
	switch len(authors) {
	case 0:
		return ""
	case 1:
		return authors[0]
	case 2:
		return authors[0] + " and " + authors[1]
	}
	return authors[0] + " et al."
}

// lastName extracts a surname from either "First [Middle] Last" or
// "Last, First".
func lastName(full string) string {
	full = strings.TrimSpace(full)
	if full == "" {
		return ""
	}
	if i := strings.Index(full, ","); i >= 0 {
		return strings.TrimSpace(full[:i])
	}
	parts := strings.Fields(full)
	return parts[len(parts)-1]
}

// firstParty returns the text before the " v" separator of a case
// name, the conventional US short form.
func firstParty(name string) string {
	return strings.TrimSpace(strings.SplitN(name, " v", 2)[0])
}

// doiOrURL prefers the DOI resolver link over a plain URL.
func doiOrURL(m *citation.Metadata) string {
	if m.DOI != "" {
		return "https://doi.org/" + m.DOI
	}
	return m.URL
}

// joinClauses joins the non-empty arguments with ", ".
func joinClauses(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, ", ")
}

// finish assembles citation segments: segments are space-joined, a
// separator comma left dangling by a missing trailing field is
// dropped, and terminal punctuation is guaranteed.
func finish(parts []string) string {
	return EnsurePeriod(strings.TrimSuffix(strings.Join(parts, " "), ","))
}
