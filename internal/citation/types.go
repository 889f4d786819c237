// Package citation defines the core domain types for resolved citations.
package citation

import "strings"

// Type classifies a citation query or resolved record. The set is closed:
// routing and formatting both switch on it.
type Type string

const (
	Legal      Type = "legal"
	Book       Type = "book"
	Journal    Type = "journal"
	Medical    Type = "medical"
	Newspaper  Type = "newspaper"
	Government Type = "government"
	Interview  Type = "interview"
	Letter     Type = "letter"
	URL        Type = "url"
	Unknown    Type = "unknown"
)

// ParseType maps a type name to its Type. Unrecognized names map to
// Unknown rather than an error, since classifier output is untrusted.
func ParseType(s string) Type {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "legal", "case", "court":
		return Legal
	case "book":
		return Book
	case "journal", "article", "academic":
		return Journal
	case "medical", "clinical":
		return Medical
	case "newspaper", "news":
		return Newspaper
	case "government", "gov":
		return Government
	case "interview":
		return Interview
	case "letter", "correspondence":
		return Letter
	case "url", "website", "web":
		return URL
	default:
		return Unknown
	}
}

func (t Type) String() string {
	if t == "" {
		return string(Unknown)
	}
	return string(t)
}

// DetectionResult is the outcome of classifying a raw query string.
// Confidence is advisory; control flow only distinguishes Unknown from
// the known types.
type DetectionResult struct {
	Type         Type    `json:"type"`
	Confidence   float64 `json:"confidence"`
	CleanedQuery string  `json:"cleaned_query"`
}
