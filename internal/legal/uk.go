package legal

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/mhutchens/citator/internal/citation"
)

// ukCourts maps neutral-citation court codes to court names.
var ukCourts = map[string]string{
	"UKSC":      "Supreme Court",
	"UKHL":      "House of Lords",
	"EWCA Civ":  "Court of Appeal (Civil)",
	"EWCA Crim": "Court of Appeal (Criminal)",
	"EWHC":      "High Court",
	"UKPC":      "Privy Council",
	"UKUT":      "Upper Tribunal",
	"UKFTT":     "First-tier Tribunal",
}

var neutralCitation = regexp.MustCompile(`\[(\d{4})\]\s+(\w+(?:\s+\w+)?)\s+(\d+)`)

// ParseNeutral parses a UK neutral citation such as
// "R (Miller) v Secretary of State [2017] UKSC 5". Text around the
// citation is taken as the case name; with none, the whole query
// stands in. Returns nil when no neutral-citation shape is present.
func ParseNeutral(query string) *citation.Metadata {
	m := neutralCitation.FindStringSubmatch(query)
	if m == nil {
		return nil
	}
	year, code, number := m[1], m[2], m[3]
	court, ok := ukCourts[code]
	if !ok {
		court = code
	}

	caseName := strings.TrimSpace(strings.Replace(query, m[0], "", 1))
	if caseName == "" {
		caseName = query
	}

	return &citation.Metadata{
		Type:         citation.Legal,
		CaseName:     caseName,
		Citation:     fmt.Sprintf("[%s] %s %s", year, code, number),
		Court:        court,
		Year:         year,
		Jurisdiction: "UK",
		RawSource:    query,
	}
}
