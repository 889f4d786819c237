package history

import (
	"regexp"
	"strings"
)

// ibidPattern recognizes explicit repeat markers a writer types into a
// note: "ibid", "Ibid.", "ibidem", the Bluebook "Id.", with an
// optional pinpoint page in any of the usual spellings ("ibid., 45",
// "Id. at 789", "ibid., pp. 12-15"). Group 1 captures the page.
var ibidPattern = regexp.MustCompile(`(?i)^(?:ibid\.?|ibidem\.?|id\.?)(?:\s*(?:at\s+|[,.]?\s*)?(?:pp?\.?\s*)?(\d+[-–]?\d*)?)?\.?$`)

// IsIbid reports whether text is an explicit ibid marker.
func IsIbid(text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}
	return ibidPattern.MatchString(text)
}

// IbidPage extracts the pinpoint page from an ibid marker, or "" when
// the marker carries none.
func IbidPage(text string) string {
	m := ibidPattern.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}
