package classify

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mhutchens/citator/internal/citation"
)

// answer is the JSON shape both providers are instructed to return.
type answer struct {
	Type       string   `json:"type"`
	Confidence float64  `json:"confidence"`
	Title      string   `json:"title"`
	Authors    []string `json:"authors"`
	Year       string   `json:"year"`
}

// parseAnswer reads a model reply into a type and metadata. Models
// wrap JSON in code fences or prose often enough that the parser cuts
// from the first brace to the last before unmarshaling.
func parseAnswer(reply, original, engine string) (citation.Type, *citation.Metadata, error) {
	start := strings.Index(reply, "{")
	end := strings.LastIndex(reply, "}")
	if start < 0 || end <= start {
		return citation.Unknown, nil, fmt.Errorf("no JSON object in reply")
	}

	var a answer
	if err := json.Unmarshal([]byte(reply[start:end+1]), &a); err != nil {
		return citation.Unknown, nil, fmt.Errorf("parsing reply: %w", err)
	}

	typ := citation.ParseType(a.Type)
	if typ == citation.Unknown {
		return citation.Unknown, nil, nil
	}

	confidence := a.Confidence
	if confidence == 0 {
		confidence = 0.5
	}

	return typ, &citation.Metadata{
		Type:         typ,
		Title:        a.Title,
		Authors:      a.Authors,
		Year:         a.Year,
		Confidence:   confidence,
		SourceEngine: engine,
		RawSource:    original,
	}, nil
}
