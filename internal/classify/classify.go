// Package classify falls back to an LLM when rule-based detection
// cannot type a citation fragment. Classification is optional: a nil
// Classifier is a valid configuration and the router skips it.
package classify

import (
	"context"
	"fmt"
	"strings"

	"github.com/mhutchens/citator/internal/citation"
)

// Classifier types an ambiguous citation fragment. A confident miss
// is (Unknown, nil, nil); transport and parse failures carry an error
// that callers are free to ignore.
type Classifier interface {
	Classify(ctx context.Context, text string) (citation.Type, *citation.Metadata, error)
}

// systemPrompt is shared by every provider so their answers stay
// comparable.
const systemPrompt = `You are a citation classification expert. Analyze the input and classify it.

Classify as one of:
- legal: Court cases, statutes, legal documents
- book: Books, monographs
- journal: Academic journal articles, peer-reviewed papers
- newspaper: Newspaper or magazine articles
- government: Government reports, official documents
- medical: Medical or clinical content
- interview: Interviews, oral histories
- letter: Letters, correspondence
- url: Websites, online resources
- unknown: Cannot determine

Respond in JSON only:
{"type": "...", "confidence": 0.0, "title": "", "authors": [], "year": ""}`

// Config selects and authenticates a provider.
type Config struct {
	Provider string // "claude" or "gemini"
	APIKey   string
	Model    string // provider default when empty
}

// New builds the configured classifier. A blank provider or key
// yields (nil, nil): the pipeline runs fine without one.
func New(ctx context.Context, cfg Config) (Classifier, error) {
	if cfg.Provider == "" || cfg.APIKey == "" {
		return nil, nil
	}

	switch strings.ToLower(cfg.Provider) {
	case "claude":
		return NewClaude(cfg.APIKey, cfg.Model), nil
	case "gemini":
		return NewGemini(ctx, cfg.APIKey, cfg.Model)
	default:
		return nil, fmt.Errorf("unsupported classifier provider: %s", cfg.Provider)
	}
}
