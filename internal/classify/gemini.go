package classify

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/mhutchens/citator/internal/citation"
)

const (
	geminiEngine       = "Gemini Router"
	defaultGeminiModel = "gemini-2.0-flash"
)

// Gemini classifies fragments through the Google generative AI API.
type Gemini struct {
	client *genai.Client
	model  string
}

// NewGemini creates a Gemini-backed classifier.
func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}
	if model == "" {
		model = defaultGeminiModel
	}
	return &Gemini{client: client, model: model}, nil
}

// Classify sends the fragment to Gemini and parses the JSON verdict.
func (g *Gemini) Classify(ctx context.Context, text string) (citation.Type, *citation.Metadata, error) {
	model := g.client.GenerativeModel(g.model)
	model.SetTemperature(0.1)
	model.SetMaxOutputTokens(512)

	resp, err := model.GenerateContent(ctx, genai.Text(systemPrompt+"\n\nInput:\n"+text))
	if err != nil {
		return citation.Unknown, nil, fmt.Errorf("gemini classify: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return citation.Unknown, nil, fmt.Errorf("gemini classify: empty reply")
	}
	txt, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return citation.Unknown, nil, fmt.Errorf("gemini classify: non-text reply")
	}
	return parseAnswer(string(txt), text, geminiEngine)
}

// Close releases the underlying API connection.
func (g *Gemini) Close() error {
	return g.client.Close()
}
