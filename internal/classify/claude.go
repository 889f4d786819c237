package classify

import (
	"context"
	"fmt"

	"github.com/liushuangls/go-anthropic/v2"

	"github.com/mhutchens/citator/internal/citation"
)

const (
	claudeEngine       = "Claude Router"
	defaultClaudeModel = "claude-sonnet-4-20250514"
	claudeMaxTokens    = 1024
)

// Claude classifies fragments through the Anthropic Messages API.
type Claude struct {
	client *anthropic.Client
	model  string
}

// NewClaude creates a Claude-backed classifier.
func NewClaude(apiKey, model string) *Claude {
	if model == "" {
		model = defaultClaudeModel
	}
	return &Claude{
		client: anthropic.NewClient(apiKey),
		model:  model,
	}
}

// Classify sends the fragment to Claude and parses the JSON verdict.
func (c *Claude) Classify(ctx context.Context, text string) (citation.Type, *citation.Metadata, error) {
	resp, err := c.client.CreateMessages(ctx, anthropic.MessagesRequest{
		Model:     anthropic.Model(c.model),
		System:    systemPrompt,
		MaxTokens: claudeMaxTokens,
		Messages: []anthropic.Message{
			{
				Role: anthropic.RoleUser,
				Content: []anthropic.MessageContent{
					anthropic.NewTextMessageContent("Classify this citation:\n\n" + text),
				},
			},
		},
	})
	if err != nil {
		return citation.Unknown, nil, fmt.Errorf("claude classify: %w", err)
	}

	if len(resp.Content) == 0 || resp.Content[0].Text == nil {
		return citation.Unknown, nil, fmt.Errorf("claude classify: empty reply")
	}
	return parseAnswer(*resp.Content[0].Text, text, claudeEngine)
}
