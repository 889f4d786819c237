package classify

import (
	"context"
	"testing"

	"github.com/mhutchens/citator/internal/citation"
)

func TestParseAnswer(t *testing.T) {
	tests := []struct {
		name     string
		reply    string
		wantType citation.Type
		wantNil  bool
		wantErr  bool
	}{
		{
			name:     "bare json",
			reply:    `{"type": "book", "confidence": 0.9, "title": "Mind Games", "authors": ["Eric Caplan"], "year": "1998"}`,
			wantType: citation.Book,
		},
		{
			name: "fenced json",
			reply: "```json\n" +
				`{"type": "journal", "confidence": 0.8, "title": "On Computable Numbers"}` +
				"\n```",
			wantType: citation.Journal,
		},
		{
			name:     "prose wrapped",
			reply:    `Sure! Here is the classification: {"type": "legal", "confidence": 0.7} Hope that helps.`,
			wantType: citation.Legal,
		},
		{
			name:     "unknown type is a clean miss",
			reply:    `{"type": "unknown", "confidence": 0.2}`,
			wantType: citation.Unknown,
			wantNil:  true,
		},
		{
			name:     "unrecognized type maps to unknown",
			reply:    `{"type": "sonnet", "confidence": 0.9}`,
			wantType: citation.Unknown,
			wantNil:  true,
		},
		{
			name:     "no json",
			reply:    "I cannot classify that.",
			wantType: citation.Unknown,
			wantNil:  true,
			wantErr:  true,
		},
		{
			name:     "malformed json",
			reply:    `{"type": "book",`,
			wantType: citation.Unknown,
			wantNil:  true,
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			typ, meta, err := parseAnswer(tt.reply, "original query", "Test Router")
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseAnswer() error = %v, wantErr %v", err, tt.wantErr)
			}
			if typ != tt.wantType {
				t.Errorf("type = %v, want %v", typ, tt.wantType)
			}
			if (meta == nil) != tt.wantNil {
				t.Errorf("metadata = %+v, wantNil %v", meta, tt.wantNil)
			}
		})
	}
}

func TestParseAnswerMetadata(t *testing.T) {
	reply := `{"type": "book", "confidence": 0.9, "title": "Mind Games", "authors": ["Eric Caplan"], "year": "1998"}`
	_, meta, err := parseAnswer(reply, "Eric Caplan mind games", "Claude Router")
	if err != nil {
		t.Fatalf("parseAnswer() error: %v", err)
	}

	if meta.Title != "Mind Games" {
		t.Errorf("Title = %q, want Mind Games", meta.Title)
	}
	if len(meta.Authors) != 1 || meta.Authors[0] != "Eric Caplan" {
		t.Errorf("Authors = %v", meta.Authors)
	}
	if meta.Year != "1998" {
		t.Errorf("Year = %q, want 1998", meta.Year)
	}
	if meta.Confidence != 0.9 {
		t.Errorf("Confidence = %v, want 0.9", meta.Confidence)
	}
	if meta.RawSource != "Eric Caplan mind games" {
		t.Errorf("RawSource = %q", meta.RawSource)
	}
	if meta.SourceEngine != "Claude Router" {
		t.Errorf("SourceEngine = %q", meta.SourceEngine)
	}
}

func TestParseAnswerDefaultConfidence(t *testing.T) {
	_, meta, err := parseAnswer(`{"type": "book", "title": "Untitled"}`, "q", "Test Router")
	if err != nil {
		t.Fatalf("parseAnswer() error: %v", err)
	}
	if meta.Confidence != 0.5 {
		t.Errorf("Confidence = %v, want the 0.5 default", meta.Confidence)
	}
}

func TestNewDisabled(t *testing.T) {
	c, err := New(context.Background(), Config{})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if c != nil {
		t.Errorf("New() = %v, want nil classifier when unconfigured", c)
	}

	c, err = New(context.Background(), Config{Provider: "claude"})
	if err != nil || c != nil {
		t.Errorf("New() without key = (%v, %v), want (nil, nil)", c, err)
	}
}

func TestNewUnsupportedProvider(t *testing.T) {
	_, err := New(context.Background(), Config{Provider: "copilot", APIKey: "k"})
	if err == nil {
		t.Error("New() with unsupported provider should error")
	}
}
