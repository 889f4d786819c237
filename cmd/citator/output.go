package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/mhutchens/citator/internal/citation"
	"github.com/mhutchens/citator/internal/pipeline"
)

// outputJSON writes a value as formatted JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputHuman writes a human-readable string to stdout.
func outputHuman(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// exitWithError outputs an error in the appropriate format (human or JSON) and exits.
func exitWithError(code int, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if humanOutput {
		fmt.Fprintf(os.Stderr, "error: %s\n", msg)
	} else {
		outputJSON(ErrorResponse{Error: msg})
	}
	os.Exit(code)
}

// ErrorResponse is a JSON error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// CiteResult is the response for a single resolution.
type CiteResult struct {
	Citation string             `json:"citation"`
	Type     citation.Type      `json:"type"`
	Source   string             `json:"source,omitempty"`
	Metadata *citation.Metadata `json:"metadata"`
}

// CiteOptions is the response for a --multiple resolution.
type CiteOptions struct {
	Query   string       `json:"query"`
	Options []CiteResult `json:"options"`
}

// ProcessResult is the response for a document run.
type ProcessResult struct {
	Output string                       `json:"output"`
	Stats  pipeline.Stats               `json:"stats"`
	Notes  []pipeline.ProcessedCitation `json:"notes"`
}

// UpdateResult is the response for a single-note rewrite.
type UpdateResult struct {
	Output string                     `json:"output"`
	Note   pipeline.ProcessedCitation `json:"note"`
}

// stripItalics removes the <i> markup that carries italic spans into
// docx runs, for terminal display.
func stripItalics(s string) string {
	s = strings.ReplaceAll(s, "<i>", "")
	return strings.ReplaceAll(s, "</i>", "")
}

// printCiteHuman prints one resolution as a readable block.
func printCiteHuman(r CiteResult) {
	outputHuman("%s\n", stripItalics(r.Citation))
	if r.Source != "" {
		outputHuman("  (%s via %s)\n", r.Type, r.Source)
	} else {
		outputHuman("  (%s)\n", r.Type)
	}
}

// printStatsHuman prints a document run summary.
func printStatsHuman(stats pipeline.Stats) {
	outputHuman("Processed %d notes: %d resolved, %d kept as written\n", stats.Total, stats.Success, stats.Failed)
	outputHuman("Forms: %d full, %d ibid, %d short\n", stats.Full, stats.Ibid, stats.Short)
}
