package main

import (
	"context"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mhutchens/citator/internal/pipeline"
)

var (
	updateKind  string
	updateID    int
	updateOut   string
	updateStyle string
)

func init() {
	rootCmd.AddCommand(updateCmd)
	updateCmd.Flags().StringVar(&updateKind, "kind", pipeline.KindEndnote, "Note kind: endnote or footnote")
	updateCmd.Flags().IntVar(&updateID, "id", 0, "Note ID to rewrite (required)")
	updateCmd.Flags().StringVar(&updateOut, "out", "", "Output path (default: rewrite the input in place)")
	updateCmd.Flags().StringVar(&updateStyle, "style", "", "Citation style (default from config)")
	updateCmd.MarkFlagRequired("id")
}

var updateCmd = &cobra.Command{
	Use:   "update <document.docx> <text...>",
	Short: "Re-resolve a single note from new citation text",
	Long: `Resolve new citation text and rewrite one endnote or footnote with
the result, leaving every other note untouched. Useful after a
processing run resolved a note to the wrong source.

Examples:
  citator update citator_draft.docx --id 7 "Dawkins, The Selfish Gene, 1976"
  citator update citator_draft.docx --kind footnote --id 2 --out fixed.docx "10.1038/nphys1170"`,
	Args: cobra.MinimumNArgs(2),
	RunE: runUpdate,
}

func runUpdate(cmd *cobra.Command, args []string) error {
	inPath := args[0]
	query := strings.TrimSpace(strings.Join(args[1:], " "))
	if query == "" {
		exitWithError(ExitError, "no citation text given")
	}

	data, err := os.ReadFile(inPath)
	if err != nil {
		exitWithError(ExitDataError, "reading %s: %v", inPath, err)
	}

	cfg := mustLoadConfig()
	style := updateStyle
	if style == "" {
		style = cfg.Style
	}

	ctx := context.Background()
	r := buildRouter(ctx, cfg, false)

	out, rec, err := pipeline.New(r).UpdateNote(ctx, data, updateKind, updateID, query, style)
	if err != nil {
		exitWithError(ExitDataError, "updating %s %d: %v", updateKind, updateID, err)
	}

	outPath := updateOut
	if outPath == "" {
		outPath = inPath
	}
	if err := os.WriteFile(outPath, out, 0644); err != nil {
		exitWithError(ExitError, "writing %s: %v", outPath, err)
	}

	if humanOutput {
		outputHuman("%s %d now reads:\n  %s\n", updateKind, updateID, stripItalics(rec.Formatted))
		outputHuman("Wrote %s\n", outPath)
	} else {
		outputJSON(UpdateResult{Output: outPath, Note: rec})
	}
	return nil
}
