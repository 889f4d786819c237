package main

import (
	"context"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mhutchens/citator/internal/pipeline"
	"github.com/mhutchens/citator/internal/storage"
)

var (
	processOut     string
	processStyle   string
	processResults string
	processLinks   bool
)

func init() {
	rootCmd.AddCommand(processCmd)
	processCmd.Flags().StringVar(&processOut, "out", "", "Output path (default citator_<input> beside the input)")
	processCmd.Flags().StringVar(&processStyle, "style", "", "Citation style (default from config)")
	processCmd.Flags().StringVar(&processResults, "results", "", "Append per-note records to this JSONL file")
	processCmd.Flags().BoolVar(&processLinks, "links", true, "Style URLs blue and underlined")
}

// defaultOutputPath places the rewritten document beside the input
// with the same prefix the HTTP download uses.
func defaultOutputPath(inPath string) string {
	return filepath.Join(filepath.Dir(inPath), "citator_"+filepath.Base(inPath))
}

var processCmd = &cobra.Command{
	Use:   "process <document.docx>",
	Short: "Resolve and rewrite every endnote and footnote in a document",
	Long: `Process a .docx manuscript: every endnote and footnote is treated as
a citation query, resolved, and rewritten in the chosen style. Repeated
sources become ibid or short-form references; notes that cannot be
resolved keep their original text.

Examples:
  citator process draft.docx
  citator process draft.docx --style apa --out final.docx
  citator process draft.docx --results run.jsonl --human`,
	Args: cobra.ExactArgs(1),
	RunE: runProcess,
}

func runProcess(cmd *cobra.Command, args []string) error {
	inPath := args[0]
	data, err := os.ReadFile(inPath)
	if err != nil {
		exitWithError(ExitDataError, "reading %s: %v", inPath, err)
	}

	cfg := mustLoadConfig()
	style := processStyle
	if style == "" {
		style = cfg.Style
	}

	ctx := context.Background()
	r := buildRouter(ctx, cfg, false)

	var opts []pipeline.Option
	if processLinks {
		opts = append(opts, pipeline.WithLinkStyling())
	}
	if processResults != "" {
		opts = append(opts, pipeline.WithResultsLog(storage.NewResultsLog(processResults)))
	}

	out, results, err := pipeline.New(r, opts...).Process(ctx, data, style)
	if err != nil {
		exitWithError(ExitDataError, "processing %s: %v", inPath, err)
	}

	outPath := processOut
	if outPath == "" {
		outPath = defaultOutputPath(inPath)
	}
	if err := os.WriteFile(outPath, out, 0644); err != nil {
		exitWithError(ExitError, "writing %s: %v", outPath, err)
	}

	stats := pipeline.Summarize(results)
	if humanOutput {
		printStatsHuman(stats)
		outputHuman("Wrote %s\n", outPath)
	} else {
		outputJSON(ProcessResult{Output: outPath, Stats: stats, Notes: results})
	}
	return nil
}
