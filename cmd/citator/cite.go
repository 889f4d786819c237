package main

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mhutchens/citator/internal/format"
	"github.com/mhutchens/citator/internal/pdfref"
)

var (
	citeStyle    string
	citeNoCache  bool
	citeMultiple bool
	citeLimit    int
	citePDF      string
)

func init() {
	rootCmd.AddCommand(citeCmd)
	citeCmd.Flags().StringVar(&citeStyle, "style", "", "Citation style: chicago, apa, mla, bluebook, oscola (default from config)")
	citeCmd.Flags().BoolVar(&citeNoCache, "no-cache", false, "Bypass the resolution cache")
	citeCmd.Flags().BoolVar(&citeMultiple, "multiple", false, "Return several candidate resolutions")
	citeCmd.Flags().IntVar(&citeLimit, "limit", 5, "Maximum candidates with --multiple")
	citeCmd.Flags().StringVar(&citePDF, "pdf", "", "Build the query from a PDF's DOI, ISBN, or title")
}

var citeCmd = &cobra.Command{
	Use:   "cite [text...]",
	Short: "Resolve citation text into a formatted citation",
	Long: `Resolve a free-text citation fragment, identifier, or URL into a
formatted citation. The query is classified, routed to the engines
suited to its type, and the fastest acceptable answer wins.

Examples:
  citator cite "Dawkins, The Selfish Gene"
  citator cite 10.1038/nphys1170 --style apa
  citator cite "Brown v. Board of Education" --style bluebook
  citator cite --pdf paper.pdf
  citator cite "selfish gene" --multiple --limit 3 --human`,
	RunE: runCite,
}

func runCite(cmd *cobra.Command, args []string) error {
	query := strings.TrimSpace(strings.Join(args, " "))
	if citePDF != "" {
		q, err := pdfref.Query(citePDF)
		if err != nil {
			exitWithError(ExitDataError, "reading %s: %v", citePDF, err)
		}
		if q == "" {
			exitWithError(ExitDataError, "%s yields no citable DOI, ISBN, or title", citePDF)
		}
		query = q
	}
	if query == "" {
		exitWithError(ExitError, "no citation text given")
	}

	cfg := mustLoadConfig()
	style := citeStyle
	if style == "" {
		style = cfg.Style
	}

	ctx := context.Background()
	r := buildRouter(ctx, cfg, citeNoCache)

	if citeMultiple {
		f := format.ForStyle(style)
		options := r.ResolveMultiple(ctx, query, citeLimit)
		if len(options) == 0 {
			exitWithError(ExitDataError, "no sources found for %q", query)
		}
		resp := CiteOptions{Query: query}
		for _, m := range options {
			resp.Options = append(resp.Options, CiteResult{
				Citation: f.Format(m),
				Type:     m.Type,
				Source:   m.SourceEngine,
				Metadata: m,
			})
		}
		if humanOutput {
			for i, opt := range resp.Options {
				outputHuman("%d. %s\n", i+1, stripItalics(opt.Citation))
				outputHuman("   (%s via %s)\n", opt.Type, opt.Source)
			}
		} else {
			outputJSON(resp)
		}
		return nil
	}

	meta, det := r.Resolve(ctx, query)
	if meta == nil {
		exitWithError(ExitDataError, "no source found for %q (detected type: %s)", query, det.Type)
	}
	result := CiteResult{
		Citation: format.ForStyle(style).Format(meta),
		Type:     meta.Type,
		Source:   meta.SourceEngine,
		Metadata: meta,
	}
	if humanOutput {
		printCiteHuman(result)
	} else {
		outputJSON(result)
	}
	return nil
}
