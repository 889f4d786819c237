package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/mhutchens/citator/internal/detect"
)

func init() {
	rootCmd.AddCommand(detectCmd)
}

var detectCmd = &cobra.Command{
	Use:   "detect <text...>",
	Short: "Classify citation text without resolving it",
	Long: `Run the pattern detector on citation text and report the detected
type, confidence, and the cleaned query that resolution would use.
Nothing is sent to any engine.

Examples:
  citator detect "410 U.S. 113"
  citator detect "Interview with Jane Doe, March 2019" --human`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDetect,
}

func runDetect(cmd *cobra.Command, args []string) error {
	det := detect.Detect(strings.Join(args, " "))
	if humanOutput {
		outputHuman("type: %s (confidence %.2f)\n", det.Type, det.Confidence)
		outputHuman("query: %s\n", det.CleanedQuery)
	} else {
		outputJSON(det)
	}
	return nil
}
