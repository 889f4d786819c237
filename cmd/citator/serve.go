package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/mhutchens/citator/internal/server"
)

var serveAddr string

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default :8080, or $PORT)")
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the citation HTTP API",
	Long: `Serve the HTTP API: single-citation lookup, multi-option search,
docx upload and download with session-backed review, and single-note
updates. Processed documents stay downloadable for four hours.

Examples:
  citator serve
  citator serve --addr :9000`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()
	addr := serveAddr
	if addr == "" {
		addr = cfg.Server.Addr
	}

	r := buildRouter(context.Background(), cfg, false)
	opts := []server.Option{server.WithVersion(Version)}
	if cfg.Server.Debug {
		opts = append(opts, server.WithDebug())
	}

	outputHuman("citator %s listening on %s\n", Version, addr)
	if err := server.New(r, opts...).Run(addr); err != nil {
		exitWithError(ExitError, "server: %v", err)
	}
	return nil
}
