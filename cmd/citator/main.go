// Package main provides the citator CLI entry point.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mhutchens/citator/internal/books"
	"github.com/mhutchens/citator/internal/classify"
	"github.com/mhutchens/citator/internal/config"
	"github.com/mhutchens/citator/internal/courtlistener"
	"github.com/mhutchens/citator/internal/crossref"
	"github.com/mhutchens/citator/internal/legal"
	"github.com/mhutchens/citator/internal/openalex"
	"github.com/mhutchens/citator/internal/pubmed"
	"github.com/mhutchens/citator/internal/router"
	"github.com/mhutchens/citator/internal/scholar"
	"github.com/mhutchens/citator/internal/storage"
)

// Version is set at build time via ldflags
var Version = "dev"

// humanOutput controls whether to use human-readable output
var humanOutput bool

// configPath overrides the default config file location
var configPath string

func main() {
	if err := rootCmd.Execute(); err != nil {
		// Print the error since we have SilenceErrors: true
		// This ensures Cobra errors (like missing required flags) are visible
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "citator",
	Short: "Citation resolution and document rewriting CLI",
	Long: `citator resolves free-text citation fragments into bibliographic
metadata and rewrites the endnotes and footnotes of .docx manuscripts.

Core features:
  - Resolution races across Crossref, OpenAlex, Semantic Scholar, PubMed,
    Google Books, Open Library, Library of Congress, and CourtListener
  - Five citation styles: Chicago, APA, MLA, Bluebook, OSCOLA
  - Repeated-source tracking across a document (full, ibid, short form)
  - SQLite resolution cache and JSONL results log
  - HTTP API for interactive document review

All commands output JSON by default for AI agent integration.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.config/citator/config.yaml)")
	rootCmd.Version = Version
}

// mustLoadConfig loads configuration, exits on error.
func mustLoadConfig() *config.Config {
	cfg, err := config.Load(configPath)
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}
	return cfg
}

// buildRouter assembles the engine router from configuration.
// Credentials from config reach their engines as options; a cache that
// cannot be opened is skipped rather than fatal.
func buildRouter(ctx context.Context, cfg *config.Config, noCache bool) *router.Router {
	var crossrefOpts []crossref.ClientOption
	if cfg.CrossrefMailto != "" {
		crossrefOpts = append(crossrefOpts, crossref.WithMailto(cfg.CrossrefMailto))
	}
	var scholarOpts []scholar.ClientOption
	if cfg.S2Key != "" {
		scholarOpts = append(scholarOpts, scholar.WithAPIKey(cfg.S2Key))
	}
	var pubmedOpts []pubmed.ClientOption
	if cfg.NCBIKey != "" {
		pubmedOpts = append(pubmedOpts, pubmed.WithAPIKey(cfg.NCBIKey))
	}
	var courtOpts []courtlistener.ClientOption
	if cfg.CourtListenerKey != "" {
		courtOpts = append(courtOpts, courtlistener.WithAPIKey(cfg.CourtListenerKey))
	}

	rcfg := router.Config{
		Crossref:    crossref.NewClient(crossrefOpts...),
		OpenAlex:    openalex.NewClient(),
		Scholar:     scholar.NewClient(scholarOpts...),
		PubMed:      pubmed.NewClient(pubmedOpts...),
		Google:      books.NewGoogle(),
		OpenLibrary: books.NewOpenLibrary(),
		LOC:         books.NewLOC(),
		Legal:       legal.NewEngine(courtlistener.NewClient(courtOpts...)),
	}

	if !noCache && !cfg.CacheDisabled && cfg.CachePath != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.CachePath), 0755); err == nil {
			if cache, err := storage.OpenCache(cfg.CachePath); err == nil {
				rcfg.Cache = cache
			}
		}
	}

	classifier, err := classify.New(ctx, classify.Config{
		Provider: cfg.Classifier.Provider,
		APIKey:   cfg.ClassifierKey(),
		Model:    cfg.Classifier.Model,
	})
	if err != nil {
		exitWithError(ExitConfigError, "configuring classifier: %v", err)
	}
	rcfg.Classifier = classifier

	return router.New(rcfg)
}

// mustOpenCache opens the configured cache, exits on error.
// The caller is responsible for calling Close() on the returned cache.
func mustOpenCache(cfg *config.Config) *storage.Cache {
	if cfg.CacheDisabled {
		exitWithError(ExitConfigError, "cache is disabled in config")
	}
	if cfg.CachePath == "" {
		exitWithError(ExitConfigError, "no cache path configured")
	}
	if err := os.MkdirAll(filepath.Dir(cfg.CachePath), 0755); err != nil {
		exitWithError(ExitError, "creating cache directory: %v", err)
	}
	cache, err := storage.OpenCache(cfg.CachePath)
	if err != nil {
		exitWithError(ExitError, "opening cache: %v", err)
	}
	return cache
}
