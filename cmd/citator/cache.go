package main

import (
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(cacheCmd)
	cacheCmd.AddCommand(cacheStatsCmd)
	cacheCmd.AddCommand(cachePurgeCmd)
}

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Resolution cache maintenance",
	Long: `Inspect and maintain the SQLite resolution cache. Cached entries
expire after 14 days; purge removes the expired rows.`,
}

// CacheStatsResponse is the response for cache stats.
type CacheStatsResponse struct {
	Path    string `json:"path"`
	Total   int    `json:"total"`
	Expired int    `json:"expired"`
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show cache entry counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := mustLoadConfig()
		cache := mustOpenCache(cfg)
		defer cache.Close()

		stats, err := cache.Stats()
		if err != nil {
			exitWithError(ExitError, "reading cache stats: %v", err)
		}
		if humanOutput {
			outputHuman("Cache: %s\n", cfg.CachePath)
			outputHuman("  %d entries, %d expired\n", stats.Total, stats.Expired)
		} else {
			outputJSON(CacheStatsResponse{Path: cfg.CachePath, Total: stats.Total, Expired: stats.Expired})
		}
		return nil
	},
}

// CachePurgeResponse is the response for cache purge.
type CachePurgeResponse struct {
	Purged int `json:"purged"`
}

var cachePurgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Delete expired cache entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := mustLoadConfig()
		cache := mustOpenCache(cfg)
		defer cache.Close()

		n, err := cache.Purge()
		if err != nil {
			exitWithError(ExitError, "purging cache: %v", err)
		}
		if humanOutput {
			outputHuman("Purged %d expired entries\n", n)
		} else {
			outputJSON(CachePurgeResponse{Purged: n})
		}
		return nil
	},
}
