package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/mhutchens/citator/internal/config"
)

var configForce bool

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	configInitCmd.Flags().BoolVar(&configForce, "force", false, "Overwrite an existing config file")
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration file handling",
	Long: `Show the effective configuration or write a starter config file.

Configuration merges three layers: the YAML config file, a .env file in
the working directory, and environment variables (which always win).`,
}

// ConfigResponse is the response for config show. Credentials are
// reported as set/unset, never echoed.
type ConfigResponse struct {
	Path             string `json:"path"`
	Style            string `json:"style"`
	CachePath        string `json:"cache_path"`
	CacheDisabled    bool   `json:"cache_disabled,omitempty"`
	CrossrefMailto   string `json:"crossref_mailto,omitempty"`
	CourtListenerKey bool   `json:"courtlistener_api_key_set"`
	NCBIKey          bool   `json:"ncbi_api_key_set"`
	S2Key            bool   `json:"s2_api_key_set"`
	Classifier       string `json:"classifier,omitempty"`
	ClassifierModel  string `json:"classifier_model,omitempty"`
	ClassifierKey    bool   `json:"classifier_key_set"`
	ServerAddr       string `json:"server_addr"`
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := mustLoadConfig()
		path := configPath
		if path == "" {
			path = config.DefaultPath()
		}

		resp := ConfigResponse{
			Path:             path,
			Style:            cfg.Style,
			CachePath:        cfg.CachePath,
			CacheDisabled:    cfg.CacheDisabled,
			CrossrefMailto:   cfg.CrossrefMailto,
			CourtListenerKey: cfg.CourtListenerKey != "",
			NCBIKey:          cfg.NCBIKey != "",
			S2Key:            cfg.S2Key != "",
			Classifier:       cfg.Classifier.Provider,
			ClassifierModel:  cfg.Classifier.Model,
			ClassifierKey:    cfg.ClassifierKey() != "",
			ServerAddr:       cfg.Server.Addr,
		}
		if humanOutput {
			outputHuman("config:      %s\n", resp.Path)
			outputHuman("style:       %s\n", resp.Style)
			outputHuman("cache:       %s%s\n", resp.CachePath, disabledSuffix(resp.CacheDisabled))
			outputHuman("server:      %s\n", resp.ServerAddr)
			if resp.Classifier != "" {
				outputHuman("classifier:  %s (%s, key %s)\n", resp.Classifier, orDefault(resp.ClassifierModel), setOrUnset(resp.ClassifierKey))
			}
			outputHuman("credentials: courtlistener %s, ncbi %s, s2 %s\n",
				setOrUnset(resp.CourtListenerKey), setOrUnset(resp.NCBIKey), setOrUnset(resp.S2Key))
		} else {
			outputJSON(resp)
		}
		return nil
	},
}

func disabledSuffix(disabled bool) string {
	if disabled {
		return " (disabled)"
	}
	return ""
}

func setOrUnset(set bool) string {
	if set {
		return "set"
	}
	return "unset"
}

func orDefault(s string) string {
	if s == "" {
		return "default model"
	}
	return s
}

// ConfigInitResponse is the response for config init.
type ConfigInitResponse struct {
	Status string `json:"status"`
	Path   string `json:"path"`
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter config file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPath
		if path == "" {
			path = config.DefaultPath()
		}
		if path == "" {
			exitWithError(ExitConfigError, "cannot determine a config path; pass --config")
		}
		if _, err := os.Stat(path); err == nil && !configForce {
			exitWithError(ExitConfigError, "%s already exists; use --force to overwrite", path)
		}

		cfg := &config.Config{
			Style:     config.DefaultStyle,
			CachePath: config.DefaultCachePath(),
		}
		if err := cfg.Save(path); err != nil {
			exitWithError(ExitError, "writing config: %v", err)
		}

		if humanOutput {
			outputHuman("Wrote %s\n", path)
		} else {
			outputJSON(ConfigInitResponse{Status: "created", Path: path})
		}
		return nil
	},
}
