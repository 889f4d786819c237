// Package config loads citator configuration: a YAML file under the
// user's config directory, a .env file in the working directory, and
// environment variables. Environment values always override file
// values, so deployments can configure everything without touching the
// file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	// ConfigDir is the directory name under XDG_CONFIG_HOME.
	ConfigDir = "citator"
	// ConfigFile is the config file name.
	ConfigFile = "config.yaml"
	// CacheFile is the resolution cache database name.
	CacheFile = "resolutions.db"

	// DefaultStyle is used when neither file nor environment names one.
	DefaultStyle = "chicago"
	// DefaultAddr is the HTTP API listen address.
	DefaultAddr = ":8080"
)

// Config is the citator configuration. Every field is optional; zero
// values fall back to the defaults above.
type Config struct {
	// Style is the default citation style (chicago, apa, mla,
	// bluebook, oscola).
	Style string `yaml:"style,omitempty"`

	// CachePath is the SQLite resolution cache location. CacheDisabled
	// turns the cache off entirely.
	CachePath     string `yaml:"cache_path,omitempty"`
	CacheDisabled bool   `yaml:"cache_disabled,omitempty"`

	// Engine credentials. Engines without a key here fall back to
	// their unauthenticated tiers.
	CrossrefMailto   string `yaml:"crossref_mailto,omitempty"`
	CourtListenerKey string `yaml:"courtlistener_api_key,omitempty"`
	NCBIKey          string `yaml:"ncbi_api_key,omitempty"`
	S2Key            string `yaml:"s2_api_key,omitempty"`

	Classifier Classifier `yaml:"classifier,omitempty"`
	Server     Server     `yaml:"server,omitempty"`
}

// Classifier configures the optional LLM fallback used when pattern
// detection cannot type a query. An empty provider disables it.
type Classifier struct {
	Provider     string `yaml:"provider,omitempty"` // claude or gemini
	Model        string `yaml:"model,omitempty"`
	AnthropicKey string `yaml:"anthropic_api_key,omitempty"`
	GeminiKey    string `yaml:"gemini_api_key,omitempty"`
}

// Server configures the HTTP API.
type Server struct {
	Addr  string `yaml:"addr,omitempty"`
	Debug bool   `yaml:"debug,omitempty"`
}

// DefaultPath returns the config file location. Respects
// XDG_CONFIG_HOME, defaults to ~/.config/citator/config.yaml.
func DefaultPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, ConfigDir, ConfigFile)
}

// DefaultCachePath returns the resolution cache location. Respects
// XDG_CACHE_HOME, defaults to ~/.cache/citator/resolutions.db.
func DefaultCachePath() string {
	cacheHome := os.Getenv("XDG_CACHE_HOME")
	if cacheHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		cacheHome = filepath.Join(home, ".cache")
	}
	return filepath.Join(cacheHome, ConfigDir, CacheFile)
}

// Load reads the config file at path (DefaultPath when empty), loads
// .env from the working directory, and applies environment overrides.
// A missing config file is not an error; defaults apply.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
	}

	cfg := &Config{}
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// Defaults apply.
		case err != nil:
			return nil, fmt.Errorf("reading config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config %s: %w", path, err)
			}
		}
	}

	// .env supplies environment variables for the overrides below; a
	// missing file is fine.
	_ = godotenv.Load()
	cfg.applyEnv()
	cfg.applyDefaults()
	return cfg, nil
}

// applyEnv overrides file values with environment variables.
func (c *Config) applyEnv() {
	setIfEnv(&c.Style, "CITATOR_STYLE")
	setIfEnv(&c.CachePath, "CITATOR_CACHE")
	setIfEnv(&c.CrossrefMailto, "CROSSREF_MAILTO")
	setIfEnv(&c.CourtListenerKey, "COURTLISTENER_API_KEY")
	setIfEnv(&c.NCBIKey, "NCBI_API_KEY")
	setIfEnv(&c.S2Key, "S2_API_KEY")
	setIfEnv(&c.Classifier.Provider, "CITATOR_CLASSIFIER")
	setIfEnv(&c.Classifier.Model, "CITATOR_CLASSIFIER_MODEL")
	setIfEnv(&c.Classifier.AnthropicKey, "ANTHROPIC_API_KEY")
	setIfEnv(&c.Classifier.GeminiKey, "GEMINI_API_KEY")
	setIfEnv(&c.Server.Addr, "CITATOR_ADDR")
	if c.Server.Addr == "" {
		if port := os.Getenv("PORT"); port != "" {
			c.Server.Addr = ":" + port
		}
	}
}

func (c *Config) applyDefaults() {
	if c.Style == "" {
		c.Style = DefaultStyle
	}
	if c.CachePath == "" {
		c.CachePath = DefaultCachePath()
	} else {
		c.CachePath = ExpandTilde(c.CachePath)
	}
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultAddr
	}
}

func setIfEnv(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// ClassifierKey returns the API key matching the configured provider.
func (c *Config) ClassifierKey() string {
	switch strings.ToLower(c.Classifier.Provider) {
	case "claude":
		return c.Classifier.AnthropicKey
	case "gemini":
		return c.Classifier.GeminiKey
	}
	return ""
}

// Save writes the config as YAML, creating parent directories as
// needed.
func (c *Config) Save(path string) error {
	if path == "" {
		path = DefaultPath()
	}
	if path == "" {
		return fmt.Errorf("no config path available")
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// ExpandTilde expands a leading ~ to the user's home directory.
// Returns the path unchanged when it doesn't start with ~ or the home
// directory is unknown.
func ExpandTilde(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
