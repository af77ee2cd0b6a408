package models

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds runtime configuration. Values come from a YAML file; CLI
// flags override individual fields.
type Config struct {
	HomeURL string `yaml:"home_url"` // site root the beacon reports URLs against
	DBPath  string `yaml:"db_path"`  // empty = next to the binary

	// Beacon fallback wiring.
	BeaconScript    string `yaml:"beacon_script"`     // filesystem path of the beacon asset
	BeaconScriptURL string `yaml:"beacon_script_url"` // URL the injected tag references
	AjaxURL         string `yaml:"ajax_url"`          // endpoint the beacon posts to

	// Mobile cache split. Both must be on for a separate mobile row key.
	CacheMobile          bool `yaml:"cache_mobile"`
	DoCachingMobileFiles bool `yaml:"do_caching_mobile_files"`

	// serve command.
	ListenAddr string `yaml:"listen_addr"`
	CacheDir   string `yaml:"cache_dir"`
	CacheTTL   string `yaml:"cache_ttl"` // time.ParseDuration syntax

	// optimize command worker pool.
	Workers int `yaml:"workers"`
}

// DefaultConfig returns a Config with the defaults every field falls back
// to when the YAML file leaves it unset.
func DefaultConfig() *Config {
	return &Config{
		BeaconScriptURL: "/assets/lcp-beacon.js",
		AjaxURL:         "/beacon",
		ListenAddr:      ":8749",
		CacheDir:        "cache",
		CacheTTL:        "1h",
		Workers:         4,
	}
}

// LoadConfig reads and parses the YAML config at path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// CacheTTLDuration parses CacheTTL, falling back to one hour on empty or
// malformed values.
func (c *Config) CacheTTLDuration() time.Duration {
	d, err := time.ParseDuration(c.CacheTTL)
	if err != nil || d <= 0 {
		return time.Hour
	}
	return d
}
