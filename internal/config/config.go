// Package config loads the agent settings file. These settings tune how the
// applier runs (logging, seed discovery, poll budgets); the network
// configuration itself comes from the seed document, not from here.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/hcl/v2/hclsimple"

	"github.com/seedwire/netseed/internal/brand"
	"github.com/seedwire/netseed/internal/logging"
)

// Config is the top-level structure of the settings file.
type Config struct {
	LogLevel  string `hcl:"log_level,optional"`  // debug|info|warn|error
	LogFormat string `hcl:"log_format,optional"` // console|json

	// ReportPath overrides where the run report is written.
	ReportPath string `hcl:"report_path,optional"`

	// DHCPClient forces a specific client binary for the IPv4 reset
	// (udhcpc or dhclient). Empty means autodetect.
	DHCPClient string `hcl:"dhcp_client,optional"`

	RenamePollAttempts   int `hcl:"rename_poll_attempts,optional"`
	RenamePollIntervalMS int `hcl:"rename_poll_interval_ms,optional"`

	Seed   *SeedConfig   `hcl:"seed,block"`
	Verify *VerifyConfig `hcl:"verify,block"`
}

// SeedConfig controls where the network-config document comes from.
type SeedConfig struct {
	// Label of the seed volume, resolved under /dev/disk/by-label.
	Label string `hcl:"label,optional"`

	// Devices are candidate block devices probed when the label symlink
	// is absent, in order.
	Devices []string `hcl:"devices,optional"`

	// DocumentPath bypasses volume discovery and reads the document
	// straight from a file.
	DocumentPath string `hcl:"document_path,optional"`
}

// VerifyConfig controls the optional post-apply probes.
type VerifyConfig struct {
	Ping bool `hcl:"ping,optional"`
	DNS  bool `hcl:"dns,optional"`

	// DNSProbeName is the name resolved through the configured primary
	// server during verification.
	DNSProbeName string `hcl:"dns_probe_name,optional"`
}

// Default returns the built-in settings used when no file is present.
func Default() *Config {
	cfg := &Config{
		LogLevel:             "info",
		LogFormat:            "console",
		RenamePollAttempts:   20,
		RenamePollIntervalMS: 200,
	}
	cfg.applyDefaults()
	return cfg
}

// Load reads the settings file at path, or the brand default path when path
// is empty. A missing file is not an error; it yields Default().
func Load(path string) (*Config, error) {
	if path == "" {
		path = brand.GetConfigPath()
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}

	var cfg Config
	if err := hclsimple.DecodeFile(path, nil, &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode settings file %s: %w", path, err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

// applyDefaults fills zero-valued fields so callers never need to.
func (c *Config) applyDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.LogFormat == "" {
		c.LogFormat = "console"
	}
	if c.ReportPath == "" {
		c.ReportPath = brand.GetRunDir() + "/result.json"
	}
	if c.RenamePollAttempts <= 0 {
		c.RenamePollAttempts = 20
	}
	if c.RenamePollIntervalMS <= 0 {
		c.RenamePollIntervalMS = 200
	}
	if c.Seed == nil {
		c.Seed = &SeedConfig{}
	}
	if c.Seed.Label == "" {
		c.Seed.Label = brand.DefaultSeedLabel
	}
	if c.Verify == nil {
		c.Verify = &VerifyConfig{Ping: true, DNS: true}
	}
	if c.Verify.DNSProbeName == "" {
		c.Verify.DNSProbeName = "example.com."
	}
}

// SlogLevel maps the configured level string onto the logging package.
func (c *Config) SlogLevel() logging.Level {
	switch c.LogLevel {
	case "debug":
		return logging.LevelDebug
	case "warn":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

// PollInterval returns the rename verification interval as a duration.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.RenamePollIntervalMS) * time.Millisecond
}
