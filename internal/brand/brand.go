// Package brand provides centralized naming constants for the applier.
// This makes it easy to rebrand an embedded build by changing brand.json.
//
// The identity is loaded from brand.json at compile time via go:embed so
// packaging scripts can read the same file.
package brand

import (
	_ "embed"
	"encoding/json"
	"os"
	"path/filepath"
)

//go:embed brand.json
var brandJSON []byte

// Brand holds the product identity.
type Brand struct {
	Name             string `json:"name"`
	LowerName        string `json:"lowerName"`
	Vendor           string `json:"vendor"`
	Repository       string `json:"repository"`
	Description      string `json:"description"`
	ConfigEnvPrefix  string `json:"configEnvPrefix"`
	DefaultConfigDir string `json:"defaultConfigDir"`
	DefaultRunDir    string `json:"defaultRunDir"`
	DefaultSeedLabel string `json:"defaultSeedLabel"`
	BinaryName       string `json:"binaryName"`
	ConfigFileName   string `json:"configFileName"`
}

var b Brand

func init() {
	if err := json.Unmarshal(brandJSON, &b); err != nil {
		panic("failed to parse brand.json: " + err.Error())
	}

	Name = b.Name
	LowerName = b.LowerName
	Vendor = b.Vendor
	Repository = b.Repository
	Description = b.Description
	ConfigEnvPrefix = b.ConfigEnvPrefix
	DefaultConfigDir = b.DefaultConfigDir
	DefaultRunDir = b.DefaultRunDir
	DefaultSeedLabel = b.DefaultSeedLabel
	BinaryName = b.BinaryName
	ConfigFileName = b.ConfigFileName
}

// Exported variables for convenience
var (
	Name             string
	LowerName        string
	Vendor           string
	Repository       string
	Description      string
	ConfigEnvPrefix  string
	DefaultConfigDir string
	DefaultRunDir    string
	DefaultSeedLabel string
	BinaryName       string
	ConfigFileName   string

	// Version is set at build time via -ldflags
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// Get returns the full Brand struct
func Get() Brand {
	return b
}

// GetConfigDir returns the config directory, checking env vars first.
// Priority: NETSEED_CONFIG_DIR > NETSEED_PREFIX/config > DefaultConfigDir
func GetConfigDir() string {
	if dir := os.Getenv(ConfigEnvPrefix + "_CONFIG_DIR"); dir != "" {
		return dir
	}
	if prefix := os.Getenv(ConfigEnvPrefix + "_PREFIX"); prefix != "" {
		return filepath.Join(prefix, "config")
	}
	return DefaultConfigDir
}

// GetRunDir returns the runtime directory for the run report.
// Priority: NETSEED_RUN_DIR > NETSEED_PREFIX/run > DefaultRunDir
func GetRunDir() string {
	if dir := os.Getenv(ConfigEnvPrefix + "_RUN_DIR"); dir != "" {
		return dir
	}
	if prefix := os.Getenv(ConfigEnvPrefix + "_PREFIX"); prefix != "" {
		return filepath.Join(prefix, "run")
	}
	return DefaultRunDir
}

// GetConfigPath returns the full path to the agent settings file.
func GetConfigPath() string {
	return filepath.Join(GetConfigDir(), ConfigFileName)
}
