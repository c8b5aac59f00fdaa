package brand

import (
	"os"
	"testing"
)

func TestGet(t *testing.T) {
	b := Get()
	if b.Name == "" {
		t.Error("Brand name should not be empty")
	}
	// Version is a global variable, not in the struct
	if Version == "" {
		t.Error("Global Version should be initialized (to dev default)")
	}
	if Name == "" {
		t.Error("Global Name should be initialized")
	}
	if DefaultSeedLabel == "" {
		t.Error("Global DefaultSeedLabel should be initialized")
	}
}

func TestGetDirectories(t *testing.T) {
	cleanEnv := func() {
		os.Unsetenv(ConfigEnvPrefix + "_PREFIX")
		os.Unsetenv(ConfigEnvPrefix + "_CONFIG_DIR")
		os.Unsetenv(ConfigEnvPrefix + "_RUN_DIR")
	}
	cleanEnv()
	defer cleanEnv()

	// Test Defaults
	if GetConfigDir() != DefaultConfigDir {
		t.Errorf("Expected default config dir %s, got %s", DefaultConfigDir, GetConfigDir())
	}
	if GetRunDir() != DefaultRunDir {
		t.Errorf("Expected default run dir %s, got %s", DefaultRunDir, GetRunDir())
	}

	// Test Prefix
	os.Setenv(ConfigEnvPrefix+"_PREFIX", "/tmp/netseed")
	if GetConfigDir() != "/tmp/netseed/config" {
		t.Errorf("Expected prefix config dir, got %s", GetConfigDir())
	}
	if GetRunDir() != "/tmp/netseed/run" {
		t.Errorf("Expected prefix run dir, got %s", GetRunDir())
	}

	// Test Direct Override (Highest Priority)
	os.Setenv(ConfigEnvPrefix+"_CONFIG_DIR", "/custom/config")
	if GetConfigDir() != "/custom/config" {
		t.Errorf("Expected custom config dir, got %s", GetConfigDir())
	}
}

func TestGetConfigPath(t *testing.T) {
	os.Unsetenv(ConfigEnvPrefix + "_PREFIX")
	os.Unsetenv(ConfigEnvPrefix + "_CONFIG_DIR")
	path := GetConfigPath()
	if path != DefaultConfigDir+"/"+ConfigFileName {
		t.Errorf("Unexpected config path %s", path)
	}
}
