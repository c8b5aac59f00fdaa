package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seedwire/netseed/internal/config"
	"github.com/seedwire/netseed/internal/seed"
)

func TestDocumentSource_Selection(t *testing.T) {
	cfg := config.Default()

	// Flag override wins.
	source := documentSource(cfg, "/tmp/override", nil)
	fileSource, ok := source.(*seed.FileSource)
	require.True(t, ok)
	assert.Equal(t, "/tmp/override", fileSource.Path)

	// Settings file path next.
	cfg.Seed.DocumentPath = "/etc/netseed/network-config"
	fileSource, ok = documentSource(cfg, "", nil).(*seed.FileSource)
	require.True(t, ok)
	assert.Equal(t, "/etc/netseed/network-config", fileSource.Path)

	// Otherwise volume discovery by label.
	cfg.Seed.DocumentPath = ""
	volumeSource, ok := documentSource(cfg, "", nil).(*seed.VolumeSource)
	require.True(t, ok)
	assert.Equal(t, "volume:cidata", volumeSource.Describe())
}

func TestRunApply_MissingDocumentIsFatal(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "netseed.hcl")
	require.NoError(t, os.WriteFile(configPath, []byte(``), 0o644))

	err := RunApply(configPath, filepath.Join(t.TempDir(), "nope"), true, false)
	assert.Error(t, err)
}

func TestRunApply_DryRunWithUnmatchedEntries(t *testing.T) {
	tmpDir := t.TempDir()
	docPath := filepath.Join(tmpDir, "network-config")
	require.NoError(t, os.WriteFile(docPath, []byte(checkSampleDocument), 0o644))

	configPath := filepath.Join(tmpDir, "netseed.hcl")
	require.NoError(t, os.WriteFile(configPath, []byte(`log_level = "error"`), 0o644))

	// The document's hardware address matches no adapter on this machine:
	// the entry lands in not-found, nothing is renamed or configured, and
	// the run still completes.
	err := RunApply(configPath, docPath, true, false)
	assert.NoError(t, err)
}
