// Package seed locates the network-config document. The usual carrier is a
// small volume labeled "cidata" in the cloud-init NoCloud layout; a plain
// file path is supported for testing and for pre-staged documents.
package seed

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v2"

	"github.com/seedwire/netseed/internal/logging"
)

// Payload is what a source hands to the apply pipeline: the raw
// network-config text plus the optional instance metadata.
type Payload struct {
	NetworkConfig string
	Meta          *MetaData
}

// MetaData mirrors the NoCloud meta-data file. Only used for diagnostics;
// nothing in the apply path depends on it.
type MetaData struct {
	InstanceID    string `yaml:"instance-id"`
	LocalHostname string `yaml:"local-hostname"`
}

// Source produces the document payload from some medium.
type Source interface {
	// Fetch reads the payload. A missing or unreadable document is an
	// error; a missing meta-data file is not.
	Fetch() (*Payload, error)

	// Describe names the medium for logs and the run report.
	Describe() string
}

// ParseMetaData decodes a NoCloud meta-data blob.
func ParseMetaData(data []byte) (*MetaData, error) {
	var meta MetaData
	if err := yaml.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("failed to parse meta-data: %w", err)
	}
	return &meta, nil
}

// FileSource reads the document from a local path. Meta-data is looked for
// next to it, matching the seed volume layout.
type FileSource struct {
	Path string
	log  *logging.Logger
}

// NewFileSource returns a source backed by a document file on disk.
func NewFileSource(path string, log *logging.Logger) *FileSource {
	if log == nil {
		log = logging.Default()
	}
	return &FileSource{Path: path, log: log.WithComponent("seed")}
}

func (s *FileSource) Describe() string {
	return "file:" + s.Path
}

func (s *FileSource) Fetch() (*Payload, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read network-config %s: %w", s.Path, err)
	}

	payload := &Payload{NetworkConfig: string(data)}

	metaPath := filepath.Join(filepath.Dir(s.Path), "meta-data")
	if metaBytes, err := os.ReadFile(metaPath); err == nil {
		meta, err := ParseMetaData(metaBytes)
		if err != nil {
			s.log.Warn("ignoring malformed meta-data", "path", metaPath, "error", err)
		} else {
			payload.Meta = meta
		}
	}

	s.log.Info("loaded network-config", "source", s.Describe(), "bytes", len(payload.NetworkConfig))
	return payload, nil
}
