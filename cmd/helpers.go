package cmd

import (
	"fmt"

	"github.com/seedwire/netseed/internal/brand"
	"github.com/seedwire/netseed/internal/config"
	"github.com/seedwire/netseed/internal/logging"
	"github.com/seedwire/netseed/internal/netconf"
	"github.com/seedwire/netseed/internal/seed"
)

// setupLogging builds the process logger from the settings file and installs
// it as the package default.
func setupLogging(cfg *config.Config) *logging.Logger {
	logging.SetPrefix(brand.Name)
	logger := logging.New(logging.Config{
		Level: cfg.SlogLevel(),
		JSON:  cfg.LogFormat == "json",
	})
	logging.SetDefault(logger)
	return logger
}

// documentSource picks where the network-config comes from: an explicit
// -file flag beats the settings file's document_path, which beats seed
// volume discovery.
func documentSource(cfg *config.Config, fileOverride string, log *logging.Logger) seed.Source {
	if fileOverride != "" {
		return seed.NewFileSource(fileOverride, log)
	}
	if cfg.Seed.DocumentPath != "" {
		return seed.NewFileSource(cfg.Seed.DocumentPath, log)
	}
	return seed.NewVolumeSource(cfg.Seed.Label, cfg.Seed.Devices, log)
}

// fetchDocument loads and compiles the document from the source.
func fetchDocument(source seed.Source, log *logging.Logger) (*seed.Payload, *netconf.Document, error) {
	payload, err := source.Fetch()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load network-config: %w", err)
	}

	doc := netconf.BindDocument(netconf.Parse(payload.NetworkConfig))
	if len(doc.Entries) == 0 {
		log.Warn("document has no ethernets entries; nothing to apply",
			"source", source.Describe())
	}
	return payload, doc, nil
}
