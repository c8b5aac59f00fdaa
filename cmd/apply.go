package cmd

import (
	"fmt"

	"github.com/seedwire/netseed/internal/config"
	"github.com/seedwire/netseed/internal/logging"
	"github.com/seedwire/netseed/internal/monitor"
	"github.com/seedwire/netseed/internal/network"
	"github.com/seedwire/netseed/internal/state"
)

// RunApply executes the full pipeline: locate the document, rename adapters,
// reconcile their settings, optionally verify, and write the run report.
//
// Per-adapter failures (no match, verification timeout, individual command
// failures) are recorded and do not fail the run. A missing document or a
// failed rename request does.
func RunApply(configFile, docFile string, dryRun, verify bool) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}
	logger := setupLogging(cfg)
	log := logger.WithComponent("apply")

	source := documentSource(cfg, docFile, logger)
	payload, doc, err := fetchDocument(source, log)
	if err != nil {
		return err
	}

	// Backends: the dry-run variants record what would be done; the
	// adapter table still reads real state so matching works.
	var (
		table    network.AdapterTable
		applier  network.Applier
		dryTable *network.DryRunAdapterTable
		dryNL    *network.DryRunNetlinker
		drySys   *network.DryRunSystemController
		dryCmd   *network.DryRunExecutor
	)
	realTable := network.NewAdapterTable(network.DefaultNetlinker)
	if dryRun {
		dryTable = network.NewDryRunAdapterTable(realTable)
		dryNL = &network.DryRunNetlinker{}
		drySys = &network.DryRunSystemController{}
		dryCmd = network.NewDryRunExecutor()

		real := network.NewApplier(dryNL, drySys, dryCmd, logger)
		real.DHCPClient = cfg.DHCPClient
		if real.DHCPClient == "" {
			// Pin the client so the transcript doesn't depend on
			// what happens to be installed here.
			real.DHCPClient = "udhcpc"
		}
		table, applier = dryTable, real
	} else {
		real := network.NewApplier(network.DefaultNetlinker, network.DefaultSystemController,
			network.DefaultCommandExecutor, logger)
		real.DHCPClient = cfg.DHCPClient
		table, applier = realTable, real
	}

	resolver := network.NewResolver(table, nil, logger)
	resolver.PollAttempts = cfg.RenamePollAttempts
	resolver.PollInterval = cfg.PollInterval()

	report := state.NewReport(source.Describe(), nil)
	report.DryRun = dryRun
	if payload.Meta != nil {
		report.InstanceID = payload.Meta.InstanceID
	}

	results, resolveErr := resolver.ResolveAll(doc)

	entries := make([]state.EntryResult, 0, len(results))
	for _, res := range results {
		entry := state.EntryResult{
			Key:        res.Key,
			MACAddress: res.MAC,
			Interface:  res.Name,
			State:      res.State.String(),
			Attempts:   res.Attempts,
		}
		if res.Err != nil {
			entry.Errors = append(entry.Errors, res.Err.Error())
		}
		entries = append(entries, entry)
	}

	if resolveErr != nil {
		// A failed rename request leaves adapter state ambiguous;
		// record what happened and stop before reconciliation.
		finishReport(report, entries, cfg.ReportPath, dryRun, log)
		return fmt.Errorf("renaming phase aborted: %w", resolveErr)
	}

	engine := network.NewEngine(applier, logger)
	names := make(map[string]string, len(results))
	for i, res := range results {
		if !res.Configurable() {
			continue
		}
		names[res.Key] = res.Name
		applyResult := engine.Apply(res.Name, doc.Entries[i])
		entries[i].Errors = append(entries[i].Errors, applyResult.Errors...)
	}

	if verify && !dryRun {
		verifier := monitor.NewVerifier(cfg.Verify.Ping, cfg.Verify.DNS, cfg.Verify.DNSProbeName, logger)
		for _, finding := range verifier.Verify(doc.Entries, names) {
			for i := range entries {
				if entries[i].Interface == finding.Interface {
					entries[i].Errors = append(entries[i].Errors, finding.String())
				}
			}
		}
	}

	if dryRun {
		for _, line := range network.Transcript(dryTable, dryNL, drySys, dryCmd) {
			fmt.Println(line)
		}
	}

	finishReport(report, entries, cfg.ReportPath, dryRun, log)

	failed := 0
	for _, entry := range entries {
		if len(entry.Errors) > 0 {
			failed++
		}
	}
	log.Info("apply complete", "run_id", report.RunID, "entries", len(entries),
		"with_errors", failed, "dry_run", dryRun)
	return nil
}

// finishReport stamps and writes the run report. Dry runs don't touch the
// report file.
func finishReport(report *state.Report, entries []state.EntryResult, path string, dryRun bool, log *logging.Logger) {
	for _, entry := range entries {
		report.Add(entry)
	}
	report.Finish()
	if dryRun {
		return
	}
	if err := report.Write(path); err != nil {
		log.Warn("failed to write run report", "path", path, "error", err)
	}
}
