// Package state writes the run report, a small JSON file describing what the
// last apply did, in the manner of cloud-init's result.json.
package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/seedwire/netseed/internal/clock"
)

// EntryResult is the per-document-entry outcome.
type EntryResult struct {
	Key        string   `json:"key"`
	MACAddress string   `json:"macaddress"`
	Interface  string   `json:"interface,omitempty"`
	State      string   `json:"state"`
	Attempts   int      `json:"attempts,omitempty"`
	Errors     []string `json:"errors,omitempty"`
}

// Report is the top-level run record.
type Report struct {
	RunID      string        `json:"run_id"`
	Source     string        `json:"source"`
	InstanceID string        `json:"instance_id,omitempty"`
	DryRun     bool          `json:"dry_run,omitempty"`
	Started    time.Time     `json:"started"`
	Finished   time.Time     `json:"finished"`
	Entries    []EntryResult `json:"entries"`

	clk clock.Clock
}

// NewReport starts a report for one run. source names the document medium
// (seed.Source.Describe form).
func NewReport(source string, clk clock.Clock) *Report {
	if clk == nil {
		clk = &clock.RealClock{}
	}
	return &Report{
		RunID:   uuid.NewString(),
		Source:  source,
		Started: clk.Now().UTC(),
		clk:     clk,
	}
}

// Add appends one entry outcome.
func (r *Report) Add(entry EntryResult) {
	r.Entries = append(r.Entries, entry)
}

// Finish stamps the completion time.
func (r *Report) Finish() {
	r.Finished = r.clk.Now().UTC()
}

// Write marshals the report to path, creating parent directories as needed.
func (r *Report) Write(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create report directory: %w", err)
	}

	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write report %s: %w", path, err)
	}
	return nil
}
