package network

import (
	"fmt"
	"time"

	"github.com/seedwire/netseed/internal/clock"
	"github.com/seedwire/netseed/internal/logging"
	"github.com/seedwire/netseed/internal/netconf"
)

// RenameState is one state of the per-entry rename machine.
type RenameState int

const (
	StateSeeking RenameState = iota
	StateNotFound
	StateAlreadyNamed
	StateRenaming
	StateVerifying
	StateVerified
	StateTimedOut
)

// String returns the state name used in logs and the run report.
func (s RenameState) String() string {
	switch s {
	case StateSeeking:
		return "seeking"
	case StateNotFound:
		return "not-found"
	case StateAlreadyNamed:
		return "already-named"
	case StateRenaming:
		return "renaming"
	case StateVerifying:
		return "verifying"
	case StateVerified:
		return "verified"
	case StateTimedOut:
		return "timed-out"
	}
	return "unknown"
}

// RenameResult is the outcome of resolving one document entry against the
// live adapter table.
type RenameResult struct {
	Key      string      // document-local entry key, for diagnostics
	MAC      string      // normalized hardware address matched against
	State    RenameState
	OldName  string // adapter name before renaming, if matched
	Name     string // final interface name to reconcile against
	Index    int    // OS index of the matched adapter
	Attempts int    // verification polls used
	Err      error  // per-entry error for not-found / timed-out
}

// Configurable reports whether the entry ended in a state the
// reconciliation engine may act on: the adapter exists and carries its
// final name.
func (r RenameResult) Configurable() bool {
	return r.State == StateVerified || r.State == StateAlreadyNamed
}

const (
	defaultPollAttempts = 20
	defaultPollInterval = 200 * time.Millisecond
)

// Resolver matches document entries to live adapters by normalized
// hardware address and renames them to their canonical names, verifying
// each rename by bounded polling. The poll budget exists because the
// kernel may apply a rename asynchronously relative to the request
// returning; re-fetching by the stable OS index closes that race.
type Resolver struct {
	table AdapterTable
	clk   clock.Clock
	log   *logging.Logger

	// PollAttempts and PollInterval bound rename verification. The
	// defaults give a 4 second budget per renamed adapter.
	PollAttempts int
	PollInterval time.Duration
}

// NewResolver creates a resolver with the default poll budget.
func NewResolver(table AdapterTable, clk clock.Clock, logger *logging.Logger) *Resolver {
	if clk == nil {
		clk = &clock.RealClock{}
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Resolver{
		table:        table,
		clk:          clk,
		log:          logger.WithComponent("resolver"),
		PollAttempts: defaultPollAttempts,
		PollInterval: defaultPollInterval,
	}
}

// ResolveAll runs the rename machine over every entry in document order.
// Per-entry failures (no matching adapter, verification timeout) are
// recorded and resolution continues with the next entry. A failure to
// issue a rename request is fatal: it leaves adapter state ambiguous, so
// ResolveAll stops there and returns the results gathered so far together
// with the error. The whole renaming phase completes before any
// reconciliation starts, since later phases address interfaces by their
// final names.
func (r *Resolver) ResolveAll(doc *netconf.Document) ([]RenameResult, error) {
	results := make([]RenameResult, 0, len(doc.Entries))
	for _, entry := range doc.Entries {
		result, err := r.resolve(entry)
		results = append(results, result)
		if err != nil {
			return results, err
		}
	}
	return results, nil
}

func (r *Resolver) resolve(entry netconf.InterfaceEntry) (RenameResult, error) {
	result := RenameResult{
		Key:   entry.Key,
		MAC:   netconf.NormalizeHardwareAddr(entry.MACAddress),
		State: StateSeeking,
	}
	r.log.Info("Resolving entry", "entry", entry.Key, "macaddress", result.MAC, "set_name", entry.SetName)

	adapters, err := r.table.List()
	if err != nil {
		result.Err = err
		return result, fmt.Errorf("failed to enumerate adapters: %w", err)
	}

	// First adapter in enumeration order wins if duplicates exist.
	var match *Adapter
	for i := range adapters {
		if result.MAC != "" && netconf.NormalizeHardwareAddr(adapters[i].HardwareAddr) == result.MAC {
			match = &adapters[i]
			break
		}
	}
	if match == nil {
		result.State = StateNotFound
		result.Err = fmt.Errorf("no adapter matches hardware address %q", result.MAC)
		r.log.Error("No matching adapter", "entry", entry.Key, "macaddress", result.MAC)
		return result, nil
	}

	result.OldName = match.Name
	result.Index = match.Index

	target := entry.SetName
	if target == "" || match.Name == target {
		// Nothing to rename; reconcile against the current name.
		result.State = StateAlreadyNamed
		result.Name = match.Name
		r.log.Info("Adapter already named", "entry", entry.Key, "name", match.Name)
		return result, nil
	}

	result.State = StateRenaming
	r.log.Info("Renaming adapter", "entry", entry.Key, "from", match.Name, "to", target)
	if err := r.table.Rename(match.Name, target); err != nil {
		result.Err = err
		return result, fmt.Errorf("rename %s -> %s failed: %w", match.Name, target, err)
	}

	result.State = StateVerifying
	for attempt := 1; attempt <= r.PollAttempts; attempt++ {
		result.Attempts = attempt
		current, err := r.table.ByIndex(match.Index)
		if err == nil && current != nil && current.Name == target {
			result.State = StateVerified
			result.Name = target
			r.log.Info("Rename verified", "entry", entry.Key, "name", target, "attempts", attempt)
			return result, nil
		}
		// No sleep after the final poll; the budget ends with the
		// last fetch, not another interval.
		if attempt < r.PollAttempts {
			r.clk.Sleep(r.PollInterval)
		}
	}

	result.State = StateTimedOut
	result.Err = fmt.Errorf("rename of %s to %s not visible after %d polls", result.OldName, target, r.PollAttempts)
	r.log.Error("Rename verification timed out", "entry", entry.Key, "from", result.OldName, "to", target, "attempts", r.PollAttempts)
	return result, nil
}
