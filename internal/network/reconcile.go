package network

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/seedwire/netseed/internal/logging"
	"github.com/seedwire/netseed/internal/netconf"
)

// Gateway sentinels per family. A route whose via equals its family's
// sentinel is installed on-link, without a gateway hop.
const (
	SentinelGatewayIPv4 = "0.0.0.0"
	SentinelGatewayIPv6 = "::0"
)

// ApplyResult records the outcome of reconciling one entry. Individual
// step failures are collected as strings for the run report; they never
// abort the remaining steps.
type ApplyResult struct {
	Interface string   `json:"interface"`
	Errors    []string `json:"errors,omitempty"`
}

// Engine reconciles one interface's live settings against its document
// entry: reset to a known baseline, then addresses, routes, DNS, and MTU
// in that fixed order. Every step is an independent best-effort command.
type Engine struct {
	applier Applier
	log     *logging.Logger
}

// NewEngine creates a reconciliation engine over the given applier.
func NewEngine(applier Applier, logger *logging.Logger) *Engine {
	if logger == nil {
		logger = logging.Default()
	}
	return &Engine{applier: applier, log: logger.WithComponent("reconcile")}
}

// Apply reconciles the named interface against the entry. Entries are
// independent: a failure here cannot affect the state needed to process
// the next one, and partial application is an accepted outcome.
func (e *Engine) Apply(iface string, entry netconf.InterfaceEntry) ApplyResult {
	result := ApplyResult{Interface: iface}
	fail := func(step string, err error) {
		e.log.Error("Step failed", "interface", iface, "step", step, "error", err)
		result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", step, err))
	}

	// Baseline: clear whatever a previous run may have left behind so
	// repeated applications converge on the same state.
	e.log.Info("Resetting IPv4 addressing to DHCP", "interface", iface)
	if err := e.applier.ResetIPv4(iface); err != nil {
		fail("reset-ipv4", err)
	}
	e.log.Info("Resetting IPv6 stack to defaults", "interface", iface)
	if err := e.applier.ResetIPv6(iface); err != nil {
		fail("reset-ipv6", err)
	}

	for _, address := range entry.Addresses {
		ip, prefix, ok := splitCIDR(address)
		if !ok {
			fail("address", fmt.Errorf("malformed address %q", address))
			continue
		}
		if strings.Contains(ip, ":") {
			e.log.Info("Adding IPv6 address", "interface", iface, "address", ip, "prefixlen", prefix)
			if err := e.applier.AddIPv6Address(iface, ip, prefix); err != nil {
				fail("address", err)
			}
		} else {
			mask := PrefixToMask(prefix)
			e.log.Info("Adding IPv4 address", "interface", iface, "address", ip, "mask", mask)
			if err := e.applier.AddIPv4Address(iface, ip, mask); err != nil {
				fail("address", err)
			}
		}
	}

	for _, route := range entry.Routes {
		if strings.Contains(route.To, ":") {
			gateway := route.Via
			if gateway == SentinelGatewayIPv6 {
				gateway = ""
			}
			e.log.Info("Adding IPv6 route", "interface", iface, "to", route.To, "via", route.Via, "metric", route.Metric)
			if err := e.applier.AddIPv6Route(iface, route.To, gateway, route.Metric); err != nil {
				fail("route", err)
			}
		} else {
			gateway := route.Via
			if gateway == SentinelGatewayIPv4 {
				gateway = ""
			}
			e.log.Info("Adding IPv4 route", "interface", iface, "to", route.To, "via", route.Via, "metric", route.Metric)
			if err := e.applier.AddIPv4Route(iface, route.To, gateway, route.Metric); err != nil {
				fail("route", err)
			}
		}
	}

	e.applyDNS(iface, entry.Nameservers, &result)

	if entry.MTU > 0 {
		e.log.Info("Setting MTU", "interface", iface, "mtu", entry.MTU)
		if err := e.applier.SetMTU(iface, entry.MTU); err != nil {
			fail("mtu", err)
		}
	}

	return result
}

// applyDNS partitions the servers into per-family buckets, preserving
// document order within each. A non-empty bucket replaces that family's
// server list: first entry becomes the primary, the rest are appended as
// secondaries starting at index 2. An empty bucket leaves the family's
// existing settings alone, unlike the unconditional address resets above;
// deployments rely on that to keep DHCP-learned DNS for a family the
// document omits.
func (e *Engine) applyDNS(iface string, servers []string, result *ApplyResult) {
	fail := func(err error) {
		e.log.Error("Step failed", "interface", iface, "step", "dns", "error", err)
		result.Errors = append(result.Errors, fmt.Sprintf("dns: %v", err))
	}

	var v4, v6 []string
	for _, server := range servers {
		if strings.Contains(server, ":") {
			v6 = append(v6, server)
		} else {
			v4 = append(v4, server)
		}
	}

	apply := func(family Family, bucket []string) {
		if len(bucket) == 0 {
			return
		}
		e.log.Info("Setting primary DNS", "interface", iface, "family", family, "server", bucket[0])
		if err := e.applier.SetPrimaryDNS(iface, family, bucket[0]); err != nil {
			fail(err)
		}
		for i, server := range bucket[1:] {
			index := i + 2
			e.log.Info("Adding secondary DNS", "interface", iface, "family", family, "server", server, "index", index)
			if err := e.applier.AddSecondaryDNS(iface, family, server, index); err != nil {
				fail(err)
			}
		}
	}
	apply(FamilyIPv4, v4)
	apply(FamilyIPv6, v6)
}

// splitCIDR splits "host/prefix" without validating the host part; the
// applier's own command reports malformed addresses.
func splitCIDR(s string) (ip string, prefix int, ok bool) {
	host, length, found := strings.Cut(s, "/")
	if !found || host == "" {
		return "", 0, false
	}
	n, err := strconv.Atoi(length)
	if err != nil {
		return "", 0, false
	}
	return host, n, true
}
