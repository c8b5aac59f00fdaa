package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/vishvananda/netlink"

	"github.com/seedwire/netseed/internal/config"
	"github.com/seedwire/netseed/internal/netconf"
	"github.com/seedwire/netseed/internal/network"
)

// RunDiff renders the state the document asks for next to what the live
// adapters currently carry and prints a unified diff. Routes and DNS are
// kernel- and resolver-noise-prone, so the comparison covers names,
// addresses, and MTU. A non-empty diff returns an error so the process
// exits non-zero.
func RunDiff(configFile, docFile string) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}
	logger := setupLogging(cfg)
	log := logger.WithComponent("diff")

	source := documentSource(cfg, docFile, logger)
	_, doc, err := fetchDocument(source, log)
	if err != nil {
		return err
	}

	table := network.NewAdapterTable(network.DefaultNetlinker)
	adapters, err := table.List()
	if err != nil {
		return fmt.Errorf("failed to list adapters: %w", err)
	}

	desired := renderDesired(doc)
	live := renderLive(doc, adapters)

	if desired == live {
		fmt.Println("No changes detected.")
		return nil
	}

	fmt.Println("Live state differs from document:")
	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(desired),
		B:        difflib.SplitLines(live),
		FromFile: "Document",
		ToFile:   "Live",
		Context:  3,
	}
	text, _ := difflib.GetUnifiedDiffString(diff)
	fmt.Print(text)

	return fmt.Errorf("live state differs from document")
}

// renderDesired formats what the document asks for, one block per entry.
func renderDesired(doc *netconf.Document) string {
	var b strings.Builder
	for _, entry := range doc.Entries {
		name := entry.SetName
		if name == "" {
			name = entry.Key
		}
		fmt.Fprintf(&b, "interface %s\n", name)
		fmt.Fprintf(&b, "  mac %s\n", netconf.NormalizeHardwareAddr(entry.MACAddress))
		for _, addr := range sortedStrings(entry.Addresses) {
			fmt.Fprintf(&b, "  address %s\n", addr)
		}
		if entry.MTU > 0 {
			fmt.Fprintf(&b, "  mtu %d\n", entry.MTU)
		}
	}
	return b.String()
}

// renderLive formats the current state of each adapter the document's
// entries match, in document order.
func renderLive(doc *netconf.Document, adapters []network.Adapter) string {
	var b strings.Builder
	for _, entry := range doc.Entries {
		mac := netconf.NormalizeHardwareAddr(entry.MACAddress)

		var match *network.Adapter
		for i := range adapters {
			if netconf.NormalizeHardwareAddr(adapters[i].HardwareAddr) == mac {
				match = &adapters[i]
				break
			}
		}

		name := entry.SetName
		if name == "" {
			name = entry.Key
		}
		if match == nil {
			fmt.Fprintf(&b, "interface %s\n", name)
			fmt.Fprintf(&b, "  mac %s (no adapter)\n", mac)
			continue
		}

		fmt.Fprintf(&b, "interface %s\n", match.Name)
		fmt.Fprintf(&b, "  mac %s\n", match.HardwareAddr)
		for _, addr := range liveAddresses(match.Index) {
			fmt.Fprintf(&b, "  address %s\n", addr)
		}
		if mtu := liveMTU(match.Index); mtu > 0 && entry.MTU > 0 {
			fmt.Fprintf(&b, "  mtu %d\n", mtu)
		}
	}
	return b.String()
}

// liveAddresses returns the adapter's addresses, link-local excluded.
func liveAddresses(index int) []string {
	link, err := network.DefaultNetlinker.LinkByIndex(index)
	if err != nil {
		return nil
	}
	addrs, err := network.DefaultNetlinker.AddrList(link, netlink.FAMILY_ALL)
	if err != nil {
		return nil
	}
	var out []string
	for _, addr := range addrs {
		if addr.IP.IsLinkLocalUnicast() {
			continue
		}
		out = append(out, addr.IPNet.String())
	}
	return sortedStrings(out)
}

func liveMTU(index int) int {
	link, err := network.DefaultNetlinker.LinkByIndex(index)
	if err != nil {
		return 0
	}
	return link.Attrs().MTU
}

func sortedStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	sort.Strings(out)
	return out
}
