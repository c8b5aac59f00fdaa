package cmd

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/seedwire/netseed/internal/brand"
	"github.com/seedwire/netseed/internal/netconf"
	"github.com/seedwire/netseed/internal/network"
)

// RunCheck parses a network-config document and prints what it describes.
// With verbose it also prints the operations an apply would perform, using
// the recording backends. The live adapter table is never consulted, so
// check works on any machine.
func RunCheck(docFile string, verbose bool) error {
	if len(docFile) == 0 {
		return fmt.Errorf("usage: %s check [-v] <network-config>", brand.BinaryName)
	}

	data, err := os.ReadFile(docFile)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", docFile, err)
	}

	doc := netconf.BindDocument(netconf.Parse(string(data)))

	fmt.Printf("Document parsed.\n")
	fmt.Printf("Interface entries: %d\n", len(doc.Entries))
	if len(doc.Entries) == 0 {
		fmt.Println("Note: no ethernets entries found; apply would be a no-op.")
		return nil
	}

	fmt.Println()
	printDocumentSummary(doc)

	if verbose {
		fmt.Println("\n[DRY RUN] Generated Operations:")

		dryNL := &network.DryRunNetlinker{}
		drySys := &network.DryRunSystemController{}
		dryCmd := network.NewDryRunExecutor()

		applier := network.NewApplier(dryNL, drySys, dryCmd, nil)
		applier.DHCPClient = "udhcpc"
		engine := network.NewEngine(applier, nil)

		for _, entry := range doc.Entries {
			// No adapter table here; assume every rename succeeds and
			// reconcile against the target name.
			name := entry.SetName
			if name == "" {
				name = entry.Key
			}
			fmt.Printf("\n--- %s (%s) ---\n", name, entry.MACAddress)
			result := engine.Apply(name, entry)
			for _, line := range network.Transcript(nil, dryNL, drySys, dryCmd) {
				fmt.Println(line)
			}
			dryNL.Ops, drySys.Writes, dryCmd.Commands = nil, nil, nil
			for _, e := range result.Errors {
				fmt.Printf("error: %s\n", e)
			}
		}
	}

	return nil
}

func printDocumentSummary(doc *netconf.Document) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ENTRY\tMAC\tSET-NAME\tADDRESSES\tROUTES\tDNS\tMTU")
	for _, entry := range doc.Entries {
		addrs := "-"
		if len(entry.Addresses) > 0 {
			addrs = strings.Join(entry.Addresses, ",")
		}
		dns := "-"
		if len(entry.Nameservers) > 0 {
			dns = strings.Join(entry.Nameservers, ",")
		}
		mtu := "-"
		if entry.MTU > 0 {
			mtu = fmt.Sprintf("%d", entry.MTU)
		}
		setName := entry.SetName
		if setName == "" {
			setName = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\t%s\n",
			entry.Key, entry.MACAddress, setName, addrs, len(entry.Routes), dns, mtu)
	}
	w.Flush()
}
