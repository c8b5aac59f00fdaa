package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/seedwire/netseed/internal/brand"
	"github.com/seedwire/netseed/internal/netconf"
	"github.com/seedwire/netseed/internal/network"
)

// RunShow dispatches the show subcommands.
func RunShow(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: %s show adapters|document <file>", brand.BinaryName)
	}

	switch args[0] {
	case "adapters":
		return showAdapters()
	case "document":
		if len(args) < 2 {
			return fmt.Errorf("usage: %s show document <file>", brand.BinaryName)
		}
		return showDocument(args[1])
	default:
		return fmt.Errorf("unknown show target %q (want adapters or document)", args[0])
	}
}

// showAdapters prints the live adapter table. Driver and speed columns come
// from ethtool when available (Linux, root); otherwise they show "-".
func showAdapters() error {
	table := network.NewAdapterTable(network.DefaultNetlinker)
	adapters, err := table.List()
	if err != nil {
		return fmt.Errorf("failed to list adapters: %w", err)
	}

	details := adapterDetails(adapters)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "INDEX\tNAME\tMAC\tDRIVER\tSPEED")
	for _, adapter := range adapters {
		detail, ok := details[adapter.Name]
		if !ok {
			detail = adapterDetail{Driver: "-", Speed: "-"}
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
			adapter.Index, adapter.Name, adapter.HardwareAddr, detail.Driver, detail.Speed)
	}
	return w.Flush()
}

// adapterDetail is the per-adapter hardware info shown next to the netlink
// columns.
type adapterDetail struct {
	Driver string
	Speed  string
}

// showDocument parses a document file and prints the full node tree plus the
// compiled entries.
func showDocument(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	root := netconf.Parse(string(data))
	doc := netconf.BindDocument(root)

	printDocumentSummary(doc)

	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ENTRY\tROUTE\tVIA\tMETRIC")
	for _, entry := range doc.Entries {
		for _, route := range entry.Routes {
			via := route.Via
			if via == "" || via == network.SentinelGatewayIPv4 || via == network.SentinelGatewayIPv6 {
				via = "(on-link)"
			}
			metric := "-"
			if route.Metric > 0 {
				metric = fmt.Sprintf("%d", route.Metric)
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", entry.Key, route.To, via, metric)
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if version := root.ChildValue("version"); version != "" && version != "2" {
		fmt.Printf("\nNote: document declares version %s; only the version 2 subset is understood.\n",
			version)
	}
	return nil
}
