package network

import (
	"fmt"
)

// NetlinkAdapterTable implements AdapterTable over a Netlinker. Every
// call re-queries the kernel; nothing is cached, so concurrent external
// changes to the adapter set are observed on the next query.
type NetlinkAdapterTable struct {
	nl Netlinker
}

// NewAdapterTable creates an adapter table backed by the given Netlinker.
func NewAdapterTable(nl Netlinker) *NetlinkAdapterTable {
	return &NetlinkAdapterTable{nl: nl}
}

// List returns a snapshot of the adapters that report a hardware address,
// in kernel enumeration order. Loopback and other address-less virtual
// links are not candidates for matching and are skipped.
func (t *NetlinkAdapterTable) List() ([]Adapter, error) {
	links, err := t.nl.LinkList()
	if err != nil {
		return nil, fmt.Errorf("failed to list links: %w", err)
	}
	adapters := make([]Adapter, 0, len(links))
	for _, link := range links {
		attrs := link.Attrs()
		if len(attrs.HardwareAddr) == 0 {
			continue
		}
		adapters = append(adapters, Adapter{
			Index:        attrs.Index,
			Name:         attrs.Name,
			HardwareAddr: attrs.HardwareAddr.String(),
		})
	}
	return adapters, nil
}

// ByIndex returns the current snapshot for an OS index.
func (t *NetlinkAdapterTable) ByIndex(index int) (*Adapter, error) {
	link, err := t.nl.LinkByIndex(index)
	if err != nil {
		return nil, fmt.Errorf("no link with index %d: %w", index, err)
	}
	attrs := link.Attrs()
	return &Adapter{
		Index:        attrs.Index,
		Name:         attrs.Name,
		HardwareAddr: attrs.HardwareAddr.String(),
	}, nil
}

// Rename requests a kernel-level rename. The link is brought down for
// the rename (the kernel rejects renaming a running interface) and back
// up afterwards.
func (t *NetlinkAdapterTable) Rename(current, target string) error {
	link, err := t.nl.LinkByName(current)
	if err != nil {
		return fmt.Errorf("failed to get link %s: %w", current, err)
	}
	if err := t.nl.LinkSetDown(link); err != nil {
		return fmt.Errorf("failed to bring down %s for rename: %w", current, err)
	}
	if err := t.nl.LinkSetName(link, target); err != nil {
		// Best effort: leave the link up under its old name.
		_ = t.nl.LinkSetUp(link)
		return fmt.Errorf("failed to rename %s to %s: %w", current, target, err)
	}
	if err := t.nl.LinkSetUp(link); err != nil {
		return fmt.Errorf("failed to bring up %s after rename: %w", target, err)
	}
	return nil
}
