package netconf

import (
	"strconv"
)

// Document is the typed view of a network-config tree: the entries of its
// top-level "ethernets" mapping, in document order.
type Document struct {
	Entries []InterfaceEntry
}

// InterfaceEntry is one interface's configuration block. Key is the
// document-local name of the block; it is used only for iteration order
// and diagnostics. Matching against live adapters is exclusively by
// hardware address.
type InterfaceEntry struct {
	Key         string
	MACAddress  string // match.macaddress, as written
	SetName     string // desired final interface name
	Addresses   []string
	Routes      []RouteSpec
	Nameservers []string // nameservers.addresses
	MTU         int      // 0 = absent
}

// RouteSpec is one entry of an interface's routes sequence. A Via of
// "0.0.0.0" (IPv4) or "::0" (IPv6) is the sentinel for an on-link route
// without a gateway.
type RouteSpec struct {
	To     string
	Via    string
	Metric int
}

// BindDocument compiles a parsed tree into a Document. Binding is as
// permissive as parsing: a missing or empty "ethernets" mapping yields an
// empty entry set, and malformed fields default to absent.
func BindDocument(root *Node) *Document {
	doc := &Document{}

	ethernets := root.Child("ethernets")
	if ethernets == nil || ethernets.Kind() != KindMapping {
		return doc
	}

	for _, key := range ethernets.Keys() {
		block := ethernets.Child(key)
		if block == nil || block.Kind() != KindMapping {
			continue
		}
		doc.Entries = append(doc.Entries, bindEntry(key, block))
	}
	return doc
}

func bindEntry(key string, block *Node) InterfaceEntry {
	entry := InterfaceEntry{
		Key:        key,
		MACAddress: block.Lookup("match").ChildValue("macaddress"),
		SetName:    block.ChildValue("set-name"),
	}

	for _, item := range block.Child("addresses").Items() {
		if item.Kind() == KindScalar && item.Value() != "" {
			entry.Addresses = append(entry.Addresses, item.Value())
		}
	}

	for _, item := range block.Child("routes").Items() {
		if item.Kind() != KindMapping {
			continue
		}
		entry.Routes = append(entry.Routes, RouteSpec{
			To:     item.ChildValue("to"),
			Via:    item.ChildValue("via"),
			Metric: atoi(item.ChildValue("metric")),
		})
	}

	for _, item := range block.Lookup("nameservers", "addresses").Items() {
		if item.Kind() == KindScalar && item.Value() != "" {
			entry.Nameservers = append(entry.Nameservers, item.Value())
		}
	}

	entry.MTU = atoi(block.ChildValue("mtu"))
	return entry
}

func atoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
