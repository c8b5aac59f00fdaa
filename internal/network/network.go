// Package network matches document entries to live adapters, renames the
// adapters to their canonical names, and reconciles addressing, routing,
// DNS, and MTU against the document.
//
// All mutation of kernel state goes through small injected interfaces
// (AdapterTable, Applier, Netlinker, SystemController, CommandExecutor)
// so the resolver and engine can be exercised against mocks and dry-run
// recorders.
package network

import (
	"net"

	"github.com/vishvananda/netlink"
)

// Family selects an address family for DNS operations.
type Family string

const (
	FamilyIPv4 Family = "ipv4"
	FamilyIPv6 Family = "ipv6"
)

// Adapter is a point-in-time snapshot of a live network interface. The
// index is OS-assigned and stable across renames; the name and hardware
// address are whatever the kernel reported at the moment of the query.
// Snapshots are fetched fresh at every decision point and never cached
// across a mutation.
type Adapter struct {
	Index        int
	Name         string
	HardwareAddr string
}

// AdapterTable is the resolver's view of the live adapter set.
type AdapterTable interface {
	// List returns a snapshot of all adapters that report a hardware
	// address, in kernel enumeration order.
	List() ([]Adapter, error)
	// ByIndex returns the current snapshot for an OS index, or an error
	// if no such adapter exists anymore.
	ByIndex(index int) (*Adapter, error)
	// Rename requests an OS-level rename. Returning nil only means the
	// request was issued; the rename may land asynchronously, so callers
	// verify via ByIndex.
	Rename(current, target string) error
}

// Applier is the reconciliation command surface. Every method is a
// single best-effort operation against the named interface; a non-nil
// error is reported by the caller and never stops the remaining steps.
type Applier interface {
	// ResetIPv4 clears static IPv4 addressing and returns the interface
	// to DHCP-sourced configuration.
	ResetIPv4(iface string) error
	// ResetIPv6 returns the interface's IPv6 stack to its defaults.
	ResetIPv6(iface string) error
	AddIPv4Address(iface, ip, mask string) error
	AddIPv6Address(iface, ip string, prefixLen int) error
	// AddIPv4Route installs a route. An empty gateway means an on-link
	// route without a gateway hop.
	AddIPv4Route(iface, dest, gateway string, metric int) error
	AddIPv6Route(iface, dest, gateway string, metric int) error
	// SetPrimaryDNS replaces the family's server list with the single
	// given server. The other family's servers are left untouched.
	SetPrimaryDNS(iface string, family Family, server string) error
	// AddSecondaryDNS appends a server at the given 1-based position
	// (the first secondary sits at index 2).
	AddSecondaryDNS(iface string, family Family, server string, index int) error
	SetMTU(iface string, mtu int) error
}

// Netlinker abstracts the netlink operations the package needs, so they
// can be mocked in unit tests and recorded in dry runs.
type Netlinker interface {
	LinkByName(name string) (netlink.Link, error)
	LinkByIndex(index int) (netlink.Link, error)
	LinkList() ([]netlink.Link, error)
	LinkSetName(link netlink.Link, name string) error
	LinkSetUp(link netlink.Link) error
	LinkSetDown(link netlink.Link) error
	LinkSetMTU(link netlink.Link, mtu int) error

	AddrList(link netlink.Link, family int) ([]netlink.Addr, error)
	AddrAdd(link netlink.Link, addr *netlink.Addr) error
	AddrDel(link netlink.Link, addr *netlink.Addr) error

	RouteAdd(route *netlink.Route) error

	ParseAddr(s string) (*netlink.Addr, error)
	ParseIPNet(s string) (*net.IPNet, error)
}

// SystemController is an interface that abstracts system-level operations like sysctl.
type SystemController interface {
	WriteSysctl(path, value string) error
	IsNotExist(err error) bool
}

// CommandExecutor is an interface that abstracts executing external commands.
// Implementations do not impose a timeout; the commands issued here are
// expected to return promptly.
type CommandExecutor interface {
	RunCommand(name string, arg ...string) (string, error)
}
