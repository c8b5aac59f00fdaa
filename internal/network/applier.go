package network

import (
	"fmt"
	"net"
	"strings"

	"github.com/vishvananda/netlink"
	"golang.org/x/sys/unix"

	"github.com/seedwire/netseed/internal/logging"
)

// RealApplier implements Applier against the injected Netlinker, sysctl
// controller, and command executor. Addresses, routes, and MTU go through
// netlink; the IPv6 stack reset goes through sysctl; DNS and the DHCP
// client kick are external commands.
type RealApplier struct {
	nl  Netlinker
	sys SystemController
	cmd CommandExecutor
	log *logging.Logger
	dns *dnsConfigurer

	// DHCPClient forces a specific client binary ("udhcpc" or
	// "dhclient"). Empty probes the PATH, udhcpc first.
	DHCPClient string
}

// NewApplier creates an applier over the given dependencies.
func NewApplier(nl Netlinker, sys SystemController, cmd CommandExecutor, logger *logging.Logger) *RealApplier {
	if logger == nil {
		logger = logging.Default()
	}
	return &RealApplier{
		nl:  nl,
		sys: sys,
		cmd: cmd,
		log: logger.WithComponent("applier"),
		dns: newDNSConfigurer(cmd),
	}
}

// ResetIPv4 flushes the interface's IPv4 addresses and restarts the
// system DHCP client on it, returning the interface to a DHCP-sourced
// baseline.
func (a *RealApplier) ResetIPv4(iface string) error {
	link, err := a.nl.LinkByName(iface)
	if err != nil {
		return fmt.Errorf("interface %s not found: %w", iface, err)
	}
	addrs, err := a.nl.AddrList(link, netlink.FAMILY_V4)
	if err != nil {
		return fmt.Errorf("failed to list IPv4 addresses on %s: %w", iface, err)
	}
	for i := range addrs {
		if err := a.nl.AddrDel(link, &addrs[i]); err != nil {
			a.log.Warn("Failed to flush address", "interface", iface, "address", addrs[i].String(), "error", err)
		}
	}
	return a.kickDHCPClient(iface)
}

// ResetIPv6 flushes non-link-local IPv6 addresses and restores the
// interface's IPv6 sysctl knobs to their defaults (router advertisements
// and autoconfiguration on, stack enabled).
func (a *RealApplier) ResetIPv6(iface string) error {
	link, err := a.nl.LinkByName(iface)
	if err != nil {
		return fmt.Errorf("interface %s not found: %w", iface, err)
	}
	addrs, err := a.nl.AddrList(link, netlink.FAMILY_V6)
	if err != nil {
		return fmt.Errorf("failed to list IPv6 addresses on %s: %w", iface, err)
	}
	for i := range addrs {
		if addrs[i].IP.IsLinkLocalUnicast() {
			continue
		}
		if err := a.nl.AddrDel(link, &addrs[i]); err != nil {
			a.log.Warn("Failed to flush address", "interface", iface, "address", addrs[i].String(), "error", err)
		}
	}

	defaults := map[string]string{
		"accept_ra":    "1",
		"autoconf":     "1",
		"disable_ipv6": "0",
	}
	for knob, value := range defaults {
		path := fmt.Sprintf("net/ipv6/conf/%s/%s", iface, knob)
		if err := a.sys.WriteSysctl(path, value); err != nil && !a.sys.IsNotExist(err) {
			a.log.Warn("Failed to reset sysctl", "path", path, "error", err)
		}
	}
	return nil
}

// AddIPv4Address adds a static IPv4 address with a dotted-quad mask.
func (a *RealApplier) AddIPv4Address(iface, ip, mask string) error {
	link, err := a.nl.LinkByName(iface)
	if err != nil {
		return fmt.Errorf("interface %s not found: %w", iface, err)
	}
	parsedIP := net.ParseIP(ip)
	parsedMask := net.ParseIP(mask)
	if parsedIP == nil || parsedMask == nil || parsedMask.To4() == nil {
		return fmt.Errorf("invalid IPv4 address %s/%s", ip, mask)
	}
	addr := &netlink.Addr{IPNet: &net.IPNet{IP: parsedIP, Mask: net.IPMask(parsedMask.To4())}}
	if err := a.nl.AddrAdd(link, addr); err != nil && !alreadyExists(err) {
		return fmt.Errorf("failed to add %s to %s: %w", addr, iface, err)
	}
	return nil
}

// AddIPv6Address adds a static IPv6 address with a prefix length.
func (a *RealApplier) AddIPv6Address(iface, ip string, prefixLen int) error {
	link, err := a.nl.LinkByName(iface)
	if err != nil {
		return fmt.Errorf("interface %s not found: %w", iface, err)
	}
	addr, err := a.nl.ParseAddr(fmt.Sprintf("%s/%d", ip, prefixLen))
	if err != nil {
		return fmt.Errorf("invalid IPv6 address %s/%d: %w", ip, prefixLen, err)
	}
	if err := a.nl.AddrAdd(link, addr); err != nil && !alreadyExists(err) {
		return fmt.Errorf("failed to add %s to %s: %w", addr, iface, err)
	}
	return nil
}

// AddIPv4Route installs an IPv4 route; empty gateway means on-link.
func (a *RealApplier) AddIPv4Route(iface, dest, gateway string, metric int) error {
	return a.addRoute(iface, dest, gateway, metric)
}

// AddIPv6Route installs an IPv6 route; empty gateway means on-link.
func (a *RealApplier) AddIPv6Route(iface, dest, gateway string, metric int) error {
	return a.addRoute(iface, dest, gateway, metric)
}

func (a *RealApplier) addRoute(iface, dest, gateway string, metric int) error {
	link, err := a.nl.LinkByName(iface)
	if err != nil {
		return fmt.Errorf("interface %s not found: %w", iface, err)
	}
	dst, err := a.nl.ParseIPNet(dest)
	if err != nil {
		return fmt.Errorf("invalid route destination %s: %w", dest, err)
	}
	route := &netlink.Route{
		LinkIndex: link.Attrs().Index,
		Dst:       dst,
		Priority:  metric,
	}
	if gateway == "" {
		route.Scope = unix.RT_SCOPE_LINK
	} else {
		gw := net.ParseIP(gateway)
		if gw == nil {
			return fmt.Errorf("invalid gateway %s", gateway)
		}
		route.Gw = gw
	}
	if err := a.nl.RouteAdd(route); err != nil && !alreadyExists(err) {
		return fmt.Errorf("failed to add route %s via %q on %s: %w", dest, gateway, iface, err)
	}
	return nil
}

// SetPrimaryDNS replaces the family's per-link server list with server.
func (a *RealApplier) SetPrimaryDNS(iface string, family Family, server string) error {
	return a.dns.SetPrimary(iface, family, server)
}

// AddSecondaryDNS appends server to the family's per-link list.
func (a *RealApplier) AddSecondaryDNS(iface string, family Family, server string, index int) error {
	return a.dns.AddSecondary(iface, family, server, index)
}

// SetMTU sets the interface MTU.
func (a *RealApplier) SetMTU(iface string, mtu int) error {
	link, err := a.nl.LinkByName(iface)
	if err != nil {
		return fmt.Errorf("interface %s not found: %w", iface, err)
	}
	if err := a.nl.LinkSetMTU(link, mtu); err != nil {
		return fmt.Errorf("failed to set MTU %d on %s: %w", mtu, iface, err)
	}
	return nil
}

// alreadyExists matches the netlink error for re-adding an address or
// route that is already present; reconciliation treats that as success.
func alreadyExists(err error) bool {
	return err != nil && strings.Contains(err.Error(), "file exists")
}
