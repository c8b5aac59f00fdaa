//go:build linux
// +build linux

package network

import (
	"net"

	"github.com/vishvananda/netlink"
)

// DefaultNetlinker is the default RealNetlinker instance.
var DefaultNetlinker Netlinker = &RealNetlinker{}

// RealNetlinker is a concrete implementation of Netlinker that uses the actual netlink package.
type RealNetlinker struct{}

// LinkByName retrieves a link by name.
func (r *RealNetlinker) LinkByName(name string) (netlink.Link, error) {
	return netlink.LinkByName(name)
}

// LinkByIndex retrieves a link by its OS index.
func (r *RealNetlinker) LinkByIndex(index int) (netlink.Link, error) {
	return netlink.LinkByIndex(index)
}

// LinkList retrieves all links.
func (r *RealNetlinker) LinkList() ([]netlink.Link, error) {
	return netlink.LinkList()
}

// LinkSetName renames the link.
func (r *RealNetlinker) LinkSetName(link netlink.Link, name string) error {
	return netlink.LinkSetName(link, name)
}

// LinkSetUp sets the link up.
func (r *RealNetlinker) LinkSetUp(link netlink.Link) error {
	return netlink.LinkSetUp(link)
}

// LinkSetDown sets the link down.
func (r *RealNetlinker) LinkSetDown(link netlink.Link) error {
	return netlink.LinkSetDown(link)
}

// LinkSetMTU sets the MTU of the link.
func (r *RealNetlinker) LinkSetMTU(link netlink.Link, mtu int) error {
	return netlink.LinkSetMTU(link, mtu)
}

// AddrList retrieves a list of addresses for a link.
func (r *RealNetlinker) AddrList(link netlink.Link, family int) ([]netlink.Addr, error) {
	return netlink.AddrList(link, family)
}

// AddrAdd adds an address to a link.
func (r *RealNetlinker) AddrAdd(link netlink.Link, addr *netlink.Addr) error {
	return netlink.AddrAdd(link, addr)
}

// AddrDel deletes an address from a link.
func (r *RealNetlinker) AddrDel(link netlink.Link, addr *netlink.Addr) error {
	return netlink.AddrDel(link, addr)
}

// RouteAdd adds a route.
func (r *RealNetlinker) RouteAdd(route *netlink.Route) error {
	return netlink.RouteAdd(route)
}

// ParseAddr parses an IP address string.
func (r *RealNetlinker) ParseAddr(s string) (*netlink.Addr, error) {
	return netlink.ParseAddr(s)
}

// ParseIPNet parses an IP network string.
func (r *RealNetlinker) ParseIPNet(s string) (*net.IPNet, error) {
	_, ipNet, err := net.ParseCIDR(s) // netlink.ParseIPNet is not public
	if err != nil {
		return nil, err
	}
	return ipNet, nil
}
