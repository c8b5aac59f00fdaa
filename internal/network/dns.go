package network

import (
	"fmt"
	"strings"
)

// dnsConfigurer maintains per-link DNS server lists through resolvectl.
// resolvectl's "dns" verb replaces a link's whole server list, but the
// engine only rewrites one family at a time, so the configurer primes its
// view of a link from the current resolver state and carries the other
// family's servers along on every write. A family the document never
// touches keeps whatever servers it had.
type dnsConfigurer struct {
	cmd     CommandExecutor
	servers map[string]map[Family][]string
}

func newDNSConfigurer(cmd CommandExecutor) *dnsConfigurer {
	return &dnsConfigurer{
		cmd:     cmd,
		servers: make(map[string]map[Family][]string),
	}
}

// SetPrimary replaces the family's list with the single server.
func (d *dnsConfigurer) SetPrimary(iface string, family Family, server string) error {
	state := d.prime(iface)
	state[family] = []string{server}
	return d.push(iface)
}

// AddSecondary appends a server. The engine hands out positions in
// ascending order starting at 2, so appending lands each server at its
// index.
func (d *dnsConfigurer) AddSecondary(iface string, family Family, server string, index int) error {
	state := d.prime(iface)
	if len(state[family]) == 0 {
		return fmt.Errorf("no primary DNS set for %s %s before secondary index %d", iface, family, index)
	}
	state[family] = append(state[family], server)
	return d.push(iface)
}

// prime loads the link's current server list on first touch. A failed
// read (no resolved, no such link) primes an empty view.
func (d *dnsConfigurer) prime(iface string) map[Family][]string {
	if state, ok := d.servers[iface]; ok {
		return state
	}
	state := map[Family][]string{}
	if out, err := d.cmd.RunCommand("resolvectl", "dns", iface); err == nil {
		for _, server := range parseResolvectlDNS(out) {
			family := FamilyIPv4
			if strings.Contains(server, ":") {
				family = FamilyIPv6
			}
			state[family] = append(state[family], server)
		}
	}
	d.servers[iface] = state
	return state
}

func (d *dnsConfigurer) push(iface string) error {
	state := d.servers[iface]
	args := append([]string{"dns", iface}, state[FamilyIPv4]...)
	args = append(args, state[FamilyIPv6]...)
	if _, err := d.cmd.RunCommand("resolvectl", args...); err != nil {
		return fmt.Errorf("failed to set DNS on %s: %w", iface, err)
	}
	return nil
}

// parseResolvectlDNS extracts the server list from output shaped like
// "Link 2 (eth0): 10.0.0.1 2001:db8::1". The link label is cut at the
// closing parenthesis so IPv6 colons survive.
func parseResolvectlDNS(out string) []string {
	out = strings.TrimSpace(out)
	if out == "" {
		return nil
	}
	if _, rest, found := strings.Cut(out, "):"); found {
		out = rest
	}
	return strings.Fields(out)
}
