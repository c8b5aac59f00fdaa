// Package monitor runs the optional post-apply probes: can we reach the
// gateways we just routed through, and does the primary DNS server answer.
package monitor

import (
	"fmt"
	"net"
	"time"

	"github.com/miekg/dns"
	probing "github.com/prometheus-community/pro-bing"

	"github.com/seedwire/netseed/internal/logging"
	"github.com/seedwire/netseed/internal/netconf"
	"github.com/seedwire/netseed/internal/network"
)

// CheckPingFunc probes a gateway with a single ICMP echo. A variable so
// tests can stub it out.
var CheckPingFunc = func(ip string) error {
	pinger, err := probing.NewPinger(ip)
	if err != nil {
		return fmt.Errorf("failed to create pinger: %w", err)
	}

	pinger.Count = 1
	pinger.Timeout = 2 * time.Second
	pinger.SetPrivileged(false)

	if err := pinger.Run(); err != nil {
		return err
	}

	if pinger.Statistics().PacketsRecv == 0 {
		return fmt.Errorf("packet loss")
	}
	return nil
}

// CheckDNSFunc resolves name through the given server over UDP.
var CheckDNSFunc = func(server, name string) error {
	c := new(dns.Client)
	c.Net = "udp"
	c.Timeout = 2 * time.Second

	m := new(dns.Msg)
	m.SetQuestion(dns.Fqdn(name), dns.TypeA)

	resp, _, err := c.Exchange(m, net.JoinHostPort(server, "53"))
	if err != nil {
		return err
	}
	if resp.Rcode != dns.RcodeSuccess {
		return fmt.Errorf("server returned %s", dns.RcodeToString[resp.Rcode])
	}
	return nil
}

// Finding is one failed probe.
type Finding struct {
	Interface string
	Probe     string // "ping" or "dns"
	Target    string
	Err       error
}

func (f Finding) String() string {
	return fmt.Sprintf("%s: %s probe of %s failed: %v", f.Interface, f.Probe, f.Target, f.Err)
}

// Verifier probes the state an apply just produced.
type Verifier struct {
	Ping         bool
	DNS          bool
	DNSProbeName string

	log *logging.Logger
}

// NewVerifier builds a verifier; probe toggles come from the settings file.
func NewVerifier(ping, dnsProbe bool, probeName string, log *logging.Logger) *Verifier {
	if log == nil {
		log = logging.Default()
	}
	return &Verifier{
		Ping:         ping,
		DNS:          dnsProbe,
		DNSProbeName: probeName,
		log:          log.WithComponent("verify"),
	}
}

// Verify probes every entry that was applied: each explicit route gateway is
// pinged, and the first nameserver of each family answers a lookup. Findings
// are advisory; the caller decides what to do with them.
func (v *Verifier) Verify(entries []netconf.InterfaceEntry, names map[string]string) []Finding {
	var findings []Finding

	for _, entry := range entries {
		iface, ok := names[entry.Key]
		if !ok {
			continue
		}

		if v.Ping {
			for _, gw := range gateways(entry) {
				v.log.Debug("pinging gateway", "iface", iface, "gateway", gw)
				if err := CheckPingFunc(gw); err != nil {
					findings = append(findings, Finding{Interface: iface, Probe: "ping", Target: gw, Err: err})
					v.log.Warn("gateway unreachable", "iface", iface, "gateway", gw, "error", err)
				}
			}
		}

		if v.DNS {
			for _, server := range primaryNameservers(entry) {
				v.log.Debug("probing dns server", "iface", iface, "server", server)
				if err := CheckDNSFunc(server, v.DNSProbeName); err != nil {
					findings = append(findings, Finding{Interface: iface, Probe: "dns", Target: server, Err: err})
					v.log.Warn("dns server not answering", "iface", iface, "server", server, "error", err)
				}
			}
		}
	}

	if len(findings) == 0 {
		v.log.Info("all probes passed")
	}
	return findings
}

// gateways returns the explicit (non-sentinel) route gateways of an entry.
func gateways(entry netconf.InterfaceEntry) []string {
	var out []string
	seen := make(map[string]bool)
	for _, route := range entry.Routes {
		gw := route.Via
		if gw == "" || gw == network.SentinelGatewayIPv4 || gw == network.SentinelGatewayIPv6 {
			continue
		}
		if !seen[gw] {
			seen[gw] = true
			out = append(out, gw)
		}
	}
	return out
}

// primaryNameservers returns the first nameserver of each family.
func primaryNameservers(entry netconf.InterfaceEntry) []string {
	var v4, v6 string
	for _, server := range entry.Nameservers {
		if isIPv6(server) {
			if v6 == "" {
				v6 = server
			}
		} else if v4 == "" {
			v4 = server
		}
	}

	var out []string
	if v4 != "" {
		out = append(out, v4)
	}
	if v6 != "" {
		out = append(out, v6)
	}
	return out
}

func isIPv6(addr string) bool {
	for i := 0; i < len(addr); i++ {
		if addr[i] == ':' {
			return true
		}
	}
	return false
}
