package network

import (
	"fmt"
	"os"
	"os/exec"
	"regexp"
)

// kickDHCPClient restarts the system's IPv4 DHCP client on the interface.
// It wraps udhcpc (Alpine/BusyBox) or dhclient (Debian and others). Any
// client already managing the interface is killed first so the restart
// re-negotiates from scratch. Both clients are invoked in their bounded
// one-shot forms so the call returns once the exchange settles.
func (a *RealApplier) kickDHCPClient(iface string) error {
	client := a.DHCPClient
	if client == "" {
		for _, candidate := range []string{"udhcpc", "dhclient"} {
			if _, err := exec.LookPath(candidate); err == nil {
				client = candidate
				break
			}
		}
	}

	safeIface := regexp.QuoteMeta(iface)
	switch client {
	case "udhcpc":
		// pkill exits 1 when nothing matched; not an error here.
		_, _ = a.cmd.RunCommand("pkill", "-f", fmt.Sprintf("udhcpc .* -i %s", safeIface))

		args := []string{"-i", iface, "-n", "-q"}
		scriptPath := "/usr/share/udhcpc/default.script"
		if _, err := os.Stat(scriptPath); err == nil {
			args = append(args, "-s", scriptPath)
		}
		if _, err := a.cmd.RunCommand("udhcpc", args...); err != nil {
			return fmt.Errorf("udhcpc on %s failed: %w", iface, err)
		}
		a.log.Info("Restarted IPv4 DHCP client (udhcpc)", "interface", iface)
		return nil

	case "dhclient":
		_, _ = a.cmd.RunCommand("pkill", "-f", fmt.Sprintf("dhclient .* %s", safeIface))

		if _, err := a.cmd.RunCommand("dhclient", "-4", "-1", iface); err != nil {
			return fmt.Errorf("dhclient on %s failed: %w", iface, err)
		}
		a.log.Info("Restarted IPv4 DHCP client (dhclient)", "interface", iface)
		return nil

	default:
		return fmt.Errorf("no DHCP client found (tried udhcpc, dhclient)")
	}
}
