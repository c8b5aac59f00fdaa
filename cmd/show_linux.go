//go:build linux

package cmd

import (
	"fmt"

	"github.com/safchain/ethtool"

	"github.com/seedwire/netseed/internal/network"
)

// adapterDetails queries ethtool for driver name and link speed. Failures
// (not root, virtual NICs without link settings) degrade to "-" columns.
func adapterDetails(adapters []network.Adapter) map[string]adapterDetail {
	out := make(map[string]adapterDetail, len(adapters))

	handle, err := ethtool.NewEthtool()
	if err != nil {
		return out
	}
	defer handle.Close()

	for _, adapter := range adapters {
		detail := adapterDetail{Driver: "-", Speed: "-"}

		if driver, err := handle.DriverName(adapter.Name); err == nil && driver != "" {
			detail.Driver = driver
		}
		if settings, err := handle.GetLinkSettings(adapter.Name); err == nil && settings.Speed > 0 {
			// Speed of ^uint32(0) means unknown (virtual NICs).
			if settings.Speed != ^uint32(0) {
				detail.Speed = fmt.Sprintf("%dMb/s", settings.Speed)
			}
		}

		out[adapter.Name] = detail
	}
	return out
}
