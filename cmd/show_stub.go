//go:build !linux

package cmd

import "github.com/seedwire/netseed/internal/network"

// adapterDetails has no ethtool backing off Linux.
func adapterDetails(adapters []network.Adapter) map[string]adapterDetail {
	return make(map[string]adapterDetail)
}
