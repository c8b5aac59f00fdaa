package network

import (
	"errors"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vishvananda/netlink"
)

func deviceLink(index int, name, mac string) netlink.Link {
	hw, _ := net.ParseMAC(mac)
	return &netlink.Device{LinkAttrs: netlink.LinkAttrs{Index: index, Name: name, HardwareAddr: hw}}
}

func TestAdapterTable_ListSkipsAddressless(t *testing.T) {
	nl := new(MockNetlinker)
	nl.On("LinkList").Return([]netlink.Link{
		&netlink.Device{LinkAttrs: netlink.LinkAttrs{Index: 1, Name: "lo"}},
		deviceLink(2, "eth0", "aa:bb:cc:dd:ee:ff"),
	}, nil).Once()

	table := NewAdapterTable(nl)
	adapters, err := table.List()
	require.NoError(t, err)
	require.Len(t, adapters, 1)
	assert.Equal(t, Adapter{Index: 2, Name: "eth0", HardwareAddr: "aa:bb:cc:dd:ee:ff"}, adapters[0])
}

func TestAdapterTable_Rename(t *testing.T) {
	link := deviceLink(2, "eth0", "aa:bb:cc:dd:ee:ff")
	nl := new(MockNetlinker)
	nl.On("LinkByName", "eth0").Return(link, nil).Once()
	nl.On("LinkSetDown", link).Return(nil).Once()
	nl.On("LinkSetName", link, "lan0").Return(nil).Once()
	nl.On("LinkSetUp", link).Return(nil).Once()

	table := NewAdapterTable(nl)
	require.NoError(t, table.Rename("eth0", "lan0"))
	nl.AssertExpectations(t)
}

func TestAdapterTable_RenameFailureBringsLinkBackUp(t *testing.T) {
	link := deviceLink(2, "eth0", "aa:bb:cc:dd:ee:ff")
	nl := new(MockNetlinker)
	nl.On("LinkByName", "eth0").Return(link, nil).Once()
	nl.On("LinkSetDown", link).Return(nil).Once()
	nl.On("LinkSetName", link, "lan0").Return(errors.New("busy")).Once()
	nl.On("LinkSetUp", link).Return(nil).Once()

	table := NewAdapterTable(nl)
	assert.Error(t, table.Rename("eth0", "lan0"))
	nl.AssertExpectations(t)
}

func TestDryRunAdapterTable_SimulatesRename(t *testing.T) {
	inner := new(MockAdapterTable)
	inner.On("List").Return([]Adapter{{Index: 2, Name: "eth0", HardwareAddr: "aa:bb:cc:dd:ee:ff"}}, nil)
	inner.On("ByIndex", 2).Return(&Adapter{Index: 2, Name: "eth0", HardwareAddr: "aa:bb:cc:dd:ee:ff"}, nil)

	table := NewDryRunAdapterTable(inner)
	require.NoError(t, table.Rename("eth0", "lan0"))

	// Later reads see the simulated rename so verification succeeds
	// without touching the kernel.
	current, err := table.ByIndex(2)
	require.NoError(t, err)
	assert.Equal(t, "lan0", current.Name)

	adapters, err := table.List()
	require.NoError(t, err)
	assert.Equal(t, "lan0", adapters[0].Name)

	require.Len(t, table.Renames, 1)
	assert.Equal(t, "ip link set eth0 name lan0", table.Renames[0])
}
