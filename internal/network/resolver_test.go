package network

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/seedwire/netseed/internal/clock"
	"github.com/seedwire/netseed/internal/netconf"
)

func newTestResolver(table AdapterTable) (*Resolver, *clock.MockClock) {
	clk := clock.NewMockClock(time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC))
	return NewResolver(table, clk, nil), clk
}

func singleEntryDoc(mac, setName string) *netconf.Document {
	return &netconf.Document{Entries: []netconf.InterfaceEntry{
		{Key: "eth0", MACAddress: mac, SetName: setName},
	}}
}

func TestResolver_RenameAndVerify(t *testing.T) {
	table := new(MockAdapterTable)
	table.On("List").Return([]Adapter{
		{Index: 7, Name: "Ethernet 2", HardwareAddr: "aa:bb:cc:dd:ee:ff"},
	}, nil).Once()
	table.On("Rename", "Ethernet 2", "Ethernet0").Return(nil).Once()
	// First poll still sees the old name, second sees the rename landed.
	table.On("ByIndex", 7).Return(&Adapter{Index: 7, Name: "Ethernet 2", HardwareAddr: "aa:bb:cc:dd:ee:ff"}, nil).Once()
	table.On("ByIndex", 7).Return(&Adapter{Index: 7, Name: "Ethernet0", HardwareAddr: "aa:bb:cc:dd:ee:ff"}, nil).Once()

	resolver, clk := newTestResolver(table)
	results, err := resolver.ResolveAll(singleEntryDoc("AA-BB-CC-DD-EE-FF", "Ethernet0"))
	require.NoError(t, err)
	require.Len(t, results, 1)

	result := results[0]
	assert.Equal(t, StateVerified, result.State)
	assert.Equal(t, "Ethernet 2", result.OldName)
	assert.Equal(t, "Ethernet0", result.Name)
	assert.Equal(t, 2, result.Attempts)
	assert.True(t, result.Configurable())
	// One poll interval waited, no real sleeping.
	assert.Equal(t, []time.Duration{200 * time.Millisecond}, clk.Sleeps())
	table.AssertExpectations(t)
	table.AssertNumberOfCalls(t, "Rename", 1)
}

func TestResolver_AlreadyNamed(t *testing.T) {
	table := new(MockAdapterTable)
	table.On("List").Return([]Adapter{
		{Index: 3, Name: "lan0", HardwareAddr: "aa:bb:cc:dd:ee:ff"},
	}, nil).Once()

	resolver, _ := newTestResolver(table)
	results, err := resolver.ResolveAll(singleEntryDoc("aa:bb:cc:dd:ee:ff", "lan0"))
	require.NoError(t, err)

	assert.Equal(t, StateAlreadyNamed, results[0].State)
	assert.Equal(t, "lan0", results[0].Name)
	assert.True(t, results[0].Configurable())
	table.AssertNotCalled(t, "Rename", mock.Anything, mock.Anything)
}

func TestResolver_NotFoundContinues(t *testing.T) {
	table := new(MockAdapterTable)
	table.On("List").Return([]Adapter{
		{Index: 3, Name: "lan0", HardwareAddr: "11:22:33:44:55:66"},
	}, nil).Twice()

	doc := &netconf.Document{Entries: []netconf.InterfaceEntry{
		{Key: "missing", MACAddress: "aa:bb:cc:dd:ee:ff", SetName: "lan9"},
		{Key: "present", MACAddress: "11-22-33-44-55-66", SetName: "lan0"},
	}}

	resolver, _ := newTestResolver(table)
	results, err := resolver.ResolveAll(doc)
	require.NoError(t, err)
	require.Len(t, results, 2, "a NotFound entry must not stop later entries")

	assert.Equal(t, StateNotFound, results[0].State)
	assert.Error(t, results[0].Err)
	assert.False(t, results[0].Configurable())
	assert.Equal(t, StateAlreadyNamed, results[1].State)
	table.AssertNotCalled(t, "Rename", mock.Anything, mock.Anything)
}

func TestResolver_EmptyMACNeverMatches(t *testing.T) {
	table := new(MockAdapterTable)
	table.On("List").Return([]Adapter{
		{Index: 3, Name: "lan0", HardwareAddr: "11:22:33:44:55:66"},
	}, nil).Once()

	resolver, _ := newTestResolver(table)
	results, err := resolver.ResolveAll(singleEntryDoc("", "lan0"))
	require.NoError(t, err)
	assert.Equal(t, StateNotFound, results[0].State)
}

func TestResolver_RenameIssuanceFailureIsFatal(t *testing.T) {
	table := new(MockAdapterTable)
	table.On("List").Return([]Adapter{
		{Index: 7, Name: "old0", HardwareAddr: "aa:bb:cc:dd:ee:ff"},
	}, nil).Once()
	table.On("Rename", "old0", "lan0").Return(errors.New("netlink: operation not permitted")).Once()

	doc := &netconf.Document{Entries: []netconf.InterfaceEntry{
		{Key: "eth0", MACAddress: "aa:bb:cc:dd:ee:ff", SetName: "lan0"},
		{Key: "eth1", MACAddress: "11:22:33:44:55:66", SetName: "lan1"},
	}}

	resolver, _ := newTestResolver(table)
	results, err := resolver.ResolveAll(doc)
	require.Error(t, err, "a failed rename request leaves state ambiguous and aborts the phase")
	assert.Len(t, results, 1, "remaining entries must not be processed")
	assert.Equal(t, StateRenaming, results[0].State)
}

func TestResolver_VerificationTimeout(t *testing.T) {
	table := new(MockAdapterTable)
	table.On("List").Return([]Adapter{
		{Index: 7, Name: "old0", HardwareAddr: "aa:bb:cc:dd:ee:ff"},
	}, nil).Once()
	table.On("Rename", "old0", "lan0").Return(nil).Once()
	// The rename never becomes visible.
	table.On("ByIndex", 7).Return(&Adapter{Index: 7, Name: "old0"}, nil).Times(20)

	resolver, clk := newTestResolver(table)
	results, err := resolver.ResolveAll(singleEntryDoc("aa:bb:cc:dd:ee:ff", "lan0"))
	require.NoError(t, err, "verification timeout is per-entry, not fatal")

	result := results[0]
	assert.Equal(t, StateTimedOut, result.State)
	assert.Equal(t, 20, result.Attempts)
	assert.Error(t, result.Err)
	assert.False(t, result.Configurable())
	assert.Len(t, clk.Sleeps(), 19, "no interval is waited after the final poll")
	table.AssertExpectations(t)
}

func TestResolver_DuplicateMACFirstWins(t *testing.T) {
	table := new(MockAdapterTable)
	table.On("List").Return([]Adapter{
		{Index: 2, Name: "first0", HardwareAddr: "aa:bb:cc:dd:ee:ff"},
		{Index: 5, Name: "second0", HardwareAddr: "aa:bb:cc:dd:ee:ff"},
	}, nil).Once()

	resolver, _ := newTestResolver(table)
	results, err := resolver.ResolveAll(singleEntryDoc("aa:bb:cc:dd:ee:ff", "first0"))
	require.NoError(t, err)
	assert.Equal(t, StateAlreadyNamed, results[0].State)
	assert.Equal(t, "first0", results[0].Name, "first adapter in enumeration order wins")
}
