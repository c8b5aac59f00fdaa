package network

import (
	"net"

	"github.com/stretchr/testify/mock"
	"github.com/vishvananda/netlink"
)

// MockAdapterTable is a mock implementation of the AdapterTable interface.
type MockAdapterTable struct {
	mock.Mock
}

func (m *MockAdapterTable) List() ([]Adapter, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Adapter), args.Error(1)
}

func (m *MockAdapterTable) ByIndex(index int) (*Adapter, error) {
	args := m.Called(index)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Adapter), args.Error(1)
}

func (m *MockAdapterTable) Rename(current, target string) error {
	args := m.Called(current, target)
	return args.Error(0)
}

// MockApplier is a mock implementation of the Applier interface.
type MockApplier struct {
	mock.Mock
}

func (m *MockApplier) ResetIPv4(iface string) error {
	args := m.Called(iface)
	return args.Error(0)
}

func (m *MockApplier) ResetIPv6(iface string) error {
	args := m.Called(iface)
	return args.Error(0)
}

func (m *MockApplier) AddIPv4Address(iface, ip, mask string) error {
	args := m.Called(iface, ip, mask)
	return args.Error(0)
}

func (m *MockApplier) AddIPv6Address(iface, ip string, prefixLen int) error {
	args := m.Called(iface, ip, prefixLen)
	return args.Error(0)
}

func (m *MockApplier) AddIPv4Route(iface, dest, gateway string, metric int) error {
	args := m.Called(iface, dest, gateway, metric)
	return args.Error(0)
}

func (m *MockApplier) AddIPv6Route(iface, dest, gateway string, metric int) error {
	args := m.Called(iface, dest, gateway, metric)
	return args.Error(0)
}

func (m *MockApplier) SetPrimaryDNS(iface string, family Family, server string) error {
	args := m.Called(iface, family, server)
	return args.Error(0)
}

func (m *MockApplier) AddSecondaryDNS(iface string, family Family, server string, index int) error {
	args := m.Called(iface, family, server, index)
	return args.Error(0)
}

func (m *MockApplier) SetMTU(iface string, mtu int) error {
	args := m.Called(iface, mtu)
	return args.Error(0)
}

// MockNetlinker is a mock implementation of the Netlinker interface.
type MockNetlinker struct {
	mock.Mock
}

func (m *MockNetlinker) LinkByName(name string) (netlink.Link, error) {
	args := m.Called(name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(netlink.Link), args.Error(1)
}

func (m *MockNetlinker) LinkByIndex(index int) (netlink.Link, error) {
	args := m.Called(index)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(netlink.Link), args.Error(1)
}

func (m *MockNetlinker) LinkList() ([]netlink.Link, error) {
	args := m.Called()
	return args.Get(0).([]netlink.Link), args.Error(1)
}

func (m *MockNetlinker) LinkSetName(link netlink.Link, name string) error {
	args := m.Called(link, name)
	return args.Error(0)
}

func (m *MockNetlinker) LinkSetUp(link netlink.Link) error {
	args := m.Called(link)
	return args.Error(0)
}

func (m *MockNetlinker) LinkSetDown(link netlink.Link) error {
	args := m.Called(link)
	return args.Error(0)
}

func (m *MockNetlinker) LinkSetMTU(link netlink.Link, mtu int) error {
	args := m.Called(link, mtu)
	return args.Error(0)
}

func (m *MockNetlinker) AddrList(link netlink.Link, family int) ([]netlink.Addr, error) {
	args := m.Called(link, family)
	return args.Get(0).([]netlink.Addr), args.Error(1)
}

func (m *MockNetlinker) AddrAdd(link netlink.Link, addr *netlink.Addr) error {
	args := m.Called(link, addr)
	return args.Error(0)
}

func (m *MockNetlinker) AddrDel(link netlink.Link, addr *netlink.Addr) error {
	args := m.Called(link, addr)
	return args.Error(0)
}

func (m *MockNetlinker) RouteAdd(route *netlink.Route) error {
	args := m.Called(route)
	return args.Error(0)
}

func (m *MockNetlinker) ParseAddr(s string) (*netlink.Addr, error) {
	args := m.Called(s)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*netlink.Addr), args.Error(1)
}

func (m *MockNetlinker) ParseIPNet(s string) (*net.IPNet, error) {
	args := m.Called(s)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*net.IPNet), args.Error(1)
}

// MockSystemController is a mock implementation of the SystemController interface.
type MockSystemController struct {
	mock.Mock
}

func (m *MockSystemController) WriteSysctl(path, value string) error {
	args := m.Called(path, value)
	return args.Error(0)
}

func (m *MockSystemController) IsNotExist(err error) bool {
	args := m.Called(err)
	return args.Bool(0)
}

// MockCommandExecutor is a mock implementation of the CommandExecutor interface.
type MockCommandExecutor struct {
	mock.Mock
}

func (m *MockCommandExecutor) RunCommand(name string, arg ...string) (string, error) {
	argsSlice := make([]interface{}, 0, len(arg)+1)
	argsSlice = append(argsSlice, name)
	for _, a := range arg {
		argsSlice = append(argsSlice, a)
	}

	args := m.Called(argsSlice...)
	return args.String(0), args.Error(1)
}
