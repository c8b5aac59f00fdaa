package network

import (
	"fmt"
	"net"
	"sync"

	"github.com/kballard/go-shellquote"
	"github.com/vishvananda/netlink"
)

// DryRunExecutor implements CommandExecutor but only records command lines.
type DryRunExecutor struct {
	mu       sync.Mutex
	Commands []string
}

// NewDryRunExecutor creates a new dry run executor.
func NewDryRunExecutor() *DryRunExecutor {
	return &DryRunExecutor{
		Commands: make([]string, 0),
	}
}

// RunCommand records the command instead of executing it.
func (e *DryRunExecutor) RunCommand(name string, arg ...string) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.Commands = append(e.Commands, shellquote.Join(append([]string{name}, arg...)...))
	return "", nil
}

// DryRunSystemController records sysctl writes.
type DryRunSystemController struct {
	mu     sync.Mutex
	Writes []string
}

func (s *DryRunSystemController) WriteSysctl(path, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Writes = append(s.Writes, fmt.Sprintf("sysctl -w %s=%s", path, value))
	return nil
}

func (s *DryRunSystemController) IsNotExist(err error) bool {
	return false
}

// DryRunNetlinker records netlink operations as the equivalent ip(8)
// invocations. Lookups succeed with synthetic links so the applier's
// logic runs through.
type DryRunNetlinker struct {
	mu  sync.Mutex
	Ops []string
}

func (n *DryRunNetlinker) log(op string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Ops = append(n.Ops, fmt.Sprintf("ip %s", op))
}

func (n *DryRunNetlinker) LinkByName(name string) (netlink.Link, error) {
	return &netlink.Device{LinkAttrs: netlink.LinkAttrs{Name: name}}, nil
}
func (n *DryRunNetlinker) LinkByIndex(index int) (netlink.Link, error) {
	return &netlink.Device{LinkAttrs: netlink.LinkAttrs{Index: index}}, nil
}
func (n *DryRunNetlinker) LinkList() ([]netlink.Link, error) { return nil, nil }
func (n *DryRunNetlinker) LinkSetName(link netlink.Link, name string) error {
	n.log(fmt.Sprintf("link set %s name %s", link.Attrs().Name, name))
	return nil
}
func (n *DryRunNetlinker) LinkSetUp(link netlink.Link) error {
	n.log(fmt.Sprintf("link set %s up", link.Attrs().Name))
	return nil
}
func (n *DryRunNetlinker) LinkSetDown(link netlink.Link) error {
	n.log(fmt.Sprintf("link set %s down", link.Attrs().Name))
	return nil
}
func (n *DryRunNetlinker) LinkSetMTU(link netlink.Link, mtu int) error {
	n.log(fmt.Sprintf("link set %s mtu %d", link.Attrs().Name, mtu))
	return nil
}
func (n *DryRunNetlinker) AddrList(link netlink.Link, family int) ([]netlink.Addr, error) {
	return nil, nil
}
func (n *DryRunNetlinker) AddrAdd(link netlink.Link, addr *netlink.Addr) error {
	n.log(fmt.Sprintf("addr add %s dev %s", addr.String(), link.Attrs().Name))
	return nil
}
func (n *DryRunNetlinker) AddrDel(link netlink.Link, addr *netlink.Addr) error {
	n.log(fmt.Sprintf("addr del %s dev %s", addr.String(), link.Attrs().Name))
	return nil
}
func (n *DryRunNetlinker) RouteAdd(route *netlink.Route) error {
	n.log(fmt.Sprintf("route add %s", route.String()))
	return nil
}
func (n *DryRunNetlinker) ParseAddr(s string) (*netlink.Addr, error) {
	return netlink.ParseAddr(s)
}
func (n *DryRunNetlinker) ParseIPNet(s string) (*net.IPNet, error) {
	_, ipNet, err := net.ParseCIDR(s)
	if err != nil {
		return nil, err
	}
	return ipNet, nil
}

// DryRunAdapterTable wraps a real adapter table for read access but only
// records renames, overlaying them on later reads so the resolver's
// verification loop sees the rename "land" immediately.
type DryRunAdapterTable struct {
	inner AdapterTable

	mu      sync.Mutex
	Renames []string
	renamed map[int]string // index -> simulated name
}

// NewDryRunAdapterTable wraps inner with rename recording.
func NewDryRunAdapterTable(inner AdapterTable) *DryRunAdapterTable {
	return &DryRunAdapterTable{inner: inner, renamed: make(map[int]string)}
}

func (t *DryRunAdapterTable) List() ([]Adapter, error) {
	adapters, err := t.inner.List()
	if err != nil {
		return nil, err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	for i := range adapters {
		if name, ok := t.renamed[adapters[i].Index]; ok {
			adapters[i].Name = name
		}
	}
	return adapters, nil
}

func (t *DryRunAdapterTable) ByIndex(index int) (*Adapter, error) {
	adapter, err := t.inner.ByIndex(index)
	if err != nil {
		return nil, err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if name, ok := t.renamed[index]; ok {
		adapter.Name = name
	}
	return adapter, nil
}

func (t *DryRunAdapterTable) Rename(current, target string) error {
	adapters, err := t.List()
	if err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.Renames = append(t.Renames, fmt.Sprintf("ip link set %s name %s", current, target))
	for _, adapter := range adapters {
		if adapter.Name == current {
			t.renamed[adapter.Index] = target
			return nil
		}
	}
	return fmt.Errorf("no adapter named %s", current)
}

// Transcript merges the recorded operations of the dry-run components
// into one printable list, renames first.
func Transcript(table *DryRunAdapterTable, nl *DryRunNetlinker, sys *DryRunSystemController, cmd *DryRunExecutor) []string {
	var out []string
	if table != nil {
		out = append(out, table.Renames...)
	}
	if nl != nil {
		out = append(out, nl.Ops...)
	}
	if sys != nil {
		out = append(out, sys.Writes...)
	}
	if cmd != nil {
		out = append(out, cmd.Commands...)
	}
	return out
}
