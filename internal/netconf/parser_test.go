package netconf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDocument = `# cloud-init network-config
version: 2
ethernets:
  eth0:
    match:
      macaddress: "AA-BB-CC-DD-EE-FF"
    set-name: Ethernet0
    mtu: 9000
    addresses:
      - 10.0.0.5/24
      - 2001:db8::1/64
    routes:
      - to: 0.0.0.0/0
        via: 10.0.0.1
        metric: 100
      - to: 192.168.50.0/24
        via: 0.0.0.0
        metric: 50
    nameservers:
      addresses:
        - 8.8.8.8
        - 1.1.1.1
  eth1:
    match:
      macaddress: 00:11:22:33:44:55
    set-name: Ethernet1
`

func TestParse_Document(t *testing.T) {
	root := Parse(sampleDocument)
	require.NotNil(t, root)
	require.Equal(t, KindMapping, root.Kind())

	assert.Equal(t, "2", root.ChildValue("version"))

	ethernets := root.Child("ethernets")
	require.NotNil(t, ethernets)
	require.Equal(t, KindMapping, ethernets.Kind())
	assert.Equal(t, []string{"eth0", "eth1"}, ethernets.Keys())

	eth0 := ethernets.Child("eth0")
	require.NotNil(t, eth0)
	assert.Equal(t, "AA-BB-CC-DD-EE-FF", eth0.Lookup("match").ChildValue("macaddress"),
		"quotes should be stripped from scalar values")
	assert.Equal(t, "Ethernet0", eth0.ChildValue("set-name"))
	assert.Equal(t, "9000", eth0.ChildValue("mtu"))

	addrs := eth0.Child("addresses")
	require.NotNil(t, addrs)
	require.Equal(t, KindSequence, addrs.Kind(), "pending collector must be rewritten to a sequence")
	require.Len(t, addrs.Items(), 2)
	assert.Equal(t, "10.0.0.5/24", addrs.Items()[0].Value())
	assert.Equal(t, "2001:db8::1/64", addrs.Items()[1].Value(),
		"IPv6 scalars must not be split at their colons")

	routes := eth0.Child("routes")
	require.NotNil(t, routes)
	require.Equal(t, KindSequence, routes.Kind())
	require.Len(t, routes.Items(), 2)

	first := routes.Items()[0]
	require.Equal(t, KindMapping, first.Kind())
	assert.Equal(t, "0.0.0.0/0", first.ChildValue("to"))
	assert.Equal(t, "10.0.0.1", first.ChildValue("via"))
	assert.Equal(t, "100", first.ChildValue("metric"))

	ns := eth0.Lookup("nameservers", "addresses")
	require.NotNil(t, ns)
	require.Equal(t, KindSequence, ns.Kind())
	require.Len(t, ns.Items(), 2)
}

func TestParse_Reparse(t *testing.T) {
	// Re-parsing identical text must yield structurally equal trees.
	a := Parse(sampleDocument)
	b := Parse(sampleDocument)
	assert.True(t, a.Equal(b))
}

func TestParse_SkipsCommentsAndBlanks(t *testing.T) {
	withNoise := `ethernets:
  # primary uplink
  eth0:

    set-name: lan0
  eth1:
    set-name: lan1
`
	withoutNoise := `ethernets:
  eth0:
    set-name: lan0
  eth1:
    set-name: lan1
`
	a := Parse(withNoise)
	b := Parse(withoutNoise)
	assert.True(t, a.Equal(b), "comments and blank lines must not disturb sibling indentation resolution")
}

func TestParse_EmptyKeyIsEmptyMapping(t *testing.T) {
	root := Parse("ethernets:\n")
	ethernets := root.Child("ethernets")
	require.NotNil(t, ethernets)
	assert.Equal(t, KindMapping, ethernets.Kind())
	assert.Empty(t, ethernets.Keys())
}

func TestParse_UnparsableLinesDropped(t *testing.T) {
	root := Parse("???\nversion: 2\njust some words\n")
	assert.Equal(t, "2", root.ChildValue("version"))
	assert.Len(t, root.Keys(), 1)
}

func TestParse_SequenceItemMappingSiblings(t *testing.T) {
	// Lines indented past a "- key: value" item join that item's mapping.
	root := Parse(`routes:
  - to: 0.0.0.0/0
    via: 10.0.0.1
  - to: 10.1.0.0/16
    via: 10.0.0.2
`)
	routes := root.Child("routes")
	require.Equal(t, KindSequence, routes.Kind())
	require.Len(t, routes.Items(), 2)
	assert.Equal(t, "10.0.0.1", routes.Items()[0].ChildValue("via"))
	assert.Equal(t, "10.0.0.2", routes.Items()[1].ChildValue("via"))
}

func TestParse_DedentClosesContainers(t *testing.T) {
	root := Parse(`outer:
  inner:
    leaf: 1
  sibling: 2
top: 3
`)
	assert.Equal(t, "1", root.Lookup("outer", "inner").ChildValue("leaf"))
	assert.Equal(t, "2", root.Child("outer").ChildValue("sibling"))
	assert.Equal(t, "3", root.ChildValue("top"))
}

func TestSplitKeyValue(t *testing.T) {
	tests := []struct {
		in    string
		key   string
		value string
		ok    bool
	}{
		{"key: value", "key", "value", true},
		{"key:", "key", "", true},
		{"macaddress: aa:bb:cc:dd:ee:ff", "macaddress", "aa:bb:cc:dd:ee:ff", true},
		{"2001:db8::1/64", "", "", false},
		{"plain scalar", "", "", false},
	}
	for _, tt := range tests {
		key, value, ok := splitKeyValue(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.key, key, tt.in)
		assert.Equal(t, tt.value, value, tt.in)
	}
}
