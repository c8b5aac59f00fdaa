package netconf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeHardwareAddr(t *testing.T) {
	canonical := "aa:bb:cc:dd:ee:ff"
	variants := []string{
		"aa:bb:cc:dd:ee:ff",
		"AA:BB:CC:DD:EE:FF",
		"aa-bb-cc-dd-ee-ff",
		"AA-BB-CC-DD-EE-FF",
		"aa.bb.cc.dd.ee.ff",
		"Aa-Bb.Cc:Dd-Ee.Ff",
	}
	for _, v := range variants {
		assert.Equal(t, canonical, NormalizeHardwareAddr(v), v)
	}
}

func TestNormalizeHardwareAddr_Empty(t *testing.T) {
	assert.Equal(t, "", NormalizeHardwareAddr(""))
	assert.Equal(t, "", NormalizeHardwareAddr("   "))
}
