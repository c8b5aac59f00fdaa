package network

import "fmt"

// PrefixToMask converts an IPv4 prefix length in [0,32] to a dotted-quad
// subnet mask, most-significant octet first. Out-of-range input is
// clamped.
func PrefixToMask(prefix int) string {
	if prefix < 0 {
		prefix = 0
	}
	if prefix > 32 {
		prefix = 32
	}
	// Top `prefix` bits set. A shift count of 32 on a uint32 yields 0,
	// which makes prefix 0 come out as 0.0.0.0 without a special case.
	mask := ^uint32(0) << (32 - uint(prefix))
	return fmt.Sprintf("%d.%d.%d.%d", byte(mask>>24), byte(mask>>16), byte(mask>>8), byte(mask))
}
