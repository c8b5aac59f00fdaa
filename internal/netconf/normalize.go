package netconf

import "strings"

var hwAddrSeparators = strings.NewReplacer("-", ":", ".", ":")

// NormalizeHardwareAddr canonicalizes a hardware address for comparison:
// lower-cased, with '-' and '.' separators replaced by ':'. The empty
// string normalizes to itself, which never matches a live adapter (they
// always report a non-empty address), so "no match" is the safe default
// for entries without an address rather than a wildcard.
func NormalizeHardwareAddr(addr string) string {
	return hwAddrSeparators.Replace(strings.ToLower(strings.TrimSpace(addr)))
}
