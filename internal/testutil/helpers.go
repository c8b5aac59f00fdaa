package testutil

import (
	"os"
	"testing"
)

// RequireVM skips the test if the NETSEED_VM_TEST environment variable is not set.
// This ensures that tests requiring real kernel capabilities (netlink, seed
// volume mounts) are only run in the proper environment.
func RequireVM(t *testing.T) {
	t.Helper()
	if os.Getenv("NETSEED_VM_TEST") == "" {
		t.Skip("Skipping test: requires NETSEED_VM_TEST environment")
	}
}
