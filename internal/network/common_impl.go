package network

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/kballard/go-shellquote"
)

// DefaultSystemController is the default RealSystemController instance.
var DefaultSystemController SystemController = &RealSystemController{}

// DefaultCommandExecutor is the default RealCommandExecutor instance.
var DefaultCommandExecutor CommandExecutor = &RealCommandExecutor{}

// RealSystemController is a concrete implementation of SystemController using os functions.
type RealSystemController struct{}

// WriteSysctl writes a sysctl value to the specified path.
func (r *RealSystemController) WriteSysctl(path, value string) error {
	if !strings.HasPrefix(path, "/") {
		path = "/proc/sys/" + strings.ReplaceAll(path, ".", "/")
	}
	return os.WriteFile(path, []byte(value), 0644)
}

// IsNotExist checks if an error indicates that a file or directory does not exist.
func (r *RealSystemController) IsNotExist(err error) bool {
	return os.IsNotExist(err)
}

// RealCommandExecutor is a concrete implementation of CommandExecutor using os/exec.
// Failures quote the full command line so the audit trail shows exactly
// what was run.
type RealCommandExecutor struct{}

// RunCommand runs a command and returns its combined output.
func (r *RealCommandExecutor) RunCommand(name string, arg ...string) (string, error) {
	cmd := exec.Command(name, arg...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		line := shellquote.Join(append([]string{name}, arg...)...)
		return "", fmt.Errorf("command %q failed: %w, output: %s", line, err, string(output))
	}
	return string(output), nil
}
