//go:build !windows

package robocopy

import "os/exec"

// setSysProcAttr is a no-op outside Windows. Robocopy itself only exists on
// Windows, but the package still compiles and its pure layers remain testable
// everywhere.
func setSysProcAttr(cmd *exec.Cmd) {}
